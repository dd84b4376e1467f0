package cli

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/lasige-bio/kbgraph/internal/config"
	"github.com/lasige-bio/kbgraph/internal/export"
	"github.com/lasige-bio/kbgraph/internal/extract"
	"github.com/lasige-bio/kbgraph/internal/kb"
)

var (
	quietFlag     bool
	dataDirFlag   string
	outDirFlag    string
	workersFlag   int
	termsFileFlag string
	edgesFileFlag string
)

// loadCmd represents the load command
var loadCmd = &cobra.Command{
	Use:   "load <source> <format>",
	Short: "Ingest one knowledge-base source and export its embedding inputs",
	Long: `Load runs the full pipeline for one source: extraction, canonical model
building, per-node graph statistics, integer re-indexing and edge-list export.

The two positional arguments select the extractor variant: the source tag
(e.g. go_bp, chebi, hp, ctd_chem, ncbi_taxon, ncbi_gene) and the file format
tag (obo, tsv, csv, txt).

Outputs, per source:
  - <data-dir>/<source>/int_to_node_id.json and node_id_to_int.json
  - <out-dir>/<source>.edgelist, one "<int> <int>" line per edge

Examples:
  # Ingest the GO biological-process sub-ontology
  kbgraph load go_bp obo

  # Ingest the CTD chemicals tabular export without progress bars
  kbgraph load ctd_chem tsv --quiet

  # Ingest a custom plain-text knowledge base
  kbgraph load mykb txt --terms-file terms.txt --edges-file edges.txt
`,
	Args: cobra.ExactArgs(2),
	RunE: runLoad,
}

func init() {
	rootCmd.AddCommand(loadCmd)
	loadCmd.Flags().BoolVarP(&quietFlag, "quiet", "q", false, "Disable progress bars and non-error output")
	loadCmd.Flags().StringVar(&dataDirFlag, "data-dir", "", "Override the input/mapping data directory")
	loadCmd.Flags().StringVar(&outDirFlag, "out-dir", "", "Override the edge-list output directory")
	loadCmd.Flags().IntVar(&workersFlag, "workers", 0, "Worker pool size for the statistics stage (0 = all CPUs)")
	loadCmd.Flags().StringVar(&termsFileFlag, "terms-file", "", "Terms file for txt sources (id<TAB>name[<TAB>synonyms])")
	loadCmd.Flags().StringVar(&edgesFileFlag, "edges-file", "", "Edges file for txt sources (child<TAB>parent)")
}

func runLoad(cmd *cobra.Command, args []string) error {
	source, format := args[0], args[1]

	// Set up context with cancellation for Ctrl+C
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Println("\nInterrupted! Cancelling ingestion...")
		cancel()
	}()

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if dataDirFlag != "" {
		cfg.DataDir = dataDirFlag
	}
	if outDirFlag != "" {
		cfg.OutputDir = outDirFlag
	}
	if workersFlag > 0 {
		cfg.Workers = workersFlag
	}
	applyFileFlags(cfg, source)

	// Selecting the variant happens before any input is opened, so an
	// unknown source/format combination aborts with no side effects.
	extractor, err := extract.ForSource(cfg, source, format)
	if err != nil {
		return err
	}

	if !quietFlag {
		log.Printf("Extracting %s (%s)...", source, format)
	}
	result, err := extractor.Extract(ctx)
	if err != nil {
		return fmt.Errorf("extraction failed for %s: %w", source, err)
	}

	src := cfg.Source(source)
	knowledgeBase, err := kb.Build(source, result.Concepts, result.Edges, result.Aliases, kb.BuildOptions{
		RootID:   src.RootID,
		RootName: src.RootName,
		// The tabular variant injects its root unconditionally; ontology
		// sources inject only when the root name is absent.
		AlwaysInjectRoot: format == config.FormatTSV,
		BridgeChildren:   src.Bridges,
	})
	if err != nil {
		return fmt.Errorf("failed to build knowledge base for %s: %w", source, err)
	}

	if !quietFlag {
		log.Printf("Loaded %d concepts, %d synonyms, %d edges", knowledgeBase.ConceptCount(), knowledgeBase.SynonymCount(), len(knowledgeBase.Edges()))
	}

	progress := NewStatsProgress(quietFlag)
	if err := knowledgeBase.ComputeInfo(ctx, cfg.Workers, progress); err != nil {
		return fmt.Errorf("failed to compute graph statistics: %w", err)
	}

	kbDir := cfg.KBDir(source)
	if err := export.WriteIndexMaps(kbDir, knowledgeBase); err != nil {
		return fmt.Errorf("failed to write id mappings: %w", err)
	}

	nodeToInt, err := export.LoadNodeToInt(kbDir)
	if err != nil {
		return err
	}

	edgeListPath := filepath.Join(cfg.OutputDir, source+export.EdgeListSuffix)
	written, dropped, err := export.WriteEdgeList(edgeListPath, knowledgeBase.Edges(), nodeToInt)
	if err != nil {
		return fmt.Errorf("failed to write edge list: %w", err)
	}

	if !quietFlag {
		log.Printf("Wrote %d edges to %s (%d dropped with unmapped endpoints)", written, edgeListPath, dropped)
	}
	return nil
}

// applyFileFlags merges the txt-source file flags into the source entry.
func applyFileFlags(cfg *config.Config, source string) {
	if termsFileFlag == "" && edgesFileFlag == "" {
		return
	}
	src := cfg.Source(source)
	if termsFileFlag != "" {
		src.TermsFile = termsFileFlag
	}
	if edgesFileFlag != "" {
		src.EdgesFile = edgesFileFlag
	}
	if cfg.Sources == nil {
		cfg.Sources = make(map[string]config.Source)
	}
	cfg.Sources[source] = src
}
