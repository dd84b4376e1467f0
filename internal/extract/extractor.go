// Package extract implements the source-record extractors: one variant per
// source file format, each turning raw rows or stanzas into the common
// concepts-plus-edges contract consumed by the knowledge-base builder.
package extract

import (
	"context"
	"fmt"
	"os"

	"github.com/lasige-bio/kbgraph/internal/config"
	"github.com/lasige-bio/kbgraph/internal/kb"
)

// Result is the extractor output: concepts and edges in encounter order,
// plus the optional external-vocabulary alias map (ontology sources only).
type Result struct {
	Concepts []kb.Concept
	Edges    []kb.Edge
	Aliases  map[string]string
}

// Extractor reads one raw source file and produces concepts and edges,
// applying the source-specific extraction rules.
type Extractor interface {
	Extract(ctx context.Context) (*Result, error)
}

// ForSource selects the extractor variant for a source/format combination.
// The two registry sources dispatch on the source tag; every other source
// dispatches on the declared format. Returns ErrUnknownFormat when no
// variant matches.
func ForSource(cfg *config.Config, source, format string) (Extractor, error) {
	src := cfg.Source(source)

	switch {
	case source == config.SourceNCBITaxon:
		return newTaxonomyExtractor(cfg.SourcePath(source, format), src), nil
	case source == config.SourceNCBIGene:
		return newGeneExtractor(cfg.SourcePath(source, format), src), nil
	case format == config.FormatOBO:
		return newOBOExtractor(cfg.SourcePath(source, format), src), nil
	case format == config.FormatTSV:
		return newTabularExtractor(cfg.SourcePath(source, format), src), nil
	case format == config.FormatTXT:
		return newPlainTextExtractor(src.TermsFile, src.EdgesFile), nil
	}

	return nil, fmt.Errorf("%w: source %q, format %q", kb.ErrUnknownFormat, source, format)
}

// openInput opens a declared input file, mapping a missing path to the
// fatal ErrMissingFile kind.
func openInput(path string) (*os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", kb.ErrMissingFile, path)
		}
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	return f, nil
}
