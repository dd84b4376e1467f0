package extract

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"

	"github.com/lasige-bio/kbgraph/internal/config"
	"github.com/lasige-bio/kbgraph/internal/kb"
)

// Fixed column positions of the gene-registry export.
const (
	geneIDCol          = 1
	geneSymbolCol      = 2
	geneSynonymsCol    = 4
	geneDescriptionCol = 8
)

// geneNoValue is the registry's sentinel for an absent field.
const geneNoValue = "-"

// Placeholder edge pair emitted for the gene registry, which carries no
// genuine topology. Downstream graph construction requires a non-empty
// edge list; see the open question in DESIGN.md before changing this.
var genePlaceholderEdge = kb.Edge{Child: "NCBIGene1", Parent: "NCBIGene2"}

// geneExtractor reads the tab-separated gene registry: name, identifier and
// synonyms only, with slash-delimited synonym lists and "-" sentinels
// dropped. The gene description doubles as a synonym.
type geneExtractor struct {
	path string
	src  config.Source
}

func newGeneExtractor(path string, src config.Source) *geneExtractor {
	return &geneExtractor{path: path, src: src}
}

func (e *geneExtractor) Extract(ctx context.Context) (*Result, error) {
	f, err := openInput(e.path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.Comma = '\t'
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	res := &Result{}
	rowCount := 0

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", e.path, err)
		}

		rowCount++
		if rowCount <= e.src.HeaderRows {
			continue
		}

		if len(row) <= geneDescriptionCol {
			return nil, &kb.MalformedRecordError{
				Source: e.path,
				Line:   rowCount,
				Reason: fmt.Sprintf("expected at least %d columns, got %d", geneDescriptionCol+1, len(row)),
			}
		}

		synonyms := make([]string, 0, 4)
		for _, syn := range splitNonEmpty(row[geneSynonymsCol], "/") {
			if syn != geneNoValue {
				synonyms = append(synonyms, syn)
			}
		}
		if desc := row[geneDescriptionCol]; desc != "" && desc != geneNoValue {
			synonyms = append(synonyms, desc)
		}

		res.Concepts = append(res.Concepts, kb.Concept{
			ID:       e.src.LocalPrefix + row[geneIDCol],
			Name:     row[geneSymbolCol],
			Synonyms: synonyms,
		})
	}

	res.Edges = append(res.Edges, genePlaceholderEdge)

	return res, nil
}
