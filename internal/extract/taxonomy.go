package extract

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/lasige-bio/kbgraph/internal/config"
	"github.com/lasige-bio/kbgraph/internal/kb"
)

// Fixed column positions of the taxonomic-registry CSV export.
const (
	taxonomyURICol      = 0
	taxonomyNameCol     = 1
	taxonomySynonymsCol = 2
	taxonomyParentCol   = 7
	taxonomyRankCol     = 9
)

// taxonomyExtractor reads the flat taxonomic-registry CSV: rows are
// filtered to the source URI namespace and to a fixed target rank, and
// local identifiers are derived by swapping the URI prefix for the
// configured local prefix.
type taxonomyExtractor struct {
	path string
	src  config.Source
}

func newTaxonomyExtractor(path string, src config.Source) *taxonomyExtractor {
	return &taxonomyExtractor{path: path, src: src}
}

func (e *taxonomyExtractor) Extract(ctx context.Context) (*Result, error) {
	f, err := openInput(e.path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
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
		if !strings.Contains(row[taxonomyURICol], e.src.URIMarker) {
			continue
		}

		if len(row) <= taxonomyRankCol {
			return nil, &kb.MalformedRecordError{
				Source: e.path,
				Line:   rowCount,
				Reason: fmt.Sprintf("expected at least %d columns, got %d", taxonomyRankCol+1, len(row)),
			}
		}
		if row[taxonomyRankCol] != e.src.Rank {
			continue
		}

		id, err := e.localID(row[taxonomyURICol], rowCount)
		if err != nil {
			return nil, err
		}

		concept := kb.Concept{
			ID:       id,
			Name:     row[taxonomyNameCol],
			Synonyms: splitNonEmpty(row[taxonomySynonymsCol], "|"),
		}

		if row[taxonomyParentCol] != "" {
			parentID, err := e.localID(row[taxonomyParentCol], rowCount)
			if err != nil {
				return nil, err
			}
			concept.Parents = []string{parentID}
			res.Edges = append(res.Edges, kb.Edge{Child: id, Parent: parentID})
		}

		res.Concepts = append(res.Concepts, concept)
	}

	return res, nil
}

// localID derives a local identifier from a registry URI by replacing the
// URI prefix up to the namespace marker with the configured local prefix.
func (e *taxonomyExtractor) localID(uri string, line int) (string, error) {
	_, suffix, ok := strings.Cut(uri, e.src.URIMarker)
	if !ok {
		return "", &kb.MalformedRecordError{
			Source: e.path,
			Line:   line,
			Reason: fmt.Sprintf("identifier %q lacks namespace marker %q", uri, e.src.URIMarker),
		}
	}
	return e.src.LocalPrefix + suffix, nil
}
