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

// Fixed column positions of the CTD tab-separated exports.
const (
	tabularNameCol     = 0
	tabularIDCol       = 1
	tabularParentsCol  = 4
	tabularSynonymsCol = 7
)

// tabularExtractor reads the delimited hierarchical-tabular exports
// (CTD chemicals, anatomy, genes, diseases): a fixed header block followed
// by rows with name, identifier, pipe-delimited parents and synonyms at
// fixed column positions.
//
// Downstream indexing relies on those positions, so a row that is too short
// aborts the run instead of being skipped.
type tabularExtractor struct {
	path string
	src  config.Source
}

func newTabularExtractor(path string, src config.Source) *tabularExtractor {
	return &tabularExtractor{path: path, src: src}
}

func (e *tabularExtractor) Extract(ctx context.Context) (*Result, error) {
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

		if len(row) <= tabularSynonymsCol {
			return nil, &kb.MalformedRecordError{
				Source: e.path,
				Line:   rowCount,
				Reason: fmt.Sprintf("expected at least %d columns, got %d", tabularSynonymsCol+1, len(row)),
			}
		}

		parents := splitNonEmpty(row[tabularParentsCol], "|")
		res.Concepts = append(res.Concepts, kb.Concept{
			ID:       row[tabularIDCol],
			Name:     row[tabularNameCol],
			Synonyms: splitNonEmpty(row[tabularSynonymsCol], "|"),
			Parents:  parents,
		})

		for _, parent := range parents {
			res.Edges = append(res.Edges, kb.Edge{Child: row[tabularIDCol], Parent: parent})
		}
	}

	return res, nil
}

// splitNonEmpty splits a delimited field, dropping empty tokens so that an
// empty field yields no values instead of a single empty string.
func splitNonEmpty(field, sep string) []string {
	if field == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(field, sep) {
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
