package extract

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/lasige-bio/kbgraph/internal/kb"
)

// plainTextExtractor reads two independent plain-text files: a terms file
// with one concept per line (id<TAB>name[<TAB>synonym;synonym;...]) and an
// edges file with one child<TAB>parent pair per line. Blank lines are
// skipped in both.
type plainTextExtractor struct {
	termsPath string
	edgesPath string
}

func newPlainTextExtractor(termsPath, edgesPath string) *plainTextExtractor {
	return &plainTextExtractor{termsPath: termsPath, edgesPath: edgesPath}
}

func (e *plainTextExtractor) Extract(ctx context.Context) (*Result, error) {
	res := &Result{}

	if err := e.readTerms(ctx, res); err != nil {
		return nil, err
	}
	if err := e.readEdges(ctx, res); err != nil {
		return nil, err
	}

	return res, nil
}

func (e *plainTextExtractor) readTerms(ctx context.Context, res *Result) error {
	f, err := openInput(e.termsPath)
	if err != nil {
		return err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		if err := ctx.Err(); err != nil {
			return err
		}

		line := scanner.Text()
		if line == "" {
			continue
		}

		fields := strings.Split(line, "\t")
		if len(fields) < 2 {
			return &kb.MalformedRecordError{
				Source: e.termsPath,
				Line:   lineNo,
				Reason: "expected id<TAB>name",
			}
		}

		concept := kb.Concept{ID: fields[0], Name: fields[1]}
		if len(fields) >= 3 {
			concept.Synonyms = splitNonEmpty(fields[2], ";")
		}
		res.Concepts = append(res.Concepts, concept)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read %s: %w", e.termsPath, err)
	}
	return nil
}

func (e *plainTextExtractor) readEdges(ctx context.Context, res *Result) error {
	f, err := openInput(e.edgesPath)
	if err != nil {
		return err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		if err := ctx.Err(); err != nil {
			return err
		}

		line := scanner.Text()
		if line == "" {
			continue
		}

		fields := strings.Split(line, "\t")
		if len(fields) < 2 {
			return &kb.MalformedRecordError{
				Source: e.edgesPath,
				Line:   lineNo,
				Reason: "expected child<TAB>parent",
			}
		}
		res.Edges = append(res.Edges, kb.Edge{Child: fields[0], Parent: fields[1]})
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read %s: %w", e.edgesPath, err)
	}
	return nil
}
