package extract

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lasige-bio/kbgraph/internal/kb"
)

// Test Plan for the plain-text extractor:
// - Terms file yields id/name/synonyms per line, semicolon-split synonyms
// - A blank line in the middle is skipped, lines before and after parse
// - Edges file yields child/parent pairs
// - Lines without a tab abort with MalformedRecordError
// - Missing terms or edges file surfaces ErrMissingFile

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestPlainText_TermsAndEdges(t *testing.T) {
	t.Parallel()

	terms := writeFile(t, "terms.txt", "C1\talpha\ta;first letter\nC2\tbeta\nC3\tgamma\n")
	edges := writeFile(t, "edges.txt", "C1\tC2\nC2\tC3\n")

	e := newPlainTextExtractor(terms, edges)
	res, err := e.Extract(context.Background())
	require.NoError(t, err)

	require.Len(t, res.Concepts, 3)
	assert.Equal(t, "C1", res.Concepts[0].ID)
	assert.Equal(t, "alpha", res.Concepts[0].Name)
	assert.Equal(t, []string{"a", "first letter"}, res.Concepts[0].Synonyms)
	assert.Empty(t, res.Concepts[1].Synonyms)

	assert.Equal(t, []kb.Edge{
		{Child: "C1", Parent: "C2"},
		{Child: "C2", Parent: "C3"},
	}, res.Edges)
}

func TestPlainText_BlankLineInMiddleSkipped(t *testing.T) {
	t.Parallel()

	terms := writeFile(t, "terms.txt", "C1\talpha\n\nC2\tbeta\nC3\tgamma\n")
	edges := writeFile(t, "edges.txt", "")

	e := newPlainTextExtractor(terms, edges)
	res, err := e.Extract(context.Background())
	require.NoError(t, err)

	require.Len(t, res.Concepts, 3)
	assert.Equal(t, "C1", res.Concepts[0].ID)
	assert.Equal(t, "C2", res.Concepts[1].ID)
	assert.Equal(t, "C3", res.Concepts[2].ID)
}

func TestPlainText_MalformedTermLine(t *testing.T) {
	t.Parallel()

	terms := writeFile(t, "terms.txt", "no tab here\n")
	edges := writeFile(t, "edges.txt", "")

	e := newPlainTextExtractor(terms, edges)
	_, err := e.Extract(context.Background())

	var malformed *kb.MalformedRecordError
	require.ErrorAs(t, err, &malformed)
	assert.Equal(t, 1, malformed.Line)
}

func TestPlainText_MissingEdgesFile(t *testing.T) {
	t.Parallel()

	terms := writeFile(t, "terms.txt", "C1\talpha\n")

	e := newPlainTextExtractor(terms, filepath.Join(t.TempDir(), "missing.txt"))
	_, err := e.Extract(context.Background())
	require.ErrorIs(t, err, kb.ErrMissingFile)
}
