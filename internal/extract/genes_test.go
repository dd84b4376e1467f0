package extract

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lasige-bio/kbgraph/internal/config"
	"github.com/lasige-bio/kbgraph/internal/kb"
)

// Test Plan for the gene-registry extractor:
// - Header block is skipped
// - Symbol, identifier and synonyms come from fixed columns
// - Slash-delimited synonym lists are split, "-" sentinels dropped
// - Gene description is added as a synonym
// - No genuine edges: a single placeholder pair anchors graph construction
// - Short rows abort with MalformedRecordError

var geneSource = config.Source{LocalPrefix: "NCBIGene_", HeaderRows: 1}

func writeGenes(t *testing.T, rows []string) string {
	t.Helper()
	content := "#tax_id\tGeneID\tSymbol\tLocusTag\tSynonyms\tdbXrefs\tchromosome\tmap_location\tdescription\n" +
		strings.Join(rows, "\n") + "\n"
	path := filepath.Join(t.TempDir(), "All_Data.gene_info")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestGenes_ParsesRegistry(t *testing.T) {
	t.Parallel()

	path := writeGenes(t, []string{
		"9606\t7157\tTP53\t-\tBCC7/LFS1/P53\t-\t17\t17p13.1\ttumor protein p53",
		"9606\t672\tBRCA1\t-\t-\t-\t17\t17q21.31\tBRCA1 DNA repair associated",
	})

	e := newGeneExtractor(path, geneSource)
	res, err := e.Extract(context.Background())
	require.NoError(t, err)

	require.Len(t, res.Concepts, 2)

	tp53 := res.Concepts[0]
	assert.Equal(t, "NCBIGene_7157", tp53.ID)
	assert.Equal(t, "TP53", tp53.Name)
	assert.Equal(t, []string{"BCC7", "LFS1", "P53", "tumor protein p53"}, tp53.Synonyms)

	// A lone "-" synonym field contributes nothing beyond the description.
	brca1 := res.Concepts[1]
	assert.Equal(t, []string{"BRCA1 DNA repair associated"}, brca1.Synonyms)

	// Placeholder edge pair, not real topology.
	assert.Equal(t, []kb.Edge{genePlaceholderEdge}, res.Edges)
}

func TestGenes_ShortRowAborts(t *testing.T) {
	t.Parallel()

	path := writeGenes(t, []string{"9606\t7157\tTP53"})

	e := newGeneExtractor(path, geneSource)
	_, err := e.Extract(context.Background())

	var malformed *kb.MalformedRecordError
	require.ErrorAs(t, err, &malformed)
}
