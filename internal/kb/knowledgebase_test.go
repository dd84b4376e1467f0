package kb

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for the knowledge-base builder:
// - Name/id maps invert each other for accepted concepts
// - Name collision follows overwrite-wins: the later concept takes the name
// - Every alt_id maps to an identifier present in the name map
// - child_to_parent is set iff a concept has exactly one direct ancestor
// - node_to_node lists both endpoints of every edge, duplicates preserved
// - Concepts without edges stay out of the graph and the info map
// - Root injection: only when the root name is absent for ontology sources,
//   unconditionally for tabular sources
// - Bridging edges connect the configured branches to the root
// - Edge encounter order is preserved

func TestBuild_NameMapsInvert(t *testing.T) {
	t.Parallel()

	k, err := Build("test", []Concept{
		{ID: "GO:1", Name: "alpha", Synonyms: []string{"first"}},
		{ID: "GO:2", Name: "beta", AltIDs: []string{"GO:9"}},
	}, nil, nil, BuildOptions{})
	require.NoError(t, err)

	for _, name := range k.Names() {
		id, ok := k.ID(name)
		require.True(t, ok)
		got, ok := k.Name(id)
		require.True(t, ok)
		assert.Equal(t, name, got)
	}

	id, ok := k.SynonymID("first")
	require.True(t, ok)
	assert.Equal(t, "GO:1", id)

	// Every alt id resolves to a current identifier in the name map.
	alt, ok := k.AltID("GO:9")
	require.True(t, ok)
	_, ok = k.Name(alt)
	assert.True(t, ok)
}

func TestBuild_NameCollisionOverwriteWins(t *testing.T) {
	t.Parallel()

	k, err := Build("test", []Concept{
		{ID: "GO:1", Name: "shared"},
		{ID: "GO:2", Name: "shared"},
	}, nil, nil, BuildOptions{})
	require.NoError(t, err)

	// Later-processed concept silently takes the name.
	id, ok := k.ID("shared")
	require.True(t, ok)
	assert.Equal(t, "GO:2", id)

	// The earlier identifier still resolves to the name.
	name, ok := k.Name("GO:1")
	require.True(t, ok)
	assert.Equal(t, "shared", name)

	assert.Equal(t, 1, k.ConceptCount())
}

func TestBuild_ChildToParentOnlySingleAncestor(t *testing.T) {
	t.Parallel()

	k, err := Build("test", []Concept{
		{ID: "A", Name: "a", Parents: []string{"B"}},
		{ID: "B", Name: "b", Parents: []string{"C", "D"}},
		{ID: "C", Name: "c"},
	}, nil, nil, BuildOptions{})
	require.NoError(t, err)

	parent, ok := k.Parent("A")
	require.True(t, ok)
	assert.Equal(t, "B", parent)

	_, ok = k.Parent("B")
	assert.False(t, ok, "two ancestors must not populate the shortcut")
	_, ok = k.Parent("C")
	assert.False(t, ok, "zero ancestors must not populate the shortcut")
}

func TestBuild_NodeToNodeListsBothEndpoints(t *testing.T) {
	t.Parallel()

	edges := []Edge{
		{Child: "A", Parent: "B"},
		{Child: "B", Parent: "C"},
		{Child: "A", Parent: "B"}, // duplicate edge preserved
	}
	k, err := Build("test", nil, edges, nil, BuildOptions{})
	require.NoError(t, err)

	assert.Equal(t, []string{"B", "B"}, k.Neighbors("A"))
	assert.Equal(t, []string{"A", "C", "A"}, k.Neighbors("B"))
	assert.Equal(t, []string{"B"}, k.Neighbors("C"))

	for _, e := range k.Edges() {
		assert.Contains(t, k.Neighbors(e.Child), e.Parent)
		assert.Contains(t, k.Neighbors(e.Parent), e.Child)
	}
}

func TestBuild_ConceptsWithoutEdgesAbsentFromGraph(t *testing.T) {
	t.Parallel()

	k, err := Build("test", []Concept{
		{ID: "A", Name: "a"},
		{ID: "B", Name: "b"},
	}, []Edge{{Child: "A", Parent: "X"}}, nil, BuildOptions{})
	require.NoError(t, err)
	require.NoError(t, k.ComputeInfo(context.Background(), 1, nil))

	// A participates in an edge, B does not.
	_, ok := k.Info("A")
	assert.True(t, ok)
	_, ok = k.Info("B")
	assert.False(t, ok, "edge-less concepts stay out of the info map")

	// B still resolves through the name maps.
	_, ok = k.ID("b")
	assert.True(t, ok)
}

func TestBuild_RootInjectedOnlyWhenAbsent(t *testing.T) {
	t.Parallel()

	opts := BuildOptions{RootID: "GO:0008150", RootName: "biological_process"}

	// Absent: injected.
	k, err := Build("go_bp", []Concept{{ID: "GO:1", Name: "alpha"}}, nil, nil, opts)
	require.NoError(t, err)
	id, ok := k.ID("biological_process")
	require.True(t, ok)
	assert.Equal(t, "GO:0008150", id)

	// Present under its own identifier: untouched.
	k, err = Build("go_bp", []Concept{{ID: "GO:X", Name: "biological_process"}}, nil, nil, opts)
	require.NoError(t, err)
	id, ok = k.ID("biological_process")
	require.True(t, ok)
	assert.Equal(t, "GO:X", id)
}

func TestBuild_RootAlwaysInjectedForTabular(t *testing.T) {
	t.Parallel()

	opts := BuildOptions{RootID: "MESH:D", RootName: "Chemicals", AlwaysInjectRoot: true}

	k, err := Build("ctd_chem", []Concept{{ID: "MESH:X", Name: "Chemicals"}}, nil, nil, opts)
	require.NoError(t, err)

	// Unconditional injection overwrites the colliding name.
	id, ok := k.ID("Chemicals")
	require.True(t, ok)
	assert.Equal(t, "MESH:D", id)
}

func TestBuild_BridgingEdgesTargetRoot(t *testing.T) {
	t.Parallel()

	opts := BuildOptions{
		RootID:         "CHEBI:00",
		RootName:       "root",
		BridgeChildren: []string{"CHEBI_24431", "CHEBI_50906"},
	}

	k, err := Build("chebi", []Concept{{ID: "CHEBI_24431", Name: "chemical entity"}}, nil, nil, opts)
	require.NoError(t, err)

	assert.Equal(t, []Edge{
		{Child: "CHEBI_24431", Parent: "CHEBI:00"},
		{Child: "CHEBI_50906", Parent: "CHEBI:00"},
	}, k.Edges())
}

func TestBuild_EdgeOrderPreserved(t *testing.T) {
	t.Parallel()

	edges := []Edge{
		{Child: "C", Parent: "B"},
		{Child: "A", Parent: "B"},
		{Child: "B", Parent: "A"},
	}
	k, err := Build("test", nil, edges, nil, BuildOptions{})
	require.NoError(t, err)
	assert.Equal(t, edges, k.Edges())
}

func TestBuild_EmptyRootConfigInjectsNothing(t *testing.T) {
	t.Parallel()

	k, err := Build("ctd_gene", []Concept{{ID: "X", Name: "x"}}, nil, nil, BuildOptions{AlwaysInjectRoot: true})
	require.NoError(t, err)
	assert.Equal(t, 1, k.ConceptCount())
}
