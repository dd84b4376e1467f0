package kb

import (
	"errors"
	"fmt"

	"github.com/dominikbraun/graph"
)

// KnowledgeBase is the canonical in-memory model of one ingested source.
// All derived mappings live behind accessors so that the shared invariant
// (an identifier appears consistently across the name, synonym, alt-id and
// info maps) is enforced in one place.
//
// Name and synonym collisions follow the overwrite-wins policy: when two
// concepts share a name, the later-processed one silently replaces the
// mapping. This mirrors the upstream data contract and is not deduplicated.
type KnowledgeBase struct {
	source string

	nameToID      map[string]string
	idToName      map[string]string
	synonymToID   map[string]string
	altIDToID     map[string]string
	aliasToID     map[string]string // external-vocabulary identifier -> local identifier
	childToParent map[string]string

	names []string // insertion order of canonical names, drives re-indexing
	edges []Edge   // encounter order, duplicates permitted

	graph      graph.Graph[string, string]
	nodeToNode map[string][]string // undirected adjacency, duplicates permitted
	idToInfo   map[string]NodeInfo
}

// NewKnowledgeBase returns an empty knowledge base for the given source tag.
func NewKnowledgeBase(source string) *KnowledgeBase {
	return &KnowledgeBase{
		source:        source,
		nameToID:      make(map[string]string),
		idToName:      make(map[string]string),
		synonymToID:   make(map[string]string),
		altIDToID:     make(map[string]string),
		aliasToID:     make(map[string]string),
		childToParent: make(map[string]string),
		nodeToNode:    make(map[string][]string),
		idToInfo:      make(map[string]NodeInfo),
	}
}

// Source returns the source knowledge-base tag.
func (k *KnowledgeBase) Source() string { return k.source }

// AddConcept registers a concept's name, synonyms, alternate identifiers and
// single-parent shortcut. The name and synonym maps follow overwrite-wins on
// collision; the insertion position of an overwritten name is preserved.
func (k *KnowledgeBase) AddConcept(c Concept) {
	if _, seen := k.nameToID[c.Name]; !seen {
		k.names = append(k.names, c.Name)
	}
	k.nameToID[c.Name] = c.ID
	k.idToName[c.ID] = c.Name

	for _, syn := range c.Synonyms {
		k.synonymToID[syn] = c.ID
	}
	for _, alt := range c.AltIDs {
		k.altIDToID[alt] = c.ID
	}
	if len(c.Parents) == 1 {
		// Only concepts with exactly one direct ancestor populate the
		// single-parent shortcut.
		k.childToParent[c.ID] = c.Parents[0]
	}
}

// AddAlias maps an external-vocabulary identifier to a local identifier.
func (k *KnowledgeBase) AddAlias(external, id string) {
	k.aliasToID[external] = id
}

// AddEdge appends a directed child -> parent edge in encounter order.
func (k *KnowledgeBase) AddEdge(e Edge) {
	k.edges = append(k.edges, e)
}

// ID resolves a canonical name to its identifier.
func (k *KnowledgeBase) ID(name string) (string, bool) {
	id, ok := k.nameToID[name]
	return id, ok
}

// Name resolves an identifier to its canonical name.
func (k *KnowledgeBase) Name(id string) (string, bool) {
	name, ok := k.idToName[id]
	return name, ok
}

// SynonymID resolves a synonym string to its owning identifier.
func (k *KnowledgeBase) SynonymID(synonym string) (string, bool) {
	id, ok := k.synonymToID[synonym]
	return id, ok
}

// AltID resolves a deprecated/alternate identifier to the current one.
func (k *KnowledgeBase) AltID(alt string) (string, bool) {
	id, ok := k.altIDToID[alt]
	return id, ok
}

// Alias resolves an external-vocabulary identifier to a local one.
func (k *KnowledgeBase) Alias(external string) (string, bool) {
	id, ok := k.aliasToID[external]
	return id, ok
}

// Parent returns the single direct ancestor of a concept, if it has exactly one.
func (k *KnowledgeBase) Parent(id string) (string, bool) {
	p, ok := k.childToParent[id]
	return p, ok
}

// Names returns the canonical names in insertion order.
func (k *KnowledgeBase) Names() []string { return k.names }

// Edges returns the edge sequence in encounter order.
func (k *KnowledgeBase) Edges() []Edge { return k.edges }

// Neighbors returns the undirected adjacency list of a node, in insertion
// order, with duplicates preserved when parallel edges connect the same pair.
func (k *KnowledgeBase) Neighbors(id string) []string { return k.nodeToNode[id] }

// Info returns the topology metrics of a node present in the graph.
func (k *KnowledgeBase) Info(id string) (NodeInfo, bool) {
	info, ok := k.idToInfo[id]
	return info, ok
}

// ConceptCount returns the number of distinct canonical names.
func (k *KnowledgeBase) ConceptCount() int { return len(k.names) }

// Graph returns the directed graph built over the edge set. Nil before Build.
func (k *KnowledgeBase) Graph() graph.Graph[string, string] { return k.graph }

// AltIDCount returns the number of alternate-identifier mappings.
func (k *KnowledgeBase) AltIDCount() int { return len(k.altIDToID) }

// AliasCount returns the number of external-vocabulary alias mappings.
func (k *KnowledgeBase) AliasCount() int { return len(k.aliasToID) }

// SynonymCount returns the number of synonym mappings.
func (k *KnowledgeBase) SynonymCount() int { return len(k.synonymToID) }

// Build assembles the canonical knowledge base from extractor output:
// registers every concept and edge, applies the per-source root-connectivity
// step, then derives the directed graph and the undirected adjacency map.
//
// Nodes of the graph are the union of edge endpoints only; concepts with no
// edges stay out of the graph (and out of the info map) while remaining
// resolvable through the name maps.
func Build(source string, concepts []Concept, edges []Edge, aliases map[string]string, opts BuildOptions) (*KnowledgeBase, error) {
	k := NewKnowledgeBase(source)

	for _, c := range concepts {
		k.AddConcept(c)
	}
	for _, e := range edges {
		k.AddEdge(e)
	}
	for external, id := range aliases {
		k.AddAlias(external, id)
	}

	k.ensureRoot(opts)

	if err := k.buildGraph(); err != nil {
		return nil, err
	}
	k.buildAdjacency()

	return k, nil
}

// ensureRoot injects the configured root concept and its bridging edges.
// Ontology sources inject only when the root name is absent; tabular sources
// inject unconditionally. Bridging edges always target the configured root
// identifier so that a pre-existing root still anchors its branches.
func (k *KnowledgeBase) ensureRoot(opts BuildOptions) {
	if opts.RootID == "" && opts.RootName == "" {
		return
	}

	_, present := k.nameToID[opts.RootName]
	if opts.AlwaysInjectRoot || !present {
		k.AddConcept(Concept{ID: opts.RootID, Name: opts.RootName})
	}

	for _, child := range opts.BridgeChildren {
		k.AddEdge(Edge{Child: child, Parent: opts.RootID})
	}
}

// buildGraph constructs the directed graph over the edge set. Duplicate
// edges and vertices collapse; the graph is a set view of the edge sequence.
func (k *KnowledgeBase) buildGraph() error {
	g := graph.New(graph.StringHash, graph.Directed())

	for _, e := range k.edges {
		for _, id := range []string{e.Child, e.Parent} {
			if err := g.AddVertex(id); err != nil && !errors.Is(err, graph.ErrVertexAlreadyExists) {
				return fmt.Errorf("failed to add vertex %q: %w", id, err)
			}
		}
		if err := g.AddEdge(e.Child, e.Parent); err != nil && !errors.Is(err, graph.ErrEdgeAlreadyExists) {
			return fmt.Errorf("failed to add edge %q -> %q: %w", e.Child, e.Parent, err)
		}
	}

	k.graph = g
	return nil
}

// buildAdjacency builds the undirected node_to_node view: for every edge
// (u, v), v joins u's list and u joins v's, preserving encounter order and
// keeping duplicates when parallel edges connect the same pair.
func (k *KnowledgeBase) buildAdjacency() {
	for _, e := range k.edges {
		k.nodeToNode[e.Child] = append(k.nodeToNode[e.Child], e.Parent)
		k.nodeToNode[e.Parent] = append(k.nodeToNode[e.Parent], e.Child)
	}
}
