package kb

// Concept represents a single entry in a knowledge base.
type Concept struct {
	ID       string   // Source-namespace-qualified identifier (e.g. "GO:0008150", "NCBITaxon_9606")
	Name     string   // Canonical name
	Synonyms []string // Alternate name strings resolving to this concept
	AltIDs   []string // Deprecated identifiers that resolve to this concept
	Parents  []string // Direct ancestors declared by the source
}

// Edge represents a directed child -> parent relation between two concepts.
type Edge struct {
	Child  string
	Parent string
}

// NodeInfo holds the per-node topology metrics derived from the graph.
type NodeInfo struct {
	OutDegree   int // Number of distinct outgoing edges
	InDegree    int // Number of distinct incoming edges
	Descendants int // Distinct nodes reachable by following outgoing edges
}

// BuildOptions carries the per-source root-connectivity configuration
// consumed by Build. Sources without an engineered root leave it zero.
type BuildOptions struct {
	RootID           string   // Identifier assigned to the injected root concept
	RootName         string   // Canonical name of the root concept
	AlwaysInjectRoot bool     // Inject unconditionally instead of only when the name is absent
	BridgeChildren   []string // Top-level branch identifiers connected to the injected root
}
