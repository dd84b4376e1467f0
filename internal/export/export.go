// Package export persists the integer re-indexing dictionaries and the
// embedding-input edge list. The two stages are decoupled: the edge-list
// writer consumes the persisted node_id_to_int mapping from disk, which may
// come from an earlier run.
package export

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/lasige-bio/kbgraph/internal/kb"
)

const (
	// IntToNodeFile maps assigned integers back to original identifiers.
	IntToNodeFile = "int_to_node_id.json"
	// NodeToIntFile maps original identifiers to assigned integers.
	NodeToIntFile = "node_id_to_int.json"
	// EdgeListSuffix is appended to the source tag for the edge-list file.
	EdgeListSuffix = ".edgelist"
)

// WriteIndexMaps assigns each identifier a dense zero-based integer, in the
// insertion order of the canonical-name mapping, and persists both mapping
// directions under the per-source directory.
func WriteIndexMaps(kbDir string, k *kb.KnowledgeBase) error {
	if err := os.MkdirAll(kbDir, 0755); err != nil {
		return fmt.Errorf("failed to create kb directory: %w", err)
	}

	intToNode := make(map[int]string, k.ConceptCount())
	nodeToInt := make(map[string]int, k.ConceptCount())

	for i, name := range k.Names() {
		id, ok := k.ID(name)
		if !ok {
			return fmt.Errorf("name %q missing from identifier map", name)
		}
		intToNode[i] = id
		nodeToInt[id] = i
	}

	if err := writeJSON(filepath.Join(kbDir, IntToNodeFile), intToNode); err != nil {
		return err
	}
	return writeJSON(filepath.Join(kbDir, NodeToIntFile), nodeToInt)
}

// LoadNodeToInt reads the persisted identifier-to-integer mapping for a
// source. A missing mapping file is fatal: the re-indexing stage has to run
// before the edge list can be produced.
func LoadNodeToInt(kbDir string) (map[string]int, error) {
	path := filepath.Join(kbDir, NodeToIntFile)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", kb.ErrMissingFile, path)
		}
		return nil, fmt.Errorf("failed to read id mapping: %w", err)
	}

	var nodeToInt map[string]int
	if err := json.Unmarshal(data, &nodeToInt); err != nil {
		return nil, fmt.Errorf("failed to parse id mapping %s: %w", path, err)
	}
	return nodeToInt, nil
}

// WriteEdgeList emits one "<int-child> <int-parent>" line per edge whose
// both endpoints are present in the mapping, preserving edge order. Edges
// referencing unmapped identifiers are dropped; the dropped count is
// returned for reporting, not treated as an error.
func WriteEdgeList(path string, edges []kb.Edge, nodeToInt map[string]int) (written, dropped int, err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return 0, 0, fmt.Errorf("failed to create output directory: %w", err)
	}

	tempPath := path + ".tmp"
	f, err := os.Create(tempPath)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to create edge-list file: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, e := range edges {
		child, okChild := nodeToInt[e.Child]
		parent, okParent := nodeToInt[e.Parent]
		if !okChild || !okParent {
			dropped++
			continue
		}
		if _, err := fmt.Fprintf(w, "%d %d\n", child, parent); err != nil {
			return written, dropped, fmt.Errorf("failed to write edge list: %w", err)
		}
		written++
	}
	if err := w.Flush(); err != nil {
		return written, dropped, fmt.Errorf("failed to flush edge list: %w", err)
	}
	if err := f.Close(); err != nil {
		return written, dropped, fmt.Errorf("failed to close edge list: %w", err)
	}

	// Atomic rename so a partial write never replaces a previous export.
	if err := os.Rename(tempPath, path); err != nil {
		return written, dropped, fmt.Errorf("failed to rename edge-list file: %w", err)
	}
	return written, dropped, nil
}

// writeJSON persists a value as indented JSON using the temp-then-rename
// pattern.
func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", filepath.Base(path), err)
	}

	tempPath := path + ".tmp"
	if err := os.WriteFile(tempPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", tempPath, err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		return fmt.Errorf("failed to rename %s: %w", tempPath, err)
	}
	return nil
}
