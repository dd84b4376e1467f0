package extract

import (
	"bufio"
	"context"
	"log"
	"strings"

	"github.com/lasige-bio/kbgraph/internal/config"
	"github.com/lasige-bio/kbgraph/internal/kb"
)

// oboExtractor streams [Term] stanzas from a hierarchical-ontology file.
// It applies the per-source quirks declared in config: namespace filtering
// (GO sub-ontologies), derived_from relationship edges (cellosaurus) and
// cross-reference aliases (HP/UMLS).
type oboExtractor struct {
	path string
	src  config.Source
}

func newOBOExtractor(path string, src config.Source) *oboExtractor {
	return &oboExtractor{path: path, src: src}
}

// stanza accumulates the fields of one [Term] block.
type stanza struct {
	id            string
	name          string
	namespace     string
	obsolete      bool
	isA           []string
	altIDs        []string
	synonyms      []string
	xrefs         []string
	relationships []string
}

func (e *oboExtractor) Extract(ctx context.Context) (*Result, error) {
	f, err := openInput(e.path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	res := &Result{Aliases: make(map[string]string)}

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var current *stanza
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := scanner.Text()

		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "[") {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			e.flush(current, res)
			if line == "[Term]" {
				current = &stanza{}
			} else {
				// Typedef and other stanza kinds carry no concepts.
				current = nil
			}
			continue
		}

		if current == nil {
			continue
		}

		key, value, ok := strings.Cut(line, ": ")
		if !ok {
			continue
		}

		switch key {
		case "synonym":
			// Synonym text is carried inside the first pair of double
			// quotes: synonym: "text" EXACT []
			parts := strings.SplitN(value, `"`, 3)
			if len(parts) < 3 {
				log.Printf("[WARN] %s line %d: unquoted synonym skipped", e.path, lineNo)
				continue
			}
			current.synonyms = append(current.synonyms, parts[1])
			continue
		}

		// Trailing " ! name" comments accompany identifier values.
		if idx := strings.Index(value, " ! "); idx > 0 {
			value = value[:idx]
		}

		switch key {
		case "id":
			current.id = value
		case "name":
			current.name = value
		case "namespace":
			current.namespace = value
		case "is_obsolete":
			current.obsolete = value == "true"
		case "is_a":
			current.isA = append(current.isA, value)
		case "alt_id":
			current.altIDs = append(current.altIDs, value)
		case "xref":
			current.xrefs = append(current.xrefs, value)
		case "relationship":
			current.relationships = append(current.relationships, value)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	e.flush(current, res)

	return res, nil
}

// flush converts a completed stanza into concept and edge tuples. A stanza
// is accepted only when it has a name, passes the namespace filter and is
// not obsolete; obsolete stanzas contribute nothing, not even alternate
// identifiers.
func (e *oboExtractor) flush(s *stanza, res *Result) {
	if s == nil || s.name == "" {
		return
	}
	if s.id == "" {
		log.Printf("[WARN] %s: stanza %q has no id, skipped", e.path, s.name)
		return
	}
	if e.src.Namespace != "" && s.namespace != e.src.Namespace {
		return
	}
	if s.obsolete {
		return
	}

	res.Concepts = append(res.Concepts, kb.Concept{
		ID:       s.id,
		Name:     s.name,
		Synonyms: s.synonyms,
		AltIDs:   s.altIDs,
		Parents:  s.isA,
	})

	for _, parent := range s.isA {
		res.Edges = append(res.Edges, kb.Edge{Child: s.id, Parent: parent})
	}

	if e.src.DerivedFrom {
		for _, rel := range s.relationships {
			// A derived_from relation points from the originating line to
			// this stanza, the reverse of is_a direction.
			if target, ok := strings.CutPrefix(rel, "derived_from "); ok {
				res.Edges = append(res.Edges, kb.Edge{Child: target, Parent: s.id})
			}
		}
	}

	if e.src.XrefPrefix != "" {
		for _, xref := range s.xrefs {
			if external, ok := strings.CutPrefix(xref, e.src.XrefPrefix); ok {
				res.Aliases[external] = s.id
			}
		}
	}
}
