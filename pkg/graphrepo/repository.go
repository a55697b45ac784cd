// Package graphrepo is the in-memory, schema-driven graph repository:
// nested create/find/update/delete over a property graph, driven by a
// declared set of named relations rather than static types.
//
// A Repository wraps a *storage.Store and a *schema.Schema behind a
// single mutex, matching the teacher's MemoryEngine habit of taking a
// lock on every public method even under a single-logical-actor
// concurrency model — cheap insurance, not a promised concurrency
// feature.
//
// Example Usage:
//
//	repo := graphrepo.Open(&graphrepo.Graph{Relations: map[string]map[string]schema.Relation{
//		"author": {"documents": {To: "document", EdgeKind: "owns"}},
//	}}, graphrepo.DefaultConfig())
//	author, err := repo.Create(map[string]any{
//		"kind": "author", "name": "Ada",
//		"documents": []any{map[string]any{"kind": "document", "title": "Notes"}},
//	})
package graphrepo

import (
	"strconv"
	"sync"

	"github.com/vennlane/graphrepo/pkg/schema"
	"github.com/vennlane/graphrepo/pkg/storage"
)

// Graph is an initial snapshot a Repository can be opened with: a set
// of nodes and edges already in the store, plus the relation schema
// that governs traversal over them.
type Graph struct {
	Nodes     []storage.Node
	Edges     []storage.Edge
	Relations map[string]map[string]schema.Relation
}

// Repository is the aggregate root over a node/edge Store and a
// Schema. All public methods hold repo's mutex for the duration of the
// call, so a nested create or a cascading delete is observed as a
// single atomic step by any other caller of the same Repository.
type Repository struct {
	mu     sync.Mutex
	store  *storage.Store
	schema *schema.Schema
	cfg    Config
}

// New returns an empty Repository with default configuration.
func New() *Repository {
	return Open(nil, DefaultConfig())
}

// Open returns a Repository seeded from g (nil for an empty graph)
// using cfg. Snapshot nodes/edges are loaded directly into the store,
// bypassing Create — callers are responsible for snapshot id
// consistency; the repository's own id counter is advanced past any
// numeric-looking snapshot ids so ids it allocates afterward cannot
// collide with them.
func Open(g *Graph, cfg Config) *Repository {
	st := storage.NewStore()
	sch := schema.New(nil)
	if g != nil {
		sch = schema.New(g.Relations)
		for i := range g.Nodes {
			st.PutNode(&g.Nodes[i])
			bumpCounter(st, g.Nodes[i].ID)
		}
		for i := range g.Edges {
			// Snapshot edges are trusted to reference snapshot nodes;
			// an error here means the snapshot itself is malformed, so
			// it is silently skipped rather than failing Open.
			_ = st.PutEdge(&g.Edges[i])
		}
	}
	return &Repository{store: st, schema: sch, cfg: cfg}
}

func bumpCounter(st *storage.Store, id storage.ID) {
	n, err := strconv.ParseUint(string(id), 10, 64)
	if err != nil {
		return
	}
	st.ReserveID(n)
}

func (r *Repository) newModel(id storage.ID) *NodeModel {
	return &NodeModel{repo: r, id: id}
}

// resolveNode accepts a string id, a storage.ID, a storage.Node,
// *storage.Node, or *NodeModel and returns the current stored node.
func (r *Repository) resolveNode(nodeOrID any) (*storage.Node, error) {
	switch v := nodeOrID.(type) {
	case string:
		n, err := r.store.GetNode(storage.ID(v))
		if err != nil {
			return nil, &NotFoundError{ID: v}
		}
		return n, nil
	case storage.ID:
		n, err := r.store.GetNode(v)
		if err != nil {
			return nil, &NotFoundError{ID: string(v)}
		}
		return n, nil
	case storage.Node:
		return r.resolveNode(v.ID)
	case *storage.Node:
		return r.resolveNode(v.ID)
	case *NodeModel:
		return r.resolveNode(v.id)
	default:
		return nil, &ValidationError{Message: "expected an id, Node, or NodeModel"}
	}
}

// relatedNodes resolves the nodes reachable from n via relationName,
// re-scanning the edge store on every call so the result is never
// stale.
func (r *Repository) relatedNodes(n *storage.Node, relationName string) ([]*storage.Node, error) {
	rel, ok := r.schema.Relation(n.Kind, relationName)
	if !ok {
		return nil, nil
	}
	var out []*storage.Node
	for _, e := range r.store.Edges() {
		if rel.EdgeKind != "" && e.Kind != rel.EdgeKind {
			continue
		}
		var otherID storage.ID
		switch rel.Direction() {
		case schema.DirectionTo:
			if e.From != n.ID {
				continue
			}
			otherID = e.To
		case schema.DirectionFrom:
			if e.To != n.ID {
				continue
			}
			otherID = e.From
		}
		related, err := r.store.GetNode(otherID)
		if err != nil || related.Kind != rel.RelatedKind() {
			continue
		}
		out = append(out, related)
	}
	return out, nil
}

// GetRelatedNodes returns the nodes reachable from nodeOrID via the
// named relation, as plain storage.Node values.
func (r *Repository) GetRelatedNodes(nodeOrID any, relationName string) ([]storage.Node, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n, err := r.resolveNode(nodeOrID)
	if err != nil {
		return nil, err
	}
	related, err := r.relatedNodes(n, relationName)
	if err != nil {
		return nil, err
	}
	out := make([]storage.Node, len(related))
	for i, rn := range related {
		out[i] = *rn
	}
	return out, nil
}

// GetModel returns the lazy NodeModel view over nodeOrID.
func (r *Repository) GetModel(nodeOrID any) (*NodeModel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n, err := r.resolveNode(nodeOrID)
	if err != nil {
		return nil, err
	}
	return r.newModel(n.ID), nil
}
