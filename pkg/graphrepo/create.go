package graphrepo

import (
	"fmt"

	"github.com/vennlane/graphrepo/pkg/schema"
	"github.com/vennlane/graphrepo/pkg/storage"
)

// Create inserts a new node from input (a map[string]any carrying a
// "kind" field plus scalar/collection value fields and relation
// fields) and returns a view over it. Relation fields recursively
// create child nodes, unless an element is a node ref ({"id": "..."})
// naming an existing node of the relation's related kind, in which
// case only the edge is created.
func (r *Repository) Create(input any) (*NodeModel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	node, err := r.createNode(input)
	if err != nil {
		return nil, err
	}
	return r.newModel(node.ID), nil
}

// CreateMany creates each input in order. If one fails validation, the
// nodes created before it remain in the store — create has no
// transactional rollback (§7).
func (r *Repository) CreateMany(inputs []any) ([]*NodeModel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	models := make([]*NodeModel, 0, len(inputs))
	for _, in := range inputs {
		node, err := r.createNode(in)
		if err != nil {
			return models, err
		}
		models = append(models, r.newModel(node.ID))
	}
	return models, nil
}

func (r *Repository) createNode(input any) (*storage.Node, error) {
	m, ok := input.(map[string]any)
	if !ok {
		return nil, &ValidationError{Expected: "map[string]any", Received: input, Message: "create input must be an object"}
	}
	kind, ok := m["kind"].(string)
	if !ok || kind == "" {
		return nil, &ValidationError{Path: "kind", Expected: "non-empty string", Received: m["kind"], Message: "create input requires a kind"}
	}

	values, relations := partition(r.schema, kind, m)
	node := &storage.Node{ID: r.store.NextID(), Kind: kind, Properties: values}
	r.store.PutNode(node)

	for name, sub := range relations {
		rel, ok := r.schema.Relation(kind, name)
		if !ok {
			return node, &ValidationError{Path: name, Message: fmt.Sprintf("unknown relation %q for kind %q", name, kind)}
		}
		for _, elem := range normalizeList(sub) {
			related, err := r.resolveCreateElement(elem, rel)
			if err != nil {
				return node, err
			}
			if err := r.store.PutEdge(relationEdge(rel, node.ID, related.ID)); err != nil {
				return node, err
			}
		}
	}
	return node, nil
}

// resolveCreateElement resolves one relation-field element into the
// related node: either an existing node named by a ref, or a freshly
// created child node.
func (r *Repository) resolveCreateElement(elem any, rel schema.Relation) (*storage.Node, error) {
	if refID, ok := asNodeRef(elem); ok {
		n, err := r.store.GetNode(storage.ID(refID))
		if err != nil {
			return nil, &ValidationError{Path: "id", Expected: "existing node id", Received: refID, Message: "node ref does not name an existing node"}
		}
		if n.Kind != rel.RelatedKind() {
			return nil, &ValidationError{Path: "id", Expected: rel.RelatedKind(), Received: n.Kind, Message: "node ref kind does not match the relation's related kind"}
		}
		return n, nil
	}

	child, ok := elem.(map[string]any)
	if !ok {
		return nil, &ValidationError{Expected: "node ref or nested create object", Received: elem}
	}
	injected := make(map[string]any, len(child)+1)
	for k, v := range child {
		injected[k] = v
	}
	injected["kind"] = rel.RelatedKind()
	return r.createNode(injected)
}

// relationEdge builds the edge that realizes rel between a source node
// and a related node, oriented by rel's declared direction.
func relationEdge(rel schema.Relation, sourceID, relatedID storage.ID) *storage.Edge {
	if rel.Direction() == schema.DirectionFrom {
		return &storage.Edge{From: relatedID, To: sourceID, Kind: rel.EdgeKind}
	}
	return &storage.Edge{From: sourceID, To: relatedID, Kind: rel.EdgeKind}
}
