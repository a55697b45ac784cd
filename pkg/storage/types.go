// Package storage provides the node and edge store for the in-memory
// graph repository.
//
// The storage layer keeps the property-graph model minimal on purpose:
// a node is an id, a kind, and a bag of scalar/collection properties; an
// edge is a directed, typed link between two node ids. There is no
// durability layer — everything lives in process memory for the
// lifetime of a Store.
//
// Example Usage:
//
//	store := storage.NewStore()
//	store.PutNode(&storage.Node{ID: "1", Kind: "user", Properties: map[string]any{
//		"username": "steve",
//	}})
//	store.PutNode(&storage.Node{ID: "2", Kind: "author"})
//	store.PutEdge(&storage.Edge{From: "1", To: "2", Kind: "is"})
package storage

import "errors"

// Common errors returned by Store operations.
var (
	ErrNotFound    = errors.New("not found")
	ErrInvalidEdge = errors.New("invalid edge: start or end node not found")
)

// ID is an opaque, non-empty identifier unique across all nodes in a
// Store. Callers never synthesize ids; the repository layer allocates
// them from a monotone counter.
type ID string

// Node is a record with an immutable id and kind plus any number of
// kind-specific scalar or collection fields in Properties.
type Node struct {
	ID         ID
	Kind       string
	Properties map[string]any
}

// Edge is a directed, typed link between two nodes. An edge is uniquely
// identified by the tuple (From, Kind, To); inserting a duplicate is an
// idempotent no-op (see Store.PutEdge).
type Edge struct {
	From ID
	To   ID
	Kind string
}

// Key returns the canonical string identity of an edge: its endpoints
// and kind are independent of whichever node is doing the traversing.
func (e Edge) Key() string {
	return string(e.From) + "::" + e.Kind + "::" + string(e.To)
}

// Clone returns a shallow copy of the node with its own Properties map,
// so callers can mutate the copy without touching stored state.
func (n *Node) Clone() *Node {
	props := make(map[string]any, len(n.Properties))
	for k, v := range n.Properties {
		props[k] = v
	}
	return &Node{ID: n.ID, Kind: n.Kind, Properties: props}
}
