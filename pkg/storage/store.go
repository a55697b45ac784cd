package storage

import (
	"strconv"
	"sync"
)

// Store is a thread-safe in-memory node/edge store.
//
// Indexed for the access patterns the repository layer needs:
//   - node lookup by id: O(1)
//   - node iteration by kind, in insertion order: O(n), walking every
//     inserted node id and keeping those of the kind
//   - edge lookup by (from, kind, to): O(1)
//   - edge iteration in insertion order, for relation traversal
//
// Store never removes from its insertion-order slices on delete; it
// marks the backing map entry gone and iteration skips the tombstone.
// An id or key that is deleted and inserted again is listed once, at
// its first position. This keeps DeleteEdge O(1) and spares every
// delete a slice rewrite (DeleteNode still scans the edge keys for
// incident edges), at the cost of slices that grow monotonically with
// churn — acceptable for the single-actor,
// no-persistence model this component serves (§5 of the spec).
type Store struct {
	mu sync.Mutex

	nodes    map[ID]*Node
	nodeKeys []ID // insertion order, may contain deleted ids

	edges    map[string]*Edge
	edgeKeys []string // insertion order, may contain deleted keys

	nextID uint64
}

// NewStore returns an empty Store.
func NewStore() *Store {
	return &Store{
		nodes: make(map[ID]*Node),
		edges: make(map[string]*Edge),
	}
}

// NextID allocates the next monotone id as a decimal string, starting
// at "1". Guarded by the same mutex as every other mutation so ids
// never collide even if a future caller interleaves reads between
// allocation and insertion.
func (s *Store) NextID() ID {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	return ID(strconv.FormatUint(s.nextID, 10))
}

// ReserveID advances the id counter so that it is at least n, without
// allocating an id. Used when loading a snapshot whose node ids happen
// to be numeric, so ids allocated afterward cannot collide with them.
func (s *Store) ReserveID(n uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n > s.nextID {
		s.nextID = n
	}
}

// PutNode inserts or replaces a node record.
func (s *Store) PutNode(n *Node) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.nodes[n.ID]; !exists {
		s.nodeKeys = append(s.nodeKeys, n.ID)
	}
	s.nodes[n.ID] = n
}

// GetNode returns the node for id, or ErrNotFound.
func (s *Store) GetNode(id ID) (*Node, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, ok := s.nodes[id]
	if !ok {
		return nil, ErrNotFound
	}
	return n, nil
}

// DeleteNode removes a node and every edge incident to it (either
// endpoint), returning the removed node.
func (s *Store) DeleteNode(id ID) (*Node, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, ok := s.nodes[id]
	if !ok {
		return nil, ErrNotFound
	}
	delete(s.nodes, id)
	for _, key := range s.edgeKeys {
		e, ok := s.edges[key]
		if !ok {
			continue
		}
		if e.From == id || e.To == id {
			delete(s.edges, key)
		}
	}
	return n, nil
}

// NodesByKind returns every node of the given kind in insertion order.
func (s *Store) NodesByKind(kind string) []*Node {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*Node
	seen := make(map[ID]bool)
	for _, id := range s.nodeKeys {
		n, ok := s.nodes[id]
		if !ok || n.Kind != kind || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, n)
	}
	return out
}

// PutEdge inserts an edge. Inserting a duplicate (same From/Kind/To) is
// an idempotent no-op. Fails with ErrInvalidEdge if either endpoint
// does not exist.
func (s *Store) PutEdge(e *Edge) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.nodes[e.From]; !ok {
		return ErrInvalidEdge
	}
	if _, ok := s.nodes[e.To]; !ok {
		return ErrInvalidEdge
	}
	key := e.Key()
	if _, exists := s.edges[key]; exists {
		return nil
	}
	s.edges[key] = e
	s.edgeKeys = append(s.edgeKeys, key)
	return nil
}

// DeleteEdge removes the edge matching e's endpoints and kind. A
// missing edge is not an error (delete is used for idempotent
// "remove" directives).
func (s *Store) DeleteEdge(e *Edge) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.edges, e.Key())
}

// Edges returns every stored edge in insertion order.
func (s *Store) Edges() []*Edge {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*Edge, 0, len(s.edgeKeys))
	seen := make(map[string]bool, len(s.edgeKeys))
	for _, key := range s.edgeKeys {
		if seen[key] {
			continue
		}
		seen[key] = true
		if e, ok := s.edges[key]; ok {
			out = append(out, e)
		}
	}
	return out
}
