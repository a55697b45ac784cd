package graphrepo

import (
	"sort"

	"github.com/vennlane/graphrepo/pkg/storage"
)

// NodeModel is a lazy, read-only view over a stored node. It never
// caches anything: every accessor re-reads the underlying store, so a
// model handed out before a later Update or Delete always reflects the
// current state (or NotFoundError once the node is gone). There is
// deliberately no setter — writes go through Repository.Update.
type NodeModel struct {
	repo *Repository
	id   storage.ID
}

// ID returns the node's identifier. Stable for the model's lifetime
// even if the underlying node is later deleted.
func (m *NodeModel) ID() storage.ID {
	return m.id
}

// Kind returns the node's kind.
func (m *NodeModel) Kind() (string, error) {
	n, err := m.repo.store.GetNode(m.id)
	if err != nil {
		return "", &NotFoundError{ID: string(m.id)}
	}
	return n.Kind, nil
}

// Value returns a scalar/collection property by name. ok is false both
// when the node no longer exists and when name is simply absent — the
// view never distinguishes the two at this layer, matching the spec's
// "absent" wording for an unset field.
func (m *NodeModel) Value(name string) (any, bool) {
	n, err := m.repo.store.GetNode(m.id)
	if err != nil {
		return nil, false
	}
	v, ok := n.Properties[name]
	return v, ok
}

// Related resolves a declared relation by name, re-scanning the edge
// store on every call.
func (m *NodeModel) Related(name string) ([]*NodeModel, error) {
	n, err := m.repo.store.GetNode(m.id)
	if err != nil {
		return nil, &NotFoundError{ID: string(m.id)}
	}
	related, err := m.repo.relatedNodes(n, name)
	if err != nil {
		return nil, err
	}
	out := make([]*NodeModel, len(related))
	for i, rn := range related {
		out[i] = m.repo.newModel(rn.ID)
	}
	return out, nil
}

// Fields returns the union of the node's value-field names and its
// declared relation names, sorted for deterministic output.
func (m *NodeModel) Fields() []string {
	n, err := m.repo.store.GetNode(m.id)
	if err != nil {
		return nil
	}
	fields := make([]string, 0, len(n.Properties))
	for k := range n.Properties {
		fields = append(fields, k)
	}
	for name := range m.repo.schema.RelationsFor(n.Kind) {
		fields = append(fields, name)
	}
	sort.Strings(fields)
	return fields
}
