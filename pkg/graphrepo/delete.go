package graphrepo

import "github.com/vennlane/graphrepo/pkg/storage"

// Delete removes every node resolved by selector along with every edge
// incident to it, and returns the removed nodes.
func (r *Repository) Delete(selector any) ([]storage.Node, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	nodes, err := r.resolveSelector(selector)
	if err != nil {
		return nil, err
	}
	out := make([]storage.Node, 0, len(nodes))
	for _, n := range nodes {
		deleted, err := r.store.DeleteNode(n.ID)
		if err != nil {
			return out, err
		}
		out = append(out, *deleted)
	}
	return out, nil
}
