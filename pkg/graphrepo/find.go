package graphrepo

import "github.com/vennlane/graphrepo/pkg/storage"

// Find resolves a single id selector. Use FindMany for id lists or
// queries.
func (r *Repository) Find(selector any) (*NodeModel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id, ok := selector.(string)
	if !ok {
		return nil, &ValidationError{Message: "Find expects a string id; use FindMany for []string, map[string]any, or []map[string]any selectors"}
	}
	n, err := r.store.GetNode(storage.ID(id))
	if err != nil {
		return nil, &NotFoundError{ID: id}
	}
	return r.newModel(n.ID), nil
}

// FindMany resolves selector, one of:
//   - string: a single id (same as Find, wrapped in a one-element slice)
//   - []string: an id list, in order; a missing id is a NotFoundError
//   - map[string]any: a single query over a kind
//   - []map[string]any: a disjunction of queries; matches across
//     branches are concatenated (deduplicated only if
//     Config.DedupDisjunction is set)
func (r *Repository) FindMany(selector any) ([]*NodeModel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	nodes, err := r.resolveSelector(selector)
	if err != nil {
		return nil, err
	}
	models := make([]*NodeModel, len(nodes))
	for i, n := range nodes {
		models[i] = r.newModel(n.ID)
	}
	return models, nil
}

func (r *Repository) resolveSelector(selector any) ([]*storage.Node, error) {
	switch sel := normalizeQueryList(selector).(type) {
	case string:
		n, err := r.store.GetNode(storage.ID(sel))
		if err != nil {
			return nil, &NotFoundError{ID: sel}
		}
		return []*storage.Node{n}, nil
	case []string:
		out := make([]*storage.Node, 0, len(sel))
		for _, id := range sel {
			n, err := r.store.GetNode(storage.ID(id))
			if err != nil {
				return nil, &NotFoundError{ID: id}
			}
			out = append(out, n)
		}
		return out, nil
	case map[string]any:
		return r.findByQuery(sel)
	case []map[string]any:
		var out []*storage.Node
		seen := map[storage.ID]bool{}
		for _, q := range sel {
			matched, err := r.findByQuery(q)
			if err != nil {
				return nil, err
			}
			for _, n := range matched {
				if r.cfg.DedupDisjunction {
					if seen[n.ID] {
						continue
					}
					seen[n.ID] = true
				}
				out = append(out, n)
			}
		}
		return out, nil
	default:
		return nil, &ValidationError{Message: "selector must be a string, []string, map[string]any, or []map[string]any", Received: selector}
	}
}

func (r *Repository) findByQuery(query map[string]any) ([]*storage.Node, error) {
	kind, _ := query["kind"].(string)
	var out []*storage.Node
	for _, n := range r.store.NodesByKind(kind) {
		ok, err := r.matchesNodeQuery(n, query)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, n)
		}
	}
	return out, nil
}
