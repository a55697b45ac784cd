// Package entitystore is the flat entity repository: simple id/id-
// list/query CRUD over a map of opaque entities, sharing the value-
// operator vocabulary (pkg/valueop) the graph query matcher uses. It
// is not part of the graph core — it exists only as evidence of that
// shared vocabulary (spec.md §4.11) and as a simpler collaborator for
// callers that don't need relation traversal at all.
package entitystore

import (
	"strconv"
	"sync"

	"github.com/vennlane/graphrepo/pkg/valueop"
)

// ID is an opaque entity identifier.
type ID string

// Entity is a plain id/property-bag record returned by reads.
type Entity struct {
	ID         ID
	Properties map[string]any
}

// Repository is a thread-safe flat entity store.
type Repository struct {
	mu sync.Mutex

	entities map[ID]map[string]any
	order    []ID // insertion order, may contain deleted ids

	nextID uint64

	// allowExplicitID enables the AlreadyExists duplicate-detection
	// mode: callers may supply an "id" field on Create, and a
	// collision fails with AlreadyExistsError. Off by default, in
	// which case ids are always engine-generated, matching the graph
	// core's own id discipline.
	allowExplicitID bool
}

// New returns an empty Repository with engine-generated ids only.
func New() *Repository {
	return &Repository{entities: map[ID]map[string]any{}}
}

// NewStrict returns an empty Repository with the AlreadyExists
// duplicate-rejection mode enabled.
func NewStrict() *Repository {
	r := New()
	r.allowExplicitID = true
	return r
}

// Create inserts a new entity from input and returns its id. Unless
// the repository was built with NewStrict, any "id" field in input is
// ignored and an id is always engine-generated.
func (r *Repository) Create(input map[string]any) (ID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id, err := r.assignID(input)
	if err != nil {
		return "", err
	}
	props := make(map[string]any, len(input))
	for k, v := range input {
		if k == "id" {
			continue
		}
		props[k] = v
	}
	r.entities[id] = props
	r.order = append(r.order, id)
	return id, nil
}

func (r *Repository) assignID(input map[string]any) (ID, error) {
	if r.allowExplicitID {
		if raw, ok := input["id"]; ok {
			idStr, ok := raw.(string)
			if !ok || idStr == "" {
				return "", &ValidationError{Path: "id", Message: "id must be a non-empty string"}
			}
			if _, exists := r.entities[ID(idStr)]; exists {
				return "", &AlreadyExistsError{ID: idStr}
			}
			return ID(idStr), nil
		}
	}
	r.nextID++
	return ID(strconv.FormatUint(r.nextID, 10)), nil
}

// Find resolves selector — a string id, a []string id list, a
// map[string]any query, or a []map[string]any disjunction of queries
// — to the matching entities. Results for a query/query-list selector
// are returned in insertion order; duplicates across disjunction
// branches are not removed, matching the graph core's find (§4.7, §9).
func (r *Repository) Find(selector any) ([]Entity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.resolve(selector)
}

// Update applies patch (a shallow value-field merge; there are no
// relations to patch in this collaborator) to every entity resolved
// by selector and returns the updated entities.
func (r *Repository) Update(selector any, patch map[string]any) ([]Entity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ids, err := r.resolveIDs(selector)
	if err != nil {
		return nil, err
	}
	out := make([]Entity, 0, len(ids))
	for _, id := range ids {
		props := r.entities[id]
		for k, v := range patch {
			if k == "id" {
				continue
			}
			props[k] = v
		}
		out = append(out, Entity{ID: id, Properties: cloneProps(props)})
	}
	return out, nil
}

// Delete removes every entity resolved by selector and returns the
// removed entities.
func (r *Repository) Delete(selector any) ([]Entity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ids, err := r.resolveIDs(selector)
	if err != nil {
		return nil, err
	}
	out := make([]Entity, 0, len(ids))
	for _, id := range ids {
		out = append(out, Entity{ID: id, Properties: cloneProps(r.entities[id])})
		delete(r.entities, id)
	}
	return out, nil
}

func (r *Repository) resolveIDs(selector any) ([]ID, error) {
	entities, err := r.resolve(selector)
	if err != nil {
		return nil, err
	}
	ids := make([]ID, len(entities))
	for i, e := range entities {
		ids[i] = e.ID
	}
	return ids, nil
}

func (r *Repository) resolve(selector any) ([]Entity, error) {
	switch sel := selector.(type) {
	case string:
		return r.getOne(ID(sel))
	case []string:
		out := make([]Entity, 0, len(sel))
		for _, id := range sel {
			e, err := r.getOne(ID(id))
			if err != nil {
				return nil, err
			}
			out = append(out, e[0])
		}
		return out, nil
	case map[string]any:
		return r.findByQuery(sel)
	case []map[string]any:
		var out []Entity
		for _, q := range sel {
			matched, err := r.findByQuery(q)
			if err != nil {
				return nil, err
			}
			out = append(out, matched...)
		}
		return out, nil
	default:
		return nil, &ValidationError{Message: "selector must be a string, []string, map[string]any, or []map[string]any"}
	}
}

func (r *Repository) getOne(id ID) ([]Entity, error) {
	props, ok := r.entities[id]
	if !ok {
		return nil, &NotFoundError{ID: string(id)}
	}
	return []Entity{{ID: id, Properties: cloneProps(props)}}, nil
}

func (r *Repository) findByQuery(query map[string]any) ([]Entity, error) {
	var out []Entity
	for _, id := range r.order {
		props, ok := r.entities[id]
		if !ok {
			continue
		}
		matched := true
		for k, v := range query {
			ok, err := valueop.Match(props[k], v)
			if err != nil {
				return nil, err
			}
			if !ok {
				matched = false
				break
			}
		}
		if matched {
			out = append(out, Entity{ID: id, Properties: cloneProps(props)})
		}
	}
	return out, nil
}

func cloneProps(props map[string]any) map[string]any {
	out := make(map[string]any, len(props))
	for k, v := range props {
		out[k] = v
	}
	return out
}
