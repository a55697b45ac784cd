package graphrepo

import (
	"errors"

	"github.com/vennlane/graphrepo/pkg/storage"
	"github.com/vennlane/graphrepo/pkg/valueop"
)

// matchesNodeQuery reports whether n satisfies every entry in query.
// "kind" is ignored here — the dispatcher already filtered candidates
// by kind before calling this. "id" is a reserved pseudo-field
// comparing against n.ID itself, since a node's id is never part of
// its Properties bag. Every other key is either a value field (matched
// via valueop against n.Properties[key]) or a declared relation
// (matched via matchRelationField).
func (r *Repository) matchesNodeQuery(n *storage.Node, query map[string]any) (bool, error) {
	for k, v := range query {
		if k == "kind" {
			continue
		}
		var ok bool
		var err error
		switch {
		case k == "id":
			ok, err = valueop.Match(string(n.ID), v)
		case r.schema.HasRelation(n.Kind, k):
			ok, err = r.matchRelationField(n, k, v)
		default:
			ok, err = valueop.Match(n.Properties[k], v)
		}
		if err != nil {
			return false, wrapOperatorError(k, err)
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}

// matchRelationField matches a relation field. A []map[string]any (or
// a dynamically-decoded []any of query objects, normalized the same
// way) is a disjunction of sub-queries: n matches if any related node
// satisfies any sub-query. A map[string]any is an operator object
// applied to the related nodes' id list (supporting length/empty/
// includes queries such as {documents: {length: {gt: 1}}}).
func (r *Repository) matchRelationField(n *storage.Node, name string, field any) (bool, error) {
	related, err := r.relatedNodes(n, name)
	if err != nil {
		return false, err
	}
	switch f := normalizeQueryList(field).(type) {
	case []map[string]any:
		for _, rn := range related {
			for _, sub := range f {
				ok, err := r.matchesNodeQuery(rn, sub)
				if err != nil {
					return false, err
				}
				if ok {
					return true, nil
				}
			}
		}
		return false, nil
	case map[string]any:
		return valueop.Match(relatedIDs(related), f)
	default:
		return false, &ValidationError{Path: name, Message: "relation field must be []map[string]any sub-queries or an operator object"}
	}
}

func relatedIDs(related []*storage.Node) []any {
	out := make([]any, len(related))
	for i, n := range related {
		out[i] = string(n.ID)
	}
	return out
}

func wrapOperatorError(path string, err error) error {
	if errors.Is(err, valueop.ErrNotImplemented) {
		return &NotImplementedError{Operator: path, Err: err}
	}
	if errors.Is(err, valueop.ErrInvalidOperator) {
		return &ValidationError{Path: path, Expected: "operator object with exactly one key", Message: err.Error()}
	}
	return err
}
