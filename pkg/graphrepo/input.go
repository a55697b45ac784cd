package graphrepo

import (
	"github.com/vennlane/graphrepo/pkg/schema"
)

// partition splits m into value fields and relation fields for kind,
// per the spec's rule: a key is a relation field iff kind declares a
// relation by that name; "kind" and "id" are always excluded from both
// — "kind" lives on Node.Kind and "id" is engine-assigned, so neither
// belongs in the value-field property bag.
func partition(sch *schema.Schema, kind string, m map[string]any) (values map[string]any, relations map[string]any) {
	values = map[string]any{}
	relations = map[string]any{}
	for k, v := range m {
		if k == "kind" || k == "id" {
			continue
		}
		if sch.HasRelation(kind, k) {
			relations[k] = v
		} else {
			values[k] = v
		}
	}
	return values, relations
}

// normalizeList normalises a relation value into a list: a []any is
// used as-is, anything else (a single node ref or a single nested
// create/query object) becomes its sole element.
func normalizeList(sub any) []any {
	if list, ok := sub.([]any); ok {
		return list
	}
	return []any{sub}
}

// asNodeRef reports whether e is a node reference — an object with
// exactly one key, "id", holding a string. It checks the shape only;
// whether that id names an existing node is checked by the caller.
func asNodeRef(e any) (string, bool) {
	m, ok := e.(map[string]any)
	if !ok || len(m) != 1 {
		return "", false
	}
	idVal, ok := m["id"]
	if !ok {
		return "", false
	}
	idStr, ok := idVal.(string)
	return idStr, ok
}

// normalizeQueryList converts a dynamically-decoded []any — the shape
// produced by generic JSON/YAML decoding, and the shape normalizeList
// itself accepts for create relation fields — into the concrete
// []string or []map[string]any shape the internal selector dispatch
// switches on. Anything that isn't a []any passes through unchanged.
func normalizeQueryList(v any) any {
	list, ok := v.([]any)
	if !ok {
		return v
	}
	if len(list) == 0 {
		return []map[string]any{}
	}
	if _, ok := list[0].(string); ok {
		out := make([]string, 0, len(list))
		for _, e := range list {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	out := make([]map[string]any, 0, len(list))
	for _, e := range list {
		if m, ok := e.(map[string]any); ok {
			out = append(out, m)
		}
	}
	return out
}

// injectKind copies sel, adding/overwriting a "kind" field on a query
// or query list, so an update's add/remove sub-query can omit the kind
// implied by the relation it is attached through. Id/id-list selectors
// pass through unchanged — their kind is checked after resolution.
func injectKind(sel any, kind string) any {
	switch s := normalizeQueryList(sel).(type) {
	case map[string]any:
		merged := make(map[string]any, len(s)+1)
		for k, v := range s {
			merged[k] = v
		}
		merged["kind"] = kind
		return merged
	case []map[string]any:
		out := make([]map[string]any, len(s))
		for i, q := range s {
			merged := make(map[string]any, len(q)+1)
			for k, v := range q {
				merged[k] = v
			}
			merged["kind"] = kind
			out[i] = merged
		}
		return out
	default:
		return sel
	}
}
