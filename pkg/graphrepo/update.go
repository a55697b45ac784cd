package graphrepo

import (
	"fmt"

	"github.com/vennlane/graphrepo/pkg/schema"
	"github.com/vennlane/graphrepo/pkg/storage"
)

// Update applies patch to every node resolved by selector and returns
// a view over each. patch is partitioned the same way a create input
// is: value fields are shallow-merged onto the node's Properties
// (collection-valued fields are replaced wholesale, never appended
// to); relation fields carry {"add": selector, "remove": selector}
// directives, where the nested selector is resolved against the
// relation's related kind (its "kind" field, if any, is ignored and
// overwritten) to find existing target nodes to link or unlink — it
// never creates new nodes, unlike a create input's relation fields.
func (r *Repository) Update(selector any, patch map[string]any) ([]*NodeModel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	nodes, err := r.resolveSelector(selector)
	if err != nil {
		return nil, err
	}
	models := make([]*NodeModel, 0, len(nodes))
	for _, n := range nodes {
		if err := r.updateNode(n, patch); err != nil {
			return models, err
		}
		models = append(models, r.newModel(n.ID))
	}
	return models, nil
}

func (r *Repository) updateNode(n *storage.Node, patch map[string]any) error {
	values, relations := partition(r.schema, n.Kind, patch)

	merged := n.Clone()
	for k, v := range values {
		merged.Properties[k] = v
	}
	r.store.PutNode(merged)

	for name, directive := range relations {
		dm, ok := directive.(map[string]any)
		if !ok {
			return &ValidationError{Path: name, Message: "relation patch must be an object with add and/or remove"}
		}
		rel, ok := r.schema.Relation(n.Kind, name)
		if !ok {
			return &ValidationError{Path: name, Message: fmt.Sprintf("unknown relation %q", name)}
		}
		if addSel, ok := dm["add"]; ok {
			targets, err := r.resolveRelationTargets(addSel, rel)
			if err != nil {
				return err
			}
			for _, t := range targets {
				if err := r.store.PutEdge(relationEdge(rel, merged.ID, t.ID)); err != nil {
					return err
				}
			}
		}
		if removeSel, ok := dm["remove"]; ok {
			targets, err := r.resolveRelationTargets(removeSel, rel)
			if err != nil {
				return err
			}
			for _, t := range targets {
				r.store.DeleteEdge(relationEdge(rel, merged.ID, t.ID))
			}
		}
	}
	return nil
}

// resolveRelationTargets resolves a relation directive's selector
// against rel's related kind, validating that every resolved node is
// actually of that kind.
func (r *Repository) resolveRelationTargets(sel any, rel schema.Relation) ([]*storage.Node, error) {
	targets, err := r.resolveSelector(injectKind(sel, rel.RelatedKind()))
	if err != nil {
		return nil, err
	}
	for _, t := range targets {
		if t.Kind != rel.RelatedKind() {
			return nil, &ValidationError{Path: "kind", Expected: rel.RelatedKind(), Received: t.Kind, Message: "relation directive resolved a node of the wrong kind"}
		}
	}
	return targets, nil
}
