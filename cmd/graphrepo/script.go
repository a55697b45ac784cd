package main

import (
	"gopkg.in/yaml.v3"

	"github.com/vennlane/graphrepo/pkg/graphrepo"
	"github.com/vennlane/graphrepo/pkg/schema"
	"github.com/vennlane/graphrepo/pkg/storage"
)

// scriptFile is the YAML shape accepted by the script runner: an
// optional initial snapshot (nodes, edges, relations) plus an ordered
// list of operations to run against the repository it produces.
type scriptFile struct {
	Relations  map[string]map[string]relationSpec `yaml:"relations"`
	Nodes      []nodeSpec                         `yaml:"nodes"`
	Edges      []edgeSpec                         `yaml:"edges"`
	Operations []operationSpec                    `yaml:"operations"`
}

type relationSpec struct {
	From     string `yaml:"from"`
	To       string `yaml:"to"`
	EdgeKind string `yaml:"edgeKind"`
}

type nodeSpec struct {
	ID         string         `yaml:"id"`
	Kind       string         `yaml:"kind"`
	Properties map[string]any `yaml:"properties"`
}

type edgeSpec struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
	Kind string `yaml:"kind"`
}

type operationSpec struct {
	Op       string `yaml:"op"`
	Input    any    `yaml:"input,omitempty"`
	Selector any    `yaml:"selector,omitempty"`
	Patch    any    `yaml:"patch,omitempty"`
}

func parseScript(data []byte) (*scriptFile, error) {
	var s scriptFile
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *scriptFile) graph() *graphrepo.Graph {
	nodes := make([]storage.Node, len(s.Nodes))
	for i, n := range s.Nodes {
		nodes[i] = storage.Node{ID: storage.ID(n.ID), Kind: n.Kind, Properties: n.Properties}
	}
	edges := make([]storage.Edge, len(s.Edges))
	for i, e := range s.Edges {
		edges[i] = storage.Edge{From: storage.ID(e.From), To: storage.ID(e.To), Kind: e.Kind}
	}
	relations := make(map[string]map[string]schema.Relation, len(s.Relations))
	for kind, rels := range s.Relations {
		converted := make(map[string]schema.Relation, len(rels))
		for name, r := range rels {
			converted[name] = schema.Relation{From: r.From, To: r.To, EdgeKind: r.EdgeKind}
		}
		relations[kind] = converted
	}
	return &graphrepo.Graph{Nodes: nodes, Edges: edges, Relations: relations}
}

// normalizeSelector converts a generically yaml-decoded selector
// (string, []interface{}, or map[string]any) into the shape
// Repository.FindMany/Update/Delete dispatch on: string, []string,
// map[string]any, or []map[string]any. A []interface{} is classified
// by its first element; yaml.v3 decodes mapping nodes directly into
// map[string]any, so nested maps need no further conversion.
func normalizeSelector(v any) any {
	list, ok := v.([]any)
	if !ok {
		return v
	}
	if len(list) == 0 {
		return []string{}
	}
	if _, ok := list[0].(string); ok {
		out := make([]string, len(list))
		for i, e := range list {
			out[i], _ = e.(string)
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
