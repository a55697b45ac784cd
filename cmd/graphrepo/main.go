// Command graphrepo runs a YAML schema/script file against the graph
// repository and prints each operation's result as indented JSON. It
// is a debugging and demonstration aid over the library, not a new
// subsystem: the script is read once at startup and never written
// back, and nothing here adds a network surface.
package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/vennlane/graphrepo/pkg/graphrepo"
	"github.com/vennlane/graphrepo/pkg/storage"
)

var logger = log.New(os.Stderr, "graphrepo: ", log.LstdFlags)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		logger.Fatal(err)
	}
}

func newRootCmd() *cobra.Command {
	var scriptPath string

	cmd := &cobra.Command{
		Use:   "graphrepo",
		Short: "Run a graph-repository schema and operation script",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScript(scriptPath)
		},
	}
	cmd.Flags().StringVarP(&scriptPath, "file", "f", "", "path to a YAML schema/script file")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func runScript(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read script: %w", err)
	}
	script, err := parseScript(data)
	if err != nil {
		return fmt.Errorf("parse script: %w", err)
	}

	repo := graphrepo.Open(script.graph(), graphrepo.LoadFromEnv())

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	for i, op := range script.Operations {
		result, err := execOperation(repo, op)
		if err != nil {
			return fmt.Errorf("operation %d (%s): %w", i, op.Op, err)
		}
		if err := enc.Encode(result); err != nil {
			return err
		}
	}
	return nil
}

func execOperation(repo *graphrepo.Repository, op operationSpec) (any, error) {
	switch op.Op {
	case "create":
		if list, ok := op.Input.([]any); ok {
			models, err := repo.CreateMany(list)
			if err != nil {
				return nil, err
			}
			return renderModels(models)
		}
		model, err := repo.Create(op.Input)
		if err != nil {
			return nil, err
		}
		return renderModel(model)

	case "find":
		sel := normalizeSelector(op.Selector)
		if id, ok := sel.(string); ok {
			model, err := repo.Find(id)
			if err != nil {
				return nil, err
			}
			return renderModel(model)
		}
		models, err := repo.FindMany(sel)
		if err != nil {
			return nil, err
		}
		return renderModels(models)

	case "update":
		sel := normalizeSelector(op.Selector)
		patch, _ := op.Patch.(map[string]any)
		models, err := repo.Update(sel, patch)
		if err != nil {
			return nil, err
		}
		return renderModels(models)

	case "delete":
		sel := normalizeSelector(op.Selector)
		nodes, err := repo.Delete(sel)
		if err != nil {
			return nil, err
		}
		out := make([]map[string]any, len(nodes))
		for i, n := range nodes {
			out[i] = renderNode(n)
		}
		return out, nil

	default:
		return nil, fmt.Errorf("unknown op %q", op.Op)
	}
}

// renderModel flattens a NodeModel one level deep: value fields
// pass through, relation fields become id lists. This keeps rendering
// finite even over a cyclic graph without needing to track visited
// nodes.
func renderModel(m *graphrepo.NodeModel) (map[string]any, error) {
	kind, err := m.Kind()
	if err != nil {
		return nil, err
	}
	out := map[string]any{"id": string(m.ID()), "kind": kind}
	for _, field := range m.Fields() {
		if v, ok := m.Value(field); ok {
			out[field] = v
			continue
		}
		relatedModels, err := m.Related(field)
		if err != nil {
			return nil, err
		}
		ids := make([]string, len(relatedModels))
		for i, rm := range relatedModels {
			ids[i] = string(rm.ID())
		}
		out[field] = ids
	}
	return out, nil
}

func renderModels(models []*graphrepo.NodeModel) ([]map[string]any, error) {
	out := make([]map[string]any, len(models))
	for i, m := range models {
		rendered, err := renderModel(m)
		if err != nil {
			return nil, err
		}
		out[i] = rendered
	}
	return out, nil
}

func renderNode(n storage.Node) map[string]any {
	out := map[string]any{"id": string(n.ID), "kind": n.Kind}
	for k, v := range n.Properties {
		out[k] = v
	}
	return out
}
