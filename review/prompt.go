package review

import (
	"fmt"
	"sort"
	"strings"

	forge "github.com/goliatone/go-forge"
)

var taskInstructions = map[Task]string{
	TaskValidate: `Analyze the agent graph for quality and completeness.
Focus on: model selection, trigger configuration validity, output wiring,
error scenarios, and security considerations.`,
	TaskImprove: `Suggest concrete improvements to the agent graph.
Focus on: missing components, better defaults, and structural simplifications.`,
	TaskMetadata: `Propose a short name and one-sentence description for the
agent graph based on what its components do.`,
	TaskEvaluateCycles: `Inspect the connection list for cycles and explain
whether each cycle is intentional (feedback loop) or a wiring mistake.`,
}

// BuildPrompt renders g as node and connection lines followed by the
// task's instructions and the required JSON response shape. The output
// is deterministic for an unmodified graph.
func BuildPrompt(g *forge.Graph, task Task) string {
	var b strings.Builder

	b.WriteString("# Agent Graph Review\n\n")
	if name := g.Metadata.Name; name != "" {
		fmt.Fprintf(&b, "Graph: %s\n", name)
	}
	if desc := g.Metadata.Description; desc != "" {
		fmt.Fprintf(&b, "Description: %s\n", desc)
	}

	nodes := g.Nodes()
	fmt.Fprintf(&b, "\n## Nodes (%d)\n", len(nodes))
	for _, n := range nodes {
		cat := "unknown"
		if c, ok := g.NodeCategory(n); ok {
			cat = string(c)
		}
		fmt.Fprintf(&b, "- %s: %s (%s)%s\n", n.ID, n.TypeID, cat, configLine(n))
	}

	conns := g.Connections()
	fmt.Fprintf(&b, "\n## Connections (%d)\n", len(conns))
	for _, c := range conns {
		fmt.Fprintf(&b, "- %s -> %s\n", c.From, c.To)
	}

	b.WriteString("\n## Task\n")
	b.WriteString(taskInstructions[task])
	b.WriteString(`

## Required Response Format

Respond with a single JSON object:

{
  "score": <number 0-100>,
  "feedback": "<detailed feedback>",
  "suggestions": ["<suggestion>", ...]
}
`)
	return b.String()
}

// configLine renders a node's set config keys in catalog field order so
// the prompt stays stable across calls.
func configLine(n *forge.Node) string {
	if len(n.Config) == 0 {
		return ""
	}
	keys := make([]string, 0, len(n.Config))
	for k := range n.Config {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, n.Config[k]))
	}
	return " [" + strings.Join(parts, ", ") + "]"
}
