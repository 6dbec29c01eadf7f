// Package validate checks agent graphs for structural soundness. It
// aggregates every problem it finds into a single result instead of
// failing fast, so a caller can render the complete picture in one pass.
package validate

import (
	"fmt"
	"strings"

	rcron "github.com/robfig/cron/v3"

	forge "github.com/goliatone/go-forge"
)

// Stats carries graph telemetry alongside the pass/fail outcome. It is
// informational: nothing here decides validity.
type Stats struct {
	Nodes        int `json:"nodes"`
	Connections  int `json:"connections"`
	Disconnected int `json:"disconnected"`
}

// Result is the aggregated validation outcome.
type Result struct {
	Valid    bool     `json:"valid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
	Stats    Stats    `json:"stats"`
}

// Graph validates g and returns every error and warning found. The result
// is deterministic: rules run in a fixed order and nodes are visited in
// insertion order.
func Graph(g *forge.Graph) Result {
	res := Result{}
	nodes := g.Nodes()
	conns := g.Connections()
	res.Stats.Nodes = len(nodes)
	res.Stats.Connections = len(conns)

	if len(nodes) == 0 {
		res.Errors = append(res.Errors, "Graph has no nodes")
		res.Valid = false
		return res
	}

	for _, node := range nodes {
		if _, ok := g.Catalog().Lookup(node.TypeID); !ok {
			res.Errors = append(res.Errors,
				fmt.Sprintf("Node %q references unknown component type %q", node.ID, node.TypeID))
		}
	}

	agents := g.NodesByCategory(forge.CategoryAgent)
	switch len(agents) {
	case 0:
		res.Errors = append(res.Errors, "No AI agent node found")
	case 1:
		res.append(checkAgent(agents[0]))
	default:
		res.Errors = append(res.Errors,
			fmt.Sprintf("Multiple agent nodes found (%d) - a graph must contain exactly one", len(agents)))
	}

	if len(g.NodesByCategory(forge.CategoryTrigger)) == 0 {
		res.Warnings = append(res.Warnings,
			"No trigger found - agent will require manual invocation")
	}

	for _, conn := range conns {
		for _, endpoint := range []string{conn.From, conn.To} {
			if !g.HasNode(endpoint) {
				res.Errors = append(res.Errors,
					fmt.Sprintf("Connection %q references unknown node %q", conn.ID, endpoint))
			}
		}
	}

	res.Stats.Disconnected = countDisconnected(nodes, conns)
	if res.Stats.Disconnected > 0 {
		res.Warnings = append(res.Warnings,
			fmt.Sprintf("%d disconnected node(s)", res.Stats.Disconnected))
	}

	if HasCycle(g) {
		res.Warnings = append(res.Warnings,
			"Cycle detected in the connection graph - execution order is ambiguous")
	}

	res.append(checkConfigs(g, nodes))

	res.Valid = len(res.Errors) == 0
	return res
}

func (r *Result) append(errs, warns []string) {
	r.Errors = append(r.Errors, errs...)
	r.Warnings = append(r.Warnings, warns...)
}

func checkAgent(agent *forge.Node) (errs, warns []string) {
	if configString(agent, "model") == "" {
		errs = append(errs,
			fmt.Sprintf("Agent node %q is missing required config field \"model\"", agent.ID))
	}
	if configString(agent, "role") == "" {
		warns = append(warns,
			fmt.Sprintf("Agent node %q has no role/prompt configured", agent.ID))
	}
	return errs, warns
}

// checkConfigs applies the catalog's declared field constraints: required
// fields without a default must be set, and cron schedules must parse.
func checkConfigs(g *forge.Graph, nodes []*forge.Node) (errs, warns []string) {
	for _, node := range nodes {
		comp, ok := g.Catalog().Lookup(node.TypeID)
		if !ok {
			continue
		}
		for _, field := range comp.Config {
			if !field.Required || field.Default != nil {
				continue
			}
			if comp.Category == forge.CategoryAgent && field.Name == "model" {
				// reported by the dedicated agent rule
				continue
			}
			if _, set := node.Config[field.Name]; !set {
				errs = append(errs,
					fmt.Sprintf("Node %q is missing required config field %q", node.ID, field.Name))
			}
		}

		if node.TypeID == "cron-trigger" {
			if schedule := configString(node, "schedule"); schedule != "" {
				if _, err := rcron.ParseStandard(schedule); err != nil {
					warns = append(warns,
						fmt.Sprintf("Cron trigger %q has an unparseable schedule %q", node.ID, schedule))
				}
			}
		}
	}
	return errs, warns
}

func countDisconnected(nodes []*forge.Node, conns []*forge.Connection) int {
	connected := make(map[string]struct{}, len(conns)*2)
	for _, conn := range conns {
		connected[conn.From] = struct{}{}
		connected[conn.To] = struct{}{}
	}
	count := 0
	for _, node := range nodes {
		if _, ok := connected[node.ID]; !ok {
			count++
		}
	}
	return count
}

func configString(node *forge.Node, key string) string {
	if node.Config == nil {
		return ""
	}
	if v, ok := node.Config[key].(string); ok {
		return strings.TrimSpace(v)
	}
	return ""
}
