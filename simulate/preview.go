package simulate

import (
	"fmt"
	"strings"
	"time"

	forge "github.com/goliatone/go-forge"
)

// Preview describes what a graph would do without running the phase
// machinery. It is a static projection: flow steps in execution order,
// a token cost estimate for the agent's model, and configuration smells
// that a dry run would surface as warnings.
type Preview struct {
	Name          string        `json:"name"`
	Model         string        `json:"model"`
	TriggerCount  int           `json:"trigger_count"`
	OutputCount   int           `json:"output_count"`
	Flow          []FlowStep    `json:"execution_flow"`
	Cost          CostEstimate  `json:"estimated_cost"`
	EstimatedTime time.Duration `json:"estimated_duration"`
	Issues        []Issue       `json:"potential_issues"`
}

type FlowStep struct {
	Step        int    `json:"step"`
	Kind        string `json:"type"`
	NodeID      string `json:"node_id"`
	Description string `json:"description"`
}

type CostEstimate struct {
	InputTokens  int     `json:"estimated_input_tokens"`
	OutputTokens int     `json:"estimated_output_tokens"`
	USD          float64 `json:"estimated_cost_usd"`
	Model        string  `json:"model"`
}

type Issue struct {
	Severity string `json:"severity"`
	Message  string `json:"message"`
}

// per 1k tokens, input/output
type modelRate struct {
	in, out float64
}

var modelRates = map[string]modelRate{
	"claude-sonnet-4": {0.003, 0.015},
	"claude-opus-4":   {0.015, 0.075},
	"gpt-4o":          {0.0025, 0.01},
	"gpt-4o-mini":     {0.00015, 0.0006},
	"gemini-pro":      {0.00125, 0.005},
}

var defaultRate = modelRate{0.001, 0.002}

const (
	baseInputTokens  = 500
	avgOutputTokens  = 1000
	baseDuration     = 500 * time.Millisecond
	agentDuration    = 3 * time.Second
	outputDuration   = time.Second
	triggerSetupTime = 100 * time.Millisecond
)

// PreviewGraph builds a Preview for g. It never returns an error: a
// graph with no agent simply previews with an empty model and an issue
// entry, mirroring how the dry run reports instead of failing.
func PreviewGraph(g *forge.Graph) Preview {
	p := Preview{Name: g.Metadata.Name}

	triggers := g.NodesByCategory(forge.CategoryTrigger)
	outputs := g.NodesByCategory(forge.CategoryOutput)
	p.TriggerCount = len(triggers)
	p.OutputCount = len(outputs)

	agent, err := g.AgentNode()
	if err == nil {
		p.Model = agent.ConfigString("model", "")
	}

	step := 0
	next := func() int { step++; return step }
	for _, t := range triggers {
		p.Flow = append(p.Flow, FlowStep{
			Step:        next(),
			Kind:        "trigger",
			NodeID:      t.ID,
			Description: fmt.Sprintf("Triggered by %s", t.TypeID),
		})
	}
	if agent != nil {
		p.Flow = append(p.Flow, FlowStep{
			Step:        next(),
			Kind:        "agent",
			NodeID:      agent.ID,
			Description: fmt.Sprintf("Execute %s (model %s)", agent.TypeID, p.Model),
		})
	}
	for _, o := range outputs {
		p.Flow = append(p.Flow, FlowStep{
			Step:        next(),
			Kind:        "output",
			NodeID:      o.ID,
			Description: fmt.Sprintf("Deliver via %s", o.TypeID),
		})
	}

	p.Cost = estimateCost(agent)
	p.EstimatedTime = estimateDuration(agent, triggers, outputs)
	p.Issues = findIssues(g, agent, triggers, outputs)
	return p
}

func estimateCost(agent *forge.Node) CostEstimate {
	est := CostEstimate{
		InputTokens:  baseInputTokens,
		OutputTokens: avgOutputTokens,
	}
	if agent == nil {
		return est
	}
	est.Model = agent.ConfigString("model", "")
	// role text rides along as system-prompt input
	role := agent.ConfigString("role", "")
	est.InputTokens += int(float64(len(strings.Fields(role))) * 1.3)

	rate, ok := modelRates[est.Model]
	if !ok {
		rate = defaultRate
	}
	est.USD = round4(float64(est.InputTokens)/1000*rate.in +
		float64(est.OutputTokens)/1000*rate.out)
	return est
}

func estimateDuration(agent *forge.Node, triggers, outputs []*forge.Node) time.Duration {
	d := baseDuration
	d += time.Duration(len(triggers)) * triggerSetupTime
	if agent != nil {
		d += agentDuration
	}
	d += time.Duration(len(outputs)) * outputDuration
	return d
}

func findIssues(g *forge.Graph, agent *forge.Node, triggers, outputs []*forge.Node) []Issue {
	var issues []Issue
	if agent == nil {
		issues = append(issues, Issue{
			Severity: "error",
			Message:  "No AI agent node found",
		})
		return issues
	}
	if len(triggers) == 0 {
		issues = append(issues, Issue{
			Severity: "warning",
			Message:  "No triggers configured - the agent can only be invoked manually",
		})
	}
	if len(outputs) == 0 {
		issues = append(issues, Issue{
			Severity: "warning",
			Message:  "No outputs configured - results will be discarded",
		})
	}
	if role := agent.ConfigString("role", ""); len(role) > 0 && len(role) < 20 {
		issues = append(issues, Issue{
			Severity: "warning",
			Message:  "Agent role is brief - consider adding more detail",
		})
	}
	if mems := g.NodesByCategory(forge.CategoryMemory); len(mems) == 0 {
		issues = append(issues, Issue{
			Severity: "info",
			Message:  "No memory store attached - the agent will be stateless",
		})
	}
	return issues
}

func round4(v float64) float64 {
	return float64(int(v*10000+0.5)) / 10000
}
