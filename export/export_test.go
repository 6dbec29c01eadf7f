package export

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	forge "github.com/goliatone/go-forge"
)

func buildGraph(t *testing.T) *forge.Graph {
	t.Helper()
	g := forge.NewGraph(nil)
	g.Metadata = forge.Metadata{Name: "Daily Digest", Description: "Summarize inbox"}

	trigger, err := g.AddNode("cron-trigger", forge.Position{X: 0, Y: 0})
	require.NoError(t, err)
	agent, err := g.AddNode("claude-agent", forge.Position{X: 200, Y: 0})
	require.NoError(t, err)
	out, err := g.AddNode("log-output", forge.Position{X: 400, Y: 0})
	require.NoError(t, err)

	require.NoError(t, g.UpdateConfig(agent.ID, "role", "Summarize the day's email."))
	_, err = g.AddConnection(trigger.ID, agent.ID)
	require.NoError(t, err)
	_, err = g.AddConnection(agent.ID, out.ID)
	require.NoError(t, err)
	return g
}

func TestCompileYAML(t *testing.T) {
	out, err := Compile(buildGraph(t), TargetYAML)
	require.NoError(t, err)

	assert.Contains(t, out, "name: daily_digest")
	assert.Contains(t, out, "model: claude-sonnet-4")
	assert.Contains(t, out, "processing:")
	assert.Contains(t, out, "role: Summarize the day's email.")
	assert.Contains(t, out, "type: cron")
	assert.Contains(t, out, "type: log")

	var decoded Document
	require.NoError(t, yaml.Unmarshal([]byte(out), &decoded))
	require.Len(t, decoded.Triggers, 1)
	assert.Equal(t, "0 * * * *", decoded.Triggers[0].Schedule)
	assert.Equal(t, "UTC", decoded.Triggers[0].Timezone)
}

func TestCompileYAMLDefaultsWithoutOptionalSections(t *testing.T) {
	g := forge.NewGraph(nil)
	_, err := g.AddNode("claude-agent", forge.Position{})
	require.NoError(t, err)

	out, err := Compile(g, TargetYAML)
	require.NoError(t, err)

	assert.Contains(t, out, "name: untitled_agent")
	assert.Contains(t, out, "role: You are a helpful assistant.")
	assert.NotContains(t, out, "memory:")
	assert.NotContains(t, out, "triggers:")
}

func TestCompileDeterministic(t *testing.T) {
	g := buildGraph(t)
	for _, target := range Targets() {
		first, err := Compile(g, target)
		require.NoError(t, err, "target %s", target)
		second, err := Compile(g, target)
		require.NoError(t, err, "target %s", target)
		assert.Equal(t, first, second, "target %s not deterministic", target)
	}
}

func TestCompileJSONRoundTrip(t *testing.T) {
	g := buildGraph(t)
	out, err := Compile(g, TargetJSON)
	require.NoError(t, err)

	var doc struct {
		Graph struct {
			Nodes       []forge.NodePayload       `json:"nodes"`
			Connections []forge.ConnectionPayload `json:"connections"`
		} `json:"graph"`
		Metadata forge.Metadata `json:"metadata"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &doc))

	assert.Len(t, doc.Graph.Nodes, len(g.Nodes()))
	assert.Len(t, doc.Graph.Connections, len(g.Connections()))
	assert.Equal(t, "Daily Digest", doc.Metadata.Name)
}

func TestCompileJSONCompactOmitsGraph(t *testing.T) {
	out, err := Compile(buildGraph(t), TargetJSONCompact)
	require.NoError(t, err)

	assert.False(t, strings.Contains(out, "\n"), "compact output must be single line")
	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.NotContains(t, doc, "graph")
	assert.NotContains(t, doc, "metadata")
	assert.Equal(t, "claude-sonnet-4", doc["model"])
}

func TestCompileN8NStub(t *testing.T) {
	out, err := Compile(buildGraph(t), TargetN8N)
	require.NoError(t, err)

	var wf N8NWorkflow
	require.NoError(t, json.Unmarshal([]byte(out), &wf))
	assert.Equal(t, "daily_digest", wf.Name)
	assert.Empty(t, wf.Nodes)
	assert.Empty(t, wf.Connections)
	assert.False(t, wf.Active)
}

func TestCompileMCP(t *testing.T) {
	out, err := Compile(buildGraph(t), TargetMCP)
	require.NoError(t, err)

	var doc MCPDocument
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, "daily_digest", doc.Agent.Name)
	assert.Equal(t, "anthropic", doc.Model.Provider)
	assert.Equal(t, "claude-sonnet-4", doc.Model.Name)
	assert.Len(t, doc.Triggers, 1)
	assert.Len(t, doc.Outputs, 1)
}

func TestCompileWithoutAgentFails(t *testing.T) {
	g := forge.NewGraph(nil)
	_, err := g.AddNode("cron-trigger", forge.Position{})
	require.NoError(t, err)

	for _, target := range Targets() {
		_, err := Compile(g, target)
		require.Error(t, err, "target %s", target)
		assert.True(t, forge.IsCode(err, forge.ErrCodeMissingAgentNode),
			"target %s: code %s", target, forge.ErrorCode(err))
	}
}

func TestParseTarget(t *testing.T) {
	cases := []struct {
		in      string
		want    Target
		wantErr bool
	}{
		{"yaml", TargetYAML, false},
		{"JSON", TargetJSON, false},
		{" json_compact ", TargetJSONCompact, false},
		{"n8n", TargetN8N, false},
		{"mcp", TargetMCP, false},
		{"xml", "", true},
		{"", "", true},
	}
	for _, tc := range cases {
		got, err := ParseTarget(tc.in)
		if tc.wantErr {
			require.Error(t, err, "input %q", tc.in)
			continue
		}
		require.NoError(t, err, "input %q", tc.in)
		assert.Equal(t, tc.want, got)
	}
}

func TestProviderForModel(t *testing.T) {
	cases := []struct{ model, want string }{
		{"claude-sonnet-4", "anthropic"},
		{"claude-opus-4", "anthropic"},
		{"gpt-4o", "openai"},
		{"gemini-pro", "google"},
		{"llama-3-70b", "meta"},
		{"mystery-model", "unknown"},
	}
	for _, tc := range cases {
		if got := ProviderForModel(tc.model); got != tc.want {
			t.Fatalf("ProviderForModel(%q) = %q, want %q", tc.model, got, tc.want)
		}
	}
}
