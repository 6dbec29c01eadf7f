package forge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseGraphJSON(t *testing.T) {
	payload := []byte(`{
		"nodes": [
			{"id": "a1", "type": "claude-agent", "config": {"model": "claude-sonnet-4", "temperature": 0.7}},
			{"id": "o1", "type": "log-output"}
		],
		"connections": [
			{"from": "a1", "to": "o1"}
		],
		"metadata": {"name": "Test Agent", "author": "alice"}
	}`)

	g, err := ParseGraph(payload, nil)
	require.NoError(t, err)

	assert.Len(t, g.Nodes(), 2)
	assert.Len(t, g.Connections(), 1)
	assert.Equal(t, "Test Agent", g.Metadata.Name)

	agent, ok := g.NodeByID("a1")
	require.True(t, ok)
	assert.Equal(t, "claude-agent", agent.TypeID)
	assert.Equal(t, "claude-sonnet-4", agent.Config["model"])

	conn := g.Connections()[0]
	assert.Equal(t, "a1", conn.From)
	assert.Equal(t, "o1", conn.To)
	assert.Equal(t, ConnectionKindData, conn.Kind)
	assert.NotEmpty(t, conn.ID, "missing connection id must be synthesized")
}

func TestParseGraphYAML(t *testing.T) {
	payload := []byte(`
nodes:
  - id: t1
    type: cron-trigger
    config:
      schedule: "*/5 * * * *"
  - id: a1
    type: claude-agent
connections:
  - id: c1
    from: t1
    to: a1
metadata:
  name: cron agent
`)

	g, err := ParseGraph(payload, nil)
	require.NoError(t, err)
	require.Len(t, g.Nodes(), 2)

	trigger, ok := g.NodeByID("t1")
	require.True(t, ok)
	assert.Equal(t, "*/5 * * * *", trigger.Config["schedule"])
}

func TestParseGraphKeepsReferentialProblems(t *testing.T) {
	// dangling endpoints and unknown types survive parsing so the
	// validator can report them all at once
	payload := []byte(`{
		"nodes": [{"id": "n1", "type": "quantum-agent"}],
		"connections": [{"id": "c1", "from": "n1", "to": "ghost"}]
	}`)

	g, err := ParseGraph(payload, nil)
	require.NoError(t, err)
	assert.Len(t, g.Nodes(), 1)
	assert.Len(t, g.Connections(), 1)
}

func TestParseGraphRejectsDuplicateNodeIDs(t *testing.T) {
	payload := []byte(`{
		"nodes": [
			{"id": "a1", "type": "claude-agent"},
			{"id": "a1", "type": "log-output"}
		]
	}`)

	_, err := ParseGraph(payload, nil)
	require.Error(t, err)
	assert.True(t, IsCode(err, ErrCodeDuplicateNode), "code: %s", ErrorCode(err))
}

func TestParseGraphRejectsDuplicatePairs(t *testing.T) {
	payload := []byte(`{
		"nodes": [
			{"id": "a1", "type": "claude-agent"},
			{"id": "o1", "type": "log-output"}
		],
		"connections": [
			{"id": "c1", "from": "a1", "to": "o1"},
			{"id": "c2", "from": "a1", "to": "o1"}
		]
	}`)

	_, err := ParseGraph(payload, nil)
	require.Error(t, err)
	assert.True(t, IsCode(err, ErrCodeDuplicateConnect), "code: %s", ErrorCode(err))
}

func TestParseGraphRejectsMalformedPayload(t *testing.T) {
	_, err := ParseGraph([]byte("{nodes: [unclosed"), nil)
	require.Error(t, err)
	assert.True(t, IsCode(err, ErrCodeInvalidPayload), "code: %s", ErrorCode(err))
}

func TestSerializeRoundTrip(t *testing.T) {
	g := NewGraph(nil)
	trigger, _ := g.AddNode("cron-trigger", Position{X: 10, Y: 20})
	agent, _ := g.AddNode("claude-agent", Position{X: 200, Y: 20})
	g.AddConnection(trigger.ID, agent.ID)
	g.Metadata = Metadata{Name: "roundtrip"}

	data, err := g.Serialize()
	require.NoError(t, err)

	restored, err := ParseGraph(data, nil)
	require.NoError(t, err)

	assert.Len(t, restored.Nodes(), 2)
	assert.Len(t, restored.Connections(), 1)
	assert.Equal(t, g.Metadata.Name, restored.Metadata.Name)

	back, ok := restored.NodeByID(agent.ID)
	require.True(t, ok)
	assert.Equal(t, float64(200), back.Position.X)
}

func TestSerializeIsDeterministic(t *testing.T) {
	g := NewGraph(nil)
	a, _ := g.AddNode("claude-agent", Position{})
	b, _ := g.AddNode("log-output", Position{})
	g.AddConnection(a.ID, b.ID)

	first, err := g.Serialize()
	require.NoError(t, err)
	second, err := g.Serialize()
	require.NoError(t, err)
	assert.Equal(t, string(first), string(second))
}
