package simulate

import (
	"context"
	"strings"
	"testing"
	"time"

	forge "github.com/goliatone/go-forge"
)

func newEngine() *Engine {
	return New(WithClock(NewFakeClock()), WithAgentDelay(500*time.Millisecond))
}

func mustAdd(t *testing.T, g *forge.Graph, typeID string) *forge.Node {
	t.Helper()
	node, err := g.AddNode(typeID, forge.Position{})
	if err != nil {
		t.Fatalf("add %s: %v", typeID, err)
	}
	return node
}

func hasEntry(log []Entry, level, substr string) bool {
	for _, e := range log {
		if e.Level == level && strings.Contains(e.Message, substr) {
			return true
		}
	}
	return false
}

func TestRunMinimalAgentGraph(t *testing.T) {
	g := forge.NewGraph(nil)
	mustAdd(t, g, "claude-agent")

	report := newEngine().Run(context.Background(), g, "")

	if !report.Success {
		t.Fatalf("minimal graph failed: %+v", report.Log)
	}
	if report.Summary.Errors != 0 {
		t.Fatalf("unexpected errors in summary: %d", report.Summary.Errors)
	}
	if report.Summary.Status != "success" {
		t.Fatalf("unexpected status: %s", report.Summary.Status)
	}
	if !hasEntry(report.Log, LevelInfo, "Executing claude-agent") {
		t.Fatalf("missing agent execution entry: %+v", report.Log)
	}
	if !hasEntry(report.Log, LevelSuccess, "Mock Claude response") {
		t.Fatalf("missing mock response entry: %+v", report.Log)
	}
	if !hasEntry(report.Log, LevelSuccess, "Dry run completed") {
		t.Fatalf("missing completion entry: %+v", report.Log)
	}
}

func TestRunNoAgentShortCircuits(t *testing.T) {
	g := forge.NewGraph(nil)
	w := mustAdd(t, g, "folder-watcher")
	o := mustAdd(t, g, "webhook-output")
	if _, err := g.AddConnection(w.ID, o.ID); err != nil {
		t.Fatalf("connect: %v", err)
	}

	report := newEngine().Run(context.Background(), g, "")

	if report.Success {
		t.Fatal("agent-less run reported success")
	}
	if len(report.Log) == 0 {
		t.Fatal("expected validation errors in log")
	}
	first := report.Log[0]
	if first.Level != LevelError || !strings.Contains(first.Message, "No AI agent node found") {
		t.Fatalf("unexpected first entry: %+v", first)
	}
	// validation failed, so no phase may have run
	if hasEntry(report.Log, LevelInfo, "Executing") {
		t.Fatal("phases ran despite failed validation")
	}
	if report.Summary.Status != "failed" {
		t.Fatalf("unexpected status: %s", report.Summary.Status)
	}
}

func TestRunEmptyGraph(t *testing.T) {
	report := newEngine().Run(context.Background(), forge.NewGraph(nil), "")

	if report.Success {
		t.Fatal("empty graph reported success")
	}
	if !hasEntry(report.Log, LevelError, "no nodes") {
		t.Fatalf("missing no-nodes entry: %+v", report.Log)
	}
}

func TestRunWarningsDoNotFail(t *testing.T) {
	g := forge.NewGraph(nil)
	mustAdd(t, g, "claude-agent") // no trigger, no role: warnings only

	report := newEngine().Run(context.Background(), g, "")

	if !report.Success {
		t.Fatalf("warnings must not fail the run: %+v", report.Log)
	}
	if report.Summary.Warnings == 0 {
		t.Fatal("expected warnings mirrored into the log")
	}
	if !hasEntry(report.Log, LevelWarning, "No trigger found") {
		t.Fatalf("missing trigger warning: %+v", report.Log)
	}
}

func TestRunFullPipeline(t *testing.T) {
	g := forge.NewGraph(nil)
	trigger := mustAdd(t, g, "cron-trigger")
	agent := mustAdd(t, g, "claude-agent")
	mem := mustAdd(t, g, "memory-store")
	out := mustAdd(t, g, "drive-output")
	if err := g.UpdateConfig(agent.ID, "role", "Summarize incoming files."); err != nil {
		t.Fatalf("update config: %v", err)
	}
	if err := g.UpdateConfig(out.ID, "filename", "digest.md"); err != nil {
		t.Fatalf("update config: %v", err)
	}
	for _, pair := range [][2]string{
		{trigger.ID, agent.ID}, {agent.ID, out.ID}, {mem.ID, agent.ID},
	} {
		if _, err := g.AddConnection(pair[0], pair[1]); err != nil {
			t.Fatalf("connect: %v", err)
		}
	}

	report := newEngine().Run(context.Background(), g, "quarterly report draft")

	if !report.Success {
		t.Fatalf("pipeline failed: %+v", report.Log)
	}
	for _, want := range []string{
		"Memory initialized: file at ./memory",
		"Simulating 1 trigger(s)",
		"Cron trigger: 0 * * * *",
		"Input data: quarterly report draft",
		"Executing claude-agent (model claude-sonnet-4, temperature 0.7)",
		"Processing 1 output(s)",
		"Would write to",
		"digest.md",
	} {
		if !hasEntry(report.Log, LevelInfo, want) && !hasEntry(report.Log, LevelSuccess, want) {
			t.Fatalf("missing entry %q in %+v", want, report.Log)
		}
	}
}

func TestRunTruncatesLongInput(t *testing.T) {
	g := forge.NewGraph(nil)
	mustAdd(t, g, "claude-agent")

	long := strings.Repeat("x", 200)
	report := newEngine().Run(context.Background(), g, long)

	for _, e := range report.Log {
		if strings.HasPrefix(e.Message, "Input data:") && strings.Contains(e.Message, long) {
			t.Fatal("input was not truncated")
		}
	}
	if !hasEntry(report.Log, LevelInfo, "Input data:") {
		t.Fatalf("missing input entry: %+v", report.Log)
	}
}

func TestRunCancelledContext(t *testing.T) {
	g := forge.NewGraph(nil)
	mustAdd(t, g, "claude-agent")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report := newEngine().Run(ctx, g, "")

	if report.Success {
		t.Fatal("cancelled run reported success")
	}
	if !hasEntry(report.Log, LevelError, "Simulation cancelled") {
		t.Fatalf("missing cancellation entry: %+v", report.Log)
	}
}

func TestRunDeterministicWithFakeClock(t *testing.T) {
	g := forge.NewGraph(nil)
	mustAdd(t, g, "claude-agent")

	e := New(WithClock(NewFakeClock()))
	first := e.Run(context.Background(), g, "")

	e2 := New(WithClock(NewFakeClock()))
	second := e2.Run(context.Background(), g, "")

	if len(first.Log) != len(second.Log) {
		t.Fatalf("log lengths differ: %d vs %d", len(first.Log), len(second.Log))
	}
	for i := range first.Log {
		if first.Log[i] != second.Log[i] {
			t.Fatalf("entry %d differs: %+v vs %+v", i, first.Log[i], second.Log[i])
		}
	}
	if first.Duration != second.Duration {
		t.Fatalf("durations differ: %s vs %s", first.Duration, second.Duration)
	}
}

func TestRunsAreIsolated(t *testing.T) {
	g := forge.NewGraph(nil)
	mustAdd(t, g, "claude-agent")
	e := newEngine()

	first := e.Run(context.Background(), g, "")
	second := e.Run(context.Background(), g, "")

	if len(first.Log) != len(second.Log) {
		t.Fatalf("per-run state leaked: %d vs %d entries", len(first.Log), len(second.Log))
	}
	if first.Summary.Total != second.Summary.Total {
		t.Fatalf("summary totals differ: %d vs %d", first.Summary.Total, second.Summary.Total)
	}
}

func TestRunNilContext(t *testing.T) {
	g := forge.NewGraph(nil)
	mustAdd(t, g, "claude-agent")

	report := newEngine().Run(nil, g, "") //nolint:staticcheck
	if !report.Success {
		t.Fatalf("nil context run failed: %+v", report.Log)
	}
}

func TestMockResponses(t *testing.T) {
	cases := []struct{ typeID, want string }{
		{"claude-agent", "Mock Claude response"},
		{"gpt-agent", "Mock GPT response"},
		{"gemini-agent", "Mock Gemini response"},
		{"custom-agent", "Mock response for custom-agent"},
	}
	for _, tc := range cases {
		if got := mockResponse(tc.typeID); !strings.Contains(got, tc.want) {
			t.Fatalf("mockResponse(%q) = %q", tc.typeID, got)
		}
	}
}

func TestPhasePanicBecomesErrorEntry(t *testing.T) {
	e := newEngine()
	r := &run{engine: e, logger: e.logger}

	func() {
		defer r.recoverToLog("agent")
		panic("config exploded")
	}()

	report := r.finish()
	if report.Success {
		t.Fatal("panicking phase reported success")
	}
	if !hasEntry(report.Log, LevelError, "Phase agent panicked: config exploded") {
		t.Fatalf("missing panic entry: %+v", report.Log)
	}
}
