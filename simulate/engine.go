// Package simulate walks an agent graph through a fixed-phase mock
// execution and returns a structured, inspectable trace. It is a sanity
// check, not a scheduler: phase order is fixed rather than derived from
// graph edges, and no external service, file, or model is ever touched.
package simulate

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	rcron "github.com/robfig/cron/v3"

	forge "github.com/goliatone/go-forge"
	"github.com/goliatone/go-forge/validate"
)

const defaultAgentDelay = 500 * time.Millisecond

// Engine runs dry-run simulations. It holds configuration only; all
// per-run state lives in the run value so concurrent simulations of
// different graphs never share a log buffer.
type Engine struct {
	clock  Clock
	delay  time.Duration
	logger Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock injects a clock, letting tests run without wall-clock waits.
func WithClock(c Clock) Option {
	return func(e *Engine) {
		if c != nil {
			e.clock = c
		}
	}
}

// WithAgentDelay sets the simulated agent processing latency.
func WithAgentDelay(d time.Duration) Option {
	return func(e *Engine) {
		if d >= 0 {
			e.delay = d
		}
	}
}

// WithLogger mirrors the trace to a logger as it is produced.
func WithLogger(l Logger) Option {
	return func(e *Engine) {
		e.logger = l
	}
}

// New constructs an engine with the system clock and default latency.
func New(opts ...Option) *Engine {
	e := &Engine{
		clock: systemClock{},
		delay: defaultAgentDelay,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}
	e.logger = normalizeLogger(e.logger)
	return e
}

// Run simulates the graph with an optional test input. It never panics and
// never returns an error: all failure is data in the Report.
func (e *Engine) Run(ctx context.Context, g *forge.Graph, input string) Report {
	if ctx == nil {
		ctx = context.Background()
	}
	logger := e.logger
	if fl, ok := logger.(FieldsLogger); ok {
		logger = fl.WithFields(map[string]any{"run": uuid.NewString()[:8]})
	}
	r := &run{engine: e, logger: logger}

	res := validate.Graph(g)
	if !res.Valid {
		for _, msg := range res.Errors {
			r.log(LevelError, msg)
		}
		return r.finish()
	}
	for _, msg := range res.Warnings {
		r.log(LevelWarning, msg)
	}

	phases := []struct {
		name string
		fn   func(context.Context, *forge.Graph, string)
	}{
		{"memory", r.memoryPhase},
		{"trigger", r.triggerPhase},
		{"input", r.inputPhase},
		{"agent", r.agentPhase},
		{"output", r.outputPhase},
	}
	for _, phase := range phases {
		if err := ctx.Err(); err != nil {
			r.log(LevelError, "Simulation cancelled: %v", err)
			return r.finish()
		}
		func() {
			defer r.recoverToLog(phase.name)
			phase.fn(ctx, g, input)
		}()
	}

	r.log(LevelSuccess, "Dry run completed")
	return r.finish()
}

// run is the per-call execution state. One run owns one log buffer.
type run struct {
	engine  *Engine
	logger  Logger
	entries []Entry
}

func (r *run) log(level, msg string, args ...any) {
	if len(args) > 0 {
		msg = fmt.Sprintf(msg, args...)
	}
	r.entries = append(r.entries, Entry{
		Timestamp: r.engine.clock.Now(),
		Level:     level,
		Message:   msg,
	})
	switch level {
	case LevelError:
		r.logger.Error(msg)
	case LevelWarning:
		r.logger.Warn(msg)
	default:
		r.logger.Info(msg)
	}
}

func (r *run) finish() Report {
	summary := summarize(r.entries)
	var duration time.Duration
	if len(r.entries) > 1 {
		duration = r.entries[len(r.entries)-1].Timestamp.Sub(r.entries[0].Timestamp)
	}
	return Report{
		Success:  summary.Errors == 0,
		Duration: duration,
		Log:      r.entries,
		Summary:  summary,
	}
}

func (r *run) memoryPhase(_ context.Context, g *forge.Graph, _ string) {
	memories := g.NodesByCategory(forge.CategoryMemory)
	if len(memories) == 0 {
		return
	}
	mem := memories[0]
	r.log(LevelInfo, "Memory initialized: %s at %s",
		mem.ConfigString("type", "temporary"),
		mem.ConfigString("path", "./memory"))
}

func (r *run) triggerPhase(_ context.Context, g *forge.Graph, _ string) {
	triggers := g.NodesByCategory(forge.CategoryTrigger)
	if len(triggers) == 0 {
		r.log(LevelInfo, "No triggers configured - manual invocation assumed")
		return
	}
	r.log(LevelInfo, "Simulating %d trigger(s)", len(triggers))

	for _, trigger := range triggers {
		switch trigger.TypeID {
		case "cron-trigger":
			schedule := trigger.ConfigString("schedule", "")
			if sched, err := rcron.ParseStandard(schedule); err == nil {
				next := sched.Next(r.engine.clock.Now())
				r.log(LevelInfo, "Cron trigger: %s (next run %s)",
					schedule, next.Format(time.RFC3339))
			} else {
				r.log(LevelWarning, "Cron trigger: schedule %q did not parse", schedule)
			}
		case "folder-watcher":
			r.log(LevelInfo, "Folder watch: %s (patterns %v)",
				trigger.ConfigString("path", "./watch"),
				trigger.ConfigStrings("patterns", []string{"*"}))
		case "email-trigger":
			r.log(LevelInfo, "Email trigger: %s:%d (folder %s)",
				trigger.ConfigString("host", "localhost"),
				trigger.ConfigInt("port", 993),
				trigger.ConfigString("folder", "INBOX"))
		case "api-trigger":
			r.log(LevelInfo, "API trigger: %s %s",
				trigger.ConfigString("method", "POST"),
				trigger.ConfigString("path", "/webhook"))
		default:
			r.log(LevelInfo, "Trigger %s: manual invocation", trigger.ID)
		}
	}
}

func (r *run) inputPhase(_ context.Context, g *forge.Graph, input string) {
	for _, watcher := range g.NodesByCategory(forge.CategoryTrigger) {
		if watcher.TypeID != "folder-watcher" {
			continue
		}
		r.log(LevelInfo, "Reading input from %s", watcher.ConfigString("path", "./watch"))
	}
	if input != "" {
		r.log(LevelInfo, "Input data: %s", truncate(input, 50))
	} else {
		r.log(LevelInfo, "No input data - using simulated input")
	}
}

func (r *run) agentPhase(ctx context.Context, g *forge.Graph, _ string) {
	agent, err := g.AgentNode()
	if err != nil {
		// validation already passed, so this cannot happen; report it
		// rather than trusting the invariant blindly
		r.log(LevelError, "No AI agent node found")
		return
	}

	r.log(LevelInfo, "Executing %s (model %s, temperature %.1f)",
		agent.TypeID,
		agent.ConfigString("model", "claude-sonnet-4"),
		agent.ConfigFloat("temperature", 0.7))

	r.engine.clock.Sleep(ctx, r.engine.delay)
	if err := ctx.Err(); err != nil {
		r.log(LevelError, "Simulation cancelled: %v", err)
		return
	}

	r.log(LevelSuccess, "Agent response: %s", truncate(mockResponse(agent.TypeID), 80))
}

func (r *run) outputPhase(_ context.Context, g *forge.Graph, _ string) {
	outputs := g.NodesByCategory(forge.CategoryOutput)
	if len(outputs) == 0 {
		r.log(LevelInfo, "No outputs configured")
		return
	}
	r.log(LevelInfo, "Processing %d output(s)", len(outputs))

	for _, output := range outputs {
		switch output.TypeID {
		case "drive-output":
			r.log(LevelInfo, "Would write to %s/%s",
				output.ConfigString("path", "."),
				output.ConfigString("filename", "output.txt"))
		case "webhook-output":
			r.log(LevelInfo, "Would %s to %s",
				output.ConfigString("method", "POST"),
				output.ConfigString("url", ""))
		case "log-output":
			r.log(LevelInfo, "Would log to %s (level %s)",
				output.ConfigString("path", "./agent.log"),
				output.ConfigString("level", "info"))
		case "email-output":
			r.log(LevelInfo, "Would email %s via %s",
				output.ConfigString("to", ""),
				output.ConfigString("host", ""))
		default:
			r.log(LevelInfo, "Would output to console")
		}
	}
}
