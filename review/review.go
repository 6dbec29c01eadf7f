// Package review is the boundary to AI-assisted graph review. The core
// builds prompts and parses responses; the actual model call lives
// behind the Model interface so transport, auth, and retries stay with
// the caller.
package review

import (
	"context"
	"fmt"

	errors "github.com/goliatone/go-errors"
	forge "github.com/goliatone/go-forge"
)

// Task selects what the reviewing model is asked to do with the graph.
type Task string

const (
	TaskValidate       Task = "validate"
	TaskImprove        Task = "improve"
	TaskMetadata       Task = "metadata"
	TaskEvaluateCycles Task = "evaluate_cycles"
)

func (t Task) Valid() bool {
	switch t {
	case TaskValidate, TaskImprove, TaskMetadata, TaskEvaluateCycles:
		return true
	}
	return false
}

// Model generates a completion for a prompt. Implementations wrap an
// LLM provider client; the review package never dials anything itself.
type Model interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// ModelFunc adapts a plain function to the Model interface.
type ModelFunc func(ctx context.Context, prompt string) (string, error)

func (f ModelFunc) Generate(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

// Result is the structured outcome of a review. When the model's
// response carries no parseable JSON the raw text lands in Feedback
// with a default score, so callers always get something renderable.
type Result struct {
	Score       float64  `json:"score"`
	Feedback    string   `json:"feedback"`
	Suggestions []string `json:"suggestions,omitempty"`
}

var errUnknownTask = errors.New(
	"unknown review task",
	errors.CategoryBadInput,
).WithTextCode("FORGE_UNKNOWN_TASK")

// Review builds the prompt for task, runs it through m, and parses the
// response. Model I/O failures come back as a wrapped error; the graph
// itself is never mutated.
func Review(ctx context.Context, m Model, g *forge.Graph, task Task) (Result, error) {
	if !task.Valid() {
		return Result{}, errUnknownTask.Clone().
			WithMetadata(map[string]any{"task": string(task)})
	}
	text, err := m.Generate(ctx, BuildPrompt(g, task))
	if err != nil {
		return Result{}, errors.Wrap(err, errors.CategoryExternal,
			fmt.Sprintf("review model failed for task %q", task))
	}
	return ParseResult(text), nil
}
