package simulate

import "fmt"

// Mock agent responses keyed by agent component type. No real model is
// ever invoked during a dry run; this table is an explicit stand-in, not a
// prediction of real behavior.
var mockResponses = map[string]string{
	"claude-agent": "Mock Claude response: Task completed successfully.",
	"gpt-agent":    "Mock GPT response: I understand and will help.",
	"gemini-agent": "Mock Gemini response: Processing...",
}

func mockResponse(typeID string) string {
	if resp, ok := mockResponses[typeID]; ok {
		return resp
	}
	return fmt.Sprintf("Mock response for %s", typeID)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
