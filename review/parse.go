package review

import (
	"encoding/json"
	"strings"
)

const (
	// score assigned when the response had no JSON object at all
	fallbackScorePlain = 75
	// score assigned when a JSON-looking span failed to decode
	fallbackScoreBadJSON = 70
)

// ParseResult extracts the first JSON object from a model response.
// Models often wrap the object in prose or a fenced code block, so the
// span between the first '{' and the last '}' is tried as JSON. When
// no object is found or decoding fails, the whole response becomes the
// Feedback with a degraded score. ParseResult never fails.
func ParseResult(text string) Result {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return Result{Score: fallbackScorePlain, Feedback: text}
	}

	var res Result
	if err := json.Unmarshal([]byte(text[start:end+1]), &res); err != nil {
		return Result{Score: fallbackScoreBadJSON, Feedback: text}
	}
	return res
}
