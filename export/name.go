package export

import (
	"regexp"
	"strings"
)

var nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)

// SanitizeName converts a display name into a safe identifier: lowercased,
// runs of non-alphanumeric characters collapsed to a single underscore,
// leading and trailing underscores trimmed.
//
//	SanitizeName("My Cool Agent!") == "my_cool_agent"
func SanitizeName(name string) string {
	lower := strings.ToLower(strings.TrimSpace(name))
	collapsed := nonAlphanumeric.ReplaceAllString(lower, "_")
	return strings.Trim(collapsed, "_")
}
