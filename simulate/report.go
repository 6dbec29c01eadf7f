package simulate

import "time"

// Log entry levels. "success" marks milestone entries and feeds the
// summary's success count; it is not a syslog severity.
const (
	LevelInfo    = "info"
	LevelSuccess = "success"
	LevelWarning = "warning"
	LevelError   = "error"
)

// Entry is one line of the execution trace.
type Entry struct {
	Timestamp time.Time `json:"timestamp"`
	Level     string    `json:"level"`
	Message   string    `json:"message"`
}

// Summary aggregates the trace by level.
type Summary struct {
	Total     int    `json:"total"`
	Errors    int    `json:"errors"`
	Warnings  int    `json:"warnings"`
	Successes int    `json:"successes"`
	Status    string `json:"status"`
}

// Report is the full result of one dry run. Every failure mode is
// represented here as data; Run never panics and never returns an error
// value.
type Report struct {
	Success  bool          `json:"success"`
	Duration time.Duration `json:"duration"`
	Log      []Entry       `json:"log"`
	Summary  Summary       `json:"summary"`
}

func summarize(entries []Entry) Summary {
	s := Summary{Total: len(entries)}
	for _, e := range entries {
		switch e.Level {
		case LevelError:
			s.Errors++
		case LevelWarning:
			s.Warnings++
		case LevelSuccess:
			s.Successes++
		}
	}
	if s.Errors == 0 {
		s.Status = "success"
	} else {
		s.Status = "failed"
	}
	return s
}
