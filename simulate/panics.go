package simulate

import (
	"fmt"
	"runtime"
	"strings"
)

// recoverToLog converts a phase panic into an error entry on the run's
// trace. Run promises to always return a Report; a panicking accessor or
// a malformed config value must not break that contract.
func (r *run) recoverToLog(phase string) {
	err := recover()
	if err == nil {
		return
	}

	stack := make([]byte, 8096)
	stack = stack[:runtime.Stack(stack, false)]

	r.log(LevelError, "Phase %s panicked: %v", phase, err)
	r.logger.Error(fmt.Sprintf("panic in %s phase\n%s",
		phase, cleanStackTrace(stack)))
}

// cleanStackTrace drops the frames above the panic call so the logged
// trace starts at the faulting line.
func cleanStackTrace(stack []byte) []byte {
	lines := strings.Split(string(stack), "\n")

	panicLine := -1
	for i, line := range lines {
		if strings.Contains(line, "panic(") {
			panicLine = i
			break
		}
	}
	if panicLine >= 0 && panicLine+2 < len(lines) {
		// skip the panic() call line and its file reference line
		lines = lines[panicLine+2:]
	}
	return []byte(strings.Join(lines, "\n"))
}
