package hooks

import (
	"fmt"
	"runtime"
	"strings"

	log "github.com/sirupsen/logrus"
)

const modulePathMarker = "cloudctl/"

type contextHook struct {
}

// NewContextHook returns a hook that tags every entry with the file:line of the
// code that called into logrus.
func NewContextHook() contextHook {
	return contextHook{}
}

func (hook contextHook) Levels() []log.Level {
	return log.AllLevels
}

func (hook contextHook) Fire(entry *log.Entry) error {
	pcs := make([]uintptr, 32)
	n := runtime.Callers(2, pcs)
	frames := runtime.CallersFrames(pcs[:n])
	for {
		frame, more := frames.Next()
		if !isLoggingFrame(frame) {
			entry.Data["file:line"] = fmt.Sprintf("%s:%d", trimFile(frame.File), frame.Line)
			return nil
		}
		if !more {
			return nil
		}
	}
}

func isLoggingFrame(frame runtime.Frame) bool {
	return strings.Contains(frame.Function, "sirupsen/logrus") ||
		strings.Contains(frame.Function, "common/log/hooks.contextHook")
}

func trimFile(file string) string {
	parts := strings.Split(file, modulePathMarker)
	return parts[len(parts)-1]
}
