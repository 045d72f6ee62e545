package simplelogger

import (
	"os"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

const (
	fileEnv  = "UDIFF_LOG_FILE"
	levelEnv = "UDIFF_LOG_LEVEL"
)

var mu sync.Mutex

// Log appends one structured line at level to the file specified by the UDIFF_LOG_FILE environment variable. keyvals are alternating keys and values.
//
// Lines below the level named by UDIFF_LOG_LEVEL (debug, info, warn, error; default info) are dropped. If UDIFF_LOG_FILE is unset/empty or the path can't be
// opened as a file, Log is a no-op. Nothing is ever written to stdout, which carries the diff.
func Log(level log.Level, msg string, keyvals ...any) {
	path := os.Getenv(fileEnv)
	if path == "" {
		return
	}

	// Serialize open/write/close to reduce interleaving within a single process.
	mu.Lock()
	defer mu.Unlock()

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return
	}
	defer f.Close()

	logger := log.NewWithOptions(f, log.Options{
		Level:           threshold(),
		Prefix:          "udiff",
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
	})
	logger.Log(level, msg, keyvals...)
}

// Debug logs msg at debug level.
func Debug(msg string, keyvals ...any) {
	Log(log.DebugLevel, msg, keyvals...)
}

// Info logs msg at info level.
func Info(msg string, keyvals ...any) {
	Log(log.InfoLevel, msg, keyvals...)
}

// Warn logs msg at warn level.
func Warn(msg string, keyvals ...any) {
	Log(log.WarnLevel, msg, keyvals...)
}

func threshold() log.Level {
	level, err := log.ParseLevel(strings.TrimSpace(os.Getenv(levelEnv)))
	if err != nil {
		return log.InfoLevel
	}
	return level
}
