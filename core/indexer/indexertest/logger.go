package indexertest

import "sync"

// LogEntry is one captured log call
type LogEntry struct {
	Level   string
	Message string
	Fields  map[string]interface{}
}

// Logger captures log calls for assertions
type Logger struct {
	mu      sync.Mutex
	Entries []LogEntry
}

func (l *Logger) record(level, msg string, fields map[string]interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Entries = append(l.Entries, LogEntry{Level: level, Message: msg, Fields: fields})
}

// Debug implements interfaces.Logger
func (l *Logger) Debug(msg string, fields map[string]interface{}) { l.record("debug", msg, fields) }

// Info implements interfaces.Logger
func (l *Logger) Info(msg string, fields map[string]interface{}) { l.record("info", msg, fields) }

// Warn implements interfaces.Logger
func (l *Logger) Warn(msg string, fields map[string]interface{}) { l.record("warn", msg, fields) }

// Error implements interfaces.Logger
func (l *Logger) Error(msg string, fields map[string]interface{}) { l.record("error", msg, fields) }

// Count returns how many entries were logged at level
func (l *Logger) Count(level string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for _, e := range l.Entries {
		if e.Level == level {
			n++
		}
	}
	return n
}
