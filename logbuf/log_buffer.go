// Package logbuf keeps the most recent log lines in memory, so a full
// screen UI can show them instead of letting them scribble over the screen.
package logbuf

import (
	"strings"
	"sync"
	"time"
)

// Iconic controls whether to use Unicode icons or ASCII fallbacks
var Iconic = true

type LogLevel int

const (
	LogTrace LogLevel = iota
	LogDebug
	LogInfo
	LogWarn
	LogError
)

func (l LogLevel) String() string {
	switch l {
	case LogTrace:
		return "TRACE"
	case LogDebug:
		return "DEBUG"
	case LogInfo:
		return "INFO"
	case LogWarn:
		return "WARN"
	case LogError:
		return "ERROR"
	default:
		return "???"
	}
}

func (l LogLevel) Icon() string {
	if !Iconic {
		return l.String()[:1]
	}
	switch l {
	case LogTrace:
		return "·"
	case LogDebug:
		return "○"
	case LogInfo:
		return "●"
	case LogWarn:
		return "▲"
	case LogError:
		return "✗"
	default:
		return "?"
	}
}

type LogEntry struct {
	Time    time.Time
	Level   LogLevel
	Source  string
	Message string
}

// LogBuffer is a thread-safe circular buffer for log entries
type LogBuffer struct {
	entries []LogEntry
	maxSize int
	mu      sync.RWMutex
}

func NewLogBuffer(maxSize int) *LogBuffer {
	if maxSize < 10 {
		maxSize = 10
	}
	return &LogBuffer{
		entries: make([]LogEntry, 0, maxSize),
		maxSize: maxSize,
	}
}

func (lb *LogBuffer) Add(level LogLevel, source, message string) {
	lb.mu.Lock()
	defer lb.mu.Unlock()

	lb.entries = append(lb.entries, LogEntry{
		Time:    time.Now(),
		Level:   level,
		Source:  source,
		Message: strings.TrimSpace(message),
	})
	if len(lb.entries) > lb.maxSize {
		lb.entries = lb.entries[len(lb.entries)-lb.maxSize:]
	}
}

var prefixes = []struct {
	prefix string
	level  LogLevel
}{
	{"[T] ", LogTrace},
	{"[D] ", LogDebug},
	{"[N] ", LogInfo},
	{"Fatal [", LogError},
	{"Error [", LogError},
	{"Warning [", LogWarn},
}

// AddLine adds one line as produced by the common logger; the level and the
// bracketed context are recovered from its prefixes.
func (lb *LogBuffer) AddLine(line string) {
	line = strings.TrimSpace(line)
	if line == "" {
		return
	}

	level := LogInfo
	for _, known := range prefixes {
		if !strings.HasPrefix(line, known.prefix) {
			continue
		}
		level = known.level
		if strings.HasSuffix(known.prefix, "] ") {
			line = strings.TrimPrefix(line, known.prefix)
		}
		break
	}

	source := ""
	if level >= LogWarn {
		if open := strings.Index(line, "["); open >= 0 {
			if closing := strings.Index(line[open:], "]"); closing > 0 {
				source = strings.TrimSuffix(line[open+1:open+closing], "; not critical")
				line = strings.TrimLeft(line[open+closing+1:], ": ")
			}
		}
	}

	lb.Add(level, source, line)
}

// Recent returns the N most recent entries
func (lb *LogBuffer) Recent(n int) []LogEntry {
	lb.mu.RLock()
	defer lb.mu.RUnlock()

	if n <= 0 || len(lb.entries) == 0 {
		return nil
	}
	if n > len(lb.entries) {
		n = len(lb.entries)
	}

	result := make([]LogEntry, n)
	copy(result, lb.entries[len(lb.entries)-n:])
	return result
}

func (lb *LogBuffer) Len() int {
	lb.mu.RLock()
	defer lb.mu.RUnlock()
	return len(lb.entries)
}

func (lb *LogBuffer) Clear() {
	lb.mu.Lock()
	defer lb.mu.Unlock()
	lb.entries = lb.entries[:0]
}

type LogStats struct {
	Total  int
	Errors int
	Warns  int
}

func (lb *LogBuffer) Stats() LogStats {
	lb.mu.RLock()
	defer lb.mu.RUnlock()

	stats := LogStats{Total: len(lb.entries)}
	for _, e := range lb.entries {
		switch e.Level {
		case LogError:
			stats.Errors++
		case LogWarn:
			stats.Warns++
		}
	}
	return stats
}
