// Package runlog provides the append-only, operator-facing record of a
// dispatch run, written line by line to the console and optionally
// mirrored to a file. This is the audit stream; diagnostic logging goes
// through slog instead.
package runlog

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// Log is a serialized line sink. Concurrent workers may call Printf; a
// single mutex guarantees lines never interleave. The write lock is held
// only while formatting and flushing one line.
type Log struct {
	mu      sync.Mutex
	console io.Writer
	file    io.WriteCloser
	path    string
	err     error // first file write error, surfaced at end of run
}

// DefaultPath returns a timestamp-derived log file name. Second
// resolution; two runs started within the same second collide, which is
// an accepted limitation.
func DefaultPath() string {
	return "gqlbatch-" + time.Now().Format("20060102150405") + ".log"
}

// Open creates a log mirroring to the file at path.
func Open(path string, console io.Writer) (*Log, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("opening log file %s: %w", path, err)
	}
	return &Log{console: console, file: f, path: path}, nil
}

// New creates a log without a backing file. file may be nil to write to
// the console only.
func New(console io.Writer, file io.WriteCloser) *Log {
	return &Log{console: console, file: file}
}

// Printf appends one line, prefixed with a UTC timestamp, to every
// configured stream. File write errors are remembered but never stop the
// run; dispatch outcomes outrank a full disk.
func (l *Log) Printf(format string, args ...any) {
	line := time.Now().UTC().Format(time.RFC3339) + " " + fmt.Sprintf(format, args...) + "\n"

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.console != nil {
		_, _ = io.WriteString(l.console, line)
	}
	if l.file != nil {
		if _, err := io.WriteString(l.file, line); err != nil && l.err == nil {
			l.err = err
		}
	}
}

// Path returns the backing file path, or "" when writing to the console only.
func (l *Log) Path() string { return l.path }

// Err returns the first file write error seen, if any.
func (l *Log) Err() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.err
}

// Close closes the backing file, if any.
func (l *Log) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}
