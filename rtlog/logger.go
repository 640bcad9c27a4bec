// Copyright 2016 The Galileo Glass UI Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package rtlog provides the small leveled, writer-based logger used
// throughout the runtime for reference errors, validation failures, and
// caught user-callback panics. Writers are called synchronously, in the
// order they were added; the logger neither buffers nor retries a line.
package rtlog

import (
	"fmt"
	"time"
)

// Log levels, in increasing severity.
const (
	Debug = iota
	Info
	Warn
	Error
)

var levelNames = [...]string{"DEBUG", "INFO", "WARN", "ERROR"}

// Writer receives formatted log lines.
type Writer interface {
	Write(line string)
}

// Logger is a level-filtered logger with zero or more writers.
type Logger struct {
	prefix  string
	level   int
	writers []Writer
}

// New creates a Logger with the given prefix, defaulting to Warn level
// (matches the teacher default of filtering below Error-adjacent noise
// while still surfacing recoverable/reference errors in debug builds).
func New(prefix string) *Logger {

	return &Logger{prefix: prefix, level: Warn}
}

// SetLevel sets the minimum level this logger emits.
func (l *Logger) SetLevel(level int) {

	l.level = level
}

// AddWriter registers an output writer.
func (l *Logger) AddWriter(w Writer) {

	l.writers = append(l.writers, w)
}

// Debug logs a debug-level reference/validation detail.
func (l *Logger) Debug(format string, args ...interface{}) {
	l.log(Debug, format, args...)
}

// Info logs an informational message.
func (l *Logger) Info(format string, args ...interface{}) {
	l.log(Info, format, args...)
}

// Warn logs a recoverable-error-class message.
func (l *Logger) Warn(format string, args ...interface{}) {
	l.log(Warn, format, args...)
}

// Error logs a fatal/user-callback-error-class message.
func (l *Logger) Error(format string, args ...interface{}) {
	l.log(Error, format, args...)
}

func (l *Logger) log(level int, format string, args ...interface{}) {

	if level < l.level || len(l.writers) == 0 {
		return
	}
	msg := fmt.Sprintf(format, args...)
	line := fmt.Sprintf("%s [%s] %s: %s", time.Now().UTC().Format("15:04:05.000"), levelNames[level], l.prefix, msg)
	for _, w := range l.writers {
		w.Write(line)
	}
}
