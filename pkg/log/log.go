// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package log

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
)

// 🎨 Display configuration
const (
	fileIndent   = 4  // spaces to indent file entries
	nameWidth    = 35 // Base width for filename
	idWidth      = 13 // Width for the extracted identifier
	outcomeWidth = 12 // Width for outcome text
)

// 🎯 Outcome classifies a scanned file.
type Outcome string

const (
	OutcomeMatched    Outcome = "matched"
	OutcomeMismatched Outcome = "mismatched"
	OutcomeFailed     Outcome = "copy-failed"
	OutcomeSkipped    Outcome = "skipped"
)

// 🎯 FileMatch represents one scanned file for logging
type FileMatch struct {
	Name     string  // File base name
	ClientID string  // Extracted identifier, empty if none
	Outcome  Outcome // Classification of the file
}

// 📦 ScanPass represents one directory scan for logging
type ScanPass struct {
	Source      string // Source directory
	Destination string // Output directory
	Targets     int    // Identifiers the pass matches against
	IsFallback  bool   // Whether this is the fallback pass
}

// 🎯 Logger handles structured logging with console output
type Logger struct {
	zlog        zerolog.Logger
	console     io.Writer
	mu          sync.Mutex
	currentPass *ScanPass
	matches     []FileMatch
}

// 🏭 New creates a new logger
func New(console io.Writer, level zerolog.Level) *Logger {
	zlog := zerolog.New(zerolog.NewConsoleWriter()).With().Timestamp().Logger().Level(level)
	return &Logger{
		zlog:    zlog,
		console: console,
		mu:      sync.Mutex{},
	}
}

// 🔑 contextKey is the type for context values
type contextKey struct{}

// 🎯 FromContext gets the logger from context, falling back to a discard
// logger so library callers that never attached one still work.
func FromContext(ctx context.Context) *Logger {
	logger, ok := ctx.Value(contextKey{}).(*Logger)
	if !ok {
		return New(io.Discard, zerolog.Disabled)
	}
	return logger
}

// 🎯 NewContext adds the logger to context
func NewContext(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, l)
}

// 📝 formatFileMatch formats a file match for display
func (l *Logger) formatFileMatch(m FileMatch) string {
	// Determine symbol and color
	var symbol rune
	var symbolColor color.Attribute
	switch m.Outcome {
	case OutcomeMatched:
		symbol = '✓'
		symbolColor = color.FgGreen
	case OutcomeFailed:
		symbol = '✗'
		symbolColor = color.FgRed
	case OutcomeSkipped:
		symbol = '•'
		symbolColor = color.FgCyan
	default:
		symbol = '-'
		symbolColor = color.FgYellow
	}

	id := m.ClientID
	if id == "" {
		id = "(none)"
	}

	// Build the line
	return fmt.Sprintf("%s%s %s %s %s",
		fmt.Sprintf("%*s", fileIndent, ""),
		color.New(symbolColor).Sprint(string(symbol)),
		fmt.Sprintf("%-*s", nameWidth, m.Name),
		color.New(color.Faint).Sprint(fmt.Sprintf("%-*s", idWidth, id)),
		fmt.Sprintf("%-*s", outcomeWidth, m.Outcome))
}

// 📝 LogFileMatch logs one scanned file
func (l *Logger) LogFileMatch(ctx context.Context, m FileMatch) {
	l.mu.Lock()
	defer l.mu.Unlock()

	// Add to matches list
	l.matches = append(l.matches, m)

	// Format and print
	fmt.Fprintln(l.console, l.formatFileMatch(m))

	// Log to zerolog
	l.zlog.Info().
		Str("file", m.Name).
		Str("client_id", m.ClientID).
		Str("outcome", string(m.Outcome)).
		Msg("file scanned")
}

// 📝 StartScanPass starts a new directory scan
func (l *Logger) StartScanPass(ctx context.Context, pass ScanPass) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.currentPass = &pass
	l.matches = nil

	label := "primary"
	if pass.IsFallback {
		label = "fallback"
	}

	// Print scan header
	fmt.Fprintf(l.console, "[scanning %s]\n",
		color.New(color.FgCyan).Sprint(pass.Source))

	fmt.Fprintf(l.console, "%s %s %s %s\n",
		color.New(color.FgMagenta).Sprint("◆"),
		color.New(color.Bold).Sprint(label),
		color.New(color.Faint).Sprint("•"),
		color.New(color.FgYellow).Sprintf("%d target ids", pass.Targets))

	// Log to zerolog
	l.zlog.Info().
		Str("source", pass.Source).
		Str("destination", pass.Destination).
		Int("targets", pass.Targets).
		Bool("fallback", pass.IsFallback).
		Msg("starting directory scan")
}

// 📝 EndScanPass ends the current directory scan
func (l *Logger) EndScanPass(ctx context.Context) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.currentPass == nil {
		return
	}

	// Log summary
	l.zlog.Info().
		Str("source", l.currentPass.Source).
		Int("files", len(l.matches)).
		Msg("directory scan complete")

	l.currentPass = nil
	l.matches = nil
}

// 📝 LogNewline logs a newline
func (l *Logger) LogNewline() {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.console)
}

// 📝 Header logs a header
func (l *Logger) Header(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	name := color.New(color.Bold, color.FgCyan).Sprint("pixmatch")
	fmt.Fprintf(l.console, "\n%s %s\n\n", name, color.New(color.Faint).Sprint("• "+msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Success logs a success message
func (l *Logger) Success(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "✅ %s\n", color.New(color.FgGreen).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Warning logs a warning message
func (l *Logger) Warning(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "⚠️  %s\n", color.New(color.FgYellow).Sprint(msg))
	l.zlog.Warn().Msg(msg)
}

// 📝 Error logs an error message
func (l *Logger) Error(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "❌ %s\n", color.New(color.FgRed).Sprint(msg))
	l.zlog.Error().Msg(msg)
}

// 📝 Info logs an info message
func (l *Logger) Info(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "ℹ️  %s\n", color.New(color.FgCyan).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Infof logs a formatted info message
func (l *Logger) Infof(format string, args ...interface{}) {
	l.Info(fmt.Sprintf(format, args...))
}

// 📝 Warningf logs a formatted warning message
func (l *Logger) Warningf(format string, args ...interface{}) {
	l.Warning(fmt.Sprintf(format, args...))
}

// 📝 Errorf logs a formatted error message
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.Error(fmt.Sprintf(format, args...))
}

// 📝 Successf logs a formatted success message
func (l *Logger) Successf(format string, args ...interface{}) {
	l.Success(fmt.Sprintf(format, args...))
}
