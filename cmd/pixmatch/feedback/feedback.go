// Package feedback gives users friendly console output about the run:
// phase changes, per-image results, and errors. It is the CLI counterpart
// of the pkg/log renderer, aimed at people rather than terminals parsing
// columns.
package feedback

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
)

// 📢 UserLogger provides user-friendly feedback about the run
type UserLogger struct {
	log zerolog.Logger // for debug/error logging
}

// 🎨 ImageOutcome represents what happened to one scanned image
type ImageOutcome int

const (
	ImageCopied ImageOutcome = iota
	ImageMismatched
	ImageSkipped
	ImageError
)

// 🖼️ ImageEvent represents one image the scan touched
type ImageEvent struct {
	Outcome     ImageOutcome
	Path        string
	Description string
	Error       error
}

// 🎯 NewUserLogger creates a new user logger
func NewUserLogger(ctx context.Context) *UserLogger {
	return &UserLogger{
		log: *zerolog.Ctx(ctx),
	}
}

// 📝 LogImageEvent logs an image event with appropriate emoji and formatting
func (u *UserLogger) LogImageEvent(event ImageEvent) {
	relPath := filepath.Base(event.Path)

	var prefix, action string
	var printer *pterm.PrefixPrinter
	switch event.Outcome {
	case ImageCopied:
		prefix = "✨"
		action = "Copied"
		printer = pterm.Success.WithPrefix(pterm.Prefix{Text: prefix})
	case ImageMismatched:
		prefix = "⏭️"
		action = "Mismatched"
		printer = pterm.Debug.WithPrefix(pterm.Prefix{Text: prefix})
	case ImageSkipped:
		prefix = "🚫"
		action = "Skipped"
		printer = pterm.Debug.WithPrefix(pterm.Prefix{Text: prefix})
	case ImageError:
		prefix = "❌"
		action = "Error"
		printer = pterm.Error.WithPrefix(pterm.Prefix{Text: prefix})
	}

	msg := fmt.Sprintf("%s %s", action, relPath)
	if event.Description != "" {
		msg += fmt.Sprintf(" (%s)", event.Description)
	}

	if event.Error != nil {
		printer.Println(msg)
		pterm.Error.Println(event.Error)
		u.log.Error().Err(event.Error).Msg(msg) // Also log to zerolog for debugging
	} else {
		printer.Println(msg)
		u.log.Info().Msg(msg) // Also log to zerolog for debugging
	}
}

// 📊 LogPhase logs a change of pipeline phase
func (u *UserLogger) LogPhase(description string) {
	printer := pterm.Info.WithPrefix(pterm.Prefix{Text: "📦"})
	printer.Println(description)
	u.log.Info().Msg(description)
}

// 🔍 LogValidation logs validation results
func (u *UserLogger) LogValidation(valid bool, description string, err error) {
	if valid {
		pterm.Success.WithPrefix(pterm.Prefix{Text: "✅"}).Println(description)
		u.log.Info().Msg(description)
	} else {
		if err != nil {
			pterm.Error.WithPrefix(pterm.Prefix{Text: "❌"}).Println(description)
			pterm.Error.Println(err)
			u.log.Error().Err(err).Msg(description)
		} else {
			pterm.Warning.WithPrefix(pterm.Prefix{Text: "⚠️"}).Println(description)
			u.log.Warn().Msg(description)
		}
	}
}

// 💾 LogResult logs where the updated roster landed
func (u *UserLogger) LogResult(path string) {
	pterm.Success.WithPrefix(pterm.Prefix{Text: "📄"}).Printf("Updated roster saved at %s\n", path)
	u.log.Info().Str("path", path).Msg("updated roster saved")
}
