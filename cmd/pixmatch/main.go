package main

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/pixmatch/cmd/pixmatch/commands"
	"github.com/walteh/pixmatch/cmd/pixmatch/feedback"
	"github.com/walteh/pixmatch/pkg/log"
)

func main() {
	// Setup logging
	zlog := setupLogging()
	ctx := zlog.WithContext(context.Background())
	ctx = log.NewContext(ctx, log.New(os.Stdout, zerolog.Disabled))

	// Create user logger
	userLogger := feedback.NewUserLogger(ctx)

	// Create root command
	rootCmd := &cobra.Command{
		Use:   "pixmatch",
		Short: "Match client images against a roster spreadsheet",
		Long: `pixmatch reconciles a client roster (a spreadsheet with a ClientID
column) against a directory of image files. Images whose name starts with a
known client identifier are copied to an output directory, and the roster is
rewritten with per-client match counts and status.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if debug {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			}
		},
	}

	// Add shared flags
	addRootFlags(rootCmd)

	// Add commands
	rootCmd.AddCommand(
		commands.NewRunCmd(newRootOpts(ctx, userLogger)),
		commands.NewCheckCmd(newRootOpts(ctx, userLogger)),
		newVersionCmd(),
	)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		userLogger.LogValidation(false, "Command failed", err)
		os.Exit(1)
	}
}

// setupLogging configures zerolog for console output
func setupLogging() zerolog.Logger {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	return zerolog.New(zerolog.NewConsoleWriter(func(w *zerolog.ConsoleWriter) {
		w.Out = os.Stderr
	})).With().Timestamp().Logger()
}
