package commands

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/pixmatch/cmd/pixmatch/feedback"
	"github.com/walteh/pixmatch/cmd/pixmatch/opts"
	"github.com/walteh/pixmatch/pkg/log"
	"github.com/walteh/pixmatch/pkg/operation"
	"gitlab.com/tozd/go/errors"
)

// NewRunCmd creates a new run command
func NewRunCmd(opts *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Match images against the roster and copy them",
		Long: `Run executes the full reconciliation pipeline.
It will:
1. Load the roster and normalize every ClientID
2. Scan the primary images directory and copy matched images
3. Retry unmatched clients against the fallback directory, if set
4. Write the roster back with match counts and status`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ctx = zerolog.Ctx(ctx).With().Str("command", "run").Logger().WithContext(ctx)

			cfg, err := opts.BuildConfig(ctx)
			if err != nil {
				return err
			}

			opts.UserLogger.LogPhase("Matching images for " + cfg.String())

			summary, err := operation.Process(ctx, cfg)
			if err != nil {
				return errors.Errorf("processing images: %w", err)
			}

			operation.Describe(summary, log.FromContext(ctx))
			for _, name := range summary.FailedFiles {
				opts.UserLogger.LogImageEvent(feedback.ImageEvent{
					Outcome:     feedback.ImageError,
					Path:        name,
					Description: "copy failed",
				})
			}
			opts.UserLogger.LogValidation(true, summaryLine(summary), nil)
			opts.UserLogger.LogResult(summary.UpdatedTablePath)

			return nil
		},
	}

	return cmd
}
