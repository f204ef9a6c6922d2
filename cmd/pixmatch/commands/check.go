package commands

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/pixmatch/cmd/pixmatch/opts"
	"github.com/walteh/pixmatch/pkg/operation"
	"gitlab.com/tozd/go/errors"
)

// NewCheckCmd creates a new check command
func NewCheckCmd(opts *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Preview matches without copying or writing anything",
		Long: `Check runs the same roster-to-directory join as run, but copies no
images and writes no updated roster. Use it to see what a run would do.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ctx = zerolog.Ctx(ctx).With().Str("command", "check").Logger().WithContext(ctx)

			cfg, err := opts.BuildConfig(ctx)
			if err != nil {
				return err
			}

			summary, err := operation.Check(ctx, cfg)
			if err != nil {
				return errors.Errorf("checking images: %w", err)
			}

			opts.UserLogger.LogPhase(summaryLine(summary))

			return nil
		},
	}

	return cmd
}

// summaryLine condenses a run summary into one user-facing sentence.
func summaryLine(s *operation.Summary) string {
	line := fmt.Sprintf("%d of %d clients matched, %d images matched (%d mismatched)",
		s.MatchedClients, s.Clients, s.TotalMatched, s.PrimaryMismatched)
	if s.FallbackRan {
		line += fmt.Sprintf(", %d rescued by fallback", s.FallbackMatched)
	}
	if len(s.FailedFiles) > 0 {
		line += fmt.Sprintf(", %d copies failed", len(s.FailedFiles))
	}
	return line
}
