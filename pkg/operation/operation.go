// Package operation wires the full reconciliation pipeline: load the
// roster, scan the primary images directory, retry unmatched identifiers
// against the fallback directory, and write the annotated roster.
package operation

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/walteh/pixmatch/pkg/clientid"
	"github.com/walteh/pixmatch/pkg/config"
	"github.com/walteh/pixmatch/pkg/log"
	"github.com/walteh/pixmatch/pkg/match"
	"github.com/walteh/pixmatch/pkg/report"
	"github.com/walteh/pixmatch/pkg/roster"
	"gitlab.com/tozd/go/errors"
)

// ❌ ErrNoClientIDs reports a roster that loaded fine but yielded no usable
// identifiers, so no file could ever match.
var ErrNoClientIDs = errors.New("no valid client identifiers in roster")

// 📊 Summary describes a completed run
type Summary struct {
	// UpdatedTablePath is where the annotated roster was written; empty
	// for a dry run
	UpdatedTablePath string
	// Clients is the number of distinct identifiers in the roster
	Clients int
	// PrimaryMatched / PrimaryMismatched count files from the primary scan
	PrimaryMatched    int
	PrimaryMismatched int
	// FallbackRan reports whether the fallback pass executed
	FallbackRan bool
	// FallbackMatched counts files rescued by the fallback pass
	FallbackMatched int
	// FailedFiles holds base names of files whose copy failed; the scan
	// continued past them
	FailedFiles []string
	// TotalMatched is the sum of all per-identifier tallies
	TotalMatched int
	// MatchedClients counts identifiers with at least one match
	MatchedClients int
}

// 🏃 Process runs the whole pipeline and returns where the updated roster
// was written. Error policy: an unreadable roster, a missing ClientID
// column, an empty identifier set, or a missing primary directory abort
// the run before any output; a missing fallback directory only logs a
// warning and the run keeps the primary results.
func Process(ctx context.Context, cfg *config.Config) (*Summary, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	r, tally, summary, err := scan(ctx, cfg)
	if err != nil {
		return nil, err
	}

	outPath := report.UpdatedPath(cfg.TablePath)
	if err := report.Write(ctx, r, tally, outPath); err != nil {
		return nil, errors.Errorf("writing report: %w", err)
	}

	summary.UpdatedTablePath = outPath
	return summary, nil
}

// 🔍 Check runs the same join without side effects on the roster file:
// files are classified and tallied but nothing is copied and no report is
// written. Useful to preview what a run would do.
func Check(ctx context.Context, cfg *config.Config) (*Summary, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	_, _, summary, err := scanDry(ctx, cfg)
	if err != nil {
		return nil, err
	}

	return summary, nil
}

// scan executes the primary and fallback passes and assembles the summary.
func scan(ctx context.Context, cfg *config.Config) (*roster.Roster, map[string]int, *Summary, error) {
	logger := zerolog.Ctx(ctx)

	r, err := roster.Load(ctx, cfg.TablePath)
	if err != nil {
		return nil, nil, nil, errors.Errorf("loading roster: %w", err)
	}
	if len(r.IDs) == 0 {
		return nil, nil, nil, errors.Errorf("roster %s: %w", cfg.TablePath, ErrNoClientIDs)
	}

	opts := match.Options{
		IgnorePatterns: cfg.IgnorePatterns,
		OnConflict:     cfg.OnConflict,
	}

	primary, err := match.Directory(ctx, r.IDs, cfg.ImagesDir, cfg.OutputDir, opts)
	if err != nil {
		return nil, nil, nil, errors.Errorf("primary scan: %w", err)
	}

	tally := primary.Tally
	summary := &Summary{
		Clients:           len(r.IDs),
		PrimaryMatched:    len(primary.Matched),
		PrimaryMismatched: len(primary.Mismatched),
		FailedFiles:       primary.Failed,
	}

	fallback, err := match.Fallback(ctx, r.IDs, tally, cfg.FallbackDir, cfg.OutputDir, opts)
	if err != nil {
		// A broken fallback directory never wins over primary results.
		logger.Warn().Err(err).Str("dir", cfg.FallbackDir).Msg("fallback pass failed, keeping primary results")
	} else if fallback != nil {
		summary.FallbackRan = true
		summary.FallbackMatched = len(fallback.Matched)
		summary.FailedFiles = append(summary.FailedFiles, fallback.Failed...)
	}

	for _, n := range tally {
		summary.TotalMatched += n
		if n > 0 {
			summary.MatchedClients++
		}
	}

	return r, tally, summary, nil
}

// scanDry is scan without filesystem writes: identifiers are extracted and
// tallied, the output directory is left alone.
func scanDry(ctx context.Context, cfg *config.Config) (*roster.Roster, map[string]int, *Summary, error) {
	r, err := roster.Load(ctx, cfg.TablePath)
	if err != nil {
		return nil, nil, nil, errors.Errorf("loading roster: %w", err)
	}
	if len(r.IDs) == 0 {
		return nil, nil, nil, errors.Errorf("roster %s: %w", cfg.TablePath, ErrNoClientIDs)
	}

	tally := make(map[string]int, len(r.IDs))
	for id := range r.IDs {
		tally[id] = 0
	}

	summary := &Summary{Clients: len(r.IDs)}

	primaryMatched, primaryMismatched, err := tallyDir(ctx, r.IDs, cfg.ImagesDir, cfg.IgnorePatterns, tally)
	if err != nil {
		return nil, nil, nil, errors.Errorf("primary scan: %w", err)
	}
	summary.PrimaryMatched = primaryMatched
	summary.PrimaryMismatched = primaryMismatched

	if cfg.FallbackDir != "" {
		rest := match.Unmatched(r.IDs, tally)
		if len(rest) > 0 {
			restTally := make(map[string]int, len(rest))
			for id := range rest {
				restTally[id] = 0
			}
			matched, _, err := tallyDir(ctx, rest, cfg.FallbackDir, cfg.IgnorePatterns, restTally)
			if err != nil {
				zerolog.Ctx(ctx).Warn().Err(err).Str("dir", cfg.FallbackDir).Msg("fallback pass failed, keeping primary results")
			} else {
				summary.FallbackRan = true
				summary.FallbackMatched = matched
				match.MergeTally(tally, restTally)
			}
		}
	}

	for _, n := range tally {
		summary.TotalMatched += n
		if n > 0 {
			summary.MatchedClients++
		}
	}

	return r, tally, summary, nil
}

// tallyDir counts matches in dir without copying anything.
func tallyDir(ctx context.Context, ids clientid.Set, dir string, ignore []string, tally map[string]int) (matched, mismatched int, err error) {
	res, err := match.Classify(ctx, ids, dir, match.Options{IgnorePatterns: ignore})
	if err != nil {
		return 0, 0, err
	}
	match.MergeTally(tally, res.Tally)
	return len(res.Matched), len(res.Mismatched), nil
}

// 📝 Describe renders the summary in the console logger, mirroring the
// closing lines the run prints for users.
func Describe(s *Summary, console *log.Logger) {
	console.Infof("Matched and copied %d images from the primary directory.", s.PrimaryMatched)
	if s.FallbackRan {
		console.Infof("Fallback pass matched %d more images.", s.FallbackMatched)
	}
	console.Infof("Total mismatched images: %d", s.PrimaryMismatched)
	console.Infof("Total matched images: %d", s.TotalMatched)
	if len(s.FailedFiles) > 0 {
		console.Warningf("%d images failed to copy.", len(s.FailedFiles))
	}
}
