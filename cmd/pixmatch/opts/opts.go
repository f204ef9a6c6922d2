package opts

import (
	"context"

	"github.com/walteh/pixmatch/cmd/pixmatch/feedback"
	"github.com/walteh/pixmatch/pkg/config"
	"github.com/walteh/pixmatch/pkg/match"
	"gitlab.com/tozd/go/errors"
)

// RootOpts contains shared options used by all commands. Flag values are
// pointers because cobra binds them after command construction.
type RootOpts struct {
	ConfigFile     *string
	TablePath      *string
	ImagesDir      *string
	OutputDir      *string
	FallbackDir    *string
	IgnorePatterns *[]string
	OnConflict     *string
	UserLogger     *feedback.UserLogger
}

// BuildConfig assembles the run configuration from the optional config file
// plus flag overrides. Flags win over file values.
func (o *RootOpts) BuildConfig(ctx context.Context) (*config.Config, error) {
	cfg := &config.Config{}

	if *o.ConfigFile != "" {
		loaded, err := config.Load(ctx, *o.ConfigFile)
		if err != nil {
			return nil, errors.Errorf("loading config: %w", err)
		}
		cfg = loaded
	}

	if *o.TablePath != "" {
		cfg.TablePath = *o.TablePath
	}
	if *o.ImagesDir != "" {
		cfg.ImagesDir = *o.ImagesDir
	}
	if *o.OutputDir != "" {
		cfg.OutputDir = *o.OutputDir
	}
	if *o.FallbackDir != "" {
		cfg.FallbackDir = *o.FallbackDir
	}
	if len(*o.IgnorePatterns) > 0 {
		cfg.IgnorePatterns = *o.IgnorePatterns
	}
	if *o.OnConflict != "" {
		cfg.OnConflict = match.ConflictPolicy(*o.OnConflict)
	}

	return cfg, nil
}
