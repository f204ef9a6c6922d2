package main

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/walteh/pixmatch/cmd/pixmatch/feedback"
	"github.com/walteh/pixmatch/cmd/pixmatch/opts"
)

var (
	// Flags
	configFile     string
	tablePath      string
	imagesDir      string
	outputDir      string
	fallbackDir    string
	ignorePatterns []string
	onConflict     string
	debug          bool
)

// newRootOpts creates a new RootOpts with initialized dependencies
func newRootOpts(ctx context.Context, userLogger *feedback.UserLogger) *opts.RootOpts {
	return &opts.RootOpts{
		ConfigFile:     &configFile,
		TablePath:      &tablePath,
		ImagesDir:      &imagesDir,
		OutputDir:      &outputDir,
		FallbackDir:    &fallbackDir,
		IgnorePatterns: &ignorePatterns,
		OnConflict:     &onConflict,
		UserLogger:     userLogger,
	}
}

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file path (.yaml or .hcl)")
	cmd.PersistentFlags().StringVarP(&tablePath, "table", "t", "", "client roster spreadsheet (.xlsx or .csv)")
	cmd.PersistentFlags().StringVarP(&imagesDir, "images", "i", "", "primary images directory")
	cmd.PersistentFlags().StringVarP(&outputDir, "output", "o", "", "output directory for matched images")
	cmd.PersistentFlags().StringVarP(&fallbackDir, "fallback", "f", "", "fallback images directory (optional)")
	cmd.PersistentFlags().StringSliceVar(&ignorePatterns, "ignore", nil, "glob patterns for files to skip")
	cmd.PersistentFlags().StringVar(&onConflict, "on-conflict", "", "destination collision policy: overwrite or skip")
	cmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug logging")
}
