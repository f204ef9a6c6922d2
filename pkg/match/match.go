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

// Package match scans an image directory against a set of client
// identifiers, copies matched files into an output directory, and tallies
// matches per identifier. A second, restricted pass over a fallback
// directory handles identifiers the primary pass left unmatched.
package match

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"github.com/walteh/pixmatch/pkg/clientid"
	"github.com/walteh/pixmatch/pkg/log"
	"gitlab.com/tozd/go/errors"
)

// ❌ ErrDirectoryNotFound reports a configured source directory that does
// not exist.
var ErrDirectoryNotFound = errors.New("source directory does not exist")

// 🔧 ConflictPolicy decides what happens when a matched file already exists
// at the destination.
type ConflictPolicy string

const (
	// Overwrite replaces the destination file (the default).
	Overwrite ConflictPolicy = "overwrite"
	// Skip leaves the existing destination file in place. The source file
	// still counts as matched.
	Skip ConflictPolicy = "skip"
)

// 🔧 Options contains scan configuration
type Options struct {
	// IgnorePatterns are doublestar globs checked against base names;
	// matching entries are skipped before identifier extraction.
	IgnorePatterns []string
	// OnConflict is the destination-collision policy
	OnConflict ConflictPolicy
	// Fallback marks the scan as the fallback pass (display only)
	Fallback bool
}

// 📊 Result is the outcome of one directory scan
type Result struct {
	// Matched holds base names of files copied to the output directory,
	// in enumeration order
	Matched []string
	// Mismatched holds base names with no identifier or an identifier
	// outside the target set
	Mismatched []string
	// Failed holds base names whose copy failed; the scan continues past
	// them
	Failed []string
	// Skipped counts non-regular entries and ignore-glob hits
	Skipped int
	// Tally maps each target identifier to its match count, zero included
	Tally map[string]int
}

// 🏃 Directory scans the immediate entries of srcDir against ids, copying
// matched files into outDir. The tally starts at zero for every target
// identifier, so callers can distinguish "never seen" from "not a target".
func Directory(ctx context.Context, ids clientid.Set, srcDir, outDir string, opts Options) (*Result, error) {
	return scan(ctx, ids, srcDir, outDir, opts, true)
}

// 🔍 Classify walks srcDir like Directory but copies nothing and leaves the
// output directory alone. Backs the dry-run command.
func Classify(ctx context.Context, ids clientid.Set, srcDir string, opts Options) (*Result, error) {
	return scan(ctx, ids, srcDir, "", opts, false)
}

func scan(ctx context.Context, ids clientid.Set, srcDir, outDir string, opts Options, copyFiles bool) (*Result, error) {
	logger := zerolog.Ctx(ctx)
	console := log.FromContext(ctx)

	info, err := os.Stat(srcDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Errorf("scanning %s: %w", srcDir, ErrDirectoryNotFound)
		}
		return nil, errors.Errorf("checking source directory %s: %w", srcDir, err)
	}
	if !info.IsDir() {
		return nil, errors.Errorf("scanning %s: %w", srcDir, ErrDirectoryNotFound)
	}

	// Create output folder if it doesn't exist
	if copyFiles {
		if err := os.MkdirAll(outDir, 0755); err != nil {
			return nil, errors.Errorf("creating output directory %s: %w", outDir, err)
		}
	}

	entries, err := os.ReadDir(srcDir)
	if err != nil {
		return nil, errors.Errorf("listing %s: %w", srcDir, err)
	}

	result := &Result{Tally: make(map[string]int, len(ids))}
	for id := range ids {
		result.Tally[id] = 0
	}

	console.StartScanPass(ctx, log.ScanPass{
		Source:      srcDir,
		Destination: outDir,
		Targets:     len(ids),
		IsFallback:  opts.Fallback,
	})
	defer console.EndScanPass(ctx)

	for _, entry := range entries {
		name := entry.Name()
		srcPath := filepath.Join(srcDir, name)

		// Stat rather than DirEntry.Type so symlinks resolve to their
		// targets; anything that is not a regular file is skipped.
		fi, err := os.Stat(srcPath)
		if err != nil || !fi.Mode().IsRegular() {
			result.Skipped++
			continue
		}

		if shouldIgnore(ctx, name, opts.IgnorePatterns) {
			result.Skipped++
			console.LogFileMatch(ctx, log.FileMatch{Name: name, Outcome: log.OutcomeSkipped})
			continue
		}

		id, ok := clientid.FromFilename(name)
		if !ok || !ids.Has(id) {
			result.Mismatched = append(result.Mismatched, name)
			console.LogFileMatch(ctx, log.FileMatch{Name: name, ClientID: id, Outcome: log.OutcomeMismatched})
			continue
		}

		if copyFiles {
			if err := copyFile(srcPath, filepath.Join(outDir, name), opts.OnConflict); err != nil {
				result.Failed = append(result.Failed, name)
				logger.Warn().Str("file", name).Err(err).Msg("copy failed, continuing scan")
				console.LogFileMatch(ctx, log.FileMatch{Name: name, ClientID: id, Outcome: log.OutcomeFailed})
				continue
			}
		}

		result.Matched = append(result.Matched, name)
		result.Tally[id]++
		console.LogFileMatch(ctx, log.FileMatch{Name: name, ClientID: id, Outcome: log.OutcomeMatched})
	}

	logger.Debug().
		Int("matched", len(result.Matched)).
		Int("mismatched", len(result.Mismatched)).
		Int("failed", len(result.Failed)).
		Int("skipped", result.Skipped).
		Msg("scan finished")

	return result, nil
}

// 🔍 shouldIgnore checks if a base name matches any ignore pattern
func shouldIgnore(ctx context.Context, name string, patterns []string) bool {
	logger := zerolog.Ctx(ctx)
	for _, pattern := range patterns {
		matched, err := doublestar.Match(pattern, name)
		if err != nil {
			logger.Debug().Str("pattern", pattern).Str("file", name).Err(err).Msg("error matching pattern")
			continue
		}
		if matched {
			logger.Debug().Str("file", name).Str("pattern", pattern).Msg("file ignored by pattern")
			return true
		}
	}
	return false
}

// 📄 copyFile copies src to dst honoring the conflict policy. A skipped
// existing destination is not an error.
func copyFile(src, dst string, policy ConflictPolicy) error {
	if policy == Skip {
		if _, err := os.Stat(dst); err == nil {
			return nil
		}
	}

	in, err := os.Open(src)
	if err != nil {
		return errors.Errorf("opening source: %w", err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return errors.Errorf("creating destination: %w", err)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return errors.Errorf("copying bytes: %w", err)
	}
	if err := out.Close(); err != nil {
		return errors.Errorf("closing destination: %w", err)
	}
	return nil
}
