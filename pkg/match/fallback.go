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

package match

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/walteh/pixmatch/pkg/clientid"
)

// 🔍 Unmatched returns the subset of ids whose tally is exactly zero.
func Unmatched(ids clientid.Set, tally map[string]int) clientid.Set {
	rest := make(clientid.Set)
	for id := range ids {
		if tally[id] == 0 {
			rest[id] = struct{}{}
		}
	}
	return rest
}

// ➕ MergeTally adds every count in src into dst.
func MergeTally(dst, src map[string]int) {
	for id, n := range src {
		dst[id] += n
	}
}

// 🏃 Fallback re-scans fallbackDir for identifiers the primary pass left at
// zero and merges the resulting counts into tally. It is a no-op when no
// identifier is unmatched or no fallback directory is configured. Errors
// from the underlying scan (a missing fallback directory included) are
// returned for the caller to treat as non-fatal; tally is untouched then.
func Fallback(ctx context.Context, ids clientid.Set, tally map[string]int, fallbackDir, outDir string, opts Options) (*Result, error) {
	logger := zerolog.Ctx(ctx)

	if fallbackDir == "" {
		return nil, nil
	}

	rest := Unmatched(ids, tally)
	if len(rest) == 0 {
		logger.Debug().Msg("no unmatched identifiers, skipping fallback pass")
		return nil, nil
	}

	logger.Debug().Int("unmatched", len(rest)).Str("dir", fallbackDir).Msg("running fallback pass")

	opts.Fallback = true
	result, err := Directory(ctx, rest, fallbackDir, outDir, opts)
	if err != nil {
		return nil, err
	}

	MergeTally(tally, result.Tally)
	return result, nil
}
