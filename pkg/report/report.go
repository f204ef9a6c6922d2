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

// Package report annotates the roster with per-client match results and
// persists it next to the input file.
package report

import (
	"context"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/walteh/pixmatch/pkg/roster"
	"gitlab.com/tozd/go/errors"
)

// 🏷️ Appended column names and status values
const (
	CountColumn  = "Matched Images Count"
	StatusColumn = "Status"

	StatusMatched    = "Matched"
	StatusMismatched = "Mismatched"
)

// ❌ ErrWrite reports a report that could not be persisted.
var ErrWrite = errors.New("cannot write updated roster")

// 🎯 UpdatedPath derives the output path from the roster path by inserting
// "_updated" before the extension: clients.xlsx -> clients_updated.xlsx.
func UpdatedPath(tablePath string) string {
	ext := filepath.Ext(tablePath)
	return strings.TrimSuffix(tablePath, ext) + "_updated" + ext
}

// 📝 Write appends the match-count and status columns to the roster table
// and saves it at path. A row whose identifier is absent from the tally
// reads as zero and Mismatched.
func Write(ctx context.Context, r *roster.Roster, tally map[string]int, path string) error {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("writing updated roster")

	out := &roster.Table{
		Header: append(append([]string{}, r.Table.Header...), CountColumn, StatusColumn),
		Rows:   make([][]string, len(r.Table.Rows)),
	}

	for i, row := range r.Table.Rows {
		count := tally[r.Table.Cell(i, r.IDColumn)]
		status := StatusMismatched
		if count > 0 {
			status = StatusMatched
		}

		// Pad short rows so the appended columns line up with the header.
		padded := append([]string{}, row...)
		for len(padded) < len(r.Table.Header) {
			padded = append(padded, "")
		}
		out.Rows[i] = append(padded, strconv.Itoa(count), status)
	}

	if err := roster.Save(ctx, path, out); err != nil {
		return errors.Errorf("%w: %w", ErrWrite, err)
	}

	logger.Debug().Int("rows", len(out.Rows)).Msg("updated roster written")
	return nil
}
