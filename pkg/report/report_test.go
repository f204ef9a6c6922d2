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

package report

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/pixmatch/pkg/roster"
	"gitlab.com/tozd/go/errors"
)

func TestUpdatedPath(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "xlsx",
			in:   "clients.xlsx",
			want: "clients_updated.xlsx",
		},
		{
			name: "csv_with_directory",
			in:   filepath.Join("data", "clients.csv"),
			want: filepath.Join("data", "clients_updated.csv"),
		},
		{
			name: "no_extension",
			in:   "clients",
			want: "clients_updated",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, UpdatedPath(tt.in), "derived path should match")
		})
	}
}

func loadedRoster(t *testing.T, dir, content string) *roster.Roster {
	t.Helper()
	path := filepath.Join(dir, "clients.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644), "writing roster fixture")
	r, err := roster.Load(context.Background(), path)
	require.NoError(t, err, "loading roster fixture")
	return r
}

func TestWrite(t *testing.T) {
	ctx := context.Background()

	t.Run("appends_count_and_status", func(t *testing.T) {
		dir := t.TempDir()
		r := loadedRoster(t, dir, "Name,ClientID\nAda,1\nGrace,22\nAlan,99\n")

		tally := map[string]int{
			"00000000001": 2,
			"00000000022": 1,
			// 99 intentionally absent: rows must default to zero
		}

		outPath := filepath.Join(dir, "clients_updated.csv")
		require.NoError(t, Write(ctx, r, tally, outPath), "write should succeed")

		got, err := roster.Load(ctx, outPath)
		require.NoError(t, err, "reading back the report")

		assert.Equal(t, []string{"Name", "ClientID", CountColumn, StatusColumn}, got.Table.Header,
			"columns should be appended after the originals")

		assert.Equal(t, []string{"Ada", "00000000001", "2", StatusMatched}, got.Table.Rows[0], "matched row")
		assert.Equal(t, []string{"Grace", "00000000022", "1", StatusMatched}, got.Table.Rows[1], "matched row")
		assert.Equal(t, []string{"Alan", "00000000099", "0", StatusMismatched}, got.Table.Rows[2],
			"row absent from the tally should read zero and Mismatched")
	})

	t.Run("duplicate_ids_share_one_count", func(t *testing.T) {
		dir := t.TempDir()
		r := loadedRoster(t, dir, "ClientID\n7\n7\n")

		tally := map[string]int{"00000000007": 4}

		outPath := filepath.Join(dir, "clients_updated.csv")
		require.NoError(t, Write(ctx, r, tally, outPath), "write should succeed")

		got, err := roster.Load(ctx, outPath)
		require.NoError(t, err, "reading back the report")

		assert.Equal(t, "4", got.Table.Rows[0][1], "first duplicate row reads the shared count")
		assert.Equal(t, "4", got.Table.Rows[1][1], "second duplicate row reads the shared count")
	})

	t.Run("unwritable_destination", func(t *testing.T) {
		dir := t.TempDir()
		r := loadedRoster(t, dir, "ClientID\n1\n")

		err := Write(ctx, r, map[string]int{}, filepath.Join(dir, "missing", "out.csv"))
		require.Error(t, err, "write into a missing directory should fail")
		assert.True(t, errors.Is(err, ErrWrite), "error should wrap ErrWrite")
	})
}
