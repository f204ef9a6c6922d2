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

package roster

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"gitlab.com/tozd/go/errors"
)

func writeCSV(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644), "writing fixture")
	return path
}

func writeXLSX(t *testing.T, dir, name string, rows [][]interface{}) string {
	t.Helper()
	path := filepath.Join(dir, name)
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err, "computing cell name")
		require.NoError(t, f.SetSheetRow(sheet, cell, &row), "writing fixture row")
	}
	require.NoError(t, f.SaveAs(path), "saving fixture workbook")
	return path
}

func TestLoadCSV(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr error
		check   func(t *testing.T, r *Roster)
	}{
		{
			name:    "normalizes_identifiers",
			content: "Name,ClientID\nAda,1\nGrace,22\n",
			check: func(t *testing.T, r *Roster) {
				assert.Equal(t, 1, r.IDColumn, "ClientID should be the second column")
				assert.Equal(t, "00000000001", r.Table.Rows[0][1], "first id should be padded in place")
				assert.Equal(t, "00000000022", r.Table.Rows[1][1], "second id should be padded in place")
				assert.Len(t, r.IDs, 2, "set should hold both identifiers")
				assert.True(t, r.IDs.Has("00000000001"), "padded 1 should be in the set")
				assert.Equal(t, "Ada", r.Table.Rows[0][0], "other columns should pass through verbatim")
			},
		},
		{
			name:    "duplicate_ids_share_one_entry",
			content: "ClientID\n7\n7\n007\n",
			check: func(t *testing.T, r *Roster) {
				assert.Len(t, r.IDs, 1, "duplicates should collapse into one set entry")
				assert.Len(t, r.Table.Rows, 3, "all rows should be kept")
			},
		},
		{
			name:    "blank_cells_join_nothing",
			content: "ClientID,Name\n5,Ada\n,Grace\n",
			check: func(t *testing.T, r *Roster) {
				assert.Len(t, r.IDs, 1, "blank identifier should not enter the set")
				assert.Equal(t, "", r.Table.Cell(1, 0), "blank cell should stay blank")
			},
		},
		{
			name:    "missing_clientid_column",
			content: "Name,Phone\nAda,555\n",
			wantErr: ErrMissingClientID,
		},
		{
			name:    "column_name_is_case_sensitive",
			content: "clientid\n1\n",
			wantErr: ErrMissingClientID,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			path := writeCSV(t, t.TempDir(), "clients.csv", tt.content)

			r, err := Load(ctx, path)
			if tt.wantErr != nil {
				require.Error(t, err, "load should fail")
				assert.True(t, errors.Is(err, tt.wantErr), "error should wrap the expected kind")
				return
			}
			require.NoError(t, err, "load should succeed")
			tt.check(t, r)
		})
	}
}

func TestLoadXLSX(t *testing.T) {
	ctx := context.Background()
	path := writeXLSX(t, t.TempDir(), "clients.xlsx", [][]interface{}{
		{"ClientID", "Name"},
		{"1", "Ada"},
		{"22", "Grace"},
	})

	r, err := Load(ctx, path)
	require.NoError(t, err, "load should succeed")

	assert.Equal(t, 0, r.IDColumn, "ClientID should be the first column")
	assert.Equal(t, "00000000001", r.Table.Rows[0][0], "id should be normalized")
	assert.True(t, r.IDs.Has("00000000022"), "padded 22 should be in the set")
	assert.Equal(t, "Grace", r.Table.Cell(1, 1), "other columns should pass through")
}

func TestLoadErrors(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown_extension", func(t *testing.T) {
		path := writeCSV(t, t.TempDir(), "clients.txt", "ClientID\n1\n")
		_, err := Load(ctx, path)
		require.Error(t, err, "load should fail")
		assert.True(t, errors.Is(err, ErrNoCodec), "error should wrap ErrNoCodec")
	})

	t.Run("unreadable_file", func(t *testing.T) {
		_, err := Load(ctx, filepath.Join(t.TempDir(), "missing.csv"))
		require.Error(t, err, "load of a missing file should fail")
	})

	t.Run("malformed_workbook", func(t *testing.T) {
		path := writeCSV(t, t.TempDir(), "clients.xlsx", "this is not a zip archive")
		_, err := Load(ctx, path)
		require.Error(t, err, "load of a malformed workbook should fail")
	})
}

func TestSaveRoundtrip(t *testing.T) {
	table := &Table{
		Header: []string{"ClientID", "Name"},
		Rows: [][]string{
			{"00000000001", "Ada"},
			{"00000000022", "Grace"},
		},
	}

	for _, ext := range []string{".csv", ".xlsx"} {
		t.Run(ext, func(t *testing.T) {
			ctx := context.Background()
			path := filepath.Join(t.TempDir(), "out"+ext)

			require.NoError(t, Save(ctx, path, table), "save should succeed")

			c := codecFor(path)
			require.NotNil(t, c, "a codec should exist for %s", ext)
			got, err := c.Decode(ctx, path)
			require.NoError(t, err, "decode should succeed")

			assert.Equal(t, table.Header, got.Header, "header should survive the roundtrip")
			assert.Equal(t, table.Rows, got.Rows, "rows should survive the roundtrip")
		})
	}
}
