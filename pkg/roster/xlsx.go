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
	"strings"

	"github.com/xuri/excelize/v2"
	"gitlab.com/tozd/go/errors"
)

// 🔧 XLSXCodec reads and writes Excel workbooks. Only the first sheet is
// consulted; that is where the original roster lives.
type XLSXCodec struct{}

func init() {
	Register(&XLSXCodec{})
}

func (c *XLSXCodec) CanDecode(filename string) bool {
	return strings.HasSuffix(strings.ToLower(filename), ".xlsx")
}

func (c *XLSXCodec) Decode(ctx context.Context, path string) (*Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.Errorf("opening workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, errors.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, errors.Errorf("reading sheet %s: %w", sheet, err)
	}
	if len(rows) == 0 {
		return &Table{}, nil
	}

	return &Table{Header: rows[0], Rows: rows[1:]}, nil
}

func (c *XLSXCodec) Encode(ctx context.Context, path string, t *Table) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)

	write := func(rowIdx int, cells []string) error {
		cell, err := excelize.CoordinatesToCellName(1, rowIdx)
		if err != nil {
			return errors.Errorf("computing cell name: %w", err)
		}
		values := make([]interface{}, len(cells))
		for i, v := range cells {
			values[i] = v
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return errors.Errorf("writing row %d: %w", rowIdx, err)
		}
		return nil
	}

	if err := write(1, t.Header); err != nil {
		return err
	}
	for i, row := range t.Rows {
		if err := write(i+2, row); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return errors.Errorf("saving workbook: %w", err)
	}
	return nil
}
