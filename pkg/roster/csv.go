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
	"encoding/csv"
	"os"
	"strings"

	"gitlab.com/tozd/go/errors"
)

// 🔧 CSVCodec reads and writes comma-separated rosters.
type CSVCodec struct{}

func init() {
	Register(&CSVCodec{})
}

func (c *CSVCodec) CanDecode(filename string) bool {
	return strings.HasSuffix(strings.ToLower(filename), ".csv")
}

func (c *CSVCodec) Decode(ctx context.Context, path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Errorf("opening file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // ragged rows are padded later, not rejected

	records, err := r.ReadAll()
	if err != nil {
		return nil, errors.Errorf("parsing csv: %w", err)
	}
	if len(records) == 0 {
		return &Table{}, nil
	}

	return &Table{Header: records[0], Rows: records[1:]}, nil
}

func (c *CSVCodec) Encode(ctx context.Context, path string, t *Table) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Errorf("creating file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(t.Header); err != nil {
		return errors.Errorf("writing header: %w", err)
	}
	if err := w.WriteAll(t.Rows); err != nil {
		return errors.Errorf("writing rows: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return errors.Errorf("flushing csv: %w", err)
	}
	return nil
}
