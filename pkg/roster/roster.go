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

// Package roster loads and saves the client roster: a tabular file whose
// ClientID column supplies the identifiers that image files are matched
// against. File formats are pluggable through a codec registry keyed by
// extension.
package roster

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/walteh/pixmatch/pkg/clientid"
	"gitlab.com/tozd/go/errors"
)

// 🏷️ ClientIDColumn is the required identifier column, matched literally.
const ClientIDColumn = "ClientID"

var (
	// ❌ ErrMissingClientID reports a roster without the required column.
	ErrMissingClientID = errors.New("roster has no ClientID column")

	// ❌ ErrNoCodec reports a roster extension no codec can handle.
	ErrNoCodec = errors.New("no codec for roster file extension")
)

// 📚 Table is a parsed roster: one header row plus data rows. Columns other
// than ClientID are carried through untouched.
type Table struct {
	Header []string
	Rows   [][]string
}

// Cell returns row[col], tolerating short rows (codecs may trim trailing
// empty cells).
func (t *Table) Cell(row, col int) string {
	if col >= len(t.Rows[row]) {
		return ""
	}
	return t.Rows[row][col]
}

// 🔌 Codec is the interface for roster file formats.
type Codec interface {
	// 🔍 CanDecode checks if this codec can handle the given file
	CanDecode(filename string) bool

	// 📖 Decode reads the table from the file at path
	Decode(ctx context.Context, path string) (*Table, error)

	// 📝 Encode writes the table to the file at path
	Encode(ctx context.Context, path string, t *Table) error
}

// 🗺️ codecs is the list of registered codecs
var codecs []Codec

// 📝 Register registers a codec
func Register(c Codec) {
	codecs = append(codecs, c)
}

// 🎯 codecFor returns a codec that can handle the given file
func codecFor(filename string) Codec {
	for _, c := range codecs {
		if c.CanDecode(filename) {
			return c
		}
	}
	return nil
}

// 📦 Roster is a loaded roster table with its identifier column resolved
// and every identifier normalized in place.
type Roster struct {
	Path     string
	Table    *Table
	IDColumn int          // zero-based index of ClientIDColumn in the header
	IDs      clientid.Set // distinct normalized identifiers
}

// 🎯 Load reads the roster at path, validates the ClientID column, and
// normalizes every identifier to the fixed width. Duplicate identifiers
// collapse into one set entry; blank cells stay blank and join nothing.
func Load(ctx context.Context, path string) (*Roster, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading roster")

	c := codecFor(path)
	if c == nil {
		return nil, errors.Errorf("loading roster %s: %w", path, ErrNoCodec)
	}

	table, err := c.Decode(ctx, path)
	if err != nil {
		return nil, errors.Errorf("reading roster %s: %w", path, err)
	}

	idCol := -1
	for i, name := range table.Header {
		if name == ClientIDColumn {
			idCol = i
			break
		}
	}
	if idCol < 0 {
		return nil, errors.Errorf("roster %s: %w", path, ErrMissingClientID)
	}

	ids := make(clientid.Set, len(table.Rows))
	for i, row := range table.Rows {
		raw := table.Cell(i, idCol)
		if raw == "" {
			continue
		}
		norm := clientid.Normalize(raw)
		// Rows can be shorter than the header when trailing cells are empty.
		for len(row) <= idCol {
			row = append(row, "")
		}
		row[idCol] = norm
		table.Rows[i] = row
		ids[norm] = struct{}{}
	}

	logger.Debug().Int("rows", len(table.Rows)).Int("ids", len(ids)).Msg("roster loaded")

	return &Roster{
		Path:     path,
		Table:    table,
		IDColumn: idCol,
		IDs:      ids,
	}, nil
}

// 💾 Save writes the table to path using the codec for its extension.
func Save(ctx context.Context, path string, t *Table) error {
	c := codecFor(path)
	if c == nil {
		return errors.Errorf("saving roster %s: %w", path, ErrNoCodec)
	}
	if err := c.Encode(ctx, path, t); err != nil {
		return errors.Errorf("writing roster %s: %w", path, err)
	}
	return nil
}
