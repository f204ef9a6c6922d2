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

// Package clientid normalizes client identifiers and extracts them from
// image file names. Identifiers are decimal strings left-padded with zeros
// to a fixed width; the padded form is the join key between the roster and
// the filesystem.
package clientid

import (
	"regexp"
	"strings"
)

// 📏 Width is the fixed width of a normalized identifier.
const Width = 11

// leadingDigitsRE matches the digit run at the start of a name segment.
var leadingDigitsRE = regexp.MustCompile(`^\d+`)

// 🔧 Normalize left-pads id with zeros to Width. Values already at or past
// Width are returned unchanged: padding only ever adds, never removes.
func Normalize(id string) string {
	if len(id) >= Width {
		return id
	}
	return strings.Repeat("0", Width-len(id)) + id
}

// 🔍 FromFilename extracts the normalized identifier encoded in a file's
// base name: the leading digit run of the portion before the first
// underscore. The second return is false when the name carries no leading
// digits — a distinguished absence, not an error.
func FromFilename(name string) (string, bool) {
	prefix, _, _ := strings.Cut(name, "_")
	digits := leadingDigitsRE.FindString(prefix)
	if digits == "" {
		return "", false
	}
	return Normalize(digits), true
}

// 🗂️ Set is a membership set of normalized identifiers. It is built once
// per run and never mutated during a scan.
type Set map[string]struct{}

// NewSet builds a Set, normalizing every value on the way in.
func NewSet(ids ...string) Set {
	s := make(Set, len(ids))
	for _, id := range ids {
		s[Normalize(id)] = struct{}{}
	}
	return s
}

// Has reports whether id (already normalized) is a member.
func (s Set) Has(id string) bool {
	_, ok := s[id]
	return ok
}
