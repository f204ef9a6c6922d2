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

package clientid

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "short_id_is_padded",
			in:   "1",
			want: "00000000001",
		},
		{
			name: "two_digits",
			in:   "22",
			want: "00000000022",
		},
		{
			name: "exact_width_unchanged",
			in:   "12345678901",
			want: "12345678901",
		},
		{
			name: "longer_than_width_never_truncated",
			in:   "123456789012",
			want: "123456789012",
		},
		{
			name: "empty_becomes_all_zeros",
			in:   "",
			want: "00000000000",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.in)
			assert.Equal(t, tt.want, got, "normalized value should match")
			assert.Equal(t, got, Normalize(got), "normalization should be idempotent")
		})
	}
}

func TestFromFilename(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		want     string
		wantOK   bool
	}{
		{
			name:     "digits_before_underscore",
			filename: "1_a.jpg",
			want:     "00000000001",
			wantOK:   true,
		},
		{
			name:     "two_digit_prefix",
			filename: "22_b.jpg",
			want:     "00000000022",
			wantOK:   true,
		},
		{
			name:     "no_underscore_uses_whole_name",
			filename: "42.jpg",
			want:     "00000000042",
			wantOK:   true,
		},
		{
			name:     "digits_stop_at_first_nondigit",
			filename: "12ab_c.jpg",
			want:     "00000000012",
			wantOK:   true,
		},
		{
			name:     "only_first_segment_counts",
			filename: "abc_99.jpg",
			wantOK:   false,
		},
		{
			name:     "no_leading_digits",
			filename: "portrait.jpg",
			wantOK:   false,
		},
		{
			name:     "empty_name",
			filename: "",
			wantOK:   false,
		},
		{
			name:     "long_digit_run_kept_whole",
			filename: "123456789012_x.jpg",
			want:     "123456789012",
			wantOK:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := FromFilename(tt.filename)
			assert.Equal(t, tt.wantOK, ok, "extraction presence should match")
			if tt.wantOK {
				assert.Equal(t, tt.want, got, "extracted identifier should match")
			}
		})
	}
}

func TestSet(t *testing.T) {
	s := NewSet("1", "22", "00000000022")

	assert.Len(t, s, 2, "duplicate identifiers should collapse after normalization")
	assert.True(t, s.Has("00000000001"), "padded form of 1 should be a member")
	assert.True(t, s.Has("00000000022"), "padded form of 22 should be a member")
	assert.False(t, s.Has("22"), "unpadded form should not be a member")
	assert.False(t, s.Has("00000000099"), "unknown id should not be a member")
}
