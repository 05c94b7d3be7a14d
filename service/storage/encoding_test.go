// Copyright 2021 Optakt Labs OÜ
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not
// use this file except in compliance with the License. You may obtain a copy of
// the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS, WITHOUT
// WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the
// License for the specific language governing permissions and limitations under
// the License.

package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncodeKey(t *testing.T) {
	tests := []struct {
		name string

		prefix   uint8
		segments []interface{}

		wantKey   []byte
		wantPanic bool
	}{
		{
			name: "block key",

			prefix:   PrefixBlock,
			segments: []interface{}{uint64(42)},

			wantKey: []byte{
				0x2,                                     // prefix
				0x0, 0x0, 0x0, 0x0, 0x0, 0x0, 0x0, 0x2a, // uint(42)
			},
		},
		{
			name: "raw bytes are appended as they are",

			prefix:   PrefixBlock,
			segments: []interface{}{uint64(1), []byte{0xde, 0xad}},

			wantKey: []byte{0x2, 0x0, 0x0, 0x0, 0x0, 0x0, 0x0, 0x0, 0x1, 0xde, 0xad},
		},
		{
			name: "empty segments should work",

			prefix:  PrefixLast,
			wantKey: []byte{1},
		},
		{
			name: "unsupported types should panic",

			prefix:   PrefixBlock,
			segments: []interface{}{struct{}{}},

			wantPanic: true,
		},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			if test.wantPanic {
				assert.Panics(t, func() {
					_ = EncodeKey(test.prefix, test.segments...)
				})
				return
			}

			got := EncodeKey(test.prefix, test.segments...)
			assert.Equal(t, test.wantKey, got)
		})
	}
}

func TestEncodeKey_Ordering(t *testing.T) {
	low := EncodeKey(PrefixBlock, uint64(255))
	high := EncodeKey(PrefixBlock, uint64(256))

	assert.Less(t, string(low), string(high))
}
