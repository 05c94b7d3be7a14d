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

package mocks

import (
	"testing"

	"github.com/optakt/sfl-ledger/models/sfl"
)

type Reader struct {
	LastFunc  func() (uint64, error)
	BlockFunc func(index uint64) (*sfl.Block, error)
}

// BaselineReader returns a reader serving a valid chain of the given length.
func BaselineReader(t *testing.T, length int) *Reader {
	t.Helper()

	blocks := GenericBlocks(length)

	r := Reader{
		LastFunc: func() (uint64, error) {
			if len(blocks) == 0 {
				return 0, sfl.ErrNotFound
			}
			return uint64(len(blocks) - 1), nil
		},
		BlockFunc: func(index uint64) (*sfl.Block, error) {
			if index >= uint64(len(blocks)) {
				return nil, sfl.ErrNotFound
			}
			block := blocks[index].Copy()
			return &block, nil
		},
	}

	return &r
}

func (r *Reader) Last() (uint64, error) {
	return r.LastFunc()
}

func (r *Reader) Block(index uint64) (*sfl.Block, error) {
	return r.BlockFunc(index)
}
