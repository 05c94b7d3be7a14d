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

package index

import (
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v2"

	"github.com/optakt/sfl-ledger/models/sfl"
	"github.com/optakt/sfl-ledger/service/storage"
)

// Reader implements the ledger's persistence reader on top of a Badger
// database.
type Reader struct {
	db  *badger.DB
	lib *storage.Library
}

// NewReader creates a new index reader, using the given database as the
// underlying state repository.
func NewReader(db *badger.DB, lib *storage.Library) *Reader {

	r := Reader{
		db:  db,
		lib: lib,
	}

	return &r
}

// Last returns the index of the last stored block. It returns sfl.ErrNotFound
// if no block was stored yet.
func (r *Reader) Last() (uint64, error) {
	var index uint64
	err := r.db.View(r.lib.RetrieveLast(&index))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return 0, sfl.ErrNotFound
	}
	return index, err
}

// Block returns the block stored at the given index.
func (r *Reader) Block(index uint64) (*sfl.Block, error) {
	var block sfl.Block
	err := r.db.View(r.lib.RetrieveBlock(index, &block))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, fmt.Errorf("could not find block (index: %d): %w", index, sfl.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &block, nil
}

// Blocks returns all stored blocks in index order.
func (r *Reader) Blocks() ([]sfl.Block, error) {
	var blocks []sfl.Block
	err := r.db.View(r.lib.IterateBlocks(func(block *sfl.Block) error {
		blocks = append(blocks, *block)
		return nil
	}))
	if err != nil {
		return nil, fmt.Errorf("could not iterate blocks: %w", err)
	}
	return blocks, nil
}
