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
	"github.com/dgraph-io/badger/v2"

	"github.com/optakt/sfl-ledger/models/sfl"
	"github.com/optakt/sfl-ledger/service/storage"
)

// Writer implements the ledger's persistence writer on top of a Badger
// database. Each call is a single Badger transaction.
type Writer struct {
	db  *badger.DB
	lib *storage.Library
}

// NewWriter creates a new index writer that writes blocks to the given Badger
// database.
func NewWriter(db *badger.DB, lib *storage.Library) *Writer {

	w := Writer{
		db:  db,
		lib: lib,
	}

	return &w
}

// Append stores the block and advances the last index in one transaction.
func (w *Writer) Append(block *sfl.Block) error {
	return w.db.Update(storage.Combine(
		w.lib.SaveBlock(block),
		w.lib.SaveLast(block.Index),
	))
}

// Replace overwrites an already stored block. The last index is unchanged.
func (w *Writer) Replace(block *sfl.Block) error {
	return w.db.Update(w.lib.ReplaceBlock(block))
}
