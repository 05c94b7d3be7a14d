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
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v2"

	"github.com/optakt/sfl-ledger/models/sfl"
)

// SaveLast is an operation that writes the index of the last stored block.
func (l *Library) SaveLast(index uint64) func(*badger.Txn) error {
	return l.save(EncodeKey(PrefixLast), index)
}

// SaveBlock is an operation that writes the given block under its index.
func (l *Library) SaveBlock(block *sfl.Block) func(*badger.Txn) error {
	return l.save(EncodeKey(PrefixBlock, block.Index), block)
}

// ReplaceBlock is an operation that overwrites a block which must already
// exist in the database.
func (l *Library) ReplaceBlock(block *sfl.Block) func(*badger.Txn) error {
	key := EncodeKey(PrefixBlock, block.Index)
	save := l.save(key, block)
	return func(tx *badger.Txn) error {
		_, err := tx.Get(key)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("could not find block to replace (index: %d): %w", block.Index, sfl.ErrIndexOutOfRange)
		}
		if err != nil {
			return fmt.Errorf("could not check block (index: %d): %w", block.Index, err)
		}
		return save(tx)
	}
}

// RetrieveLast retrieves the index of the last stored block.
func (l *Library) RetrieveLast(index *uint64) func(*badger.Txn) error {
	return l.retrieve(EncodeKey(PrefixLast), index)
}

// RetrieveBlock retrieves the block stored at the given index.
func (l *Library) RetrieveBlock(index uint64, block *sfl.Block) func(*badger.Txn) error {
	return l.retrieve(EncodeKey(PrefixBlock, index), block)
}

// IterateBlocks steps through all stored blocks in index order and calls the
// given callback for each of them.
func (l *Library) IterateBlocks(process func(block *sfl.Block) error) func(*badger.Txn) error {
	return func(tx *badger.Txn) error {

		prefix := EncodeKey(PrefixBlock)
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix

		it := tx.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()

			// The block is declared inside the loop so every callback gets its
			// own memory location.
			var block sfl.Block
			err := item.Value(func(val []byte) error {
				return l.codec.Unmarshal(val, &block)
			})
			if err != nil {
				return fmt.Errorf("could not decode block (key: %x): %w", item.Key(), err)
			}

			err = process(&block)
			if err != nil {
				return fmt.Errorf("could not process block (index: %d): %w", block.Index, err)
			}
		}

		return nil
	}
}
