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

package sfl

// Reader reads persisted blocks.
type Reader interface {
	Last() (uint64, error)
	Block(index uint64) (*Block, error)
}

// Writer persists blocks.
type Writer interface {
	// Append stores a new block and marks it as the last one.
	Append(block *Block) error
	// Replace overwrites a block that was already stored.
	Replace(block *Block) error
}

// Codec encodes and compresses values for storage.
type Codec interface {
	Encode(value interface{}) ([]byte, error)
	Decode(data []byte, value interface{}) error

	Compress(data []byte) ([]byte, error)
	Decompress(compressed []byte) ([]byte, error)

	Marshal(value interface{}) ([]byte, error)
	Unmarshal(compressed []byte, value interface{}) error
}
