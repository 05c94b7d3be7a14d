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

package chain

import (
	"fmt"

	"github.com/optakt/sfl-ledger/models/sfl"
)

// overwriteDigest replaces the stored digest of a block without recomputing
// it, which leaves the chain invalid unless the given digest happens to be the
// correct one. It is only reachable from debug builds and from tests.
func (l *Ledger) overwriteDigest(index uint64, digest []byte) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if index >= uint64(len(l.blocks)) {
		return fmt.Errorf("could not invalidate block (index: %d, length: %d): %w", index, len(l.blocks), sfl.ErrIndexOutOfRange)
	}

	tampered := l.blocks[index].Copy()
	tampered.Digest = sfl.Digest(digest).Copy()

	if l.write != nil {
		err := l.write.Replace(&tampered)
		if err != nil {
			return fmt.Errorf("could not persist invalidated block (index: %d): %w", index, err)
		}
	}

	l.blocks[index] = tampered

	l.log.Warn().Uint64("index", index).Str("digest", tampered.Digest.String()).Msg("block digest overwritten")

	return nil
}
