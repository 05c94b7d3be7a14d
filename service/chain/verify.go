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
	"github.com/hashicorp/go-multierror"

	"github.com/optakt/sfl-ledger/models/sfl"
)

// ValidateBlockchain checks the whole chain and returns whether it is
// consistent. An empty ledger is valid.
func (l *Ledger) ValidateBlockchain() bool {
	return l.Verify() == nil
}

// Verify checks the whole chain and returns an *sfl.InvalidBlockError for the
// first inconsistency found, or nil if there is none.
func (l *Ledger) Verify() error {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var first error
	inspect(l.blocks, func(err *sfl.InvalidBlockError) bool {
		first = err
		return false
	})

	return first
}

// Audit checks the whole chain without stopping at the first inconsistency.
// It returns a multi-error holding one *sfl.InvalidBlockError per failed
// check, or nil if the chain is consistent.
func (l *Ledger) Audit() error {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var errs error
	inspect(l.blocks, func(err *sfl.InvalidBlockError) bool {
		errs = multierror.Append(errs, err)
		return true
	})

	return errs
}

// inspect walks the blocks in order and reports every failed check until the
// report callback returns false. Each block is checked for its position, its
// link to the predecessor and the digest of its own content.
func inspect(blocks []sfl.Block, report func(err *sfl.InvalidBlockError) bool) {
	for i := range blocks {
		block := &blocks[i]
		position := uint64(i)

		if block.Index != position {
			if !report(&sfl.InvalidBlockError{Index: position, Reason: sfl.ReasonIndex}) {
				return
			}
		}

		if i > 0 && !block.PreviousDigest.Equal(blocks[i-1].Digest) {
			if !report(&sfl.InvalidBlockError{Index: position, Reason: sfl.ReasonLinkage}) {
				return
			}
		}

		if !block.Digest.Equal(block.ComputeDigest()) {
			if !report(&sfl.InvalidBlockError{Index: position, Reason: sfl.ReasonContent}) {
				return
			}
		}
	}
}
