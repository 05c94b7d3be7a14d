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

type Ledger struct {
	LenFunc                func() uint64
	BlocksFunc             func() []sfl.Block
	CreateGenesisBlockFunc func() (sfl.Block, error)
	SubmitModelUpdateFunc  func(participantID string, modelUpdate float64, credential string, details string) (sfl.Block, error)
	ValidateBlockchainFunc func() bool
	VerifyFunc             func() error
	BlockAtFunc            func(index uint64) (sfl.Block, error)
}

// BaselineLedger returns a ledger mock serving a valid chain of the given length.
func BaselineLedger(t *testing.T, length int) *Ledger {
	t.Helper()

	blocks := GenericBlocks(length)

	l := Ledger{
		LenFunc: func() uint64 {
			return uint64(len(blocks))
		},
		BlocksFunc: func() []sfl.Block {
			return blocks
		},
		CreateGenesisBlockFunc: func() (sfl.Block, error) {
			return sfl.Genesis(), nil
		},
		SubmitModelUpdateFunc: func(participantID string, modelUpdate float64, credential string, details string) (sfl.Block, error) {
			return GenericBlock(1), nil
		},
		ValidateBlockchainFunc: func() bool {
			return true
		},
		VerifyFunc: func() error {
			return nil
		},
		BlockAtFunc: func(index uint64) (sfl.Block, error) {
			if index >= uint64(len(blocks)) {
				return sfl.Block{}, sfl.ErrIndexOutOfRange
			}
			return blocks[index], nil
		},
	}

	return &l
}

func (l *Ledger) Len() uint64 {
	return l.LenFunc()
}

func (l *Ledger) Blocks() []sfl.Block {
	return l.BlocksFunc()
}

func (l *Ledger) CreateGenesisBlock() (sfl.Block, error) {
	return l.CreateGenesisBlockFunc()
}

func (l *Ledger) SubmitModelUpdate(participantID string, modelUpdate float64, credential string, details string) (sfl.Block, error) {
	return l.SubmitModelUpdateFunc(participantID, modelUpdate, credential, details)
}

func (l *Ledger) ValidateBlockchain() bool {
	return l.ValidateBlockchainFunc()
}

func (l *Ledger) Verify() error {
	return l.VerifyFunc()
}

func (l *Ledger) BlockAt(index uint64) (sfl.Block, error) {
	return l.BlockAtFunc(index)
}
