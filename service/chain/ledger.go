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
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/optakt/sfl-ledger/models/sfl"
	"github.com/optakt/sfl-ledger/service/validator"
)

// Ledger is an append-only, hash-linked sequence of blocks recording model
// updates. All mutations are serialized by a single lock; reads and
// validation share a read lock, so they always see fully written blocks.
type Ledger struct {
	log      zerolog.Logger
	write    sfl.Writer
	validate *validator.Validator

	mu     sync.RWMutex
	blocks []sfl.Block
}

// New creates an empty ledger. The genesis block has to be created before
// model updates can be submitted.
func New(log zerolog.Logger, options ...func(*Config)) *Ledger {

	cfg := DefaultConfig
	for _, option := range options {
		option(&cfg)
	}

	l := Ledger{
		log:      log.With().Str("component", "ledger").Logger(),
		write:    cfg.Writer,
		validate: validator.New(),
		blocks:   make([]sfl.Block, 0),
	}

	return &l
}

// Restore creates a ledger holding the blocks available from the given reader.
// The restored chain is loaded even if it is inconsistent, so that it can be
// inspected, but a warning is logged.
func Restore(log zerolog.Logger, read sfl.Reader, options ...func(*Config)) (*Ledger, error) {

	l := New(log, options...)

	last, err := read.Last()
	if errors.Is(err, sfl.ErrNotFound) {
		l.log.Info().Msg("no stored blocks, starting with empty ledger")
		return l, nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not read last index: %w", err)
	}

	blocks := make([]sfl.Block, 0, last+1)
	for index := uint64(0); index <= last; index++ {
		block, err := read.Block(index)
		if err != nil {
			return nil, fmt.Errorf("could not read block (index: %d): %w", index, err)
		}
		blocks = append(blocks, *block)
	}
	l.blocks = blocks

	err = l.Verify()
	if err != nil {
		l.log.Warn().Err(err).Msg("restored chain is inconsistent")
	}

	l.log.Info().Uint64("length", last+1).Msg("ledger restored")

	return l, nil
}

// CreateGenesisBlock appends the genesis block to an empty ledger.
func (l *Ledger) CreateGenesisBlock() (sfl.Block, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.blocks) != 0 {
		return sfl.Block{}, sfl.ErrAlreadyInitialized
	}

	genesis := sfl.Genesis()
	err := l.append(genesis)
	if err != nil {
		return sfl.Block{}, fmt.Errorf("could not append genesis block: %w", err)
	}

	l.log.Info().Str("digest", genesis.Digest.String()).Msg("genesis block created")

	return genesis.Copy(), nil
}

// SubmitModelUpdate appends a block recording the given model update, linked
// to the current last block.
func (l *Ledger) SubmitModelUpdate(participantID string, modelUpdate float64, credential string, details string) (sfl.Block, error) {

	sub := sfl.Submission{
		ParticipantID: participantID,
		ModelUpdate:   modelUpdate,
		Credential:    credential,
		Details:       details,
	}
	err := l.validate.Submission(sub)
	if err != nil {
		return sfl.Block{}, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.blocks) == 0 {
		return sfl.Block{}, sfl.ErrUninitializedLedger
	}

	last := l.blocks[len(l.blocks)-1]
	block := sfl.Block{
		Index:          last.Index + 1,
		ParticipantID:  participantID,
		ModelUpdate:    modelUpdate,
		Credential:     credential,
		Details:        details,
		PreviousDigest: last.Digest.Copy(),
	}
	block.Digest = block.ComputeDigest()

	err = l.append(block)
	if err != nil {
		return sfl.Block{}, fmt.Errorf("could not append block (index: %d): %w", block.Index, err)
	}

	l.log.Debug().
		Uint64("index", block.Index).
		Str("participant", participantID).
		Float64("update", modelUpdate).
		Str("digest", block.Digest.String()).
		Msg("model update recorded")

	return block.Copy(), nil
}

// BlockAt returns a copy of the block at the given index.
func (l *Ledger) BlockAt(index uint64) (sfl.Block, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if index >= uint64(len(l.blocks)) {
		return sfl.Block{}, fmt.Errorf("could not get block (index: %d, length: %d): %w", index, len(l.blocks), sfl.ErrIndexOutOfRange)
	}

	return l.blocks[index].Copy(), nil
}

// Last returns a copy of the most recently appended block.
func (l *Ledger) Last() (sfl.Block, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if len(l.blocks) == 0 {
		return sfl.Block{}, sfl.ErrUninitializedLedger
	}

	return l.blocks[len(l.blocks)-1].Copy(), nil
}

// Len returns the number of blocks in the ledger, genesis included.
func (l *Ledger) Len() uint64 {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return uint64(len(l.blocks))
}

// Blocks returns a copy of all blocks in index order.
func (l *Ledger) Blocks() []sfl.Block {
	l.mu.RLock()
	defer l.mu.RUnlock()

	blocks := make([]sfl.Block, 0, len(l.blocks))
	for _, block := range l.blocks {
		blocks = append(blocks, block.Copy())
	}

	return blocks
}

// append persists the block, if a writer is configured, and only then adds it
// to the in-memory sequence. Must be called with the write lock held.
func (l *Ledger) append(block sfl.Block) error {
	if l.write != nil {
		err := l.write.Append(&block)
		if err != nil {
			return fmt.Errorf("could not persist block: %w", err)
		}
	}

	l.blocks = append(l.blocks, block)

	return nil
}
