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

package chain_test

import (
	"errors"
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/optakt/sfl-ledger/models/sfl"
	"github.com/optakt/sfl-ledger/service/chain"
	"github.com/optakt/sfl-ledger/testing/mocks"
)

func populated(t *testing.T, length int) *chain.Ledger {
	t.Helper()

	ledger, err := chain.Restore(mocks.NoopLogger, mocks.BaselineReader(t, length))
	require.NoError(t, err)

	return ledger
}

func TestLedger_ValidateBlockchain(t *testing.T) {
	t.Run("empty ledger is valid", func(t *testing.T) {
		ledger := chain.New(mocks.NoopLogger)

		assert.True(t, ledger.ValidateBlockchain())
		assert.NoError(t, ledger.Verify())
		assert.NoError(t, ledger.Audit())
	})

	t.Run("genesis only", func(t *testing.T) {
		ledger := chain.New(mocks.NoopLogger)
		_, err := ledger.CreateGenesisBlock()
		require.NoError(t, err)

		assert.True(t, ledger.ValidateBlockchain())
	})

	t.Run("valid chain", func(t *testing.T) {
		ledger := populated(t, 10)

		assert.True(t, ledger.ValidateBlockchain())
		assert.NoError(t, ledger.Verify())
		assert.NoError(t, ledger.Audit())
	})
}

func TestLedger_TamperDetection(t *testing.T) {
	const length = 6

	for index := uint64(0); index < length; index++ {
		index := index
		t.Run("garbage digest", func(t *testing.T) {
			ledger := populated(t, length)

			err := chain.InvalidateBlock(ledger, index, []byte("tamperedDigest"))
			require.NoError(t, err)

			assert.False(t, ledger.ValidateBlockchain())

			var invalid *sfl.InvalidBlockError
			err = ledger.Verify()
			require.True(t, errors.As(err, &invalid))
			assert.ErrorIs(t, err, sfl.ErrInvalidChain)
			assert.Equal(t, index, invalid.Index)
			assert.Equal(t, sfl.ReasonContent, invalid.Reason)
		})

		t.Run("single bit flip", func(t *testing.T) {
			ledger := populated(t, length)

			block, err := ledger.BlockAt(index)
			require.NoError(t, err)
			digest := block.Digest.Copy()
			digest[len(digest)-1] ^= 0x01

			err = chain.InvalidateBlock(ledger, index, digest)
			require.NoError(t, err)

			assert.False(t, ledger.ValidateBlockchain())
		})
	}

	t.Run("rewriting the correct digest keeps the chain valid", func(t *testing.T) {
		ledger := populated(t, length)

		block, err := ledger.BlockAt(2)
		require.NoError(t, err)

		err = chain.InvalidateBlock(ledger, 2, block.Digest)
		require.NoError(t, err)

		assert.True(t, ledger.ValidateBlockchain())
	})

	t.Run("index out of range", func(t *testing.T) {
		ledger := populated(t, length)

		err := chain.InvalidateBlock(ledger, length, []byte("tamperedDigest"))

		assert.ErrorIs(t, err, sfl.ErrIndexOutOfRange)
		assert.True(t, ledger.ValidateBlockchain())
	})

	t.Run("empty ledger", func(t *testing.T) {
		ledger := chain.New(mocks.NoopLogger)

		err := chain.InvalidateBlock(ledger, 0, []byte("tamperedDigest"))

		assert.ErrorIs(t, err, sfl.ErrIndexOutOfRange)
	})

	t.Run("overwrite is persisted", func(t *testing.T) {
		var replaced *sfl.Block
		write := mocks.BaselineWriter(t)
		write.ReplaceFunc = func(block *sfl.Block) error {
			replaced = block
			return nil
		}
		ledger, err := chain.Restore(mocks.NoopLogger, mocks.BaselineReader(t, length), chain.WithWriter(write))
		require.NoError(t, err)

		err = chain.InvalidateBlock(ledger, 1, []byte("tamperedDigest"))
		require.NoError(t, err)

		require.NotNil(t, replaced)
		assert.Equal(t, uint64(1), replaced.Index)
		assert.Equal(t, sfl.Digest("tamperedDigest"), replaced.Digest)
	})

	t.Run("persistence failure leaves block untouched", func(t *testing.T) {
		write := mocks.BaselineWriter(t)
		write.ReplaceFunc = func(*sfl.Block) error {
			return mocks.GenericError
		}
		ledger, err := chain.Restore(mocks.NoopLogger, mocks.BaselineReader(t, length), chain.WithWriter(write))
		require.NoError(t, err)

		err = chain.InvalidateBlock(ledger, 1, []byte("tamperedDigest"))

		assert.ErrorIs(t, err, mocks.GenericError)
		assert.True(t, ledger.ValidateBlockchain())
	})
}

func TestLedger_Audit(t *testing.T) {
	ledger := populated(t, 5)

	// Tampering with block 1 breaks its own digest and the link from block 2.
	err := chain.InvalidateBlock(ledger, 1, []byte("tamperedDigest"))
	require.NoError(t, err)
	// Tampering with the last block only breaks its own digest.
	err = chain.InvalidateBlock(ledger, 4, []byte("tamperedDigest"))
	require.NoError(t, err)

	err = ledger.Audit()
	require.Error(t, err)

	var merr *multierror.Error
	require.True(t, errors.As(err, &merr))

	var got []sfl.InvalidBlockError
	for _, e := range merr.Errors {
		var invalid *sfl.InvalidBlockError
		require.True(t, errors.As(e, &invalid))
		got = append(got, *invalid)
	}

	want := []sfl.InvalidBlockError{
		{Index: 1, Reason: sfl.ReasonContent},
		{Index: 2, Reason: sfl.ReasonLinkage},
		{Index: 4, Reason: sfl.ReasonContent},
	}
	assert.Equal(t, want, got)

	// Verify only reports the first of them.
	var first *sfl.InvalidBlockError
	require.True(t, errors.As(ledger.Verify(), &first))
	assert.Equal(t, want[0], *first)
}

func TestLedger_IndexMismatch(t *testing.T) {
	read := mocks.BaselineReader(t, 3)
	read.BlockFunc = func(index uint64) (*sfl.Block, error) {
		block := mocks.GenericBlock(int(index))
		if index == 2 {
			// A self-consistent block claiming the wrong position.
			block.Index = 7
			block.Digest = block.ComputeDigest()
		}
		return &block, nil
	}

	ledger, err := chain.Restore(mocks.NoopLogger, read)
	require.NoError(t, err)

	var invalid *sfl.InvalidBlockError
	require.True(t, errors.As(ledger.Verify(), &invalid))
	assert.Equal(t, uint64(2), invalid.Index)
	assert.Equal(t, sfl.ReasonIndex, invalid.Reason)
}
