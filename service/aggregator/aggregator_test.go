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

package aggregator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/optakt/sfl-ledger/models/sfl"
	"github.com/optakt/sfl-ledger/service/aggregator"
	"github.com/optakt/sfl-ledger/testing/mocks"
)

// chainOf returns a ledger mock holding a genesis block followed by one block
// per given update, submitted by alternating participants.
func chainOf(t *testing.T, updates ...float64) *mocks.Ledger {
	t.Helper()

	blocks := []sfl.Block{sfl.Genesis()}
	for i, update := range updates {
		previous := blocks[len(blocks)-1]
		block := sfl.Block{
			Index:          uint64(i + 1),
			ParticipantID:  mocks.GenericParticipantID(i % 2),
			ModelUpdate:    update,
			PreviousDigest: previous.Digest,
		}
		block.Digest = block.ComputeDigest()
		blocks = append(blocks, block)
	}

	ledger := mocks.BaselineLedger(t, 0)
	ledger.LenFunc = func() uint64 {
		return uint64(len(blocks))
	}
	ledger.BlocksFunc = func() []sfl.Block {
		return blocks
	}

	return ledger
}

func TestAggregator_Summary(t *testing.T) {
	t.Run("nominal case", func(t *testing.T) {
		agg, err := aggregator.New(chainOf(t, 0.25, 0.75, 0.5))
		require.NoError(t, err)

		got, err := agg.Summary()
		require.NoError(t, err)

		assert.Equal(t, uint64(4), got.Height)
		assert.Equal(t, uint64(3), got.Updates)
		assert.InDelta(t, 0.5, got.Mean, 1e-12)
		assert.Equal(t, 0.25, got.Min)
		assert.Equal(t, 0.75, got.Max)
		assert.Equal(t, map[string]uint64{
			"Participant1": 2,
			"Participant2": 1,
		}, got.Participants)
	})

	t.Run("negative updates", func(t *testing.T) {
		agg, err := aggregator.New(chainOf(t, -2, -1))
		require.NoError(t, err)

		got, err := agg.Summary()
		require.NoError(t, err)

		assert.Equal(t, -2.0, got.Min)
		assert.Equal(t, -1.0, got.Max)
		assert.Equal(t, -1.5, got.Mean)
	})

	t.Run("genesis only", func(t *testing.T) {
		agg, err := aggregator.New(chainOf(t))
		require.NoError(t, err)

		got, err := agg.Summary()
		require.NoError(t, err)

		assert.Equal(t, uint64(1), got.Height)
		assert.Zero(t, got.Updates)
		assert.Zero(t, got.Mean)
		assert.Empty(t, got.Participants)
	})

	t.Run("empty ledger", func(t *testing.T) {
		agg, err := aggregator.New(mocks.BaselineLedger(t, 0))
		require.NoError(t, err)

		_, err = agg.Summary()

		assert.ErrorIs(t, err, sfl.ErrUninitializedLedger)
	})

	t.Run("summary follows appended blocks", func(t *testing.T) {
		ledger := chainOf(t, 1)
		agg, err := aggregator.New(ledger)
		require.NoError(t, err)

		first, err := agg.Summary()
		require.NoError(t, err)
		assert.Equal(t, 1.0, first.Mean)

		grown := chainOf(t, 1, 3)
		ledger.LenFunc = grown.LenFunc
		ledger.BlocksFunc = grown.BlocksFunc

		second, err := agg.Summary()
		require.NoError(t, err)
		assert.Equal(t, 2.0, second.Mean)
		assert.Equal(t, uint64(2), second.Updates)
	})

	t.Run("returned summaries don't share state", func(t *testing.T) {
		agg, err := aggregator.New(chainOf(t, 1, 2))
		require.NoError(t, err)

		first, err := agg.Summary()
		require.NoError(t, err)
		first.Participants["Participant1"] = 42

		second, err := agg.Summary()
		require.NoError(t, err)
		assert.Equal(t, uint64(1), second.Participants["Participant1"])
	})
}

func TestAggregator_Benchmark(t *testing.T) {
	tests := []struct {
		desc     string
		updates  []float64
		baseline float64
		options  []func(*aggregator.Config)

		wantPassed bool
	}{
		{
			desc:       "within default threshold",
			updates:    []float64{0.55, 0.6},
			baseline:   0.5,
			wantPassed: true,
		},
		{
			desc:       "significant change detected",
			updates:    []float64{0.7, 0.7},
			baseline:   0.5,
			wantPassed: false,
		},
		{
			desc:       "custom threshold",
			updates:    []float64{0.7, 0.7},
			baseline:   0.5,
			options:    []func(*aggregator.Config){aggregator.WithThreshold(0.25)},
			wantPassed: true,
		},
		{
			desc:       "no updates",
			baseline:   42,
			wantPassed: true,
		},
	}

	for _, test := range tests {
		test := test
		t.Run(test.desc, func(t *testing.T) {
			t.Parallel()

			agg, err := aggregator.New(chainOf(t, test.updates...), test.options...)
			require.NoError(t, err)

			passed, err := agg.Benchmark(test.baseline)
			require.NoError(t, err)
			assert.Equal(t, test.wantPassed, passed)
		})
	}

	t.Run("empty ledger", func(t *testing.T) {
		agg, err := aggregator.New(mocks.BaselineLedger(t, 0))
		require.NoError(t, err)

		_, err = agg.Benchmark(0.5)

		assert.ErrorIs(t, err, sfl.ErrUninitializedLedger)
	})
}

func TestNew_InvalidCache(t *testing.T) {
	_, err := aggregator.New(mocks.BaselineLedger(t, 1), aggregator.WithCacheSize(0))

	assert.Error(t, err)
}
