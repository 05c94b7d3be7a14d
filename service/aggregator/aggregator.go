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

package aggregator

import (
	"fmt"
	"math"

	"github.com/dgraph-io/ristretto"

	"github.com/optakt/sfl-ledger/models/sfl"
)

// summaryCost is the approximate size of a cached summary, not counting its
// participant map.
const summaryCost = 64

// Aggregator combines the model updates recorded on a chain into a global
// summary and benchmarks it against a baseline.
type Aggregator struct {
	chain sfl.Chain
	cfg   Config
	cache *ristretto.Cache
}

// New creates an aggregator over the given chain.
func New(chain sfl.Chain, options ...func(*Config)) (*Aggregator, error) {

	cfg := DefaultConfig
	for _, option := range options {
		option(&cfg)
	}

	// Ristretto recommends keeping ten times as many counters as items in the
	// cache when full. Assuming an average summary of a kilobyte, this is what
	// we get.
	cache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: int64(cfg.CacheSize) / 1000 * 10,
		MaxCost:     int64(cfg.CacheSize),
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("could not initialize cache: %w", err)
	}

	a := Aggregator{
		chain: chain,
		cfg:   cfg,
		cache: cache,
	}

	return &a, nil
}

// Summary aggregates all model updates on the chain. The genesis block does
// not carry an update and is not counted.
func (a *Aggregator) Summary() (sfl.Summary, error) {

	// Blocks are only ever appended, so the chain length identifies the set of
	// updates a summary was computed from.
	height := a.chain.Len()
	if height == 0 {
		return sfl.Summary{}, sfl.ErrUninitializedLedger
	}
	cached, ok := a.cache.Get(height)
	if ok {
		return copySummary(cached.(sfl.Summary)), nil
	}

	blocks := a.chain.Blocks()
	summary := summarize(blocks)

	cost := int64(summaryCost + 32*len(summary.Participants))
	a.cache.Set(summary.Height, copySummary(summary), cost)

	return summary, nil
}

// Benchmark checks whether the mean model update stays within the threshold
// of the given baseline. A chain without updates passes.
func (a *Aggregator) Benchmark(baseline float64) (bool, error) {

	summary, err := a.Summary()
	if err != nil {
		return false, fmt.Errorf("could not summarize chain: %w", err)
	}

	if summary.Updates == 0 {
		return true, nil
	}

	return math.Abs(summary.Mean-baseline) <= a.cfg.Threshold, nil
}

func summarize(blocks []sfl.Block) sfl.Summary {

	summary := sfl.Summary{
		Height:       uint64(len(blocks)),
		Participants: make(map[string]uint64),
	}

	var sum float64
	for _, block := range blocks {
		if block.Index == 0 {
			continue
		}

		update := block.ModelUpdate
		if summary.Updates == 0 || update < summary.Min {
			summary.Min = update
		}
		if summary.Updates == 0 || update > summary.Max {
			summary.Max = update
		}

		sum += update
		summary.Updates++
		summary.Participants[block.ParticipantID]++
	}

	if summary.Updates > 0 {
		summary.Mean = sum / float64(summary.Updates)
	}

	return summary
}

func copySummary(summary sfl.Summary) sfl.Summary {
	participants := make(map[string]uint64, len(summary.Participants))
	for id, count := range summary.Participants {
		participants[id] = count
	}
	summary.Participants = participants
	return summary
}
