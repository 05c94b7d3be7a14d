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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/optakt/sfl-ledger/models/sfl"
)

const (
	labelParticipant = "participant"
)

// MetricsWriter wraps a writer and records metrics for the blocks it writes.
type MetricsWriter struct {
	write sfl.Writer

	blocks   *prometheus.CounterVec
	replaced prometheus.Counter
	last     prometheus.Gauge
}

// NewMetricsWriter creates a writer decorator registering its metrics with the
// given registerer.
func NewMetricsWriter(reg prometheus.Registerer, write sfl.Writer) *MetricsWriter {
	factory := promauto.With(reg)

	blockOpts := prometheus.CounterOpts{
		Name: "sfl_appended_blocks",
		Help: "the number of appended blocks per participant",
	}
	blocks := factory.NewCounterVec(blockOpts, []string{labelParticipant})

	replacedOpts := prometheus.CounterOpts{
		Name: "sfl_replaced_blocks",
		Help: "the number of blocks overwritten in place",
	}
	replaced := factory.NewCounter(replacedOpts)

	lastOpts := prometheus.GaugeOpts{
		Name: "sfl_last_index",
		Help: "the index of the last appended block",
	}
	last := factory.NewGauge(lastOpts)

	w := MetricsWriter{
		write: write,

		blocks:   blocks,
		replaced: replaced,
		last:     last,
	}

	return &w
}

// Append appends the block and, if it succeeded, counts it for its participant.
// The genesis block is counted under an empty participant label.
func (w *MetricsWriter) Append(block *sfl.Block) error {
	err := w.write.Append(block)
	if err != nil {
		return err
	}
	w.blocks.With(prometheus.Labels{labelParticipant: block.ParticipantID}).Inc()
	w.last.Set(float64(block.Index))
	return nil
}

// Replace overwrites the block and counts the replacement.
func (w *MetricsWriter) Replace(block *sfl.Block) error {
	err := w.write.Replace(block)
	if err != nil {
		return err
	}
	w.replaced.Inc()
	return nil
}
