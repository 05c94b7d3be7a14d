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

type Aggregator struct {
	SummaryFunc   func() (sfl.Summary, error)
	BenchmarkFunc func(baseline float64) (bool, error)
}

func BaselineAggregator(t *testing.T) *Aggregator {
	t.Helper()

	a := Aggregator{
		SummaryFunc: func() (sfl.Summary, error) {
			return GenericSummary, nil
		},
		BenchmarkFunc: func(baseline float64) (bool, error) {
			return true, nil
		},
	}

	return &a
}

func (a *Aggregator) Summary() (sfl.Summary, error) {
	return a.SummaryFunc()
}

func (a *Aggregator) Benchmark(baseline float64) (bool, error) {
	return a.BenchmarkFunc(baseline)
}
