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

// Chain gives read access to a consistent snapshot of the ledger.
type Chain interface {
	Len() uint64
	Blocks() []Block
}

// Ledger is the public surface of the model update ledger.
type Ledger interface {
	Chain
	CreateGenesisBlock() (Block, error)
	SubmitModelUpdate(participantID string, modelUpdate float64, credential string, details string) (Block, error)
	ValidateBlockchain() bool
	Verify() error
	BlockAt(index uint64) (Block, error)
}

// Summary aggregates the model updates recorded on the ledger.
type Summary struct {
	Height       uint64            `json:"height"`
	Updates      uint64            `json:"updates"`
	Mean         float64           `json:"mean"`
	Min          float64           `json:"min"`
	Max          float64           `json:"max"`
	Participants map[string]uint64 `json:"participants"`
}

// Aggregator summarizes and benchmarks the recorded model updates.
type Aggregator interface {
	Summary() (Summary, error)
	Benchmark(baseline float64) (bool, error)
}
