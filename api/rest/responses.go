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

package rest

import (
	"github.com/optakt/sfl-ledger/models/sfl"
)

// SubmissionRequest is the body of a model update submission.
type SubmissionRequest = sfl.Submission

// ValidationResponse reports whether the chain passes validation, and if not,
// the first block at which it fails.
type ValidationResponse struct {
	Valid        bool    `json:"valid"`
	Length       uint64  `json:"length"`
	InvalidIndex *uint64 `json:"invalid_index,omitempty"`
	Reason       string  `json:"reason,omitempty"`
}

// BenchmarkResponse reports the outcome of benchmarking the aggregated model
// against a baseline.
type BenchmarkResponse struct {
	Baseline float64 `json:"baseline"`
	Passed   bool    `json:"passed"`
}
