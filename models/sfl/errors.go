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

import (
	"errors"
	"fmt"
)

// Sentinel errors.
var (
	ErrAlreadyInitialized  = errors.New("ledger already initialized")
	ErrUninitializedLedger = errors.New("ledger not initialized")
	ErrIndexOutOfRange     = errors.New("index out of range")
	ErrInvalidInput        = errors.New("invalid input")
	ErrInvalidChain        = errors.New("invalid chain")
	ErrNotFound            = errors.New("not found")
)

// Reasons for which a block fails validation.
const (
	ReasonIndex   = "index does not match position"
	ReasonLinkage = "previous digest does not match predecessor digest"
	ReasonContent = "digest does not match block content"
)

// InvalidBlockError describes the first inconsistency found at a block.
type InvalidBlockError struct {
	Index  uint64
	Reason string
}

func (e *InvalidBlockError) Error() string {
	return fmt.Sprintf("block %d invalid: %s", e.Index, e.Reason)
}

func (e *InvalidBlockError) Unwrap() error {
	return ErrInvalidChain
}
