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

type Writer struct {
	AppendFunc  func(block *sfl.Block) error
	ReplaceFunc func(block *sfl.Block) error
}

func BaselineWriter(t *testing.T) *Writer {
	t.Helper()

	w := Writer{
		AppendFunc: func(block *sfl.Block) error {
			return nil
		},
		ReplaceFunc: func(block *sfl.Block) error {
			return nil
		},
	}

	return &w
}

func (w *Writer) Append(block *sfl.Block) error {
	return w.AppendFunc(block)
}

func (w *Writer) Replace(block *sfl.Block) error {
	return w.ReplaceFunc(block)
}
