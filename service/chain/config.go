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
	"github.com/optakt/sfl-ledger/models/sfl"
)

// DefaultConfig is the default configuration of a ledger, which keeps its
// blocks in memory only.
var DefaultConfig = Config{
	Writer: nil,
}

// Config contains the optional parameters of a ledger.
type Config struct {
	Writer sfl.Writer
}

// WithWriter makes the ledger persist every block through the given writer
// before it becomes visible in memory.
func WithWriter(write sfl.Writer) func(*Config) {
	return func(cfg *Config) {
		cfg.Writer = write
	}
}
