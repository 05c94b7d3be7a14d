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

package helpers

import (
	"testing"

	"github.com/dgraph-io/badger/v2"
	"github.com/stretchr/testify/require"

	"github.com/optakt/sfl-ledger/models/sfl"
)

// InMemoryDB opens a Badger database that lives in memory only.
func InMemoryDB(t *testing.T) *badger.DB {
	t.Helper()

	opts := badger.DefaultOptions("").
		WithInMemory(true).
		WithLogger(nil)

	db, err := badger.Open(opts)
	require.NoError(t, err)

	return db
}

// OnDiskDB opens a Badger database in the given directory with the ledger
// options, so a test can close and reopen it.
func OnDiskDB(t *testing.T, dir string) *badger.DB {
	t.Helper()

	db, err := badger.Open(sfl.DefaultOptions(dir))
	require.NoError(t, err)

	return db
}
