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

package main

import (
	"errors"
	"os"
	"time"

	"github.com/dgraph-io/badger/v2"
	"github.com/hashicorp/go-multierror"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"github.com/optakt/sfl-ledger/codec/zbor"
	"github.com/optakt/sfl-ledger/models/sfl"
	"github.com/optakt/sfl-ledger/service/chain"
	"github.com/optakt/sfl-ledger/service/index"
	"github.com/optakt/sfl-ledger/service/storage"
)

const (
	success = 0
	failure = 1
)

func main() {
	os.Exit(run())
}

func run() int {

	// Command line parameter initialization.
	var (
		flagData  string
		flagLevel string
	)

	pflag.StringVarP(&flagData, "data", "d", "data", "database directory for the ledger")
	pflag.StringVarP(&flagLevel, "level", "l", "info", "log output level")

	pflag.Parse()

	// Logger initialization.
	zerolog.TimestampFunc = func() time.Time { return time.Now().UTC() }
	log := zerolog.New(os.Stderr).With().Timestamp().Logger().Level(zerolog.DebugLevel)
	level, err := zerolog.ParseLevel(flagLevel)
	if err != nil {
		log.Error().Str("level", flagLevel).Err(err).Msg("could not parse log level")
		return failure
	}
	log = log.Level(level)

	// The verifier never writes to the ledger.
	db, err := badger.Open(sfl.DefaultOptions(flagData).WithReadOnly(true))
	if err != nil {
		log.Error().Str("data", flagData).Err(err).Msg("could not open ledger database")
		return failure
	}
	defer db.Close()

	codec, err := zbor.NewCodec()
	if err != nil {
		log.Error().Err(err).Msg("could not initialize storage codec")
		return failure
	}
	read := index.NewReader(db, storage.New(codec))

	ledger, err := chain.Restore(log, read)
	if err != nil {
		log.Error().Err(err).Msg("could not restore ledger")
		return failure
	}

	err = ledger.Audit()
	var merr *multierror.Error
	if errors.As(err, &merr) {
		for _, err := range merr.Errors {
			var invalid *sfl.InvalidBlockError
			if errors.As(err, &invalid) {
				log.Error().Uint64("index", invalid.Index).Str("reason", invalid.Reason).Msg("invalid block")
			}
		}
		log.Error().Int("failures", len(merr.Errors)).Uint64("length", ledger.Len()).Msg("ledger verification failed")
		return failure
	}
	if err != nil {
		log.Error().Err(err).Msg("could not audit ledger")
		return failure
	}

	log.Info().Uint64("length", ledger.Len()).Msg("ledger verified")

	return success
}
