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
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/dgraph-io/badger/v2"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"github.com/ziflex/lecho/v2"

	"github.com/optakt/sfl-ledger/api/rest"
	"github.com/optakt/sfl-ledger/codec/zbor"
	"github.com/optakt/sfl-ledger/engine"
	"github.com/optakt/sfl-ledger/models/sfl"
	"github.com/optakt/sfl-ledger/service/aggregator"
	"github.com/optakt/sfl-ledger/service/chain"
	"github.com/optakt/sfl-ledger/service/index"
	"github.com/optakt/sfl-ledger/service/metrics"
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

	// Signal catching for clean shutdown.
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt)

	// Command line parameter initialization.
	var (
		flagAddress   string
		flagCache     uint64
		flagData      string
		flagLevel     string
		flagMetrics   string
		flagThreshold float64
	)

	pflag.StringVarP(&flagAddress, "address", "a", "127.0.0.1:8080", "bind address for serving the REST API")
	pflag.Uint64VarP(&flagCache, "cache", "e", 1<<20, "maximum cache size for chain summaries in bytes")
	pflag.StringVarP(&flagData, "data", "d", "data", "database directory for the ledger")
	pflag.StringVarP(&flagLevel, "level", "l", "info", "log output level")
	pflag.StringVarP(&flagMetrics, "metrics", "m", "", "bind address for serving Prometheus metrics (disabled if empty)")
	pflag.Float64VarP(&flagThreshold, "threshold", "t", 0.1, "maximum distance between aggregated update and baseline to pass a benchmark")

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
	elog := lecho.From(log)

	// Open the ledger database.
	db, err := badger.Open(sfl.DefaultOptions(flagData))
	if err != nil {
		log.Error().Str("data", flagData).Err(err).Msg("could not open ledger database")
		return failure
	}
	defer db.Close()

	// Initialize storage library.
	codec, err := zbor.NewCodec()
	if err != nil {
		log.Error().Err(err).Msg("could not initialize storage codec")
		return failure
	}
	lib := storage.New(codec)

	// Every block written to disk is counted on the registry, which is only
	// served if a metrics address is given.
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	read := index.NewReader(db, lib)
	write := index.NewMetricsWriter(reg, index.NewWriter(db, lib))

	// Restore the ledger from whatever was persisted previously.
	ledger, err := chain.Restore(log, read, chain.WithWriter(write))
	if err != nil {
		log.Error().Err(err).Msg("could not restore ledger")
		return failure
	}

	aggregate, err := aggregator.New(ledger,
		aggregator.WithCacheSize(flagCache),
		aggregator.WithThreshold(flagThreshold),
	)
	if err != nil {
		log.Error().Err(err).Msg("could not initialize aggregator")
		return failure
	}

	// REST API initialization.
	ctrl := rest.NewController(ledger, aggregate)
	server := echo.New()
	server.HideBanner = true
	server.HidePort = true
	server.Logger = elog
	server.Use(lecho.Middleware(lecho.Config{Logger: elog}))
	server.POST("/genesis", ctrl.CreateGenesis)
	server.POST("/updates", ctrl.SubmitUpdate)
	server.GET("/blocks/:index", ctrl.GetBlock)
	server.GET("/validate", ctrl.Validate)
	server.GET("/summary", ctrl.Summary)
	server.GET("/benchmark", ctrl.Benchmark)
	maintenanceRoutes(server, ctrl)

	api := func() error {
		log.Info().Str("address", flagAddress).Msg("ledger API starting")
		err := server.Start(flagAddress)
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
	stop := func() error {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(ctx)
	}

	e := engine.New(log, "sfl_ledger_server", sig).
		Component("rest_api", api, stop)
	if flagMetrics != "" {
		msvr := metrics.NewServer(log, flagMetrics, reg)
		e.Component("metrics_server", msvr.Start, msvr.Stop)
	}

	err = e.Run()
	if err != nil {
		log.Error().Err(err).Msg("ledger server aborted")
		return failure
	}

	return success
}
