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
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/optakt/sfl-ledger/models/sfl"
)

// Controller serves the ledger over HTTP.
type Controller struct {
	ledger    sfl.Ledger
	aggregate sfl.Aggregator
}

// NewController creates a controller for the given ledger and aggregator.
func NewController(ledger sfl.Ledger, aggregate sfl.Aggregator) *Controller {
	c := Controller{
		ledger:    ledger,
		aggregate: aggregate,
	}
	return &c
}

// CreateGenesis initializes the ledger with its genesis block.
func (c *Controller) CreateGenesis(ctx echo.Context) error {

	block, err := c.ledger.CreateGenesisBlock()
	if err != nil {
		return httpError(err)
	}

	return ctx.JSON(http.StatusCreated, block)
}

// SubmitUpdate appends a model update from a participant to the ledger.
func (c *Controller) SubmitUpdate(ctx echo.Context) error {

	var req SubmissionRequest
	err := ctx.Bind(&req)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err)
	}

	block, err := c.ledger.SubmitModelUpdate(req.ParticipantID, req.ModelUpdate, req.Credential, req.Details)
	if err != nil {
		return httpError(err)
	}

	return ctx.JSON(http.StatusCreated, block)
}

// GetBlock returns the block at the index given as path parameter.
func (c *Controller) GetBlock(ctx echo.Context) error {

	index, err := strconv.ParseUint(ctx.Param("index"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err)
	}

	block, err := c.ledger.BlockAt(index)
	if err != nil {
		return httpError(err)
	}

	return ctx.JSON(http.StatusOK, block)
}

// Validate checks the integrity of the whole chain.
func (c *Controller) Validate(ctx echo.Context) error {

	res := ValidationResponse{
		Valid:  true,
		Length: c.ledger.Len(),
	}

	err := c.ledger.Verify()
	var invalid *sfl.InvalidBlockError
	switch {
	case errors.As(err, &invalid):
		index := invalid.Index
		res.Valid = false
		res.InvalidIndex = &index
		res.Reason = invalid.Reason
	case err != nil:
		return echo.NewHTTPError(http.StatusInternalServerError, err)
	}

	return ctx.JSON(http.StatusOK, res)
}

// Summary returns the aggregate of all model updates on the chain.
func (c *Controller) Summary(ctx echo.Context) error {

	summary, err := c.aggregate.Summary()
	if err != nil {
		return httpError(err)
	}

	return ctx.JSON(http.StatusOK, summary)
}

// Benchmark compares the aggregated model against the baseline given as query
// parameter.
func (c *Controller) Benchmark(ctx echo.Context) error {

	baseline, err := strconv.ParseFloat(ctx.QueryParam("baseline"), 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err)
	}

	passed, err := c.aggregate.Benchmark(baseline)
	if err != nil {
		return httpError(err)
	}

	res := BenchmarkResponse{
		Baseline: baseline,
		Passed:   passed,
	}

	return ctx.JSON(http.StatusOK, res)
}

func httpError(err error) *echo.HTTPError {
	switch {
	case errors.Is(err, sfl.ErrInvalidInput):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, sfl.ErrIndexOutOfRange):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, sfl.ErrAlreadyInitialized), errors.Is(err, sfl.ErrUninitializedLedger):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}
