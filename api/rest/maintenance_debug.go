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

//go:build debug
// +build debug

package rest

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

// InvalidationRequest carries the digest that overwrites a stored block digest.
type InvalidationRequest struct {
	Digest string `json:"digest"`
}

type invalidator interface {
	TestInvalidateBlock(index uint64, digest []byte) error
}

// InvalidateBlock overwrites the digest of the block at the index given as
// path parameter. It exists to exercise tamper detection and is only compiled
// into debug builds.
func (c *Controller) InvalidateBlock(ctx echo.Context) error {

	ledger, ok := c.ledger.(invalidator)
	if !ok {
		return echo.NewHTTPError(http.StatusNotImplemented, fmt.Sprintf("ledger does not support invalidation (%T)", c.ledger))
	}

	index, err := strconv.ParseUint(ctx.Param("index"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err)
	}

	var req InvalidationRequest
	err = ctx.Bind(&req)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err)
	}

	err = ledger.TestInvalidateBlock(index, []byte(req.Digest))
	if err != nil {
		return httpError(err)
	}

	return ctx.NoContent(http.StatusNoContent)
}
