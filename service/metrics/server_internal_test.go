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

package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/optakt/sfl-ledger/testing/mocks"
)

func TestServer_Handler(t *testing.T) {
	reg := prometheus.NewRegistry()
	promauto.With(reg).NewCounter(prometheus.CounterOpts{
		Namespace: "sfl",
		Name:      "test_total",
		Help:      "counter used for testing",
	}).Add(3)

	s := NewServer(mocks.NoopLogger, "127.0.0.1:0", reg)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	s.server.Handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Result().Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "sfl_test_total 3")
}

func TestServer_StartStop(t *testing.T) {
	s := NewServer(mocks.NoopLogger, "127.0.0.1:0", prometheus.NewRegistry())

	done := make(chan error, 1)
	go func() {
		done <- s.Start()
	}()

	// Shutdown before or after the listener started both make Start return
	// without error.
	require.Eventually(t, func() bool {
		return s.Stop() == nil
	}, time.Second, 10*time.Millisecond)

	assert.NoError(t, <-done)
}
