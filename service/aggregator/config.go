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

package aggregator

// DefaultConfig is the default configuration of the aggregator.
var DefaultConfig = Config{
	Threshold: 0.1,
	CacheSize: 1 << 20, // 1 MB
}

// Config contains the optional parameters of the aggregator.
type Config struct {
	Threshold float64
	CacheSize uint64
}

// WithThreshold sets the maximum distance between the aggregated model update
// and a baseline for the benchmark to pass.
func WithThreshold(threshold float64) func(*Config) {
	return func(cfg *Config) {
		cfg.Threshold = threshold
	}
}

// WithCacheSize sets the maximum size in bytes of the summary cache.
func WithCacheSize(size uint64) func(*Config) {
	return func(cfg *Config) {
		cfg.CacheSize = size
	}
}
