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

package engine

import (
	"os"

	"github.com/rs/zerolog"
)

// Engine runs a set of components until one of them finishes or fails, or
// until a signal is received.
type Engine struct {
	log        zerolog.Logger
	components []*component
	sig        <-chan os.Signal
}

// New creates a new engine.
func New(log zerolog.Logger, name string, sig <-chan os.Signal) *Engine {
	e := Engine{
		log: log.With().Str("engine", name).Logger(),
		sig: sig,
	}

	return &e
}

// Component registers a new component for the engine. Components are stopped
// in the order in which they were registered.
func (e *Engine) Component(name string, run func() error, stop func() error) *Engine {
	c := component{
		log:  e.log.With().Str("component", name).Logger(),
		run:  run,
		stop: stop,
	}

	e.components = append(e.components, &c)

	return e
}

// Run launches all components and blocks until the first of them returns or
// a signal arrives. It then stops every component and returns the error of
// the component that ended the run, if any.
func (e *Engine) Run() error {

	notify := make(chan error, len(e.components))
	for _, c := range e.components {
		go c.Run(notify)
	}

	var err error
	select {
	case <-e.sig:
		e.log.Info().Msg("engine stopping")
	case err = <-notify:
		if err != nil {
			e.log.Warn().Msg("engine aborted")
		} else {
			e.log.Info().Msg("engine done")
		}
	}

	// A second signal while components shut down forces the exit.
	go func() {
		<-e.sig
		e.log.Warn().Msg("forcing exit")
		os.Exit(1)
	}()

	for _, c := range e.components {
		c.Stop()
	}

	return err
}
