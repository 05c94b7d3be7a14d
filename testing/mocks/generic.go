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
	"errors"
	"fmt"
	"io"
	"math/rand"

	"github.com/rs/zerolog"

	"github.com/optakt/sfl-ledger/models/sfl"
)

// Global variables that can be used for testing. They are non-nil valid values
// for the types commonly needed to test ledger components.
var (
	NoopLogger = zerolog.New(io.Discard)

	GenericError = errors.New("dummy error")

	GenericBytes = []byte(`test`)

	GenericParticipant = "Participant1"
	GenericCredential  = "Credential1"
	GenericDetails     = "Model update 1"
	GenericUpdate      = 0.123

	GenericSummary = sfl.Summary{
		Height:  3,
		Updates: 2,
		Mean:    0.5,
		Min:     0.25,
		Max:     0.75,
		Participants: map[string]uint64{
			"Participant1": 1,
			"Participant2": 1,
		},
	}
)

// GenericBlocks returns a valid chain of the given number of blocks, starting
// with the genesis block. Participants rotate between three identifiers.
func GenericBlocks(number int) []sfl.Block {
	// Ensure consistent deterministic results.
	random := rand.New(rand.NewSource(0))

	blocks := make([]sfl.Block, 0, number)
	for i := 0; i < number; i++ {
		if i == 0 {
			blocks = append(blocks, sfl.Genesis())
			continue
		}

		previous := blocks[i-1]
		block := sfl.Block{
			Index:          uint64(i),
			ParticipantID:  GenericParticipantID(i % 3),
			ModelUpdate:    random.Float64(),
			Credential:     fmt.Sprintf("Credential%d", i%3+1),
			Details:        fmt.Sprintf("Model update %d", i),
			PreviousDigest: previous.Digest.Copy(),
		}
		block.Digest = block.ComputeDigest()
		blocks = append(blocks, block)
	}

	return blocks
}

func GenericBlock(index int) sfl.Block {
	return GenericBlocks(index + 1)[index]
}

func GenericParticipantID(index int) string {
	return fmt.Sprintf("Participant%d", index+1)
}
