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

package sfl_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/optakt/sfl-ledger/models/sfl"
)

func TestGenesis(t *testing.T) {
	genesis := sfl.Genesis()

	assert.Equal(t, uint64(0), genesis.Index)
	assert.Equal(t, "Genesis Block", genesis.Details)
	assert.Empty(t, genesis.ParticipantID)
	assert.Empty(t, genesis.Credential)
	assert.Zero(t, genesis.ModelUpdate)
	assert.Equal(t, sfl.Sentinel(), genesis.PreviousDigest)
	assert.Equal(t, genesis.ComputeDigest(), genesis.Digest)

	// The genesis block has no variable content, so it is always the same.
	assert.Equal(t, genesis, sfl.Genesis())
}

func TestBlock_Copy(t *testing.T) {
	block := sfl.Genesis()

	c := block.Copy()
	c.Digest[0] ^= 0xff
	c.PreviousDigest[0] ^= 0xff

	assert.Equal(t, sfl.Genesis(), block)
}

func TestBlock_JSON(t *testing.T) {
	block := sfl.Block{
		Index:          1,
		ParticipantID:  "Participant1",
		ModelUpdate:    0.123,
		Credential:     "Credential1",
		Details:        "Model update 1",
		PreviousDigest: sfl.Digest{0x01, 0x02},
		Digest:         sfl.Digest{0x03, 0x04},
	}

	data, err := json.Marshal(block)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"index": 1,
		"participant_id": "Participant1",
		"model_update": 0.123,
		"credential": "Credential1",
		"details": "Model update 1",
		"previous_digest": "0102",
		"digest": "0304"
	}`, string(data))

	var got sfl.Block
	err = json.Unmarshal(data, &got)
	require.NoError(t, err)
	assert.Equal(t, block, got)
}

func TestInvalidBlockError(t *testing.T) {
	err := &sfl.InvalidBlockError{Index: 4, Reason: sfl.ReasonLinkage}

	assert.ErrorIs(t, err, sfl.ErrInvalidChain)
	assert.Equal(t, "block 4 invalid: previous digest does not match predecessor digest", err.Error())
}
