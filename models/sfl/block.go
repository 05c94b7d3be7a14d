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

package sfl

// GenesisDetails is the fixed description of the genesis block.
const GenesisDetails = "Genesis Block"

// Block is a single entry of the ledger. It records either the genesis entry
// or one participant's model update.
type Block struct {
	Index          uint64  `json:"index"`
	ParticipantID  string  `json:"participant_id"`
	ModelUpdate    float64 `json:"model_update"`
	Credential     string  `json:"credential"`
	Details        string  `json:"details"`
	PreviousDigest Digest  `json:"previous_digest"`
	Digest         Digest  `json:"digest"`
}

// Genesis returns the genesis block, with its digest already computed.
func Genesis() Block {
	b := Block{
		Index:          0,
		Details:        GenesisDetails,
		PreviousDigest: Sentinel(),
	}
	b.Digest = b.ComputeDigest()
	return b
}

// ComputeDigest recomputes the digest over the block's stored content fields.
// It ignores the stored digest.
func (b *Block) ComputeDigest() Digest {
	return ComputeDigest(b.Index, b.ParticipantID, b.ModelUpdate, b.Credential, b.Details, b.PreviousDigest)
}

// Copy returns a deep copy of the block.
func (b Block) Copy() Block {
	b.PreviousDigest = b.PreviousDigest.Copy()
	b.Digest = b.Digest.Copy()
	return b
}

// Submission holds the fields a participant provides for a model update.
type Submission struct {
	ParticipantID string  `json:"participant_id" validate:"required,max=256"`
	ModelUpdate   float64 `json:"model_update" validate:"finite"`
	Credential    string  `json:"credential" validate:"max=1024"`
	Details       string  `json:"details" validate:"max=4096"`
}
