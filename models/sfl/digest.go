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

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// DigestSize is the size in bytes of digests computed by the ledger.
const DigestSize = sha256.Size

// digestPrefix separates block digests from any other SHA-256 usage.
const digestPrefix = 0x01

// Digest is the content digest of a block. Digests computed by the ledger are
// always DigestSize bytes long, but a stored digest is treated as opaque bytes
// when comparing.
type Digest []byte

// Sentinel returns the digest used as the previous digest of the genesis block.
func Sentinel() Digest {
	return make(Digest, DigestSize)
}

// Equal checks whether two digests hold the same bytes.
func (d Digest) Equal(other Digest) bool {
	return bytes.Equal(d, other)
}

// Copy returns an independent copy of the digest.
func (d Digest) Copy() Digest {
	if d == nil {
		return nil
	}
	c := make(Digest, len(d))
	copy(c, d)
	return c
}

func (d Digest) String() string {
	return hex.EncodeToString(d)
}

func (d Digest) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Digest) UnmarshalJSON(data []byte) error {
	var s string
	err := json.Unmarshal(data, &s)
	if err != nil {
		return fmt.Errorf("could not decode digest string: %w", err)
	}
	raw, err := hex.DecodeString(s)
	if err != nil {
		return fmt.Errorf("could not decode digest hex: %w", err)
	}
	*d = raw
	return nil
}

// record is the canonical layout of the fields covered by a block digest. It
// is encoded as a CBOR array, so field order is fixed and every item carries
// its own length.
type record struct {
	_              struct{} `cbor:",toarray"`
	Index          uint64
	ParticipantID  string
	ModelUpdate    float64
	Credential     string
	Details        string
	PreviousDigest []byte
}

var canonical = func() cbor.EncMode {
	encoder, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(err)
	}
	return encoder
}()

// ComputeDigest computes the digest of a block from its content fields. It is
// a pure function of its inputs.
func ComputeDigest(index uint64, participantID string, modelUpdate float64, credential string, details string, previous Digest) Digest {

	// A nil slice would encode as CBOR null, while an empty one encodes as an
	// empty byte string; both compare equal as digests, so they must hash the
	// same way too.
	if previous == nil {
		previous = Digest{}
	}

	rec := record{
		Index:          index,
		ParticipantID:  participantID,
		ModelUpdate:    modelUpdate,
		Credential:     credential,
		Details:        details,
		PreviousDigest: []byte(previous),
	}

	// Encoding a fixed struct of scalars, strings and bytes can't fail with
	// valid options; an error here would mean the encoder itself is broken.
	data, err := canonical.Marshal(rec)
	if err != nil {
		panic(fmt.Sprintf("could not encode digest record: %s", err))
	}

	h := sha256.New()
	_, _ = h.Write([]byte{digestPrefix})
	_, _ = h.Write(data)

	return Digest(h.Sum(nil))
}
