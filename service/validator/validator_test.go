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

package validator_test

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/optakt/sfl-ledger/models/sfl"
	"github.com/optakt/sfl-ledger/service/validator"
	"github.com/optakt/sfl-ledger/testing/mocks"
)

func TestValidator_Submission(t *testing.T) {
	valid := sfl.Submission{
		ParticipantID: mocks.GenericParticipant,
		ModelUpdate:   mocks.GenericUpdate,
		Credential:    mocks.GenericCredential,
		Details:       mocks.GenericDetails,
	}

	tests := []struct {
		desc   string
		modify func(sub *sfl.Submission)

		wantErr assert.ErrorAssertionFunc
		wantMsg string
	}{
		{
			desc:    "nominal case",
			modify:  func(*sfl.Submission) {},
			wantErr: assert.NoError,
		},
		{
			desc: "empty credential and details are accepted",
			modify: func(sub *sfl.Submission) {
				sub.Credential = ""
				sub.Details = ""
			},
			wantErr: assert.NoError,
		},
		{
			desc: "zero and negative updates are accepted",
			modify: func(sub *sfl.Submission) {
				sub.ModelUpdate = -1.5
			},
			wantErr: assert.NoError,
		},
		{
			desc: "missing participant",
			modify: func(sub *sfl.Submission) {
				sub.ParticipantID = ""
			},
			wantErr: assert.Error,
			wantMsg: "ParticipantID",
		},
		{
			desc: "participant too long",
			modify: func(sub *sfl.Submission) {
				sub.ParticipantID = strings.Repeat("p", 257)
			},
			wantErr: assert.Error,
			wantMsg: "ParticipantID",
		},
		{
			desc: "NaN update",
			modify: func(sub *sfl.Submission) {
				sub.ModelUpdate = math.NaN()
			},
			wantErr: assert.Error,
			wantMsg: "ModelUpdate",
		},
		{
			desc: "infinite update",
			modify: func(sub *sfl.Submission) {
				sub.ModelUpdate = math.Inf(-1)
			},
			wantErr: assert.Error,
			wantMsg: "ModelUpdate",
		},
		{
			desc: "credential too long",
			modify: func(sub *sfl.Submission) {
				sub.Credential = strings.Repeat("c", 1025)
			},
			wantErr: assert.Error,
			wantMsg: "Credential",
		},
		{
			desc: "details too long",
			modify: func(sub *sfl.Submission) {
				sub.Details = strings.Repeat("d", 4097)
			},
			wantErr: assert.Error,
			wantMsg: "Details",
		},
	}

	validate := validator.New()
	for _, test := range tests {
		test := test
		t.Run(test.desc, func(t *testing.T) {
			t.Parallel()

			sub := valid
			test.modify(&sub)

			err := validate.Submission(sub)
			test.wantErr(t, err)
			if err != nil {
				assert.ErrorIs(t, err, sfl.ErrInvalidInput)
				assert.Contains(t, err.Error(), test.wantMsg)
			}
		})
	}
}
