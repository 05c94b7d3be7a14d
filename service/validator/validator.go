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

package validator

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-playground/validator/v10"

	"github.com/optakt/sfl-ledger/models/sfl"
)

const tagFinite = "finite"

// Validator checks submissions before they are recorded on the ledger.
type Validator struct {
	validate *validator.Validate
}

// New creates a new submission validator.
func New() *Validator {

	validate := validator.New()

	// Registration only fails for an empty tag or a nil function.
	err := validate.RegisterValidation(tagFinite, finiteValidator)
	if err != nil {
		panic(err)
	}

	v := Validator{
		validate: validate,
	}

	return &v
}

// Submission validates the given submission. Failures wrap sfl.ErrInvalidInput
// and name the first offending field.
func (v *Validator) Submission(sub sfl.Submission) error {

	err := v.validate.Struct(sub)
	if err == nil {
		return nil
	}

	var errs validator.ValidationErrors
	if !errors.As(err, &errs) || len(errs) == 0 {
		return fmt.Errorf("could not validate submission: %w", err)
	}

	first := errs[0]
	return fmt.Errorf("%w: field %s failed on %s", sfl.ErrInvalidInput, first.Field(), first.Tag())
}

func finiteValidator(fl validator.FieldLevel) bool {
	value := fl.Field().Float()
	return !math.IsNaN(value) && !math.IsInf(value, 0)
}
