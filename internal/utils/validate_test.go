// validate_test.go
//
// A digital academic library service: registration, catalog, borrowing and administration
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of academic-library.
// academic-library is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// academic-library is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with academic-library.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/awilsontelary-hub/Academic-Library/internal/types"
)

type sample struct {
	Name   string `json:"name" validate:"required,max=5"`
	Rating int    `json:"rating" validate:"min=1,max=5"`
	Email  string `json:"email,omitempty" validate:"omitempty,email"`
	Raw    string `validate:"required"`
}

func TestValidate(t *testing.T) {
	require.NoError(t, Validate(sample{Name: "abc", Rating: 3, Raw: "x"}))

	err := Validate(sample{Name: "toolong", Rating: 9, Email: "nope"})
	var ve *types.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.ErrorIs(t, err, types.ErrValidation)
	assert.Equal(t, map[string]string{
		"name":   "max=5",
		"rating": "max=5",
		"email":  "email",
		"Raw":    "required",
	}, ve.Fields)
}

func TestValidateNonStruct(t *testing.T) {
	err := Validate(42)
	var ve *types.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.NotEmpty(t, ve.Msg)
}
