// tokens_test.go
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

package services

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/awilsontelary-hub/Academic-Library/internal/models"
	"github.com/awilsontelary-hub/Academic-Library/internal/testutil"
	"github.com/awilsontelary-hub/Academic-Library/internal/types"
)

func TestTokenIssueAndParse(t *testing.T) {
	clock := testutil.NewClock()
	issuer := &TokenIssuer{Secret: []byte("s3cret"), TTL: time.Hour, Clock: clock.Now}
	account := &models.Account{ID: 42, Role: models.RoleStaff}

	raw, expires, err := issuer.Issue(account)
	require.NoError(t, err)
	assert.Equal(t, clock.Now().Add(time.Hour), expires)

	id, err := issuer.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), id)

	clock.Advance(2 * time.Hour)
	_, err = issuer.Parse(raw)
	assert.ErrorIs(t, err, types.ErrUnauthenticated, "expired")
}

func TestTokenRejectsForgeries(t *testing.T) {
	clock := testutil.NewClock()
	issuer := &TokenIssuer{Secret: []byte("s3cret"), TTL: time.Hour, Clock: clock.Now}
	other := &TokenIssuer{Secret: []byte("other"), TTL: time.Hour, Clock: clock.Now}

	raw, _, err := other.Issue(&models.Account{ID: 1})
	require.NoError(t, err)
	_, err = issuer.Parse(raw)
	assert.ErrorIs(t, err, types.ErrUnauthenticated, "wrong secret")

	claims := jwt.RegisteredClaims{
		Issuer:    tokenIssuer,
		Subject:   "1",
		ExpiresAt: jwt.NewNumericDate(clock.Now().Add(time.Hour)),
	}
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = issuer.Parse(unsigned)
	assert.ErrorIs(t, err, types.ErrUnauthenticated, "alg none")

	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{Issuer: tokenIssuer, Subject: "1"}).SignedString(issuer.Secret)
	require.NoError(t, err)
	_, err = issuer.Parse(noExpiry)
	assert.ErrorIs(t, err, types.ErrUnauthenticated, "missing exp")

	foreign, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:    "someone-else",
		Subject:   "1",
		ExpiresAt: jwt.NewNumericDate(clock.Now().Add(time.Hour)),
	}).SignedString(issuer.Secret)
	require.NoError(t, err)
	_, err = issuer.Parse(foreign)
	assert.ErrorIs(t, err, types.ErrUnauthenticated, "wrong issuer")

	_, err = issuer.Parse("not-a-token")
	assert.ErrorIs(t, err, types.ErrUnauthenticated)
}

func TestTokenIssueWithoutSecret(t *testing.T) {
	_, _, err := (&TokenIssuer{TTL: time.Hour}).Issue(&models.Account{ID: 1})
	assert.ErrorIs(t, err, types.ErrInfrastructure)
}
