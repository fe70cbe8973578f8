// identity_test.go
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
	"bytes"
	"context"
	"encoding/csv"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/awilsontelary-hub/Academic-Library/internal/models"
	"github.com/awilsontelary-hub/Academic-Library/internal/testutil"
	"github.com/awilsontelary-hub/Academic-Library/internal/types"
)

func TestIdentityCreateAndTransitions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	admin := testutil.Principal(f.admin(t))

	rec, err := f.svc.Identities.Create(ctx, admin, IdentityInput{Identifier: " 20240001 ", AccountType: models.AccountTypeStudent})
	require.NoError(t, err)
	assert.Equal(t, "20240001", rec.Identifier)
	assert.Equal(t, models.IdentityPending, rec.Status)
	assert.Equal(t, admin.AccountID, *rec.AddedByID)

	_, err = f.svc.Identities.Create(ctx, admin, IdentityInput{Identifier: "20240001", AccountType: models.AccountTypeStudent})
	assert.ErrorIs(t, err, types.ErrConflict)

	got, err := f.svc.Identities.Transition(ctx, admin, rec.ID, models.IdentityActive)
	require.NoError(t, err)
	assert.Equal(t, models.IdentityActive, got.Status)

	_, err = f.svc.Identities.Transition(ctx, admin, rec.ID, models.IdentityPending)
	assert.ErrorIs(t, err, types.ErrInvalidTransition, "statuses only move forward")

	_, err = f.svc.Identities.Transition(ctx, admin, rec.ID, models.IdentityRevoked)
	require.NoError(t, err)
	_, err = f.svc.Identities.Transition(ctx, admin, rec.ID, models.IdentityActive)
	assert.ErrorIs(t, err, types.ErrInvalidTransition, "revocation is terminal")

	stored, err := f.svc.Identities.Lookup(ctx, "20240001")
	require.NoError(t, err)
	assert.Equal(t, models.IdentityRevoked, stored.Status, "revoked records are kept")
}

func TestIdentityRequiresAdmin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	staff := testutil.Principal(f.staff(t))

	_, err := f.svc.Identities.Create(ctx, staff, IdentityInput{Identifier: "20240002", AccountType: models.AccountTypeStudent})
	assert.ErrorIs(t, err, types.ErrPermission)
	_, err = f.svc.Identities.Generate(ctx, staff, GenerateInput{Count: 1, AccountType: models.AccountTypeStudent})
	assert.ErrorIs(t, err, types.ErrPermission)
}

func TestIdentityInputValidation(t *testing.T) {
	f := newFixture(t)
	admin := testutil.Principal(f.admin(t))

	_, err := f.svc.Identities.Create(context.Background(), admin, IdentityInput{Identifier: "ab12", AccountType: "faculty"})
	var ve *types.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "identifier")
	assert.Contains(t, ve.Fields, "account_type")
}

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to models.IdentityStatus
		ok       bool
	}{
		{models.IdentityPending, models.IdentityActive, true},
		{models.IdentityPending, models.IdentityRevoked, true},
		{models.IdentityActive, models.IdentityRevoked, true},
		{models.IdentityActive, models.IdentityPending, false},
		{models.IdentityRevoked, models.IdentityActive, false},
		{models.IdentityActive, models.IdentityActive, false},
		{"bogus", models.IdentityActive, false},
	}
	for _, c := range cases {
		assert.Equal(t, c.ok, c.from.CanTransition(c.to), "%s -> %s", c.from, c.to)
	}
}

var generatedFormat = regexp.MustCompile(`^[23]\d{7}$`)

func TestGenerateIdentifiers(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	admin := testutil.Principal(f.admin(t))

	recs, err := f.svc.Identities.Generate(ctx, admin, GenerateInput{Count: 25, AccountType: models.AccountTypeStaff, Department: "Physics"})
	require.NoError(t, err)
	require.Len(t, recs, 25)
	seen := map[string]bool{}
	for _, r := range recs {
		assert.Regexp(t, generatedFormat, r.Identifier)
		assert.True(t, strings.HasPrefix(r.Identifier, "3"))
		assert.Equal(t, models.IdentityActive, r.Status)
		assert.Equal(t, "Physics", r.Department)
		assert.False(t, seen[r.Identifier])
		seen[r.Identifier] = true
	}

	_, err = f.svc.Identities.Generate(ctx, admin, GenerateInput{Count: 101, AccountType: models.AccountTypeStudent})
	assert.ErrorIs(t, err, types.ErrValidation)
	_, err = f.svc.Identities.Generate(ctx, admin, GenerateInput{Count: 0, AccountType: models.AccountTypeStudent})
	assert.ErrorIs(t, err, types.ErrValidation)

	id, err := NewIdentifier(models.AccountTypeStudent)
	require.NoError(t, err)
	assert.Regexp(t, `^2\d{7}$`, id)
}

func TestIdentityList(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	testutil.Identity(t, f.db, models.AccountTypeStudent, models.IdentityPending)
	testutil.Identity(t, f.db, models.AccountTypeStaff, models.IdentityActive)
	f.student(t)

	pending, err := f.svc.Identities.List(ctx, IdentityFilter{Status: models.IdentityPending})
	require.NoError(t, err)
	assert.Len(t, pending, 1)

	unusedActive, err := f.svc.Identities.List(ctx, IdentityFilter{Status: models.IdentityActive, Unused: true})
	require.NoError(t, err)
	assert.Len(t, unusedActive, 1)

	staff, err := f.svc.Identities.List(ctx, IdentityFilter{AccountType: models.AccountTypeStaff})
	require.NoError(t, err)
	assert.Len(t, staff, 1)
}

func TestIdentityCSVRoundTrip(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	admin := testutil.Principal(f.admin(t))
	existing := testutil.Identity(t, f.db, models.AccountTypeStudent, models.IdentityActive)

	input := "\ufeffinstitutional_id,account_type,status,first_name,email,expires_at\n" +
		"20250001,student,active,Ada,ada@example.edu,2027-01-01T00:00:00Z\n" +
		"30250002,STAFF,,Grace,,\n" +
		existing.Identifier + ",student,active,,,\n" +
		"20250003,faculty,,,,\n" +
		"20250004,student,,,,tomorrow\n" +
		",student,,,,\n"

	report, err := f.svc.Identities.Import(ctx, admin, strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, 2, report.Created)
	assert.Equal(t, 1, report.Skipped)
	assert.Len(t, report.Records, 2)
	rows := map[int]bool{}
	for _, e := range report.Errors {
		rows[e.Row] = true
	}
	assert.Equal(t, map[int]bool{4: true, 5: true, 6: true}, rows)

	ada, err := f.svc.Identities.Lookup(ctx, "20250001")
	require.NoError(t, err)
	assert.Equal(t, models.IdentityActive, ada.Status)
	require.NotNil(t, ada.ExpiresAt)
	assert.Equal(t, time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC), ada.ExpiresAt.UTC())

	grace, err := f.svc.Identities.Lookup(ctx, "30250002")
	require.NoError(t, err)
	assert.Equal(t, models.AccountTypeStaff, grace.AccountType)
	assert.Equal(t, models.IdentityPending, grace.Status)

	var buf bytes.Buffer
	require.NoError(t, f.svc.Identities.Export(ctx, admin, &buf, IdentityFilter{}))
	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, CSVColumns, records[0])
	exported := map[string]bool{}
	for _, r := range records[1:] {
		exported[r[0]] = true
	}
	assert.True(t, exported["20250001"])
	assert.True(t, exported["30250002"])
	assert.True(t, exported[existing.Identifier])
}

func TestIdentityImportRejectsBadHeader(t *testing.T) {
	f := newFixture(t)
	admin := testutil.Principal(f.admin(t))

	_, err := f.svc.Identities.Import(context.Background(), admin, strings.NewReader("name,email\nx,y\n"))
	assert.ErrorIs(t, err, types.ErrValidation)
	_, err = f.svc.Identities.Import(context.Background(), admin, strings.NewReader(""))
	assert.ErrorIs(t, err, types.ErrValidation)
	_, err = f.svc.Identities.Import(context.Background(), testutil.Principal(f.staff(t)), strings.NewReader("identifier\n1234\n"))
	assert.ErrorIs(t, err, types.ErrPermission)
}
