// accounts_test.go
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
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/awilsontelary-hub/Academic-Library/internal/models"
	"github.com/awilsontelary-hub/Academic-Library/internal/testutil"
	"github.com/awilsontelary-hub/Academic-Library/internal/types"
)

func registerInput(identifier, username string) RegisterInput {
	return RegisterInput{Identifier: identifier, Username: username, Password: testutil.Password}
}

func TestRegisterConsumesIdentity(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	rec := testutil.Identity(t, f.db, models.AccountTypeStaff, models.IdentityActive)
	require.NoError(t, f.db.Model(rec).Updates(map[string]any{"first_name": "Grace", "email": "grace@example.edu"}).Error)

	account, err := f.svc.Accounts.Register(ctx, registerInput(rec.Identifier, "ghopper"))
	require.NoError(t, err)
	assert.Equal(t, models.RoleStaff, account.Role)
	assert.False(t, account.IsApproved)
	assert.True(t, account.IsActive)
	assert.Equal(t, "Grace", account.FirstName)
	assert.Equal(t, "grace@example.edu", account.Email)
	assert.NotEqual(t, testutil.Password, account.PasswordHash)

	stored, err := f.svc.Identities.Lookup(ctx, rec.Identifier)
	require.NoError(t, err)
	require.NotNil(t, stored.UsedAt)
	require.NotNil(t, stored.UsedByAccountID)
	assert.Equal(t, account.ID, *stored.UsedByAccountID)

	_, err = f.svc.Accounts.Register(ctx, registerInput(rec.Identifier, "another"))
	assert.ErrorIs(t, err, types.ErrConflict)
}

func TestRegisterPreconditions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	pending := testutil.Identity(t, f.db, models.AccountTypeStudent, models.IdentityPending)
	_, err := f.svc.Accounts.Register(ctx, registerInput(pending.Identifier, "pending1"))
	assert.ErrorIs(t, err, types.ErrValidation)

	revoked := testutil.Identity(t, f.db, models.AccountTypeStudent, models.IdentityRevoked)
	_, err = f.svc.Accounts.Register(ctx, registerInput(revoked.Identifier, "revoked1"))
	assert.ErrorIs(t, err, types.ErrValidation)

	expired := testutil.Identity(t, f.db, models.AccountTypeStudent, models.IdentityActive)
	require.NoError(t, f.db.Model(expired).Update("expires_at", f.clock.Now().Add(-time.Hour)).Error)
	_, err = f.svc.Accounts.Register(ctx, registerInput(expired.Identifier, "expired1"))
	assert.ErrorIs(t, err, types.ErrValidation)

	_, err = f.svc.Accounts.Register(ctx, registerInput("99999999", "nobody1"))
	var nf *types.NotFoundError
	assert.ErrorAs(t, err, &nf)

	_, err = f.svc.Accounts.Register(ctx, RegisterInput{Identifier: "12a4", Username: "a b", Password: "short"})
	var ve *types.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "identifier")
	assert.Contains(t, ve.Fields, "username")
	assert.Contains(t, ve.Fields, "password")
}

func TestRegisterDuplicateUsername(t *testing.T) {
	f := newFixture(t)
	existing := f.student(t)
	rec := testutil.Identity(t, f.db, models.AccountTypeStudent, models.IdentityActive)

	_, err := f.svc.Accounts.Register(context.Background(), registerInput(rec.Identifier, existing.Username))
	assert.ErrorIs(t, err, types.ErrConflict)

	stored, err := f.svc.Identities.Lookup(context.Background(), rec.Identifier)
	require.NoError(t, err)
	assert.Nil(t, stored.UsedAt, "a failed registration leaves the identity unused")
}

func TestLogin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	account := f.student(t)

	res, err := f.svc.Accounts.Login(ctx, account.Username, testutil.Password)
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, f.clock.Now().Add(f.cfg.JWTTTL), res.ExpiresAt)
	assert.Equal(t, account.ID, res.Account.ID)

	id, err := f.svc.Tokens.Parse(res.Token)
	require.NoError(t, err)
	assert.Equal(t, account.ID, id)

	var rec models.IdentityRecord
	require.NoError(t, f.db.First(&rec, account.IdentityRecordID).Error)
	res, err = f.svc.Accounts.Login(ctx, rec.Identifier, testutil.Password)
	require.NoError(t, err, "login accepts the institutional identifier")
	assert.Equal(t, account.ID, res.Account.ID)
}

func TestLoginFailuresAreUniform(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	account := f.student(t)
	inactive := f.student(t)
	require.NoError(t, f.db.Model(inactive).Update("is_active", false).Error)

	cases := map[string][2]string{
		"wrong password": {account.Username, "wrong-password"},
		"unknown user":   {"nobody", testutil.Password},
		"inactive":       {inactive.Username, testutil.Password},
		"empty":          {"", ""},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := f.svc.Accounts.Login(ctx, c[0], c[1])
			assert.ErrorIs(t, err, types.ErrInvalidCredentials)
		})
	}
}

func TestLoginDoesNotRequireApproval(t *testing.T) {
	f := newFixture(t)
	account := testutil.Account(t, f.db, models.RoleStudent, false)

	res, err := f.svc.Accounts.Login(context.Background(), account.Username, testutil.Password)
	require.NoError(t, err)
	assert.False(t, res.Account.IsApproved)
}

func TestApproveAndDeactivate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	admin := testutil.Principal(f.admin(t))
	pending := testutil.Account(t, f.db, models.RoleStudent, false)

	require.NoError(t, f.svc.Accounts.Approve(ctx, admin, pending.ID))
	require.NoError(t, f.svc.Accounts.Approve(ctx, admin, pending.ID), "approving twice is a no-op")
	got, err := f.svc.Accounts.Load(ctx, pending.ID)
	require.NoError(t, err)
	assert.True(t, got.IsApproved)

	require.NoError(t, f.svc.Accounts.Deactivate(ctx, admin, pending.ID))
	got, err = f.svc.Accounts.Load(ctx, pending.ID)
	require.NoError(t, err)
	assert.False(t, got.IsActive)

	assert.ErrorIs(t, f.svc.Accounts.Deactivate(ctx, admin, admin.AccountID), types.ErrValidation)
	assert.ErrorIs(t, f.svc.Accounts.Approve(ctx, testutil.Principal(f.staff(t)), pending.ID), types.ErrPermission)

	var nf *types.NotFoundError
	assert.ErrorAs(t, f.svc.Accounts.Approve(ctx, admin, 9999), &nf)
}

func TestUpdateProfile(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	account := f.student(t)
	p := testutil.Principal(account)

	first, email := " Grace ", "grace@example.edu"
	got, err := f.svc.Accounts.UpdateProfile(ctx, p, ProfileInput{FirstName: &first, Email: &email})
	require.NoError(t, err)
	assert.Equal(t, "Grace", got.FirstName)
	assert.Equal(t, email, got.Email)
	assert.Equal(t, account.LastName, got.LastName, "omitted fields are kept")
	assert.Equal(t, account.Username, got.Username)

	empty := ""
	got, err = f.svc.Accounts.UpdateProfile(ctx, p, ProfileInput{Email: &empty})
	require.NoError(t, err)
	assert.Empty(t, got.Email)
	assert.Equal(t, "Grace", got.FirstName)

	bad := "not-an-email"
	_, err = f.svc.Accounts.UpdateProfile(ctx, p, ProfileInput{Email: &bad})
	var ve *types.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "email", ve.Fields["email"])

	_, err = f.svc.Accounts.UpdateProfile(ctx, types.Principal{}, ProfileInput{FirstName: &first})
	assert.ErrorIs(t, err, types.ErrUnauthenticated)
}

func TestCreateAdmin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	account, err := f.svc.Accounts.CreateAdmin(ctx, AdminInput{Username: "root", Password: testutil.Password, Email: "root@example.edu"})
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, account.Role)
	assert.True(t, account.IsApproved)

	var rec models.IdentityRecord
	require.NoError(t, f.db.First(&rec, account.IdentityRecordID).Error)
	assert.Equal(t, models.AccountTypeStaff, rec.AccountType)
	assert.Regexp(t, `^3\d{7}$`, rec.Identifier)
	assert.NotNil(t, rec.UsedAt)

	_, err = f.svc.Accounts.Login(ctx, "root", testutil.Password)
	require.NoError(t, err)

	_, err = f.svc.Accounts.CreateAdmin(ctx, AdminInput{Username: "root", Password: testutil.Password})
	assert.ErrorIs(t, err, types.ErrConflict)
}

func TestFindByEmailAndList(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	student := f.student(t)
	pending := testutil.Account(t, f.db, models.RoleStudent, false)
	staff := testutil.Principal(f.staff(t))

	got, err := f.svc.Accounts.FindByEmail(ctx, "  "+student.Email)
	require.NoError(t, err)
	assert.Equal(t, student.ID, got.ID)

	_, err = f.svc.Accounts.FindByEmail(ctx, "missing@example.edu")
	var nf *types.NotFoundError
	assert.ErrorAs(t, err, &nf)

	unapproved := false
	list, err := f.svc.Accounts.List(ctx, staff, AccountFilter{Approved: &unapproved})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, pending.ID, list[0].ID)

	students, err := f.svc.Accounts.List(ctx, staff, AccountFilter{Role: models.RoleStudent})
	require.NoError(t, err)
	assert.Len(t, students, 2)

	_, err = f.svc.Accounts.List(ctx, testutil.Principal(student), AccountFilter{})
	assert.ErrorIs(t, err, types.ErrPermission)
}
