// accounts.go
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
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/awilsontelary-hub/Academic-Library/internal/database"
	"github.com/awilsontelary-hub/Academic-Library/internal/models"
	"github.com/awilsontelary-hub/Academic-Library/internal/types"
)

// Accounts registers, authenticates and administers User Accounts.
type Accounts struct {
	Base
	Activity *Activity
	Tokens   *TokenIssuer
	// PasswordCost is the bcrypt cost; zero means bcrypt.DefaultCost.
	PasswordCost int
}

// RegisterInput is a self-registration request.
type RegisterInput struct {
	Identifier string `json:"identifier" validate:"required,numeric,min=4,max=20"`
	Username   string `json:"username" validate:"required,min=3,max=150,excludesall= /\\"`
	Password   string `json:"password" validate:"required,min=8,max=72"`
	FirstName  string `json:"first_name" validate:"max=100"`
	LastName   string `json:"last_name" validate:"max=100"`
	Email      string `json:"email" validate:"omitempty,email,max=255"`
	Phone      string `json:"phone" validate:"max=40"`
}

// Register creates an unapproved account backed by an active, unexpired and
// unused identity. The identity is marked used in the same transaction.
func (s *Accounts) Register(ctx context.Context, in RegisterInput) (*models.Account, error) {
	in.Identifier = strings.TrimSpace(in.Identifier)
	in.Username = strings.TrimSpace(in.Username)
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	hash, err := s.hash(in.Password)
	if err != nil {
		return nil, err
	}

	var account *models.Account
	err = database.Transact(ctx, s.DB, func(tx *gorm.DB) error {
		account = nil
		var rec models.IdentityRecord
		if err := database.ForUpdate(tx).Where("identifier = ?", in.Identifier).First(&rec).Error; err != nil {
			return missing(err, "identity", in.Identifier)
		}
		now := s.now()
		switch {
		case rec.UsedAt != nil:
			return fmt.Errorf("%w: identifier already registered", types.ErrConflict)
		case rec.Status != models.IdentityActive:
			return types.Invalid("identifier is %s", rec.Status)
		case !rec.Usable(now):
			return types.Invalid("identifier has expired")
		}

		account = &models.Account{
			Username:         in.Username,
			PasswordHash:     hash,
			IdentityRecordID: rec.ID,
			Role:             models.RoleFor(rec.AccountType),
			IsApproved:       false,
			IsActive:         true,
			FirstName:        firstNonEmpty(in.FirstName, rec.FirstName),
			LastName:         firstNonEmpty(in.LastName, rec.LastName),
			Email:            firstNonEmpty(in.Email, rec.Email),
			Phone:            firstNonEmpty(in.Phone, rec.Phone),
		}
		if err := tx.Create(account).Error; err != nil {
			return err
		}
		res := tx.Model(&models.IdentityRecord{}).
			Where("id = ? AND used_at IS NULL", rec.ID).
			Updates(map[string]any{"used_at": now, "used_by_account_id": account.ID})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: identifier already registered", types.ErrConflict)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.Activity.Record(ctx, types.PrincipalFromAccount(account), "account.registered", "account", account.ID, map[string]any{
		"identity_record_id": account.IdentityRecordID,
	})
	s.log().Info("account registered", zap.Uint64("account_id", account.ID), zap.String("role", string(account.Role)))
	return account, nil
}

// LoginResult is a successful login.
type LoginResult struct {
	Token     string          `json:"token"`
	ExpiresAt time.Time       `json:"expires_at"`
	Account   *models.Account `json:"account"`
}

// Login authenticates by username or institutional identifier. Unknown,
// inactive and wrong-password logins all fail with ErrInvalidCredentials.
func (s *Accounts) Login(ctx context.Context, login, password string) (*LoginResult, error) {
	login = strings.TrimSpace(login)
	if login == "" || password == "" {
		return nil, types.ErrInvalidCredentials
	}

	account, err := s.findLogin(ctx, login)
	if err != nil && !errors.As(err, new(*types.NotFoundError)) {
		return nil, err
	}
	if account == nil {
		// keep the timing close to a real comparison
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		return nil, types.ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)) != nil || !account.IsActive {
		return nil, types.ErrInvalidCredentials
	}
	if s.Tokens == nil {
		return nil, types.Infrastructure(errors.New("token issuer not configured"))
	}
	token, expires, err := s.Tokens.Issue(account)
	if err != nil {
		return nil, err
	}
	s.Activity.Record(ctx, types.PrincipalFromAccount(account), "account.login", "account", account.ID, nil)
	return &LoginResult{Token: token, ExpiresAt: expires.UTC(), Account: account}, nil
}

var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("academic-library"), bcrypt.MinCost)

func (s *Accounts) findLogin(ctx context.Context, login string) (*models.Account, error) {
	var account models.Account
	err := s.reader(ctx).Where("username = ?", login).First(&account).Error
	if err == nil {
		return &account, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, classify(err)
	}
	err = s.reader(ctx).
		Joins("JOIN identity_records ON identity_records.id = accounts.identity_record_id").
		Where("identity_records.identifier = ?", login).
		First(&account).Error
	if err != nil {
		return nil, classify(missing(err, "account", login))
	}
	return &account, nil
}

// Load returns an account by id.
func (s *Accounts) Load(ctx context.Context, id uint64) (*models.Account, error) {
	var account models.Account
	if err := s.reader(ctx).First(&account, id).Error; err != nil {
		return nil, classify(missing(err, "account", id))
	}
	return &account, nil
}

// ProfileInput changes the caller's own contact details. Nil fields are kept.
type ProfileInput struct {
	FirstName *string `json:"first_name" validate:"omitempty,max=100"`
	LastName  *string `json:"last_name" validate:"omitempty,max=100"`
	Email     *string `json:"email" validate:"omitempty,email,max=255"`
	Phone     *string `json:"phone" validate:"omitempty,max=40"`
}

func (in ProfileInput) changes() map[string]any {
	changes := make(map[string]any, 4)
	for column, v := range map[string]*string{
		"first_name": in.FirstName,
		"last_name":  in.LastName,
		"email":      in.Email,
		"phone":      in.Phone,
	} {
		if v != nil {
			changes[column] = strings.TrimSpace(*v)
		}
	}
	return changes
}

// UpdateProfile updates the contact details of the calling account.
// Username, role and approval are not editable here.
func (s *Accounts) UpdateProfile(ctx context.Context, p types.Principal, in ProfileInput) (*models.Account, error) {
	if p.AccountID == 0 {
		return nil, types.ErrUnauthenticated
	}
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	changes := in.changes()

	var account models.Account
	err := database.Transact(ctx, s.DB, func(tx *gorm.DB) error {
		if err := tx.First(&account, p.AccountID).Error; err != nil {
			return missing(err, "account", p.AccountID)
		}
		if len(changes) == 0 {
			return nil
		}
		if err := tx.Model(&models.Account{}).Where("id = ?", account.ID).Updates(changes).Error; err != nil {
			return err
		}
		account = models.Account{}
		return tx.First(&account, p.AccountID).Error
	})
	if err != nil {
		return nil, err
	}
	if len(changes) > 0 {
		s.Activity.Record(ctx, p, "account.profile_updated", "account", account.ID, nil)
	}
	return &account, nil
}

// FindByEmail returns the account registered with email.
func (s *Accounts) FindByEmail(ctx context.Context, email string) (*models.Account, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, types.NotFound("account", email)
	}
	var account models.Account
	if err := s.reader(ctx).Where("LOWER(email) = ?", strings.ToLower(email)).Order("id").First(&account).Error; err != nil {
		return nil, classify(missing(err, "account", email))
	}
	return &account, nil
}

// AccountFilter narrows List.
type AccountFilter struct {
	Approved *bool
	Role     models.Role
	Page
}

// List returns accounts newest first. Staff only.
func (s *Accounts) List(ctx context.Context, p types.Principal, f AccountFilter) ([]models.Account, error) {
	if err := requireStaff(p); err != nil {
		return nil, err
	}
	q := s.reader(ctx).Model(&models.Account{})
	if f.Approved != nil {
		q = q.Where("is_approved = ?", *f.Approved)
	}
	if f.Role != "" {
		q = q.Where("role = ?", f.Role)
	}
	var accounts []models.Account
	err := f.Page.apply(q.Order("created_at DESC").Order("id DESC"), 200).Find(&accounts).Error
	return accounts, classify(err)
}

// Approve sets is_approved on one account. Approving twice is a no-op.
func (s *Accounts) Approve(ctx context.Context, p types.Principal, id uint64) error {
	return s.setFlag(ctx, p, id, "is_approved", true, "account.approved")
}

// Deactivate clears is_active on one account. Accounts are never deleted.
func (s *Accounts) Deactivate(ctx context.Context, p types.Principal, id uint64) error {
	if id == p.AccountID {
		return types.Invalid("cannot deactivate your own account")
	}
	return s.setFlag(ctx, p, id, "is_active", false, "account.deactivated")
}

func (s *Accounts) setFlag(ctx context.Context, p types.Principal, id uint64, column string, value bool, action string) error {
	if !p.IsAdmin() {
		return types.ErrPermission
	}
	err := database.Transact(ctx, s.DB, func(tx *gorm.DB) error {
		var account models.Account
		if err := tx.Select("id").First(&account, id).Error; err != nil {
			return missing(err, "account", id)
		}
		return tx.Model(&models.Account{}).Where("id = ?", id).Update(column, value).Error
	})
	if err != nil {
		return err
	}
	s.Activity.Record(ctx, p, action, "account", id, nil)
	return nil
}

// AdminInput bootstraps an administrator from the command line.
type AdminInput struct {
	Username  string `json:"username" validate:"required,min=3,max=150,excludesall= /\\"`
	Password  string `json:"password" validate:"required,min=8,max=72"`
	Email     string `json:"email" validate:"omitempty,email,max=255"`
	FirstName string `json:"first_name" validate:"max=100"`
	LastName  string `json:"last_name" validate:"max=100"`
}

// CreateAdmin creates an approved admin account with its own used staff
// identity, bypassing self-registration.
func (s *Accounts) CreateAdmin(ctx context.Context, in AdminInput) (*models.Account, error) {
	in.Username = strings.TrimSpace(in.Username)
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	hash, err := s.hash(in.Password)
	if err != nil {
		return nil, err
	}

	var account *models.Account
	err = database.Transact(ctx, s.DB, func(tx *gorm.DB) error {
		identifier, err := uniqueIdentifier(tx, models.AccountTypeStaff, nil)
		if err != nil {
			return err
		}
		now := s.now()
		rec := &models.IdentityRecord{
			Identifier:  identifier,
			AccountType: models.AccountTypeStaff,
			Status:      models.IdentityActive,
			FirstName:   in.FirstName,
			LastName:    in.LastName,
			Email:       in.Email,
			Notes:       "administrator bootstrap",
		}
		if err := tx.Create(rec).Error; err != nil {
			return err
		}
		account = &models.Account{
			Username:         in.Username,
			PasswordHash:     hash,
			IdentityRecordID: rec.ID,
			Role:             models.RoleAdmin,
			IsApproved:       true,
			IsActive:         true,
			FirstName:        in.FirstName,
			LastName:         in.LastName,
			Email:            in.Email,
		}
		if err := tx.Create(account).Error; err != nil {
			return err
		}
		return tx.Model(rec).Updates(map[string]any{"used_at": now, "used_by_account_id": account.ID}).Error
	})
	if err != nil {
		return nil, err
	}
	s.Activity.Record(ctx, types.System, "account.admin_created", "account", account.ID, nil)
	return account, nil
}

func (s *Accounts) hash(password string) (string, error) {
	cost := s.PasswordCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	b, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(b), nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
