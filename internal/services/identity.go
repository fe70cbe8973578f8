// identity.go
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
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/awilsontelary-hub/Academic-Library/internal/database"
	"github.com/awilsontelary-hub/Academic-Library/internal/models"
	"github.com/awilsontelary-hub/Academic-Library/internal/types"
)

const (
	generatedDigits  = 7
	generateAttempts = 20
)

// Identities is the registry of pre-issued institutional identifiers.
// Records are never hard-deleted; revocation is terminal.
type Identities struct {
	Base
	Activity *Activity
}

// IdentityInput pre-registers one identifier.
type IdentityInput struct {
	Identifier    string                `json:"identifier" validate:"required,numeric,min=4,max=20"`
	AccountType   models.AccountType    `json:"account_type" validate:"required,oneof=student staff"`
	Status        models.IdentityStatus `json:"status" validate:"omitempty,oneof=pending active"`
	AcademicLevel string                `json:"academic_level" validate:"max=40"`
	Department    string                `json:"department" validate:"max=120"`
	FirstName     string                `json:"first_name" validate:"max=100"`
	LastName      string                `json:"last_name" validate:"max=100"`
	Email         string                `json:"email" validate:"omitempty,email,max=255"`
	Phone         string                `json:"phone" validate:"max=40"`
	Notes         string                `json:"notes" validate:"max=500"`
	ExpiresAt     *time.Time            `json:"expires_at"`
}

func (in IdentityInput) record(addedBy uint64) *models.IdentityRecord {
	status := in.Status
	if status == "" {
		status = models.IdentityPending
	}
	rec := &models.IdentityRecord{
		Identifier:    strings.TrimSpace(in.Identifier),
		AccountType:   in.AccountType,
		Status:        status,
		AcademicLevel: strings.TrimSpace(in.AcademicLevel),
		Department:    strings.TrimSpace(in.Department),
		FirstName:     strings.TrimSpace(in.FirstName),
		LastName:      strings.TrimSpace(in.LastName),
		Email:         strings.TrimSpace(in.Email),
		Phone:         strings.TrimSpace(in.Phone),
		Notes:         strings.TrimSpace(in.Notes),
		ExpiresAt:     in.ExpiresAt,
	}
	if addedBy != 0 {
		rec.AddedByID = &addedBy
	}
	return rec
}

// Create pre-registers an identifier. Duplicates fail with ErrConflict.
func (s *Identities) Create(ctx context.Context, p types.Principal, in IdentityInput) (*models.IdentityRecord, error) {
	if !p.IsAdmin() {
		return nil, types.ErrPermission
	}
	in.Identifier = strings.TrimSpace(in.Identifier)
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	rec := in.record(p.AccountID)
	if err := database.Transact(ctx, s.DB, func(tx *gorm.DB) error {
		return tx.Create(rec).Error
	}); err != nil {
		return nil, err
	}
	s.Activity.Record(ctx, p, "identity.created", "identity_record", rec.ID, map[string]any{"identifier": rec.Identifier})
	return rec, nil
}

// Get loads a record by id.
func (s *Identities) Get(ctx context.Context, id uint64) (*models.IdentityRecord, error) {
	var rec models.IdentityRecord
	if err := s.reader(ctx).First(&rec, id).Error; err != nil {
		return nil, classify(missing(err, "identity", id))
	}
	return &rec, nil
}

// Lookup loads a record by identifier.
func (s *Identities) Lookup(ctx context.Context, identifier string) (*models.IdentityRecord, error) {
	var rec models.IdentityRecord
	identifier = strings.TrimSpace(identifier)
	if err := s.reader(ctx).Where("identifier = ?", identifier).First(&rec).Error; err != nil {
		return nil, classify(missing(err, "identity", identifier))
	}
	return &rec, nil
}

// IdentityFilter narrows List.
type IdentityFilter struct {
	Status      models.IdentityStatus
	AccountType models.AccountType
	Unused      bool
	Page
}

// List returns records newest first.
func (s *Identities) List(ctx context.Context, f IdentityFilter) ([]models.IdentityRecord, error) {
	q := s.reader(ctx).Model(&models.IdentityRecord{})
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.AccountType != "" {
		q = q.Where("account_type = ?", f.AccountType)
	}
	if f.Unused {
		q = q.Where("used_at IS NULL")
	}
	var recs []models.IdentityRecord
	err := f.Page.apply(q.Order("created_at DESC").Order("id DESC"), 500).Find(&recs).Error
	return recs, classify(err)
}

// Transition moves a record forward. Backward moves such as active -> pending
// fail with ErrInvalidTransition.
func (s *Identities) Transition(ctx context.Context, p types.Principal, id uint64, next models.IdentityStatus) (*models.IdentityRecord, error) {
	if !p.IsAdmin() {
		return nil, types.ErrPermission
	}
	var rec models.IdentityRecord
	err := database.Transact(ctx, s.DB, func(tx *gorm.DB) error {
		if err := database.ForUpdate(tx).First(&rec, id).Error; err != nil {
			return missing(err, "identity", id)
		}
		if !rec.Status.CanTransition(next) {
			return fmt.Errorf("%w: identity %s -> %s", types.ErrInvalidTransition, rec.Status, next)
		}
		res := tx.Model(&models.IdentityRecord{}).
			Where("id = ? AND status = ?", rec.ID, rec.Status).
			Update("status", next)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return types.ErrInvalidTransition
		}
		rec.Status = next
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.Activity.Record(ctx, p, "identity."+string(next), "identity_record", rec.ID, nil)
	return &rec, nil
}

// GenerateInput asks for count fresh identifiers.
type GenerateInput struct {
	Count         int                `json:"count" validate:"required,min=1,max=100"`
	AccountType   models.AccountType `json:"account_type" validate:"required,oneof=student staff"`
	AcademicLevel string             `json:"academic_level" validate:"max=40"`
	Department    string             `json:"department" validate:"max=120"`
	ExpiresAt     *time.Time         `json:"expires_at"`
}

// Generate creates count active identifiers: the account type prefix
// (2 student, 3 staff) followed by 7 random digits.
func (s *Identities) Generate(ctx context.Context, p types.Principal, in GenerateInput) ([]models.IdentityRecord, error) {
	if !p.IsAdmin() {
		return nil, types.ErrPermission
	}
	if err := validateStruct(in); err != nil {
		return nil, err
	}

	var created []models.IdentityRecord
	err := database.Transact(ctx, s.DB, func(tx *gorm.DB) error {
		created = created[:0]
		taken := make(map[string]struct{}, in.Count)
		for len(created) < in.Count {
			id, err := uniqueIdentifier(tx, in.AccountType, taken)
			if err != nil {
				return err
			}
			taken[id] = struct{}{}
			rec := IdentityInput{
				Identifier:    id,
				AccountType:   in.AccountType,
				Status:        models.IdentityActive,
				AcademicLevel: in.AcademicLevel,
				Department:    in.Department,
				ExpiresAt:     in.ExpiresAt,
			}.record(p.AccountID)
			if err := tx.Create(rec).Error; err != nil {
				return err
			}
			created = append(created, *rec)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.Activity.Record(ctx, p, "identity.generated", "identity_record", 0, map[string]any{
		"count":        len(created),
		"account_type": in.AccountType,
	})
	s.log().Info("identities generated", zap.Int("count", len(created)), zap.String("account_type", string(in.AccountType)))
	return created, nil
}

func uniqueIdentifier(tx *gorm.DB, t models.AccountType, taken map[string]struct{}) (string, error) {
	for range generateAttempts {
		id, err := NewIdentifier(t)
		if err != nil {
			return "", err
		}
		if _, dup := taken[id]; dup {
			continue
		}
		var n int64
		if err := tx.Model(&models.IdentityRecord{}).Where("identifier = ?", id).Count(&n).Error; err != nil {
			return "", err
		}
		if n == 0 {
			return id, nil
		}
	}
	return "", fmt.Errorf("%w: identifier space exhausted", types.ErrConflict)
}

// NewIdentifier returns a random identifier for account type t.
func NewIdentifier(t models.AccountType) (string, error) {
	limit := big.NewInt(10_000_000)
	n, err := rand.Int(rand.Reader, limit)
	if err != nil {
		return "", fmt.Errorf("random identifier: %w", err)
	}
	return fmt.Sprintf("%s%0*d", t.IdentifierPrefix(), generatedDigits, n.Int64()), nil
}
