// categories.go
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
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/awilsontelary-hub/Academic-Library/internal/database"
	"github.com/awilsontelary-hub/Academic-Library/internal/models"
	"github.com/awilsontelary-hub/Academic-Library/internal/types"
)

// Categories manages the document categories.
type Categories struct {
	Base
	Activity *Activity
	Cache    *ListingCache
}

// CategoryInput creates or renames a category.
type CategoryInput struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description" validate:"max=1000"`
}

// List returns every category by name.
func (s *Categories) List(ctx context.Context) ([]models.Category, error) {
	var cats []models.Category
	err := s.reader(ctx).Order("name ASC").Find(&cats).Error
	return cats, classify(err)
}

// Create adds a category. Duplicate names fail with ErrConflict.
func (s *Categories) Create(ctx context.Context, p types.Principal, in CategoryInput) (*models.Category, error) {
	if err := requireStaff(p); err != nil {
		return nil, err
	}
	in.Name = strings.TrimSpace(in.Name)
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	cat := &models.Category{Name: in.Name, Description: strings.TrimSpace(in.Description)}
	if err := database.Transact(ctx, s.DB, func(tx *gorm.DB) error {
		return tx.Create(cat).Error
	}); err != nil {
		return nil, err
	}
	s.Activity.Record(ctx, p, "category.created", "category", cat.ID, map[string]any{"name": cat.Name})
	return cat, nil
}

// Update renames or re-describes a category.
func (s *Categories) Update(ctx context.Context, p types.Principal, id uint64, in CategoryInput) (*models.Category, error) {
	if err := requireStaff(p); err != nil {
		return nil, err
	}
	in.Name = strings.TrimSpace(in.Name)
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	var cat models.Category
	err := database.Transact(ctx, s.DB, func(tx *gorm.DB) error {
		if err := database.ForUpdate(tx).First(&cat, id).Error; err != nil {
			return missing(err, "category", id)
		}
		cat.Name = in.Name
		cat.Description = strings.TrimSpace(in.Description)
		return tx.Save(&cat).Error
	})
	if err != nil {
		return nil, err
	}
	s.Activity.Record(ctx, p, "category.updated", "category", cat.ID, map[string]any{"name": cat.Name})
	return &cat, nil
}

// Delete removes a category that no document references.
func (s *Categories) Delete(ctx context.Context, p types.Principal, id uint64) error {
	if err := requireStaff(p); err != nil {
		return err
	}
	err := database.Transact(ctx, s.DB, func(tx *gorm.DB) error {
		var cat models.Category
		if err := database.ForUpdate(tx).First(&cat, id).Error; err != nil {
			return missing(err, "category", id)
		}
		var docs int64
		if err := tx.Model(&models.Document{}).Where("category_id = ?", id).Count(&docs).Error; err != nil {
			return err
		}
		if docs > 0 {
			return fmt.Errorf("%w: category has %d documents", types.ErrConflict, docs)
		}
		return tx.Delete(&cat).Error
	})
	if err != nil {
		return err
	}
	s.Cache.Purge()
	s.Activity.Record(ctx, p, "category.deleted", "category", id, nil)
	return nil
}

// Seed inserts the given categories, skipping names that already exist.
// It returns the number inserted.
func (s *Categories) Seed(ctx context.Context, seed []CategoryInput) (int64, error) {
	cats := make([]models.Category, 0, len(seed))
	for _, in := range seed {
		in.Name = strings.TrimSpace(in.Name)
		if err := validateStruct(in); err != nil {
			return 0, err
		}
		cats = append(cats, models.Category{Name: in.Name, Description: in.Description})
	}
	if len(cats) == 0 {
		return 0, nil
	}
	var inserted int64
	err := database.Transact(ctx, s.DB, func(tx *gorm.DB) error {
		res := tx.Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "name"}}, DoNothing: true}).Create(&cats)
		inserted = res.RowsAffected
		return res.Error
	})
	return inserted, err
}
