// reviews.go
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
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/awilsontelary-hub/Academic-Library/internal/database"
	"github.com/awilsontelary-hub/Academic-Library/internal/models"
	"github.com/awilsontelary-hub/Academic-Library/internal/types"
)

// Reviews handles document ratings and staff recommendations.
type Reviews struct {
	Base
	Activity *Activity
}

// ReviewInput is one rating.
type ReviewInput struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"max=2000"`
}

// ReviewSummary is a page of reviews and the document's average rating.
type ReviewSummary struct {
	Items   []models.Review `json:"items"`
	Count   int64           `json:"count"`
	Average float64         `json:"average"`
}

// Submit creates or replaces p's review of document.
func (s *Reviews) Submit(ctx context.Context, p types.Principal, documentID uint64, in ReviewInput) (*models.Review, error) {
	if !p.IsApproved {
		return nil, types.ErrNotApproved
	}
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	review := &models.Review{
		DocumentID: documentID,
		AccountID:  p.AccountID,
		Rating:     in.Rating,
		Comment:    strings.TrimSpace(in.Comment),
	}
	err := database.Transact(ctx, s.DB, func(tx *gorm.DB) error {
		if err := tx.Select("id").First(&models.Document{}, documentID).Error; err != nil {
			return missing(err, "document", documentID)
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "document_id"}, {Name: "account_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"rating", "comment", "updated_at"}),
		}).Create(review).Error; err != nil {
			return err
		}
		*review = models.Review{}
		return tx.Where("document_id = ? AND account_id = ?", documentID, p.AccountID).Take(review).Error
	})
	if err != nil {
		return nil, err
	}
	s.Activity.Record(ctx, p, "review.submitted", "document", documentID, map[string]any{"rating": in.Rating})
	return review, nil
}

// ForDocument lists reviews newest first with the average rating.
func (s *Reviews) ForDocument(ctx context.Context, documentID uint64, page Page) (*ReviewSummary, error) {
	var agg struct {
		Count   int64
		Average float64
	}
	if err := s.reader(ctx).Model(&models.Review{}).
		Select("COUNT(*) AS count, COALESCE(AVG(rating), 0) AS average").
		Where("document_id = ?", documentID).
		Scan(&agg).Error; err != nil {
		return nil, classify(err)
	}
	out := &ReviewSummary{Count: agg.Count, Average: agg.Average}
	err := page.apply(s.reader(ctx).Where("document_id = ?", documentID).
		Order("updated_at DESC").Order("id DESC"), 100).
		Find(&out.Items).Error
	return out, classify(err)
}

// RecommendationInput points students at a document.
type RecommendationInput struct {
	Message string `json:"message" validate:"max=1000"`
}

// Recommend records a staff recommendation of document.
func (s *Reviews) Recommend(ctx context.Context, p types.Principal, documentID uint64, in RecommendationInput) (*models.Recommendation, error) {
	if err := requireStaff(p); err != nil {
		return nil, err
	}
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	rec := &models.Recommendation{
		DocumentID:    documentID,
		RecommenderID: p.AccountID,
		Message:       strings.TrimSpace(in.Message),
		CreatedAt:     s.now(),
	}
	err := database.Transact(ctx, s.DB, func(tx *gorm.DB) error {
		if err := tx.Select("id").First(&models.Document{}, documentID).Error; err != nil {
			return missing(err, "document", documentID)
		}
		return tx.Create(rec).Error
	})
	if err != nil {
		return nil, err
	}
	s.Activity.Record(ctx, p, "document.recommended", "document", documentID, nil)
	return rec, nil
}

// Recommendations lists recent recommendations newest first, optionally for
// one document.
func (s *Reviews) Recommendations(ctx context.Context, documentID uint64, page Page) ([]models.Recommendation, error) {
	q := s.reader(ctx).Model(&models.Recommendation{})
	if documentID != 0 {
		q = q.Where("document_id = ?", documentID)
	}
	var recs []models.Recommendation
	err := page.apply(q.Order("created_at DESC").Order("id DESC"), 100).Find(&recs).Error
	return recs, classify(err)
}
