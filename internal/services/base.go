// base.go
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
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/awilsontelary-hub/Academic-Library/internal/config"
	"github.com/awilsontelary-hub/Academic-Library/internal/database"
	"github.com/awilsontelary-hub/Academic-Library/internal/logging"
	"github.com/awilsontelary-hub/Academic-Library/internal/types"
	"github.com/awilsontelary-hub/Academic-Library/internal/utils"
)

// Base carries the collaborators shared by every service.
type Base struct {
	DB    *gorm.DB
	Log   *zap.Logger
	Clock func() time.Time
}

func (b *Base) now() time.Time {
	if b.Clock != nil {
		return b.Clock().UTC()
	}
	return time.Now().UTC()
}

func (b *Base) log() *zap.Logger {
	return logging.OrNop(b.Log)
}

// reader is a context-bound session with SQL logging silenced.
func (b *Base) reader(ctx context.Context) *gorm.DB {
	return b.DB.WithContext(ctx).Session(&gorm.Session{Logger: b.DB.Logger.LogMode(logger.Silent)})
}

// Policy holds the borrowing rules.
type Policy struct {
	LoanPeriod               time.Duration
	MaxConcurrentBorrows     int
	ApprovalMode             string
	OverdueCountsTowardLimit bool
}

// DefaultPolicy is a 14 day loan, 3 open borrows, staff approval for students.
func DefaultPolicy() Policy {
	return Policy{
		LoanPeriod:               14 * 24 * time.Hour,
		MaxConcurrentBorrows:     3,
		ApprovalMode:             config.ApprovalStaff,
		OverdueCountsTowardLimit: true,
	}
}

// PolicyFromConfig copies the borrowing rules from cfg.
func PolicyFromConfig(cfg *config.Config) Policy {
	return Policy{
		LoanPeriod:               cfg.LoanPeriod,
		MaxConcurrentBorrows:     cfg.MaxConcurrentBorrows,
		ApprovalMode:             cfg.BorrowApprovalMode,
		OverdueCountsTowardLimit: cfg.OverdueCountsTowardLimit,
	}
}

func validateStruct(v any) error {
	return utils.Validate(v)
}

func classify(err error) error {
	return database.Classify(err)
}

// missing turns gorm.ErrRecordNotFound into a NotFoundError for entity.
func missing(err error, entity string, key any) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return types.NotFound(entity, key)
	}
	return err
}

func clampLimit(limit, max int) int {
	if limit <= 0 || limit > max {
		return max
	}
	return limit
}

// Page selects a window of a listing. Page numbers start at 1.
type Page struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func (p Page) apply(q *gorm.DB, maxLimit int) *gorm.DB {
	limit := clampLimit(p.Limit, maxLimit)
	page := max(p.Page, 1)
	return q.Limit(limit).Offset((page - 1) * limit)
}
