// activity.go
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

	"go.uber.org/zap"

	"github.com/awilsontelary-hub/Academic-Library/internal/models"
	"github.com/awilsontelary-hub/Academic-Library/internal/types"
)

// Activity appends audit entries. Write failures are logged and swallowed.
type Activity struct {
	Base
}

// Record writes one entry for principal p.
func (a *Activity) Record(ctx context.Context, p types.Principal, action, entityType string, entityID uint64, details any) {
	if a == nil || a.DB == nil {
		return
	}
	entry := models.ActivityLog{
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Details:    models.NewJSON(details),
		CreatedAt:  a.now(),
	}
	if p.AccountID != 0 {
		id := p.AccountID
		entry.AccountID = &id
	}
	if err := a.reader(ctx).Create(&entry).Error; err != nil {
		a.log().Warn("activity log write failed", zap.String("action", action), zap.Uint64("entity_id", entityID), zap.Error(err))
	}
}

// Recent returns the latest entries, newest first.
func (a *Activity) Recent(ctx context.Context, limit int) ([]models.ActivityLog, error) {
	var entries []models.ActivityLog
	err := a.reader(ctx).Order("created_at DESC").Order("id DESC").Limit(clampLimit(limit, 50)).Find(&entries).Error
	return entries, classify(err)
}
