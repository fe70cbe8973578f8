// stats.go
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
	"time"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
	"gorm.io/hints"

	"github.com/awilsontelary-hub/Academic-Library/internal/models"
	"github.com/awilsontelary-hub/Academic-Library/internal/types"
)

const (
	statsTop    = 5
	statsRecent = 10
	statsWindow = 30 * 24 * time.Hour
)

// Stats computes the administrator dashboard figures.
type Stats struct {
	Base
}

// CategoryCount is a category and its document count.
type CategoryCount struct {
	ID        uint64 `json:"id"`
	Name      string `json:"name"`
	Documents int64  `json:"documents"`
}

// Statistics is the dashboard snapshot.
type Statistics struct {
	Documents        int64                 `json:"documents"`
	Available        int64                 `json:"available"`
	Accounts         int64                 `json:"accounts"`
	PendingAccounts  int64                 `json:"pending_accounts"`
	AccountsByRole   map[models.Role]int64 `json:"accounts_by_role"`
	Downloads        int64                 `json:"downloads"`
	RecentDownloads  int64                 `json:"downloads_last_30_days"`
	Borrows          int64                 `json:"borrows"`
	OpenBorrows      int64                 `json:"open_borrows"`
	OverdueBorrows   int64                 `json:"overdue_borrows"`
	PendingBorrows   int64                 `json:"pending_borrows"`
	TopCategories    []CategoryCount       `json:"top_categories"`
	MostDownloaded   []models.Document     `json:"most_downloaded"`
	RecentBorrowList []models.BorrowRecord `json:"recent_borrows"`
	GeneratedAt      time.Time             `json:"generated_at"`
}

// Collect computes the snapshot. Staff only.
func (s *Stats) Collect(ctx context.Context, p types.Principal) (*Statistics, error) {
	if err := requireStaff(p); err != nil {
		return nil, err
	}
	now := s.now()
	out := &Statistics{AccountsByRole: map[models.Role]int64{}, GeneratedAt: now}

	db := func() *gorm.DB {
		return s.reader(ctx).Clauses(hints.Comment("select", "admin_statistics"))
	}
	count := func(model any, dst *int64, where ...any) func() error {
		return func() error {
			q := db().Model(model)
			if len(where) > 0 {
				q = q.Where(where[0], where[1:]...)
			}
			return q.Count(dst).Error
		}
	}

	var g errgroup.Group
	g.Go(count(&models.Document{}, &out.Documents))
	g.Go(count(&models.Document{}, &out.Available, "is_available = ?", true))
	g.Go(count(&models.Account{}, &out.Accounts))
	g.Go(count(&models.Account{}, &out.PendingAccounts, "is_approved = ? AND is_active = ?", false, true))
	g.Go(count(&models.DownloadEvent{}, &out.Downloads))
	g.Go(count(&models.DownloadEvent{}, &out.RecentDownloads, "created_at >= ?", now.Add(-statsWindow)))
	g.Go(count(&models.BorrowRecord{}, &out.Borrows))
	g.Go(count(&models.BorrowRecord{}, &out.OpenBorrows, "status IN ?", models.OpenStatuses))
	g.Go(count(&models.BorrowRecord{}, &out.OverdueBorrows, "status = ?", models.BorrowOverdue))
	g.Go(count(&models.BorrowRecord{}, &out.PendingBorrows, "status = ?", models.BorrowPending))

	var roles []struct {
		Role  models.Role
		Count int64
	}
	g.Go(func() error {
		return db().Model(&models.Account{}).Select("role, COUNT(*) AS count").Group("role").Scan(&roles).Error
	})
	g.Go(func() error {
		return db().Model(&models.Category{}).
			Select("categories.id, categories.name, COUNT(documents.id) AS documents").
			Joins("LEFT JOIN documents ON documents.category_id = categories.id AND documents.deleted_at IS NULL").
			Group("categories.id, categories.name").
			Order("documents DESC").Order("categories.name ASC").
			Limit(statsTop).
			Scan(&out.TopCategories).Error
	})
	g.Go(func() error {
		return db().Order("download_count DESC").Order("title ASC").Limit(statsTop).Find(&out.MostDownloaded).Error
	})
	g.Go(func() error {
		return db().Order("requested_at DESC").Order("id DESC").Limit(statsRecent).Find(&out.RecentBorrowList).Error
	})

	if err := g.Wait(); err != nil {
		return nil, classify(err)
	}
	for _, r := range roles {
		out.AccountsByRole[r.Role] = r.Count
	}
	return out, nil
}
