// sweep.go
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
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/awilsontelary-hub/Academic-Library/internal/database"
	"github.com/awilsontelary-hub/Academic-Library/internal/models"
	"github.com/awilsontelary-hub/Academic-Library/internal/logging"
	"github.com/awilsontelary-hub/Academic-Library/internal/types"
)

// SweepOverdue marks borrowed records due before now as overdue and returns
// how many changed. Running it again with the same now changes nothing.
// Availability is untouched: an overdue document is still out.
func (l *Ledger) SweepOverdue(ctx context.Context, now time.Time) (int64, error) {
	var swept int64
	err := database.Transact(ctx, l.DB, func(tx *gorm.DB) error {
		res := tx.Model(&models.BorrowRecord{}).
			Where("status = ? AND due_at < ?", models.BorrowBorrowed, now.UTC()).
			Update("status", models.BorrowOverdue)
		swept = res.RowsAffected
		return res.Error
	})
	if err != nil {
		return 0, err
	}

	if swept > 0 {
		overdueSweptTotal.Add(float64(swept))
		l.Cache.Purge()
		l.Activity.Record(ctx, types.System, "borrow.overdue_sweep", "borrow_record", 0, map[string]any{
			"swept": swept,
			"now":   now.UTC(),
		})
		l.log().Info("overdue sweep", zap.Int64("swept", swept))
	}
	return swept, nil
}

// SweepNow runs SweepOverdue at the ledger clock's current time.
func (l *Ledger) SweepNow(ctx context.Context) (int64, error) {
	return l.SweepOverdue(ctx, l.now())
}

// StartSweepSchedule runs SweepOverdue on a cron schedule ("@every 1h",
// "0 2 * * *"). The caller stops the returned cron on shutdown.
func StartSweepSchedule(schedule string, l *Ledger, log *zap.Logger) (*cron.Cron, error) {
	log = logging.OrNop(log)
	c := cron.New()
	_, err := c.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		if _, err := l.SweepNow(ctx); err != nil {
			log.Error("scheduled overdue sweep failed", zap.Error(err))
		}
	})
	if err != nil {
		return nil, fmt.Errorf("invalid sweep schedule %q: %w", schedule, err)
	}
	c.Start()
	log.Info("overdue sweep scheduled", zap.String("schedule", schedule))
	return c, nil
}
