// notify.go
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
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/awilsontelary-hub/Academic-Library/internal/logging"
)

// Event is an outbound notification about a ledger change.
type Event struct {
	Type       string    `json:"type"`
	AccountID  uint64    `json:"account_id"`
	DocumentID uint64    `json:"document_id,omitempty"`
	BorrowID   uint64    `json:"borrow_id,omitempty"`
	Status     string    `json:"status,omitempty"`
	DueAt      time.Time `json:"due_at,omitzero"`
	At         time.Time `json:"at"`
}

// Notifier delivers events. Failures are reported, never retried.
type Notifier interface {
	Notify(ctx context.Context, ev Event) error
}

// WebhookNotifier POSTs events as JSON to URL.
type WebhookNotifier struct {
	URL     string
	Timeout time.Duration
}

// Notify sends ev and treats any non-2xx answer as an error.
func (w *WebhookNotifier) Notify(ctx context.Context, ev Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	timeout := w.Timeout
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	code, body, errs := fiber.Post(w.URL).JSON(ev).Timeout(timeout).Bytes()
	if len(errs) > 0 {
		return fmt.Errorf("webhook: %w", errors.Join(errs...))
	}
	if code < 200 || code > 299 {
		return fmt.Errorf("webhook: status %d: %.200s", code, body)
	}
	return nil
}

// notify delivers ev when a notifier is configured, logging failures.
func notify(ctx context.Context, n Notifier, log *zap.Logger, ev Event) {
	if n == nil {
		return
	}
	if err := n.Notify(ctx, ev); err != nil {
		logging.OrNop(log).Warn("notification failed", zap.String("event", ev.Type), zap.Error(err))
	}
}
