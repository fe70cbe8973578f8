// notify_test.go
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
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestWebhookNotifier(t *testing.T) {
	received := make(chan Event, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		var ev Event
		body, _ := io.ReadAll(r.Body)
		assert.NoError(t, json.Unmarshal(body, &ev))
		received <- ev
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	n := &WebhookNotifier{URL: srv.URL, Timeout: time.Second}
	ev := Event{Type: "borrow.approved", AccountID: 7, BorrowID: 3, At: time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)}
	require.NoError(t, n.Notify(context.Background(), ev))

	got := <-received
	assert.Equal(t, ev.Type, got.Type)
	assert.Equal(t, ev.BorrowID, got.BorrowID)
	assert.True(t, ev.At.Equal(got.At))
}

func TestWebhookNotifierErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	}))
	defer srv.Close()

	err := (&WebhookNotifier{URL: srv.URL}).Notify(context.Background(), Event{Type: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, (&WebhookNotifier{URL: srv.URL}).Notify(ctx, Event{}), context.Canceled)
}

func TestNotifyLogsFailures(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	notify(context.Background(), &recordingNotifier{fail: true}, zap.New(core), Event{Type: "borrow.returned"})
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "borrow.returned", logs.All()[0].ContextMap()["event"])

	notify(context.Background(), nil, zap.New(core), Event{})
	assert.Equal(t, 1, logs.Len())
}
