// metrics.go
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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/awilsontelary-hub/Academic-Library/internal/types"
)

var (
	borrowRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "library",
		Name:      "borrow_requests_total",
		Help:      "Borrow requests by outcome.",
	}, []string{"outcome"})

	returnsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "library",
		Name:      "returns_total",
		Help:      "Borrow records returned.",
	})

	overdueSweptTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "library",
		Name:      "overdue_swept_total",
		Help:      "Borrow records moved to overdue by the sweep.",
	})

	uploadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "library",
		Name:      "uploads_total",
		Help:      "Document uploads by outcome.",
	}, []string{"outcome"})

	downloadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "library",
		Name:      "downloads_total",
		Help:      "File retrievals by kind (download, preview).",
	}, []string{"kind"})

	listingCacheTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "library",
		Name:      "listing_cache_requests_total",
		Help:      "Listing cache lookups by result (hit, miss).",
	}, []string{"result"})

	searchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "library",
		Name:      "search_duration_seconds",
		Help:      "Catalog search latency.",
		Buckets:   prometheus.DefBuckets,
	})
)

// outcome label for a ledger or upload error
func outcome(err error) string {
	if err == nil {
		return "ok"
	}
	return types.ErrorType(err)
}
