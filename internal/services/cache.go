// cache.go
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
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/awilsontelary-hub/Academic-Library/internal/models"
)

// ListingCache is a read-through cache for popular and default listings.
// Entries live at most ttl; every borrow, return, upload and delete purges it,
// so a reader sees data at most ttl old only when a write bypassed this process.
// A nil *ListingCache is valid and caches nothing.
type ListingCache struct {
	lru *expirable.LRU[string, []models.Document]
}

// NewListingCache returns nil when size or ttl is not positive.
func NewListingCache(size int, ttl time.Duration) *ListingCache {
	if size <= 0 || ttl <= 0 {
		return nil
	}
	return &ListingCache{lru: expirable.NewLRU[string, []models.Document](size, nil, ttl)}
}

// Get returns a copy of the cached listing for key.
func (c *ListingCache) Get(key string) ([]models.Document, bool) {
	if c == nil {
		return nil, false
	}
	docs, ok := c.lru.Get(key)
	if !ok {
		listingCacheTotal.WithLabelValues("miss").Inc()
		return nil, false
	}
	listingCacheTotal.WithLabelValues("hit").Inc()
	return append([]models.Document(nil), docs...), true
}

// Add stores a copy of docs under key.
func (c *ListingCache) Add(key string, docs []models.Document) {
	if c == nil {
		return
	}
	c.lru.Add(key, append([]models.Document(nil), docs...))
}

// Purge drops every entry.
func (c *ListingCache) Purge() {
	if c == nil {
		return
	}
	c.lru.Purge()
}

// Len is the number of live entries.
func (c *ListingCache) Len() int {
	if c == nil {
		return 0
	}
	return c.lru.Len()
}
