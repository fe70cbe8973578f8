// embed.go
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

// Package data embeds the seed files applied by libraryctl seed.
package data

import (
	_ "embed"
	"encoding/json"
	"fmt"
)

//go:embed seed/categories.json
var SeedCategoriesJSON []byte

// SeedCategory is one entry of seed/categories.json.
type SeedCategory struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// SeedCategories decodes the embedded category list.
func SeedCategories() ([]SeedCategory, error) {
	var out []SeedCategory
	if err := json.Unmarshal(SeedCategoriesJSON, &out); err != nil {
		return nil, fmt.Errorf("decode seed categories: %w", err)
	}
	return out, nil
}
