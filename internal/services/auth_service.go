// auth_service.go
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
	"encoding/json"
	"fmt"
	"sync"

	authorizer "github.com/localnerve/authorizer-go"
	"go.uber.org/zap"

	"github.com/awilsontelary-hub/Academic-Library/internal/types"
	"github.com/awilsontelary-hub/Academic-Library/internal/utils"
)

// SessionValidator resolves an external session cookie to the email of the
// signed-in user.
type SessionValidator interface {
	ValidateSession(cookie string) (string, error)
}

// Authorizer validates sessions against an Authorizer service. The client is
// created lazily on first use.
type Authorizer struct {
	URL         string
	ClientID    string
	RedirectURL string
	Log         *zap.Logger

	once    sync.Once
	client  *authorizer.AuthorizerClient
	initErr error
}

// Initialized reports whether the client has been created.
func (a *Authorizer) Initialized() bool {
	return a.client != nil
}

func (a *Authorizer) init() error {
	a.once.Do(func() {
		if err := utils.PingAuthorizer(a.URL); err != nil {
			a.initErr = fmt.Errorf("authorizer ping failed: %w", err)
			return
		}
		if a.Log != nil {
			a.Log.Info("initializing authorizer",
				zap.String("url", a.URL),
				zap.String("client_id", a.ClientID),
				zap.String("redirect_url", a.RedirectURL))
		}
		client, err := authorizer.NewAuthorizerClient(a.ClientID, a.URL, a.RedirectURL, nil)
		if err != nil {
			a.initErr = fmt.Errorf("failed to create authorizer client: %w", err)
			return
		}
		a.client = client
	})
	return a.initErr
}

// ValidateSession returns the email of the session owner.
func (a *Authorizer) ValidateSession(cookie string) (string, error) {
	if cookie == "" {
		return "", types.ErrUnauthenticated
	}
	if err := a.init(); err != nil {
		return "", types.Infrastructure(err)
	}

	res, err := a.client.ValidateSession(&authorizer.ValidateSessionInput{Cookie: cookie})
	if err != nil {
		return "", fmt.Errorf("%w: session validation failed: %v", types.ErrUnauthenticated, err)
	}
	if res == nil || !res.IsValid {
		return "", fmt.Errorf("%w: session is not valid", types.ErrUnauthenticated)
	}
	return sessionEmail(res.User)
}

// sessionEmail reads the email out of the SDK's user object.
func sessionEmail(user any) (string, error) {
	raw, err := json.Marshal(user)
	if err != nil {
		return "", fmt.Errorf("%w: %v", types.ErrUnauthenticated, err)
	}
	var u struct {
		Email string `json:"email"`
	}
	if err := json.Unmarshal(raw, &u); err != nil || u.Email == "" {
		return "", fmt.Errorf("%w: session has no email", types.ErrUnauthenticated)
	}
	return u.Email, nil
}
