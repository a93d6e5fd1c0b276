// Copyright 2021 Dalarub & Ettrich GmbH - All Rights Reserved
// Unauthorized copying of this file, via any medium is strictly prohibited
// Proprietary and confidential
// info@dalarub.com
//

/*Package access provides utilities for access control
 */
package access

import (
	"context"

	"github.com/relabs-tech/jobly/core"
)

// contextKey is the type for context keys. Go linter does not like plain strings
type contextKey string

// the predefined context key
const (
	contextKeyAuthorization contextKey = "_authorization_"
)

/*Authorization is a context object which stores authorization information
for the user who sent the request.

An authorization carries the username and whether the user is an administrator.
A request without authorization is anonymous.

Authorizations are added to a request context with

  ctx = access.ContextWithAuthorization(ctx, auth)

and retrieved with

  auth := access.AuthorizationFromContext(ctx)

Authorization objects are added to the context by the JWT middleware, based on
the bearer token of the HTTP request.
*/
type Authorization struct {
	Username string `json:"username"`
	IsAdmin  bool   `json:"isAdmin"`
}

// IsLoggedIn returns true if the authorization belongs to a known user
func (a *Authorization) IsLoggedIn() bool {
	return a != nil && len(a.Username) > 0
}

// IsSelf returns true if the authorization belongs to the user with the given username
func (a *Authorization) IsSelf(username string) bool {
	return a.IsLoggedIn() && a.Username == username
}

// RequireLoggedIn returns an AuthorizationError for anonymous requests
func (a *Authorization) RequireLoggedIn() error {
	if !a.IsLoggedIn() {
		return core.NewAuthorizationError("Unauthorized")
	}
	return nil
}

// RequireAdmin returns an AuthorizationError unless the authorization belongs to an administrator
func (a *Authorization) RequireAdmin() error {
	if !a.IsLoggedIn() || !a.IsAdmin {
		return core.NewAuthorizationError("Unauthorized")
	}
	return nil
}

// RequireAdminOrSelf returns an AuthorizationError unless the authorization belongs to an
// administrator or to the user with the given username
func (a *Authorization) RequireAdminOrSelf(username string) error {
	if !a.IsLoggedIn() || !(a.IsAdmin || a.Username == username) {
		return core.NewAuthorizationError("Unauthorized")
	}
	return nil
}

// ContextWithAuthorization returns a new context with this authorization added to it
func ContextWithAuthorization(ctx context.Context, a *Authorization) context.Context {
	return context.WithValue(ctx, contextKeyAuthorization, a)
}

// AuthorizationFromContext retrieves an authorization from the context. It returns
// nil for anonymous requests; all methods of Authorization accept a nil receiver.
func AuthorizationFromContext(ctx context.Context) *Authorization {
	a, ok := ctx.Value(contextKeyAuthorization).(*Authorization)
	if ok {
		return a
	}
	return nil
}
