// Copyright 2021 Dalarub & Ettrich GmbH - All Rights Reserved
// Unauthorized copying of this file, via any medium is strictly prohibited
// Proprietary and confidential
// info@dalarub.com
//

package access

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/gorilla/mux"
	"github.com/relabs-tech/jobly/core/logger"
)

// CookieName is the name of the cookie which may carry the token instead of the
// Authorization header
const CookieName = "Jobly-JWT"

// Claims are the claims of a jobly token
type Claims struct {
	Username string `json:"username"`
	IsAdmin  bool   `json:"isAdmin"`
	jwt.RegisteredClaims
}

// CreateToken returns a signed HS256 token for the user
func CreateToken(secretKey []byte, username string, isAdmin bool) (string, error) {
	claims := Claims{
		Username: username,
		IsAdmin:  isAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(time.Now()),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secretKey)
}

// ParseToken verifies the token and returns the authorization it carries
func ParseToken(secretKey []byte, tokenString string) (*Authorization, error) {
	claims := Claims{}
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return secretKey, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid || len(claims.Username) == 0 {
		return nil, fmt.Errorf("invalid token")
	}
	return &Authorization{Username: claims.Username, IsAdmin: claims.IsAdmin}, nil
}

// JwtMiddlewareBuilder is a helper builder for JwtMiddelware
type JwtMiddlewareBuilder struct {
	// SecretKey is the HS256 key the tokens are signed with
	SecretKey []byte
}

// NewJwtMiddelware returns a middleware handler to validate
// JWT bearer token.
//
// Java-Web-Token (JWT) are accepted as "Authorization: Bearer"
// header or as "Jobly-JWT"-cookie.
//
// The middleware never rejects a request. A valid token adds an authorization
// to the request context, a missing or invalid token leaves the request anonymous.
// The route handlers decide which authorization they require.
func NewJwtMiddelware(jmb *JwtMiddlewareBuilder) mux.MiddlewareFunc {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if auth := AuthorizationFromContext(r.Context()); auth != nil { // already authorized?
				h.ServeHTTP(w, r)
				return
			}

			tokenString := ""
			bearer := r.Header.Get("Authorization")
			if len(bearer) > 0 && bearer != "null" {
				if len(bearer) >= 8 && strings.ToLower(bearer[:7]) == "bearer " {
					tokenString = strings.TrimSpace(bearer[7:])
				} else {
					tokenString = bearer
				}
			} else if cookie, _ := r.Cookie(CookieName); cookie != nil {
				tokenString = cookie.Value
			}
			if len(tokenString) == 0 {
				h.ServeHTTP(w, r) // no token no auth, moving on
				return
			}

			auth, err := ParseToken(jmb.SecretKey, tokenString)
			if err != nil {
				logger.FromContext(r.Context()).WithError(err).Debugln("ignoring invalid token")
				h.ServeHTTP(w, r)
				return
			}

			ctx := ContextWithAuthorization(r.Context(), auth)
			ctx, _ = logger.ContextWithLoggerIdentity(ctx, auth.Username)
			h.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
