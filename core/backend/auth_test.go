// Copyright 2021 Dalarub & Ettrich GmbH - All Rights Reserved
// Unauthorized copying of this file, via any medium is strictly prohibited
// Proprietary and confidential
// info@dalarub.com
//

package backend_test

import (
	"net/http"
	"testing"

	"github.com/relabs-tech/jobly/core/access"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type tokenResponse struct {
	Token string `json:"token"`
}

func TestAuthToken(t *testing.T) {
	f := newFixture(t)

	var result tokenResponse
	status, err := f.anon.RawPost("/auth/token", map[string]string{"username": "u1", "password": "password1"}, &result)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, status)

	auth, err := access.ParseToken(testSecret, result.Token)
	require.NoError(t, err)
	assert.Equal(t, "u1", auth.Username)
	assert.True(t, auth.IsAdmin)

	// the token works with the protected routes
	_, err = f.anon.WithToken(result.Token).RawGet("/users", nil)
	require.NoError(t, err)

	status, _ = f.anon.RawPost("/auth/token", map[string]string{"username": "u1", "password": "wrong"}, nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = f.anon.RawPost("/auth/token", map[string]string{"username": "nope", "password": "password1"}, nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = f.anon.RawPost("/auth/token", map[string]string{"username": "u1"}, nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestAuthRegister(t *testing.T) {
	f := newFixture(t)

	user := map[string]interface{}{
		"username":  "new",
		"firstName": "first",
		"lastName":  "last",
		"password":  "password",
		"email":     "new@email.com",
	}
	var result tokenResponse
	status, err := f.anon.RawPost("/auth/register", user, &result)
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, status)

	auth, err := access.ParseToken(testSecret, result.Token)
	require.NoError(t, err)
	assert.Equal(t, "new", auth.Username)
	assert.False(t, auth.IsAdmin)

	status, _ = f.anon.RawPost("/auth/register", user, nil)
	assert.Equal(t, http.StatusBadRequest, status)

	// registration cannot create administrators
	user["username"] = "new2"
	user["isAdmin"] = true
	status, _ = f.anon.RawPost("/auth/register", user, nil)
	assert.Equal(t, http.StatusBadRequest, status)

	// a token for an invalid signature is anonymous
	status, _ = f.anon.WithToken("invalid").RawGet("/users/new", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}
