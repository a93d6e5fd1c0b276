// Copyright 2021 Dalarub & Ettrich GmbH - All Rights Reserved
// Unauthorized copying of this file, via any medium is strictly prohibited
// Proprietary and confidential
// info@dalarub.com
//

package backend

import (
	"net/http"

	"github.com/relabs-tech/jobly/core"
	"github.com/relabs-tech/jobly/core/access"
	"github.com/relabs-tech/jobly/core/models"
	"github.com/relabs-tech/jobly/core/notify"
)

// handleAuth adds the routes which issue tokens
func (b *Backend) handleAuth() {

	// TOKEN for username and password
	b.handle("/auth/token", http.MethodPost, func(w http.ResponseWriter, r *http.Request) {
		var credentials struct {
			Username string `json:"username"`
			Password string `json:"password"`
		}
		if err := b.decode(r, schemaUserAuth, &credentials); err != nil {
			b.fail(w, r, 4601, err)
			return
		}
		user, err := b.store.Users.Authenticate(r.Context(), credentials.Username, credentials.Password)
		if err != nil {
			b.fail(w, r, 4602, err)
			return
		}
		token, err := access.CreateToken(b.secretKey, user.Username, user.IsAdmin)
		if err != nil {
			b.fail(w, r, 4603, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"token": token})
	})

	// REGISTER a new non-admin user, open to everybody
	b.handle("/auth/register", http.MethodPost, func(w http.ResponseWriter, r *http.Request) {
		var data models.UserNew
		if err := b.decode(r, schemaUserRegister, &data); err != nil {
			b.fail(w, r, 4604, err)
			return
		}
		data.IsAdmin = false
		user, err := b.store.Users.Register(r.Context(), data)
		if err != nil {
			b.fail(w, r, 4605, err)
			return
		}
		token, err := access.CreateToken(b.secretKey, user.Username, user.IsAdmin)
		if err != nil {
			b.fail(w, r, 4606, err)
			return
		}
		b.raise(r.Context(), notify.Event{Resource: "user", Operation: core.OperationCreate, Key: user.Username, Payload: user})
		writeJSON(w, http.StatusCreated, map[string]string{"token": token})
	})
}
