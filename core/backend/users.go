// Copyright 2021 Dalarub & Ettrich GmbH - All Rights Reserved
// Unauthorized copying of this file, via any medium is strictly prohibited
// Proprietary and confidential
// info@dalarub.com
//

package backend

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/relabs-tech/jobly/core"
	"github.com/relabs-tech/jobly/core/access"
	"github.com/relabs-tech/jobly/core/models"
	"github.com/relabs-tech/jobly/core/notify"
)

func (b *Backend) handleUsers() {

	// CREATE, admins only. Unlike /auth/register, this can create administrators.
	b.handle("/users", http.MethodPost, func(w http.ResponseWriter, r *http.Request) {
		if err := access.AuthorizationFromContext(r.Context()).RequireAdmin(); err != nil {
			b.fail(w, r, 4501, err)
			return
		}
		var data models.UserNew
		if err := b.decode(r, schemaUserNew, &data); err != nil {
			b.fail(w, r, 4502, err)
			return
		}
		user, err := b.store.Users.Register(r.Context(), data)
		if err != nil {
			b.fail(w, r, 4503, err)
			return
		}
		token, err := access.CreateToken(b.secretKey, user.Username, user.IsAdmin)
		if err != nil {
			b.fail(w, r, 4504, err)
			return
		}
		b.raise(r.Context(), notify.Event{Resource: "user", Operation: core.OperationCreate, Key: user.Username, Payload: user})
		writeJSON(w, http.StatusCreated, map[string]interface{}{"user": user, "token": token})
	})

	// LIST
	b.handle("/users", http.MethodGet, func(w http.ResponseWriter, r *http.Request) {
		if err := access.AuthorizationFromContext(r.Context()).RequireAdmin(); err != nil {
			b.fail(w, r, 4505, err)
			return
		}
		users, err := b.store.Users.FindAll(r.Context())
		if err != nil {
			b.fail(w, r, 4506, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{"users": users})
	})

	// READ
	b.handle("/users/{username}", http.MethodGet, func(w http.ResponseWriter, r *http.Request) {
		username := mux.Vars(r)["username"]
		if err := access.AuthorizationFromContext(r.Context()).RequireAdminOrSelf(username); err != nil {
			b.fail(w, r, 4507, err)
			return
		}
		user, err := b.store.Users.Get(r.Context(), username)
		if err != nil {
			b.fail(w, r, 4508, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{"user": user})
	})

	// UPDATE
	b.handle("/users/{username}", http.MethodPatch, func(w http.ResponseWriter, r *http.Request) {
		username := mux.Vars(r)["username"]
		auth := access.AuthorizationFromContext(r.Context())
		if err := auth.RequireAdminOrSelf(username); err != nil {
			b.fail(w, r, 4509, err)
			return
		}
		var data models.UserUpdate
		if err := b.decode(r, schemaUserUpdate, &data); err != nil {
			b.fail(w, r, 4510, err)
			return
		}
		// only administrators can grant or revoke administrator rights
		if data.IsAdmin != nil {
			if err := auth.RequireAdmin(); err != nil {
				b.fail(w, r, 4511, err)
				return
			}
		}
		user, err := b.store.Users.Update(r.Context(), username, data)
		if err != nil {
			b.fail(w, r, 4512, err)
			return
		}
		b.raise(r.Context(), notify.Event{Resource: "user", Operation: core.OperationUpdate, Key: username, Payload: user})
		writeJSON(w, http.StatusOK, map[string]interface{}{"user": user})
	})

	// DELETE
	b.handle("/users/{username}", http.MethodDelete, func(w http.ResponseWriter, r *http.Request) {
		username := mux.Vars(r)["username"]
		if err := access.AuthorizationFromContext(r.Context()).RequireAdminOrSelf(username); err != nil {
			b.fail(w, r, 4513, err)
			return
		}
		if err := b.store.Users.Remove(r.Context(), username); err != nil {
			b.fail(w, r, 4514, err)
			return
		}
		b.raise(r.Context(), notify.Event{Resource: "user", Operation: core.OperationDelete, Key: username})
		writeJSON(w, http.StatusOK, map[string]interface{}{"deleted": username})
	})

	// APPLY
	b.handle("/users/{username}/jobs/{id}", http.MethodPost, func(w http.ResponseWriter, r *http.Request) {
		username := mux.Vars(r)["username"]
		if err := access.AuthorizationFromContext(r.Context()).RequireAdminOrSelf(username); err != nil {
			b.fail(w, r, 4515, err)
			return
		}
		id, err := jobID(r)
		if err != nil {
			b.fail(w, r, 4516, err)
			return
		}
		if err = b.store.Users.ApplyToJob(r.Context(), username, id); err != nil {
			b.fail(w, r, 4517, err)
			return
		}
		b.raise(r.Context(), notify.Event{Resource: "application", Operation: core.OperationApply, Key: username + "/" + strconv.Itoa(id)})
		writeJSON(w, http.StatusOK, map[string]interface{}{"applied": id})
	})
}
