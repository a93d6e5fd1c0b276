// Copyright 2021 Dalarub & Ettrich GmbH - All Rights Reserved
// Unauthorized copying of this file, via any medium is strictly prohibited
// Proprietary and confidential
// info@dalarub.com
//

package backend

import (
	"net/http"
	"strconv"

	"github.com/relabs-tech/jobly/core"
	"github.com/relabs-tech/jobly/core/access"
	"github.com/relabs-tech/jobly/core/models"
	"github.com/relabs-tech/jobly/core/notify"
)

func (b *Backend) handleJobs() {

	// CREATE
	b.handle("/jobs", http.MethodPost, func(w http.ResponseWriter, r *http.Request) {
		if err := access.AuthorizationFromContext(r.Context()).RequireAdmin(); err != nil {
			b.fail(w, r, 4401, err)
			return
		}
		var job models.Job
		if err := b.decode(r, schemaJobNew, &job); err != nil {
			b.fail(w, r, 4402, err)
			return
		}
		created, err := b.store.Jobs.Create(r.Context(), job)
		if err != nil {
			b.fail(w, r, 4403, err)
			return
		}
		b.raise(r.Context(), notify.Event{Resource: "job", Operation: core.OperationCreate, Key: strconv.Itoa(created.ID), Payload: created})
		writeJSON(w, http.StatusCreated, map[string]interface{}{"job": created})
	})

	// LIST
	b.handle("/jobs", http.MethodGet, func(w http.ResponseWriter, r *http.Request) {
		filter, err := models.JobFilterFromQuery(r.URL.Query())
		if err != nil {
			b.fail(w, r, 4404, err)
			return
		}
		jobs, err := b.store.Jobs.FindAll(r.Context(), filter)
		if err != nil {
			b.fail(w, r, 4405, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{"jobs": jobs})
	})

	// READ
	b.handle("/jobs/{id}", http.MethodGet, func(w http.ResponseWriter, r *http.Request) {
		id, err := jobID(r)
		if err != nil {
			b.fail(w, r, 4406, err)
			return
		}
		job, err := b.store.Jobs.Get(r.Context(), id)
		if err != nil {
			b.fail(w, r, 4407, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{"job": job})
	})

	// UPDATE
	b.handle("/jobs/{id}", http.MethodPatch, func(w http.ResponseWriter, r *http.Request) {
		if err := access.AuthorizationFromContext(r.Context()).RequireAdmin(); err != nil {
			b.fail(w, r, 4408, err)
			return
		}
		id, err := jobID(r)
		if err != nil {
			b.fail(w, r, 4409, err)
			return
		}
		var data models.JobUpdate
		if err = b.decode(r, schemaJobUpdate, &data); err != nil {
			b.fail(w, r, 4410, err)
			return
		}
		job, err := b.store.Jobs.Update(r.Context(), id, data)
		if err != nil {
			b.fail(w, r, 4411, err)
			return
		}
		b.raise(r.Context(), notify.Event{Resource: "job", Operation: core.OperationUpdate, Key: strconv.Itoa(id), Payload: job})
		writeJSON(w, http.StatusOK, map[string]interface{}{"job": job})
	})

	// DELETE
	b.handle("/jobs/{id}", http.MethodDelete, func(w http.ResponseWriter, r *http.Request) {
		if err := access.AuthorizationFromContext(r.Context()).RequireAdmin(); err != nil {
			b.fail(w, r, 4412, err)
			return
		}
		id, err := jobID(r)
		if err != nil {
			b.fail(w, r, 4413, err)
			return
		}
		if err = b.store.Jobs.Remove(r.Context(), id); err != nil {
			b.fail(w, r, 4414, err)
			return
		}
		b.raise(r.Context(), notify.Event{Resource: "job", Operation: core.OperationDelete, Key: strconv.Itoa(id)})
		writeJSON(w, http.StatusOK, map[string]interface{}{"deleted": id})
	})
}
