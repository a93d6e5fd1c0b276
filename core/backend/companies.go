// Copyright 2021 Dalarub & Ettrich GmbH - All Rights Reserved
// Unauthorized copying of this file, via any medium is strictly prohibited
// Proprietary and confidential
// info@dalarub.com
//

package backend

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/relabs-tech/jobly/core"
	"github.com/relabs-tech/jobly/core/access"
	"github.com/relabs-tech/jobly/core/models"
	"github.com/relabs-tech/jobly/core/notify"
)

func (b *Backend) handleCompanies() {

	// CREATE
	b.handle("/companies", http.MethodPost, func(w http.ResponseWriter, r *http.Request) {
		if err := access.AuthorizationFromContext(r.Context()).RequireAdmin(); err != nil {
			b.fail(w, r, 4301, err)
			return
		}
		var company models.Company
		if err := b.decode(r, schemaCompanyNew, &company); err != nil {
			b.fail(w, r, 4302, err)
			return
		}
		created, err := b.store.Companies.Create(r.Context(), company)
		if err != nil {
			b.fail(w, r, 4303, err)
			return
		}
		b.raise(r.Context(), notify.Event{Resource: "company", Operation: core.OperationCreate, Key: created.Handle, Payload: created})
		writeJSON(w, http.StatusCreated, map[string]interface{}{"company": created})
	})

	// LIST
	b.handle("/companies", http.MethodGet, func(w http.ResponseWriter, r *http.Request) {
		filter, err := models.CompanyFilterFromQuery(r.URL.Query())
		if err != nil {
			b.fail(w, r, 4304, err)
			return
		}
		companies, err := b.store.Companies.FindAll(r.Context(), filter)
		if err != nil {
			b.fail(w, r, 4305, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{"companies": companies})
	})

	// READ
	b.handle("/companies/{handle}", http.MethodGet, func(w http.ResponseWriter, r *http.Request) {
		company, err := b.store.Companies.Get(r.Context(), mux.Vars(r)["handle"])
		if err != nil {
			b.fail(w, r, 4306, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{"company": company})
	})

	// UPDATE
	b.handle("/companies/{handle}", http.MethodPatch, func(w http.ResponseWriter, r *http.Request) {
		if err := access.AuthorizationFromContext(r.Context()).RequireAdmin(); err != nil {
			b.fail(w, r, 4307, err)
			return
		}
		var data models.CompanyUpdate
		if err := b.decode(r, schemaCompanyUpdate, &data); err != nil {
			b.fail(w, r, 4308, err)
			return
		}
		company, err := b.store.Companies.Update(r.Context(), mux.Vars(r)["handle"], data)
		if err != nil {
			b.fail(w, r, 4309, err)
			return
		}
		b.raise(r.Context(), notify.Event{Resource: "company", Operation: core.OperationUpdate, Key: company.Handle, Payload: company})
		writeJSON(w, http.StatusOK, map[string]interface{}{"company": company})
	})

	// DELETE
	b.handle("/companies/{handle}", http.MethodDelete, func(w http.ResponseWriter, r *http.Request) {
		if err := access.AuthorizationFromContext(r.Context()).RequireAdmin(); err != nil {
			b.fail(w, r, 4310, err)
			return
		}
		handle := mux.Vars(r)["handle"]
		if err := b.store.Companies.Remove(r.Context(), handle); err != nil {
			b.fail(w, r, 4311, err)
			return
		}
		b.raise(r.Context(), notify.Event{Resource: "company", Operation: core.OperationDelete, Key: handle})
		writeJSON(w, http.StatusOK, map[string]interface{}{"deleted": handle})
	})
}
