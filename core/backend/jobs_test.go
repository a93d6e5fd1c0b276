// Copyright 2021 Dalarub & Ettrich GmbH - All Rights Reserved
// Unauthorized copying of this file, via any medium is strictly prohibited
// Proprietary and confidential
// info@dalarub.com
//

package backend_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/relabs-tech/jobly/core"
	"github.com/relabs-tech/jobly/core/models"
	"github.com/relabs-tech/jobly/core/pointers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type jobResponse struct {
	Job models.Job `json:"job"`
}

type jobsResponse struct {
	Jobs []models.Job `json:"jobs"`
}

func jobTitles(jobs []models.Job) []string {
	titles := []string{}
	for _, j := range jobs {
		titles = append(titles, j.Title)
	}
	return titles
}

func TestJobCreate(t *testing.T) {
	f := newFixture(t)
	newJob := map[string]interface{}{
		"title":         "New",
		"salary":        100,
		"equity":        "0.1",
		"companyHandle": "c2",
	}

	var result jobResponse
	status, err := f.admin.RawPost("/jobs", newJob, &result)
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, status)
	assert.NotZero(t, result.Job.ID)
	assert.Equal(t, "New", result.Job.Title)
	assert.Equal(t, 100, pointers.SafeInt(result.Job.Salary))
	assert.Equal(t, "0.1", pointers.SafeString(result.Job.Equity))
	assert.Equal(t, "c2", result.Job.CompanyHandle)

	events := f.events.Events()
	require.Len(t, events, 1)
	assert.Equal(t, "job", events[0].Resource)
	assert.Equal(t, itoa(result.Job.ID), events[0].Key)

	status, _ = f.user.RawPost("/jobs", newJob, nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = f.admin.RawPost("/jobs", map[string]interface{}{"title": "New", "salary": "not-a-number", "companyHandle": "c1"}, nil)
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = f.admin.RawPost("/jobs", map[string]interface{}{"title": "New", "equity": "1.5", "companyHandle": "c1"}, nil)
	assert.Equal(t, http.StatusBadRequest, status)

	// unknown company
	status, _ = f.admin.RawPost("/jobs", map[string]interface{}{"title": "New", "companyHandle": "nope"}, nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestJobList(t *testing.T) {
	f := newFixture(t)
	_, err := f.backend.Store().Jobs.Create(f.admin.Context(), models.Job{Title: "Alpha", CompanyHandle: "c3"})
	require.NoError(t, err)

	var result jobsResponse
	_, err = f.anon.RawGet("/jobs", &result)
	require.NoError(t, err)
	assert.Equal(t, []string{"Alpha", "Job1", "Job2"}, jobTitles(result.Jobs))

	tests := []struct {
		name   string
		query  url.Values
		titles []string
	}{
		{"title", url.Values{"title": {"job"}}, []string{"Job1", "Job2"}},
		{"minSalary", url.Values{"minSalary": {"55000"}}, []string{"Job2"}},
		{"hasEquity", url.Values{"hasEquity": {"true"}}, []string{"Job1"}},
		{"hasEquity false", url.Values{"hasEquity": {"false"}}, []string{"Alpha", "Job1", "Job2"}},
		{"all", url.Values{"title": {"1"}, "minSalary": {"1"}, "hasEquity": {"true"}}, []string{"Job1"}},
		{"no match", url.Values{"title": {"nope"}}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var result jobsResponse
			_, err := f.anon.RawGetWithQuery("/jobs", tt.query, &result)
			require.NoError(t, err)
			assert.Equal(t, tt.titles, jobTitles(result.Jobs))
		})
	}

	status, _ := f.anon.RawGetWithQuery("/jobs", url.Values{"companyHandle": {"c1"}}, nil)
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = f.anon.RawGetWithQuery("/jobs", url.Values{"hasEquity": {"maybe"}}, nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestJobRead(t *testing.T) {
	f := newFixture(t)

	var result jobResponse
	_, err := f.anon.RawGet("/jobs/"+itoa(f.jobIDs[1]), &result)
	require.NoError(t, err)
	assert.Equal(t, "Job2", result.Job.Title)
	assert.Equal(t, "c1", result.Job.CompanyHandle)
	assert.Equal(t, "0", pointers.SafeString(result.Job.Equity))

	status, _ := f.anon.RawGet("/jobs/0", nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = f.anon.RawGet("/jobs/nope", nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestJobUpdate(t *testing.T) {
	f := newFixture(t)
	path := "/jobs/" + itoa(f.jobIDs[0])

	var result jobResponse
	_, err := f.admin.RawPatch(path, map[string]interface{}{"title": "Job1-new", "salary": 1}, &result)
	require.NoError(t, err)
	assert.Equal(t, f.jobIDs[0], result.Job.ID)
	assert.Equal(t, "Job1-new", result.Job.Title)
	assert.Equal(t, 1, pointers.SafeInt(result.Job.Salary))
	assert.Equal(t, "0.01", pointers.SafeString(result.Job.Equity))

	events := f.events.Events()
	require.Len(t, events, 1)
	assert.Equal(t, core.OperationUpdate, events[0].Operation)

	status, _ := f.user.RawPatch(path, map[string]interface{}{"title": "x"}, nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = f.admin.RawPatch("/jobs/0", map[string]interface{}{"title": "x"}, nil)
	assert.Equal(t, http.StatusNotFound, status)

	// neither the id nor the company can be changed
	status, _ = f.admin.RawPatch(path, map[string]interface{}{"companyHandle": "c2"}, nil)
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = f.admin.RawPatch(path, map[string]interface{}{}, nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestJobDelete(t *testing.T) {
	f := newFixture(t)
	path := "/jobs/" + itoa(f.jobIDs[0])

	status, _ := f.user.RawDelete(path)
	assert.Equal(t, http.StatusUnauthorized, status)

	r := httptest.NewRequest(http.MethodDelete, path, nil)
	r.Header.Set("Authorization", "Bearer "+adminToken(t))
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, r)
	require.Equal(t, http.StatusOK, rec.Code)

	var deleted struct {
		Deleted int `json:"deleted"`
	}
	require.NoError(t, jsonUnmarshal(rec.Body.Bytes(), &deleted))
	assert.Equal(t, f.jobIDs[0], deleted.Deleted)

	status, _ = f.admin.RawDelete(path)
	assert.Equal(t, http.StatusNotFound, status)
}
