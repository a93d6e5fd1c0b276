// Copyright 2021 Dalarub & Ettrich GmbH - All Rights Reserved
// Unauthorized copying of this file, via any medium is strictly prohibited
// Proprietary and confidential
// info@dalarub.com
//

package models

import (
	"context"

	"github.com/relabs-tech/jobly/core"
	"github.com/relabs-tech/jobly/core/clause"
	"github.com/relabs-tech/jobly/core/csql"
	"github.com/relabs-tech/jobly/core/logger"
)

// Job is a job posting of a company. Equity is a decimal fraction in the range 0..1
// and kept as string to preserve its exact database representation.
type Job struct {
	ID            int     `db:"id" json:"id"`
	Title         string  `db:"title" json:"title"`
	Salary        *int    `db:"salary" json:"salary"`
	Equity        *string `db:"equity" json:"equity"`
	CompanyHandle string  `db:"company_handle" json:"companyHandle"`
}

// JobUpdate holds the fields of a partial job update. The id and the company
// of a job cannot be changed.
type JobUpdate struct {
	Title  *string `json:"title"`
	Salary *int    `json:"salary"`
	Equity *string `json:"equity"`
}

const jobColumns = `id, title, salary, equity, company_handle`

// Jobs is the resource accessor for jobs
type Jobs struct {
	db *csql.DB
}

// Create inserts a new job. The job's company must exist.
func (j *Jobs) Create(ctx context.Context, job Job) (*Job, error) {
	var handle string
	err := j.db.GetContext(ctx, &handle, `SELECT handle FROM companies WHERE handle = $1`, job.CompanyHandle)
	if isNoRows(err) {
		return nil, core.NewValidationError("Invalid company handle: %s", job.CompanyHandle)
	}
	if err != nil {
		return nil, dbError(err, "cannot check company of job")
	}

	created := &Job{}
	err = j.db.GetContext(ctx, created,
		`INSERT INTO jobs (title, salary, equity, company_handle)
VALUES ($1, $2, $3, $4)
RETURNING `+jobColumns,
		job.Title, job.Salary, job.Equity, job.CompanyHandle)
	if err != nil {
		return nil, dbError(err, "cannot insert job")
	}
	return created, nil
}

// FindAll returns all jobs matching filter, ordered by title
func (j *Jobs) FindAll(ctx context.Context, filter JobFilter) ([]Job, error) {
	where := filter.Where()
	query := `SELECT ` + jobColumns + ` FROM jobs` + where.SQL() + ` ORDER BY title`
	logger.FromContext(ctx).Debugln("job query:", query)

	jobs := []Job{}
	if err := j.db.SelectContext(ctx, &jobs, query, where.Values()...); err != nil {
		return nil, dbError(err, "cannot list jobs")
	}
	return jobs, nil
}

// Get returns the job with id
func (j *Jobs) Get(ctx context.Context, id int) (*Job, error) {
	job := &Job{}
	err := j.db.GetContext(ctx, job, `SELECT `+jobColumns+` FROM jobs WHERE id = $1`, id)
	if isNoRows(err) {
		return nil, core.NewNotFoundError("No job: %d", id)
	}
	if err != nil {
		return nil, dbError(err, "cannot read job")
	}
	return job, nil
}

// Update applies a partial update to the job with id
func (j *Jobs) Update(ctx context.Context, id int, data JobUpdate) (*Job, error) {
	update := clause.NewUpdate(nil)
	if data.Title != nil {
		update.Set("title", *data.Title)
	}
	if data.Salary != nil {
		update.Set("salary", *data.Salary)
	}
	if data.Equity != nil {
		update.Set("equity", *data.Equity)
	}
	set, err := update.Build()
	if err != nil {
		return nil, err
	}

	job := &Job{}
	err = j.db.GetContext(ctx, job,
		`UPDATE jobs SET `+set.SQL+` WHERE id = `+set.Next()+` RETURNING `+jobColumns,
		append(set.Values, id)...)
	if isNoRows(err) {
		return nil, core.NewNotFoundError("No job: %d", id)
	}
	if err != nil {
		return nil, dbError(err, "cannot update job")
	}
	return job, nil
}

// Remove deletes the job with id
func (j *Jobs) Remove(ctx context.Context, id int) error {
	var deleted int
	err := j.db.GetContext(ctx, &deleted, `DELETE FROM jobs WHERE id = $1 RETURNING id`, id)
	if isNoRows(err) {
		return core.NewNotFoundError("No job: %d", id)
	}
	if err != nil {
		return dbError(err, "cannot delete job")
	}
	return nil
}
