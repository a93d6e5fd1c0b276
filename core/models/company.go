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

// Company is a company as stored in the database
type Company struct {
	Handle       string  `db:"handle" json:"handle"`
	Name         string  `db:"name" json:"name"`
	Description  string  `db:"description" json:"description"`
	NumEmployees *int    `db:"num_employees" json:"numEmployees"`
	LogoURL      *string `db:"logo_url" json:"logoUrl"`
}

// CompanyJob is a job as listed with its company
type CompanyJob struct {
	ID     int     `db:"id" json:"id"`
	Title  string  `db:"title" json:"title"`
	Salary *int    `db:"salary" json:"salary"`
	Equity *string `db:"equity" json:"equity"`
}

// CompanyDetail is a company with its jobs
type CompanyDetail struct {
	Company
	Jobs []CompanyJob `json:"jobs"`
}

// CompanyUpdate holds the fields of a partial company update. Nil fields are
// left unchanged.
type CompanyUpdate struct {
	Name         *string `json:"name"`
	Description  *string `json:"description"`
	NumEmployees *int    `json:"numEmployees"`
	LogoURL      *string `json:"logoUrl"`
}

const companyColumns = `handle, name, description, num_employees, logo_url`

var companyUpdateColumns = clause.SnakeColumns("numEmployees", "logoUrl")

// Companies is the resource accessor for companies
type Companies struct {
	db *csql.DB
}

// Create inserts a new company. A company with the same handle must not exist yet.
func (c *Companies) Create(ctx context.Context, company Company) (*Company, error) {
	var handle string
	err := c.db.GetContext(ctx, &handle, `SELECT handle FROM companies WHERE handle = $1`, company.Handle)
	if err == nil {
		return nil, core.NewValidationError("Duplicate company: %s", company.Handle)
	}
	if !isNoRows(err) {
		return nil, dbError(err, "cannot check for duplicate company")
	}

	created := &Company{}
	err = c.db.GetContext(ctx, created,
		`INSERT INTO companies (`+companyColumns+`)
VALUES ($1, $2, $3, $4, $5)
RETURNING `+companyColumns,
		company.Handle, company.Name, company.Description, company.NumEmployees, company.LogoURL)
	if err != nil {
		return nil, dbError(err, "cannot insert company")
	}
	return created, nil
}

// FindAll returns all companies matching filter, ordered by name
func (c *Companies) FindAll(ctx context.Context, filter CompanyFilter) ([]Company, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	where := filter.Where()
	query := `SELECT ` + companyColumns + ` FROM companies` + where.SQL() + ` ORDER BY name`
	logger.FromContext(ctx).Debugln("company query:", query)

	companies := []Company{}
	if err := c.db.SelectContext(ctx, &companies, query, where.Values()...); err != nil {
		return nil, dbError(err, "cannot list companies")
	}
	return companies, nil
}

// Get returns the company with handle, including its jobs ordered by id
func (c *Companies) Get(ctx context.Context, handle string) (*CompanyDetail, error) {
	company := &CompanyDetail{}
	err := c.db.GetContext(ctx, &company.Company,
		`SELECT `+companyColumns+` FROM companies WHERE handle = $1`, handle)
	if isNoRows(err) {
		return nil, core.NewNotFoundError("No company: %s", handle)
	}
	if err != nil {
		return nil, dbError(err, "cannot read company")
	}

	company.Jobs = []CompanyJob{}
	err = c.db.SelectContext(ctx, &company.Jobs,
		`SELECT id, title, salary, equity FROM jobs WHERE company_handle = $1 ORDER BY id`, handle)
	if err != nil {
		return nil, dbError(err, "cannot read jobs of company")
	}
	return company, nil
}

// Update applies a partial update to the company with handle. The handle itself
// cannot be changed.
func (c *Companies) Update(ctx context.Context, handle string, data CompanyUpdate) (*Company, error) {
	update := clause.NewUpdate(companyUpdateColumns)
	if data.Name != nil {
		update.Set("name", *data.Name)
	}
	if data.Description != nil {
		update.Set("description", *data.Description)
	}
	if data.NumEmployees != nil {
		update.Set("numEmployees", *data.NumEmployees)
	}
	if data.LogoURL != nil {
		update.Set("logoUrl", *data.LogoURL)
	}
	set, err := update.Build()
	if err != nil {
		return nil, err
	}

	company := &Company{}
	err = c.db.GetContext(ctx, company,
		`UPDATE companies SET `+set.SQL+` WHERE handle = `+set.Next()+` RETURNING `+companyColumns,
		append(set.Values, handle)...)
	if isNoRows(err) {
		return nil, core.NewNotFoundError("No company: %s", handle)
	}
	if err != nil {
		return nil, dbError(err, "cannot update company")
	}
	return company, nil
}

// Remove deletes the company with handle, together with its jobs
func (c *Companies) Remove(ctx context.Context, handle string) error {
	var deleted string
	err := c.db.GetContext(ctx, &deleted, `DELETE FROM companies WHERE handle = $1 RETURNING handle`, handle)
	if isNoRows(err) {
		return core.NewNotFoundError("No company: %s", handle)
	}
	if err != nil {
		return dbError(err, "cannot delete company")
	}
	return nil
}
