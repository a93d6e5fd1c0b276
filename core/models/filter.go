// Copyright 2021 Dalarub & Ettrich GmbH - All Rights Reserved
// Unauthorized copying of this file, via any medium is strictly prohibited
// Proprietary and confidential
// info@dalarub.com
//

package models

import (
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/relabs-tech/jobly/core"
	"github.com/relabs-tech/jobly/core/clause"
)

// CompanyFilter holds the optional search criteria for companies
type CompanyFilter struct {
	// Name is a case-insensitive substring of the company name
	Name *string
	// MinEmployees is an inclusive lower bound for the number of employees
	MinEmployees *int
	// MaxEmployees is an inclusive upper bound for the number of employees
	MaxEmployees *int
}

// Validate checks that the employee bounds are consistent
func (f CompanyFilter) Validate() error {
	if f.MinEmployees != nil && f.MaxEmployees != nil && *f.MinEmployees > *f.MaxEmployees {
		return core.NewValidationError("minEmployees cannot be greater than maxEmployees")
	}
	return nil
}

// Where returns the WHERE clause for the filter. Predicates are added in the
// order name, minEmployees, maxEmployees.
func (f CompanyFilter) Where() *clause.Where {
	where := &clause.Where{}
	if f.Name != nil && len(*f.Name) > 0 {
		where.Contains("name", *f.Name)
	}
	if f.MinEmployees != nil {
		where.AtLeast("num_employees", *f.MinEmployees)
	}
	if f.MaxEmployees != nil {
		where.AtMost("num_employees", *f.MaxEmployees)
	}
	return where
}

// JobFilter holds the optional search criteria for jobs
type JobFilter struct {
	// Title is a case-insensitive substring of the job title
	Title *string
	// MinSalary is an inclusive lower bound for the salary
	MinSalary *int
	// HasEquity restricts the result to jobs with an equity greater than zero. If false,
	// jobs are not filtered by equity at all.
	HasEquity bool
}

// Where returns the WHERE clause for the filter. Predicates are added in the
// order title, minSalary, hasEquity.
func (f JobFilter) Where() *clause.Where {
	where := &clause.Where{}
	if f.Title != nil && len(*f.Title) > 0 {
		where.Contains("title", *f.Title)
	}
	if f.MinSalary != nil {
		where.AtLeast("salary", *f.MinSalary)
	}
	if f.HasEquity {
		where.Literal("equity > 0")
	}
	return where
}

// CompanyFilterFromQuery parses the URL query of a company search. Unknown
// parameters, repeated parameters and malformed numbers are validation errors.
func CompanyFilterFromQuery(query url.Values) (CompanyFilter, error) {
	var filter CompanyFilter
	if err := checkQuery(query, "name", "minEmployees", "maxEmployees"); err != nil {
		return filter, err
	}
	var err error
	if values, ok := query["name"]; ok {
		filter.Name = &values[0]
	}
	if filter.MinEmployees, err = intParameter(query, "minEmployees"); err != nil {
		return filter, err
	}
	if filter.MaxEmployees, err = intParameter(query, "maxEmployees"); err != nil {
		return filter, err
	}
	return filter, filter.Validate()
}

// JobFilterFromQuery parses the URL query of a job search. Unknown
// parameters, repeated parameters and malformed values are validation errors.
func JobFilterFromQuery(query url.Values) (JobFilter, error) {
	var filter JobFilter
	if err := checkQuery(query, "title", "minSalary", "hasEquity"); err != nil {
		return filter, err
	}
	var err error
	if values, ok := query["title"]; ok {
		filter.Title = &values[0]
	}
	if filter.MinSalary, err = intParameter(query, "minSalary"); err != nil {
		return filter, err
	}
	if values, ok := query["hasEquity"]; ok {
		filter.HasEquity, err = strconv.ParseBool(values[0])
		if err != nil {
			return filter, core.NewValidationError("parameter 'hasEquity': must be true or false")
		}
	}
	return filter, nil
}

// checkQuery rejects parameters which are not allowed and parameter arrays
func checkQuery(query url.Values, allowed ...string) error {
	var invalid []string
	for key, values := range query {
		known := false
		for _, a := range allowed {
			if key == a {
				known = true
				break
			}
		}
		if !known {
			invalid = append(invalid, key)
			continue
		}
		if len(values) > 1 {
			return core.NewValidationError("illegal parameter array '%s'", key)
		}
	}
	if len(invalid) > 0 {
		sort.Strings(invalid)
		return core.NewValidationError("Invalid filter fields: %s", strings.Join(invalid, ", "))
	}
	return nil
}

func intParameter(query url.Values, key string) (*int, error) {
	values, ok := query[key]
	if !ok {
		return nil, nil
	}
	i, err := strconv.Atoi(values[0])
	if err != nil {
		return nil, core.NewValidationError("parameter '%s': must be an integer", key)
	}
	return &i, nil
}
