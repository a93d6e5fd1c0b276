// Copyright 2021 Dalarub & Ettrich GmbH - All Rights Reserved
// Unauthorized copying of this file, via any medium is strictly prohibited
// Proprietary and confidential
// info@dalarub.com
//

package models

import (
	"net/url"
	"testing"

	"github.com/relabs-tech/jobly/core"
	"github.com/relabs-tech/jobly/core/pointers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompanyFilter_Where(t *testing.T) {
	tests := []struct {
		name   string
		filter CompanyFilter
		sql    string
		values []interface{}
	}{
		{"empty", CompanyFilter{}, "", nil},
		{"empty name", CompanyFilter{Name: pointers.String("")}, "", nil},
		{"name", CompanyFilter{Name: pointers.String("net")}, " WHERE name ILIKE $1", []interface{}{"%net%"}},
		{"min", CompanyFilter{MinEmployees: pointers.Int(10)}, " WHERE num_employees >= $1", []interface{}{10}},
		{"max", CompanyFilter{MaxEmployees: pointers.Int(5)}, " WHERE num_employees <= $1", []interface{}{5}},
		{
			"all",
			CompanyFilter{MaxEmployees: pointers.Int(500), Name: pointers.String("c"), MinEmployees: pointers.Int(10)},
			" WHERE name ILIKE $1 AND num_employees >= $2 AND num_employees <= $3",
			[]interface{}{"%c%", 10, 500},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where := tt.filter.Where()
			assert.Equal(t, tt.sql, where.SQL())
			assert.Equal(t, tt.values, where.Values())

			// assembling twice gives the same result
			again := tt.filter.Where()
			assert.Equal(t, where.SQL(), again.SQL())
			assert.Equal(t, where.Values(), again.Values())
		})
	}
}

func TestCompanyFilter_Validate(t *testing.T) {
	err := CompanyFilter{MinEmployees: pointers.Int(10), MaxEmployees: pointers.Int(5)}.Validate()
	require.Error(t, err)
	assert.True(t, core.IsValidation(err))

	assert.NoError(t, CompanyFilter{MinEmployees: pointers.Int(5), MaxEmployees: pointers.Int(5)}.Validate())
	assert.NoError(t, CompanyFilter{MinEmployees: pointers.Int(10)}.Validate())
}

func TestJobFilter_Where(t *testing.T) {
	tests := []struct {
		name   string
		filter JobFilter
		sql    string
		values []interface{}
	}{
		{"empty", JobFilter{}, "", nil},
		{"no equity", JobFilter{HasEquity: false}, "", nil},
		{"equity", JobFilter{HasEquity: true}, " WHERE equity > 0", nil},
		{"title", JobFilter{Title: pointers.String("J")}, " WHERE title ILIKE $1", []interface{}{"%J%"}},
		{
			"all",
			JobFilter{HasEquity: true, MinSalary: pointers.Int(2), Title: pointers.String("J")},
			" WHERE title ILIKE $1 AND salary >= $2 AND equity > 0",
			[]interface{}{"%J%", 2},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where := tt.filter.Where()
			assert.Equal(t, tt.sql, where.SQL())
			assert.Equal(t, tt.values, where.Values())
		})
	}
}

func TestCompanyFilterFromQuery(t *testing.T) {
	filter, err := CompanyFilterFromQuery(url.Values{"name": {"net"}, "minEmployees": {"10"}})
	require.NoError(t, err)
	assert.Equal(t, "net", pointers.SafeString(filter.Name))
	assert.Equal(t, 10, pointers.SafeInt(filter.MinEmployees))
	assert.Nil(t, filter.MaxEmployees)

	_, err = CompanyFilterFromQuery(url.Values{"minEmployees": {"10"}, "maxEmployees": {"5"}})
	assert.True(t, core.IsValidation(err))

	_, err = CompanyFilterFromQuery(url.Values{"nope": {"x"}, "color": {"red"}})
	require.Error(t, err)
	assert.True(t, core.IsValidation(err))
	assert.Equal(t, "Invalid filter fields: color, nope", err.Error())

	_, err = CompanyFilterFromQuery(url.Values{"minEmployees": {"ten"}})
	assert.True(t, core.IsValidation(err))

	_, err = CompanyFilterFromQuery(url.Values{"name": {"a", "b"}})
	assert.True(t, core.IsValidation(err))
}

func TestJobFilterFromQuery(t *testing.T) {
	filter, err := JobFilterFromQuery(url.Values{"title": {"J"}, "minSalary": {"2"}, "hasEquity": {"true"}})
	require.NoError(t, err)
	assert.Equal(t, "J", pointers.SafeString(filter.Title))
	assert.Equal(t, 2, pointers.SafeInt(filter.MinSalary))
	assert.True(t, filter.HasEquity)

	filter, err = JobFilterFromQuery(url.Values{"hasEquity": {"false"}})
	require.NoError(t, err)
	assert.False(t, filter.HasEquity)

	_, err = JobFilterFromQuery(url.Values{"hasEquity": {"maybe"}})
	assert.True(t, core.IsValidation(err))

	_, err = JobFilterFromQuery(url.Values{"company": {"c1"}})
	assert.True(t, core.IsValidation(err))
}
