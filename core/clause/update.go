// Copyright 2021 Dalarub & Ettrich GmbH - All Rights Reserved
// Unauthorized copying of this file, via any medium is strictly prohibited
// Proprietary and confidential
// info@dalarub.com
//

/*
Package clause assembles parameterized SQL fragments for postgres.

Update produces the SET clause of a partial update from an ordered list of
field assignments. Where produces a conjunctive WHERE clause from optional
search criteria. Neither executes SQL, both number their placeholders
$1..$n in the order in which they were added.
*/
package clause

import (
	"strconv"
	"strings"

	"github.com/iancoleman/strcase"
	"github.com/relabs-tech/jobly/core"
)

// Columns maps logical field names to database column names. Fields which are
// not in the map are used verbatim as column names.
type Columns map[string]string

// SnakeColumns returns a column map which translates each of the passed
// camelCase fields to snake_case, e.g. "numEmployees" becomes "num_employees".
func SnakeColumns(fields ...string) Columns {
	columns := Columns{}
	for _, field := range fields {
		columns[field] = strcase.ToSnake(field)
	}
	return columns
}

// Resolve returns the column name for field
func (c Columns) Resolve(field string) string {
	if column, ok := c[field]; ok {
		return column
	}
	return field
}

type assignment struct {
	column string
	value  interface{}
}

// Update is a builder for the SET clause of a partial update
type Update struct {
	columns     Columns
	assignments []assignment
}

// SetClause is the result of Update.Build
type SetClause struct {
	// SQL is the list of "column"=$N fragments, joined with ", "
	SQL string
	// Values holds the parameters in the order of the fragments
	Values []interface{}
}

// NewUpdate returns a new update builder using columns to resolve field names.
// columns can be nil.
func NewUpdate(columns Columns) *Update {
	return &Update{columns: columns}
}

// Set appends an assignment of value to field. Assignments are kept in
// insertion order.
func (u *Update) Set(field string, value interface{}) *Update {
	u.assignments = append(u.assignments, assignment{column: u.columns.Resolve(field), value: value})
	return u
}

// Len returns the number of assignments
func (u *Update) Len() int {
	return len(u.assignments)
}

// Build returns the SET clause. An update without any assignment is a
// ValidationError.
func (u *Update) Build() (SetClause, error) {
	if len(u.assignments) == 0 {
		return SetClause{}, core.NewValidationError("no data provided")
	}
	fragments := make([]string, len(u.assignments))
	values := make([]interface{}, len(u.assignments))
	for i, a := range u.assignments {
		fragments[i] = `"` + a.column + `"=$` + strconv.Itoa(i+1)
		values[i] = a.value
	}
	return SetClause{
		SQL:    strings.Join(fragments, ", "),
		Values: values,
	}, nil
}

// Next returns the placeholder which follows the last value of the clause. Use it
// for the row identifier in the WHERE clause of the update statement.
func (s SetClause) Next() string {
	return "$" + strconv.Itoa(len(s.Values)+1)
}
