// Copyright 2021 Dalarub & Ettrich GmbH - All Rights Reserved
// Unauthorized copying of this file, via any medium is strictly prohibited
// Proprietary and confidential
// info@dalarub.com
//

package clause

import (
	"strconv"
	"strings"
)

// Where is a builder for a conjunctive WHERE clause. The zero value is an
// empty clause.
type Where struct {
	predicates []string
	values     []interface{}
}

// returns the placeholder for the next value
func (w *Where) bind(value interface{}) string {
	w.values = append(w.values, value)
	return "$" + strconv.Itoa(len(w.values))
}

// Contains adds a case-insensitive substring match of column against s
func (w *Where) Contains(column string, s string) *Where {
	w.predicates = append(w.predicates, column+" ILIKE "+w.bind("%"+s+"%"))
	return w
}

// AtLeast adds an inclusive lower bound for column
func (w *Where) AtLeast(column string, value interface{}) *Where {
	w.predicates = append(w.predicates, column+" >= "+w.bind(value))
	return w
}

// AtMost adds an inclusive upper bound for column
func (w *Where) AtMost(column string, value interface{}) *Where {
	w.predicates = append(w.predicates, column+" <= "+w.bind(value))
	return w
}

// Literal adds a predicate which has no parameter, e.g. "equity > 0"
func (w *Where) Literal(predicate string) *Where {
	w.predicates = append(w.predicates, predicate)
	return w
}

// Len returns the number of predicates
func (w *Where) Len() int {
	return len(w.predicates)
}

// SQL returns " WHERE p1 AND ... AND pn", or an empty string if there are no predicates.
func (w *Where) SQL() string {
	if len(w.predicates) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.predicates, " AND ")
}

// Values returns the parameters in placeholder order
func (w *Where) Values() []interface{} {
	return w.values
}
