// Copyright 2021 Dalarub & Ettrich GmbH - All Rights Reserved
// Unauthorized copying of this file, via any medium is strictly prohibited
// Proprietary and confidential
// info@dalarub.com
//

package clause_test

import (
	"testing"

	"github.com/relabs-tech/jobly/core/clause"
	"github.com/stretchr/testify/assert"
)

func TestWhere_Empty(t *testing.T) {
	var w clause.Where
	assert.Equal(t, "", w.SQL())
	assert.Empty(t, w.Values())
	assert.Equal(t, 0, w.Len())
}

func TestWhere_Conjunction(t *testing.T) {
	w := &clause.Where{}
	w.Contains("name", "net").AtLeast("num_employees", 10).AtMost("num_employees", 500)
	assert.Equal(t, " WHERE name ILIKE $1 AND num_employees >= $2 AND num_employees <= $3", w.SQL())
	assert.Equal(t, []interface{}{"%net%", 10, 500}, w.Values())
}

func TestWhere_LiteralTakesNoParameter(t *testing.T) {
	w := &clause.Where{}
	w.Contains("title", "eng").Literal("equity > 0").AtLeast("salary", 1000)
	assert.Equal(t, " WHERE title ILIKE $1 AND equity > 0 AND salary >= $2", w.SQL())
	assert.Equal(t, []interface{}{"%eng%", 1000}, w.Values())
	assert.Equal(t, 3, w.Len())
}

