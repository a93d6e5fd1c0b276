// Copyright 2021 Dalarub & Ettrich GmbH - All Rights Reserved
// Unauthorized copying of this file, via any medium is strictly prohibited
// Proprietary and confidential
// info@dalarub.com
//

package csql

import (
	"github.com/jackc/pgerrcode"
	"github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/relabs-tech/jobly/core"
)

// MapError translates postgres constraint violations and malformed input into
// core.ValidationError. All other errors are returned unchanged.
func MapError(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return err
	}
	switch string(pqErr.Code) {
	case pgerrcode.UniqueViolation:
		return &core.ValidationError{Message: "duplicate entry", Details: detail(pqErr)}
	case pgerrcode.ForeignKeyViolation:
		return &core.ValidationError{Message: "invalid reference", Details: detail(pqErr)}
	case pgerrcode.CheckViolation, pgerrcode.NotNullViolation:
		return &core.ValidationError{Message: "constraint violation", Details: detail(pqErr)}
	case pgerrcode.InvalidTextRepresentation, pgerrcode.NumericValueOutOfRange, pgerrcode.StringDataRightTruncationDataException:
		return &core.ValidationError{Message: "invalid input", Details: []string{pqErr.Message}}
	}
	return err
}

func detail(pqErr *pq.Error) []string {
	if len(pqErr.Detail) > 0 {
		return []string{pqErr.Detail}
	}
	if len(pqErr.Constraint) > 0 {
		return []string{pqErr.Constraint}
	}
	return nil
}
