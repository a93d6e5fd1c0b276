// Copyright 2021 Dalarub & Ettrich GmbH - All Rights Reserved
// Unauthorized copying of this file, via any medium is strictly prohibited
// Proprietary and confidential
// info@dalarub.com
//

/*
Package models is the resource layer of jobly. It owns all SQL statements for
companies, jobs, users and applications, and translates missing rows and
constraint violations into the error types of package core.
*/
package models

import (
	"database/sql"

	"github.com/pkg/errors"
	"github.com/relabs-tech/jobly/core/csql"
)

// Store bundles the resource accessors for one database
type Store struct {
	Companies *Companies
	Jobs      *Jobs
	Users     *Users
}

// NewStore returns a store for db. bcryptWorkFactor is the cost used for
// password hashes of new and updated users.
func NewStore(db *csql.DB, bcryptWorkFactor int) *Store {
	return &Store{
		Companies: &Companies{db: db},
		Jobs:      &Jobs{db: db},
		Users:     &Users{db: db, bcryptWorkFactor: bcryptWorkFactor},
	}
}

// dbError maps constraint violations to validation errors and wraps everything else
func dbError(err error, message string) error {
	if mapped := csql.MapError(err); mapped != err {
		return mapped
	}
	return errors.Wrap(err, message)
}

func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
