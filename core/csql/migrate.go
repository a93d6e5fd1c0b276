// Copyright 2021 Dalarub & Ettrich GmbH - All Rights Reserved
// Unauthorized copying of this file, via any medium is strictly prohibited
// Proprietary and confidential
// info@dalarub.com
//

package csql

import (
	"database/sql"
	"embed"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/pkg/errors"
	"github.com/relabs-tech/jobly/core/logger"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Migrate brings the database schema up to the latest version. It uses
// a dedicated connection which is closed when done.
func (db *DB) Migrate() error {
	rlog := logger.Default().WithField("schema", db.Schema)

	conn, err := sql.Open("postgres", db.dataSourceName)
	if err != nil {
		return errors.Wrap(err, "cannot open migration connection")
	}

	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		conn.Close()
		return errors.Wrap(err, "cannot read migrations")
	}

	driver, err := postgres.WithInstance(conn, &postgres.Config{SchemaName: db.Schema})
	if err != nil {
		conn.Close()
		return errors.Wrap(err, "cannot create migration driver")
	}

	m, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		conn.Close()
		return errors.Wrap(err, "cannot create migration")
	}
	defer m.Close()

	if err = m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return errors.Wrap(err, "migration failed")
	}
	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return errors.Wrap(err, "cannot read migration version")
	}
	rlog.Infof("database at migration version %d (dirty: %v)", version, dirty)
	return nil
}
