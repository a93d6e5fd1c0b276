// Copyright 2021 Dalarub & Ettrich GmbH - All Rights Reserved
// Unauthorized copying of this file, via any medium is strictly prohibited
// Proprietary and confidential
// info@dalarub.com
//

package csql

import (
	"database/sql"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // load database driver for postgres
	"github.com/relabs-tech/jobly/core/logger"
)

// DB encapsulates a sqlx.DB with a schema
type DB struct {
	*sqlx.DB
	Schema string

	dataSourceName string
}

// OpenWithSchema opens a jobly postgres database with a schema. The password is
// optional and appended to the data source name.
// The schema gets created if it does not exist yet, and all connections of the pool
// use it as their search path.
func OpenWithSchema(dataSourceName, password, schema string) *DB {
	rlog := logger.Default()
	rlog.Infoln("connecting to postgres database: ", dataSourceName)
	if len(password) > 0 {
		dataSourceName += " password=" + password
	}
	if len(schema) == 0 {
		schema = "public"
	}

	// create the schema first, then reconnect with the schema as search path
	if schema != "public" {
		rlog.Infoln("selected database schema:", schema)
		db, err := sql.Open("postgres", dataSourceName)
		if err != nil {
			panic(err)
		}
		_, err = db.Exec(`CREATE schema IF NOT EXISTS ` + schema + `;`)
		db.Close()
		if err != nil {
			panic(err)
		}
		dataSourceName = withSearchPath(dataSourceName, schema)
	}

	db, err := sqlx.Open("postgres", dataSourceName)
	if err != nil {
		panic(err)
	}
	err = db.Ping()
	if err != nil {
		panic(err)
	}
	return &DB{DB: db, Schema: schema, dataSourceName: dataSourceName}
}

func withSearchPath(dataSourceName, schema string) string {
	if strings.HasPrefix(dataSourceName, "postgres://") || strings.HasPrefix(dataSourceName, "postgresql://") {
		if strings.Contains(dataSourceName, "?") {
			return dataSourceName + "&search_path=" + schema
		}
		return dataSourceName + "?search_path=" + schema
	}
	return dataSourceName + " search_path=" + schema
}

// ClearSchema clears all the data contained in the database's schema
// Technically this is done by dropping the schema and then recreating it
func (db *DB) ClearSchema() {
	if db.Schema == "public" {
		panic("refuse to drop public schema")
	}
	_, err := db.Exec(`DROP SCHEMA ` + db.Schema + ` CASCADE;
	CREATE schema IF NOT EXISTS ` + db.Schema + `;`)
	if err != nil {
		logger.Default().WithError(err).Errorln("clear schema error:", db.Schema)
	}
}
