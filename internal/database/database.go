package database

import (
	"context"
	"fmt"
	"time"

	_ "github.com/godror/godror" // Oracle driver (cgo)
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"           // Postgres driver
	_ "github.com/mattn/go-sqlite3" // SQLite driver
	_ "github.com/sijms/go-ora/v2"  // Oracle driver (pure Go)
)

func init() {
	// sqlx knows godror but not go-ora; both take :name binds.
	sqlx.BindDriver("oracle", sqlx.NAMED)
}

// SupportedDrivers lists the database/sql driver names NewSQLXDB accepts.
var SupportedDrivers = []string{"postgres", "sqlite3", "oracle", "godror"}

// NewSQLXDB opens a connection pool for driver and verifies it with a ping.
func NewSQLXDB(ctx context.Context, driver, dsn string) (*sqlx.DB, error) {
	if !IsSupportedDriver(driver) {
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", driver, err)
	}

	if driver == "sqlite3" {
		// SQLite serialises writers; one connection avoids "database is locked".
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(30 * time.Minute)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping %s database: %w", driver, err)
	}

	return db, nil
}

func IsSupportedDriver(driver string) bool {
	for _, d := range SupportedDrivers {
		if d == driver {
			return true
		}
	}
	return false
}
