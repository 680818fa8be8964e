package sqlite

import (
	"database/sql"
	"os"
	"path/filepath"

	"github.com/DavidRprt/deskflow/internal/domain"

	_ "modernc.org/sqlite"
)

// Open opens (or creates) a sqlite database at the given path and ensures directories exist.
// The pool is small and bounded: callers block on a free connection up to the
// busy timeout and then fail.
func Open(path string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, domain.ConnectionError("cannot prepare database directory", err)
	}

	db, err := sql.Open("sqlite", "file:"+path+"?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)")
	if err != nil {
		return nil, domain.ConnectionError("cannot open database", err)
	}

	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(5)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, domain.ConnectionError("cannot reach database", err)
	}

	return db, nil
}
