// Package sqlite implements server/dao.Store over a single-file sqlite
// database, following tunaq/server/dao/sqlite's shape: one store type
// holding a *sql.DB plus one repository type per table, each with its own
// init() creating the table if absent.
package sqlite

import (
	"database/sql"
	"path/filepath"

	"github.com/dekarrin/pbe/server/dao"
	_ "modernc.org/sqlite"
)

type store struct {
	db   *sql.DB
	jobs *JobsDB
}

// NewDatastore opens (creating if absent) a sqlite database named
// "jobs.db" inside storageDir and returns a dao.Store backed by it.
func NewDatastore(storageDir string) (dao.Store, error) {
	fileName := filepath.Join(storageDir, "jobs.db")

	db, err := sql.Open("sqlite", fileName)
	if err != nil {
		return nil, wrapDBError(err)
	}

	st := &store{db: db, jobs: &JobsDB{db: db}}
	if err := st.jobs.init(); err != nil {
		return nil, err
	}

	return st, nil
}

func (s *store) Jobs() dao.JobRepository {
	return s.jobs
}

func wrapDBError(err error) error {
	if err == nil {
		return nil
	}
	return err
}
