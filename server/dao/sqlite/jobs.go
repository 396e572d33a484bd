package sqlite

import (
	"context"
	"database/sql"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/dekarrin/pbe/server/dao"
	"github.com/google/uuid"
)

// JobsDB is the sqlite-backed dao.JobRepository, following
// tunaq/server/dao/sqlite/sessions.go's single-table repository shape.
type JobsDB struct {
	db *sql.DB
}

func (repo *JobsDB) init() error {
	stmt := `CREATE TABLE IF NOT EXISTS jobs (
		id TEXT NOT NULL PRIMARY KEY,
		grammar TEXT NOT NULL,
		examples TEXT NOT NULL,
		config TEXT NOT NULL,
		status TEXT NOT NULL,
		program TEXT NOT NULL,
		checkpoint TEXT NOT NULL,
		created INTEGER NOT NULL,
		updated INTEGER NOT NULL
	);`
	_, err := repo.db.Exec(stmt)
	return wrapDBError(err)
}

func (repo *JobsDB) Create(ctx context.Context, j dao.Job) (dao.Job, error) {
	newID, err := uuid.NewRandom()
	if err != nil {
		return dao.Job{}, fmt.Errorf("could not generate ID: %w", err)
	}
	j.ID = newID
	now := time.Now()
	j.Created = now
	j.Updated = now

	stmt, err := repo.db.Prepare(`INSERT INTO jobs
		(id, grammar, examples, config, status, program, checkpoint, created, updated)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return dao.Job{}, wrapDBError(err)
	}

	_, err = stmt.ExecContext(ctx,
		j.ID.String(), j.Grammar, string(j.Examples), string(j.Config),
		string(j.Status), j.Program, base64.StdEncoding.EncodeToString(j.Checkpoint),
		now.Unix(), now.Unix())
	if err != nil {
		return dao.Job{}, wrapDBError(err)
	}

	return j, nil
}

func (repo *JobsDB) GetByID(ctx context.Context, id uuid.UUID) (dao.Job, error) {
	row := repo.db.QueryRowContext(ctx, `SELECT
		id, grammar, examples, config, status, program, checkpoint, created, updated
		FROM jobs WHERE id = ?`, id.String())

	return scanJob(row)
}

func (repo *JobsDB) Update(ctx context.Context, j dao.Job) (dao.Job, error) {
	j.Updated = time.Now()

	stmt, err := repo.db.Prepare(`UPDATE jobs SET
		status = ?, program = ?, checkpoint = ?, updated = ? WHERE id = ?`)
	if err != nil {
		return dao.Job{}, wrapDBError(err)
	}

	_, err = stmt.ExecContext(ctx,
		string(j.Status), j.Program, base64.StdEncoding.EncodeToString(j.Checkpoint),
		j.Updated.Unix(), j.ID.String())
	if err != nil {
		return dao.Job{}, wrapDBError(err)
	}

	return repo.GetByID(ctx, j.ID)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanJob(row rowScanner) (dao.Job, error) {
	var j dao.Job
	var id, status, checkpointB64 string
	var created, updated int64
	var examples, config string

	err := row.Scan(&id, &j.Grammar, &examples, &config, &status, &j.Program, &checkpointB64, &created, &updated)
	if err != nil {
		if err == sql.ErrNoRows {
			return dao.Job{}, dao.ErrNotFound
		}
		return dao.Job{}, wrapDBError(err)
	}

	j.ID, err = uuid.Parse(id)
	if err != nil {
		return dao.Job{}, fmt.Errorf("stored job ID %q is invalid: %w", id, err)
	}
	j.Examples = []byte(examples)
	j.Config = []byte(config)
	j.Status = dao.Status(status)
	j.Created = time.Unix(created, 0)
	j.Updated = time.Unix(updated, 0)

	j.Checkpoint, err = base64.StdEncoding.DecodeString(checkpointB64)
	if err != nil {
		return dao.Job{}, fmt.Errorf("stored checkpoint blob is invalid: %w", err)
	}

	return j, nil
}
