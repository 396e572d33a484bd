// Package dao defines the storage-layer contracts the synthesis service
// uses, mirroring tunaq/server/dao's split between interface definitions
// here and driver-specific implementations in subpackages (only sqlite is
// implemented, matching this module's scope).
package dao

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned by a JobRepository when no row matches the given
// ID, mirroring tunaq/server/dao.ErrNotFound.
var ErrNotFound = errors.New("no job with that ID exists")

// Status is the lifecycle stage of a submitted synthesis job.
type Status string

const (
	StatusQueued     Status = "queued"
	StatusRunning    Status = "running"
	StatusDone       Status = "done"
	StatusNoSolution Status = "no-solution"
)

// Job is one submitted synthesis request and its outcome so far.
type Job struct {
	ID         uuid.UUID
	Grammar    string
	Examples   []byte // JSON, internal/examplefile format
	Config     []byte // JSON-encoded pbe.TOMLConfig-shaped config
	Status     Status
	Program    string
	Checkpoint []byte // rezi-encoded internal/checkpoint.Snapshot, if any
	Created    time.Time
	Updated    time.Time
}

// JobRepository persists synthesis jobs.
type JobRepository interface {
	Create(ctx context.Context, j Job) (Job, error)
	GetByID(ctx context.Context, id uuid.UUID) (Job, error)
	Update(ctx context.Context, j Job) (Job, error)
}

// Store is the full set of repositories the service depends on.
type Store interface {
	Jobs() JobRepository
}
