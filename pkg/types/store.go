package types

import "time"

// Store is the typed entity contract over pipelines, leads, and settings
// rows. Callers attach to a backend, operate on it, and detach when done.
// Every operation on a detached store returns ErrStoreClosed. Every write is
// immediately durable; there is no write-behind caching.
type Store interface {
	// Attach opens the backend described by config, creating the data
	// directory and schema as needed. Returns ErrAlreadyAttached if called
	// while attached. Any schema initialization failure is fatal: the store
	// stays unusable.
	Attach(config Config) error

	// Detach releases backend resources. Idempotent.
	Detach() error

	// GetAllPipelines returns all pipelines ordered by creation time
	// descending.
	GetAllPipelines() ([]Pipeline, error)

	CreatePipeline(id, name string, createdAt time.Time) error
	UpdatePipeline(id, name string) error

	// DeletePipeline removes the pipeline and, via the schema's cascade
	// configuration, every lead that references it.
	DeletePipeline(id string) error

	// GetAllLeads returns leads ordered by creation time descending,
	// scoped to one pipeline when pipelineID is non-empty.
	GetAllLeads(pipelineID string) ([]Lead, error)

	CreateLead(lead *Lead) error

	// UpdateLead patches the named columns and always stamps updated_at to
	// the current time, whether or not the caller asked for it. The stamp
	// it wrote comes back so callers can mirror it without a re-read.
	UpdateLead(id string, fields map[string]any) (time.Time, error)

	DeleteLead(id string) error
	DeleteLeads(ids []string) error

	// GetSetting reports ok=false for a key that was never set.
	GetSetting(key string) (value string, ok bool, err error)

	// SetSetting is an upsert: last write wins, no history retained.
	SetSetting(key, value string) error

	DeleteSetting(key string) error

	// RestoreSnapshot upserts every pipeline and nested lead, keyed by
	// their stable identifiers, and restores the current-pipeline setting
	// when currentPipelineID is non-empty. The whole restore runs in a
	// single transaction, so repeated restores of the same snapshot
	// converge and a mid-restore failure leaves prior state untouched.
	RestoreSnapshot(pipelines []PipelineSnapshot, currentPipelineID string) (RestoreCounts, error)
}
