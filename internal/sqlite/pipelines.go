// Pipeline row operations. Single-row CRUD; deletes rely on the schema's
// ON DELETE CASCADE to remove dependent leads atomically in the engine.
package sqlite

import (
	"fmt"
	"time"

	"github.com/pipeboard/pipeboard/pkg/types"
)

// GetAllPipelines returns all pipelines ordered by creation time descending.
// The dataset is assumed small (no pagination).
func (b *Backend) GetAllPipelines() ([]types.Pipeline, error) {
	db, err := b.conn()
	if err != nil {
		return nil, err
	}

	rows, err := db.Query("SELECT id, name, created_at FROM pipelines ORDER BY created_at DESC")
	if err != nil {
		return nil, fmt.Errorf("querying pipelines: %w", err)
	}
	defer rows.Close()

	var pipelines []types.Pipeline
	for rows.Next() {
		var (
			p         types.Pipeline
			createdAt string
		)
		if err := rows.Scan(&p.ID, &p.Name, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning pipeline: %w", err)
		}
		p.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
		if err != nil {
			return nil, fmt.Errorf("parsing pipeline %s created_at: %w", p.ID, err)
		}
		pipelines = append(pipelines, p)
	}
	return pipelines, rows.Err()
}

// CreatePipeline inserts a single pipeline row.
func (b *Backend) CreatePipeline(id, name string, createdAt time.Time) error {
	if id == "" {
		return types.ErrInvalidID
	}
	if name == "" {
		return types.ErrInvalidName
	}
	db, err := b.conn()
	if err != nil {
		return err
	}

	_, err = db.Exec(
		"INSERT INTO pipelines (id, name, created_at) VALUES (?, ?, ?)",
		id, name, createdAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("creating pipeline %s: %w", id, err)
	}
	return nil
}

// UpdatePipeline renames a pipeline. Returns ErrNotFound if no row matches.
func (b *Backend) UpdatePipeline(id, name string) error {
	if id == "" {
		return types.ErrInvalidID
	}
	if name == "" {
		return types.ErrInvalidName
	}
	db, err := b.conn()
	if err != nil {
		return err
	}

	res, err := db.Exec("UPDATE pipelines SET name = ? WHERE id = ?", name, id)
	if err != nil {
		return fmt.Errorf("updating pipeline %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return types.ErrNotFound
	}
	return nil
}

// DeletePipeline removes the pipeline row; the engine cascades the delete to
// every lead referencing it.
func (b *Backend) DeletePipeline(id string) error {
	if id == "" {
		return types.ErrInvalidID
	}
	db, err := b.conn()
	if err != nil {
		return err
	}

	res, err := db.Exec("DELETE FROM pipelines WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting pipeline %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return types.ErrNotFound
	}
	return nil
}
