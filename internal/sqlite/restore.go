// Snapshot restore. Runs as one transaction so repeated restores of the same
// document converge (upserts keyed by stable IDs) and a mid-restore failure
// leaves the prior state untouched.
package sqlite

import (
	"fmt"
	"strings"
	"time"

	"github.com/pipeboard/pipeboard/pkg/types"
)

// RestoreSnapshot upserts every pipeline and its nested leads, then restores
// the current-pipeline setting when currentPipelineID is non-empty. Returns
// the number of pipeline and lead rows written.
func (b *Backend) RestoreSnapshot(pipelines []types.PipelineSnapshot, currentPipelineID string) (types.RestoreCounts, error) {
	var counts types.RestoreCounts

	db, err := b.conn()
	if err != nil {
		return counts, err
	}

	tx, err := db.Begin()
	if err != nil {
		return counts, fmt.Errorf("beginning restore transaction: %w", err)
	}
	defer tx.Rollback()

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(leadColumns)), ", ")
	leadStmt, err := tx.Prepare("INSERT OR REPLACE INTO leads (" + leadColumnList + ") VALUES (" + placeholders + ")")
	if err != nil {
		return counts, fmt.Errorf("preparing lead upsert: %w", err)
	}
	defer leadStmt.Close()

	for _, p := range pipelines {
		createdAt := p.CreatedAt
		if createdAt.IsZero() {
			createdAt = time.Now().UTC()
		}
		// ON CONFLICT rather than OR REPLACE: with foreign keys on, a
		// REPLACE of an existing pipeline row runs as delete-then-insert
		// and the delete cascades to every lead of that pipeline. The
		// in-place update leaves leads outside the snapshot alone.
		_, err := tx.Exec(
			"INSERT INTO pipelines (id, name, created_at) VALUES (?, ?, ?) "+
				"ON CONFLICT(id) DO UPDATE SET name = excluded.name, created_at = excluded.created_at",
			p.ID, p.Name, createdAt.UTC().Format(time.RFC3339),
		)
		if err != nil {
			return types.RestoreCounts{}, fmt.Errorf("restoring pipeline %s: %w", p.ID, err)
		}
		counts.Pipelines++

		for i := range p.Leads {
			lead := p.Leads[i]
			// Snapshots predating the pipelineId field on leads still
			// restore under their owning pipeline.
			if lead.PipelineID == "" {
				lead.PipelineID = p.ID
			}
			if lead.CreatedAt.IsZero() {
				lead.CreatedAt = createdAt
			}
			if lead.UpdatedAt.IsZero() {
				lead.UpdatedAt = lead.CreatedAt
			}
			if _, err := leadStmt.Exec(leadArgs(&lead)...); err != nil {
				return types.RestoreCounts{}, fmt.Errorf("restoring lead %s: %w", lead.ID, err)
			}
			counts.Leads++
		}
	}

	if currentPipelineID != "" {
		_, err := tx.Exec(
			"INSERT OR REPLACE INTO settings (key, value) VALUES (?, ?)",
			types.SettingCurrentPipeline, currentPipelineID,
		)
		if err != nil {
			return types.RestoreCounts{}, fmt.Errorf("restoring current pipeline setting: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return types.RestoreCounts{}, fmt.Errorf("committing restore: %w", err)
	}
	return counts, nil
}
