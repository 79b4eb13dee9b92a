// Package backup produces and consumes versioned JSON snapshots of all user
// data: every pipeline with its nested leads plus the current-pipeline
// pointer.
package backup

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/pipeboard/pipeboard/pkg/types"
)

// Codec reads snapshots out of the entity store and writes them back in.
type Codec struct {
	store    types.Store
	settings types.Settings
}

// New creates a codec over the given store and settings facade.
func New(store types.Store, settings types.Settings) *Codec {
	return &Codec{store: store, settings: settings}
}

// Result reports the outcome of an export so the caller can show a
// notification instead of handling a raised error.
type Result struct {
	OK      bool   `json:"ok"`
	Path    string `json:"path,omitempty"`
	Message string `json:"message"`
}

// Create assembles a backup document from the full entity graph and records
// its timestamp as the new last-backup setting.
func (c *Codec) Create() (*types.BackupDocument, error) {
	pipelines, err := c.store.GetAllPipelines()
	if err != nil {
		return nil, fmt.Errorf("reading pipelines: %w", err)
	}

	snapshots := make([]types.PipelineSnapshot, 0, len(pipelines))
	for _, p := range pipelines {
		leads, err := c.store.GetAllLeads(p.ID)
		if err != nil {
			return nil, fmt.Errorf("reading leads for pipeline %s: %w", p.ID, err)
		}
		snapshots = append(snapshots, types.PipelineSnapshot{Pipeline: p, Leads: leads})
	}

	current, _, err := c.settings.GetItem(types.SettingCurrentPipeline)
	if err != nil {
		return nil, fmt.Errorf("reading current pipeline: %w", err)
	}

	timestamp := time.Now().UTC().Format(time.RFC3339)
	doc := &types.BackupDocument{
		Version:   types.BackupFormatVersion,
		Timestamp: timestamp,
		Data: types.BackupData{
			Pipelines:         snapshots,
			CurrentPipelineID: current,
		},
	}

	if err := c.settings.SetItem(types.SettingLastBackup, timestamp); err != nil {
		return nil, fmt.Errorf("recording backup timestamp: %w", err)
	}
	return doc, nil
}

// Encode serializes a backup document as pretty-printed JSON.
func (c *Codec) Encode(doc *types.BackupDocument) ([]byte, error) {
	return json.MarshalIndent(doc, "", "  ")
}

// Export creates a backup and writes it to path. Failures come back inside
// the Result, not as an error, so the caller can surface a notification
// either way.
func (c *Codec) Export(path string) Result {
	doc, err := c.Create()
	if err != nil {
		return Result{Message: fmt.Sprintf("backup failed: %v", err)}
	}
	data, err := c.Encode(doc)
	if err != nil {
		return Result{Message: fmt.Sprintf("backup failed: %v", err)}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return Result{Message: fmt.Sprintf("backup failed: %v", err)}
	}
	return Result{
		OK:      true,
		Path:    path,
		Message: fmt.Sprintf("backup written: %d pipelines", len(doc.Data.Pipelines)),
	}
}

// Restore parses a backup document and upserts its contents. Validation is
// structural only — the payload must be JSON with a data.pipelines array;
// individual fields are taken as-is. Nothing is written until validation
// passes, and the store applies the whole snapshot in one transaction.
func (c *Codec) Restore(raw []byte) (types.RestoreCounts, error) {
	var doc types.BackupDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return types.RestoreCounts{}, fmt.Errorf("%w: not valid JSON: %v", types.ErrInvalidBackup, err)
	}
	if doc.Data.Pipelines == nil {
		return types.RestoreCounts{}, fmt.Errorf("%w: missing data.pipelines", types.ErrInvalidBackup)
	}

	counts, err := c.store.RestoreSnapshot(doc.Data.Pipelines, doc.Data.CurrentPipelineID)
	if err != nil {
		return types.RestoreCounts{}, fmt.Errorf("restoring snapshot: %w", err)
	}
	return counts, nil
}
