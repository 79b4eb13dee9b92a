// Package manager translates UI-level intents into store and settings calls
// and maintains the in-memory collections the UI renders from. Every mutation
// waits for the persistence call before touching in-memory state, so
// in-memory state always implies persisted state; there is no re-read on the
// hot path.
package manager

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pipeboard/pipeboard/pkg/types"
)

// DefaultPipelineName is the pipeline created on first run.
const DefaultPipelineName = "My Pipeline"

// PipelineManager owns the pipeline collection and the current-pipeline
// pointer. The pointer always references an existing pipeline, or is empty
// when none exist.
type PipelineManager struct {
	store     types.Store
	settings  types.Settings
	pipelines []types.Pipeline
	currentID string
}

// NewPipelineManager creates a manager; call Load before use.
func NewPipelineManager(store types.Store, settings types.Settings) *PipelineManager {
	return &PipelineManager{store: store, settings: settings}
}

// Load reads all pipelines and the current-pipeline setting. A pointer that
// references a missing pipeline is repaired: it moves to the newest existing
// pipeline, or empties when there are none. The repaired value is persisted.
func (m *PipelineManager) Load() error {
	pipelines, err := m.store.GetAllPipelines()
	if err != nil {
		return fmt.Errorf("loading pipelines: %w", err)
	}
	m.pipelines = pipelines

	current, _, err := m.settings.GetItem(types.SettingCurrentPipeline)
	if err != nil {
		return fmt.Errorf("loading current pipeline: %w", err)
	}

	if m.findIndex(current) == -1 {
		current = ""
		if len(m.pipelines) > 0 {
			current = m.pipelines[0].ID
		}
		if err := m.settings.SetItem(types.SettingCurrentPipeline, current); err != nil {
			return fmt.Errorf("repairing current pipeline: %w", err)
		}
	}
	m.currentID = current
	return nil
}

// EnsureDefault creates the default pipeline when none exist and makes it
// current. Reports whether a pipeline was created. The store itself never
// recreates pipelines implicitly; this is the application-level first-run
// invariant.
func (m *PipelineManager) EnsureDefault() (types.Pipeline, bool, error) {
	if len(m.pipelines) > 0 {
		return types.Pipeline{}, false, nil
	}
	p, err := m.Create(DefaultPipelineName)
	if err != nil {
		return types.Pipeline{}, false, err
	}
	return p, true, nil
}

// Pipelines returns the in-memory collection, newest first.
func (m *PipelineManager) Pipelines() []types.Pipeline {
	return m.pipelines
}

// CurrentID returns the current-pipeline pointer, empty when no pipelines
// exist.
func (m *PipelineManager) CurrentID() string {
	return m.currentID
}

// SetCurrent points the current-pipeline setting at an existing pipeline.
func (m *PipelineManager) SetCurrent(id string) error {
	if m.findIndex(id) == -1 {
		return types.ErrNotFound
	}
	if err := m.settings.SetItem(types.SettingCurrentPipeline, id); err != nil {
		return fmt.Errorf("setting current pipeline: %w", err)
	}
	m.currentID = id
	return nil
}

// Create persists a new pipeline and prepends it to the collection. The
// first pipeline created becomes current.
func (m *PipelineManager) Create(name string) (types.Pipeline, error) {
	if name == "" {
		return types.Pipeline{}, types.ErrInvalidName
	}

	p := types.Pipeline{
		ID:        newID(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
	if err := m.store.CreatePipeline(p.ID, p.Name, p.CreatedAt); err != nil {
		return types.Pipeline{}, fmt.Errorf("creating pipeline: %w", err)
	}

	m.pipelines = append([]types.Pipeline{p}, m.pipelines...)
	if m.currentID == "" {
		if err := m.SetCurrent(p.ID); err != nil {
			return types.Pipeline{}, err
		}
	}
	return p, nil
}

// Rename updates a pipeline's display name.
func (m *PipelineManager) Rename(id, name string) error {
	i := m.findIndex(id)
	if i == -1 {
		return types.ErrNotFound
	}
	if err := m.store.UpdatePipeline(id, name); err != nil {
		return fmt.Errorf("renaming pipeline: %w", err)
	}
	m.pipelines[i].Name = name
	return nil
}

// Delete removes a pipeline; the store cascades to its leads. When the
// deleted pipeline was current, the pointer advances to the newest remaining
// pipeline, or empties when none remain. The stored stage configuration for
// the pipeline is removed as well.
func (m *PipelineManager) Delete(id string) error {
	i := m.findIndex(id)
	if i == -1 {
		return types.ErrNotFound
	}
	if err := m.store.DeletePipeline(id); err != nil {
		return fmt.Errorf("deleting pipeline: %w", err)
	}
	m.pipelines = append(m.pipelines[:i], m.pipelines[i+1:]...)

	if err := m.settings.RemoveItem(types.StagesKey(id)); err != nil {
		return fmt.Errorf("removing stage configuration: %w", err)
	}

	if m.currentID == id {
		next := ""
		if len(m.pipelines) > 0 {
			next = m.pipelines[0].ID
		}
		if err := m.settings.SetItem(types.SettingCurrentPipeline, next); err != nil {
			return fmt.Errorf("advancing current pipeline: %w", err)
		}
		m.currentID = next
	}
	return nil
}

// findIndex returns the position of a pipeline in the collection, or -1.
// An empty id is never found.
func (m *PipelineManager) findIndex(id string) int {
	if id == "" {
		return -1
	}
	for i, p := range m.pipelines {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// newID generates a UUID v7, falling back to v4.
func newID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}
