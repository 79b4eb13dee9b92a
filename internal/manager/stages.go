package manager

import (
	"encoding/json"
	"fmt"

	"github.com/pipeboard/pipeboard/pkg/types"
)

// StageManager owns one pipeline's stage configuration. Stage lists live as
// serialized JSON under the settings facade, not as relational rows.
type StageManager struct {
	settings   types.Settings
	pipelineID string
	stages     []types.Stage
}

// NewStageManager creates a manager; call Load before use.
func NewStageManager(settings types.Settings) *StageManager {
	return &StageManager{settings: settings}
}

// Load reads the pipeline's stage list. A pipeline with no stored
// configuration is seeded with the default stages. Legacy identifiers are
// migrated to their canonical form and the rewritten list is persisted, so
// the stored configuration never retains a legacy identifier past one load.
func (m *StageManager) Load(pipelineID string) error {
	m.pipelineID = pipelineID

	raw, ok, err := m.settings.GetItem(types.StagesKey(pipelineID))
	if err != nil {
		return fmt.Errorf("loading stages: %w", err)
	}
	if !ok {
		m.stages = types.DefaultStages()
		return m.save()
	}

	var stages []types.Stage
	if err := json.Unmarshal([]byte(raw), &stages); err != nil {
		return fmt.Errorf("parsing stage configuration: %w", err)
	}

	if types.NormalizeStages(stages) {
		m.stages = stages
		return m.save()
	}
	m.stages = stages
	return nil
}

// Stages returns the configured stage list in board order.
func (m *StageManager) Stages() []types.Stage {
	return m.stages
}

// Add appends a stage. Identifiers must be unique within the list.
func (m *StageManager) Add(stage types.Stage) error {
	if stage.ID == "" {
		return types.ErrInvalidID
	}
	if m.findIndex(stage.ID) != -1 {
		return types.ErrDuplicateStage
	}
	m.stages = append(m.stages, stage)
	return m.save()
}

// Update replaces the stage with the same identifier.
func (m *StageManager) Update(stage types.Stage) error {
	i := m.findIndex(stage.ID)
	if i == -1 {
		return types.ErrStageNotFound
	}
	m.stages[i] = stage
	return m.save()
}

// Remove deletes a stage from the list. Leads referencing the removed
// identifier become unclassified on the board; they are not touched.
func (m *StageManager) Remove(id string) error {
	i := m.findIndex(id)
	if i == -1 {
		return types.ErrStageNotFound
	}
	m.stages = append(m.stages[:i], m.stages[i+1:]...)
	return m.save()
}

// Reorder rearranges the list to match ids, which must be a permutation of
// the current identifiers.
func (m *StageManager) Reorder(ids []string) error {
	if len(ids) != len(m.stages) {
		return types.ErrStageNotFound
	}
	reordered := make([]types.Stage, 0, len(m.stages))
	for _, id := range ids {
		i := m.findIndex(id)
		if i == -1 {
			return types.ErrStageNotFound
		}
		reordered = append(reordered, m.stages[i])
	}
	m.stages = reordered
	return m.save()
}

// save persists the stage list under the pipeline's settings key.
func (m *StageManager) save() error {
	data, err := json.Marshal(m.stages)
	if err != nil {
		return fmt.Errorf("encoding stages: %w", err)
	}
	if err := m.settings.SetItem(types.StagesKey(m.pipelineID), string(data)); err != nil {
		return fmt.Errorf("saving stages: %w", err)
	}
	return nil
}

func (m *StageManager) findIndex(id string) int {
	for i, s := range m.stages {
		if s.ID == id {
			return i
		}
	}
	return -1
}
