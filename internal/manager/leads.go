package manager

import (
	"fmt"
	"time"

	"github.com/pipeboard/pipeboard/pkg/types"
)

// UnclassifiedGroup is the board bucket for leads whose stage matches no
// configured stage identifier. Such leads are displayed, never dropped.
const UnclassifiedGroup = "unclassified"

// LeadManager owns the lead collection for one pipeline.
type LeadManager struct {
	store      types.Store
	pipelineID string
	leads      []types.Lead
}

// NewLeadManager creates a manager; call Load before use.
func NewLeadManager(store types.Store) *LeadManager {
	return &LeadManager{store: store}
}

// Load reads the pipeline's leads, newest first. Leads still carrying a
// legacy stage identifier are rewritten to the canonical one and persisted
// back, so after one load cycle no record retains the legacy value.
func (m *LeadManager) Load(pipelineID string) error {
	leads, err := m.store.GetAllLeads(pipelineID)
	if err != nil {
		return fmt.Errorf("loading leads: %w", err)
	}

	for i := range leads {
		canonical := types.CanonicalStageID(leads[i].Stage)
		if canonical == leads[i].Stage {
			continue
		}
		stamp, err := m.store.UpdateLead(leads[i].ID, map[string]any{"stage": canonical})
		if err != nil {
			return fmt.Errorf("migrating lead %s stage: %w", leads[i].ID, err)
		}
		leads[i].Stage = canonical
		leads[i].UpdatedAt = stamp
	}

	m.pipelineID = pipelineID
	m.leads = leads
	return nil
}

// Leads returns the in-memory collection.
func (m *LeadManager) Leads() []types.Lead {
	return m.leads
}

// Add persists a new lead in the loaded pipeline and prepends it to the
// collection. ID and timestamps are assigned here.
func (m *LeadManager) Add(lead types.Lead) (types.Lead, error) {
	if lead.PipelineID == "" {
		lead.PipelineID = m.pipelineID
	}
	lead.ID = newID()
	now := time.Now().UTC()
	lead.CreatedAt = now
	lead.UpdatedAt = now

	if err := m.store.CreateLead(&lead); err != nil {
		return types.Lead{}, fmt.Errorf("adding lead: %w", err)
	}
	m.leads = append([]types.Lead{lead}, m.leads...)
	return lead, nil
}

// Update patches the named columns on one lead, then mirrors the patch into
// the in-memory collection. The store stamps updated_at and the mirror takes
// that same stamp, so the collection matches the row without a re-read.
func (m *LeadManager) Update(id string, fields map[string]any) error {
	i := m.findIndex(id)
	if i == -1 {
		return types.ErrNotFound
	}
	stamp, err := m.store.UpdateLead(id, fields)
	if err != nil {
		return fmt.Errorf("updating lead: %w", err)
	}

	for col, val := range fields {
		m.leads[i].ApplyField(col, val)
	}
	m.leads[i].UpdatedAt = stamp
	return nil
}

// MoveToStage reassigns a lead to a stage column.
func (m *LeadManager) MoveToStage(id, stageID string) error {
	return m.Update(id, map[string]any{"stage": stageID})
}

// Delete removes one lead. The store delete completes before the collection
// changes, so the UI never keeps a row that failed to delete.
func (m *LeadManager) Delete(id string) error {
	i := m.findIndex(id)
	if i == -1 {
		return types.ErrNotFound
	}
	if err := m.store.DeleteLead(id); err != nil {
		return fmt.Errorf("deleting lead: %w", err)
	}
	m.leads = append(m.leads[:i], m.leads[i+1:]...)
	return nil
}

// DeleteMany removes a batch of leads in one store call.
func (m *LeadManager) DeleteMany(ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	if err := m.store.DeleteLeads(ids); err != nil {
		return fmt.Errorf("deleting leads: %w", err)
	}

	doomed := make(map[string]bool, len(ids))
	for _, id := range ids {
		doomed[id] = true
	}
	kept := m.leads[:0]
	for _, l := range m.leads {
		if !doomed[l.ID] {
			kept = append(kept, l)
		}
	}
	m.leads = kept
	return nil
}

// GroupByStage buckets the collection by stage identifier in the given stage
// order. Leads whose stage matches no configured identifier land together in
// the UnclassifiedGroup bucket — each lead appears in exactly one group.
func (m *LeadManager) GroupByStage(stages []types.Stage) map[string][]types.Lead {
	known := make(map[string]bool, len(stages))
	groups := make(map[string][]types.Lead, len(stages)+1)
	for _, s := range stages {
		known[s.ID] = true
		groups[s.ID] = nil
	}

	for _, l := range m.leads {
		key := l.Stage
		if !known[key] {
			key = UnclassifiedGroup
		}
		groups[key] = append(groups[key], l)
	}
	return groups
}

// TotalValue sums the monetary value of every lead in the collection.
func (m *LeadManager) TotalValue() float64 {
	var total float64
	for _, l := range m.leads {
		total += l.Value
	}
	return total
}

// StageValue sums the monetary value of the leads in one stage.
func (m *LeadManager) StageValue(stageID string) float64 {
	var total float64
	for _, l := range m.leads {
		if l.Stage == stageID {
			total += l.Value
		}
	}
	return total
}

func (m *LeadManager) findIndex(id string) int {
	for i, l := range m.leads {
		if l.ID == id {
			return i
		}
	}
	return -1
}
