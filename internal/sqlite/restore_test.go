package sqlite

import (
	"testing"
	"time"

	"github.com/pipeboard/pipeboard/pkg/types"
)

func snapshotFixture() []types.PipelineSnapshot {
	created := time.Date(2025, 2, 10, 8, 30, 0, 0, time.UTC)
	return []types.PipelineSnapshot{
		{
			Pipeline: types.Pipeline{ID: "p1", Name: "Sales", CreatedAt: created},
			Leads: []types.Lead{
				{ID: "l1", PipelineID: "p1", Name: "Acme", Stage: "new", Value: 5000, CreatedAt: created, UpdatedAt: created},
				{ID: "l2", PipelineID: "p1", Name: "Globex", Stage: "won", Value: 900, CreatedAt: created, UpdatedAt: created},
			},
		},
		{
			Pipeline: types.Pipeline{ID: "p2", Name: "Partners", CreatedAt: created.Add(time.Hour)},
			Leads: []types.Lead{
				{ID: "l3", PipelineID: "p2", Name: "Initech", Stage: "proposal", CreatedAt: created, UpdatedAt: created},
			},
		},
	}
}

func TestRestoreSnapshot(t *testing.T) {
	b := newTestBackend(t)

	counts, err := b.RestoreSnapshot(snapshotFixture(), "p1")
	if err != nil {
		t.Fatalf("RestoreSnapshot: %v", err)
	}
	if counts.Pipelines != 2 || counts.Leads != 3 {
		t.Errorf("counts = %+v, want 2 pipelines / 3 leads", counts)
	}

	pipelines, err := b.GetAllPipelines()
	if err != nil {
		t.Fatalf("GetAllPipelines: %v", err)
	}
	if len(pipelines) != 2 {
		t.Fatalf("expected 2 pipelines, got %d", len(pipelines))
	}

	leads, err := b.GetAllLeads("")
	if err != nil {
		t.Fatalf("GetAllLeads: %v", err)
	}
	if len(leads) != 3 {
		t.Fatalf("expected 3 leads, got %d", len(leads))
	}

	current, ok, err := b.GetSetting(types.SettingCurrentPipeline)
	if err != nil || !ok || current != "p1" {
		t.Errorf("current pipeline setting = %q, %v, %v; want p1", current, ok, err)
	}
}

// Re-running the same restore converges instead of duplicating rows: upserts
// are keyed by stable identifiers.
func TestRestoreSnapshot_Idempotent(t *testing.T) {
	b := newTestBackend(t)

	if _, err := b.RestoreSnapshot(snapshotFixture(), "p1"); err != nil {
		t.Fatalf("first restore: %v", err)
	}
	if _, err := b.RestoreSnapshot(snapshotFixture(), "p1"); err != nil {
		t.Fatalf("second restore: %v", err)
	}

	pipelines, _ := b.GetAllPipelines()
	leads, _ := b.GetAllLeads("")
	if len(pipelines) != 2 || len(leads) != 3 {
		t.Errorf("restore duplicated rows: %d pipelines, %d leads", len(pipelines), len(leads))
	}
}

// Restoring over an existing pipeline must not disturb leads that are
// absent from the snapshot: the pipeline upsert may not cascade.
func TestRestoreSnapshot_PreservesLeadsOutsideSnapshot(t *testing.T) {
	b := newTestBackend(t)
	mustCreatePipeline(t, b, "p1", "Sales")

	local := &types.Lead{ID: "local-only", PipelineID: "p1", Name: "Hooli", Stage: "new"}
	if err := b.CreateLead(local); err != nil {
		t.Fatalf("CreateLead: %v", err)
	}

	snap := []types.PipelineSnapshot{{
		Pipeline: types.Pipeline{ID: "p1", Name: "Sales (restored)", CreatedAt: time.Now().UTC()},
		Leads:    []types.Lead{{ID: "l1", PipelineID: "p1", Name: "Acme", Stage: "won"}},
	}}
	if _, err := b.RestoreSnapshot(snap, ""); err != nil {
		t.Fatalf("RestoreSnapshot: %v", err)
	}

	leads, err := b.GetAllLeads("p1")
	if err != nil {
		t.Fatalf("GetAllLeads: %v", err)
	}
	ids := make(map[string]bool, len(leads))
	for _, l := range leads {
		ids[l.ID] = true
	}
	if !ids["local-only"] {
		t.Fatalf("lead outside the snapshot was deleted by restore; remaining: %v", ids)
	}
	if !ids["l1"] {
		t.Errorf("snapshot lead missing after restore; remaining: %v", ids)
	}

	pipelines, _ := b.GetAllPipelines()
	if len(pipelines) != 1 || pipelines[0].Name != "Sales (restored)" {
		t.Errorf("pipeline row not upserted: %+v", pipelines)
	}
}

// Leads in old snapshots that predate the pipelineId field restore under
// their owning pipeline.
func TestRestoreSnapshot_FillsMissingPipelineID(t *testing.T) {
	b := newTestBackend(t)

	snap := []types.PipelineSnapshot{{
		Pipeline: types.Pipeline{ID: "p1", Name: "Sales", CreatedAt: time.Now().UTC()},
		Leads:    []types.Lead{{ID: "l1", Name: "Acme"}},
	}}
	if _, err := b.RestoreSnapshot(snap, ""); err != nil {
		t.Fatalf("RestoreSnapshot: %v", err)
	}

	leads, _ := b.GetAllLeads("p1")
	if len(leads) != 1 {
		t.Fatalf("lead not attached to pipeline: %d leads under p1", len(leads))
	}

	// No current pipeline in the snapshot leaves the pointer untouched.
	_, ok, _ := b.GetSetting(types.SettingCurrentPipeline)
	if ok {
		t.Error("current pipeline setting should not have been written")
	}
}
