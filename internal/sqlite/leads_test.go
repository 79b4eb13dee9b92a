package sqlite

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/pipeboard/pipeboard/pkg/types"
)

func mustCreatePipeline(t *testing.T, b *Backend, id, name string) {
	t.Helper()
	if err := b.CreatePipeline(id, name, time.Now().UTC()); err != nil {
		t.Fatalf("CreatePipeline %s: %v", id, err)
	}
}

func TestLeads_CreateAndGet(t *testing.T) {
	b := newTestBackend(t)
	mustCreatePipeline(t, b, "p1", "Sales")

	lead := &types.Lead{
		PipelineID:  "p1",
		Name:        "Acme Deal",
		ContactName: "Jo Fields",
		Email:       "jo@acme.example",
		Company:     "Acme",
		Stage:       "new",
		Value:       5000,
		Notes:       "met at expo",
	}
	if err := b.CreateLead(lead); err != nil {
		t.Fatalf("CreateLead: %v", err)
	}
	if lead.ID == "" {
		t.Fatal("expected generated ID")
	}
	if lead.CreatedAt.IsZero() || !lead.UpdatedAt.Equal(lead.CreatedAt) {
		t.Errorf("timestamps not stamped at creation: %v / %v", lead.CreatedAt, lead.UpdatedAt)
	}

	leads, err := b.GetAllLeads("p1")
	if err != nil {
		t.Fatalf("GetAllLeads: %v", err)
	}
	if len(leads) != 1 {
		t.Fatalf("expected 1 lead, got %d", len(leads))
	}
	got := leads[0]
	if got.Name != "Acme Deal" || got.Email != "jo@acme.example" || got.Value != 5000 {
		t.Errorf("lead fields lost on round-trip: %+v", got)
	}
}

func TestLeads_ScopedAndOrdered(t *testing.T) {
	b := newTestBackend(t)
	mustCreatePipeline(t, b, "p1", "Sales")
	mustCreatePipeline(t, b, "p2", "Partners")

	base := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		lead := &types.Lead{
			PipelineID: "p1",
			Name:       fmt.Sprintf("Deal %d", i),
			CreatedAt:  base.Add(time.Duration(i) * time.Minute),
		}
		if err := b.CreateLead(lead); err != nil {
			t.Fatalf("CreateLead: %v", err)
		}
	}
	if err := b.CreateLead(&types.Lead{PipelineID: "p2", Name: "Other"}); err != nil {
		t.Fatalf("CreateLead: %v", err)
	}

	scoped, err := b.GetAllLeads("p1")
	if err != nil {
		t.Fatalf("GetAllLeads(p1): %v", err)
	}
	if len(scoped) != 3 {
		t.Fatalf("expected 3 leads in p1, got %d", len(scoped))
	}
	// Newest first.
	if scoped[0].Name != "Deal 2" || scoped[2].Name != "Deal 0" {
		t.Errorf("wrong order: %s ... %s", scoped[0].Name, scoped[2].Name)
	}

	all, err := b.GetAllLeads("")
	if err != nil {
		t.Fatalf("GetAllLeads(all): %v", err)
	}
	if len(all) != 4 {
		t.Errorf("expected 4 leads total, got %d", len(all))
	}
}

// UpdateLead always stamps updated_at, even when the caller did not request
// it.
func TestLeads_UpdateStampsUpdatedAt(t *testing.T) {
	b := newTestBackend(t)
	mustCreatePipeline(t, b, "p1", "Sales")

	lead := &types.Lead{
		PipelineID: "p1",
		Name:       "Acme Deal",
		Stage:      "new",
		CreatedAt:  time.Now().UTC().Add(-time.Hour),
	}
	if err := b.CreateLead(lead); err != nil {
		t.Fatalf("CreateLead: %v", err)
	}
	before := lead.UpdatedAt

	stamp, err := b.UpdateLead(lead.ID, map[string]any{"stage": "won"})
	if err != nil {
		t.Fatalf("UpdateLead: %v", err)
	}

	leads, _ := b.GetAllLeads("p1")
	got := leads[0]
	if got.Stage != "won" {
		t.Errorf("stage not updated: %q", got.Stage)
	}
	if got.UpdatedAt.Before(before) {
		t.Errorf("updated_at went backwards: %v -> %v", before, got.UpdatedAt)
	}
	if got.UpdatedAt.Equal(before) && !before.Equal(got.CreatedAt) {
		t.Errorf("updated_at not stamped: still %v", got.UpdatedAt)
	}
	// The returned stamp is the value the row holds, to storage precision.
	if !got.UpdatedAt.Equal(stamp.Truncate(time.Second)) {
		t.Errorf("returned stamp %v does not match stored %v", stamp, got.UpdatedAt)
	}
}

func TestLeads_UpdateRejectsBadFields(t *testing.T) {
	b := newTestBackend(t)
	mustCreatePipeline(t, b, "p1", "Sales")
	lead := &types.Lead{PipelineID: "p1", Name: "Deal"}
	if err := b.CreateLead(lead); err != nil {
		t.Fatalf("CreateLead: %v", err)
	}

	_, err := b.UpdateLead(lead.ID, map[string]any{"updated_at": "2020-01-01T00:00:00Z"})
	if !errors.Is(err, types.ErrInvalidField) {
		t.Errorf("expected ErrInvalidField for updated_at patch, got %v", err)
	}
	_, err = b.UpdateLead(lead.ID, map[string]any{"no_such": "x"})
	if !errors.Is(err, types.ErrInvalidField) {
		t.Errorf("expected ErrInvalidField for unknown column, got %v", err)
	}
	_, err = b.UpdateLead(lead.ID, map[string]any{"value": "not a number"})
	if !errors.Is(err, types.ErrInvalidField) {
		t.Errorf("expected ErrInvalidField for string value, got %v", err)
	}
	if _, err := b.UpdateLead("missing", map[string]any{"stage": "won"}); err != types.ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestLeads_DeleteSingle(t *testing.T) {
	b := newTestBackend(t)
	mustCreatePipeline(t, b, "p1", "Sales")
	lead := &types.Lead{PipelineID: "p1", Name: "Deal"}
	if err := b.CreateLead(lead); err != nil {
		t.Fatalf("CreateLead: %v", err)
	}

	if err := b.DeleteLead(lead.ID); err != nil {
		t.Fatalf("DeleteLead: %v", err)
	}
	if err := b.DeleteLead(lead.ID); err != types.ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

// Bulk-delete 50 of 100 leads; exactly 50 remain and none from the deleted
// set.
func TestLeads_DeleteMany(t *testing.T) {
	b := newTestBackend(t)
	mustCreatePipeline(t, b, "p1", "Sales")

	var all []string
	for i := 0; i < 100; i++ {
		lead := &types.Lead{PipelineID: "p1", Name: fmt.Sprintf("Deal %03d", i)}
		if err := b.CreateLead(lead); err != nil {
			t.Fatalf("CreateLead: %v", err)
		}
		all = append(all, lead.ID)
	}

	doomed := all[:50]
	if err := b.DeleteLeads(doomed); err != nil {
		t.Fatalf("DeleteLeads: %v", err)
	}

	remaining, err := b.GetAllLeads("p1")
	if err != nil {
		t.Fatalf("GetAllLeads: %v", err)
	}
	if len(remaining) != 50 {
		t.Fatalf("expected 50 leads remaining, got %d", len(remaining))
	}
	doomedSet := make(map[string]bool, len(doomed))
	for _, id := range doomed {
		doomedSet[id] = true
	}
	for _, l := range remaining {
		if doomedSet[l.ID] {
			t.Errorf("deleted lead %s still present", l.ID)
		}
	}

	// Empty list is a no-op, not an error.
	if err := b.DeleteLeads(nil); err != nil {
		t.Errorf("DeleteLeads(nil): %v", err)
	}
}

// A lead whose stage matches no configured stage is still stored and
// retrievable; the store does not enforce the soft reference.
func TestLeads_OrphanStageTolerated(t *testing.T) {
	b := newTestBackend(t)
	mustCreatePipeline(t, b, "p1", "Sales")

	lead := &types.Lead{PipelineID: "p1", Name: "Odd One", Stage: "banana"}
	if err := b.CreateLead(lead); err != nil {
		t.Fatalf("CreateLead: %v", err)
	}

	leads, err := b.GetAllLeads("p1")
	if err != nil {
		t.Fatalf("GetAllLeads: %v", err)
	}
	if len(leads) != 1 || leads[0].Stage != "banana" {
		t.Errorf("orphan stage value not preserved: %+v", leads)
	}
}
