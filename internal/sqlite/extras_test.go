package sqlite

import (
	"testing"

	"github.com/pipeboard/pipeboard/pkg/types"
)

func TestCustomActions(t *testing.T) {
	b := newTestBackend(t)

	id, err := b.SaveCustomAction(types.CustomAction{Label: "Call", Target: "tel:{{phone}}"})
	if err != nil {
		t.Fatalf("SaveCustomAction: %v", err)
	}
	if id == "" {
		t.Fatal("expected generated ID")
	}

	// Upsert by ID replaces, not duplicates.
	if _, err := b.SaveCustomAction(types.CustomAction{ID: id, Label: "Call now", Target: "tel:{{phone}}"}); err != nil {
		t.Fatalf("SaveCustomAction update: %v", err)
	}
	actions, err := b.ListCustomActions()
	if err != nil {
		t.Fatalf("ListCustomActions: %v", err)
	}
	if len(actions) != 1 || actions[0].Label != "Call now" {
		t.Errorf("unexpected actions: %+v", actions)
	}

	if err := b.DeleteCustomAction(id); err != nil {
		t.Fatalf("DeleteCustomAction: %v", err)
	}
	if err := b.DeleteCustomAction(id); err != types.ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestEmailTemplates(t *testing.T) {
	b := newTestBackend(t)

	id, err := b.SaveEmailTemplate(types.EmailTemplate{
		Name:    "Intro",
		Subject: "Hello {{contactName}}",
		Body:    "Hi {{contactName}}, ...",
	})
	if err != nil {
		t.Fatalf("SaveEmailTemplate: %v", err)
	}

	templates, err := b.ListEmailTemplates()
	if err != nil {
		t.Fatalf("ListEmailTemplates: %v", err)
	}
	if len(templates) != 1 || templates[0].ID != id || templates[0].Subject != "Hello {{contactName}}" {
		t.Errorf("unexpected templates: %+v", templates)
	}

	if _, err := b.SaveEmailTemplate(types.EmailTemplate{}); err != types.ErrInvalidName {
		t.Errorf("expected ErrInvalidName, got %v", err)
	}
}

func TestTeamMembers(t *testing.T) {
	b := newTestBackend(t)

	id, err := b.SaveTeamMember(types.TeamMember{Name: "Sam", Email: "sam@example.com", Role: "sales"})
	if err != nil {
		t.Fatalf("SaveTeamMember: %v", err)
	}

	members, err := b.ListTeamMembers()
	if err != nil {
		t.Fatalf("ListTeamMembers: %v", err)
	}
	if len(members) != 1 || members[0].ID != id {
		t.Errorf("unexpected members: %+v", members)
	}

	if err := b.DeleteTeamMember(id); err != nil {
		t.Fatalf("DeleteTeamMember: %v", err)
	}
	members, _ = b.ListTeamMembers()
	if len(members) != 0 {
		t.Errorf("member not deleted: %+v", members)
	}
}
