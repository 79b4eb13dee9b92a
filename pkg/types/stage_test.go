package types

import "testing"

func TestCanonicalStageID(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{LegacyStageWon, StageWon},
		{LegacyStageLost, StageLost},
		{StageWon, StageWon},
		{"negotiation", "negotiation"},
		{"", ""},
	}
	for _, c := range cases {
		if got := CanonicalStageID(c.in); got != c.want {
			t.Errorf("CanonicalStageID(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestNormalizeStages(t *testing.T) {
	stages := []Stage{
		{ID: "new", Label: "New"},
		{ID: LegacyStageWon, Label: "Won"},
		{ID: LegacyStageLost, Label: "Lost"},
	}

	if !NormalizeStages(stages) {
		t.Fatal("expected NormalizeStages to report a change")
	}
	if stages[1].ID != StageWon {
		t.Errorf("expected %q, got %q", StageWon, stages[1].ID)
	}
	if stages[2].ID != StageLost {
		t.Errorf("expected %q, got %q", StageLost, stages[2].ID)
	}

	// Second pass finds nothing left to rewrite.
	if NormalizeStages(stages) {
		t.Error("expected no change on already-canonical stages")
	}
}

func TestDefaultStages_UniqueIDs(t *testing.T) {
	seen := map[string]bool{}
	for _, s := range DefaultStages() {
		if seen[s.ID] {
			t.Errorf("duplicate stage id %q", s.ID)
		}
		seen[s.ID] = true
	}
	if !seen[StageWon] || !seen[StageLost] {
		t.Error("default stages must include won and lost")
	}
}
