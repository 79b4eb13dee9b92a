package types

// Stage is one column of a pipeline's board. Stage lists are stored as
// serialized JSON under the settings facade, one list per pipeline; they are
// not rows in the relational schema's hot path. Ordering is the array
// position.
type Stage struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Icon  string `json:"icon,omitempty"`
	Emoji string `json:"emoji,omitempty"`
	Color string `json:"color,omitempty"`
}

// Legacy stage identifiers from before the won/lost rename. Records carrying
// them are rewritten to the canonical identifiers on load.
const (
	LegacyStageWon  = "closed_won"
	LegacyStageLost = "closed_lost"
)

// Canonical identifiers for the terminal stages.
const (
	StageWon  = "won"
	StageLost = "lost"
)

// CanonicalStageID maps legacy stage identifiers to their canonical form.
// Any other identifier is returned unchanged.
func CanonicalStageID(id string) string {
	switch id {
	case LegacyStageWon:
		return StageWon
	case LegacyStageLost:
		return StageLost
	default:
		return id
	}
}

// NormalizeStages rewrites legacy identifiers in a stage list in place.
// Returns true if any stage was rewritten.
func NormalizeStages(stages []Stage) bool {
	changed := false
	for i := range stages {
		if c := CanonicalStageID(stages[i].ID); c != stages[i].ID {
			stages[i].ID = c
			changed = true
		}
	}
	return changed
}

// DefaultStages returns the stage list seeded for a pipeline that has no
// stored stage configuration.
func DefaultStages() []Stage {
	return []Stage{
		{ID: "new", Label: "New", Icon: "sparkles", Color: "blue"},
		{ID: "contacted", Label: "Contacted", Icon: "phone", Color: "cyan"},
		{ID: "qualified", Label: "Qualified", Icon: "badge-check", Color: "teal"},
		{ID: "proposal", Label: "Proposal", Icon: "file-text", Color: "amber"},
		{ID: "negotiation", Label: "Negotiation", Icon: "handshake", Color: "orange"},
		{ID: StageWon, Label: "Won", Icon: "trophy", Emoji: "🎉", Color: "green"},
		{ID: StageLost, Label: "Lost", Icon: "x-circle", Color: "red"},
	}
}
