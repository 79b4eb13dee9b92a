package types

// CustomAction is a user-defined quick action shown on a lead card:
// a label plus a target URL template.
type CustomAction struct {
	ID     string `json:"id"`
	Label  string `json:"label"`
	Target string `json:"target"`
}

// EmailTemplate is a reusable subject/body pair for templated outreach.
type EmailTemplate struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// TeamMember is a named collaborator referenced from lead assignments.
type TeamMember struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
}
