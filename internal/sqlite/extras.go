// Auxiliary keyed tables backing the settings screens: custom actions,
// email templates, team members. List/upsert/delete only.
package sqlite

import (
	"fmt"

	"github.com/pipeboard/pipeboard/pkg/types"
)

// ListCustomActions returns all custom actions ordered by label.
func (b *Backend) ListCustomActions() ([]types.CustomAction, error) {
	db, err := b.conn()
	if err != nil {
		return nil, err
	}
	rows, err := db.Query("SELECT id, label, target FROM custom_actions ORDER BY label")
	if err != nil {
		return nil, fmt.Errorf("querying custom actions: %w", err)
	}
	defer rows.Close()

	var actions []types.CustomAction
	for rows.Next() {
		var a types.CustomAction
		if err := rows.Scan(&a.ID, &a.Label, &a.Target); err != nil {
			return nil, fmt.Errorf("scanning custom action: %w", err)
		}
		actions = append(actions, a)
	}
	return actions, rows.Err()
}

// SaveCustomAction upserts an action, generating an ID when empty.
// Returns the ID actually used.
func (b *Backend) SaveCustomAction(a types.CustomAction) (string, error) {
	if a.Label == "" {
		return "", types.ErrInvalidName
	}
	db, err := b.conn()
	if err != nil {
		return "", err
	}
	if a.ID == "" {
		a.ID = generateID()
	}
	_, err = db.Exec(
		"INSERT OR REPLACE INTO custom_actions (id, label, target) VALUES (?, ?, ?)",
		a.ID, a.Label, a.Target,
	)
	if err != nil {
		return "", fmt.Errorf("saving custom action %s: %w", a.ID, err)
	}
	return a.ID, nil
}

// DeleteCustomAction removes one action by ID.
func (b *Backend) DeleteCustomAction(id string) error {
	return b.deleteKeyed("custom_actions", id)
}

// ListEmailTemplates returns all templates ordered by name.
func (b *Backend) ListEmailTemplates() ([]types.EmailTemplate, error) {
	db, err := b.conn()
	if err != nil {
		return nil, err
	}
	rows, err := db.Query("SELECT id, name, subject, body FROM email_templates ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("querying email templates: %w", err)
	}
	defer rows.Close()

	var templates []types.EmailTemplate
	for rows.Next() {
		var t types.EmailTemplate
		if err := rows.Scan(&t.ID, &t.Name, &t.Subject, &t.Body); err != nil {
			return nil, fmt.Errorf("scanning email template: %w", err)
		}
		templates = append(templates, t)
	}
	return templates, rows.Err()
}

// SaveEmailTemplate upserts a template, generating an ID when empty.
func (b *Backend) SaveEmailTemplate(t types.EmailTemplate) (string, error) {
	if t.Name == "" {
		return "", types.ErrInvalidName
	}
	db, err := b.conn()
	if err != nil {
		return "", err
	}
	if t.ID == "" {
		t.ID = generateID()
	}
	_, err = db.Exec(
		"INSERT OR REPLACE INTO email_templates (id, name, subject, body) VALUES (?, ?, ?, ?)",
		t.ID, t.Name, t.Subject, t.Body,
	)
	if err != nil {
		return "", fmt.Errorf("saving email template %s: %w", t.ID, err)
	}
	return t.ID, nil
}

// DeleteEmailTemplate removes one template by ID.
func (b *Backend) DeleteEmailTemplate(id string) error {
	return b.deleteKeyed("email_templates", id)
}

// ListTeamMembers returns all team members ordered by name.
func (b *Backend) ListTeamMembers() ([]types.TeamMember, error) {
	db, err := b.conn()
	if err != nil {
		return nil, err
	}
	rows, err := db.Query("SELECT id, name, email, role FROM team_members ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("querying team members: %w", err)
	}
	defer rows.Close()

	var members []types.TeamMember
	for rows.Next() {
		var m types.TeamMember
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Role); err != nil {
			return nil, fmt.Errorf("scanning team member: %w", err)
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

// SaveTeamMember upserts a team member, generating an ID when empty.
func (b *Backend) SaveTeamMember(m types.TeamMember) (string, error) {
	if m.Name == "" {
		return "", types.ErrInvalidName
	}
	db, err := b.conn()
	if err != nil {
		return "", err
	}
	if m.ID == "" {
		m.ID = generateID()
	}
	_, err = db.Exec(
		"INSERT OR REPLACE INTO team_members (id, name, email, role) VALUES (?, ?, ?, ?)",
		m.ID, m.Name, m.Email, m.Role,
	)
	if err != nil {
		return "", fmt.Errorf("saving team member %s: %w", m.ID, err)
	}
	return m.ID, nil
}

// DeleteTeamMember removes one team member by ID.
func (b *Backend) DeleteTeamMember(id string) error {
	return b.deleteKeyed("team_members", id)
}

// deleteKeyed removes one row by primary key from a simple keyed table.
func (b *Backend) deleteKeyed(table, id string) error {
	if id == "" {
		return types.ErrInvalidID
	}
	db, err := b.conn()
	if err != nil {
		return err
	}
	res, err := db.Exec("DELETE FROM "+table+" WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting from %s: %w", table, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return types.ErrNotFound
	}
	return nil
}
