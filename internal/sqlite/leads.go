// Lead row operations: hydration between SQLite rows and types.Lead, partial
// updates with forced updated_at stamping, and single/batch deletes.
package sqlite

import (
	"database/sql"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/pipeboard/pipeboard/pkg/types"
)

// leadColumns is the canonical column order used by every lead SELECT and
// INSERT in this package.
var leadColumns = []string{
	"id", "pipeline_id", "name", "contact_name", "job_title", "email",
	"phone", "mobile", "company", "tax_id", "address", "city",
	"postal_code", "country", "stage", "value", "notes", "next_action",
	"next_action_date", "next_action_time", "source", "website",
	"social_link", "offer_link", "created_at", "updated_at",
}

// patchableLeadColumns is the set of columns UpdateLead accepts. Timestamps
// are excluded: created_at is immutable and updated_at is stamped by the
// store itself.
var patchableLeadColumns = func() map[string]bool {
	m := make(map[string]bool, len(leadColumns))
	for _, c := range leadColumns {
		m[c] = true
	}
	delete(m, "id")
	delete(m, "created_at")
	delete(m, "updated_at")
	return m
}()

var leadColumnList = strings.Join(leadColumns, ", ")

// GetAllLeads returns leads ordered by creation time descending. A non-empty
// pipelineID scopes the result to one pipeline.
func (b *Backend) GetAllLeads(pipelineID string) ([]types.Lead, error) {
	db, err := b.conn()
	if err != nil {
		return nil, err
	}

	query := "SELECT " + leadColumnList + " FROM leads ORDER BY created_at DESC"
	args := []any{}
	if pipelineID != "" {
		query = "SELECT " + leadColumnList + " FROM leads WHERE pipeline_id = ? ORDER BY created_at DESC"
		args = append(args, pipelineID)
	}

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying leads: %w", err)
	}
	defer rows.Close()

	var leads []types.Lead
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		leads = append(leads, *lead)
	}
	return leads, rows.Err()
}

// CreateLead inserts a lead. An empty ID gets a generated UUID v7; both
// timestamps are set to creation time when unset. The lead struct is updated
// in place with the values actually stored.
func (b *Backend) CreateLead(lead *types.Lead) error {
	if lead == nil {
		return types.ErrInvalidField
	}
	if lead.PipelineID == "" {
		return types.ErrInvalidID
	}
	if lead.Name == "" {
		return types.ErrInvalidName
	}
	db, err := b.conn()
	if err != nil {
		return err
	}

	if lead.ID == "" {
		lead.ID = generateID()
	}
	now := time.Now().UTC()
	if lead.CreatedAt.IsZero() {
		lead.CreatedAt = now
	}
	if lead.UpdatedAt.IsZero() {
		lead.UpdatedAt = lead.CreatedAt
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(leadColumns)), ", ")
	_, err = db.Exec(
		"INSERT INTO leads ("+leadColumnList+") VALUES ("+placeholders+")",
		leadArgs(lead)...,
	)
	if err != nil {
		return fmt.Errorf("creating lead %s: %w", lead.ID, err)
	}
	return nil
}

// UpdateLead patches the named columns on one lead and always stamps
// updated_at to the current time as part of the same write, even when the
// caller did not ask for it. The stamp it wrote is returned. Unknown columns
// and wrong-typed values are rejected before anything is written.
func (b *Backend) UpdateLead(id string, fields map[string]any) (time.Time, error) {
	if id == "" {
		return time.Time{}, types.ErrInvalidID
	}
	db, err := b.conn()
	if err != nil {
		return time.Time{}, err
	}

	// Deterministic column order keeps the statement stable across calls.
	columns := make([]string, 0, len(fields))
	for col := range fields {
		if !patchableLeadColumns[col] {
			return time.Time{}, fmt.Errorf("%w: %s", types.ErrInvalidField, col)
		}
		columns = append(columns, col)
	}
	sort.Strings(columns)

	var (
		set  []string
		args []any
	)
	for _, col := range columns {
		val := fields[col]
		if col == "value" {
			switch v := val.(type) {
			case float64:
			case int:
				val = float64(v)
			case int64:
				val = float64(v)
			default:
				return time.Time{}, fmt.Errorf("%w: value must be numeric", types.ErrInvalidField)
			}
		} else if _, ok := val.(string); !ok {
			return time.Time{}, fmt.Errorf("%w: %s must be a string", types.ErrInvalidField, col)
		}
		set = append(set, col+" = ?")
		args = append(args, val)
	}

	stamp := time.Now().UTC()
	set = append(set, "updated_at = ?")
	args = append(args, stamp.Format(time.RFC3339))
	args = append(args, id)

	res, err := db.Exec("UPDATE leads SET "+strings.Join(set, ", ")+" WHERE id = ?", args...)
	if err != nil {
		return time.Time{}, fmt.Errorf("updating lead %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return time.Time{}, err
	}
	if n == 0 {
		return time.Time{}, types.ErrNotFound
	}
	return stamp, nil
}

// DeleteLead removes one lead by primary key.
func (b *Backend) DeleteLead(id string) error {
	if id == "" {
		return types.ErrInvalidID
	}
	db, err := b.conn()
	if err != nil {
		return err
	}

	res, err := db.Exec("DELETE FROM leads WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting lead %s: %w", id, err)
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

// DeleteLeads removes a batch of leads by primary key in one statement.
// An empty list is a no-op. IDs that match no row are ignored.
func (b *Backend) DeleteLeads(ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	db, err := b.conn()
	if err != nil {
		return err
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(ids)), ", ")
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	if _, err := db.Exec("DELETE FROM leads WHERE id IN ("+placeholders+")", args...); err != nil {
		return fmt.Errorf("deleting %d leads: %w", len(ids), err)
	}
	return nil
}

// rowScanner abstracts *sql.Row and *sql.Rows for hydration.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanLead hydrates one leads row into a types.Lead.
func scanLead(row rowScanner) (*types.Lead, error) {
	var (
		l                    types.Lead
		createdAt, updatedAt string
	)
	err := row.Scan(
		&l.ID, &l.PipelineID, &l.Name, &l.ContactName, &l.JobTitle,
		&l.Email, &l.Phone, &l.Mobile, &l.Company, &l.TaxID, &l.Address,
		&l.City, &l.PostalCode, &l.Country, &l.Stage, &l.Value, &l.Notes,
		&l.NextAction, &l.NextActionDate, &l.NextActionTime, &l.Source,
		&l.Website, &l.SocialLink, &l.OfferLink, &createdAt, &updatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("scanning lead: %w", err)
	}
	if l.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return nil, fmt.Errorf("parsing lead %s created_at: %w", l.ID, err)
	}
	if l.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt); err != nil {
		return nil, fmt.Errorf("parsing lead %s updated_at: %w", l.ID, err)
	}
	return &l, nil
}

// leadArgs returns the lead's values in leadColumns order.
func leadArgs(l *types.Lead) []any {
	return []any{
		l.ID, l.PipelineID, l.Name, l.ContactName, l.JobTitle, l.Email,
		l.Phone, l.Mobile, l.Company, l.TaxID, l.Address, l.City,
		l.PostalCode, l.Country, l.Stage, l.Value, l.Notes, l.NextAction,
		l.NextActionDate, l.NextActionTime, l.Source, l.Website,
		l.SocialLink, l.OfferLink,
		l.CreatedAt.UTC().Format(time.RFC3339),
		l.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
