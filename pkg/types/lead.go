package types

import "time"

// Lead is a single prospect/opportunity record. Stage is a soft reference to
// a stage identifier in the owning pipeline's stage configuration; values
// that match no configured stage are tolerated and surfaced by consumers as
// unclassified rather than rejected.
type Lead struct {
	ID         string `json:"id"`
	PipelineID string `json:"pipelineId"`

	// Contact and company fields.
	Name        string `json:"name"`
	ContactName string `json:"contactName,omitempty"`
	JobTitle    string `json:"jobTitle,omitempty"`
	Email       string `json:"email,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Mobile      string `json:"mobile,omitempty"`
	Company     string `json:"company,omitempty"`
	TaxID       string `json:"taxId,omitempty"`
	Address     string `json:"address,omitempty"`
	City        string `json:"city,omitempty"`
	PostalCode  string `json:"postalCode,omitempty"`
	Country     string `json:"country,omitempty"`

	// Sales fields.
	Stage          string  `json:"stage"`
	Value          float64 `json:"value"`
	Notes          string  `json:"notes,omitempty"`
	NextAction     string  `json:"nextAction,omitempty"`
	NextActionDate string  `json:"nextActionDate,omitempty"`
	NextActionTime string  `json:"nextActionTime,omitempty"`

	// Provenance fields.
	Source     string `json:"source,omitempty"`
	Website    string `json:"website,omitempty"`
	SocialLink string `json:"socialLink,omitempty"`
	OfferLink  string `json:"offerLink,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ApplyField sets a single lead field addressed by its column name, as used
// in Store.UpdateLead patches. Returns false for unknown columns and for
// values of the wrong type. Timestamps are not settable through patches; the
// store stamps updated_at itself.
func (l *Lead) ApplyField(column string, value any) bool {
	switch column {
	case "value":
		switch v := value.(type) {
		case float64:
			l.Value = v
		case int:
			l.Value = float64(v)
		case int64:
			l.Value = float64(v)
		default:
			return false
		}
		return true
	}

	s, ok := value.(string)
	if !ok {
		return false
	}
	switch column {
	case "pipeline_id":
		l.PipelineID = s
	case "name":
		l.Name = s
	case "contact_name":
		l.ContactName = s
	case "job_title":
		l.JobTitle = s
	case "email":
		l.Email = s
	case "phone":
		l.Phone = s
	case "mobile":
		l.Mobile = s
	case "company":
		l.Company = s
	case "tax_id":
		l.TaxID = s
	case "address":
		l.Address = s
	case "city":
		l.City = s
	case "postal_code":
		l.PostalCode = s
	case "country":
		l.Country = s
	case "stage":
		l.Stage = s
	case "notes":
		l.Notes = s
	case "next_action":
		l.NextAction = s
	case "next_action_date":
		l.NextActionDate = s
	case "next_action_time":
		l.NextActionTime = s
	case "source":
		l.Source = s
	case "website":
		l.Website = s
	case "social_link":
		l.SocialLink = s
	case "offer_link":
		l.OfferLink = s
	default:
		return false
	}
	return true
}
