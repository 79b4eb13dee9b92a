package types

import "time"

// Pipeline is a named collection of leads. Deleting a pipeline cascades to
// every lead that references it.
type Pipeline struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}
