package cv

import "time"

// Status is the persistence state reported to observers.
type Status string

const (
	StatusIdle   Status = "idle"
	StatusSaving Status = "saving"
	StatusSaved  Status = "saved"
	StatusError  Status = "error"
)

// StatusEvent describes a status transition. Revision counts the mutations
// applied to the Document since the Store was created.
type StatusEvent struct {
	Status   Status    `json:"status"`
	Revision uint64    `json:"revision"`
	Time     time.Time `json:"time"`
	Error    string    `json:"error,omitempty"`
}
