package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Status is the lifecycle attribute of a client record. There is no enforced
// transition graph: update may set any status, and soft deletion forces
// StatusInactive unconditionally.
type Status string

const (
	StatusActive   Status = "ACTIVE"
	StatusInactive Status = "INACTIVE"
	StatusProspect Status = "PROSPECT"
)

// IsValid reports whether s is one of the three known statuses.
func (s Status) IsValid() bool {
	switch s {
	case StatusActive, StatusInactive, StatusProspect:
		return true
	}
	return false
}

// DefaultStatus returns StatusProspect for blank or whitespace-only input and
// the input unchanged otherwise. Enum membership is a field-level constraint
// checked at the request boundary, not here.
func DefaultStatus(raw string) Status {
	if strings.TrimSpace(raw) == "" {
		return StatusProspect
	}
	return Status(raw)
}

// Client is the sole entity of the system.
//
// Invariants:
//   - CPF is stored digits-only, unique, and immutable after creation
//   - Email is unique across all records
//   - Status is always one of the three enumerated values
//   - CreatedAt is set once at insert; UpdatedAt refreshes on every mutation
//
// Records are never hard-deleted: deletion sets Status to INACTIVE.
type Client struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	CPF       string    `json:"taxId"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
