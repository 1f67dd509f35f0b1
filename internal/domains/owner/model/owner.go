package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Roles an owner may carry. The field is optional.
const (
	RoleAdmin  = "admin"
	RoleWriter = "writer"
	RoleGuest  = "guest"
)

// Field bounds.
const (
	MinFirstNameLength = 4
	MaxFirstNameLength = 50
	MinLastNameLength  = 3
	MaxLastNameLength  = 60
	MinAge             = 1
	MaxAge             = 99
)

type Owner struct {
	ID        uuid.UUID `json:"id" db:"id"`
	FirstName string    `json:"firstName" db:"first_name"`
	LastName  string    `json:"lastName" db:"last_name"`
	FullName  string    `json:"fullName" db:"full_name"`
	Email     string    `json:"email" db:"email"`
	Role      *string   `json:"role,omitempty" db:"role"`
	Age       *int      `json:"age,omitempty" db:"age"`

	// ItemCount is maintained server-side by the consistency layer and
	// always tracks the number of items referencing this owner.
	ItemCount int `json:"itemCount" db:"item_count"`

	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// Normalize derives and clamps fields on a record about to be persisted.
// prev is the before-image (nil on creation); next holds the proposed
// state. The function is pure: no ambient record state, no I/O.
//
// Rules:
//   - names are trimmed, email is trimmed and lowercased
//   - fullName is recomputed as "first last" whenever either name part
//     changed relative to prev
//   - age below the minimum is clamped to the minimum instead of being
//     rejected
func Normalize(prev *Owner, next Owner) Owner {
	next.FirstName = strings.TrimSpace(next.FirstName)
	next.LastName = strings.TrimSpace(next.LastName)
	next.Email = strings.ToLower(strings.TrimSpace(next.Email))

	if prev == nil || next.FirstName != prev.FirstName || next.LastName != prev.LastName {
		next.FullName = next.FirstName + " " + next.LastName
	} else {
		next.FullName = prev.FullName
	}

	if next.Age != nil && *next.Age < MinAge {
		clamped := MinAge
		next.Age = &clamped
	}

	return next
}

// ListEntry is the projection used by owner listings.
type ListEntry struct {
	ID       uuid.UUID `json:"id"`
	FullName string    `json:"fullName"`
	Email    string    `json:"email"`
	Age      *int      `json:"age,omitempty"`
}

// ItemSummary is the lightweight item view embedded in the
// owner-with-items result. No description, no modification timestamp.
type ItemSummary struct {
	Title     string    `json:"title"`
	Subtitle  *string   `json:"subtitle,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// OwnerWithItems is the aggregated read model: the owner's public fields
// plus summaries of every item referencing it, built in a single query.
// The modification timestamp is the only field withheld.
type OwnerWithItems struct {
	ID        uuid.UUID     `json:"id"`
	FirstName string        `json:"firstName"`
	LastName  string        `json:"lastName"`
	FullName  string        `json:"fullName"`
	Email     string        `json:"email"`
	Role      *string       `json:"role,omitempty"`
	Age       *int          `json:"age,omitempty"`
	ItemCount int           `json:"itemCount"`
	CreatedAt time.Time     `json:"createdAt"`
	Items     []ItemSummary `json:"items"`
}

// CountDrift records an owner whose cached item count disagreed with the
// actual number of items. Produced by the reconciliation job.
type CountDrift struct {
	OwnerID  uuid.UUID `json:"ownerId"`
	Recorded int       `json:"recorded"`
	Actual   int       `json:"actual"`
}
