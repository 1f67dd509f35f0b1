package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Categories an item must belong to.
const (
	CategorySport   = "sport"
	CategoryGames   = "games"
	CategoryHistory = "history"
)

// Field bounds.
const (
	MinTitleLength       = 5
	MaxTitleLength       = 400
	MinSubtitleLength    = 5
	MinDescriptionLength = 5
	MaxDescriptionLength = 5000
)

type Item struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Subtitle    *string   `json:"subtitle,omitempty" db:"subtitle"`
	Description string    `json:"description" db:"description"`

	// OwnerID is a foreign identity, not an embedded copy. It is set at
	// creation and immutable afterwards.
	OwnerID uuid.UUID `json:"owner" db:"owner_id"`

	Category  string    `json:"category" db:"category"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// Normalize trims the title on a record about to be persisted. prev is
// the before-image (nil on creation). The owner reference never moves:
// whatever prev carries wins.
func Normalize(prev *Item, next Item) Item {
	next.Title = strings.TrimSpace(next.Title)

	if prev != nil {
		next.OwnerID = prev.OwnerID
	}

	return next
}

// OwnerSummary is the owner projection embedded in item listings and
// detail views.
type OwnerSummary struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Age      *int   `json:"age,omitempty"`
}

// ItemView is the wire shape for item listings and detail reads: the
// record joined with its owner summary, with both timestamps withheld.
type ItemView struct {
	ID          uuid.UUID    `json:"id"`
	Title       string       `json:"title"`
	Subtitle    *string      `json:"subtitle,omitempty"`
	Description string       `json:"description"`
	Category    string       `json:"category"`
	Owner       OwnerSummary `json:"owner"`
}
