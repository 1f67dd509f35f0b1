package item

import (
	"context"

	"github.com/google/uuid"

	"articles-backend/internal/domains/item/model"
	"articles-backend/internal/shared/query"
)

// Repository is the item persistence contract. Count bookkeeping on the
// owning side is never done here; the consistency coordinator sequences
// it around these calls.
type Repository interface {
	Create(ctx context.Context, i *model.Item) (*model.Item, error)

	// GetByID returns the raw record, timestamps included. Used by the
	// operation layer for ownership checks and coordinator sequencing.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Item, error)

	// GetView returns the item joined with its owner summary in one
	// query, shaped for the wire (no timestamps).
	GetView(ctx context.Context, id uuid.UUID) (*model.ItemView, error)

	List(ctx context.Context, shape query.Shape) ([]model.ItemView, error)
	Update(ctx context.Context, i *model.Item) (*model.Item, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// DeleteByOwner bulk-deletes every item referencing the owner and
	// reports how many rows went away.
	DeleteByOwner(ctx context.Context, ownerID uuid.UUID) (int64, error)
}
