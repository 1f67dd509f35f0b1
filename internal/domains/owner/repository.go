package owner

import (
	"context"

	"github.com/google/uuid"

	"articles-backend/internal/domains/owner/model"
	"articles-backend/internal/shared/query"
)

// Repository is the owner persistence contract.
type Repository interface {
	Create(ctx context.Context, o *model.Owner) (*model.Owner, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Owner, error)
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)
	List(ctx context.Context, shape query.Shape) ([]model.ListEntry, error)
	Update(ctx context.Context, o *model.Owner) (*model.Owner, error)

	// Delete removes the owner row and returns the deleted record.
	// Cascading the owner's items is the consistency coordinator's job,
	// not the repository's.
	Delete(ctx context.Context, id uuid.UUID) (*model.Owner, error)

	// GetWithItems builds the owner-with-items view in one aggregated
	// query: O(1) round trips regardless of how many items the owner has.
	GetWithItems(ctx context.Context, id uuid.UUID) (*model.OwnerWithItems, error)

	// AdjustItemCount moves the cached item count by delta (+1/-1) in a
	// single statement. Returns ErrOwnerNotFound when no row matched.
	AdjustItemCount(ctx context.Context, id uuid.UUID, delta int) error

	// ReconcileItemCounts resets every drifted item count to the actual
	// number of items and reports what was corrected.
	ReconcileItemCounts(ctx context.Context) ([]model.CountDrift, error)
}
