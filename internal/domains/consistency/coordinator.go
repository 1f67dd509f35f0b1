package consistency

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	itemmodel "articles-backend/internal/domains/item/model"
	"articles-backend/internal/domains/owner"
	ownermodel "articles-backend/internal/domains/owner/model"
)

// ErrOwnerMissing rejects an item creation whose owner reference does not
// resolve to an existing owner.
var ErrOwnerMissing = errors.New("owner doesn't exist")

// OwnerStore is the slice of the owner repository the coordinator needs.
type OwnerStore interface {
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)
	AdjustItemCount(ctx context.Context, id uuid.UUID, delta int) error
	Delete(ctx context.Context, id uuid.UUID) (*ownermodel.Owner, error)
}

// ItemStore is the slice of the item repository the coordinator needs.
type ItemStore interface {
	Create(ctx context.Context, i *itemmodel.Item) (*itemmodel.Item, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByOwner(ctx context.Context, ownerID uuid.UUID) (int64, error)
}

// Coordinator keeps the owner/item relationship consistent across the
// three mutations that touch both sides: item creation, item deletion and
// owner deletion. It is invoked explicitly by the operation layer, never
// from inside an entity's own persistence path, so the two-step sequences
// stay visible and testable.
//
// The two documents are NOT mutated atomically: the store guarantees
// per-row atomicity only. The coordinator orders the steps so that the
// only reachable inconsistency is a stale item count, which is advisory
// and repaired by the reconciliation job.
type Coordinator struct {
	owners OwnerStore
	items  ItemStore
}

func NewCoordinator(owners OwnerStore, items ItemStore) *Coordinator {
	return &Coordinator{
		owners: owners,
		items:  items,
	}
}

// CreateItem resolves the owner reference before committing the item, so
// a dangling reference can never be written. After the item commits, the
// owner's item count is incremented by one. If that increment fails the
// item stays committed: the failure is surfaced out-of-band (logged) and
// left to reconciliation, because retrying a +1 blindly is not
// idempotent.
func (co *Coordinator) CreateItem(ctx context.Context, i *itemmodel.Item) (*itemmodel.Item, error) {
	exists, err := co.owners.ExistsByID(ctx, i.OwnerID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrOwnerMissing
	}

	created, err := co.items.Create(ctx, i)
	if err != nil {
		return nil, err
	}

	if err := co.owners.AdjustItemCount(ctx, created.OwnerID, +1); err != nil {
		log.Error().
			Err(err).
			Str("owner_id", created.OwnerID.String()).
			Str("item_id", created.ID.String()).
			Msg("item committed but owner count increment failed; count is stale until reconciliation")
	}

	return created, nil
}

// DeleteItem removes the item, then decrements the owner's count. A
// missing owner row means the owner was deleted concurrently; the
// decrement becomes a no-op and the item deletion still succeeds.
func (co *Coordinator) DeleteItem(ctx context.Context, i *itemmodel.Item) error {
	if err := co.items.Delete(ctx, i.ID); err != nil {
		return err
	}

	if err := co.owners.AdjustItemCount(ctx, i.OwnerID, -1); err != nil {
		if errors.Is(err, owner.ErrOwnerNotFound) {
			return nil
		}
		log.Error().
			Err(err).
			Str("owner_id", i.OwnerID.String()).
			Str("item_id", i.ID.String()).
			Msg("item deleted but owner count decrement failed; count is stale until reconciliation")
	}

	return nil
}

// DeleteOwner cascades: every item referencing the owner is removed in
// one bulk statement, then the owner row itself. No per-item count
// bookkeeping happens since the owner is going away with its count.
func (co *Coordinator) DeleteOwner(ctx context.Context, id uuid.UUID) (*ownermodel.Owner, error) {
	removed, err := co.items.DeleteByOwner(ctx, id)
	if err != nil {
		return nil, err
	}

	deleted, err := co.owners.Delete(ctx, id)
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("owner_id", id.String()).
		Int64("items_removed", removed).
		Msg("owner deleted with cascaded items")

	return deleted, nil
}
