package consistency

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	itemmodel "articles-backend/internal/domains/item/model"
	"articles-backend/internal/domains/owner"
	ownermodel "articles-backend/internal/domains/owner/model"
)

type fakeOwnerStore struct {
	existing  map[uuid.UUID]bool
	counts    map[uuid.UUID]int
	adjustErr error
}

func newFakeOwnerStore(ids ...uuid.UUID) *fakeOwnerStore {
	f := &fakeOwnerStore{
		existing: make(map[uuid.UUID]bool),
		counts:   make(map[uuid.UUID]int),
	}
	for _, id := range ids {
		f.existing[id] = true
	}
	return f
}

func (f *fakeOwnerStore) ExistsByID(_ context.Context, id uuid.UUID) (bool, error) {
	return f.existing[id], nil
}

func (f *fakeOwnerStore) AdjustItemCount(_ context.Context, id uuid.UUID, delta int) error {
	if f.adjustErr != nil {
		return f.adjustErr
	}
	if !f.existing[id] {
		return owner.ErrOwnerNotFound
	}
	f.counts[id] += delta
	return nil
}

func (f *fakeOwnerStore) Delete(_ context.Context, id uuid.UUID) (*ownermodel.Owner, error) {
	if !f.existing[id] {
		return nil, owner.ErrOwnerNotFound
	}
	delete(f.existing, id)
	delete(f.counts, id)
	return &ownermodel.Owner{ID: id}, nil
}

type fakeItemStore struct {
	items     map[uuid.UUID]*itemmodel.Item
	createErr error
}

func newFakeItemStore() *fakeItemStore {
	return &fakeItemStore{items: make(map[uuid.UUID]*itemmodel.Item)}
}

func (f *fakeItemStore) Create(_ context.Context, i *itemmodel.Item) (*itemmodel.Item, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	stored := *i
	stored.ID = uuid.New()
	f.items[stored.ID] = &stored
	return &stored, nil
}

func (f *fakeItemStore) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.items[id]; !ok {
		return errors.New("no such item")
	}
	delete(f.items, id)
	return nil
}

func (f *fakeItemStore) DeleteByOwner(_ context.Context, ownerID uuid.UUID) (int64, error) {
	var removed int64
	for id, i := range f.items {
		if i.OwnerID == ownerID {
			delete(f.items, id)
			removed++
		}
	}
	return removed, nil
}

func TestCreateItemIncrementsOwnerCount(t *testing.T) {
	ownerID := uuid.New()
	owners := newFakeOwnerStore(ownerID)
	items := newFakeItemStore()
	co := NewCoordinator(owners, items)

	created, err := co.CreateItem(context.Background(), &itemmodel.Item{
		Title:   "A History of Histories",
		OwnerID: ownerID,
	})

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.Equal(t, 1, owners.counts[ownerID])
	assert.Len(t, items.items, 1)
}

func TestCreateItemRejectsDanglingOwnerReference(t *testing.T) {
	owners := newFakeOwnerStore()
	items := newFakeItemStore()
	co := NewCoordinator(owners, items)

	_, err := co.CreateItem(context.Background(), &itemmodel.Item{
		Title:   "A History of Histories",
		OwnerID: uuid.New(),
	})

	assert.ErrorIs(t, err, ErrOwnerMissing)
	assert.Empty(t, items.items, "no record may be written for a dangling reference")
}

func TestCreateItemSurvivesCountIncrementFailure(t *testing.T) {
	// The item is already committed when the increment runs; a failure
	// there must not fail the creation, only leave the count stale.
	ownerID := uuid.New()
	owners := newFakeOwnerStore(ownerID)
	items := newFakeItemStore()
	co := NewCoordinator(owners, items)

	owners.adjustErr = errors.New("connection reset")

	created, err := co.CreateItem(context.Background(), &itemmodel.Item{
		Title:   "A History of Histories",
		OwnerID: ownerID,
	})

	require.NoError(t, err)
	assert.Contains(t, items.items, created.ID)
	assert.Equal(t, 0, owners.counts[ownerID], "count stays stale until reconciliation")
}

func TestDeleteItemDecrementsOwnerCount(t *testing.T) {
	ownerID := uuid.New()
	owners := newFakeOwnerStore(ownerID)
	items := newFakeItemStore()
	co := NewCoordinator(owners, items)

	created, err := co.CreateItem(context.Background(), &itemmodel.Item{
		Title:   "A History of Histories",
		OwnerID: ownerID,
	})
	require.NoError(t, err)
	require.Equal(t, 1, owners.counts[ownerID])

	require.NoError(t, co.DeleteItem(context.Background(), created))
	assert.Equal(t, 0, owners.counts[ownerID])
	assert.Empty(t, items.items)
}

func TestDeleteItemWithConcurrentlyDeletedOwner(t *testing.T) {
	// The owner vanished between the read and the decrement; the item
	// deletion still succeeds and the decrement is a no-op.
	ownerID := uuid.New()
	owners := newFakeOwnerStore(ownerID)
	items := newFakeItemStore()
	co := NewCoordinator(owners, items)

	created, err := co.CreateItem(context.Background(), &itemmodel.Item{
		Title:   "A History of Histories",
		OwnerID: ownerID,
	})
	require.NoError(t, err)

	delete(owners.existing, ownerID)

	assert.NoError(t, co.DeleteItem(context.Background(), created))
	assert.Empty(t, items.items)
}

func TestDeleteOwnerCascadesItems(t *testing.T) {
	ownerID := uuid.New()
	otherID := uuid.New()
	owners := newFakeOwnerStore(ownerID, otherID)
	items := newFakeItemStore()
	co := NewCoordinator(owners, items)

	for i := 0; i < 3; i++ {
		_, err := co.CreateItem(context.Background(), &itemmodel.Item{
			Title:   "A History of Histories",
			OwnerID: ownerID,
		})
		require.NoError(t, err)
	}
	kept, err := co.CreateItem(context.Background(), &itemmodel.Item{
		Title:   "Unrelated Reading",
		OwnerID: otherID,
	})
	require.NoError(t, err)

	deleted, err := co.DeleteOwner(context.Background(), ownerID)
	require.NoError(t, err)
	assert.Equal(t, ownerID, deleted.ID)

	assert.False(t, owners.existing[ownerID])
	require.Len(t, items.items, 1, "only the other owner's item survives")
	assert.Contains(t, items.items, kept.ID)
}

func TestDeleteOwnerWithoutItems(t *testing.T) {
	ownerID := uuid.New()
	owners := newFakeOwnerStore(ownerID)
	co := NewCoordinator(owners, newFakeItemStore())

	deleted, err := co.DeleteOwner(context.Background(), ownerID)
	require.NoError(t, err)
	assert.Equal(t, ownerID, deleted.ID)
}
