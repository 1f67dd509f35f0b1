package service

import (
	"context"
	"encoding/json"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"articles-backend/internal/domains/consistency"
	itemmodel "articles-backend/internal/domains/item/model"
	"articles-backend/internal/domains/owner"
	"articles-backend/internal/domains/owner/model"
	"articles-backend/internal/shared/query"
	"articles-backend/pkg/jwt"
)

// fakeOwnerRepo is an in-memory owner.Repository. It shares an item store
// with the coordinator so aggregated reads see the items the cascade sees.
type fakeOwnerRepo struct {
	owners map[uuid.UUID]*model.Owner
	items  *fakeItemStore
}

func newFakeOwnerRepo(items *fakeItemStore) *fakeOwnerRepo {
	return &fakeOwnerRepo{owners: make(map[uuid.UUID]*model.Owner), items: items}
}

func (f *fakeOwnerRepo) Create(_ context.Context, o *model.Owner) (*model.Owner, error) {
	for _, existing := range f.owners {
		if existing.Email == o.Email {
			return nil, owner.ErrEmailAlreadyExists
		}
	}
	stored := *o
	stored.ID = uuid.New()
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	f.owners[stored.ID] = &stored

	out := stored
	return &out, nil
}

func (f *fakeOwnerRepo) GetByID(_ context.Context, id uuid.UUID) (*model.Owner, error) {
	o, ok := f.owners[id]
	if !ok {
		return nil, owner.ErrOwnerNotFound
	}
	out := *o
	return &out, nil
}

func (f *fakeOwnerRepo) ExistsByID(_ context.Context, id uuid.UUID) (bool, error) {
	_, ok := f.owners[id]
	return ok, nil
}

func (f *fakeOwnerRepo) List(_ context.Context, _ query.Shape) ([]model.ListEntry, error) {
	entries := make([]model.ListEntry, 0, len(f.owners))
	for _, o := range f.owners {
		entries = append(entries, model.ListEntry{ID: o.ID, FullName: o.FullName, Email: o.Email, Age: o.Age})
	}
	return entries, nil
}

func (f *fakeOwnerRepo) Update(_ context.Context, o *model.Owner) (*model.Owner, error) {
	if _, ok := f.owners[o.ID]; !ok {
		return nil, owner.ErrOwnerNotFound
	}
	stored := *o
	stored.UpdatedAt = time.Now()
	f.owners[stored.ID] = &stored

	out := stored
	return &out, nil
}

func (f *fakeOwnerRepo) Delete(_ context.Context, id uuid.UUID) (*model.Owner, error) {
	o, ok := f.owners[id]
	if !ok {
		return nil, owner.ErrOwnerNotFound
	}
	delete(f.owners, id)
	return o, nil
}

func (f *fakeOwnerRepo) GetWithItems(_ context.Context, id uuid.UUID) (*model.OwnerWithItems, error) {
	o, ok := f.owners[id]
	if !ok {
		return nil, owner.ErrOwnerNotFound
	}
	summaries := []model.ItemSummary{}
	for _, i := range f.items.ownedBy(id) {
		summaries = append(summaries, model.ItemSummary{
			Title:     i.Title,
			Subtitle:  i.Subtitle,
			CreatedAt: i.CreatedAt,
		})
	}
	return &model.OwnerWithItems{
		ID:        o.ID,
		FirstName: o.FirstName,
		LastName:  o.LastName,
		FullName:  o.FullName,
		Email:     o.Email,
		ItemCount: o.ItemCount,
		Items:     summaries,
	}, nil
}

func (f *fakeOwnerRepo) AdjustItemCount(_ context.Context, id uuid.UUID, delta int) error {
	o, ok := f.owners[id]
	if !ok {
		return owner.ErrOwnerNotFound
	}
	o.ItemCount += delta
	return nil
}

func (f *fakeOwnerRepo) ReconcileItemCounts(_ context.Context) ([]model.CountDrift, error) {
	return nil, nil
}

// fakeItemStore keeps full item records so both the cascade path and the
// aggregated read can be exercised against the same state.
type fakeItemStore struct {
	items map[uuid.UUID]*itemmodel.Item
	clock time.Time
}

func newFakeItemStore() *fakeItemStore {
	return &fakeItemStore{
		items: make(map[uuid.UUID]*itemmodel.Item),
		clock: time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (f *fakeItemStore) Create(_ context.Context, i *itemmodel.Item) (*itemmodel.Item, error) {
	stored := *i
	stored.ID = uuid.New()
	f.clock = f.clock.Add(time.Minute)
	stored.CreatedAt = f.clock
	f.items[stored.ID] = &stored

	out := stored
	return &out, nil
}

func (f *fakeItemStore) Delete(_ context.Context, id uuid.UUID) error {
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

func (f *fakeItemStore) add(ownerID uuid.UUID, title string, subtitle *string) *itemmodel.Item {
	created, _ := f.Create(context.Background(), &itemmodel.Item{
		Title:    title,
		Subtitle: subtitle,
		OwnerID:  ownerID,
		Category: itemmodel.CategoryHistory,
	})
	return created
}

func (f *fakeItemStore) ownedBy(ownerID uuid.UUID) []*itemmodel.Item {
	var owned []*itemmodel.Item
	for _, i := range f.items {
		if i.OwnerID == ownerID {
			owned = append(owned, i)
		}
	}
	sort.Slice(owned, func(a, b int) bool { return owned[a].CreatedAt.Before(owned[b].CreatedAt) })
	return owned
}

func (f *fakeItemStore) countFor(ownerID uuid.UUID) int {
	return len(f.ownedBy(ownerID))
}

func newTestService() (owner.Service, *fakeOwnerRepo, *fakeItemStore) {
	items := newFakeItemStore()
	repo := newFakeOwnerRepo(items)
	coordinator := consistency.NewCoordinator(repo, items)
	tokens := jwt.NewManager("test-secret", time.Hour)
	return NewOwnerService(repo, coordinator, tokens), repo, items
}

func TestCreateNormalizesRecord(t *testing.T) {
	svc, _, _ := newTestService()

	age := 0
	created, err := svc.Create(context.Background(), owner.CreateOwnerRequest{
		FirstName: "  Johnny ",
		LastName:  "Walker",
		Email:     "Johnny.Walker@Example.COM",
		Age:       &age,
	})

	require.NoError(t, err)
	assert.Equal(t, "Johnny", created.FirstName)
	assert.Equal(t, "Johnny Walker", created.FullName)
	assert.Equal(t, "johnny.walker@example.com", created.Email)
	require.NotNil(t, created.Age)
	assert.Equal(t, model.MinAge, *created.Age)
	assert.Equal(t, 0, created.ItemCount)
}

func TestCreateRejectsInvalidRequest(t *testing.T) {
	svc, repo, _ := newTestService()

	_, err := svc.Create(context.Background(), owner.CreateOwnerRequest{
		FirstName: "Jo",
		LastName:  "Walker",
		Email:     "johnny@example.com",
	})

	assert.Error(t, err)
	assert.Empty(t, repo.owners)
}

func TestCreateRejectsDuplicateEmail(t *testing.T) {
	svc, _, _ := newTestService()

	req := owner.CreateOwnerRequest{
		FirstName: "Johnny",
		LastName:  "Walker",
		Email:     "johnny@example.com",
	}

	_, err := svc.Create(context.Background(), req)
	require.NoError(t, err)

	// Same address in different casing normalizes to the same record.
	req.Email = "JOHNNY@example.com"
	_, err = svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, owner.ErrEmailAlreadyExists)
}

func TestUpdateRecomputesFullName(t *testing.T) {
	svc, _, _ := newTestService()

	created, err := svc.Create(context.Background(), owner.CreateOwnerRequest{
		FirstName: "Johnny",
		LastName:  "Walker",
		Email:     "johnny@example.com",
	})
	require.NoError(t, err)

	first := "Jimmy"
	updated, err := svc.Update(context.Background(), created.ID, owner.UpdateOwnerRequest{FirstName: &first})
	require.NoError(t, err)
	assert.Equal(t, "Jimmy Walker", updated.FullName)
}

func TestUpdateKeepsFullNameOnUnrelatedChange(t *testing.T) {
	svc, repo, _ := newTestService()

	created, err := svc.Create(context.Background(), owner.CreateOwnerRequest{
		FirstName: "Johnny",
		LastName:  "Walker",
		Email:     "johnny@example.com",
	})
	require.NoError(t, err)

	// Simulate a full name that drifted from its parts.
	repo.owners[created.ID].FullName = "Sir Johnny Walker"

	email := "sir.johnny@example.com"
	updated, err := svc.Update(context.Background(), created.ID, owner.UpdateOwnerRequest{Email: &email})
	require.NoError(t, err)
	assert.Equal(t, "Sir Johnny Walker", updated.FullName)
	assert.Equal(t, "sir.johnny@example.com", updated.Email)
}

func TestUpdateMissingOwner(t *testing.T) {
	svc, _, _ := newTestService()

	first := "Jimmy"
	_, err := svc.Update(context.Background(), uuid.New(), owner.UpdateOwnerRequest{FirstName: &first})
	assert.ErrorIs(t, err, owner.ErrOwnerNotFound)
}

func TestDeleteCascadesOwnedItems(t *testing.T) {
	svc, repo, items := newTestService()

	created, err := svc.Create(context.Background(), owner.CreateOwnerRequest{
		FirstName: "Johnny",
		LastName:  "Walker",
		Email:     "johnny@example.com",
	})
	require.NoError(t, err)

	items.add(created.ID, "First Steps in History", nil)
	items.add(created.ID, "Second Steps in History", nil)
	items.add(created.ID, "Third Steps in History", nil)

	deleted, err := svc.Delete(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, deleted.ID)
	assert.Empty(t, repo.owners)
	assert.Zero(t, items.countFor(created.ID))
}

func TestDeleteMissingOwner(t *testing.T) {
	svc, _, items := newTestService()

	stray := uuid.New()
	items.add(stray, "Orphaned History Notes", nil)
	items.add(stray, "More Orphaned Notes OK", nil)

	_, err := svc.Delete(context.Background(), stray)
	assert.ErrorIs(t, err, owner.ErrOwnerNotFound)
	assert.Equal(t, 2, items.countFor(stray), "no cascade may run for a missing owner")
}

func TestGetWithItemsReturnsOrderedSummaries(t *testing.T) {
	svc, _, items := newTestService()

	created, err := svc.Create(context.Background(), owner.CreateOwnerRequest{
		FirstName: "Johnny",
		LastName:  "Walker",
		Email:     "johnny@example.com",
	})
	require.NoError(t, err)

	subtitle := "An Opening Chapter"
	first := items.add(created.ID, "Collected Histories I", &subtitle)
	second := items.add(created.ID, "Collected Histories II", nil)
	items.add(uuid.New(), "Somebody Else's Work", nil)

	view, err := svc.GetWithItems(context.Background(), created.ID)
	require.NoError(t, err)
	require.Len(t, view.Items, 2)

	assert.Equal(t, "Collected Histories I", view.Items[0].Title)
	require.NotNil(t, view.Items[0].Subtitle)
	assert.Equal(t, "An Opening Chapter", *view.Items[0].Subtitle)
	assert.Equal(t, first.CreatedAt, view.Items[0].CreatedAt)

	assert.Equal(t, "Collected Histories II", view.Items[1].Title)
	assert.Nil(t, view.Items[1].Subtitle)
	assert.Equal(t, second.CreatedAt, view.Items[1].CreatedAt)
	assert.True(t, view.Items[0].CreatedAt.Before(view.Items[1].CreatedAt))

	// Summaries stay lean: title, subtitle and createdAt only.
	encoded, err := json.Marshal(view.Items[0])
	require.NoError(t, err)
	var fields map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(encoded, &fields))
	assert.Len(t, fields, 3)
	assert.NotContains(t, fields, "description")
}

func TestListShapesQuery(t *testing.T) {
	svc, _, _ := newTestService()

	_, shape, err := svc.List(context.Background(), "nonsense", "desc", "99", "0")
	require.NoError(t, err)

	assert.Equal(t, "created_at", shape.SortColumn)
	assert.True(t, shape.Descending)
	assert.Equal(t, query.DefaultPage, shape.Page)
	assert.Equal(t, query.DefaultLimit, shape.Limit)
}

func TestIssueToken(t *testing.T) {
	svc, _, _ := newTestService()

	created, err := svc.Create(context.Background(), owner.CreateOwnerRequest{
		FirstName: "Johnny",
		LastName:  "Walker",
		Email:     "johnny@example.com",
	})
	require.NoError(t, err)

	resp, err := svc.IssueToken(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, resp.OwnerID)
	assert.NotEmpty(t, resp.Token)
	assert.True(t, resp.ExpiresAt.After(time.Now()))

	claims, err := jwt.NewManager("test-secret", time.Hour).ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, created.ID.String(), claims.OwnerID)
}

func TestIssueTokenMissingOwner(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.IssueToken(context.Background(), uuid.New())
	assert.ErrorIs(t, err, owner.ErrOwnerNotFound)
}
