package service

import (
	"context"

	"github.com/google/uuid"

	"articles-backend/internal/domains/consistency"
	"articles-backend/internal/domains/item"
	"articles-backend/internal/domains/item/model"
	"articles-backend/internal/shared/query"
)

// itemService implements item.Service. Creation and deletion go through
// the consistency coordinator so the owner's cached item count follows
// every committed change.
type itemService struct {
	repo        item.Repository
	coordinator *consistency.Coordinator
}

func NewItemService(repo item.Repository, coordinator *consistency.Coordinator) item.Service {
	return &itemService{
		repo:        repo,
		coordinator: coordinator,
	}
}

func (s *itemService) Create(ctx context.Context, req item.CreateItemRequest) (*model.Item, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	ownerID, err := uuid.Parse(req.Owner)
	if err != nil {
		return nil, item.ErrInvalidOwnerID
	}

	next := model.Normalize(nil, model.Item{
		Title:       req.Title,
		Subtitle:    req.Subtitle,
		Description: req.Description,
		OwnerID:     ownerID,
		Category:    req.Category,
	})

	// The coordinator resolves the owner reference before committing and
	// increments the owner's count after; a dangling reference fails the
	// creation with no record written.
	return s.coordinator.CreateItem(ctx, &next)
}

func (s *itemService) List(ctx context.Context, sortBy, orderBy, page, limit string) ([]model.ItemView, query.Shape, error) {
	shape := item.Sortable.Shape(sortBy, orderBy, page, limit)

	views, err := s.repo.List(ctx, shape)
	if err != nil {
		return nil, shape, err
	}

	return views, shape, nil
}

func (s *itemService) GetByID(ctx context.Context, id uuid.UUID) (*model.ItemView, error) {
	return s.repo.GetView(ctx, id)
}

func (s *itemService) Update(ctx context.Context, id, actor uuid.UUID, req item.UpdateItemRequest) (*model.Item, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	prev, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if prev.OwnerID != actor {
		return nil, item.ErrPermissionDenied
	}

	next := *prev
	if req.Title != nil {
		next.Title = *req.Title
	}
	if req.Subtitle != nil {
		next.Subtitle = req.Subtitle
	}
	if req.Description != nil {
		next.Description = *req.Description
	}
	if req.Category != nil {
		next.Category = *req.Category
	}

	next = model.Normalize(prev, next)

	return s.repo.Update(ctx, &next)
}

func (s *itemService) Delete(ctx context.Context, id, actor uuid.UUID) (*model.Item, error) {
	prev, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if prev.OwnerID != actor {
		return nil, item.ErrPermissionDenied
	}

	// The coordinator deletes the row and decrements the owner's count;
	// a concurrently deleted owner makes the decrement a no-op.
	if err := s.coordinator.DeleteItem(ctx, prev); err != nil {
		return nil, err
	}

	return prev, nil
}
