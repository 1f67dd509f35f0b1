package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"articles-backend/internal/domains/consistency"
	"articles-backend/internal/domains/owner"
	"articles-backend/internal/domains/owner/model"
	"articles-backend/internal/shared/query"
	"articles-backend/pkg/jwt"
)

// ownerService implements owner.Service. Mutations run the validation
// pipeline, then the normalizer, then persistence; deletion hands off to
// the consistency coordinator so the cascade stays explicit.
type ownerService struct {
	repo        owner.Repository
	coordinator *consistency.Coordinator
	tokens      *jwt.Manager
}

func NewOwnerService(repo owner.Repository, coordinator *consistency.Coordinator, tokens *jwt.Manager) owner.Service {
	return &ownerService{
		repo:        repo,
		coordinator: coordinator,
		tokens:      tokens,
	}
}

func (s *ownerService) Create(ctx context.Context, req owner.CreateOwnerRequest) (*model.Owner, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	next := model.Normalize(nil, model.Owner{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Role:      req.Role,
		Age:       req.Age,
	})

	return s.repo.Create(ctx, &next)
}

func (s *ownerService) List(ctx context.Context, sortBy, orderBy, page, limit string) ([]model.ListEntry, query.Shape, error) {
	shape := owner.Sortable.Shape(sortBy, orderBy, page, limit)

	entries, err := s.repo.List(ctx, shape)
	if err != nil {
		return nil, shape, err
	}

	return entries, shape, nil
}

func (s *ownerService) GetWithItems(ctx context.Context, id uuid.UUID) (*model.OwnerWithItems, error) {
	return s.repo.GetWithItems(ctx, id)
}

// Update overwrites exactly the submitted fields on the current record,
// then re-normalizes: the full name follows any name-part change, and a
// sub-minimum age is clamped rather than rejected.
func (s *ownerService) Update(ctx context.Context, id uuid.UUID, req owner.UpdateOwnerRequest) (*model.Owner, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	prev, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	next := *prev
	if req.FirstName != nil {
		next.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		next.LastName = *req.LastName
	}
	if req.Email != nil {
		next.Email = *req.Email
	}
	if req.Role != nil {
		next.Role = req.Role
	}
	if req.Age != nil {
		next.Age = req.Age
	}

	next = model.Normalize(prev, next)

	return s.repo.Update(ctx, &next)
}

// Delete cascades through the coordinator: the owner's items go first in
// one bulk statement, then the owner row.
func (s *ownerService) Delete(ctx context.Context, id uuid.UUID) (*model.Owner, error) {
	// Resolve first so a missing owner is reported before any cascade.
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return nil, err
	}

	return s.coordinator.DeleteOwner(ctx, id)
}

// IssueToken signs an identity token for the owner. Item mutations
// require it to prove the acting owner.
func (s *ownerService) IssueToken(ctx context.Context, id uuid.UUID) (*owner.TokenResponse, error) {
	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	token, err := s.tokens.GenerateToken(o.ID.String(), o.Email)
	if err != nil {
		return nil, err
	}

	return &owner.TokenResponse{
		Token:     token,
		OwnerID:   o.ID,
		ExpiresAt: time.Now().Add(s.tokens.Expiry()),
	}, nil
}
