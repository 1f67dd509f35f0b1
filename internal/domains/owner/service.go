package owner

import (
	"context"

	"github.com/google/uuid"

	"articles-backend/internal/domains/owner/model"
	"articles-backend/internal/shared/query"
)

// Service is the owner business-logic contract.
type Service interface {
	Create(ctx context.Context, req CreateOwnerRequest) (*model.Owner, error)
	List(ctx context.Context, sortBy, orderBy, page, limit string) ([]model.ListEntry, query.Shape, error)
	GetWithItems(ctx context.Context, id uuid.UUID) (*model.OwnerWithItems, error)
	Update(ctx context.Context, id uuid.UUID, req UpdateOwnerRequest) (*model.Owner, error)
	Delete(ctx context.Context, id uuid.UUID) (*model.Owner, error)
	IssueToken(ctx context.Context, id uuid.UUID) (*TokenResponse, error)
}
