package item

import (
	"context"

	"github.com/google/uuid"

	"articles-backend/internal/domains/item/model"
	"articles-backend/internal/shared/query"
)

// Service is the item business-logic contract. actor is the
// authenticated owner performing the mutation; only the owning owner may
// update or delete an item.
type Service interface {
	Create(ctx context.Context, req CreateItemRequest) (*model.Item, error)
	List(ctx context.Context, sortBy, orderBy, page, limit string) ([]model.ItemView, query.Shape, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.ItemView, error)
	Update(ctx context.Context, id, actor uuid.UUID, req UpdateItemRequest) (*model.Item, error)
	Delete(ctx context.Context, id, actor uuid.UUID) (*model.Item, error)
}
