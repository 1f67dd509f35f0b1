package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"articles-backend/internal/domains/item"
	"articles-backend/internal/domains/item/model"
	"articles-backend/internal/shared/query"
	"articles-backend/pkg/cache"
)

// postgresRepository implements item.Repository over pgxpool. It holds a
// cache handle only to invalidate the owning owner's aggregated view when
// an item changes underneath it.
type postgresRepository struct {
	pool  *pgxpool.Pool
	cache cache.Cache
}

func NewPostgresRepository(pool *pgxpool.Pool, cache cache.Cache) item.Repository {
	return &postgresRepository{
		pool:  pool,
		cache: cache,
	}
}

const ownerItemsKeyPrefix = "owner:items:"

const itemColumns = `id, title, subtitle, description, owner_id, category, created_at, updated_at`

func scanItem(row pgx.Row) (*model.Item, error) {
	var i model.Item
	err := row.Scan(
		&i.ID,
		&i.Title,
		&i.Subtitle,
		&i.Description,
		&i.OwnerID,
		&i.Category,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &i, nil
}

func (r *postgresRepository) Create(ctx context.Context, i *model.Item) (*model.Item, error) {
	sql := `
        INSERT INTO items (title, subtitle, description, owner_id, category)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING ` + itemColumns

	created, err := scanItem(r.pool.QueryRow(
		ctx,
		sql,
		i.Title,
		i.Subtitle,
		i.Description,
		i.OwnerID,
		i.Category,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create item: %w", err)
	}

	r.cache.Delete(ctx, ownerItemsKeyPrefix+created.OwnerID.String())

	return created, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Item, error) {
	sql := `SELECT ` + itemColumns + ` FROM items WHERE id = $1`

	result, err := scanItem(r.pool.QueryRow(ctx, sql, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, item.ErrItemNotFound
		}
		return nil, fmt.Errorf("failed to get item by id: %w", err)
	}

	return result, nil
}

// GetView joins the item with its owner summary in a single query.
func (r *postgresRepository) GetView(ctx context.Context, id uuid.UUID) (*model.ItemView, error) {
	sql := `
        SELECT i.id, i.title, i.subtitle, i.description, i.category,
               o.full_name, o.email, o.age
        FROM items i
        JOIN owners o ON o.id = i.owner_id
        WHERE i.id = $1`

	var v model.ItemView
	err := r.pool.QueryRow(ctx, sql, id).Scan(
		&v.ID,
		&v.Title,
		&v.Subtitle,
		&v.Description,
		&v.Category,
		&v.Owner.FullName,
		&v.Owner.Email,
		&v.Owner.Age,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, item.ErrItemNotFound
		}
		return nil, fmt.Errorf("failed to get item view: %w", err)
	}

	return &v, nil
}

func (r *postgresRepository) List(ctx context.Context, shape query.Shape) ([]model.ItemView, error) {
	direction := "ASC"
	if shape.Descending {
		direction = "DESC"
	}

	sql := fmt.Sprintf(`
        SELECT i.id, i.title, i.subtitle, i.description, i.category,
               o.full_name, o.email, o.age
        FROM items i
        JOIN owners o ON o.id = i.owner_id
        ORDER BY i.%s %s
        LIMIT $1 OFFSET $2`, shape.SortColumn, direction)

	rows, err := r.pool.Query(ctx, sql, shape.Limit, shape.Offset())
	if err != nil {
		return nil, fmt.Errorf("failed to query items: %w", err)
	}
	defer rows.Close()

	var views []model.ItemView
	for rows.Next() {
		var v model.ItemView
		err := rows.Scan(
			&v.ID,
			&v.Title,
			&v.Subtitle,
			&v.Description,
			&v.Category,
			&v.Owner.FullName,
			&v.Owner.Email,
			&v.Owner.Age,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		views = append(views, v)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating items: %w", err)
	}

	return views, nil
}

// Update overwrites the mutable columns. owner_id and created_at are
// never in the SET list; updated_at is bumped on every save, including
// update-by-id paths.
func (r *postgresRepository) Update(ctx context.Context, i *model.Item) (*model.Item, error) {
	sql := `
        UPDATE items
        SET
            title = $1,
            subtitle = $2,
            description = $3,
            category = $4,
            updated_at = NOW()
        WHERE id = $5
        RETURNING ` + itemColumns

	updated, err := scanItem(r.pool.QueryRow(
		ctx,
		sql,
		i.Title,
		i.Subtitle,
		i.Description,
		i.Category,
		i.ID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, item.ErrItemNotFound
		}
		return nil, fmt.Errorf("failed to update item: %w", err)
	}

	r.cache.Delete(ctx, ownerItemsKeyPrefix+updated.OwnerID.String())

	return updated, nil
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	sql := `DELETE FROM items WHERE id = $1 RETURNING owner_id`

	var ownerID uuid.UUID
	err := r.pool.QueryRow(ctx, sql, id).Scan(&ownerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return item.ErrItemNotFound
		}
		return fmt.Errorf("failed to delete item: %w", err)
	}

	r.cache.Delete(ctx, ownerItemsKeyPrefix+ownerID.String())

	return nil
}

// DeleteByOwner removes every item referencing the owner in one bulk
// statement. Zero rows is not an error: an owner may own nothing.
func (r *postgresRepository) DeleteByOwner(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	sql := `DELETE FROM items WHERE owner_id = $1`

	cmdTag, err := r.pool.Exec(ctx, sql, ownerID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete items by owner: %w", err)
	}

	r.cache.Delete(ctx, ownerItemsKeyPrefix+ownerID.String())

	return cmdTag.RowsAffected(), nil
}
