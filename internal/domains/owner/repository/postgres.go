package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"articles-backend/internal/domains/owner"
	"articles-backend/internal/domains/owner/model"
	"articles-backend/internal/shared/query"
	"articles-backend/pkg/cache"
	"articles-backend/pkg/database"
)

// postgresRepository implements owner.Repository over pgxpool with a
// Redis read-through cache on the point lookups.
type postgresRepository struct {
	pool  *pgxpool.Pool
	cache cache.Cache
}

func NewPostgresRepository(pool *pgxpool.Pool, cache cache.Cache) owner.Repository {
	return &postgresRepository{
		pool:  pool,
		cache: cache,
	}
}

// Cache key constants
const (
	ownerCacheKeyPrefix = "owner:"
	ownerItemsKeyPrefix = "owner:items:"
	cacheTTL            = 15 * time.Minute
)

const ownerColumns = `id, first_name, last_name, full_name, email, role, age, item_count, created_at, updated_at`

func scanOwner(row pgx.Row) (*model.Owner, error) {
	var o model.Owner
	err := row.Scan(
		&o.ID,
		&o.FirstName,
		&o.LastName,
		&o.FullName,
		&o.Email,
		&o.Role,
		&o.Age,
		&o.ItemCount,
		&o.CreatedAt,
		&o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// Create inserts a new owner. created_at, updated_at and item_count come
// from column defaults; the unique email index enforces uniqueness.
func (r *postgresRepository) Create(ctx context.Context, o *model.Owner) (*model.Owner, error) {
	sql := `
        INSERT INTO owners (first_name, last_name, full_name, email, role, age)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING ` + ownerColumns

	created, err := scanOwner(r.pool.QueryRow(
		ctx,
		sql,
		o.FirstName,
		o.LastName,
		o.FullName,
		o.Email,
		o.Role,
		o.Age,
	))

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return nil, owner.ErrEmailAlreadyExists
		}
		return nil, fmt.Errorf("failed to create owner: %w", err)
	}

	return created, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Owner, error) {
	cacheKey := ownerCacheKeyPrefix + id.String()

	var o model.Owner
	cached, err := r.cache.Get(ctx, cacheKey, &o)
	if err == nil && cached {
		return &o, nil
	}

	sql := `SELECT ` + ownerColumns + ` FROM owners WHERE id = $1`

	result, err := scanOwner(r.pool.QueryRow(ctx, sql, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, owner.ErrOwnerNotFound
		}
		return nil, fmt.Errorf("failed to get owner by id: %w", err)
	}

	r.cache.Set(ctx, cacheKey, result, cacheTTL)

	return result, nil
}

func (r *postgresRepository) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	sql := `SELECT EXISTS(SELECT 1 FROM owners WHERE id = $1)`

	var exists bool
	if err := r.pool.QueryRow(ctx, sql, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check owner existence: %w", err)
	}

	return exists, nil
}

// List returns the owner listing projection for the shaped window. When
// the sort column is optional, rows without a value are filtered out so
// the ordering is meaningful.
func (r *postgresRepository) List(ctx context.Context, shape query.Shape) ([]model.ListEntry, error) {
	sql := `SELECT id, full_name, email, age FROM owners`
	if shape.FilterNotNull {
		sql += fmt.Sprintf(" WHERE %s IS NOT NULL", shape.SortColumn)
	}

	direction := "ASC"
	if shape.Descending {
		direction = "DESC"
	}
	sql += fmt.Sprintf(" ORDER BY %s %s LIMIT $1 OFFSET $2", shape.SortColumn, direction)

	rows, err := r.pool.Query(ctx, sql, shape.Limit, shape.Offset())
	if err != nil {
		return nil, fmt.Errorf("failed to query owners: %w", err)
	}
	defer rows.Close()

	var entries []model.ListEntry
	for rows.Next() {
		var e model.ListEntry
		if err := rows.Scan(&e.ID, &e.FullName, &e.Email, &e.Age); err != nil {
			return nil, fmt.Errorf("failed to scan owner: %w", err)
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating owners: %w", err)
	}

	return entries, nil
}

// Update overwrites the mutable columns. created_at and item_count are
// never part of the SET list; updated_at is bumped on every save.
func (r *postgresRepository) Update(ctx context.Context, o *model.Owner) (*model.Owner, error) {
	sql := `
        UPDATE owners
        SET
            first_name = $1,
            last_name = $2,
            full_name = $3,
            email = $4,
            role = $5,
            age = $6,
            updated_at = NOW()
        WHERE id = $7
        RETURNING ` + ownerColumns

	updated, err := scanOwner(r.pool.QueryRow(
		ctx,
		sql,
		o.FirstName,
		o.LastName,
		o.FullName,
		o.Email,
		o.Role,
		o.Age,
		o.ID,
	))

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, owner.ErrOwnerNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, owner.ErrEmailAlreadyExists
		}
		return nil, fmt.Errorf("failed to update owner: %w", err)
	}

	r.invalidateOwnerCache(ctx, o.ID)

	return updated, nil
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) (*model.Owner, error) {
	sql := `DELETE FROM owners WHERE id = $1 RETURNING ` + ownerColumns

	deleted, err := scanOwner(r.pool.QueryRow(ctx, sql, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, owner.ErrOwnerNotFound
		}
		return nil, fmt.Errorf("failed to delete owner: %w", err)
	}

	r.invalidateOwnerCache(ctx, id)

	return deleted, nil
}

// GetWithItems joins the owner with its item summaries in one aggregated
// query instead of a lookup-then-N-lookups pattern. The item list is
// ordered by creation time and carries no descriptions.
func (r *postgresRepository) GetWithItems(ctx context.Context, id uuid.UUID) (*model.OwnerWithItems, error) {
	cacheKey := ownerItemsKeyPrefix + id.String()

	var view model.OwnerWithItems
	cached, err := r.cache.Get(ctx, cacheKey, &view)
	if err == nil && cached {
		return &view, nil
	}

	sql := `
        SELECT
            o.id, o.first_name, o.last_name, o.full_name, o.email, o.role, o.age,
            o.item_count, o.created_at,
            COALESCE(
                json_agg(
                    json_build_object(
                        'title', i.title,
                        'subtitle', i.subtitle,
                        'createdAt', i.created_at
                    )
                    ORDER BY i.created_at
                ) FILTER (WHERE i.id IS NOT NULL),
                '[]'
            )
        FROM owners o
        LEFT JOIN items i ON i.owner_id = o.id
        WHERE o.id = $1
        GROUP BY o.id`

	var itemsJSON []byte
	err = r.pool.QueryRow(ctx, sql, id).Scan(
		&view.ID,
		&view.FirstName,
		&view.LastName,
		&view.FullName,
		&view.Email,
		&view.Role,
		&view.Age,
		&view.ItemCount,
		&view.CreatedAt,
		&itemsJSON,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, owner.ErrOwnerNotFound
		}
		return nil, fmt.Errorf("failed to get owner with items: %w", err)
	}

	view.Items = []model.ItemSummary{}
	if err := json.Unmarshal(itemsJSON, &view.Items); err != nil {
		return nil, fmt.Errorf("failed to decode item summaries: %w", err)
	}

	r.cache.Set(ctx, cacheKey, &view, cacheTTL)

	return &view, nil
}

// AdjustItemCount applies an incremental +delta to the cached count in a
// single statement. The count is never recomputed here; reconciliation
// of drift is the worker's job.
func (r *postgresRepository) AdjustItemCount(ctx context.Context, id uuid.UUID, delta int) error {
	sql := `
        UPDATE owners
        SET item_count = item_count + $2, updated_at = NOW()
        WHERE id = $1`

	cmdTag, err := r.pool.Exec(ctx, sql, id, delta)
	if err != nil {
		return fmt.Errorf("failed to adjust item count: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return owner.ErrOwnerNotFound
	}

	r.invalidateOwnerCache(ctx, id)

	return nil
}

// ReconcileItemCounts recomputes item counts for every drifted owner
// inside one transaction, so the fix cannot race a concurrent fix from
// another worker instance.
func (r *postgresRepository) ReconcileItemCounts(ctx context.Context) ([]model.CountDrift, error) {
	var drifts []model.CountDrift

	err := database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		sql := `
            UPDATE owners o
            SET item_count = c.actual, updated_at = NOW()
            FROM (
                SELECT o.id, o.item_count, COUNT(i.id) AS actual
                FROM owners o
                LEFT JOIN items i ON i.owner_id = o.id
                GROUP BY o.id
                HAVING o.item_count <> COUNT(i.id)
            ) c
            WHERE o.id = c.id
            RETURNING o.id, c.item_count, c.actual`

		rows, err := tx.Query(ctx, sql)
		if err != nil {
			return fmt.Errorf("failed to reconcile item counts: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			var d model.CountDrift
			if err := rows.Scan(&d.OwnerID, &d.Recorded, &d.Actual); err != nil {
				return fmt.Errorf("failed to scan drift: %w", err)
			}
			drifts = append(drifts, d)
		}

		return rows.Err()
	})
	if err != nil {
		return nil, err
	}

	for _, d := range drifts {
		r.invalidateOwnerCache(ctx, d.OwnerID)
	}

	return drifts, nil
}

func (r *postgresRepository) invalidateOwnerCache(ctx context.Context, id uuid.UUID) {
	r.cache.Delete(ctx,
		ownerCacheKeyPrefix+id.String(),
		ownerItemsKeyPrefix+id.String(),
	)
}
