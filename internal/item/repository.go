package item

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/peershare/item-sharing-backend/internal/booking"
)

type Repository interface {
	Create(ctx context.Context, i *Item) error
	GetByID(ctx context.Context, id int64) (*Item, error)
	Update(ctx context.Context, i *Item) error
	ListByOwner(ctx context.Context, ownerID int64, limit, offset int) ([]*Item, error)

	// Search matches available items whose name or description contains
	// the text, case-insensitively.
	Search(ctx context.Context, text string, limit, offset int) ([]*Item, error)

	// ListByRequest returns the items answering one item request.
	ListByRequest(ctx context.Context, requestID int64) ([]*Item, error)

	// Exists reports item existence without loading the row.
	Exists(ctx context.Context, id int64) (bool, error)

	// RequestExists reports whether an item request row exists, used to
	// validate the originating request reference on create.
	RequestExists(ctx context.Context, requestID int64) (bool, error)

	// Info provides the catalog slice the booking engine depends on.
	Info(ctx context.Context, id int64) (*booking.ItemInfo, error)

	SetImagePath(ctx context.Context, id int64, path string) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

const itemColumns = "id, name, description, available, owner_id, request_id, image_path"

func scanItem(row pgx.Row) (*Item, error) {
	var i Item
	if err := row.Scan(
		&i.ID, &i.Name, &i.Description, &i.Available,
		&i.OwnerID, &i.RequestID, &i.ImagePath,
	); err != nil {
		return nil, err
	}
	return &i, nil
}

func (r *pgxRepository) Create(ctx context.Context, i *Item) error {
	query, args, err := psql.Insert("public.items").
		Columns("name", "description", "available", "owner_id", "request_id").
		Values(i.Name, i.Description, i.Available, i.OwnerID, i.RequestID).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create item query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&i.ID); err != nil {
		return fmt.Errorf("create item failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id int64) (*Item, error) {
	const query = `
		SELECT ` + itemColumns + `
		FROM public.items
		WHERE id = $1
	`

	i, err := scanItem(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get item failed: %w", err)
	}
	return i, nil
}

func (r *pgxRepository) Update(ctx context.Context, i *Item) error {
	query, args, err := psql.Update("public.items").
		Set("name", i.Name).
		Set("description", i.Description).
		Set("available", i.Available).
		Where(squirrel.Eq{"id": i.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update item query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update item failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) ListByOwner(ctx context.Context, ownerID int64, limit, offset int) ([]*Item, error) {
	query, args, err := psql.Select(itemColumns).
		From("public.items").
		Where(squirrel.Eq{"owner_id": ownerID}).
		OrderBy("id").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list items query failed: %w", err)
	}
	return r.queryItems(ctx, query, args...)
}

func (r *pgxRepository) Search(ctx context.Context, text string, limit, offset int) ([]*Item, error) {
	pattern := "%" + text + "%"
	query, args, err := psql.Select(itemColumns).
		From("public.items").
		Where(squirrel.Eq{"available": true}).
		Where(squirrel.Or{
			squirrel.ILike{"name": pattern},
			squirrel.ILike{"description": pattern},
		}).
		OrderBy("id").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build search items query failed: %w", err)
	}
	return r.queryItems(ctx, query, args...)
}

func (r *pgxRepository) ListByRequest(ctx context.Context, requestID int64) ([]*Item, error) {
	query, args, err := psql.Select(itemColumns).
		From("public.items").
		Where(squirrel.Eq{"request_id": requestID}).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build items by request query failed: %w", err)
	}
	return r.queryItems(ctx, query, args...)
}

func (r *pgxRepository) queryItems(ctx context.Context, query string, args ...any) ([]*Item, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query items failed: %w", err)
	}
	defer rows.Close()

	var items []*Item
	for rows.Next() {
		i, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item failed: %w", err)
		}
		items = append(items, i)
	}

	return items, rows.Err()
}

func (r *pgxRepository) Exists(ctx context.Context, id int64) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM public.items WHERE id = $1)`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("item exists query failed: %w", err)
	}
	return exists, nil
}

func (r *pgxRepository) RequestExists(ctx context.Context, requestID int64) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM public.item_requests WHERE id = $1)`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, requestID).Scan(&exists); err != nil {
		return false, fmt.Errorf("item request exists query failed: %w", err)
	}
	return exists, nil
}

func (r *pgxRepository) Info(ctx context.Context, id int64) (*booking.ItemInfo, error) {
	const query = `
		SELECT id, name, owner_id, available
		FROM public.items
		WHERE id = $1
	`

	var info booking.ItemInfo
	if err := r.pool.QueryRow(ctx, query, id).
		Scan(&info.ID, &info.Name, &info.OwnerID, &info.Available); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("item info query failed: %w", err)
	}
	return &info, nil
}

func (r *pgxRepository) SetImagePath(ctx context.Context, id int64, path string) error {
	const query = `
		UPDATE public.items
		SET image_path = $1
		WHERE id = $2
	`

	ct, err := r.pool.Exec(ctx, query, path, id)
	if err != nil {
		return fmt.Errorf("set item image failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
