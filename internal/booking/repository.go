package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, b *Booking) error
	GetByID(ctx context.Context, id int64) (*Booking, error)

	// UpdateStatusIfNotApproved sets the booking status only while the
	// current status is not APPROVED, making the WAITING -> terminal
	// transition atomic under concurrent decisions.
	UpdateStatusIfNotApproved(ctx context.Context, id int64, status Status) error

	ListForBooker(ctx context.Context, bookerID int64, state State, now time.Time, limit, offset int) ([]*Booking, error)
	ListForOwner(ctx context.Context, ownerID int64, state State, now time.Time, limit, offset int) ([]*Booking, error)

	// ApprovedForItem returns the item's APPROVED bookings ordered by end
	// time ascending, the order ResolveNearest expects.
	ApprovedForItem(ctx context.Context, itemID int64) ([]*Booking, error)

	// HasCompletedBooking reports whether the booker has an APPROVED
	// booking of the item that already ended.
	HasCompletedBooking(ctx context.Context, bookerID, itemID int64, now time.Time) (bool, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

func selectBookings() squirrel.SelectBuilder {
	return psql.Select(
		"b.id", "b.start_date", "b.end_date",
		"b.item_id", "i.name", "i.owner_id",
		"b.booker_id", "u.name", "b.status",
	).
		From("public.bookings b").
		Join("public.items i ON b.item_id = i.id").
		Join("public.users u ON b.booker_id = u.id")
}

func scanBooking(row pgx.Row) (*Booking, error) {
	var b Booking
	if err := row.Scan(
		&b.ID, &b.Start, &b.End,
		&b.ItemID, &b.ItemName, &b.ItemOwnerID,
		&b.BookerID, &b.BookerName, &b.Status,
	); err != nil {
		return nil, err
	}
	return &b, nil
}

// applyStateFilter adds the temporal or status conditions for a state token.
// CURRENT means started but not ended, PAST already ended, FUTURE not yet
// started; WAITING and REJECTED match on status regardless of timing.
func applyStateFilter(q squirrel.SelectBuilder, state State, now time.Time) squirrel.SelectBuilder {
	switch state {
	case StateCurrent:
		q = q.Where(squirrel.Lt{"b.start_date": now}).Where(squirrel.Gt{"b.end_date": now})
	case StatePast:
		q = q.Where(squirrel.Lt{"b.end_date": now})
	case StateFuture:
		q = q.Where(squirrel.Gt{"b.start_date": now})
	case StateWaiting:
		q = q.Where(squirrel.Eq{"b.status": StatusWaiting})
	case StateRejected:
		q = q.Where(squirrel.Eq{"b.status": StatusRejected})
	}
	return q
}

func (r *pgxRepository) Create(ctx context.Context, b *Booking) error {
	query, args, err := psql.Insert("public.bookings").
		Columns("start_date", "end_date", "item_id", "booker_id", "status").
		Values(b.Start, b.End, b.ItemID, b.BookerID, b.Status).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create booking query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&b.ID); err != nil {
		return fmt.Errorf("create booking failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id int64) (*Booking, error) {
	query, args, err := selectBookings().
		Where(squirrel.Eq{"b.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get booking query failed: %w", err)
	}

	b, err := scanBooking(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get booking failed: %w", err)
	}
	return b, nil
}

func (r *pgxRepository) UpdateStatusIfNotApproved(ctx context.Context, id int64, status Status) error {
	query, args, err := psql.Update("public.bookings").
		Set("status", status).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.NotEq{"status": StatusApproved}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update booking status query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update booking status failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		// The caller verified the booking exists, so zero rows means a
		// concurrent decision approved it first.
		return ErrAlreadyApproved
	}
	return nil
}

func (r *pgxRepository) ListForBooker(ctx context.Context, bookerID int64, state State, now time.Time, limit, offset int) ([]*Booking, error) {
	q := selectBookings().Where(squirrel.Eq{"b.booker_id": bookerID})
	return r.list(ctx, q, state, now, limit, offset)
}

func (r *pgxRepository) ListForOwner(ctx context.Context, ownerID int64, state State, now time.Time, limit, offset int) ([]*Booking, error) {
	q := selectBookings().Where(squirrel.Eq{"i.owner_id": ownerID})
	return r.list(ctx, q, state, now, limit, offset)
}

func (r *pgxRepository) list(ctx context.Context, q squirrel.SelectBuilder, state State, now time.Time, limit, offset int) ([]*Booking, error) {
	q = applyStateFilter(q, state, now).
		OrderBy("b.start_date DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset))

	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list bookings query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list bookings failed: %w", err)
	}
	defer rows.Close()

	var bookings []*Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("scan booking failed: %w", err)
		}
		bookings = append(bookings, b)
	}

	return bookings, rows.Err()
}

func (r *pgxRepository) ApprovedForItem(ctx context.Context, itemID int64) ([]*Booking, error) {
	query, args, err := selectBookings().
		Where(squirrel.Eq{"b.item_id": itemID}).
		Where(squirrel.Eq{"b.status": StatusApproved}).
		OrderBy("b.end_date ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build approved bookings query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("approved bookings query failed: %w", err)
	}
	defer rows.Close()

	var bookings []*Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("scan booking failed: %w", err)
		}
		bookings = append(bookings, b)
	}

	return bookings, rows.Err()
}

func (r *pgxRepository) HasCompletedBooking(ctx context.Context, bookerID, itemID int64, now time.Time) (bool, error) {
	sub, args, err := psql.Select("1").
		From("public.bookings").
		Where(squirrel.Eq{"booker_id": bookerID}).
		Where(squirrel.Eq{"item_id": itemID}).
		Where(squirrel.Eq{"status": StatusApproved}).
		Where(squirrel.Lt{"end_date": now}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build completed booking query failed: %w", err)
	}

	var exists bool
	if err := r.pool.QueryRow(ctx, "SELECT EXISTS ("+sub+")", args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("completed booking query failed: %w", err)
	}
	return exists, nil
}
