package booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peershare/item-sharing-backend/internal/pkg/request"
	"github.com/peershare/item-sharing-backend/internal/user"
)

type fakeUsers struct {
	users map[int64]*user.User
}

func (f *fakeUsers) Create(ctx context.Context, req user.CreateRequest) (*user.User, error) {
	panic("not used")
}

func (f *fakeUsers) GetByID(ctx context.Context, id int64) (*user.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, user.ErrNotFound
	}
	return u, nil
}

func (f *fakeUsers) List(ctx context.Context) ([]*user.User, error) { panic("not used") }

func (f *fakeUsers) Update(ctx context.Context, id int64, req user.UpdateRequest) (*user.User, error) {
	panic("not used")
}

func (f *fakeUsers) Delete(ctx context.Context, id int64) (*user.User, error) { panic("not used") }

type fakeItems struct {
	items map[int64]*ItemInfo
	err   error
}

func (f *fakeItems) Info(ctx context.Context, id int64) (*ItemInfo, error) {
	if f.err != nil {
		return nil, f.err
	}
	i, ok := f.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	return i, nil
}

type fakeRepo struct {
	bookings map[int64]*Booking
	nextID   int64

	listed []*Booking
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{bookings: map[int64]*Booking{}, nextID: 1}
}

func (f *fakeRepo) Create(ctx context.Context, b *Booking) error {
	b.ID = f.nextID
	f.nextID++
	copied := *b
	f.bookings[b.ID] = &copied
	return nil
}

func (f *fakeRepo) GetByID(ctx context.Context, id int64) (*Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *b
	return &copied, nil
}

func (f *fakeRepo) UpdateStatusIfNotApproved(ctx context.Context, id int64, status Status) error {
	b, ok := f.bookings[id]
	if !ok || b.Status == StatusApproved {
		return ErrAlreadyApproved
	}
	b.Status = status
	return nil
}

func (f *fakeRepo) ListForBooker(ctx context.Context, bookerID int64, state State, now time.Time, limit, offset int) ([]*Booking, error) {
	return f.listed, nil
}

func (f *fakeRepo) ListForOwner(ctx context.Context, ownerID int64, state State, now time.Time, limit, offset int) ([]*Booking, error) {
	return f.listed, nil
}

func (f *fakeRepo) ApprovedForItem(ctx context.Context, itemID int64) ([]*Booking, error) {
	return nil, nil
}

func (f *fakeRepo) HasCompletedBooking(ctx context.Context, bookerID, itemID int64, now time.Time) (bool, error) {
	return false, nil
}

func newTestService(repo *fakeRepo) Service {
	users := &fakeUsers{users: map[int64]*user.User{
		1: {ID: 1, Name: "owner", Email: "owner@example.com"},
		2: {ID: 2, Name: "booker", Email: "booker@example.com"},
	}}
	items := &fakeItems{items: map[int64]*ItemInfo{
		10: {ID: 10, Name: "drill", OwnerID: 1, Available: true},
		11: {ID: 11, Name: "ladder", OwnerID: 1, Available: false},
	}}
	return NewService(repo, items, users)
}

func TestCreateBooking(t *testing.T) {
	ctx := context.Background()

	validWindow := func() (time.Time, time.Time) {
		return time.Now().Add(time.Hour), time.Now().Add(25 * time.Hour)
	}

	t.Run("Successful Create Is Waiting", func(t *testing.T) {
		repo := newFakeRepo()
		svc := newTestService(repo)

		start, end := validWindow()
		b, err := svc.Create(ctx, CreateRequest{BookerID: 2, ItemID: 10, Start: start, End: end})
		require.NoError(t, err)
		assert.Equal(t, StatusWaiting, b.Status, "New bookings should start WAITING")
		assert.Equal(t, "drill", b.ItemName)
		assert.Equal(t, "booker", b.BookerName)
		assert.Equal(t, int64(1), b.ItemOwnerID)
		assert.NotZero(t, b.ID)
	})

	t.Run("Unknown Booker", func(t *testing.T) {
		svc := newTestService(newFakeRepo())

		start, end := validWindow()
		_, err := svc.Create(ctx, CreateRequest{BookerID: 99, ItemID: 10, Start: start, End: end})
		assert.ErrorIs(t, err, user.ErrNotFound)
	})

	t.Run("Unknown Item", func(t *testing.T) {
		svc := newTestService(newFakeRepo())

		start, end := validWindow()
		_, err := svc.Create(ctx, CreateRequest{BookerID: 2, ItemID: 99, Start: start, End: end})
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("Owner Books Own Item", func(t *testing.T) {
		svc := newTestService(newFakeRepo())

		start, end := validWindow()
		_, err := svc.Create(ctx, CreateRequest{BookerID: 1, ItemID: 10, Start: start, End: end})
		assert.ErrorIs(t, err, ErrOwnBooking, "Owners should not be able to book their own item")
	})

	t.Run("Unavailable Item", func(t *testing.T) {
		svc := newTestService(newFakeRepo())

		start, end := validWindow()
		_, err := svc.Create(ctx, CreateRequest{BookerID: 2, ItemID: 11, Start: start, End: end})
		assert.ErrorIs(t, err, ErrItemUnavailable)
	})

	t.Run("Invalid Time Ranges", func(t *testing.T) {
		svc := newTestService(newFakeRepo())
		future := time.Now().Add(time.Hour)

		cases := []struct {
			name       string
			start, end time.Time
		}{
			{"Zero Start", time.Time{}, future},
			{"Zero End", future, time.Time{}},
			{"End Before Start", future.Add(time.Hour), future},
			{"Equal Start And End", future, future},
			{"Start In The Past", time.Now().Add(-time.Hour), future},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := svc.Create(ctx, CreateRequest{BookerID: 2, ItemID: 10, Start: tc.start, End: tc.end})
				assert.ErrorIs(t, err, ErrInvalidTimeRange)
			})
		}
	})
}

func TestDecideBooking(t *testing.T) {
	ctx := context.Background()

	seed := func(status Status) (*fakeRepo, Service) {
		repo := newFakeRepo()
		repo.bookings[1] = &Booking{
			ID: 1, ItemID: 10, ItemOwnerID: 1, BookerID: 2, Status: status,
		}
		return repo, newTestService(repo)
	}

	t.Run("Approve Waiting", func(t *testing.T) {
		repo, svc := seed(StatusWaiting)

		b, err := svc.Decide(ctx, 1, 1, true)
		require.NoError(t, err)
		assert.Equal(t, StatusApproved, b.Status)
		assert.Equal(t, StatusApproved, repo.bookings[1].Status, "The decision should be persisted")
	})

	t.Run("Reject Waiting", func(t *testing.T) {
		_, svc := seed(StatusWaiting)

		b, err := svc.Decide(ctx, 1, 1, false)
		require.NoError(t, err)
		assert.Equal(t, StatusRejected, b.Status)
	})

	t.Run("Approved Is Terminal", func(t *testing.T) {
		_, svc := seed(StatusApproved)

		_, err := svc.Decide(ctx, 1, 1, false)
		assert.ErrorIs(t, err, ErrAlreadyApproved, "Approved bookings should not be decidable again")
	})

	t.Run("Rejected Can Be Decided Again", func(t *testing.T) {
		_, svc := seed(StatusRejected)

		b, err := svc.Decide(ctx, 1, 1, true)
		require.NoError(t, err)
		assert.Equal(t, StatusApproved, b.Status)
	})

	t.Run("Not The Item Owner", func(t *testing.T) {
		_, svc := seed(StatusWaiting)

		_, err := svc.Decide(ctx, 2, 1, true)
		assert.ErrorIs(t, err, ErrNotOwner)
	})

	t.Run("Unknown Booking", func(t *testing.T) {
		_, svc := seed(StatusWaiting)

		_, err := svc.Decide(ctx, 1, 99, true)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestGetBooking(t *testing.T) {
	ctx := context.Background()

	repo := newFakeRepo()
	repo.bookings[1] = &Booking{ID: 1, ItemID: 10, ItemOwnerID: 1, BookerID: 2, Status: StatusWaiting}
	svc := newTestService(repo)

	t.Run("Visible To Booker", func(t *testing.T) {
		b, err := svc.GetByID(ctx, 2, 1)
		require.NoError(t, err)
		assert.Equal(t, int64(1), b.ID)
	})

	t.Run("Visible To Item Owner", func(t *testing.T) {
		_, err := svc.GetByID(ctx, 1, 1)
		assert.NoError(t, err)
	})

	t.Run("Hidden From Everyone Else", func(t *testing.T) {
		users := &fakeUsers{users: map[int64]*user.User{
			3: {ID: 3, Name: "stranger", Email: "s@example.com"},
		}}
		strangerSvc := NewService(repo, &fakeItems{}, users)

		_, err := strangerSvc.GetByID(ctx, 3, 1)
		assert.ErrorIs(t, err, ErrNotAuthorized)
	})
}

func TestListBookings(t *testing.T) {
	ctx := context.Background()
	page := request.PageParams{From: 0, Size: 10}

	t.Run("Unknown State Token", func(t *testing.T) {
		svc := newTestService(newFakeRepo())

		_, err := svc.ListForBooker(ctx, 2, "SOMEDAY", page)
		assert.ErrorIs(t, err, ErrUnknownState)
		assert.EqualError(t, err, "Unknown state: UNSUPPORTED_STATUS")
	})

	t.Run("Lowercase State Rejected", func(t *testing.T) {
		svc := newTestService(newFakeRepo())

		_, err := svc.ListForOwner(ctx, 1, "current", page)
		assert.ErrorIs(t, err, ErrUnknownState, "State matching should be case-sensitive")
	})

	t.Run("Unknown User Checked First", func(t *testing.T) {
		svc := newTestService(newFakeRepo())

		_, err := svc.ListForBooker(ctx, 99, "SOMEDAY", page)
		assert.ErrorIs(t, err, user.ErrNotFound, "User existence should be checked before the state token")
	})

	t.Run("Invalid Pagination", func(t *testing.T) {
		svc := newTestService(newFakeRepo())

		_, err := svc.ListForBooker(ctx, 2, "ALL", request.PageParams{From: -1, Size: 10})
		assert.ErrorIs(t, err, request.ErrNegativeFrom)

		_, err = svc.ListForOwner(ctx, 1, "ALL", request.PageParams{From: 0, Size: 0})
		assert.ErrorIs(t, err, request.ErrInvalidSize)
	})

	t.Run("Valid Listing", func(t *testing.T) {
		repo := newFakeRepo()
		repo.listed = []*Booking{{ID: 5}, {ID: 4}}
		svc := newTestService(repo)

		got, err := svc.ListForBooker(ctx, 2, "ALL", page)
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})
}

func TestParseState(t *testing.T) {
	for _, token := range []string{"ALL", "CURRENT", "PAST", "FUTURE", "WAITING", "REJECTED"} {
		st, err := ParseState(token)
		require.NoError(t, err, "Token %s should parse", token)
		assert.Equal(t, State(token), st)
	}

	_, err := ParseState("APPROVED")
	assert.ErrorIs(t, err, ErrUnknownState, "APPROVED is a status, not a listing state")
}
