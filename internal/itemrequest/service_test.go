package itemrequest

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peershare/item-sharing-backend/internal/item"
	"github.com/peershare/item-sharing-backend/internal/pkg/request"
	"github.com/peershare/item-sharing-backend/internal/user"
)

type fakeRepo struct {
	requests map[int64]*ItemRequest
	nextID   int64
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{requests: map[int64]*ItemRequest{}, nextID: 1}
}

func (f *fakeRepo) Create(ctx context.Context, req *ItemRequest) error {
	req.ID = f.nextID
	f.nextID++
	req.Created = time.Now()
	copied := *req
	f.requests[req.ID] = &copied
	return nil
}

func (f *fakeRepo) GetByID(ctx context.Context, id int64) (*ItemRequest, error) {
	req, ok := f.requests[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *req
	return &copied, nil
}

func (f *fakeRepo) ListByRequester(ctx context.Context, requesterID int64) ([]*ItemRequest, error) {
	var own []*ItemRequest
	for _, req := range f.requests {
		if req.RequesterID == requesterID {
			copied := *req
			own = append(own, &copied)
		}
	}
	return own, nil
}

func (f *fakeRepo) ListOthers(ctx context.Context, excludeRequesterID int64, limit, offset int) ([]*ItemRequest, error) {
	var others []*ItemRequest
	for _, req := range f.requests {
		if req.RequesterID != excludeRequesterID {
			copied := *req
			others = append(others, &copied)
		}
	}
	return others, nil
}

// fakeItems serves only the per-request response lookup.
type fakeItems struct {
	item.Repository

	byRequest map[int64][]*item.Item
}

func (f *fakeItems) ListByRequest(ctx context.Context, requestID int64) ([]*item.Item, error) {
	return f.byRequest[requestID], nil
}

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

func newTestService(repo *fakeRepo, items *fakeItems) Service {
	users := &fakeUsers{users: map[int64]*user.User{
		1: {ID: 1, Name: "asker", Email: "asker@example.com"},
		2: {ID: 2, Name: "other", Email: "other@example.com"},
	}}
	if items == nil {
		items = &fakeItems{byRequest: map[int64][]*item.Item{}}
	}
	return NewService(repo, items, users)
}

func TestCreateItemRequest(t *testing.T) {
	ctx := context.Background()

	t.Run("Valid Request", func(t *testing.T) {
		svc := newTestService(newFakeRepo(), nil)

		req, err := svc.Create(ctx, 1, "need a ladder for a weekend")
		require.NoError(t, err)
		assert.NotZero(t, req.ID)
		assert.Equal(t, int64(1), req.RequesterID)
		assert.False(t, req.Created.IsZero(), "Creation time should be recorded")
	})

	t.Run("Blank Description", func(t *testing.T) {
		svc := newTestService(newFakeRepo(), nil)

		_, err := svc.Create(ctx, 1, "  ")
		assert.ErrorIs(t, err, ErrDescriptionRequired)
	})

	t.Run("Unknown Requester", func(t *testing.T) {
		svc := newTestService(newFakeRepo(), nil)

		_, err := svc.Create(ctx, 99, "need a ladder")
		assert.ErrorIs(t, err, user.ErrNotFound)
	})
}

func TestListItemRequests(t *testing.T) {
	ctx := context.Background()

	seed := func(t *testing.T) (Service, *fakeItems) {
		repo := newFakeRepo()
		items := &fakeItems{byRequest: map[int64][]*item.Item{}}
		svc := newTestService(repo, items)

		mine, err := svc.Create(ctx, 1, "need a ladder")
		require.NoError(t, err)
		_, err = svc.Create(ctx, 2, "need a drill")
		require.NoError(t, err)

		items.byRequest[mine.ID] = []*item.Item{{ID: 7, Name: "ladder", OwnerID: 2}}
		return svc, items
	}

	t.Run("Own Requests Carry Responses", func(t *testing.T) {
		svc, _ := seed(t)

		own, err := svc.ListOwn(ctx, 1)
		require.NoError(t, err)
		require.Len(t, own, 1)
		assert.Equal(t, "need a ladder", own[0].Description)
		require.Len(t, own[0].Items, 1)
		assert.Equal(t, "ladder", own[0].Items[0].Name)
	})

	t.Run("Others Excludes The Caller", func(t *testing.T) {
		svc, _ := seed(t)

		others, err := svc.ListOthers(ctx, 1, request.PageParams{From: 0, Size: 10})
		require.NoError(t, err)
		require.Len(t, others, 1)
		assert.Equal(t, int64(2), others[0].RequesterID, "The caller's own requests should be excluded")
	})

	t.Run("Invalid Pagination", func(t *testing.T) {
		svc, _ := seed(t)

		_, err := svc.ListOthers(ctx, 1, request.PageParams{From: -5, Size: 10})
		assert.ErrorIs(t, err, request.ErrNegativeFrom)
	})

	t.Run("Unknown User", func(t *testing.T) {
		svc, _ := seed(t)

		_, err := svc.ListOwn(ctx, 99)
		assert.ErrorIs(t, err, user.ErrNotFound)
	})
}

func TestGetItemRequest(t *testing.T) {
	ctx := context.Background()
	svc, _ := func() (Service, *fakeItems) {
		repo := newFakeRepo()
		items := &fakeItems{byRequest: map[int64][]*item.Item{}}
		return newTestService(repo, items), items
	}()

	created, err := svc.Create(ctx, 1, "need a tent")
	require.NoError(t, err)

	t.Run("Any Known User May Read", func(t *testing.T) {
		got, err := svc.GetByID(ctx, 2, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created.ID, got.ID)
	})

	t.Run("Unknown Request", func(t *testing.T) {
		_, err := svc.GetByID(ctx, 1, 99)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}
