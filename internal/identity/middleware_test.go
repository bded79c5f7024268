package identity

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

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

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	users := &fakeUsers{users: map[int64]*user.User{
		42: {ID: 42, Name: "alice", Email: "alice@example.com"},
	}}

	r := gin.New()
	r.GET("/whoami", Required(users), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"id": GetUserID(c)})
	})
	return r
}

func TestRequiredIdentity(t *testing.T) {
	r := setupRouter()

	perform := func(header string) *httptest.ResponseRecorder {
		req := httptest.NewRequest("GET", "/whoami", nil)
		if header != "" {
			req.Header.Set(Header, header)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	t.Run("Known User Passes", func(t *testing.T) {
		w := perform("42")
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"id":42}`, w.Body.String())
	})

	t.Run("Missing Header", func(t *testing.T) {
		w := perform("")
		assert.Equal(t, http.StatusBadRequest, w.Code, "Missing identity header should be a bad request")
	})

	t.Run("Non-Integer Header", func(t *testing.T) {
		w := perform("forty-two")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Unknown User", func(t *testing.T) {
		w := perform("99")
		assert.Equal(t, http.StatusNotFound, w.Code, "Unknown users should get a not-found")
	})
}
