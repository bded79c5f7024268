package identity

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/peershare/item-sharing-backend/internal/user"
)

// Header carries the calling user's ID on every identified endpoint.
const Header = "X-Sharer-User-Id"

// Required is a Gin middleware that resolves the caller from the
// X-Sharer-User-Id header. A missing or malformed header aborts with 400;
// an unknown user aborts with 404.
func Required(users user.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader(Header)
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"error": "X-Sharer-User-Id header is required",
			})
			return
		}

		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"error": "X-Sharer-User-Id header must be an integer",
			})
			return
		}

		if _, err := users.GetByID(c.Request.Context(), id); err != nil {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
				"error": "user not found",
			})
			return
		}

		c.Set(userIDKey, id)
		c.Next()
	}
}
