package identity

import "github.com/gin-gonic/gin"

const userIDKey = "sharerUserID"

// GetUserID returns the identified caller's user ID, or 0 when the request
// did not pass the Required middleware.
func GetUserID(c *gin.Context) int64 {
	if v, ok := c.Get(userIDKey); ok {
		if id, ok := v.(int64); ok {
			return id
		}
	}
	return 0
}
