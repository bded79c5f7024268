package gateway

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httputil"
	"net/url"
	"strconv"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/peershare/item-sharing-backend/internal/identity"
)

// Config carries gateway settings.
type Config struct {
	IsProduction bool
	ProdOrigins  string
}

// NewRouter builds the gateway engine: it validates request shapes and the
// caller identity header, then forwards everything else untouched to the
// server tier at target.
func NewRouter(target *url.URL, cfg Config) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	corsConfig := cors.DefaultConfig()
	if cfg.IsProduction && cfg.ProdOrigins != "" {
		corsConfig.AllowOrigins = []string{cfg.ProdOrigins}
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", identity.Header}
	r.Use(cors.New(corsConfig))

	proxy := httputil.NewSingleHostReverseProxy(target)
	forward := func(c *gin.Context) {
		proxy.ServeHTTP(c.Writer, c.Request)
	}

	// Users carry no identity header; everything else does.
	users := r.Group("/users")
	{
		users.GET("", forward)
		users.GET("/:id", forward)
		users.DELETE("/:id", forward)
		users.POST("", validateBody(validateUser), forward)
		users.PATCH("/:id", validateBody(validateUserPatch), forward)
	}

	items := r.Group("/items", requireIdentity)
	{
		items.GET("", validatePaging, forward)
		items.GET("/search", validatePaging, forward)
		items.GET("/:itemId", forward)
		items.GET("/:itemId/image", forward)
		items.POST("/:itemId/image", forward)
		items.POST("", validateBody(validateItem), forward)
		items.PATCH("/:itemId", forward)
		items.POST("/:itemId/comment", validateBody(validateComment), forward)
	}

	bookings := r.Group("/bookings", requireIdentity)
	{
		bookings.POST("", validateBody(validateBooking), forward)
		bookings.PATCH("/:bookingId", validateApproved, forward)
		bookings.GET("/:bookingId", forward)
		bookings.GET("", validateListState, forward)
		bookings.GET("/owner", validateListState, forward)
	}

	requests := r.Group("/requests", requireIdentity)
	{
		requests.POST("", validateBody(validateItemRequest), forward)
		requests.GET("", forward)
		requests.GET("/all", validatePaging, forward)
		requests.GET("/:requestId", forward)
	}

	return r
}

// requireIdentity rejects requests without a well-formed caller header.
// Whether the user actually exists is the server tier's business.
func requireIdentity(c *gin.Context) {
	raw := c.GetHeader(identity.Header)
	if raw == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error": "X-Sharer-User-Id header is required",
		})
		return
	}
	if _, err := strconv.ParseInt(raw, 10, 64); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error": "X-Sharer-User-Id header must be an integer",
		})
		return
	}
	c.Next()
}

// validateBody parses the JSON body with the given validator and restores
// it so the proxy forwards the original bytes.
func validateBody(validate func([]byte) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := c.GetRawData()
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "failed to read request body"})
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewReader(raw))

		if err := validate(raw); err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.Next()
	}
}

func validatePaging(c *gin.Context) {
	if !checkPaging(c) {
		return
	}
	c.Next()
}

func validateListState(c *gin.Context) {
	if !checkPaging(c) {
		return
	}

	state := c.DefaultQuery("state", "ALL")
	if !knownStates[state] {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Unknown state: UNSUPPORTED_STATUS"})
		return
	}
	c.Next()
}

func validateApproved(c *gin.Context) {
	if _, err := strconv.ParseBool(c.Query("approved")); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "approved query parameter must be a boolean"})
		return
	}
	c.Next()
}

var knownStates = map[string]bool{
	"ALL":      true,
	"CURRENT":  true,
	"PAST":     true,
	"FUTURE":   true,
	"WAITING":  true,
	"REJECTED": true,
}

func checkPaging(c *gin.Context) bool {
	from, err := strconv.Atoi(c.DefaultQuery("from", "0"))
	if err != nil || from < 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "from must be a non-negative integer"})
		return false
	}
	size, err := strconv.Atoi(c.DefaultQuery("size", "10"))
	if err != nil || size < 1 {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "size must be a positive integer"})
		return false
	}
	return true
}
