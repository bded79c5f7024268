package api

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/peershare/item-sharing-backend/internal/booking"
	bookingHttp "github.com/peershare/item-sharing-backend/internal/booking/http"
	"github.com/peershare/item-sharing-backend/internal/comment"
	"github.com/peershare/item-sharing-backend/internal/identity"
	"github.com/peershare/item-sharing-backend/internal/item"
	itemHttp "github.com/peershare/item-sharing-backend/internal/item/http"
	"github.com/peershare/item-sharing-backend/internal/itemrequest"
	requestHttp "github.com/peershare/item-sharing-backend/internal/itemrequest/http"
	"github.com/peershare/item-sharing-backend/internal/user"
	userHttp "github.com/peershare/item-sharing-backend/internal/user/http"
)

// Config carries the services the router wires into handlers.
type Config struct {
	IsProduction   bool
	ProdOrigins    string
	UserService    user.Service
	ItemService    item.Service
	BookingService booking.Service
	RequestService itemrequest.Service
	CommentService comment.Service
}

// NewRouter assembles middleware and registers routes for all modules.
// The preserved API surface lives at the root, not under a version prefix.
func NewRouter(cfg Config) *gin.Engine {
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

	// identityMiddleware resolves the calling user from X-Sharer-User-Id.
	identityMiddleware := identity.Required(cfg.UserService)

	userHandler := userHttp.NewHandler(cfg.UserService)
	itemHandler := itemHttp.NewHandler(cfg.ItemService, cfg.CommentService)
	bookingHandler := bookingHttp.NewHandler(cfg.BookingService)
	requestHandler := requestHttp.NewHandler(cfg.RequestService)

	root := r.Group("")
	{
		userHttp.RegisterRoutes(root, userHandler)
		itemHttp.RegisterRoutes(root, itemHandler, identityMiddleware)
		bookingHttp.RegisterRoutes(root, bookingHandler, identityMiddleware)
		requestHttp.RegisterRoutes(root, requestHandler, identityMiddleware)
	}

	return r
}
