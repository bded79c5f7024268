package app

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/peershare/item-sharing-backend/internal/api"
	"github.com/peershare/item-sharing-backend/internal/booking"
	"github.com/peershare/item-sharing-backend/internal/comment"
	"github.com/peershare/item-sharing-backend/internal/item"
	"github.com/peershare/item-sharing-backend/internal/itemrequest"
	"github.com/peershare/item-sharing-backend/internal/pkg/storage"
	"github.com/peershare/item-sharing-backend/internal/user"
)

// Config holds the dependencies and settings required to start the application.
type Config struct {
	IsProduction bool
	ProdOrigins  string
	DBPool       *pgxpool.Pool
	ImageDir     string
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router *gin.Engine
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg Config) (*Container, error) {
	store, err := storage.NewLocalStorage(cfg.ImageDir)
	if err != nil {
		return nil, fmt.Errorf("init image storage: %w", err)
	}
	imageProcessor := storage.NewImageProcessor()

	// User directory
	userRepo := user.NewPgxRepository(cfg.DBPool)
	userService := user.NewService(userRepo)

	// Booking engine
	bookingRepo := booking.NewPgxRepository(cfg.DBPool)

	// Item catalog; its repository doubles as the booking engine's item
	// source and the comment ledger's existence check.
	itemRepo := item.NewPgxRepository(cfg.DBPool)
	bookingService := booking.NewService(bookingRepo, itemRepo, userService)

	// Comment ledger
	commentRepo := comment.NewPgxRepository(cfg.DBPool)
	commentService := comment.NewService(commentRepo, bookingRepo, itemRepo, userService)

	itemService := item.NewService(itemRepo, userService, bookingRepo, commentService, store, imageProcessor)

	// Item-request board
	requestRepo := itemrequest.NewPgxRepository(cfg.DBPool)
	requestService := itemrequest.NewService(requestRepo, itemRepo, userService)

	router := api.NewRouter(api.Config{
		IsProduction:   cfg.IsProduction,
		ProdOrigins:    cfg.ProdOrigins,
		UserService:    userService,
		ItemService:    itemService,
		BookingService: bookingService,
		RequestService: requestService,
		CommentService: commentService,
	})

	return &Container{Router: router}, nil
}
