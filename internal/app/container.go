package app

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/hari-collage/bcafinalyearprojects-rentiqueweb/internal/api"
	"github.com/hari-collage/bcafinalyearprojects-rentiqueweb/internal/auth"
	"github.com/hari-collage/bcafinalyearprojects-rentiqueweb/internal/category"
	"github.com/hari-collage/bcafinalyearprojects-rentiqueweb/internal/config"
	"github.com/hari-collage/bcafinalyearprojects-rentiqueweb/internal/item"
	"github.com/hari-collage/bcafinalyearprojects-rentiqueweb/internal/metrics"
	"github.com/hari-collage/bcafinalyearprojects-rentiqueweb/internal/ratelimit"
	"github.com/hari-collage/bcafinalyearprojects-rentiqueweb/internal/rent"
	"github.com/hari-collage/bcafinalyearprojects-rentiqueweb/internal/review"
	"github.com/hari-collage/bcafinalyearprojects-rentiqueweb/internal/shop"
	"github.com/hari-collage/bcafinalyearprojects-rentiqueweb/internal/user"
)

// Deps holds the connections and settings required to start the application.
type Deps struct {
	Config *config.Config
	DBPool *pgxpool.Pool
	Logger *zerolog.Logger
	// Redis is optional. Without it rate limits are tracked per process.
	Redis *redis.Client
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router     *gin.Engine
	JWTManager *auth.JWTManager

	limiter ratelimit.Limiter
	window  time.Duration
}

// Start launches background maintenance and returns immediately.
// Everything started here stops when ctx is cancelled.
func (c *Container) Start(ctx context.Context) {
	if ml, ok := c.limiter.(*ratelimit.MemoryLimiter); ok {
		go ml.Run(ctx, c.window)
	}
}

// NewContainer initializes all modules and returns the container.
func NewContainer(deps Deps) *Container {
	cfg := deps.Config

	metrics.Register()

	// Init Components
	passwordHasher := auth.NewBcryptPasswordHasher(cfg.BcryptCost)
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTAccessTokenTTL)

	var limiter ratelimit.Limiter
	if deps.Redis != nil {
		limiter = ratelimit.NewRedisLimiter(deps.Redis, cfg.RateLimitRequests, cfg.RateLimitWindow)
	} else {
		limiter = ratelimit.NewMemoryLimiter(cfg.RateLimitRequests, cfg.RateLimitWindow)
	}

	// User Module
	userRepo := user.NewPgxRepository(deps.DBPool)
	userService := user.NewService(userRepo, passwordHasher)

	// Shop Module
	shopRepo := shop.NewPgxRepository(deps.DBPool)
	shopService := shop.NewService(shopRepo)

	// Category Module
	categoryRepo := category.NewPgxRepository(deps.DBPool)
	categoryService := category.NewService(categoryRepo)

	// Item Module
	itemRepo := item.NewPgxRepository(deps.DBPool)
	itemService := item.NewService(itemRepo, shopService)

	// Rent Module
	rentRepo := rent.NewPgxRepository(deps.DBPool)
	rentService := rent.NewService(rentRepo, itemService)

	// Review Module
	reviewRepo := review.NewPgxRepository(deps.DBPool)
	reviewService := review.NewService(reviewRepo, rentRepo)

	router := api.NewRouter(api.Config{
		IsProduction:    cfg.IsProduction,
		ClientOrigins:   cfg.ClientOrigins,
		Logger:          deps.Logger,
		DB:              deps.DBPool,
		UserService:     userService,
		ShopService:     shopService,
		CategoryService: categoryService,
		ItemService:     itemService,
		RentService:     rentService,
		ReviewService:   reviewService,
		JWTManager:      jwtManager,
		Limiter:         limiter,
	})

	return &Container{
		Router:     router,
		JWTManager: jwtManager,
		limiter:    limiter,
		window:     cfg.RateLimitWindow,
	}
}
