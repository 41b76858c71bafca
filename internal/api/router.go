package api

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/hari-collage/bcafinalyearprojects-rentiqueweb/internal/auth"
	"github.com/hari-collage/bcafinalyearprojects-rentiqueweb/internal/category"
	categoryHttp "github.com/hari-collage/bcafinalyearprojects-rentiqueweb/internal/category/http"
	"github.com/hari-collage/bcafinalyearprojects-rentiqueweb/internal/item"
	itemHttp "github.com/hari-collage/bcafinalyearprojects-rentiqueweb/internal/item/http"
	"github.com/hari-collage/bcafinalyearprojects-rentiqueweb/internal/logging"
	"github.com/hari-collage/bcafinalyearprojects-rentiqueweb/internal/metrics"
	"github.com/hari-collage/bcafinalyearprojects-rentiqueweb/internal/ratelimit"
	"github.com/hari-collage/bcafinalyearprojects-rentiqueweb/internal/rent"
	rentHttp "github.com/hari-collage/bcafinalyearprojects-rentiqueweb/internal/rent/http"
	"github.com/hari-collage/bcafinalyearprojects-rentiqueweb/internal/review"
	reviewHttp "github.com/hari-collage/bcafinalyearprojects-rentiqueweb/internal/review/http"
	"github.com/hari-collage/bcafinalyearprojects-rentiqueweb/internal/shop"
	shopHttp "github.com/hari-collage/bcafinalyearprojects-rentiqueweb/internal/shop/http"
	"github.com/hari-collage/bcafinalyearprojects-rentiqueweb/internal/user"
	userHttp "github.com/hari-collage/bcafinalyearprojects-rentiqueweb/internal/user/http"
)

// Config carries everything NewRouter needs.
type Config struct {
	IsProduction  bool
	ClientOrigins []string
	Logger        *zerolog.Logger
	DB            Pinger

	UserService     user.Service
	ShopService     shop.Service
	CategoryService category.Service
	ItemService     item.Service
	RentService     rent.Service
	ReviewService   review.Service
	JWTManager      *auth.JWTManager
	Limiter         ratelimit.Limiter
}

// NewRouter initializes the HTTP router engine.
// It assembles middleware (request logging, metrics, CORS, auth) and registers routes for every module.
func NewRouter(cfg Config) *gin.Engine {
	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Recovery first so panics in later middleware still produce a 500.
	r.Use(
		gin.Recovery(),
		logging.GinMiddleware(cfg.Logger, auth.GetUserID),
		metrics.GinMiddleware(),
	)

	corsConfig := cors.DefaultConfig()
	if len(cfg.ClientOrigins) == 0 {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = cfg.ClientOrigins
		corsConfig.AllowCredentials = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", logging.RequestIDHeader}
	corsConfig.ExposeHeaders = []string{logging.RequestIDHeader}
	corsConfig.MaxAge = 12 * time.Hour
	r.Use(cors.New(corsConfig))

	// authMiddleware validates the JWT and reloads the user on every request.
	authMiddleware := auth.AuthRequired(cfg.JWTManager, cfg.UserService)

	userHandler := userHttp.NewHandler(cfg.UserService, cfg.JWTManager)
	shopHandler := shopHttp.NewHandler(cfg.ShopService, cfg.ItemService)
	categoryHandler := categoryHttp.NewHandler(cfg.CategoryService)
	itemHandler := itemHttp.NewHandler(cfg.ItemService)
	rentHandler := rentHttp.NewHandler(cfg.RentService)
	reviewHandler := reviewHttp.NewHandler(cfg.ReviewService)

	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/health", healthHandler(cfg.DB))

		userHttp.RegisterRoutes(apiGroup, userHandler, authMiddleware)
		shopHttp.RegisterRoutes(apiGroup, shopHandler, authMiddleware)
		categoryHttp.RegisterRoutes(apiGroup, categoryHandler, authMiddleware)
		itemHttp.RegisterRoutes(apiGroup, itemHandler, authMiddleware)
		rentHttp.RegisterRoutes(apiGroup, rentHandler, authMiddleware, ratelimit.Middleware(cfg.Limiter, "rents"))
		reviewHttp.RegisterRoutes(apiGroup, reviewHandler, authMiddleware, ratelimit.Middleware(cfg.Limiter, "reviews"))
	}

	return r
}
