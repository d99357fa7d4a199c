// Package server assembles the HTTP application.
package server

import (
	"time"

	"storefront/internal/config"
	"storefront/internal/handlers"
	"storefront/internal/metrics"
	"storefront/internal/middleware"
	"storefront/internal/notify"
	"storefront/internal/passwords"
	"storefront/internal/policy"
	"storefront/internal/repositories"
	"storefront/internal/services"
	"storefront/internal/throttle"
	"storefront/internal/tokens"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Deps are the collaborators the application is built from. Notifier and
// Cooldown fall back to logging and no throttling when nil.
type Deps struct {
	Config   *config.Config
	DB       *gorm.DB
	Logger   *logrus.Logger
	Metrics  *metrics.Metrics
	Notifier notify.Notifier
	Cooldown throttle.Cooldown
	Policy   *policy.Policy
}

// NewApp wires repositories, services and handlers into a fiber app.
func NewApp(deps Deps) *fiber.App {
	cfg := deps.Config
	if deps.Metrics == nil {
		deps.Metrics = metrics.New("storefront")
	}
	if deps.Notifier == nil {
		deps.Notifier = notify.NewLogNotifier(deps.Logger)
	}
	if deps.Policy == nil {
		deps.Policy = policy.Default()
	}

	// --- Repositories ---
	userRepo := repositories.NewGORMUserRepository(deps.DB)
	groupRepo := repositories.NewGORMGroupRepository(deps.DB)
	categoryRepo := repositories.NewGORMCategoryRepository(deps.DB)
	productRepo := repositories.NewGORMProductRepository(deps.DB)
	commentRepo := repositories.NewGORMCommentRepository(deps.DB)
	cartRepo := repositories.NewGORMCartRepository(deps.DB)
	addressRepo := repositories.NewGORMAddressRepository(deps.DB)

	// --- Services ---
	passwordPolicy := passwords.DefaultPolicy()
	authService := services.NewAuthService(userRepo, cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL, deps.Logger)
	userService := services.NewUserService(userRepo, passwordPolicy, deps.Logger)
	resetService := services.NewPasswordResetService(services.PasswordResetDeps{
		Users:       userRepo,
		Tokens:      tokens.NewResetTokenGenerator(cfg.JWTSecret, cfg.PasswordResetTimeout),
		Policy:      passwordPolicy,
		Cooldown:    deps.Cooldown,
		Notifier:    deps.Notifier,
		Metrics:     deps.Metrics,
		FrontendURL: cfg.FrontendURL,
		SiteName:    cfg.AppName,
		Logger:      deps.Logger,
	})
	groupService := services.NewGroupService(groupRepo, deps.Logger)
	categoryService := services.NewCategoryService(categoryRepo, deps.Logger)
	productService := services.NewProductService(productRepo, categoryRepo, deps.Logger)
	commentService := services.NewCommentService(commentRepo, productRepo, deps.Logger)
	cartService := services.NewCartService(cartRepo, productRepo, deps.Logger)
	addressService := services.NewAddressService(addressRepo)

	// --- Handlers ---
	validate := handlers.NewValidator()
	authz := middleware.NewAuthorizer(deps.Policy, deps.Metrics)
	limit := middleware.RateLimit(throttle.NewKeyedLimiter(cfg.RateLimitPerMinute, cfg.RateLimitBurst))

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ErrorHandler: handlers.ErrorHandler(deps.Logger),
	})

	// --- Middleware ---
	app.Use(recover.New())
	app.Use(fiberlogger.New(fiberlogger.Config{Output: deps.Logger.Out}))
	app.Use(middleware.Metrics(deps.Metrics))

	app.Get("/health", func(c *fiber.Ctx) error {
		status := "healthy"
		code := fiber.StatusOK
		if sqlDB, err := deps.DB.DB(); err != nil || sqlDB.PingContext(c.UserContext()) != nil {
			status, code = "unhealthy", fiber.StatusServiceUnavailable
		}
		return c.Status(code).JSON(fiber.Map{
			"status": status,
			"time":   time.Now().Format(time.RFC3339),
		})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(deps.Metrics.Registry, promhttp.HandlerOpts{})))

	// --- API Routes ---
	apiV1 := app.Group("/api/v1", middleware.Authenticate(authService, userRepo, deps.Logger))
	handlers.NewAuthHandler(authService, validate, limit).RegisterRoutes(apiV1)
	handlers.NewUserHandler(userService, resetService, authz, validate, limit).RegisterRoutes(apiV1)
	handlers.NewGroupHandler(groupService, authz, validate).RegisterRoutes(apiV1)
	handlers.NewCategoryHandler(categoryService, authz, validate).RegisterRoutes(apiV1)
	handlers.NewProductHandler(productService, authz, validate).RegisterRoutes(apiV1)
	handlers.NewCommentHandler(commentService, authz, validate).RegisterRoutes(apiV1)
	handlers.NewCartHandler(cartService, authz, validate).RegisterRoutes(apiV1)
	handlers.NewAddressHandler(addressService, authz, validate).RegisterRoutes(apiV1)

	return app
}
