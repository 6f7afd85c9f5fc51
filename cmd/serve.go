package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/random"
	"github.com/spf13/cobra"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "boutique/docs"
	"boutique/internal/caching"
	"boutique/internal/config"
	"boutique/internal/events"
	"boutique/internal/handlers"
	"boutique/internal/jobs/background"
	"boutique/internal/middleware"
	"boutique/internal/migrations"
	"boutique/internal/repositories"
	"boutique/internal/services"
	"boutique/pkg/database"
	"boutique/pkg/imageopt"
)

const (
	bucketSetupAttempts = 3
	bucketSetupDelay    = time.Second
	shutdownTimeout     = 15 * time.Second
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the catalog HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx)
		},
	}
}

type handlerSet struct {
	auth     *handlers.AuthHandlers
	brands   *handlers.BrandHandlers
	category *handlers.CategoryHandlers
	products *handlers.ProductHandlers
	slides   *handlers.SlideHandlers
	shopper  *handlers.PersonalShopperHandlers
	settings *handlers.SettingsHandlers
	home     *handlers.HomeHandlers
	uploads  *handlers.UploadHandlers
	health   *handlers.HealthHandlers
}

func serve(ctx context.Context) error {
	config.LoadDotEnv()
	cfg := config.New()
	if err := cfg.Validate(); err != nil {
		return err
	}

	// Schema and connection problems stop the server
	pool, err := database.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.ClosePool(pool)

	if err := migrations.EnsureCurrent(ctx, pool); err != nil {
		return fmt.Errorf("%w (run `boutique migrate up`)", err)
	}

	jwtSecret := cfg.JWTSecret
	if jwtSecret == "" {
		jwtSecret = random.String(32)
		log.Printf("WARN: JWT_SECRET not set, using a generated secret; sessions will not survive a restart")
	}

	cacheSvc := caching.NewRedisCacheService(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)

	store, err := services.NewMinioStore(services.MinioConfig{
		Endpoint:      cfg.MinioEndpoint,
		AccessKey:     cfg.MinioAccessKey,
		SecretKey:     cfg.MinioSecretKey,
		UseSSL:        cfg.MinioUseSSL,
		Bucket:        cfg.StorageBucket,
		PublicBaseURL: cfg.StoragePublic,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize object store: %w", err)
	}
	// Bucket setup is best effort; uploads report their own errors if it is still missing
	if err := services.EnsureBucketWithRetry(ctx, store, bucketSetupAttempts, bucketSetupDelay); err != nil {
		log.Printf("WARN: bucket %s is not ready: %v", store.Bucket(), err)
	}

	var publisher events.Publisher
	if len(cfg.KafkaBrokers) > 0 {
		publisher = events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
		log.Printf("INFO: publishing catalog events to %s", cfg.KafkaTopic)
	} else {
		publisher = events.NewLogPublisher()
	}
	defer publisher.Close()

	// Repositories
	brandRepo := repositories.NewBrandRepo(pool)
	categoryRepo := repositories.NewCategoryRepo(pool)
	productRepo := repositories.NewProductRepo(pool)
	slideRepo := repositories.NewHeroSlideRepo(pool)
	shopperRepo := repositories.NewPersonalShopperRepo(pool)
	settingsRepo := repositories.NewSiteSettingsRepo(pool)
	adminRepo := repositories.NewAdminUserRepo(pool)
	assetRepo := repositories.NewAssetRepo(pool)

	// Services
	imageSvc := services.NewImageService(store, imageopt.NewWebPOptimizer(imageopt.DefaultQuality))
	brandSvc := services.NewBrandService(brandRepo, productRepo, imageSvc, cacheSvc, publisher)
	categorySvc := services.NewCategoryService(categoryRepo, productRepo, imageSvc, cacheSvc, publisher)
	productSvc := services.NewProductService(productRepo, brandRepo, categoryRepo, imageSvc, cacheSvc, publisher)
	slideSvc := services.NewHeroSlideService(slideRepo, imageSvc, cacheSvc, publisher)
	shopperSvc := services.NewPersonalShopperService(shopperRepo, imageSvc, cacheSvc, publisher)
	settingsSvc := services.NewSettingsService(settingsRepo, cacheSvc, publisher)
	homeSvc := services.NewHomeService(settingsSvc, slideSvc, categorySvc, brandSvc, productSvc, shopperSvc, cacheSvc, cfg.HomeCacheTTL)
	authSvc := services.NewAuthService(adminRepo, cacheSvc, jwtSecret, cfg.JWTTTL, cfg.LoginRateLimit)

	sessionMiddleware, err := middleware.NewSessionMiddleware(authSvc, middleware.SessionConfig{
		JWKSURL:  cfg.AuthJWKSURL,
		Issuer:   cfg.AuthIssuer,
		Audience: cfg.AuthAudience,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize session middleware: %w", err)
	}
	defer sessionMiddleware.Close()

	h := handlerSet{
		auth:     handlers.NewAuthHandlers(authSvc),
		brands:   handlers.NewBrandHandlers(brandSvc),
		category: handlers.NewCategoryHandlers(categorySvc),
		products: handlers.NewProductHandlers(productSvc),
		slides:   handlers.NewSlideHandlers(slideSvc),
		shopper:  handlers.NewPersonalShopperHandlers(shopperSvc),
		settings: handlers.NewSettingsHandlers(settingsSvc),
		home:     handlers.NewHomeHandlers(homeSvc),
		uploads:  handlers.NewUploadHandlers(imageSvc),
		health:   handlers.NewHealthHandlers(pool, cacheSvc, store, version),
	}

	e := newServer(cfg, h, sessionMiddleware)

	scheduler, err := background.NewJobScheduler(homeSvc, assetRepo, store, cfg.HomeCacheTTL/2)
	if err != nil {
		return fmt.Errorf("failed to create job scheduler: %w", err)
	}
	scheduler.Start()
	defer func() {
		if err := scheduler.Stop(); err != nil {
			log.Printf("WARN: scheduler shutdown: %v", err)
		}
	}()

	errCh := make(chan error, 1)
	go func() {
		log.Printf("🚀 Boutique server v%s starting on port %d", version, cfg.Port)
		if err := e.Start(fmt.Sprintf(":%d", cfg.Port)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Printf("INFO: shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

func newServer(cfg *config.Config, h handlerSet, sessions *middleware.SessionMiddleware) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	// Global middleware
	e.Use(echoMiddleware.RequestIDWithConfig(echoMiddleware.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORSWithConfig(echoMiddleware.CORSConfig{AllowOrigins: cfg.CORSOrigins}))
	e.Use(echoMiddleware.RemoveTrailingSlash())
	e.Use(echoMiddleware.BodyLimit("6M"))

	versionMiddleware := middleware.NewVersionMiddleware()
	e.Use(versionMiddleware.APIVersionResolver())

	// Ops endpoints (no auth required)
	e.GET("/health", h.health.HealthCheck)
	e.GET("/health/ready", h.health.ReadinessCheck)
	e.GET("/health/live", h.health.LivenessCheck)
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	v1 := e.Group("/v1")
	v1.Use(versionMiddleware.VersionHeader("v1"))

	// Public catalog
	v1.GET("/home", h.home.GetHome)
	v1.GET("/brands", h.brands.ListBrands)
	v1.GET("/brands/:id", h.brands.GetBrand)
	v1.GET("/categories", h.category.ListCategories)
	v1.GET("/categories/:id", h.category.GetCategory)
	v1.GET("/products", h.products.ListProducts)
	v1.GET("/products/:id", h.products.GetProduct)
	v1.GET("/slides", h.slides.ListSlides)
	v1.GET("/slides/:id", h.slides.GetSlide)
	v1.GET("/personal-shopper", h.shopper.GetPersonalShopper)
	v1.GET("/settings", h.settings.GetSettings)
	v1.POST("/auth/login", h.auth.Login)

	// Admin routes require a resolved session
	admin := v1.Group("/admin")
	admin.Use(sessions.RequireSession())
	admin.Use(middleware.NewAuditMiddleware().AuditRequest())

	admin.GET("/session", h.auth.Session)
	admin.POST("/auth/logout", h.auth.Logout)

	admin.POST("/brands", h.brands.CreateBrand)
	admin.PUT("/brands/:id", h.brands.UpdateBrand)
	admin.DELETE("/brands/:id", h.brands.DeleteBrand)
	admin.PUT("/brands/:id/logo", h.brands.ReplaceLogo)

	admin.POST("/categories", h.category.CreateCategory)
	admin.PUT("/categories/:id", h.category.UpdateCategory)
	admin.DELETE("/categories/:id", h.category.DeleteCategory)
	admin.PUT("/categories/:id/image", h.category.ReplaceImage)

	admin.POST("/products", h.products.CreateProduct)
	admin.PUT("/products/:id", h.products.UpdateProduct)
	admin.DELETE("/products/:id", h.products.DeleteProduct)
	admin.POST("/products/:id/images", h.products.AddImage)
	admin.DELETE("/products/:id/images", h.products.RemoveImage)

	admin.POST("/slides", h.slides.CreateSlide)
	admin.PUT("/slides/:id", h.slides.UpdateSlide)
	admin.DELETE("/slides/:id", h.slides.DeleteSlide)
	admin.PUT("/slides/:id/image", h.slides.ReplaceImage)

	admin.PUT("/personal-shopper", h.shopper.SavePersonalShopper)
	admin.PUT("/personal-shopper/image", h.shopper.ReplaceImage)

	admin.PUT("/settings", h.settings.UpdateSettings)

	admin.POST("/uploads", h.uploads.UploadImage)
	admin.DELETE("/uploads", h.uploads.DeleteImage)

	return e
}
