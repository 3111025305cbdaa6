package container

import (
	"context"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"alupro-backend/internal/config"
	infraCache "alupro-backend/internal/infrastructure/cache"
	"alupro-backend/internal/infrastructure/database"
	"alupro-backend/internal/infrastructure/queue"
	"alupro-backend/internal/infrastructure/storage"
	"alupro-backend/pkg/jwt"
	"alupro-backend/pkg/logger"

	contactHandler "alupro-backend/internal/domains/contact/handler"
	contactRepo "alupro-backend/internal/domains/contact/repository"
	contactService "alupro-backend/internal/domains/contact/service"
	dashboardHandler "alupro-backend/internal/domains/dashboard/handler"
	dashboardService "alupro-backend/internal/domains/dashboard/service"
	mediaHandler "alupro-backend/internal/domains/media/handler"
	mediaService "alupro-backend/internal/domains/media/service"
	orderHandler "alupro-backend/internal/domains/order/handler"
	orderRepo "alupro-backend/internal/domains/order/repository"
	orderService "alupro-backend/internal/domains/order/service"
	pageHandler "alupro-backend/internal/domains/page/handler"
	pageRepo "alupro-backend/internal/domains/page/repository"
	pageService "alupro-backend/internal/domains/page/service"
	productHandler "alupro-backend/internal/domains/product/handler"
	productRepo "alupro-backend/internal/domains/product/repository"
	productService "alupro-backend/internal/domains/product/service"
	promoHandler "alupro-backend/internal/domains/promo/handler"
	promoRepo "alupro-backend/internal/domains/promo/repository"
	promoService "alupro-backend/internal/domains/promo/service"
	reviewHandler "alupro-backend/internal/domains/review/handler"
	reviewRepo "alupro-backend/internal/domains/review/repository"
	reviewService "alupro-backend/internal/domains/review/service"
	settingsHandler "alupro-backend/internal/domains/settings/handler"
	settingsRepo "alupro-backend/internal/domains/settings/repository"
	settingsService "alupro-backend/internal/domains/settings/service"
	userHandler "alupro-backend/internal/domains/user/handler"
	userRepo "alupro-backend/internal/domains/user/repository"
	userService "alupro-backend/internal/domains/user/service"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container is the root of the API dependency graph.
// Every field is a singleton for the process lifetime.
type Container struct {
	// ========================================
	// INFRASTRUCTURE LAYER
	// ========================================
	Config         *config.Config
	DB             *database.PostgresDB
	Redis          *infraCache.RedisClient
	Cache          *infraCache.RedisCache
	JWTManager     *jwt.Manager
	AsynqClient    *asynq.Client
	Enqueuer       *queue.AsynqEnqueuer
	Storage        *storage.MinIOStorage
	ImageProcessor *storage.ImageProcessor

	// ========================================
	// REPOSITORY LAYER
	// ========================================
	ProductRepo  productRepo.ProductRepository
	ReviewRepo   reviewRepo.ReviewRepository
	OrderRepo    orderRepo.OrderRepository
	PromoRepo    promoRepo.PromoRepository
	ContactRepo  contactRepo.MessageRepository
	SettingsRepo settingsRepo.SettingsRepository
	PageRepo     pageRepo.PageRepository
	UserRepo     userRepo.UserRepository

	// ========================================
	// SERVICE LAYER
	// ========================================
	SettingsProvider *settingsService.Provider

	ProductService   productService.ProductService
	ReviewService    reviewService.ReviewService
	PromoService     promoService.ServiceInterface
	OrderService     orderService.OrderService
	ContactService   contactService.ContactService
	SettingsService  settingsService.SettingsService
	PageService      pageService.PageService
	UserService      userService.UserService
	MediaService     mediaService.MediaService
	DashboardService dashboardService.DashboardService

	// ========================================
	// HANDLER LAYER
	// ========================================
	ProductHandler     *productHandler.Handler
	ReviewHandler      *reviewHandler.Handler
	PromoPublicHandler *promoHandler.PublicHandler
	PromoAdminHandler  *promoHandler.AdminHandler
	OrderHandler       *orderHandler.Handler
	ContactHandler     *contactHandler.Handler
	SettingsHandler    *settingsHandler.Handler
	PageHandler        *pageHandler.Handler
	UserHandler        *userHandler.Handler
	MediaHandler       *mediaHandler.Handler
	DashboardHandler   *dashboardHandler.Handler
}

// ========================================
// CONSTRUCTOR: BUILD CONTAINER
// ========================================

// NewContainer builds the whole graph in dependency order:
// config, infrastructure, repositories, services, handlers.
func NewContainer() (*Container, error) {
	logger.Info("Initializing DI container", nil)

	c := &Container{}

	// ========================================
	// STEP 1: LOAD CONFIGURATION
	// ========================================
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	logger.Info("Config loaded", map[string]interface{}{"environment": cfg.App.Environment})

	// ========================================
	// STEP 2: INITIALIZE DATABASE
	// ========================================
	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load database config: %w", err)
	}

	if cfg.App.AutoMigrate {
		if err := database.RunMigrations(dbConfig.DSN(), cfg.App.MigrationsURL); err != nil {
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	db := database.NewPostgresDB(dbConfig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.HealthCheck(ctx); err != nil {
		return nil, fmt.Errorf("database health check failed: %w", err)
	}
	c.DB = db

	// ========================================
	// STEP 3: INITIALIZE REDIS, QUEUE, STORAGE
	// ========================================
	c.Redis = infraCache.NewRedisClient(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	if err := c.Redis.Connect(ctx); err != nil {
		// Settings and pages degrade to Postgres and defaults without Redis
		logger.Warn("Redis connection failed, continuing without cache", map[string]interface{}{"error": err.Error()})
	}
	c.Cache = infraCache.NewRedisCache(c.Redis.Client)

	c.JWTManager = jwt.NewManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry, cfg.JWT.RefreshTokenExpiry)

	c.AsynqClient = asynq.NewClient(asynq.RedisClientOpt{
		Addr:     cfg.Redis.Host,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	c.Enqueuer = queue.NewAsynqEnqueuer(c.AsynqClient)

	minioStorage, err := storage.NewMinIOStorage(ctx, cfg.MinIO)
	if err != nil {
		return nil, fmt.Errorf("failed to init object storage: %w", err)
	}
	c.Storage = minioStorage
	c.ImageProcessor = storage.NewImageProcessor()

	// ========================================
	// STEP 4-6: REPOSITORIES, SERVICES, HANDLERS
	// ========================================
	c.initRepositories()
	c.initServices()
	c.initHandlers()

	logger.Info("DI container initialized", nil)
	return c, nil
}

// ========================================
// PRIVATE INITIALIZATION METHODS
// ========================================

func (c *Container) initRepositories() {
	pool := c.DB.Pool

	c.ProductRepo = productRepo.NewPostgresRepository(pool)
	c.ReviewRepo = reviewRepo.NewPostgresReviewRepository(pool)
	c.OrderRepo = orderRepo.NewPostgresOrderRepository(pool)
	c.PromoRepo = promoRepo.NewPostgresRepository(pool)
	c.ContactRepo = contactRepo.NewPostgresRepository(pool)
	c.SettingsRepo = settingsRepo.NewPostgresRepository(pool)
	c.PageRepo = pageRepo.NewPostgresRepository(pool)
	c.UserRepo = userRepo.NewPostgresRepository(pool)
}

func (c *Container) initServices() {
	cfg := c.Config

	// Settings first: media writes through it
	c.SettingsProvider = settingsService.NewProvider(c.SettingsRepo, c.Cache, c.Cache)
	c.SettingsService = settingsService.NewSettingsService(c.SettingsRepo, c.Cache, c.SettingsProvider)

	c.ProductService = productService.NewProductService(c.ProductRepo, c.Cache, c.Storage, c.ImageProcessor)
	c.ReviewService = reviewService.NewReviewService(c.ReviewRepo, c.ProductRepo, c.Cache)
	c.PromoService = promoService.NewPromoService(c.PromoRepo, c.Cache, cfg.Promo)

	// Cross-domain: checkout re-prices items from the product catalog
	c.OrderService = orderService.NewOrderService(
		c.OrderRepo,
		c.ProductRepo,
		c.PromoService,
		c.Enqueuer,
		cfg.Checkout,
		cfg.Order,
	)

	c.ContactService = contactService.NewContactService(c.ContactRepo, c.Cache, c.Enqueuer, cfg.Contact)
	c.PageService = pageService.NewPageService(c.PageRepo, c.Cache)
	c.UserService = userService.NewUserService(c.UserRepo, c.JWTManager, c.Cache)
	c.MediaService = mediaService.NewMediaService(c.Storage, c.ImageProcessor, storage.ValidateVideo, c.SettingsService)

	c.DashboardService = dashboardService.NewDashboardService(
		c.OrderService,
		c.ContactService.CountUnread,
		c.ReviewService.CountPending,
		c.ProductRepo.CountActive,
		c.Cache,
	)
}

func (c *Container) initHandlers() {
	c.ProductHandler = productHandler.NewHandler(c.ProductService)
	c.ReviewHandler = reviewHandler.NewHandler(c.ReviewService)
	c.PromoPublicHandler = promoHandler.NewPublicHandler(c.PromoService)
	c.PromoAdminHandler = promoHandler.NewAdminHandler(c.PromoService)
	c.OrderHandler = orderHandler.NewHandler(c.OrderService)
	c.ContactHandler = contactHandler.NewHandler(c.ContactService)
	c.SettingsHandler = settingsHandler.NewHandler(c.SettingsService)
	c.PageHandler = pageHandler.NewHandler(c.PageService)
	c.UserHandler = userHandler.NewHandler(c.UserService)
	c.MediaHandler = mediaHandler.NewHandler(c.MediaService)
	c.DashboardHandler = dashboardHandler.NewHandler(c.DashboardService)
}

// ========================================
// LIFECYCLE
// ========================================

// Cleanup releases every connection, called from graceful shutdown
func (c *Container) Cleanup() {
	logger.Info("Cleaning up container resources", nil)

	if c.SettingsProvider != nil {
		c.SettingsProvider.Stop()
	}
	if c.Enqueuer != nil {
		if err := c.Enqueuer.Close(); err != nil {
			logger.Error("Failed to close task client", err)
		}
	}
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			logger.Error("Failed to close Redis", err)
		}
	}
	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			logger.Error("Failed to close database", err)
		}
	}
}
