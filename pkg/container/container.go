package container

import (
	"context"
	"fmt"
	"log"
	"time"

	"articles-backend/internal/config"
	"articles-backend/internal/domains/consistency"
	"articles-backend/internal/domains/item"
	itemHandler "articles-backend/internal/domains/item/handler"
	itemRepo "articles-backend/internal/domains/item/repository"
	itemService "articles-backend/internal/domains/item/service"
	"articles-backend/internal/domains/owner"
	ownerHandler "articles-backend/internal/domains/owner/handler"
	ownerRepo "articles-backend/internal/domains/owner/repository"
	ownerService "articles-backend/internal/domains/owner/service"
	infraCache "articles-backend/internal/infrastructure/cache"
	"articles-backend/internal/infrastructure/database"
	"articles-backend/pkg/cache"
	"articles-backend/pkg/jwt"
)

// Container holds every dependency of the application and is the root
// of the dependency graph. All fields are singletons wired once at
// startup.
type Container struct {
	// Infrastructure
	Config     *config.Config
	DB         *database.PostgresDB
	Cache      cache.Cache
	JWTManager *jwt.Manager

	// Repositories
	OwnerRepo owner.Repository
	ItemRepo  item.Repository

	// Coordinator keeps the owner item counts and item rows consistent
	// across the two tables. Shared by both services.
	Coordinator *consistency.Coordinator

	// Services
	OwnerService owner.Service
	ItemService  item.Service

	// Handlers
	OwnerHandler *ownerHandler.OwnerHandler
	ItemHandler  *itemHandler.ItemHandler
}

/// NewContainer initializes the whole dependency graph in order:
// config, infrastructure, repositories, coordinator, services, handlers.
func NewContainer() (*Container, error) {
	log.Println("🔧 Initializing DI Container...")

	c := &Container{}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	log.Printf("✅ Config loaded (Environment: %s)", cfg.App.Environment)

	log.Println("🗄️  Connecting to PostgreSQL...")
	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load database config: %w", err)
	}

	db := database.NewPostgresDB(dbConfig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.HealthCheck(context.Background()); err != nil {
		return nil, fmt.Errorf("database health check failed: %w", err)
	}
	c.DB = db
	log.Println("✅ Database connected")

	log.Println("🔴 Connecting to Redis...")
	redisCache := infraCache.NewRedisCache(
		cfg.Redis.Host,
		cfg.Redis.Password,
		cfg.Redis.DB,
	)
	if err := redisCache.Ping(context.Background()); err != nil {
		// Cache misses are tolerated, a dead Redis only costs reads
		log.Printf("⚠️  Redis connection failed (non-critical): %v", err)
	} else {
		log.Println("✅ Redis connected")
	}
	c.Cache = redisCache

	c.JWTManager = jwt.NewManager(cfg.JWT.Secret, cfg.JWT.Expiry)

	log.Println("📦 Initializing repositories...")
	c.OwnerRepo = ownerRepo.NewPostgresRepository(db.Pool, c.Cache)
	c.ItemRepo = itemRepo.NewPostgresRepository(db.Pool, c.Cache)
	log.Println("✅ Repositories initialized")

	c.Coordinator = consistency.NewCoordinator(c.OwnerRepo, c.ItemRepo)

	log.Println("⚙️  Initializing services...")
	c.OwnerService = ownerService.NewOwnerService(c.OwnerRepo, c.Coordinator, c.JWTManager)
	c.ItemService = itemService.NewItemService(c.ItemRepo, c.Coordinator)
	log.Println("✅ Services initialized")

	log.Println("🎯 Initializing handlers...")
	c.OwnerHandler = ownerHandler.NewOwnerHandler(c.OwnerService)
	c.ItemHandler = itemHandler.NewItemHandler(c.ItemService)
	log.Println("✅ Handlers initialized")

	log.Println("🎉 DI Container initialized successfully")
	return c, nil
}

// Cleanup releases infrastructure resources. Call on shutdown.
func (c *Container) Cleanup() {
	if c.Cache != nil {
		if err := c.Cache.Close(); err != nil {
			log.Printf("⚠️  Failed to close Redis connection: %v", err)
		} else {
			log.Println("✅ Redis connection closed")
		}
	}

	if c.DB != nil {
		c.DB.Close()
		log.Println("✅ Database connection closed")
	}
}
