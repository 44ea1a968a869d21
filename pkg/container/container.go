package container

import (
	"context"
	"fmt"
	"log"
	"time"

	"institute-backend/internal/config"
	adminHandler "institute-backend/internal/domains/admin/handler"
	contactHandler "institute-backend/internal/domains/contact/handler"
	contactService "institute-backend/internal/domains/contact/service"
	postHandler "institute-backend/internal/domains/post/handler"
	postRepo "institute-backend/internal/domains/post/repository"
	postService "institute-backend/internal/domains/post/service"
	infraCache "institute-backend/internal/infrastructure/cache"
	"institute-backend/internal/infrastructure/database"
	"institute-backend/internal/infrastructure/email"
	"institute-backend/internal/infrastructure/storage"
	"institute-backend/pkg/cache"
	"institute-backend/pkg/jwt"
)

// Container holds every dependency of the application; it is the root
// of the dependency graph. All entries are singletons.
type Container struct {
	// Infrastructure layer
	Config     *config.Config
	DB         *database.PostgresDB
	Cache      cache.Cache
	Storage    *storage.MinIOStorage
	Mailer     email.EmailService
	JWTManager *jwt.Manager

	// Repository layer
	PostRepo postRepo.Repository

	// Service layer
	PostService    postService.Service
	ContactService contactService.Service

	// Handler layer
	PostHandler    *postHandler.PostHandler
	WebHandler     *postHandler.WebHandler
	ContactHandler *contactHandler.ContactHandler
	AuthHandler    *adminHandler.AuthHandler
}

// NewContainer builds the dependency graph in order:
// config -> infrastructure -> repositories -> services -> handlers.
func NewContainer() (*Container, error) {
	log.Println("Initializing container...")

	c := &Container{}

	// STEP 1: configuration
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	log.Printf("Config loaded (environment: %s)", cfg.App.Environment)

	// STEP 2: database
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
	log.Println("Database connected")

	// STEP 3: cache (non-critical: a dead Redis degrades to uncached reads)
	redisCache := infraCache.NewRedisCache(
		cfg.Redis.Host,
		cfg.Redis.Password,
		cfg.Redis.DB,
	)
	if rc, ok := redisCache.(*infraCache.RedisCache); ok {
		if err := rc.Connect(context.Background()); err != nil {
			log.Printf("WARNING: Redis connection failed (non-critical): %v", err)
		} else {
			log.Println("Redis connected")
		}
	}
	c.Cache = redisCache

	// STEP 4: object storage for cover images
	minioStorage, err := storage.NewMinIOStorage(cfg.MinIO)
	if err != nil {
		return nil, fmt.Errorf("failed to init object storage: %w", err)
	}
	c.Storage = minioStorage
	log.Println("Object storage ready")

	// STEP 5: mailer + session tokens
	c.Mailer = email.NewSMTPEmailService(cfg.SMTP)
	c.JWTManager = jwt.NewManager(
		cfg.JWT.Secret,
		time.Duration(cfg.JWT.SessionExpiryHrs)*time.Hour,
	)

	// STEP 6: repositories
	c.PostRepo = postRepo.NewPostgresRepository(c.DB.Pool, c.Cache)

	// STEP 7: services
	c.PostService = postService.NewPostService(c.PostRepo, c.Storage)
	c.ContactService = contactService.NewContactService(c.Mailer, cfg.SMTPConfigured)

	// STEP 8: handlers
	c.PostHandler = postHandler.NewPostHandler(c.PostService)
	c.WebHandler = postHandler.NewWebHandler(c.PostService)
	c.ContactHandler = contactHandler.NewContactHandler(c.ContactService)
	c.AuthHandler = adminHandler.NewAuthHandler(cfg, c.JWTManager)

	log.Println("Container initialized")
	return c, nil
}

// Cleanup releases resources on shutdown; called from the server's
// graceful-shutdown path.
func (c *Container) Cleanup() {
	log.Println("Cleaning up container resources...")

	if c.DB != nil && c.DB.Pool != nil {
		c.DB.Pool.Close()
		log.Println("Database connections closed")
	}

	if c.Cache != nil {
		if rc, ok := c.Cache.(*infraCache.RedisCache); ok {
			if err := rc.Close(); err != nil {
				log.Printf("WARNING: failed to close Redis: %v", err)
			} else {
				log.Println("Redis connections closed")
			}
		}
	}
}
