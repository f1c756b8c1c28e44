package di

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"taskhub/application/serviceimpl"
	"taskhub/domain/ports"
	"taskhub/domain/repositories"
	"taskhub/domain/services"
	"taskhub/infrastructure/messaging"
	natspkg "taskhub/infrastructure/nats"
	"taskhub/infrastructure/postgres"
	redispkg "taskhub/infrastructure/redis"
	"taskhub/infrastructure/storage"
	"taskhub/interfaces/api/handlers"
	"taskhub/pkg/config"
	"taskhub/pkg/logger"
	"taskhub/pkg/scheduler"
)

type Container struct {
	Config *config.Config

	// Infrastructure
	DB             *gorm.DB
	RedisClient    *redispkg.Client // nil when Redis is unavailable
	NATSClient     *natspkg.Client  // nil when NATS is unavailable
	EventPublisher ports.EventPublisher
	Storage        ports.StoragePort
	EventScheduler scheduler.EventScheduler

	// Repositories
	UserRepository        repositories.UserRepository
	ProjectRepository     repositories.ProjectRepository
	TaskRepository        repositories.TaskRepository
	TaskHistoryRepository repositories.TaskHistoryRepository
	CommentRepository     repositories.CommentRepository
	AttachmentRepository  repositories.AttachmentRepository

	// Services
	UserService    services.UserService
	ProjectService services.ProjectService
	TaskService    services.TaskService
}

func NewContainer() *Container {
	return &Container{}
}

func (c *Container) Initialize() error {
	if err := c.initConfig(); err != nil {
		return err
	}

	if err := c.initLogger(); err != nil {
		return err
	}

	if err := c.initInfrastructure(); err != nil {
		return err
	}

	if err := c.initRepositories(); err != nil {
		return err
	}

	if err := c.initServices(); err != nil {
		return err
	}

	if err := c.initScheduler(); err != nil {
		return err
	}

	logger.Info("Container initialized")
	return nil
}

func (c *Container) initConfig() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	c.Config = cfg
	return nil
}

func (c *Container) initLogger() error {
	logConfig := logger.Config{
		Level:      c.Config.Log.Level,
		Format:     c.Config.Log.Format,
		Output:     c.Config.Log.Output,
		FilePath:   c.Config.Log.FilePath,
		MaxSize:    c.Config.Log.MaxSize,
		MaxBackups: c.Config.Log.MaxBackups,
		MaxAge:     c.Config.Log.MaxAge,
		Compress:   c.Config.Log.Compress,
	}

	if err := logger.Init(logConfig); err != nil {
		return err
	}

	logger.Info("Logger initialized",
		"level", c.Config.Log.Level,
		"format", c.Config.Log.Format,
		"output", c.Config.Log.Output,
	)
	return nil
}

func (c *Container) initInfrastructure() error {
	dbConfig := postgres.DatabaseConfig{
		Host:     c.Config.Database.Host,
		Port:     c.Config.Database.Port,
		User:     c.Config.Database.User,
		Password: c.Config.Database.Password,
		DBName:   c.Config.Database.DBName,
		SSLMode:  c.Config.Database.SSLMode,
	}

	db, err := postgres.NewDatabase(dbConfig)
	if err != nil {
		return err
	}
	c.DB = db
	logger.Info("Database connected", "host", c.Config.Database.Host, "db", c.Config.Database.DBName)

	if err := postgres.Migrate(db); err != nil {
		return err
	}
	logger.Info("Database migrated")

	// Redis is optional; the task cache degrades to direct reads.
	if c.Config.Redis.URL != "" {
		redisClient, err := redispkg.NewClient(&c.Config.Redis)
		if err != nil {
			logger.Warn("Redis client initialization failed (cache disabled)", "error", err)
		} else {
			c.RedisClient = redisClient
		}
	}

	// NATS is optional; mutations proceed without event publishing.
	if c.Config.NATS.URL != "" {
		natsClient, err := natspkg.NewClient(natspkg.ClientConfig{URL: c.Config.NATS.URL})
		if err != nil {
			logger.Warn("NATS client initialization failed (events disabled)", "error", err)
		} else {
			c.NATSClient = natsClient
			c.EventPublisher = messaging.NewNATSEventPublisher(natsClient)
		}
	}

	return c.initStorage()
}

func (c *Container) initStorage() error {
	switch c.Config.Storage.Type {
	case "s3":
		s3Config := storage.S3StorageConfig{
			Endpoint:  c.Config.Storage.S3.Endpoint,
			AccessKey: c.Config.Storage.S3.AccessKey,
			SecretKey: c.Config.Storage.S3.SecretKey,
			Bucket:    c.Config.Storage.S3.Bucket,
			UseSSL:    c.Config.Storage.S3.UseSSL,
			Region:    c.Config.Storage.S3.Region,
			PublicURL: c.Config.Storage.S3.PublicURL,
		}
		s3Storage, err := storage.NewS3Storage(s3Config)
		if err != nil {
			return fmt.Errorf("failed to initialize S3 storage: %w", err)
		}
		c.Storage = s3Storage
		logger.Info("S3 storage initialized",
			"endpoint", c.Config.Storage.S3.Endpoint,
			"bucket", c.Config.Storage.S3.Bucket,
		)

	default:
		localConfig := storage.LocalStorageConfig{
			BasePath: c.Config.Storage.BasePath,
			BaseURL:  c.Config.Storage.BaseURL,
		}
		localStorage, err := storage.NewLocalStorage(localConfig)
		if err != nil {
			return fmt.Errorf("failed to initialize local storage: %w", err)
		}
		c.Storage = localStorage
		logger.Info("Local storage initialized", "path", c.Config.Storage.BasePath)
	}

	return nil
}

func (c *Container) initRepositories() error {
	c.UserRepository = postgres.NewUserRepository(c.DB)
	c.ProjectRepository = postgres.NewProjectRepository(c.DB)
	c.TaskRepository = postgres.NewTaskRepository(c.DB)
	c.TaskHistoryRepository = postgres.NewTaskHistoryRepository(c.DB)
	c.CommentRepository = postgres.NewCommentRepository(c.DB)
	c.AttachmentRepository = postgres.NewAttachmentRepository(c.DB)
	logger.Info("Repositories initialized")
	return nil
}

func (c *Container) initServices() error {
	c.UserService = serviceimpl.NewUserService(c.UserRepository, c.Config.JWT.Secret)

	c.ProjectService = serviceimpl.NewProjectService(c.ProjectRepository, c.TaskRepository, c.UserRepository)

	c.TaskService = serviceimpl.NewTaskService(
		c.TaskRepository,
		c.TaskHistoryRepository,
		c.ProjectRepository,
		c.CommentRepository,
		c.AttachmentRepository,
		c.UserRepository,
		c.Storage,
		c.EventPublisher,
		c.RedisClient,
	)

	logger.Info("Services initialized")
	return nil
}

func (c *Container) initScheduler() error {
	if !c.Config.Scheduler.Enabled {
		logger.Info("Scheduler disabled")
		return nil
	}

	c.EventScheduler = scheduler.NewEventScheduler()
	c.EventScheduler.Start()

	interval := time.Duration(c.Config.Scheduler.SweepInterval) * time.Minute
	err := c.EventScheduler.AddIntervalJob("overdue-sweep", interval, func() {
		ctx := context.Background()
		if _, err := c.TaskService.SweepOverdue(ctx); err != nil {
			logger.Warn("Overdue sweep failed", "error", err)
		}
	})
	if err != nil {
		logger.Warn("Failed to schedule overdue sweep", "error", err)
		return nil
	}

	logger.Info("Scheduler started", "sweep_interval_minutes", c.Config.Scheduler.SweepInterval)
	return nil
}

func (c *Container) Cleanup() error {
	logger.Info("Starting cleanup...")

	if c.EventScheduler != nil && c.EventScheduler.IsRunning() {
		c.EventScheduler.Stop()
		logger.Info("Scheduler stopped")
	}

	if c.NATSClient != nil {
		c.NATSClient.Close()
		logger.Info("NATS connection closed")
	}

	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			logger.Warn("Failed to close Redis connection", "error", err)
		} else {
			logger.Info("Redis connection closed")
		}
	}

	if c.DB != nil {
		sqlDB, err := c.DB.DB()
		if err == nil {
			if err := sqlDB.Close(); err != nil {
				logger.Warn("Failed to close database connection", "error", err)
			} else {
				logger.Info("Database connection closed")
			}
		}
	}

	logger.Info("Cleanup completed")
	return nil
}

func (c *Container) GetConfig() *config.Config {
	return c.Config
}

func (c *Container) GetHandlerServices() *handlers.Services {
	return &handlers.Services{
		UserService:    c.UserService,
		ProjectService: c.ProjectService,
		TaskService:    c.TaskService,
		JWTSecret:      c.Config.JWT.Secret,
	}
}
