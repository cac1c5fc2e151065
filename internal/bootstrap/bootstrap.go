package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/hogwarts/school/internal/app/controllers"
	appMigrations "github.com/hogwarts/school/internal/app/migrations"
	appRepos "github.com/hogwarts/school/internal/app/repositories"
	appRoutes "github.com/hogwarts/school/internal/app/routes"
	appServices "github.com/hogwarts/school/internal/app/services"
	"github.com/hogwarts/school/internal/config"
	"github.com/hogwarts/school/internal/db"
	appMiddleware "github.com/hogwarts/school/internal/middleware"
	pkgAuth "github.com/hogwarts/school/internal/pkg/auth"
	"github.com/hogwarts/school/internal/pkg/cache"
	"github.com/hogwarts/school/internal/pkg/filestorage"
	"github.com/hogwarts/school/internal/pkg/logger"
	"github.com/hogwarts/school/internal/seed"
)

// DefaultConfigPath is where the yaml configuration is looked up.
var DefaultConfigPath = filepath.Join("configs", "config.yaml")

const cacheKeyPrefix = "hogwarts"

// Dependencies holds all the application dependencies
type Dependencies struct {
	FacultyService appServices.FacultyService
	StudentService appServices.StudentService
	AvatarService  appServices.AvatarService
	Controllers    appRoutes.Controllers
	AuthMiddleware *appMiddleware.AuthMiddleware
	Repos          *appRepos.Repositories
	JWTService     *pkgAuth.JWTService
	FileStorage    *filestorage.LocalStorage
	AvatarCache    cache.AvatarCache
	Logger         zerolog.Logger
}

// Close releases the resources owned by the dependencies.
func (d *Dependencies) Close() error {
	if d.AvatarCache == nil {
		return nil
	}
	return d.AvatarCache.Close()
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	cfg, err := config.LoadConfig(DefaultConfigPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection, runs migrations and seeds the houses.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool

	migrationsDir := cfg.Database.MigrationsDir
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		dbPool.Close()
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	lgr.Info().Str("path", migrationsDir).Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(dbPool, lgr)
	if err := migrator.MigrateFromDirectory(ctx, migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		dbPool.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	if err := seed.CreateDefaultData(ctx, dbPool, lgr); err != nil {
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return dbPool, nil
}

// newAvatarCache connects to redis when caching is enabled, otherwise returns a no-op cache.
func newAvatarCache(cfg *config.Config, lgr zerolog.Logger) (cache.AvatarCache, time.Duration, error) {
	if !cfg.Cache.Enabled {
		lgr.Info().Msg("Avatar cache disabled")
		return cache.NoopAvatarCache{}, 0, nil
	}

	ttl, err := time.ParseDuration(cfg.Cache.TTL)
	if err != nil {
		return nil, 0, fmt.Errorf("invalid cache ttl: %w", err)
	}

	redisCache, err := cache.NewRedisAvatarCache(cache.RedisConfig{
		Address:  cfg.Cache.Address,
		Password: cfg.Cache.Password,
		DB:       cfg.Cache.DB,
	}, cacheKeyPrefix)
	if err != nil {
		return nil, 0, err
	}

	lgr.Info().Str("address", cfg.Cache.Address).Dur("ttl", ttl).Msg("Avatar cache connected")
	return redisCache, ttl, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, dbPool appRepos.DBTX, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	var err error
	deps.FileStorage, err = filestorage.NewLocalStorage(cfg.Avatar.Dir)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize file storage")
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	var cacheTTL time.Duration
	deps.AvatarCache, cacheTTL, err = newAvatarCache(cfg, lgr)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize avatar cache")
		return nil, fmt.Errorf("failed to initialize avatar cache: %w", err)
	}

	tokenExp, err := time.ParseDuration(cfg.Auth.TokenExpiration)
	if err != nil {
		deps.Close()
		return nil, fmt.Errorf("invalid token expiration: %w", err)
	}
	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.Auth.Secret,
		AccessTokenExp: tokenExp,
		TokenIssuer:    cfg.Auth.Issuer,
	})

	// The avatar service owns file and cache cleanup for the other services.
	deps.AvatarService = appServices.NewAvatarService(
		deps.Repos.AvatarRepository,
		deps.Repos.StudentRepository,
		deps.FileStorage,
		deps.AvatarCache,
		appServices.AvatarConfig{
			MaxUploadSize: cfg.Avatar.MaxUploadSize,
			CacheTTL:      cacheTTL,
		},
	)
	deps.FacultyService = appServices.NewFacultyService(deps.Repos.FacultyRepository, deps.Repos.StudentRepository, deps.AvatarService)
	deps.StudentService = appServices.NewStudentService(deps.Repos.StudentRepository, deps.Repos.FacultyRepository, deps.AvatarService, cfg.School.MinStudentAge)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.Controllers = appRoutes.Controllers{
		Faculty: appControllers.NewFacultyController(deps.FacultyService),
		Student: appControllers.NewStudentController(deps.StudentService),
		Avatar:  appControllers.NewAvatarController(deps.AvatarService, cfg.Avatar.MaxUploadSize),
		Info:    appControllers.NewInfoController(cfg.Server.Port),
	}

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(appMiddleware.Recovery(), logger.GinMiddleware(), appMiddleware.CORS())

	appRoutes.SetupSwagger(router)
	appRoutes.SetupRouter(router, deps.Controllers, deps.AuthMiddleware)

	return router
}
