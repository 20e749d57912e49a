package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/ShriShintre/Exam-Buddy/internal/app/controllers"
	appMigrations "github.com/ShriShintre/Exam-Buddy/internal/app/migrations"
	appRepos "github.com/ShriShintre/Exam-Buddy/internal/app/repositories"
	appRoutes "github.com/ShriShintre/Exam-Buddy/internal/app/routes"
	appServices "github.com/ShriShintre/Exam-Buddy/internal/app/services"
	"github.com/ShriShintre/Exam-Buddy/internal/config"
	"github.com/ShriShintre/Exam-Buddy/internal/db"
	appMiddleware "github.com/ShriShintre/Exam-Buddy/internal/middleware"
	"github.com/ShriShintre/Exam-Buddy/internal/pkg/filestorage"
	"github.com/ShriShintre/Exam-Buddy/internal/pkg/flash"
	"github.com/ShriShintre/Exam-Buddy/internal/pkg/logger"
	"github.com/ShriShintre/Exam-Buddy/internal/web"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	ExamService         appServices.ExamService
	TaskService         appServices.TaskService
	NoteService         appServices.NoteService
	FlashcardService    appServices.FlashcardService
	ExamController      *appControllers.ExamController
	TaskController      *appControllers.TaskController
	NoteController      *appControllers.NoteController
	FlashcardController *appControllers.FlashcardController
	Repos               *appRepos.Repositories
	FileStorage         *filestorage.LocalStorage
	Flash               *flash.Manager
	Logger              zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
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

// SetupDatabase opens the store and applies the schema migration.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*db.Store, error) {
	lgr.Info().Str("driver", cfg.Database.Driver).Msg("Opening database...")
	store, err := db.Open(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to open database")
		return nil, err
	}

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(store)
	if err := migrator.Apply(context.Background()); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		store.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	lgr.Info().Msg("Database ready.")
	return store, nil
}

// BuildDependencies initializes repositories, services and controllers.
func BuildDependencies(cfg *config.Config, store *db.Store, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(store)

	var err error
	deps.FileStorage, err = filestorage.NewLocalStorage(cfg.Storage.UploadDir)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize file storage")
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	deps.Flash = flash.NewManager(cfg.Secret.Key)

	deps.ExamService = appServices.NewExamService(
		deps.Repos.ExamRepository,
		deps.Repos.TaskRepository,
		deps.Repos.NoteRepository,
		deps.Repos.FlashcardRepository,
		deps.FileStorage,
		lgr,
	)
	deps.TaskService = appServices.NewTaskService(deps.Repos.TaskRepository, deps.Repos.ExamRepository)
	deps.NoteService = appServices.NewNoteService(
		deps.Repos.NoteRepository,
		deps.Repos.ExamRepository,
		deps.FileStorage,
		cfg,
		lgr,
	)
	deps.FlashcardService = appServices.NewFlashcardService(deps.Repos.FlashcardRepository, deps.Repos.ExamRepository)

	deps.ExamController = appControllers.NewExamController(deps.ExamService, deps.Flash, lgr)
	deps.TaskController = appControllers.NewTaskController(deps.TaskService, deps.Flash, lgr)
	deps.NoteController = appControllers.NewNoteController(deps.NoteService, deps.Flash, lgr)
	deps.FlashcardController = appControllers.NewFlashcardController(deps.FlashcardService, deps.Flash, lgr)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware, templates and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(appMiddleware.RequestLogger(lgr))
	// A little slack over the upload cap so multipart framing doesn't
	// reject a file of exactly the configured size.
	router.Use(appMiddleware.MaxBodySize(cfg.Storage.MaxUploadSize + 1<<20))

	router.SetHTMLTemplate(web.Templates())

	appRoutes.SetupRouter(router,
		deps.ExamController,
		deps.TaskController,
		deps.NoteController,
		deps.FlashcardController,
	)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	router.NoRoute(func(c *gin.Context) {
		c.HTML(http.StatusNotFound, "404.html", gin.H{})
	})

	return router
}
