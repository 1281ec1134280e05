package di

import (
	"fmt"
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"todo_backend/internal/app/config"
	"todo_backend/internal/app/router"
	authadapters "todo_backend/internal/feature/auth/adapters"
	authhandler "todo_backend/internal/feature/auth/transport/handler"
	authusecase "todo_backend/internal/feature/auth/usecase"
	taskhandler "todo_backend/internal/feature/tasks/transport/handler"
	taskusecase "todo_backend/internal/feature/tasks/usecase"
	jwtmw "todo_backend/internal/platform/jwt"
	"todo_backend/internal/platform/password"
)

// NewApp builds the HTTP engine from an opened database and an optional
// Redis client. Every component receives its settings from cfg; nothing
// below this point reads the environment.
func NewApp(cfg *config.Config, db *gorm.DB, rdb *redis.Client, logger *slog.Logger) (*gin.Engine, error) {
	// Security
	hasher := password.NewHasher(cfg.BcryptCost)
	generator, err := jwtmw.NewGenerator(cfg.JWTSecret, cfg.JWTExpiration)
	if err != nil {
		return nil, fmt.Errorf("token generator: %w", err)
	}
	verifier, err := jwtmw.NewVerifier(cfg.JWTSecret)
	if err != nil {
		return nil, fmt.Errorf("token verifier: %w", err)
	}

	// Repository
	userRepo := authadapters.NewUserRepository(db)
	taskRepo := NewTaskRepository(rdb, db, cfg.TaskCacheTTL)

	// Usecase
	authUC := authusecase.NewAuthUsecase(userRepo, hasher, generator)
	taskUC := taskusecase.NewTaskUsecase(taskRepo)

	// Handler
	authH := authhandler.NewAuthHandler(authUC)
	taskH := taskhandler.NewTaskHandler(taskUC)

	return router.NewRouter(authH, taskH, verifier, router.Options{
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		Logger:             logger,
	}), nil
}
