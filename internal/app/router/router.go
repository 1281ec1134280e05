// Package router wires HTTP routes to their handlers.
package router

import (
	"log/slog"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	authhandler "todo_backend/internal/feature/auth/transport/handler"
	taskhandler "todo_backend/internal/feature/tasks/transport/handler"
	"todo_backend/internal/platform/http/handler"
	"todo_backend/internal/platform/http/middleware"
	jwtmw "todo_backend/internal/platform/jwt"
)

// Options holds router settings that come from configuration.
type Options struct {
	// CORSAllowedOrigins enables CORS for the listed origins. Empty disables it.
	CORSAllowedOrigins []string
	Logger             *slog.Logger
}

func NewRouter(authHandler *authhandler.AuthHandler, tasks *taskhandler.TaskHandler,
	verifier jwtmw.TokenVerifier, opts Options) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.AccessLog(opts.Logger))

	if len(opts.CORSAllowedOrigins) > 0 {
		corsConfig := cors.DefaultConfig()
		corsConfig.AllowOrigins = opts.CORSAllowedOrigins
		corsConfig.AllowHeaders = []string{
			"Origin",
			"Content-Type",
			"Accept",
			"Authorization",
			middleware.HeaderRequestID,
		}
		corsConfig.ExposeHeaders = []string{middleware.HeaderRequestID}
		r.Use(cors.New(corsConfig))
	}

	// Public
	r.GET("/", handler.Root)
	r.GET("/healthz", handler.Health)
	r.HEAD("/healthz", handler.Health)
	r.OPTIONS("/healthz", handler.Health)
	r.POST("/signup", authHandler.Signup)
	// Issues a JWT.
	r.POST("/login", authHandler.Login)

	// Everything under /tasks requires a token in the Authorization header.
	auth := r.Group("/tasks")
	auth.Use(jwtmw.AuthRequired(verifier))
	{
		auth.POST("", tasks.Create)
		auth.GET("", tasks.List)
		auth.PUT("/:id", tasks.Update)
		auth.DELETE("/:id", tasks.Delete)
	}

	return r
}
