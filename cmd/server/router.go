package main

import (
	"context"
	"net/http"

	"account_service/internal/handler"
	"account_service/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// pinger is satisfied by *pgxpool.Pool.
type pinger interface {
	Ping(ctx context.Context) error
}

type routerDeps struct {
	authHandler    *handler.AuthHandler
	authMiddleware gin.HandlerFunc
	db             pinger
	logger         *zap.Logger
	corsOrigins    []string
}

func newRouter(deps routerDeps) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(deps.logger))
	router.Use(middleware.CORS(deps.corsOrigins))

	deps.authHandler.RegisterAuthRoutes(&router.RouterGroup, deps.authMiddleware)

	router.GET("/health", func(c *gin.Context) {
		if err := deps.db.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "error", "db": "unhealthy"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "db": "healthy"})
	})

	return router
}
