package controllers

import (
	"simpleclaw-keeper/internal/middleware"
	"simpleclaw-keeper/services"

	"github.com/gin-gonic/gin"
)

/**
 * Build the gin engine serving the keeper API
 * @param {*services.Server} server - Server aggregate
 * @returns {*gin.Engine} Engine with recovery, metrics middleware and every controller registered
 */
func NewRouter(server *services.Server) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), middleware.MetricsMiddleware())

	NewAPIController(server).RegisterRoutes(router)
	NewStackController(server).RegisterRoutes(router)
	NewRemoteController(server).RegisterRoutes(router)
	return router
}
