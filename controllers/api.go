package controllers

import (
	"errors"
	"net/http"

	"simpleclaw-keeper/internal/artifact"
	"simpleclaw-keeper/internal/models"
	"simpleclaw-keeper/services"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// APIPrefix is the route group of every keeper endpoint except probes
const APIPrefix = "/api/v1"

type APIController struct {
	server *services.Server
}

/**
 * Create new API controller instance
 * @param {*services.Server} server - Server aggregate holding the managers
 * @returns {*APIController} New API controller instance
 * @example
 * server := services.NewServer(config.App(), nil)
 * controller := controllers.NewAPIController(server)
 */
func NewAPIController(server *services.Server) *APIController {
	return &APIController{
		server: server,
	}
}

/**
 * Register probe, setup and docker routes to Gin engine
 * @param {*gin.Engine} r - Gin router instance
 * @description
 * - /healthz and /metrics live outside the API prefix
 * - /api/v1/setup writes the artifact set
 * - /api/v1/docker probes the container runtime
 */
func (a *APIController) RegisterRoutes(r *gin.Engine) {
	r.GET("/healthz", a.Healthz)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group(APIPrefix)
	api.POST("/setup", a.Setup)
	api.GET("/docker", a.CheckDocker)
}

// @Summary 业务就绪探针
// @Description 返回服务版本、启动时间、健康状态和关键指标统计结果
// @Tags System
// @Produce json
// @Success 200 {object} models.HealthResponse
// @Router /healthz [get]
func (a *APIController) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, a.server.GetHealthz())
}

// Setup generates the configuration files of the stack
//
//	@Summary		Generate stack configuration
//	@Description	Render every configuration file into the installation directory, overwriting previous ones
//	@Tags			Setup
//	@Accept			json
//	@Produce		json
//	@Param			body	body		models.SetupSpecification	true	"Secrets and model selector"
//	@Success		200		{object}	models.SetupResult
//	@Failure		400		{object}	models.ErrorResponse
//	@Failure		500		{object}	models.ErrorResponse
//	@Router			/api/v1/setup [post]
func (a *APIController) Setup(c *gin.Context) {
	var spec models.SetupSpecification
	if err := c.ShouldBindJSON(&spec); err != nil {
		c.JSON(http.StatusBadRequest, &models.ErrorResponse{
			Code:  "setup.invalid_request",
			Error: err.Error(),
		})
		return
	}
	result, err := a.server.Stack().Setup(spec)
	if err != nil {
		code := "setup.failed"
		var writeErr *artifact.WriteError
		if errors.As(err, &writeErr) {
			code = "setup.write_failed"
		}
		c.JSON(http.StatusInternalServerError, &models.ErrorResponse{
			Code:  code,
			Error: err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, result)
}

// CheckDocker probes docker, compose and the docker daemon
//
//	@Summary		Check Docker
//	@Tags			System
//	@Produce		json
//	@Success		200	{object}	models.DockerStatus
//	@Router			/api/v1/docker [get]
func (a *APIController) CheckDocker(c *gin.Context) {
	c.JSON(http.StatusOK, a.server.Docker().Check(c.Request.Context()))
}
