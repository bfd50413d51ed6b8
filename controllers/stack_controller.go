package controllers

import (
	"context"
	"net/http"
	"strconv"

	"simpleclaw-keeper/internal/models"
	"simpleclaw-keeper/services"

	"github.com/gin-gonic/gin"
)

type StackController struct {
	server *services.Server
}

/**
 * Create new stack controller instance
 * @param {*services.Server} server - Server aggregate holding the managers
 * @returns {*StackController} New stack controller instance
 */
func NewStackController(server *services.Server) *StackController {
	return &StackController{
		server: server,
	}
}

/**
 * Register all stack API routes
 * @param {*gin.Engine} r - Gin router instance
 * @description
 * - Registers routes for:
 *   - Lifecycle phases (deploy/optimize/start/stop/restart/teardown)
 *   - Status and logs queries
 */
func (s *StackController) RegisterRoutes(r *gin.Engine) {
	api := r.Group(APIPrefix + "/stack")
	api.POST("/deploy", s.Deploy)
	api.POST("/optimize", s.Optimize)
	api.POST("/start", s.Start)
	api.POST("/stop", s.Stop)
	api.POST("/restart", s.Restart)
	api.POST("/teardown", s.Teardown)
	api.GET("/status", s.Status)
	api.GET("/logs", s.Logs)
}

// phaseContext detaches a phase from the request so a dropped client does not abort it
func phaseContext(c *gin.Context) context.Context {
	return context.WithoutCancel(c.Request.Context())
}

// Deploy brings the stack up
//
//	@Summary		Deploy stack
//	@Description	Run compose up, wait for the agent runtime and apply post-start configuration
//	@Tags			Stack
//	@Produce		json
//	@Success		200	{object}	models.PhaseResult
//	@Failure		500	{object}	models.ErrorResponse
//	@Router			/api/v1/stack/deploy [post]
func (s *StackController) Deploy(c *gin.Context) {
	result, err := s.server.Stack().Deploy(phaseContext(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, &models.ErrorResponse{
			Code:  "stack.deploy_failed",
			Error: err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, result)
}

// Optimize applies the optimization batch
//
//	@Summary		Optimize stack
//	@Tags			Stack
//	@Accept			json
//	@Produce		json
//	@Param			body	body		models.OptimizeRequest	false	"Model used to choose fallbacks"
//	@Success		200		{object}	models.PhaseResult
//	@Router			/api/v1/stack/optimize [post]
func (s *StackController) Optimize(c *gin.Context) {
	var req models.OptimizeRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, &models.ErrorResponse{
				Code:  "stack.invalid_request",
				Error: err.Error(),
			})
			return
		}
	}
	if req.Model == "" {
		req.Model = c.Query("model")
	}
	result, err := s.server.Stack().Optimize(phaseContext(c), req.Model)
	if err != nil {
		c.JSON(http.StatusInternalServerError, &models.ErrorResponse{
			Code:  "stack.optimize_failed",
			Error: err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, result)
}

//	@Summary	Start stack
//	@Tags		Stack
//	@Success	200	{object}	models.SetupResult
//	@Failure	500	{object}	models.ErrorResponse
//	@Router		/api/v1/stack/start [post]
func (s *StackController) Start(c *gin.Context) {
	s.strict(c, "stack.start_failed", services.MsgStarted, s.server.Stack().Start)
}

//	@Summary	Stop stack
//	@Tags		Stack
//	@Success	200	{object}	models.SetupResult
//	@Failure	500	{object}	models.ErrorResponse
//	@Router		/api/v1/stack/stop [post]
func (s *StackController) Stop(c *gin.Context) {
	s.strict(c, "stack.stop_failed", services.MsgStopped, s.server.Stack().Stop)
}

//	@Summary	Restart stack
//	@Tags		Stack
//	@Success	200	{object}	models.SetupResult
//	@Failure	500	{object}	models.ErrorResponse
//	@Router		/api/v1/stack/restart [post]
func (s *StackController) Restart(c *gin.Context) {
	s.strict(c, "stack.restart_failed", services.MsgRestarted, s.server.Stack().Restart)
}

//	@Summary		Tear down stack
//	@Description	Remove containers and volumes, the installation directory is kept
//	@Tags			Stack
//	@Success		200	{object}	models.SetupResult
//	@Failure		500	{object}	models.ErrorResponse
//	@Router			/api/v1/stack/teardown [post]
func (s *StackController) Teardown(c *gin.Context) {
	s.strict(c, "stack.teardown_failed", services.MsgTornDown, s.server.Stack().Teardown)
}

func (s *StackController) strict(c *gin.Context, code, message string, op func(context.Context) error) {
	if err := op(phaseContext(c)); err != nil {
		c.JSON(http.StatusInternalServerError, &models.ErrorResponse{
			Code:  code,
			Error: err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, &models.SetupResult{Success: true, Message: message})
}

// Status queries the stack
//
//	@Summary	Stack status
//	@Tags		Stack
//	@Produce	json
//	@Success	200	{object}	models.StackStatus
//	@Failure	500	{object}	models.ErrorResponse
//	@Router		/api/v1/stack/status [get]
func (s *StackController) Status(c *gin.Context) {
	status, err := s.server.Status().Status(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, &models.ErrorResponse{
			Code:  "stack.status_failed",
			Error: err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, status)
}

// Logs returns the tail of the agent runtime output
//
//	@Summary	Stack logs
//	@Tags		Stack
//	@Produce	json
//	@Param		lines	query		int	false	"Number of lines"	default(100)
//	@Success	200		{object}	models.LogsResponse
//	@Failure	400		{object}	models.ErrorResponse
//	@Failure	500		{object}	models.ErrorResponse
//	@Router		/api/v1/stack/logs [get]
func (s *StackController) Logs(c *gin.Context) {
	lines := services.DefaultLogLines
	if v := c.Query("lines"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, &models.ErrorResponse{
				Code:  "stack.invalid_lines",
				Error: services.ErrInvalidLines.Error(),
			})
			return
		}
		lines = n
	}
	logs, err := s.server.Status().Logs(c.Request.Context(), lines)
	if err != nil {
		c.JSON(http.StatusInternalServerError, &models.ErrorResponse{
			Code:  "stack.logs_failed",
			Error: err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, &models.LogsResponse{Lines: lines, Logs: logs})
}
