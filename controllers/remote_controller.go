package controllers

import (
	"net/http"
	"strings"

	"simpleclaw-keeper/internal/models"
	"simpleclaw-keeper/services"

	"github.com/gin-gonic/gin"
)

// RemoteController proxies the account backend and Telegram for the desktop shell
type RemoteController struct {
	server *services.Server
}

func NewRemoteController(server *services.Server) *RemoteController {
	return &RemoteController{
		server: server,
	}
}

func (rc *RemoteController) RegisterRoutes(r *gin.Engine) {
	api := r.Group(APIPrefix)
	api.POST("/telegram/validate", rc.ValidateBot)

	remote := api.Group("/remote")
	remote.POST("/register", rc.Register)
	remote.GET("/usage", rc.Usage)
	remote.GET("/status", rc.Status)
	remote.GET("/profile", rc.GetProfile)
	remote.PATCH("/profile", rc.UpdateProfile)
	remote.POST("/pay", rc.Pay)
}

// authToken reads "Authorization: Token <value>" from the request
func authToken(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	if !strings.HasPrefix(h, "Token ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(h, "Token "))
}

// backend returns a client for the caller, or answers 401 and returns nil
func (rc *RemoteController) backend(c *gin.Context) *services.BackendClient {
	token := authToken(c)
	if token == "" {
		c.JSON(http.StatusUnauthorized, &models.ErrorResponse{
			Code:  "remote.unauthorized",
			Error: "missing Authorization: Token header",
		})
		return nil
	}
	return rc.server.Backend(token)
}

func remoteFailed(c *gin.Context, err error) {
	c.JSON(http.StatusBadGateway, &models.ErrorResponse{
		Code:  "remote.request_failed",
		Error: err.Error(),
	})
}

// respond writes v or the remote error
func respond(c *gin.Context, v interface{}, err error) {
	if err != nil {
		remoteFailed(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

//	@Summary	Register desktop installation
//	@Tags		Remote
//	@Accept		json
//	@Produce	json
//	@Param		body	body		models.RegisterRequest	true	"Bot token and model"
//	@Success	200		{object}	models.RegisterResponse
//	@Failure	502		{object}	models.ErrorResponse
//	@Router		/api/v1/remote/register [post]
func (rc *RemoteController) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, &models.ErrorResponse{
			Code:  "remote.invalid_request",
			Error: err.Error(),
		})
		return
	}
	resp, err := rc.server.Backend("").Register(req.BotToken, req.Model)
	respond(c, resp, err)
}

//	@Summary	Token usage
//	@Tags		Remote
//	@Success	200	{object}	models.UsageResponse
//	@Router		/api/v1/remote/usage [get]
func (rc *RemoteController) Usage(c *gin.Context) {
	if b := rc.backend(c); b != nil {
		resp, err := b.Usage()
		respond(c, resp, err)
	}
}

//	@Summary	Subscription status
//	@Tags		Remote
//	@Success	200	{object}	models.SubscriptionStatus
//	@Router		/api/v1/remote/status [get]
func (rc *RemoteController) Status(c *gin.Context) {
	if b := rc.backend(c); b != nil {
		resp, err := b.Status()
		respond(c, resp, err)
	}
}

//	@Summary	User profile
//	@Tags		Remote
//	@Success	200	{object}	models.UserProfile
//	@Router		/api/v1/remote/profile [get]
func (rc *RemoteController) GetProfile(c *gin.Context) {
	if b := rc.backend(c); b != nil {
		resp, err := b.GetProfile()
		respond(c, resp, err)
	}
}

//	@Summary	Update user profile
//	@Tags		Remote
//	@Accept		json
//	@Param		body	body		models.ProfileUpdate	true	"Fields to change"
//	@Success	200		{object}	models.UserProfile
//	@Router		/api/v1/remote/profile [patch]
func (rc *RemoteController) UpdateProfile(c *gin.Context) {
	b := rc.backend(c)
	if b == nil {
		return
	}
	var update models.ProfileUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, &models.ErrorResponse{
			Code:  "remote.invalid_request",
			Error: err.Error(),
		})
		return
	}
	resp, err := b.UpdateProfile(update)
	respond(c, resp, err)
}

//	@Summary	Create payment session
//	@Tags		Remote
//	@Success	200	{object}	models.PaymentResponse
//	@Router		/api/v1/remote/pay [post]
func (rc *RemoteController) Pay(c *gin.Context) {
	if b := rc.backend(c); b != nil {
		resp, err := b.CreatePayment()
		respond(c, resp, err)
	}
}

// ValidateBot checks a Telegram bot token
//
//	@Summary	Validate Telegram bot token
//	@Tags		Remote
//	@Accept		json
//	@Param		body	body		models.ValidateBotRequest	true	"Bot token"
//	@Success	200		{object}	models.BotInfo
//	@Router		/api/v1/telegram/validate [post]
func (rc *RemoteController) ValidateBot(c *gin.Context) {
	var req models.ValidateBotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, &models.ErrorResponse{
			Code:  "telegram.invalid_request",
			Error: err.Error(),
		})
		return
	}
	info, err := rc.server.Telegram().ValidateBotToken(req.Token)
	respond(c, info, err)
}
