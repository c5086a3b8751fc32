package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/event-manager/internal/audit"
	"github.com/BruksfildServices01/event-manager/internal/auth"
	"github.com/BruksfildServices01/event-manager/internal/dto"
	"github.com/BruksfildServices01/event-manager/internal/httperr"
	"github.com/BruksfildServices01/event-manager/internal/middleware"
)

type AuthHandler struct {
	authn *auth.Authenticator
	audit *audit.Dispatcher
}

func NewAuthHandler(authn *auth.Authenticator, audit *audit.Dispatcher) *AuthHandler {
	return &AuthHandler{authn: authn, audit: audit}
}

// --------- Requests ---------

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// --------- Handlers ---------

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "email and password are required")
		return
	}

	token, user, err := h.authn.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	h.audit.Dispatch(audit.Event{
		ActorID:  user.ID,
		Action:   "login",
		Entity:   "user",
		EntityID: user.ID,
	})

	c.JSON(http.StatusOK, dto.LoginResponse{
		Token: token,
		User: dto.LoginUser{
			ID:    user.ID,
			Email: user.Email,
			Name:  user.Name,
			Role:  user.Role,
		},
	})
}

func (h *AuthHandler) Me(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"user": middleware.CurrentUser(c)})
}
