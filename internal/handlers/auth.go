// internal/handlers/auth.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/funkoshop/api/internal/services"
	"github.com/funkoshop/api/internal/utils"
)

type AuthHandler struct {
	auth *services.AuthService
}

func NewAuthHandler(auth *services.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// POST /auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req services.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RenderError(c, utils.BadRequestError("invalid input", err.Error()))
		return
	}
	if err := utils.ValidateStruct(&req); err != nil {
		utils.RenderError(c, utils.ValidationFailure(utils.GetValidationErrors(err)))
		return
	}

	user, err := h.auth.Register(&req)
	if err != nil {
		utils.RenderError(c, err)
		return
	}

	utils.Created(c, gin.H{"user": user})
}

// POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req services.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RenderError(c, utils.BadRequestError("invalid input", err.Error()))
		return
	}
	if err := utils.ValidateStruct(&req); err != nil {
		utils.RenderError(c, utils.ValidationFailure(utils.GetValidationErrors(err)))
		return
	}

	token, user, err := h.auth.Login(&req)
	if err != nil {
		utils.RenderError(c, err)
		return
	}

	utils.OK(c, gin.H{
		"token": token,
		"user":  user,
	})
}
