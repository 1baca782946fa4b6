package controllers

import (
	"context"
	"net/http"

	"ecommerce-backend/middleware"
	"ecommerce-backend/models"

	"github.com/gin-gonic/gin"
)

type AuthManager interface {
	Register(ctx context.Context, req models.RegisterRequest) (models.AuthResponse, error)
	Login(ctx context.Context, req models.LoginRequest) (models.AuthResponse, error)
	GetProfile(ctx context.Context, userID int64) (models.UserResponse, error)
}

type AuthController struct {
	auth AuthManager
}

func NewAuthController(auth AuthManager) *AuthController {
	return &AuthController{auth: auth}
}

// @Summary Register new user
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body models.RegisterRequest true "Register Request"
// @Success 201 {object} models.Response{data=models.AuthResponse}
// @Failure 400 {object} models.ErrorResponse
// @Router /auth/register [post]
func (ctrl *AuthController) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	resp, err := ctrl.auth.Register(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, "Registration successful", resp)
}

// @Summary Login user
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body models.LoginRequest true "Login Request"
// @Success 200 {object} models.Response{data=models.AuthResponse}
// @Failure 401 {object} models.ErrorResponse
// @Router /auth/login [post]
func (ctrl *AuthController) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	resp, err := ctrl.auth.Login(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Login successful", resp)
}

// @Summary Get profile
// @Tags Auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.Response{data=models.UserResponse}
// @Failure 401 {object} models.ErrorResponse
// @Router /auth/profile [get]
func (ctrl *AuthController) GetProfile(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		respondError(c, models.NewError(models.ErrUnauthorized, "authentication required"))
		return
	}

	profile, err := ctrl.auth.GetProfile(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Profile retrieved", profile)
}
