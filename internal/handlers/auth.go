package handlers

import (
	"net/http"

	"github.com/ctgula/vibe-sub002/internal/models"
	"github.com/ctgula/vibe-sub002/internal/services"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email" example:"host@example.com"`
	Password string `json:"password" binding:"required,min=6" example:"password123"`
	Username string `json:"username" binding:"required,min=3,max=100" example:"host1"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"host@example.com"`
	Password string `json:"password" binding:"required" example:"password123"`
}

type GuestRequest struct {
	DisplayName string `json:"display_name" binding:"max=100" example:"Visitor"`
}

type AuthResponse struct {
	Token   string          `json:"token" example:"eyJhbGciOiJIUzI1NiIs..."`
	Profile *models.Profile `json:"profile"`
}

// Register godoc
// @Summary      Register a new account
// @Description  Create a profile with email/password credentials and return a JWT
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body RegisterRequest true "Registration data"
// @Success      201 {object} AuthResponse
// @Failure      400 {object} ErrorResponse
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	profile, token, err := h.authService.Register(req.Email, req.Password, req.Username)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, AuthResponse{Token: token, Profile: profile})
}

// Login godoc
// @Summary      Login with email/password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "Login data"
// @Success      200 {object} AuthResponse
// @Failure      401 {object} ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	profile, token, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, AuthResponse{Token: token, Profile: profile})
}

// Guest godoc
// @Summary      Start a guest session
// @Description  Mint an ephemeral guest profile and return a guest-scoped JWT
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body GuestRequest false "Optional display name"
// @Success      201 {object} AuthResponse
// @Failure      500 {object} ErrorResponse
// @Router       /api/auth/guest [post]
func (h *AuthHandler) Guest(c *gin.Context) {
	var req GuestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		req.DisplayName = ""
	}

	profile, token, err := h.authService.GuestSession(req.DisplayName)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, AuthResponse{Token: token, Profile: profile})
}
