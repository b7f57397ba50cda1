package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/fledgehq/fledge-backend/internal/apperrors"
	portssvc "github.com/fledgehq/fledge-backend/internal/core/ports/services"
	"github.com/fledgehq/fledge-backend/internal/dto"
	"github.com/fledgehq/fledge-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// authHandler handles signup, login, and logout.
type authHandler struct {
	authService portssvc.AuthSvcFacade
}

// newAuthHandler creates a new authHandler.
func newAuthHandler(as portssvc.AuthSvcFacade) *authHandler {
	return &authHandler{authService: as}
}

// registerAuthRoutes registers the public auth routes and the authenticated
// logout route.
func registerAuthRoutes(public *gin.RouterGroup, authed *gin.RouterGroup, authService portssvc.AuthSvcFacade) {
	h := newAuthHandler(authService)

	auth := public.Group("/auth")
	{
		auth.POST("/signup", h.signup)
		auth.POST("/login", h.login)
	}

	authed.POST("/auth/logout", h.logout)
}

// signup godoc
// @Summary Onboard a new employee
// @Description Creates the user, employee record, FSA account for the current plan year, and first access token in one atomic step
// @Tags auth
// @Accept  json
// @Produce  json
// @Param   signup body dto.SignupRequest true "Signup details"
// @Success 201 {object} dto.AuthResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 409 {object} map[string]string "Email or employee number already registered"
// @Failure 500 {object} map[string]string "Failed to sign up"
// @Router /auth/signup [post]
func (h *authHandler) signup(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for Signup", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	logger.Info("Received signup request", slog.String("email", req.Email))

	user, token, err := h.authService.Signup(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrDuplicate):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			logger.Error("Signup failed", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to sign up"})
		}
		return
	}

	logger.Info("Signup succeeded", slog.String("user_id", user.UserID))
	c.JSON(http.StatusCreated, dto.ToAuthResponse(user, token))
}

// login godoc
// @Summary Log in
// @Description Authenticates by email and password and issues a fresh access token
// @Tags auth
// @Accept  json
// @Produce  json
// @Param   login body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.AuthResponse
// @Failure 400 {object} map[string]string "Invalid input format"
// @Failure 401 {object} map[string]string "Invalid credentials"
// @Failure 500 {object} map[string]string "Failed to log in"
// @Router /auth/login [post]
func (h *authHandler) login(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for Login", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	user, token, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrUnauthorized) {
			// Same response for unknown email and wrong password.
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		} else {
			logger.Error("Login failed", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to log in"})
		}
		return
	}

	logger.Info("Login succeeded", slog.String("user_id", user.UserID))
	c.JSON(http.StatusOK, dto.ToAuthResponse(user, token))
}

// logout godoc
// @Summary Log out
// @Description Revokes the presented access token
// @Tags auth
// @Produce  json
// @Success 200 {object} map[string]string
// @Failure 401 {object} map[string]string "Missing or malformed token"
// @Failure 500 {object} map[string]string "Failed to log out"
// @Security BearerAuth
// @Router /auth/logout [post]
func (h *authHandler) logout(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	token, ok := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
	if !ok || token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing bearer token"})
		return
	}

	if err := h.authService.Logout(c.Request.Context(), token); err != nil {
		logger.Error("Logout failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to log out"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}
