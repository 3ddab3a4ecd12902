// internal/handlers/auth.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/inventra/inventra-backend/internal/config"
	"github.com/inventra/inventra-backend/internal/middleware"
	"github.com/inventra/inventra-backend/internal/services"
	"github.com/inventra/inventra-backend/internal/utils"
)

type AuthHandler struct {
	authService *services.AuthService
	cfg         *config.Config
}

func NewAuthHandler(authService *services.AuthService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{authService: authService, cfg: cfg}
}

type userResponse struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Signup creates an account and sends a verification email.
func (h *AuthHandler) Signup(c *gin.Context) {
	var req services.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", nil)
		return
	}

	user, err := h.authService.Signup(&req)
	if err != nil {
		handleServiceError(c, err, "User")
		return
	}

	utils.CreatedResponse(c, gin.H{
		"user":    userResponse{ID: user.ID, Name: user.Name, Email: user.Email},
		"message": "Account created. Please check your email to verify your address.",
	})
}

func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	token := c.Param("token")
	if err := h.authService.VerifyEmail(token); err != nil {
		handleServiceError(c, err, "Token")
		return
	}

	utils.SuccessResponse(c, gin.H{"message": "Email verified. You can now log in."})
}

// Login authenticates and sets the auth cookie. With remember_me the cookie
// lives for the extended TTL, otherwise it is a session-length token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req services.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", nil)
		return
	}

	result, err := h.authService.Login(&req)
	if err != nil {
		handleServiceError(c, err, "User")
		return
	}

	secure := h.cfg.Environment == "production"
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.AuthCookieName, result.AccessToken, int(result.TokenTTL.Seconds()), "/", "", secure, true)

	utils.SuccessResponse(c, gin.H{
		"user":          userResponse{ID: result.User.ID, Name: result.User.Name, Email: result.User.Email},
		"token":         result.AccessToken,
		"refresh_token": result.RefreshToken,
	})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	secure := h.cfg.Environment == "production"
	c.SetCookie(middleware.AuthCookieName, "", -1, "/", "", secure, true)
	utils.SuccessResponse(c, gin.H{"message": "Logged out"})
}

func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "A valid email is required", nil)
		return
	}

	if err := h.authService.ForgotPassword(req.Email); err != nil {
		handleServiceError(c, err, "User")
		return
	}

	// Same response whether or not the account exists.
	utils.SuccessResponse(c, gin.H{"message": "If that email is registered, a reset link has been sent."})
}

func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req services.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", nil)
		return
	}

	if err := h.authService.ResetPassword(&req); err != nil {
		handleServiceError(c, err, "Token")
		return
	}

	utils.SuccessResponse(c, gin.H{"message": "Password updated. You can now log in."})
}

func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "refresh_token is required", nil)
		return
	}

	token, err := h.authService.RefreshToken(req.RefreshToken)
	if err != nil {
		handleServiceError(c, err, "Token")
		return
	}

	utils.SuccessResponse(c, gin.H{"token": token})
}

// Me returns the authenticated user's profile.
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := utils.GetUserIDFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	user, err := h.authService.GetUserByID(userID)
	if err != nil {
		handleServiceError(c, err, "User")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"user": userResponse{ID: user.ID, Name: user.Name, Email: user.Email},
	})
}
