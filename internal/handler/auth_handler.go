package handler

import (
	"net/http"

	"hospital-management-backend/internal/middleware"
	"hospital-management-backend/internal/models"
	"hospital-management-backend/internal/service"
	"hospital-management-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService   *service.AuthService
	sessionMaxAge int
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{
		authService:   authService,
		sessionMaxAge: int(utils.GetSessionExpiry().Seconds()),
	}
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// Login handles user authentication and establishes the session cookie
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	response, err := h.authService.Login(req.Username, req.Password)
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	// Session cookie for browser clients
	c.SetCookie(
		middleware.SessionCookie,
		response.SessionToken,
		h.sessionMaxAge,
		"/",
		"",    // current domain
		false, // secure (set true behind HTTPS)
		true,  // httpOnly
	)

	utils.SuccessResponse(c, gin.H{
		"role":         response.User.Role,
		"access_token": response.AccessToken,
	})
}

// Register handles account creation with automatic profile setup
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	// Role is taken from the request and defaults to patient; there is no
	// admin approval step for staff roles.
	role := models.Role(req.Role)
	if req.Role == "" {
		role = models.RolePatient
	}

	if err := h.authService.Register(req.Username, req.Email, req.Password, role); err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.MessageResponse(c, "Registration successful! Please login.")
}

// Logout revokes the session, clears the cookie and redirects to login
func (h *AuthHandler) Logout(c *gin.Context) {
	if token, err := c.Cookie(middleware.SessionCookie); err == nil {
		h.authService.Logout(token)
	}
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", false, true)
	c.Redirect(http.StatusFound, "/login")
}

// Profile returns the authenticated caller's account details
func (h *AuthHandler) Profile(c *gin.Context) {
	identity, ok := middleware.CallerIdentity(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	user, err := h.authService.GetProfile(identity.UserID)
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":       user.ID,
		"username": user.Username,
		"email":    user.Email,
		"role":     user.Role,
	})
}
