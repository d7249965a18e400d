package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"employee-records-api/middleware"
	"employee-records-api/services"
)

type LoginRequest struct {
	Email    string `json:"email" form:"email" binding:"required,email"`
	Password string `json:"password" form:"password" binding:"required"`
}

type AuthController struct {
	users        *services.UserService
	secret       []byte
	ttl          time.Duration
	secureCookie bool
}

func NewAuthController(users *services.UserService, secret []byte, ttl time.Duration, secureCookie bool) *AuthController {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &AuthController{users: users, secret: secret, ttl: ttl, secureCookie: secureCookie}
}

// Login handles user authentication
func (a *AuthController) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Email and password are required", "error": err.Error()})
		return
	}

	user, err := a.users.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, "Invalid email or password", err)
		return
	}

	token, err := middleware.GenerateToken(*user, a.secret, a.ttl)
	if err != nil {
		respondError(c, "Failed to generate token", err)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.TokenCookie, token, int(a.ttl.Seconds()), "/", "", a.secureCookie, true)

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"token":   token,
		"user":    user,
	})
}

// Logout clears the token cookie
func (a *AuthController) Logout(c *gin.Context) {
	c.SetCookie(middleware.TokenCookie, "", -1, "/", "", a.secureCookie, true)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// GetProfile returns current user profile
func (a *AuthController) GetProfile(c *gin.Context) {
	user, err := a.users.Get(c.Request.Context(), c.GetUint("userID"))
	if err != nil {
		respondError(c, "User not found", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Profile fetched", "user": user})
}
