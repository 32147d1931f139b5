package handler

import (
	"errors"
	"log"
	"net/http"

	"courier_market/internal/middleware"
	"courier_market/internal/model"
	"courier_market/internal/service"

	"github.com/gin-gonic/gin"
)

// sessionMaxAge is how long the session cookie lives, in seconds
const sessionMaxAge = 24 * 60 * 60

// AuthHandler handles registration, login and logout
type AuthHandler struct {
	service service.AuthService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(s service.AuthService) *AuthHandler {
	return &AuthHandler{service: s}
}

func (h *AuthHandler) LoginPage(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"page": "login"})
}

func (h *AuthHandler) RegisterPage(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"page": "register"})
}

func (h *AuthHandler) Login(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	_, token, err := h.service.Login(c.Request.Context(), username, password)
	if err != nil {
		if errors.Is(err, service.ErrMissingCredentials) || errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
			return
		}
		log.Printf("Error during login: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to login"})
		return
	}

	setSessionCookie(c, token)
	c.Redirect(http.StatusFound, "/")
}

func (h *AuthHandler) Register(c *gin.Context) {
	input := service.RegisterInput{
		Username:     c.PostForm("username"),
		Password:     c.PostForm("password"),
		Confirmation: c.PostForm("confirmation"),
		Email:        c.PostForm("email"),
		Role:         model.Role(c.PostForm("role")),
	}

	_, token, err := h.service.Register(c.Request.Context(), input)
	if err != nil {
		if errors.Is(err, service.ErrMissingCredentials) ||
			errors.Is(err, service.ErrPasswordMismatch) ||
			errors.Is(err, service.ErrUsernameTaken) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		log.Printf("Error during registration: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register user"})
		return
	}

	setSessionCookie(c, token)
	c.Redirect(http.StatusFound, "/")
}

func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", false, true)
	c.Redirect(http.StatusFound, "/")
}

func setSessionCookie(c *gin.Context, token string) {
	c.SetCookie(middleware.SessionCookie, token, sessionMaxAge, "/", "", false, true)
}

// RegisterAuthRoutes registers auth routes; none of them require a session
func (h *AuthHandler) RegisterAuthRoutes(rg *gin.RouterGroup) {
	rg.GET("/login", h.LoginPage)
	rg.POST("/login", h.Login)
	rg.GET("/register", h.RegisterPage)
	rg.POST("/register", h.Register)
	rg.GET("/logout", h.Logout)
}
