package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/MiluneSadakaChrispinus/househunter/domain"
	"github.com/MiluneSadakaChrispinus/househunter/internal/services"
)

// AuthHandlers exposes session lifecycle operations.
type AuthHandlers struct {
	sessions *services.SessionStore
	router   *services.ViewRouter
}

// NewAuthHandlers creates new auth handlers.
func NewAuthHandlers(sessions *services.SessionStore, router *services.ViewRouter) *AuthHandlers {
	return &AuthHandlers{sessions: sessions, router: router}
}

// LoginRequest represents a login request. The role is the user's choice for
// this device; it defaults to tenant.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role,omitempty"`
}

// SignupRequest represents a signup request.
type SignupRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role,omitempty"`
}

// Login handles sign-in.
func (h *AuthHandlers) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	role := domain.ParseRole(req.Role)
	session, err := h.sessions.Login(c.Request.Context(), domain.Credentials{
		Email:    req.Email,
		Password: req.Password,
	}, role)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"user": gin.H{
				"id":    session.UserID,
				"email": session.Email,
				"role":  h.sessions.Role(),
			},
			"default_page": h.router.DefaultPage(h.sessions.Role()),
		},
	})
}

// Signup handles account creation. A pending-confirmation outcome is a 200
// with no session established.
func (h *AuthHandlers) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	role := domain.ParseRole(req.Role)
	outcome, err := h.sessions.Signup(c.Request.Context(), domain.Credentials{
		Email:    req.Email,
		Password: req.Password,
	}, role)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if outcome.PendingConfirmation {
		c.JSON(http.StatusOK, gin.H{
			"data": gin.H{
				"pending_confirmation": true,
				"message":              "Account created. Check your email to confirm it before logging in.",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"data": gin.H{
			"user": gin.H{
				"id":    outcome.Session.UserID,
				"email": outcome.Session.Email,
				"role":  h.sessions.Role(),
			},
			"default_page": h.router.DefaultPage(h.sessions.Role()),
		},
	})
}

// Logout destroys the session.
func (h *AuthHandlers) Logout(c *gin.Context) {
	if err := h.sessions.Logout(c.Request.Context()); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"signed_out": true}})
}

// Session reports the current session and role.
func (h *AuthHandlers) Session(c *gin.Context) {
	session := h.sessions.Session()
	if session == nil {
		c.JSON(http.StatusOK, gin.H{"data": gin.H{
			"signed_in": false,
			"role":      domain.RoleTenant,
		}})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{
		"signed_in": true,
		"user": gin.H{
			"id":    session.UserID,
			"email": session.Email,
		},
		"role": h.sessions.Role(),
	}})
}

// Page resolves a requested page for the current role.
func (h *AuthHandlers) Page(c *gin.Context) {
	requested := domain.Page(c.DefaultQuery("page", string(domain.PageListings)))
	resolved := h.router.Resolve(h.sessions.Role(), requested)
	c.JSON(http.StatusOK, gin.H{"data": gin.H{
		"requested": requested,
		"resolved":  resolved,
	}})
}
