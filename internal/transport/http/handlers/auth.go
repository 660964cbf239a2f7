package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/supplykingmv/vcard/internal/domain"
	"github.com/supplykingmv/vcard/internal/presence"
	"github.com/supplykingmv/vcard/internal/service"
	"github.com/supplykingmv/vcard/internal/transport/http/middlewares"
)

type AuthHandler struct {
	auth     *service.AuthSvc
	presence *presence.Store
}

func NewAuthHandler(auth *service.AuthSvc, pres *presence.Store) *AuthHandler {
	return &AuthHandler{auth: auth, presence: pres}
}

// Register creates a self-service account. Role is always viewer here;
// privileged roles are granted through the admin user endpoints.
func (h *AuthHandler) Register(c *gin.Context) {
	var in struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
		Name     string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	u, err := h.auth.Register(c.Request.Context(), in.Email, in.Password, in.Name, domain.RoleViewer, true)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, u)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var in struct {
		Email      string `json:"email" binding:"required"`
		Password   string `json:"password" binding:"required"`
		RememberMe bool   `json:"remember_me"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	u, access, refresh, err := h.auth.Login(c.Request.Context(), in.Email, in.Password, in.RememberMe)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	if h.presence != nil {
		if err := h.presence.SetOnline(c.Request.Context(), u.ID); err != nil {
			log.Printf("[auth] presence online %s: %v", u.ID, err)
		}
	}
	c.JSON(http.StatusOK, gin.H{"user": u, "access_token": access, "refresh_token": refresh})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	u := middlewares.CurrentUser(c)
	if u != nil && h.presence != nil {
		if err := h.presence.SetOffline(c.Request.Context(), u.ID); err != nil {
			log.Printf("[auth] presence offline %s: %v", u.ID, err)
		}
	}
	c.Status(http.StatusNoContent)
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	var in struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	access, err := h.auth.Refresh(c.Request.Context(), in.RefreshToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"access_token": access})
}

// ResetPassword always answers 202 so the endpoint cannot be used to
// probe which emails exist.
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var in struct {
		Email string `json:"email" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.auth.RequestPasswordReset(c.Request.Context(), in.Email); err != nil {
		log.Printf("[auth] reset request for %s: %v", in.Email, err)
	}
	c.Status(http.StatusAccepted)
}

func (h *AuthHandler) ResetConfirm(c *gin.Context) {
	var in struct {
		Token       string `json:"token" binding:"required"`
		NewPassword string `json:"new_password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.auth.ConfirmPasswordReset(c.Request.Context(), in.Token, in.NewPassword); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *AuthHandler) ChangePassword(c *gin.Context) {
	u := middlewares.CurrentUser(c)
	var in struct {
		CurrentPassword string `json:"current_password" binding:"required"`
		NewPassword     string `json:"new_password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	err := h.auth.ChangePassword(c.Request.Context(), u.ID, in.CurrentPassword, in.NewPassword)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, service.ErrWrongPassword) {
			status = http.StatusForbidden
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}
