package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/supplykingmv/vcard/internal/domain"
	"github.com/supplykingmv/vcard/internal/service"
	"github.com/supplykingmv/vcard/internal/transport/http/middlewares"
)

type UserHandler struct {
	users *service.UserSvc
	auth  *service.AuthSvc
}

func NewUserHandler(users *service.UserSvc, auth *service.AuthSvc) *UserHandler {
	return &UserHandler{users: users, auth: auth}
}

func (h *UserHandler) GetMe(c *gin.Context) {
	c.JSON(http.StatusOK, middlewares.CurrentUser(c))
}

// UpdateMe is the profile edit: validation errors come back per-field
// and block the write.
func (h *UserHandler) UpdateMe(c *gin.Context) {
	u := middlewares.CurrentUser(c)
	var in service.ProfileUpdate
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if fieldErrs := in.Validate(); len(fieldErrs) > 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"fields": fieldErrs})
		return
	}
	updated, err := h.users.UpdateProfile(c.Request.Context(), u.ID, in)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *UserHandler) List(c *gin.Context) {
	out, err := h.users.List(c.Request.Context(), c.Query("q"), c.Query("role"))
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": out})
}

func (h *UserHandler) GetByID(c *gin.Context) {
	u, err := h.users.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, u)
}

// Create is the admin "add user" action: full account with a chosen
// role and active flag.
func (h *UserHandler) Create(c *gin.Context) {
	var in struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
		Name     string `json:"name" binding:"required"`
		Role     string `json:"role" binding:"required"`
		IsActive *bool  `json:"isActive"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}
	u, err := h.auth.Register(c.Request.Context(), in.Email, in.Password, in.Name, domain.Role(in.Role), active)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, u)
}

func (h *UserHandler) Update(c *gin.Context) {
	var in map[string]any
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	u, err := h.users.AdminUpdate(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, u)
}

func (h *UserHandler) Delete(c *gin.Context) {
	actor := middlewares.CurrentUser(c)
	err := h.users.Delete(c.Request.Context(), actor.ID, c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrDeleteSelf) {
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}
