package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/supplykingmv/vcard/internal/domain"
	"github.com/supplykingmv/vcard/internal/qr"
	"github.com/supplykingmv/vcard/internal/service"
	"github.com/supplykingmv/vcard/internal/transport/http/middlewares"
	"github.com/supplykingmv/vcard/internal/vcard"
	"github.com/supplykingmv/vcard/internal/view"
)

type ContactHandler struct {
	contacts      *service.ContactSvc
	notifications *service.NotificationSvc
}

func NewContactHandler(contacts *service.ContactSvc, notifications *service.NotificationSvc) *ContactHandler {
	return &ContactHandler{contacts: contacts, notifications: notifications}
}

func (h *ContactHandler) List(c *gin.Context) {
	u := middlewares.CurrentUser(c)
	out, err := h.contacts.List(c.Request.Context(), u)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"contacts": out})
}

// View runs the derivation pipeline with the caller's search / filter
// / sort / group controls.
func (h *ContactHandler) View(c *gin.Context) {
	u := middlewares.CurrentUser(c)
	q := view.Query{
		Search:   c.Query("q"),
		Category: c.DefaultQuery("category", view.FilterAll),
		Sort:     c.DefaultQuery("sort", view.SortName),
		Group:    c.DefaultQuery("group", view.GroupNone),
	}
	groups, err := h.contacts.View(c.Request.Context(), u, q)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"groups": groups})
}

func (h *ContactHandler) Get(c *gin.Context) {
	u := middlewares.CurrentUser(c)
	out, err := h.contacts.Get(c.Request.Context(), u, c.Param("id"))
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *ContactHandler) Create(c *gin.Context) {
	u := middlewares.CurrentUser(c)
	var in domain.Draft
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if in.Name == "" || in.Email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": vcard.ErrMissingFields.Error()})
		return
	}
	created, err := h.contacts.Create(c.Request.Context(), u, in)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	h.broadcastAdd(c, u)
	c.JSON(http.StatusCreated, created)
}

// Import accepts raw scanned/pasted text and stores the decoded
// contact. Decode failures keep 422 so the client can show the reason
// inline and let the user fix the input.
func (h *ContactHandler) Import(c *gin.Context) {
	u := middlewares.CurrentUser(c)
	var in struct {
		Data string `json:"data" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	created, err := h.contacts.Import(c.Request.Context(), u, in.Data)
	if err != nil {
		if errors.Is(err, vcard.ErrMissingFields) || errors.Is(err, vcard.ErrBadFormat) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	h.broadcastAdd(c, u)
	c.JSON(http.StatusCreated, created)
}

func (h *ContactHandler) Update(c *gin.Context) {
	u := middlewares.CurrentUser(c)
	var in domain.Contact
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	in.ID = c.Param("id")
	updated, err := h.contacts.Update(c.Request.Context(), u, &in)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *ContactHandler) Delete(c *gin.Context) {
	u := middlewares.CurrentUser(c)
	if err := h.contacts.Delete(c.Request.Context(), u, c.Param("id")); err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// VCard serves the contact as a downloadable .vcf payload.
func (h *ContactHandler) VCard(c *gin.Context) {
	u := middlewares.CurrentUser(c)
	text, err := h.contacts.VCardText(c.Request.Context(), u, c.Param("id"))
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.Header("Content-Disposition", `attachment; filename="contact.vcf"`)
	c.Data(http.StatusOK, "text/vcard; charset=utf-8", []byte(text))
}

// QRPNG renders the vCard payload as a PNG locally, no external calls.
func (h *ContactHandler) QRPNG(c *gin.Context) {
	u := middlewares.CurrentUser(c)
	text, err := h.contacts.VCardText(c.Request.Context(), u, c.Param("id"))
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	size, _ := strconv.Atoi(c.DefaultQuery("size", "200"))
	png, err := qr.PNG(text, size)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}

// QRURL returns the hosted QR-image API link for clients that want the
// bitmap served off-box.
func (h *ContactHandler) QRURL(c *gin.Context) {
	u := middlewares.CurrentUser(c)
	text, err := h.contacts.VCardText(c.Request.Context(), u, c.Param("id"))
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	size, _ := strconv.Atoi(c.DefaultQuery("size", "200"))
	c.JSON(http.StatusOK, gin.H{"url": qr.HostedURL(text, size)})
}

func (h *ContactHandler) broadcastAdd(c *gin.Context, actor *domain.User) {
	if h.notifications == nil {
		return
	}
	if _, err := h.notifications.BroadcastContactAdded(c.Request.Context(), actor); err != nil {
		log.Printf("[contacts] broadcast add: %v", err)
	}
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrReadOnlyRole):
		return http.StatusForbidden
	default:
		return http.StatusBadRequest
	}
}
