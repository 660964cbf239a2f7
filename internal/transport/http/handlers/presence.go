package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/supplykingmv/vcard/internal/presence"
)

type PresenceHandler struct {
	store *presence.Store
}

func NewPresenceHandler(store *presence.Store) *PresenceHandler {
	return &PresenceHandler{store: store}
}

func (h *PresenceHandler) Online(c *gin.Context) {
	out, err := h.store.Online(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"online": out})
}
