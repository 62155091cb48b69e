package handlers

import (
	"net/http"

	"github.com/contosparadormir/contos/internal/music"
	"github.com/contosparadormir/contos/internal/store"
	"github.com/gin-gonic/gin"
)

// MusicHandler exposes listing and deletion only; tracks are added by the
// music-import tool.
type MusicHandler struct {
	svc *music.Service
}

func NewMusicHandler(svc *music.Service) *MusicHandler {
	return &MusicHandler{svc: svc}
}

func (h *MusicHandler) Register(rg *gin.RouterGroup, requireAdmin gin.HandlerFunc) {
	rg.GET("/music", h.List)
	rg.DELETE("/music/:id", requireAdmin, h.Delete)
}

func (h *MusicHandler) List(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context())
	if err != nil {
		failure{store.Music, "list", "", "Failed to fetch music"}.respond(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *MusicHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		failure{store.Music, "delete", "Music not found", "Failed to delete music"}.respond(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
