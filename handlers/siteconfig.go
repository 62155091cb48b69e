package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/contosparadormir/contos/internal/siteconfig"
	"github.com/contosparadormir/contos/internal/store"
	"github.com/gin-gonic/gin"
)

type SiteConfigHandler struct {
	svc *siteconfig.Service
}

func NewSiteConfigHandler(svc *siteconfig.Service) *SiteConfigHandler {
	return &SiteConfigHandler{svc: svc}
}

func (h *SiteConfigHandler) Register(rg *gin.RouterGroup, requireAdmin gin.HandlerFunc) {
	rg.GET("/site-config", h.Get)
	rg.PUT("/site-config", requireAdmin, h.Update)
}

// Get serves the stored config, or the defaults when none was ever saved.
func (h *SiteConfigHandler) Get(c *gin.Context) {
	cfg, err := h.svc.Get(c.Request.Context())
	if err != nil {
		failure{store.Site, "get", "", "Failed to fetch site config"}.respond(c, err)
		return
	}
	c.JSON(http.StatusOK, cfg)
}

// Update merges the sent fields into the stored config. Values are stored
// as sent, customHTML included.
func (h *SiteConfigHandler) Update(c *gin.Context) {
	var p siteconfig.Patch
	if err := c.ShouldBindJSON(&p); err != nil && !errors.Is(err, io.EOF) {
		badBody(c, err)
		return
	}
	if err := h.svc.Update(c.Request.Context(), p); err != nil {
		failure{store.Site, "update", "", "Failed to update site config"}.respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": p})
}
