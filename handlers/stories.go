package handlers

import (
	"net/http"

	"github.com/contosparadormir/contos/internal/store"
	"github.com/contosparadormir/contos/internal/story"
	"github.com/gin-gonic/gin"
)

type StoryHandler struct {
	svc *story.Service
}

func NewStoryHandler(svc *story.Service) *StoryHandler {
	return &StoryHandler{svc: svc}
}

// Register mounts the story routes. Reads are public; writes go through
// requireAdmin.
func (h *StoryHandler) Register(rg *gin.RouterGroup, requireAdmin gin.HandlerFunc) {
	rg.GET("/stories", h.List)
	rg.GET("/stories/:id", h.Get)
	rg.POST("/stories", requireAdmin, h.Create)
	rg.PUT("/stories/:id", requireAdmin, h.Update)
	rg.DELETE("/stories/:id", requireAdmin, h.Delete)
}

func (h *StoryHandler) List(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context())
	if err != nil {
		failure{store.Stories, "list", "", "Failed to fetch stories"}.respond(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *StoryHandler) Get(c *gin.Context) {
	st, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		failure{store.Stories, "get", "Story not found", "Failed to fetch story"}.respond(c, err)
		return
	}
	c.JSON(http.StatusOK, st)
}

func (h *StoryHandler) Create(c *gin.Context) {
	var in story.Input
	if err := c.ShouldBindJSON(&in); err != nil {
		badBody(c, err)
		return
	}
	st, err := h.svc.Create(c.Request.Context(), in)
	if err != nil {
		failure{store.Stories, "create", "", "Failed to create story"}.respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, st)
}

func (h *StoryHandler) Update(c *gin.Context) {
	var in story.Input
	if err := c.ShouldBindJSON(&in); err != nil {
		badBody(c, err)
		return
	}
	st, err := h.svc.Update(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		failure{store.Stories, "update", "Story not found", "Failed to update story"}.respond(c, err)
		return
	}
	c.JSON(http.StatusOK, st)
}

func (h *StoryHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		failure{store.Stories, "delete", "Story not found", "Failed to delete story"}.respond(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
