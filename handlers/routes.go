package handlers

import (
	"github.com/contosparadormir/contos/internal/admin"
	"github.com/contosparadormir/contos/internal/music"
	"github.com/contosparadormir/contos/internal/siteconfig"
	"github.com/contosparadormir/contos/internal/story"
	"github.com/contosparadormir/contos/pkg/middleware"
	"github.com/gin-gonic/gin"
)

// API bundles the services behind the /api surface.
type API struct {
	Gate       *admin.Gate
	Cookie     CookieConfig
	Stories    *story.Service
	Music      *music.Service
	SiteConfig *siteconfig.Service
}

// RegisterAPI mounts every /api route on r.
func RegisterAPI(r *gin.Engine, api API) {
	rg := r.Group("/api")
	requireAdmin := middleware.RequireAdmin(api.Gate, api.Cookie.Name)

	NewAuthHandler(api.Gate, api.Cookie).Register(rg)
	NewStoryHandler(api.Stories).Register(rg, requireAdmin)
	NewMusicHandler(api.Music).Register(rg, requireAdmin)
	NewSiteConfigHandler(api.SiteConfig).Register(rg, requireAdmin)
}
