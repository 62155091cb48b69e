package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterSwagger registers minimal Swagger/OpenAPI endpoints for the API.
// - GET /swagger/index.html  -> a small HTML page that loads the OpenAPI JSON
// - GET /swagger/doc.json    -> machine-readable OpenAPI JSON
func RegisterSwagger(r *gin.Engine) {
	r.GET("/swagger/index.html", func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.String(http.StatusOK, swaggerHTML)
	})

	r.GET("/swagger/doc.json", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(swaggerJSON))
	})
}

const swaggerHTML = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>contos-api Swagger</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@4/swagger-ui.css" />
  </head>
  <body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@4/swagger-ui-bundle.js"></script>
    <script>
      window.ui = SwaggerUIBundle({
        url: '/swagger/doc.json',
        dom_id: '#swagger-ui',
      })
    </script>
  </body>
</html>`

const swaggerJSON = `{
  "openapi": "3.0.0",
  "info": { "title": "contos-api", "version": "v1.0.0" },
  "components": {
    "securitySchemes": { "adminCookie": { "type": "apiKey", "in": "cookie", "name": "contos.sid" } },
    "schemas": {
      "StoryInput": { "type": "object", "required": ["title","content","coverImageUrl"], "properties": { "title": {"type":"string"}, "content": {"type":"string"}, "coverImageUrl": {"type":"string"} } },
      "Story": { "type": "object", "properties": { "id": {"type":"string"}, "title": {"type":"string"}, "content": {"type":"string"}, "coverImageUrl": {"type":"string"}, "createdAt": {"type":"integer"}, "updatedAt": {"type":"integer"} } },
      "Music": { "type": "object", "properties": { "id": {"type":"string"}, "name": {"type":"string"}, "url": {"type":"string"}, "uploadedAt": {"type":"integer"} } },
      "SiteConfig": { "type": "object", "properties": { "primaryColor": {"type":"string"}, "accentColor": {"type":"string"}, "secondaryColor": {"type":"string"}, "backgroundColor": {"type":"string"}, "foregroundColor": {"type":"string"}, "heroTitle": {"type":"string"}, "heroSubtitle": {"type":"string"}, "customHTML": {"type":"string"}, "updatedAt": {"type":"integer"} } }
    }
  },
  "paths": {
    "/api/auth/admin": {
      "post": { "summary": "Admin login", "requestBody": { "content": { "application/json": { "schema": {"type":"object","properties":{"password":{"type":"string"}}}}}}, "responses": { "200": { "description": "session cookie set" }, "401": { "description": "invalid password" } } }
    },
    "/api/auth/logout": {
      "post": { "summary": "Destroy the session", "responses": { "200": { "description": "logged out" }, "500": { "description": "logout failed" } } }
    },
    "/api/auth/check": {
      "get": { "summary": "Report admin status", "responses": { "200": { "description": "{isAdmin}" } } }
    },
    "/api/stories": {
      "get": { "summary": "List stories, newest first", "responses": { "200": { "description": "stories" } } },
      "post": { "summary": "Create a story", "security": [{"adminCookie": []}], "requestBody": { "content": { "application/json": { "schema": {"$ref":"#/components/schemas/StoryInput"}}}}, "responses": { "201": { "description": "created" }, "400": { "description": "validation error" }, "403": { "description": "admin access required" } } }
    },
    "/api/stories/{id}": {
      "get": { "summary": "Get a story", "responses": { "200": { "description": "story" }, "404": { "description": "not found" } } },
      "put": { "summary": "Replace a story's fields", "security": [{"adminCookie": []}], "responses": { "200": { "description": "updated" }, "400": { "description": "validation error" }, "403": { "description": "admin access required" }, "404": { "description": "not found" } } },
      "delete": { "summary": "Delete a story", "security": [{"adminCookie": []}], "responses": { "204": { "description": "deleted" }, "403": { "description": "admin access required" }, "404": { "description": "not found" } } }
    },
    "/api/music": {
      "get": { "summary": "List music, newest first", "responses": { "200": { "description": "tracks" } } }
    },
    "/api/music/{id}": {
      "delete": { "summary": "Delete a track", "security": [{"adminCookie": []}], "responses": { "204": { "description": "deleted" }, "403": { "description": "admin access required" }, "404": { "description": "not found" } } }
    },
    "/api/site-config": {
      "get": { "summary": "Site appearance, defaults when unset", "responses": { "200": { "description": "config" } } },
      "put": { "summary": "Merge fields into the site config", "security": [{"adminCookie": []}], "responses": { "200": { "description": "{success,data}" }, "403": { "description": "admin access required" } } }
    },
    "/health": { "get": { "summary": "Liveness check", "responses": { "200": { "description": "healthy" } } } },
    "/ready": { "get": { "summary": "Readiness check", "responses": { "200": { "description": "ready" }, "503": { "description": "not ready" } } } },
    "/metrics": { "get": { "summary": "Prometheus metrics", "responses": { "200": { "description": "metrics" } } } }
  }
}`
