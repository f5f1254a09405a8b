// Package server wires the gin engine that serves the property form and the
// JSON API.
package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// New builds the application router. The HTML form lives at the root; the
// JSON endpoints sit under /api/v1 with permissive CORS for browser clients
// hosted elsewhere.
func New(handler *Handler, env string) *gin.Engine {
	if env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.SetHTMLTemplate(newTemplate())

	engine.GET("/", handler.Index)
	engine.POST("/estimate", handler.Estimate)

	api := engine.Group("/api/v1")
	api.Use(cors.Default())
	api.POST("/estimate", handler.APIEstimate)
	api.GET("/geocode", handler.Geocode)

	return engine
}
