package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type IndexHandler struct {
	version string
}

func NewIndexHandler(version string) *IndexHandler {
	return &IndexHandler{version: version}
}

func (h *IndexHandler) RegisterRoutes(r gin.IRoutes) {
	r.GET("/", h.Index)
}

// Index godoc
// @Summary      Service index
// @Description  Name, version and a map of the main endpoints.
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]any
// @Router       / [get]
func (h *IndexHandler) Index(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Library API",
		"version": h.version,
		"docs":    "/swagger/index.html",
		"endpoints": gin.H{
			"books":      "/books/",
			"filter":     "/books/filter/advanced/",
			"by_author":  "/books/by-author/",
			"statistics": "/books/statistics/genre/",
			"search":     "/books/search/fulltext/",
			"metadata":   "/books/search/metadata/",
			"orders":     "/books/orders/",
			"health":     "/health",
			"metrics":    "/metrics",
		},
	})
}
