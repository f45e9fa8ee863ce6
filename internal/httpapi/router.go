package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func NewRouter(api *API) http.Handler {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api.registerRoutes(r.Group("/api/v1"))

	return r
}
