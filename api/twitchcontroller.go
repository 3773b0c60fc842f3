package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"vidgate/extract"
	"vidgate/provider"
)

func (s *Server) registerTwitchRoutes(g *gin.RouterGroup) {
	tw := g.Group("/twitch")
	tw.GET("/video", s.handleTwitchVideo)
}

// handleTwitchVideo returns full native metadata for a Twitch VOD.
func (s *Server) handleTwitchVideo(c *gin.Context) {
	rawURL := c.Query("url")
	if !provider.IsTwitchURL(rawURL) {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "URL must be a Twitch video URL"})
		return
	}
	s.serveNative(c, rawURL, extract.SingleItem)
}
