package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"vidgate/extract"
	"vidgate/provider"
)

func (s *Server) registerYouTubeRoutes(g *gin.RouterGroup) {
	yt := g.Group("/youtube")
	yt.GET("/channel/videos", s.handleYouTubeChannelVideos)
	yt.GET("/video", s.handleYouTubeVideo)
}

// handleYouTubeChannelVideos returns the flat entry list for a channel or
// playlist URL, in the engine's native shape.
func (s *Server) handleYouTubeChannelVideos(c *gin.Context) {
	rawURL := c.Query("url")
	if !provider.IsYouTubeURL(rawURL) {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "URL must be a YouTube channel or playlist URL"})
		return
	}
	s.serveNative(c, rawURL, extract.FlatListing)
}

// handleYouTubeVideo returns full native metadata for a single video.
func (s *Server) handleYouTubeVideo(c *gin.Context) {
	rawURL := c.Query("url")
	if !provider.IsYouTubeURL(rawURL) {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "URL must be a YouTube video URL"})
		return
	}
	s.serveNative(c, rawURL, extract.SingleItem)
}

// serveNative runs the engine for url and writes the sanitized native
// document. Engine failures surface as 502, an empty result as 404.
func (s *Server) serveNative(c *gin.Context, url string, intent extract.Intent) {
	profile := extract.BuildProfile(intent, url, s.cfg)
	raw, err := s.gw.Extract(c.Request.Context(), url, profile)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"detail": err.Error()})
		return
	}
	if raw == nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "No data extracted"})
		return
	}
	doc, err := extract.Sanitize(raw)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"detail": "engine returned malformed JSON: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, doc)
}
