package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/tidwall/gjson"

	"vidgate/extract"
	"vidgate/tikapi"
)

const deviceIDRemediation = "Hashtag posts require the TikTok mobile API. " +
	"Set TIKTOK_DEVICE_ID in the environment to enable it. " +
	"User profile and user posts work without it."

const signatureRemediation = "TikTok mobile API returned an empty or invalid response " +
	"(signature required). Hashtag posts are not supported without a valid signature."

// Engine failure signatures that mean the mobile API is unavailable rather
// than a generic upstream error.
var (
	deviceIDSignatures  = []string{"No working app info", "marked as broken"}
	signatureSignatures = []string{"Failed to parse JSON", "Expecting value", "empty response", "signature may be required"}
)

func (s *Server) registerTikTokRoutes(g *gin.RouterGroup) {
	tt := g.Group("/tiktok")
	tt.GET("/user", s.handleTikTokUser)
	tt.GET("/user/posts", s.handleTikTokUserPosts)
	tt.GET("/hashtag/posts", s.handleTikTokHashtagPosts)
}

// handleTikTokUser returns a user profile in the stable userInfo shape.
func (s *Server) handleTikTokUser(c *gin.Context) {
	username := strings.TrimSpace(c.Query("username"))
	if username == "" {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "username is required"})
		return
	}

	detail, err := s.tik.FetchUserDetail(c.Request.Context(), username)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "User not found or page unavailable"})
		return
	}
	if !detail.HasUser() {
		if detail.StatusCode == 10222 {
			c.JSON(http.StatusForbidden, gin.H{"detail": "This user's account is private"})
			return
		}
		msg := detail.StatusMsg
		if msg == "" {
			msg = "User not found or page unavailable"
		}
		c.JSON(http.StatusNotFound, gin.H{"detail": msg})
		return
	}

	c.JSON(http.StatusOK, tikapi.ProfileFromUserInfo(detail.UserInfo))
}

type userPostsQuery struct {
	Username string `form:"username"`
	SecUID   string `form:"sec_uid"`
	Count    int    `form:"count,default=30" binding:"min=1,max=100"`
}

// handleTikTokUserPosts returns a user's posts via the engine's flat
// listing. Exactly one of username/sec_uid selects the user.
func (s *Server) handleTikTokUserPosts(c *gin.Context) {
	var q userPostsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}
	if q.Username == "" && q.SecUID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Provide either username or sec_uid"})
		return
	}
	if q.Username != "" && q.SecUID != "" {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Provide only one of username or sec_uid"})
		return
	}

	url := "tiktokuser:" + q.SecUID
	if q.Username != "" {
		url = "https://www.tiktok.com/@" + q.Username
	}

	profile := extract.BuildProfile(extract.FlatListing, url, s.cfg)
	raw, err := s.gw.Extract(c.Request.Context(), url, profile)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"detail": err.Error()})
		return
	}
	if raw == nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "No data extracted"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"itemList": entriesToPosts(raw, q.Count)})
}

type hashtagPostsQuery struct {
	Name  string `form:"name"`
	Count int    `form:"count,default=30" binding:"min=1,max=100"`
}

// handleTikTokHashtagPosts returns posts for a hashtag. The tag page's
// embedded data is tried first; only when it embeds nothing does the
// mobile-API-backed listing run.
func (s *Server) handleTikTokHashtagPosts(c *gin.Context) {
	var q hashtagPostsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}
	tag := strings.TrimLeft(strings.TrimSpace(q.Name), "#")
	if tag == "" {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "name is required"})
		return
	}

	if posts, ok := s.tik.FetchHashtagItems(c.Request.Context(), tag); ok {
		c.JSON(http.StatusOK, gin.H{"itemList": capPosts(posts, q.Count)})
		return
	}

	if s.cfg.TikTokDeviceID == "" {
		c.JSON(http.StatusServiceUnavailable, gin.H{"detail": deviceIDRemediation})
		return
	}

	url := "https://www.tiktok.com/tag/" + tag
	profile := extract.BuildProfile(extract.FlatListing, url, s.cfg)
	raw, err := s.gw.Extract(c.Request.Context(), url, profile)
	if err != nil {
		status, detail := mapMobileError(err)
		c.JSON(status, gin.H{"detail": detail})
		return
	}
	if raw == nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "No data extracted"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"itemList": entriesToPosts(raw, q.Count)})
}

// mapMobileError distinguishes mobile-API unavailability from generic
// engine failures by matching known message signatures.
func mapMobileError(err error) (int, string) {
	msg := err.Error()
	for _, sig := range deviceIDSignatures {
		if strings.Contains(msg, sig) {
			return http.StatusServiceUnavailable, deviceIDRemediation
		}
	}
	for _, sig := range signatureSignatures {
		if strings.Contains(msg, sig) {
			return http.StatusServiceUnavailable, signatureRemediation
		}
	}
	return http.StatusBadGateway, msg
}

// entriesToPosts maps the entries of a flat native listing to normalized
// posts, capped at count.
func entriesToPosts(raw []byte, count int) []tikapi.Post {
	posts := []tikapi.Post{}
	for _, entry := range gjson.GetBytes(raw, "entries").Array() {
		if entry.IsObject() {
			posts = append(posts, tikapi.EntryToPost(entry))
		}
	}
	return capPosts(posts, count)
}

func capPosts(posts []tikapi.Post, count int) []tikapi.Post {
	if posts == nil {
		return []tikapi.Post{}
	}
	if len(posts) > count {
		return posts[:count]
	}
	return posts
}
