package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"vidgate/config"
	"vidgate/extract"
	"vidgate/tikapi"
)

// Server wires the configuration, the extraction gateway and the TikTok
// web client into the HTTP surface.
type Server struct {
	cfg *config.Config
	gw  extract.Gateway
	tik *tikapi.Client
	log zerolog.Logger
}

// NewServer creates an API server. The TikTok web client shares the
// residential proxy configured for the engine.
func NewServer(cfg *config.Config, gw extract.Gateway, log zerolog.Logger) *Server {
	return &Server{
		cfg: cfg,
		gw:  gw,
		tik: tikapi.NewClient(cfg.ProxyURL(), log),
		log: log,
	}
}

// Router constructs a Gin engine with registered routes. /health is
// unauthenticated; everything else sits behind the bearer gate.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(s.requestLogger())

	r.GET("/health", handleHealth)

	authed := r.Group("/", RequireBearer(s.cfg.Secret))
	s.registerYouTubeRoutes(authed)
	s.registerTwitchRoutes(authed)
	s.registerTikTokRoutes(authed)
	return r
}

func handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("took", time.Since(start)).
			Msg("request")
	}
}
