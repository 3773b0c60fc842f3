package main

import (
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"vidgate/api"
	"vidgate/config"
	"vidgate/extract"
)

func main() {
	// Load environment variables from .env if present (non-fatal if missing)
	_ = godotenv.Load()

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()

	cfg := config.FromEnv()
	if cfg.Secret == "" {
		log.Warn().Msg("VIDGATE_SECRET not set; all authenticated routes will answer 503")
	}

	engine := extract.NewEngine(log)
	server := api.NewServer(cfg, engine, log)
	r := server.Router()

	log.Info().Str("addr", cfg.Addr()).Msg("starting metadata API server")
	log.Info().Msg("routes: GET /health, /youtube/channel/videos, /youtube/video, /twitch/video, /tiktok/user, /tiktok/user/posts, /tiktok/hashtag/posts")

	if err := http.ListenAndServe(cfg.Addr(), r); err != nil {
		log.Fatal().Err(err).Msg("server error")
	}
}
