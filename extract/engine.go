package extract

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/lrstanley/go-ytdlp"
	"github.com/rs/zerolog"
)

// Engine is the yt-dlp backed Gateway implementation.
type Engine struct {
	log zerolog.Logger
}

// NewEngine returns a Gateway backed by the yt-dlp binary.
func NewEngine(log zerolog.Logger) *Engine {
	return &Engine{log: log}
}

// Extract runs yt-dlp against url with the given profile and returns the
// native JSON document it printed. Media download is always suppressed.
func (e *Engine) Extract(ctx context.Context, url string, profile Profile) ([]byte, error) {
	dl := ytdlp.New().
		SkipDownload().
		Quiet().
		NoWarnings().
		IgnoreNoFormatsError().
		DumpSingleJSON()

	if profile.FlatPlaylist {
		dl = dl.FlatPlaylist()
	}
	if profile.ProxyURL != "" {
		dl = dl.Proxy(profile.ProxyURL)
	}
	for _, arg := range profile.ExtractorArgs {
		dl = dl.ExtractorArgs(arg)
	}

	start := time.Now()
	res, err := dl.Run(ctx, url)
	e.log.Debug().
		Str("url", url).
		Bool("flat", profile.FlatPlaylist).
		Dur("took", time.Since(start)).
		Err(err).
		Msg("engine run")
	if err != nil {
		if res != nil && strings.TrimSpace(res.Stderr) != "" {
			return nil, fmt.Errorf("yt-dlp: %w: %s", err, strings.TrimSpace(res.Stderr))
		}
		return nil, fmt.Errorf("yt-dlp: %w", err)
	}

	out := strings.TrimSpace(res.Stdout)
	if out == "" || out == "null" {
		return nil, nil
	}
	return []byte(out), nil
}
