// Package extract drives the external yt-dlp engine. The engine owns all
// scraping and extractor selection; this package only builds per-request
// profiles and hands back the engine's native JSON document.
package extract

import (
	"context"
	"strings"

	"vidgate/config"
)

// Intent selects how much of the target the engine should descend into.
type Intent int

const (
	// SingleItem extracts full metadata for one video/VOD.
	SingleItem Intent = iota
	// FlatListing extracts a shallow per-entry summary of a playlist,
	// channel or user feed without visiting each entry.
	FlatListing
)

// Profile is the per-request engine configuration. Built fresh for every
// call and never mutated afterwards. Download suppression and tolerance of
// formats-unavailable conditions are unconditional and live in the engine.
type Profile struct {
	// FlatPlaylist requests a shallow entry list instead of full
	// per-entry extraction.
	FlatPlaylist bool

	// ProxyURL routes engine traffic through a residential proxy when
	// non-empty.
	ProxyURL string

	// ExtractorArgs are provider-specific engine arguments, e.g.
	// "tiktok:device_id=...".
	ExtractorArgs []string
}

// Gateway is the narrow interface to the extraction engine. Extract blocks
// for the duration of the engine run and performs no retries. A nil result
// with a nil error means the engine produced nothing for the URL.
type Gateway interface {
	Extract(ctx context.Context, url string, profile Profile) ([]byte, error)
}

// BuildProfile maps an intent plus the target URL onto an engine profile.
// The URL is only inspected for provider hints; credentials come from cfg
// and their absence disables the corresponding feature rather than failing.
func BuildProfile(intent Intent, targetURL string, cfg *config.Config) Profile {
	p := Profile{
		FlatPlaylist: intent == FlatListing,
		ProxyURL:     cfg.ProxyURL(),
	}
	if cfg.TikTokDeviceID != "" && strings.Contains(strings.ToLower(targetURL), "tiktok") {
		p.ExtractorArgs = append(p.ExtractorArgs, "tiktok:device_id="+cfg.TikTokDeviceID)
	}
	return p
}
