package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vidgate/config"
)

func TestBuildProfileIntents(t *testing.T) {
	cfg := &config.Config{}

	single := BuildProfile(SingleItem, "https://www.youtube.com/watch?v=abc", cfg)
	assert.False(t, single.FlatPlaylist)
	assert.Empty(t, single.ProxyURL)
	assert.Empty(t, single.ExtractorArgs)

	flat := BuildProfile(FlatListing, "https://www.youtube.com/@chan/videos", cfg)
	assert.True(t, flat.FlatPlaylist)
}

func TestBuildProfileProxy(t *testing.T) {
	cfg := &config.Config{ProxyCredential: "user-abc:p@ss word"}
	p := BuildProfile(SingleItem, "https://www.twitch.tv/videos/1", cfg)
	assert.Equal(t, "http://user-abc%3Ap%40ss+word@gate.smartproxy.com:10001", p.ProxyURL)
}

func TestBuildProfileTikTokDeviceID(t *testing.T) {
	cfg := &config.Config{TikTokDeviceID: "7318517321748022790"}

	p := BuildProfile(FlatListing, "https://www.tiktok.com/tag/comedy", cfg)
	require.Len(t, p.ExtractorArgs, 1)
	assert.Equal(t, "tiktok:device_id=7318517321748022790", p.ExtractorArgs[0])

	// sec_uid pseudo-URLs are still TikTok targets
	p = BuildProfile(FlatListing, "tiktokuser:MS4wLjABAAAA", cfg)
	require.Len(t, p.ExtractorArgs, 1)

	// other providers never get TikTok args
	p = BuildProfile(SingleItem, "https://www.youtube.com/watch?v=abc", cfg)
	assert.Empty(t, p.ExtractorArgs)

	// no device id configured means no args, not a failure
	p = BuildProfile(FlatListing, "https://www.tiktok.com/@user", &config.Config{})
	assert.Empty(t, p.ExtractorArgs)
}

func TestSanitizeStripsPrivateKeys(t *testing.T) {
	raw := []byte(`{
		"_type": "playlist",
		"_version": {"version": "2024.01.01"},
		"id": "UCabc",
		"entries": [
			{"_type": "url", "id": "v1", "title": "first"},
			{"id": "v2", "title": "second"}
		]
	}`)

	doc, err := Sanitize(raw)
	require.NoError(t, err)

	assert.NotContains(t, doc, "_type")
	assert.NotContains(t, doc, "_version")
	assert.Equal(t, "UCabc", doc["id"])

	entries, ok := doc["entries"].([]any)
	require.True(t, ok, "entries must survive sanitizing")
	require.Len(t, entries, 2)
	first := entries[0].(map[string]any)
	assert.NotContains(t, first, "_type")
	assert.Equal(t, "first", first["title"])
}

func TestSanitizeRejectsNonObject(t *testing.T) {
	_, err := Sanitize([]byte(`[1,2,3]`))
	assert.Error(t, err)
}
