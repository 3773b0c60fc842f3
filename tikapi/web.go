package tikapi

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"
	"github.com/tidwall/gjson"
)

const (
	defaultBaseURL = "https://www.tiktok.com"
	fetchTimeout   = 20 * time.Second

	// universalDataID is the script tag TikTok pages embed their
	// hydration payload under.
	universalDataID = "__UNIVERSAL_DATA_FOR_REHYDRATION__"

	browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"
)

// UserDetail is the webapp.user-detail scope of a TikTok user page. A zero
// UserInfo with a non-zero StatusCode means the page loaded but reported an
// upstream condition (10222 = private account).
type UserDetail struct {
	UserInfo   gjson.Result
	StatusCode int64
	StatusMsg  string
}

// HasUser reports whether the page embedded an actual user record. Pages
// for private or missing accounts carry a null or empty userInfo alongside
// the status code, which counts as no record.
func (d UserDetail) HasUser() bool {
	return truthy(d.UserInfo)
}

// Client fetches TikTok web pages and reads their embedded hydration data.
// It performs plain GETs only; everything heavier goes through the engine.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client

	log zerolog.Logger
}

// NewClient returns a Client. proxyURL, when non-empty, routes page fetches
// through the same residential proxy the engine uses.
func NewClient(proxyURL string, log zerolog.Logger) *Client {
	transport := &http.Transport{}
	if proxyURL != "" {
		if parsed, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(parsed)
		}
	}
	return &Client{
		BaseURL: defaultBaseURL,
		HTTPClient: &http.Client{
			Timeout:   fetchTimeout,
			Transport: transport,
		},
		log: log,
	}
}

// fetchPage downloads a TikTok page. Failures are reported as errors; the
// callers decide whether that means not-found or fallback.
func (c *Client) fetchPage(ctx context.Context, pageURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", browserUserAgent)
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("page returned %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read page: %w", err)
	}
	return string(body), nil
}

// universalData parses the page and returns the __DEFAULT_SCOPE__ document
// of the embedded hydration payload, or a zero result when absent.
func universalData(page string) gjson.Result {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return gjson.Result{}
	}
	blob := doc.Find("script#" + universalDataID).First().Text()
	if blob == "" {
		return gjson.Result{}
	}
	return gjson.Get(blob, `__DEFAULT_SCOPE__`)
}

// FetchUserDetail downloads a user's page and returns the user-detail
// scope. A fetch or parse failure surfaces as an error; the route treats it
// the same as a page without user data.
func (c *Client) FetchUserDetail(ctx context.Context, username string) (UserDetail, error) {
	pageURL := c.BaseURL + "/@" + url.PathEscape(username)
	page, err := c.fetchPage(ctx, pageURL)
	if err != nil {
		c.log.Warn().Str("username", username).Err(err).Msg("user page fetch failed")
		return UserDetail{}, err
	}

	detail := universalData(page).Get(`webapp\.user-detail`)
	return UserDetail{
		UserInfo:   detail.Get("userInfo"),
		StatusCode: detail.Get("statusCode").Int(),
		StatusMsg:  strings.TrimSpace(detail.Get("statusMsg").String()),
	}, nil
}

// FetchHashtagItems downloads a tag page and, when any hydration scope
// embeds an itemList, maps it to normalized posts. ok is false when no
// embedded list was found and the caller should fall back to the engine's
// listing path. Tag pages today usually embed no itemList, but the fast
// path stays: when it hits, it avoids the mobile API entirely.
func (c *Client) FetchHashtagItems(ctx context.Context, tag string) (posts []Post, ok bool) {
	pageURL := c.BaseURL + "/tag/" + url.PathEscape(tag)
	page, err := c.fetchPage(ctx, pageURL)
	if err != nil {
		c.log.Warn().Str("tag", tag).Err(err).Msg("tag page fetch failed")
		return nil, false
	}

	universalData(page).ForEach(func(_, scope gjson.Result) bool {
		if !scope.IsObject() {
			return true
		}
		list := scope.Get("itemList")
		if !list.Exists() {
			return true
		}
		posts = []Post{}
		for _, item := range list.Array() {
			if item.IsObject() {
				posts = append(posts, WebItemToPost(item))
			}
		}
		ok = true
		return false
	})
	return posts, ok
}
