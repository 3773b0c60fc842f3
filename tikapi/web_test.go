package tikapi

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c := NewClient("", zerolog.Nop())
	c.BaseURL = srv.URL
	return c
}

func hydrationPage(scope string) string {
	return fmt.Sprintf(
		`<html><head></head><body><script id="__UNIVERSAL_DATA_FOR_REHYDRATION__" type="application/json">{"__DEFAULT_SCOPE__":%s}</script></body></html>`,
		scope,
	)
}

func TestFetchUserDetail(t *testing.T) {
	page := hydrationPage(`{
		"webapp.app-context": {"language": "en"},
		"webapp.user-detail": {
			"userInfo": {
				"user": {"uniqueId": "khaby.lame", "secUid": "MS4wLjABAAAAabc"},
				"statsV2": {"followerCount": "1200", "heartCount": "99"}
			},
			"statusCode": 0
		}
	}`)
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/@khaby.lame", r.URL.Path)
		fmt.Fprint(w, page)
	}))

	detail, err := c.FetchUserDetail(context.Background(), "khaby.lame")
	require.NoError(t, err)
	require.True(t, detail.UserInfo.Exists())
	assert.Equal(t, int64(0), detail.StatusCode)

	profile := ProfileFromUserInfo(detail.UserInfo)
	assert.Equal(t, int64(1200), profile.UserInfo.StatsV2.FollowerCount)
	assert.Equal(t, "khaby.lame", profile.UserInfo.User.UniqueID)
}

func TestFetchUserDetailPrivateAccount(t *testing.T) {
	page := hydrationPage(`{
		"webapp.user-detail": {"statusCode": 10222, "statusMsg": "user is private"}
	}`)
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, page)
	}))

	detail, err := c.FetchUserDetail(context.Background(), "someone")
	require.NoError(t, err)
	assert.False(t, detail.HasUser())
	assert.Equal(t, int64(10222), detail.StatusCode)
	assert.Equal(t, "user is private", detail.StatusMsg)
}

func TestFetchUserDetailNullUserInfo(t *testing.T) {
	page := hydrationPage(`{
		"webapp.user-detail": {"userInfo": null, "statusCode": 10222}
	}`)
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, page)
	}))

	detail, err := c.FetchUserDetail(context.Background(), "someone")
	require.NoError(t, err)
	assert.False(t, detail.HasUser(), "null userInfo is not a user record")
	assert.Equal(t, int64(10222), detail.StatusCode)
}

func TestFetchUserDetailEmptyUserInfo(t *testing.T) {
	page := hydrationPage(`{
		"webapp.user-detail": {"userInfo": {}}
	}`)
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, page)
	}))

	detail, err := c.FetchUserDetail(context.Background(), "someone")
	require.NoError(t, err)
	assert.False(t, detail.HasUser(), "empty userInfo object is not a user record")
}

func TestFetchUserDetailFetchFailure(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))

	_, err := c.FetchUserDetail(context.Background(), "someone")
	assert.Error(t, err)
}

func TestFetchHashtagItemsFound(t *testing.T) {
	page := hydrationPage(`{
		"webapp.app-context": {"language": "en"},
		"webapp.challenge-detail": {
			"itemList": [
				{"id": "1", "desc": "#comedy gold", "stats": {"playCount": "10"}},
				"not an item",
				{"id": "2", "desc": "more #comedy"}
			]
		}
	}`)
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/tag/comedy", r.URL.Path)
		fmt.Fprint(w, page)
	}))

	posts, ok := c.FetchHashtagItems(context.Background(), "comedy")
	require.True(t, ok)
	require.Len(t, posts, 2)
	assert.Equal(t, "1", posts[0].ID)
	assert.Equal(t, int64(10), posts[0].StatsV2.PlayCount)
	assert.Equal(t, []TextExtra{{"comedy"}}, posts[0].TextExtra)
	assert.Equal(t, "2", posts[1].ID)
}

func TestFetchHashtagItemsEmptyListStillFound(t *testing.T) {
	page := hydrationPage(`{"webapp.challenge-detail": {"itemList": []}}`)
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, page)
	}))

	posts, ok := c.FetchHashtagItems(context.Background(), "comedy")
	assert.True(t, ok)
	assert.Empty(t, posts)
}

func TestFetchHashtagItemsNoEmbeddedList(t *testing.T) {
	// The usual shape today: scopes exist but none embeds an itemList.
	page := hydrationPage(`{
		"webapp.app-context": {"language": "en"},
		"webapp.biz-context": {"bizContext": {}}
	}`)
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, page)
	}))

	posts, ok := c.FetchHashtagItems(context.Background(), "comedy")
	assert.False(t, ok)
	assert.Nil(t, posts)
}

func TestFetchHashtagItemsFetchFailure(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))

	_, ok := c.FetchHashtagItems(context.Background(), "comedy")
	assert.False(t, ok)
}

func TestUniversalDataMissingScript(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "<html><body>captcha</body></html>")
	}))

	detail, err := c.FetchUserDetail(context.Background(), "someone")
	require.NoError(t, err)
	assert.False(t, detail.UserInfo.Exists())
	assert.Equal(t, int64(0), detail.StatusCode)
}
