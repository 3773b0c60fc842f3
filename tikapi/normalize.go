// Package tikapi reshapes TikTok extraction results into the stable
// TikAPI-style response schema served by the /tiktok routes.
package tikapi

import (
	"regexp"
	"strconv"

	"github.com/tidwall/gjson"
)

// Go's \w is ASCII-only; TikTok captions carry Unicode hashtags.
var hashtagRe = regexp.MustCompile(`#([\p{L}\p{N}_]+)`)

// Post is the normalized TikTok post record.
type Post struct {
	ID         string      `json:"id"`
	Desc       string      `json:"desc"`
	CreateTime int64       `json:"createTime"`
	StatsV2    PostStats   `json:"statsV2"`
	Video      PostVideo   `json:"video"`
	TextExtra  []TextExtra `json:"textExtra"`
	Author     PostAuthor  `json:"author"`
}

// PostStats carries view/like/comment counts. Values are ints when the
// native field was numeric or a digit-only string and pass through
// unchanged otherwise, so the field type stays open.
type PostStats struct {
	PlayCount    any `json:"playCount"`
	DiggCount    any `json:"diggCount"`
	CommentCount any `json:"commentCount"`
}

type PostVideo struct {
	Cover    string `json:"cover"`
	Duration int64  `json:"duration"`
}

type TextExtra struct {
	HashtagName string `json:"hashtagName"`
}

type PostAuthor struct {
	UniqueID string `json:"uniqueId"`
	Nickname string `json:"nickname"`
	SecUID   string `json:"secUid"`
}

// UserProfile is the normalized TikTok user profile response.
type UserProfile struct {
	UserInfo UserInfo `json:"userInfo"`
}

type UserInfo struct {
	StatsV2 UserStats `json:"statsV2"`
	User    User      `json:"user"`
}

type UserStats struct {
	FollowerCount any `json:"followerCount"`
	HeartCount    any `json:"heartCount"`
}

type User struct {
	UniqueID     string `json:"uniqueId"`
	Nickname     string `json:"nickname"`
	Signature    string `json:"signature"`
	AvatarLarger string `json:"avatarLarger"`
	SecUID       string `json:"secUid"`
}

// CoerceCount normalizes a count field that may arrive as a number, a
// numeric string, or not at all. Digit-only strings become ints, other
// strings pass through unchanged, absent/null becomes 0.
func CoerceCount(v gjson.Result) any {
	switch v.Type {
	case gjson.Number:
		return v.Int()
	case gjson.String:
		if isDigits(v.Str) {
			n, err := strconv.ParseInt(v.Str, 10, 64)
			if err == nil {
				return n
			}
		}
		return v.Str
	default:
		return 0
	}
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Hashtags scans free text for #word tokens and returns one record per
// occurrence, in order, duplicates and case preserved.
func Hashtags(desc string) []TextExtra {
	tags := []TextExtra{}
	for _, m := range hashtagRe.FindAllStringSubmatch(desc, -1) {
		tags = append(tags, TextExtra{HashtagName: m[1]})
	}
	return tags
}

// truthy reports whether v carries data. Native payloads use null, empty
// strings and empty objects interchangeably for "absent", so all of those
// count as missing, as do 0 and false.
func truthy(v gjson.Result) bool {
	if !v.Exists() {
		return false
	}
	switch v.Type {
	case gjson.Null, gjson.False:
		return false
	case gjson.String:
		return v.Str != ""
	case gjson.Number:
		return v.Num != 0
	case gjson.JSON:
		empty := true
		v.ForEach(func(_, _ gjson.Result) bool {
			empty = false
			return false
		})
		return !empty
	}
	return true
}

// firstOf returns the first field among the given paths that carries data,
// so an empty stats object or blank title falls through to its fallback.
func firstOf(doc gjson.Result, paths ...string) gjson.Result {
	for _, p := range paths {
		if v := doc.Get(p); truthy(v) {
			return v
		}
	}
	return gjson.Result{}
}

// WebItemToPost maps a TikTok web itemList entry (id, desc, createTime,
// stats, video, author) to the normalized post shape.
func WebItemToPost(item gjson.Result) Post {
	stats := firstOf(item, "stats", "statsV2")
	video := item.Get("video")
	author := firstOf(item, "author", "authorInfo")
	desc := item.Get("desc").String()

	cover := video.Get("cover")
	coverURL := ""
	if cover.IsObject() {
		coverURL = firstOf(cover, "urlList.0", "url_list.0").String()
	} else if cover.Type == gjson.String {
		coverURL = cover.Str
	}

	return Post{
		ID:         item.Get("id").String(),
		Desc:       desc,
		CreateTime: item.Get("createTime").Int(),
		StatsV2: PostStats{
			PlayCount:    CoerceCount(stats.Get("playCount")),
			DiggCount:    CoerceCount(stats.Get("diggCount")),
			CommentCount: CoerceCount(stats.Get("commentCount")),
		},
		Video: PostVideo{
			Cover:    coverURL,
			Duration: video.Get("duration").Int(),
		},
		TextExtra: Hashtags(desc),
		Author: PostAuthor{
			UniqueID: author.Get("uniqueId").String(),
			Nickname: author.Get("nickname").String(),
			SecUID:   author.Get("secUid").String(),
		},
	}
}

// EntryToPost maps a flat playlist entry produced by the engine's generic
// flattening to the normalized post shape.
func EntryToPost(entry gjson.Result) Post {
	desc := firstOf(entry, "title", "description").String()
	nickname := firstOf(entry, "channel", "uploader").String()

	return Post{
		ID:         entry.Get("id").String(),
		Desc:       desc,
		CreateTime: entry.Get("timestamp").Int(),
		StatsV2: PostStats{
			PlayCount:    CoerceCount(entry.Get("view_count")),
			DiggCount:    CoerceCount(entry.Get("like_count")),
			CommentCount: CoerceCount(entry.Get("comment_count")),
		},
		Video: PostVideo{
			Cover:    entry.Get("thumbnails.0.url").String(),
			Duration: entry.Get("duration").Int(),
		},
		TextExtra: Hashtags(desc),
		Author: PostAuthor{
			UniqueID: entry.Get("uploader").String(),
			Nickname: nickname,
			SecUID:   entry.Get("channel_id").String(),
		},
	}
}

// ProfileFromUserInfo shapes a native userInfo document into the stable
// user profile response. statsV2 is preferred over the legacy stats block.
func ProfileFromUserInfo(userInfo gjson.Result) UserProfile {
	user := userInfo.Get("user")
	stats := firstOf(userInfo, "statsV2", "stats")

	return UserProfile{
		UserInfo: UserInfo{
			StatsV2: UserStats{
				FollowerCount: CoerceCount(stats.Get("followerCount")),
				HeartCount:    CoerceCount(stats.Get("heartCount")),
			},
			User: User{
				UniqueID:     user.Get("uniqueId").String(),
				Nickname:     user.Get("nickname").String(),
				Signature:    user.Get("signature").String(),
				AvatarLarger: user.Get("avatarLarger").String(),
				SecUID:       user.Get("secUid").String(),
			},
		},
	}
}
