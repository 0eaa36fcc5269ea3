package normalizer

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	"github.com/venuraw/streambox/internal/model"
)

var ErrTitleRequired = errors.New("title is required")

// Submission is an admin payload before normalization. JSON-bearing
// fields arrive either as native structures or as strings holding
// serialized JSON, so they are kept raw until Normalize resolves them.
type Submission struct {
	Type        string `json:"type"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Thumbnail   string `json:"thumbnail"`
	ReleaseDate string `json:"release_date"`
	Language    string `json:"language"`

	Rating       any `json:"rating"`
	TotalSeasons any `json:"total_seasons"`

	Genres        json.RawMessage `json:"genres"`
	CastMembers   json.RawMessage `json:"cast_members"`
	VideoLinks    json.RawMessage `json:"video_links"`
	DownloadLinks json.RawMessage `json:"download_links"`
	TorrentLinks  json.RawMessage `json:"torrent_links"`
	Seasons       json.RawMessage `json:"seasons"`

	// Flat per-quality fields, used only when the nested map for the
	// category is absent.
	Video720p     string `json:"video_720p"`
	Video1080p    string `json:"video_1080p"`
	Video2160p    string `json:"video_2160p"`
	Download720p  string `json:"download_720p"`
	Download1080p string `json:"download_1080p"`
	Download2160p string `json:"download_2160p"`
	Torrent720p   string `json:"torrent_720p"`
	Torrent1080p  string `json:"torrent_1080p"`
	Torrent2160p  string `json:"torrent_2160p"`
}

// Normalize validates and coerces a submission into a fully shaped
// media record. The empty title is the only rejection; every other
// malformed field degrades to its default.
func Normalize(sub Submission) (model.Media, error) {
	title := strings.TrimSpace(sub.Title)
	if title == "" {
		return model.Media{}, ErrTitleRequired
	}

	m := model.Media{
		Type:         sub.Type,
		Title:        title,
		Description:  optional(sub.Description),
		Thumbnail:    optional(sub.Thumbnail),
		ReleaseDate:  optional(sub.ReleaseDate),
		Language:     optional(sub.Language),
		Rating:       toFloat(sub.Rating),
		TotalSeasons: toInt(sub.TotalSeasons),
		Genres:       ParseGenres(sub.Genres),
		VideoLinks: linkMap(sub.VideoLinks, map[string]string{
			"720p":  sub.Video720p,
			"1080p": sub.Video1080p,
			"2160p": sub.Video2160p,
		}),
		TorrentLinks: linkMap(sub.TorrentLinks, map[string]string{
			"720p":  sub.Torrent720p,
			"1080p": sub.Torrent1080p,
			"2160p": sub.Torrent2160p,
		}),
		DownloadLinks: downloadLinkMap(sub.DownloadLinks, map[string]string{
			"720p":  sub.Download720p,
			"1080p": sub.Download1080p,
			"2160p": sub.Download2160p,
		}),
	}

	m.CastMembers = []model.CastMember{}
	decodeFlexible(sub.CastMembers, &m.CastMembers)
	if m.CastMembers == nil {
		m.CastMembers = []model.CastMember{}
	}

	var seasons map[string]model.Season
	decodeFlexible(sub.Seasons, &seasons)
	m.Seasons = seasons

	return m, nil
}

// linkMap builds the canonical map for the video/torrent categories:
// a present nested map wins, otherwise non-blank flat fields are
// collected, one entry per quality.
func linkMap(raw json.RawMessage, flat map[string]string) map[string]string {
	if present(raw) {
		out := map[string]string{}
		decodeFlexible(raw, &out)
		if out == nil {
			out = map[string]string{}
		}
		return out
	}

	out := map[string]string{}
	for quality, value := range flat {
		if v := strings.TrimSpace(value); v != "" {
			out[quality] = v
		}
	}
	return out
}

const synthesizedFileType = "webrip"

// downloadLinkMap is the download-category variant: flat fields are
// wrapped into {url, file_type} objects with a fixed file-type tag.
func downloadLinkMap(raw json.RawMessage, flat map[string]string) map[string]model.DownloadLink {
	if present(raw) {
		out := map[string]model.DownloadLink{}
		decodeFlexible(raw, &out)
		if out == nil {
			out = map[string]model.DownloadLink{}
		}
		return out
	}

	out := map[string]model.DownloadLink{}
	for quality, value := range flat {
		if v := strings.TrimSpace(value); v != "" {
			out[quality] = model.DownloadLink{URL: v, FileType: synthesizedFileType}
		}
	}
	return out
}

// ParseGenres accepts either a JSON sequence of names or a single
// comma-separated string.
func ParseGenres(raw json.RawMessage) []string {
	if !present(raw) {
		return []string{}
	}

	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		if list == nil {
			return []string{}
		}
		return list
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return []string{}
	}

	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// decodeFlexible resolves a field that may be a native JSON value or a
// string containing serialized JSON. It never fails: an undecodable
// value simply leaves dst untouched.
func decodeFlexible(raw json.RawMessage, dst any) {
	if !present(raw) {
		return
	}

	data := []byte(raw)
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if strings.TrimSpace(s) == "" {
			return
		}
		data = []byte(s)
	}

	_ = json.Unmarshal(data, dst)
}

func present(raw json.RawMessage) bool {
	return len(raw) > 0 && string(raw) != "null"
}

func optional(s string) *string {
	if v := strings.TrimSpace(s); v != "" {
		return &v
	}
	return nil
}

func toFloat(v any) *float64 {
	switch t := v.(type) {
	case float64:
		return &t
	case int:
		f := float64(t)
		return &f
	case json.Number:
		if f, err := t.Float64(); err == nil {
			return &f
		}
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(t), 64); err == nil {
			return &f
		}
	}
	return nil
}

func toInt(v any) *int {
	switch t := v.(type) {
	case float64:
		n := int(t)
		return &n
	case int:
		return &t
	case json.Number:
		if n, err := t.Int64(); err == nil {
			i := int(n)
			return &i
		}
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(t)); err == nil {
			return &n
		}
	}
	return nil
}
