package seasons

import (
	"fmt"
	"strconv"

	"github.com/venuraw/streambox/internal/model"
)

// EpisodeSubmission is an admin episode payload. Links arrive as
// nested per-category maps and are flattened into the stored episode.
type EpisodeSubmission struct {
	SeasonNumber  any               `json:"season_number"`
	EpisodeNumber any               `json:"episode_number"`
	EpisodeName   *string           `json:"episode_name"`
	VideoLinks    map[string]string `json:"video_links"`
	DownloadLinks map[string]string `json:"download_links"`
	TorrentLinks  map[string]string `json:"torrent_links"`
}

// Merge appends the submitted episode to its season and recomputes the
// episode count. Episodes are never deduplicated or reordered, and no
// season other than the target one is touched. The returned map is the
// full seasons structure, ready for an atomic replace.
func Merge(existing map[string]model.Season, sub EpisodeSubmission) map[string]model.Season {
	if existing == nil {
		existing = map[string]model.Season{}
	}

	key := Key(sub.SeasonNumber)
	season, ok := existing[key]
	if !ok {
		season = model.Season{
			SeasonNumber:  sub.SeasonNumber,
			TotalEpisodes: 0,
			Episodes:      []model.Episode{},
		}
	}

	season.Episodes = append(season.Episodes, buildEpisode(sub))
	season.TotalEpisodes = len(season.Episodes)
	existing[key] = season

	return existing
}

// Key derives the seasons-map key from a season number. The value is
// not validated: non-numeric input yields keys like "season_abc".
func Key(seasonNumber any) string {
	return "season_" + formatNumber(seasonNumber)
}

// formatNumber prints whole floats without a fractional part so JSON
// numbers (always decoded as float64) keep producing "season_1".
func formatNumber(v any) string {
	if f, ok := v.(float64); ok && f == float64(int64(f)) {
		return strconv.FormatInt(int64(f), 10)
	}
	return fmt.Sprint(v)
}

func buildEpisode(sub EpisodeSubmission) model.Episode {
	return model.Episode{
		EpisodeNumber: sub.EpisodeNumber,
		EpisodeName:   sub.EpisodeName,
		Video720p:     pick(sub.VideoLinks, "720p"),
		Video1080p:    pick(sub.VideoLinks, "1080p"),
		Video2160p:    pick(sub.VideoLinks, "2160p"),
		Download720p:  pick(sub.DownloadLinks, "720p"),
		Download1080p: pick(sub.DownloadLinks, "1080p"),
		Download2160p: pick(sub.DownloadLinks, "2160p"),
		Torrent720p:   pick(sub.TorrentLinks, "720p"),
		Torrent1080p:  pick(sub.TorrentLinks, "1080p"),
		Torrent2160p:  pick(sub.TorrentLinks, "2160p"),
	}
}

func pick(links map[string]string, quality string) *string {
	if v, ok := links[quality]; ok {
		return &v
	}
	return nil
}
