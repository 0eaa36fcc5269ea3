package model

type MediaType = string

const (
	TypeMovie MediaType = "movie"
	TypeTV    MediaType = "tv"
)

// Qualities lists the link-map keys the catalog knows about.
var Qualities = []string{"720p", "1080p", "2160p"}

type CastMember struct {
	Name      string  `json:"name"`
	Character string  `json:"character"`
	Image     *string `json:"image"`
}

type DownloadLink struct {
	URL      string `json:"url"`
	FileType string `json:"file_type"`
}

// Episode keeps one flat field per quality instead of nested link
// maps. The admin front end depends on this shape, so it stays flat
// even though the top-level record nests its links.
type Episode struct {
	EpisodeNumber any     `json:"episode_number"`
	EpisodeName   *string `json:"episode_name"`
	Video720p     *string `json:"video_720p"`
	Video1080p    *string `json:"video_1080p"`
	Video2160p    *string `json:"video_2160p"`
	Download720p  *string `json:"download_720p"`
	Download1080p *string `json:"download_1080p"`
	Download2160p *string `json:"download_2160p"`
	Torrent720p   *string `json:"torrent_720p"`
	Torrent1080p  *string `json:"torrent_1080p"`
	Torrent2160p  *string `json:"torrent_2160p"`
}

// Season's number is carried exactly as submitted; the season key is
// derived from it without checking that it is numeric.
type Season struct {
	SeasonNumber  any       `json:"season_number"`
	TotalEpisodes int       `json:"total_episodes"`
	Episodes      []Episode `json:"episodes"`
}

// Media is the canonical catalog record. Every field is always
// present; optional values are nil, link maps and cast are empty
// rather than nil so responses serialize uniformly.
type Media struct {
	ID            int64                   `json:"id"`
	Type          MediaType               `json:"type"`
	Title         string                  `json:"title"`
	Description   *string                 `json:"description"`
	Thumbnail     *string                 `json:"thumbnail"`
	ReleaseDate   *string                 `json:"release_date"`
	Language      *string                 `json:"language"`
	Rating        *float64                `json:"rating"`
	CastMembers   []CastMember            `json:"cast_members"`
	VideoLinks    map[string]string       `json:"video_links"`
	DownloadLinks map[string]DownloadLink `json:"download_links"`
	TorrentLinks  map[string]string       `json:"torrent_links"`
	TotalSeasons  *int                    `json:"total_seasons"`
	Seasons       map[string]Season       `json:"seasons"`
	Genres        []string                `json:"genres"`
}
