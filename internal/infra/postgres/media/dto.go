package infra_postgres_media

import (
	"database/sql"
	"encoding/json"

	"github.com/venuraw/streambox/internal/model"
)

// MediaDB mirrors the media table. Structured sub-fields live in TEXT
// columns as serialized JSON.
type MediaDB struct {
	ID            int64           `db:"id"`
	Type          sql.NullString  `db:"type"`
	Title         string          `db:"title"`
	Description   sql.NullString  `db:"description"`
	Thumbnail     sql.NullString  `db:"thumbnail"`
	ReleaseDate   sql.NullString  `db:"release_date"`
	Language      sql.NullString  `db:"language"`
	Rating        sql.NullFloat64 `db:"rating"`
	CastMembers   sql.NullString  `db:"cast_members"`
	VideoLinks    sql.NullString  `db:"video_links"`
	DownloadLinks sql.NullString  `db:"download_links"`
	TorrentLinks  sql.NullString  `db:"torrent_links"`
	TotalSeasons  sql.NullInt64   `db:"total_seasons"`
	Seasons       sql.NullString  `db:"seasons"`
	Genres        sql.NullString  `db:"genres"`
}

// ToDomain decodes the serialized sub-fields back to structured form.
// Each field is decoded independently: a corrupt or legacy value
// yields that field's default without disturbing the others.
func (m *MediaDB) ToDomain() model.Media {
	out := model.Media{
		ID:            m.ID,
		Type:          m.Type.String,
		Title:         m.Title,
		Description:   fromNullString(m.Description),
		Thumbnail:     fromNullString(m.Thumbnail),
		ReleaseDate:   fromNullString(m.ReleaseDate),
		Language:      fromNullString(m.Language),
		Rating:        fromNullFloat(m.Rating),
		TotalSeasons:  fromNullInt(m.TotalSeasons),
		CastMembers:   []model.CastMember{},
		VideoLinks:    map[string]string{},
		DownloadLinks: map[string]model.DownloadLink{},
		TorrentLinks:  map[string]string{},
		Genres:        []string{},
	}

	if cast, ok := decodeField[[]model.CastMember](m.CastMembers); ok && cast != nil {
		out.CastMembers = cast
	}
	if links, ok := decodeField[map[string]string](m.VideoLinks); ok && links != nil {
		out.VideoLinks = links
	}
	if links, ok := decodeField[map[string]model.DownloadLink](m.DownloadLinks); ok && links != nil {
		out.DownloadLinks = links
	}
	if links, ok := decodeField[map[string]string](m.TorrentLinks); ok && links != nil {
		out.TorrentLinks = links
	}
	if seasons, ok := decodeField[map[string]model.Season](m.Seasons); ok {
		out.Seasons = seasons
	}
	if genres, ok := decodeField[[]string](m.Genres); ok && genres != nil {
		out.Genres = genres
	}

	return out
}

func FromDomain(m model.Media) MediaDB {
	return MediaDB{
		ID:            m.ID,
		Type:          toNullString(&m.Type),
		Title:         m.Title,
		Description:   toNullString(m.Description),
		Thumbnail:     toNullString(m.Thumbnail),
		ReleaseDate:   toNullString(m.ReleaseDate),
		Language:      toNullString(m.Language),
		Rating:        toNullFloat(m.Rating),
		TotalSeasons:  toNullInt(m.TotalSeasons),
		CastMembers:   encodeField(m.CastMembers),
		VideoLinks:    encodeField(m.VideoLinks),
		DownloadLinks: encodeField(m.DownloadLinks),
		TorrentLinks:  encodeField(m.TorrentLinks),
		Seasons:       encodeField(m.Seasons),
		Genres:        encodeField(m.Genres),
	}
}

func decodeField[T any](s sql.NullString) (T, bool) {
	var out T
	if !s.Valid || s.String == "" {
		return out, true
	}
	if err := json.Unmarshal([]byte(s.String), &out); err != nil {
		var zero T
		return zero, false
	}
	return out, true
}

func encodeField(v any) sql.NullString {
	data, err := json.Marshal(v)
	if err != nil {
		return sql.NullString{}
	}
	return sql.NullString{String: string(data), Valid: true}
}

func fromNullString(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	v := s.String
	return &v
}

func toNullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func fromNullFloat(f sql.NullFloat64) *float64 {
	if !f.Valid {
		return nil
	}
	v := f.Float64
	return &v
}

func toNullFloat(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}

func fromNullInt(i sql.NullInt64) *int {
	if !i.Valid {
		return nil
	}
	v := int(i.Int64)
	return &v
}

func toNullInt(i *int) sql.NullInt64 {
	if i == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*i), Valid: true}
}
