package infra_postgres_media

import (
	"context"
	"database/sql"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/venuraw/streambox/internal/model"
)

var mediaColumns = []string{
	"id", "type", "title", "description", "thumbnail", "release_date", "language",
	"rating", "cast_members", "video_links", "download_links", "torrent_links",
	"total_seasons", "seasons", "genres",
}

func initRepository(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return New(sqlx.NewDb(db, "sqlmock")), mock
}

func sampleMedia() model.Media {
	rating := 8.8
	return model.Media{
		Type:          model.TypeMovie,
		Title:         "Inception",
		Rating:        &rating,
		CastMembers:   []model.CastMember{{Name: "A", Character: "B"}},
		VideoLinks:    map[string]string{"720p": "http://x/a.mp4"},
		DownloadLinks: map[string]model.DownloadLink{},
		TorrentLinks:  map[string]string{},
		Genres:        []string{"Sci-Fi"},
	}
}

func TestStoreReturnsAssignedID(t *testing.T) {
	repository, mock := initRepository(t)

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO media").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(42)))
	mock.ExpectCommit()

	id, err := repository.Store(context.Background(), sampleMedia())
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreRollsBackOnFailure(t *testing.T) {
	repository, mock := initRepository(t)

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO media").
		WillReturnError(sql.ErrConnDone)
	mock.ExpectRollback()

	_, err := repository.Store(context.Background(), sampleMedia())
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateNotFound(t *testing.T) {
	repository, mock := initRepository(t)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE media SET").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	m := sampleMedia()
	m.ID = 99

	err := repository.Update(context.Background(), m)
	assert.ErrorIs(t, err, ErrMediaNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateCommits(t *testing.T) {
	repository, mock := initRepository(t)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE media SET").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	m := sampleMedia()
	m.ID = 7

	require.NoError(t, repository.Update(context.Background(), m))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMutateSeasonsMergesAndWritesBack(t *testing.T) {
	repository, mock := initRepository(t)

	stored := `{"season_1":{"season_number":1,"total_episodes":1,"episodes":[{"episode_number":1}]}}`

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT seasons FROM media WHERE id = $1 AND type = 'tv'")).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"seasons"}).AddRow(stored))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE media SET seasons = $1 WHERE id = $2")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	var seen map[string]model.Season
	err := repository.MutateSeasons(context.Background(), 5, func(current map[string]model.Season) map[string]model.Season {
		seen = current
		return current
	})
	require.NoError(t, err)
	require.Contains(t, seen, "season_1")
	assert.Equal(t, 1, seen["season_1"].TotalEpisodes)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMutateSeasonsCorruptValueStartsEmpty(t *testing.T) {
	repository, mock := initRepository(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT seasons FROM media").
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"seasons"}).AddRow("{corrupt"))
	mock.ExpectExec("UPDATE media SET seasons").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repository.MutateSeasons(context.Background(), 5, func(current map[string]model.Season) map[string]model.Season {
		assert.Empty(t, current)
		return current
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMutateSeasonsNotFound(t *testing.T) {
	repository, mock := initRepository(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT seasons FROM media").
		WithArgs(int64(5)).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	err := repository.MutateSeasons(context.Background(), 5, func(current map[string]model.Season) map[string]model.Season {
		t.Fatal("mutate must not run for a missing record")
		return current
	})
	assert.ErrorIs(t, err, ErrMediaNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoadByIDDecodesStoredJSON(t *testing.T) {
	repository, mock := initRepository(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM media WHERE id = $1")).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(mediaColumns).AddRow(
			int64(1), "movie", "Inception", "desc", nil, "2010-07-16", "en",
			8.8, `[{"name":"A","character":"B","image":null}]`,
			`{"720p":"http://x/a.mp4"}`,
			`{"1080p":{"url":"http://x/b.mp4","file_type":"webrip"}}`,
			`{}`, nil, nil, `["Sci-Fi"]`,
		))

	m, err := repository.LoadByID(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, "Inception", m.Title)
	assert.Equal(t, []model.CastMember{{Name: "A", Character: "B"}}, m.CastMembers)
	assert.Equal(t, map[string]string{"720p": "http://x/a.mp4"}, m.VideoLinks)
	assert.Equal(t, map[string]model.DownloadLink{
		"1080p": {URL: "http://x/b.mp4", FileType: "webrip"},
	}, m.DownloadLinks)
	assert.Nil(t, m.Seasons)
	assert.Equal(t, []string{"Sci-Fi"}, m.Genres)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// A corrupt stored value is replaced by the field default without
// spoiling the rest of the record.
func TestLoadByIDToleratesCorruptField(t *testing.T) {
	repository, mock := initRepository(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM media WHERE id = $1")).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(mediaColumns).AddRow(
			int64(1), "movie", "Inception", nil, nil, nil, nil,
			nil, `{not json`, `{"720p":"http://x/a.mp4"}`,
			nil, nil, nil, nil, `["Sci-Fi"]`,
		))

	m, err := repository.LoadByID(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, []model.CastMember{}, m.CastMembers)
	assert.Equal(t, map[string]string{"720p": "http://x/a.mp4"}, m.VideoLinks)
	assert.Equal(t, []string{"Sci-Fi"}, m.Genres)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoadByIDNotFound(t *testing.T) {
	repository, mock := initRepository(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM media WHERE id = $1")).
		WithArgs(int64(404)).
		WillReturnError(sql.ErrNoRows)

	_, err := repository.LoadByID(context.Background(), 404)
	assert.ErrorIs(t, err, ErrMediaNotFound)
}

func TestLoadOrdersNewestFirst(t *testing.T) {
	repository, mock := initRepository(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM media ORDER BY id DESC")).
		WillReturnRows(sqlmock.NewRows(mediaColumns).
			AddRow(int64(2), "tv", "Second", nil, nil, nil, nil, nil, nil, nil, nil, nil, nil, nil, nil).
			AddRow(int64(1), "movie", "First", nil, nil, nil, nil, nil, nil, nil, nil, nil, nil, nil, nil))

	media, err := repository.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, media, 2)
	assert.Equal(t, int64(2), media[0].ID)
	assert.Equal(t, int64(1), media[1].ID)
}

func TestDeleteByID(t *testing.T) {
	testCases := []struct {
		name         string
		rowsAffected int64
		expectError  error
	}{
		{name: "deletes existing record", rowsAffected: 1},
		{name: "missing record", rowsAffected: 0, expectError: ErrMediaNotFound},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			repository, mock := initRepository(t)

			mock.ExpectBegin()
			mock.ExpectExec(regexp.QuoteMeta("DELETE FROM media WHERE id = $1")).
				WithArgs(int64(3)).
				WillReturnResult(sqlmock.NewResult(0, tc.rowsAffected))
			if tc.expectError != nil {
				mock.ExpectRollback()
			} else {
				mock.ExpectCommit()
			}

			err := repository.DeleteByID(context.Background(), 3)
			if tc.expectError != nil {
				assert.ErrorIs(t, err, tc.expectError)
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

// Encoding a record and decoding the row back must preserve every
// structured sub-field.
func TestDTORoundTrip(t *testing.T) {
	name := "Pilot"
	m := sampleMedia()
	m.ID = 1
	m.Type = model.TypeTV
	m.Seasons = map[string]model.Season{
		"season_1": {
			SeasonNumber:  float64(1),
			TotalEpisodes: 1,
			Episodes:      []model.Episode{{EpisodeNumber: float64(1), EpisodeName: &name}},
		},
	}

	row := FromDomain(m)
	decoded := row.ToDomain()

	assert.Equal(t, m, decoded)
}
