package infra_tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/venuraw/streambox/internal/config"
	"github.com/venuraw/streambox/internal/model"
)

func newTestClient(handler http.Handler) (*Client, *httptest.Server) {
	server := httptest.NewServer(handler)
	client := New(config.TMDB{APIKey: "test-key"}, WithBaseURLs(server.URL, "https://image.tmdb.org/t/p/original"))
	return client, server
}

func movieDetailsPayload() map[string]any {
	cast := make([]map[string]any, 0, 12)
	for i := 0; i < 12; i++ {
		cast = append(cast, map[string]any{
			"name":         fmt.Sprintf("Actor %d", i),
			"character":    fmt.Sprintf("Role %d", i),
			"profile_path": "/p.jpg",
		})
	}

	return map[string]any{
		"title":             "Inception",
		"overview":          "A dream heist",
		"poster_path":       "/poster.jpg",
		"release_date":      "2010-07-16",
		"original_language": "en",
		"vote_average":      8.8,
		"genres":            []map[string]any{{"id": 878, "name": "Science Fiction"}},
		"credits":           map[string]any{"cast": cast},
	}
}

func TestFetchMediaMovie(t *testing.T) {
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/movie/603", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("api_key"))
		assert.Equal(t, "credits", r.URL.Query().Get("append_to_response"))
		json.NewEncoder(w).Encode(movieDetailsPayload())
	}))
	defer server.Close()

	m, err := client.FetchMedia(context.Background(), "603", model.TypeMovie)
	require.NoError(t, err)

	assert.Equal(t, "Inception", m.Title)
	require.NotNil(t, m.Description)
	assert.Equal(t, "A dream heist", *m.Description)
	require.NotNil(t, m.Thumbnail)
	assert.Equal(t, "https://image.tmdb.org/t/p/original/poster.jpg", *m.Thumbnail)
	require.NotNil(t, m.Rating)
	assert.Equal(t, 8.8, *m.Rating)
	assert.Equal(t, []string{"Science Fiction"}, m.Genres)
	assert.Nil(t, m.TotalSeasons)

	// Cast is capped at ten entries.
	require.Len(t, m.CastMembers, 10)
	assert.Equal(t, "Actor 0", m.CastMembers[0].Name)
	require.NotNil(t, m.CastMembers[0].Image)
	assert.Equal(t, "https://image.tmdb.org/t/p/original/p.jpg", *m.CastMembers[0].Image)

	// The projector never supplies links.
	assert.Equal(t, map[string]string{}, m.VideoLinks)
}

func TestFetchMediaTV(t *testing.T) {
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/tv/1396", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{
			"name":              "Breaking Bad",
			"first_air_date":    "2008-01-20",
			"number_of_seasons": 5,
			"credits":           map[string]any{"cast": []any{}},
		})
	}))
	defer server.Close()

	m, err := client.FetchMedia(context.Background(), "1396", model.TypeTV)
	require.NoError(t, err)

	assert.Equal(t, "Breaking Bad", m.Title)
	require.NotNil(t, m.ReleaseDate)
	assert.Equal(t, "2008-01-20", *m.ReleaseDate)
	require.NotNil(t, m.TotalSeasons)
	assert.Equal(t, 5, *m.TotalSeasons)
	assert.Empty(t, m.CastMembers)
}

func TestFetchMediaMissingPosterYieldsNilThumbnail(t *testing.T) {
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"title": "Obscure"})
	}))
	defer server.Close()

	m, err := client.FetchMedia(context.Background(), "1", model.TypeMovie)
	require.NoError(t, err)
	assert.Nil(t, m.Thumbnail)
}

func TestFetchMediaFailures(t *testing.T) {
	testCases := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "not found upstream",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNotFound)
			},
		},
		{
			name: "server error upstream",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
		},
		{
			name: "garbage body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, "not json")
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			client, server := newTestClient(tc.handler)
			defer server.Close()

			_, err := client.FetchMedia(context.Background(), "1", model.TypeMovie)
			assert.ErrorIs(t, err, ErrUnavailable)
		})
	}
}

func TestFetchMediaUnknownType(t *testing.T) {
	client := New(config.TMDB{APIKey: "k"})

	_, err := client.FetchMedia(context.Background(), "1", "podcast")
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestGenres(t *testing.T) {
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/genre/movie/list", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{
			"genres": []map[string]any{{"id": 28, "name": "Action"}, {"id": 35, "name": "Comedy"}},
		})
	}))
	defer server.Close()

	names, err := client.Genres(context.Background(), model.TypeMovie)
	require.NoError(t, err)
	assert.Equal(t, []string{"Action", "Comedy"}, names)
}

func TestGenresUpstreamFailure(t *testing.T) {
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	_, err := client.Genres(context.Background(), model.TypeMovie)
	assert.ErrorIs(t, err, ErrUnavailable)
}
