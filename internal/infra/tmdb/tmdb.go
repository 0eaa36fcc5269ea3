package infra_tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/venuraw/streambox/internal/config"
	"github.com/venuraw/streambox/internal/model"
)

// ErrUnavailable covers every lookup failure: transport errors,
// timeouts, non-200 responses and unknown media types. Callers treat
// it as "fetch failed", never as invalid input.
var ErrUnavailable = errors.New("failed to fetch data from TMDB")

const (
	defaultAPIBase   = "https://api.themoviedb.org/3"
	defaultImageBase = "https://image.tmdb.org/t/p/original"

	requestTimeout = 10 * time.Second
	maxCastMembers = 10
)

type Client struct {
	apiKey    string
	apiBase   string
	imageBase string

	httpClient *http.Client
	logger     *slog.Logger
}

type ClientOption func(*Client)

func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithBaseURLs overrides the API and image hosts.
func WithBaseURLs(apiBase, imageBase string) ClientOption {
	return func(c *Client) {
		c.apiBase = apiBase
		c.imageBase = imageBase
	}
}

func New(cfg config.TMDB, opts ...ClientOption) *Client {
	c := &Client{
		apiKey:    cfg.APIKey,
		apiBase:   defaultAPIBase,
		imageBase: defaultImageBase,
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type castEntry struct {
	Name        string  `json:"name"`
	Character   string  `json:"character"`
	ProfilePath *string `json:"profile_path"`
}

type details struct {
	Title            string   `json:"title"`
	Name             string   `json:"name"`
	Overview         *string  `json:"overview"`
	PosterPath       *string  `json:"poster_path"`
	ReleaseDate      *string  `json:"release_date"`
	FirstAirDate     *string  `json:"first_air_date"`
	OriginalLanguage *string  `json:"original_language"`
	VoteAverage      *float64 `json:"vote_average"`
	NumberOfSeasons  *int     `json:"number_of_seasons"`
	Genres           []genre  `json:"genres"`
	Credits          struct {
		Cast []castEntry `json:"cast"`
	} `json:"credits"`
}

type genreList struct {
	Genres []genre `json:"genres"`
}

// FetchMedia looks up a title by TMDB id and projects the payload into
// the catalog's record shape. Video links start empty; they are filled
// in by the admin afterwards.
func (c *Client) FetchMedia(ctx context.Context, tmdbID, mediaType string) (model.Media, error) {
	if mediaType != model.TypeMovie && mediaType != model.TypeTV {
		return model.Media{}, ErrUnavailable
	}

	reqURL := fmt.Sprintf("%s/%s/%s?api_key=%s&append_to_response=credits",
		c.apiBase, mediaType, url.PathEscape(tmdbID), url.QueryEscape(c.apiKey))

	var payload details
	if err := c.get(ctx, reqURL, &payload); err != nil {
		c.logger.Warn("tmdb lookup failed",
			slog.String("tmdb_id", tmdbID),
			slog.String("media_type", mediaType),
			slog.String("error", err.Error()),
		)
		return model.Media{}, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	return c.project(payload, mediaType), nil
}

// Genres returns the provider's genre names for one media type.
func (c *Client) Genres(ctx context.Context, mediaType string) ([]string, error) {
	reqURL := fmt.Sprintf("%s/genre/%s/list?api_key=%s",
		c.apiBase, mediaType, url.QueryEscape(c.apiKey))

	var payload genreList
	if err := c.get(ctx, reqURL, &payload); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	names := make([]string, 0, len(payload.Genres))
	for _, g := range payload.Genres {
		names = append(names, g.Name)
	}
	return names, nil
}

func (c *Client) project(d details, mediaType string) model.Media {
	m := model.Media{
		Type:          mediaType,
		Title:         d.Title,
		Description:   d.Overview,
		Thumbnail:     c.imageURL(d.PosterPath),
		ReleaseDate:   d.ReleaseDate,
		Language:      d.OriginalLanguage,
		Rating:        d.VoteAverage,
		CastMembers:   []model.CastMember{},
		VideoLinks:    map[string]string{},
		DownloadLinks: map[string]model.DownloadLink{},
		TorrentLinks:  map[string]string{},
		Genres:        []string{},
	}

	if mediaType == model.TypeTV {
		m.Title = d.Name
		m.ReleaseDate = d.FirstAirDate
		m.TotalSeasons = d.NumberOfSeasons
	}

	for _, g := range d.Genres {
		m.Genres = append(m.Genres, g.Name)
	}

	cast := d.Credits.Cast
	if len(cast) > maxCastMembers {
		cast = cast[:maxCastMembers]
	}
	for _, member := range cast {
		m.CastMembers = append(m.CastMembers, model.CastMember{
			Name:      member.Name,
			Character: member.Character,
			Image:     c.imageURL(member.ProfilePath),
		})
	}

	return m
}

func (c *Client) imageURL(path *string) *string {
	if path == nil || *path == "" {
		return nil
	}
	full := c.imageBase + *path
	return &full
}

func (c *Client) get(ctx context.Context, reqURL string, result any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("TMDB returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if err := json.Unmarshal(body, result); err != nil {
		return fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return nil
}
