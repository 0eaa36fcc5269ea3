package usecase_media

import (
	"context"
	"errors"
	"fmt"
	"sort"

	infra_postgres_media "github.com/venuraw/streambox/internal/infra/postgres/media"
	infra_tmdb "github.com/venuraw/streambox/internal/infra/tmdb"
	"github.com/venuraw/streambox/internal/model"
	"github.com/venuraw/streambox/internal/service/normalizer"
	"github.com/venuraw/streambox/internal/service/seasons"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("media not found")
	ErrFetchFailed  = errors.New("failed to fetch data from TMDB")

	ErrFailedToStore  = errors.New("failed to store media")
	ErrFailedToLoad   = errors.New("failed to load media")
	ErrFailedToUpdate = errors.New("failed to update media")
	ErrFailedToDelete = errors.New("failed to delete media")
)

type Repository interface {
	Store(ctx context.Context, m model.Media) (int64, error)
	Update(ctx context.Context, m model.Media) error
	MutateSeasons(ctx context.Context, id int64, mutate func(map[string]model.Season) map[string]model.Season) error
	LoadByID(ctx context.Context, id int64) (model.Media, error)
	Load(ctx context.Context) ([]*model.Media, error)
	DeleteByID(ctx context.Context, id int64) error
}

type MetadataProvider interface {
	FetchMedia(ctx context.Context, tmdbID, mediaType string) (model.Media, error)
	Genres(ctx context.Context, mediaType string) ([]string, error)
}

type Usecase struct {
	repository Repository
	metadata   MetadataProvider
}

func New(repository Repository, metadata MetadataProvider) *Usecase {
	return &Usecase{
		repository: repository,
		metadata:   metadata,
	}
}

// Create normalizes and persists a new record, returning the assigned id.
func (u *Usecase) Create(ctx context.Context, sub normalizer.Submission) (int64, error) {
	m, err := normalizer.Normalize(sub)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	id, err := u.repository.Store(ctx, m)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrFailedToStore, err)
	}

	return id, nil
}

// Update normalizes the submission and fully replaces the record.
func (u *Usecase) Update(ctx context.Context, id int64, sub normalizer.Submission) error {
	m, err := normalizer.Normalize(sub)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	m.ID = id

	if err := u.repository.Update(ctx, m); err != nil {
		if errors.Is(err, infra_postgres_media.ErrMediaNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("%w: %w", ErrFailedToUpdate, err)
	}

	return nil
}

// AddEpisode merges the submitted episode into the record's seasons.
// The record must exist and be a TV series.
func (u *Usecase) AddEpisode(ctx context.Context, id int64, sub seasons.EpisodeSubmission) error {
	err := u.repository.MutateSeasons(ctx, id, func(current map[string]model.Season) map[string]model.Season {
		return seasons.Merge(current, sub)
	})
	if err != nil {
		if errors.Is(err, infra_postgres_media.ErrMediaNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("%w: %w", ErrFailedToUpdate, err)
	}

	return nil
}

func (u *Usecase) Delete(ctx context.Context, id int64) error {
	if err := u.repository.DeleteByID(ctx, id); err != nil {
		if errors.Is(err, infra_postgres_media.ErrMediaNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("%w: %w", ErrFailedToDelete, err)
	}

	return nil
}

func (u *Usecase) GetByID(ctx context.Context, id int64) (model.Media, error) {
	m, err := u.repository.LoadByID(ctx, id)
	if err != nil {
		if errors.Is(err, infra_postgres_media.ErrMediaNotFound) {
			return model.Media{}, ErrNotFound
		}
		return model.Media{}, fmt.Errorf("%w: %w", ErrFailedToLoad, err)
	}

	return m, nil
}

func (u *Usecase) List(ctx context.Context) ([]*model.Media, error) {
	media, err := u.repository.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFailedToLoad, err)
	}

	return media, nil
}

// PreviewMetadata projects a provider payload into the record shape
// without persisting anything.
func (u *Usecase) PreviewMetadata(ctx context.Context, tmdbID, mediaType string) (model.Media, error) {
	m, err := u.metadata.FetchMedia(ctx, tmdbID, mediaType)
	if err != nil {
		if errors.Is(err, infra_tmdb.ErrUnavailable) {
			return model.Media{}, ErrFetchFailed
		}
		return model.Media{}, fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}

	return m, nil
}

// AllGenres returns the deduplicated sorted union of the provider's
// movie and tv genre names. A failed lookup contributes nothing
// instead of failing the whole listing.
func (u *Usecase) AllGenres(ctx context.Context) []string {
	seen := map[string]struct{}{}
	for _, mediaType := range []string{model.TypeMovie, model.TypeTV} {
		names, err := u.metadata.Genres(ctx, mediaType)
		if err != nil {
			continue
		}
		for _, name := range names {
			seen[name] = struct{}{}
		}
	}

	out := make([]string, 0, len(seen))
	for name := range seen {
		out = append(out, name)
	}
	sort.Strings(out)

	return out
}
