package infra_postgres_media

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/venuraw/streambox/internal/model"
)

var ErrMediaNotFound = errors.New("media not found")

type Repository struct {
	db *sqlx.DB
}

func New(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

// Store inserts a new record and returns the id assigned by the
// database.
func (r *Repository) Store(ctx context.Context, m model.Media) (int64, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin tx: %w", err)
	}
	defer tx.Rollback()

	mediaDB := FromDomain(m)

	query := `
		INSERT INTO media (type, title, description, thumbnail, release_date, language, rating,
			cast_members, video_links, download_links, torrent_links, total_seasons, seasons, genres)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id
	`

	var id int64
	err = tx.GetContext(ctx, &id, query,
		mediaDB.Type, mediaDB.Title, mediaDB.Description, mediaDB.Thumbnail,
		mediaDB.ReleaseDate, mediaDB.Language, mediaDB.Rating,
		mediaDB.CastMembers, mediaDB.VideoLinks, mediaDB.DownloadLinks, mediaDB.TorrentLinks,
		mediaDB.TotalSeasons, mediaDB.Seasons, mediaDB.Genres,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to store media: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit: %w", err)
	}

	return id, nil
}

// Update replaces every mutable column of the record.
func (r *Repository) Update(ctx context.Context, m model.Media) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin tx: %w", err)
	}
	defer tx.Rollback()

	mediaDB := FromDomain(m)

	query := `
		UPDATE media SET
			type = $1, title = $2, description = $3, thumbnail = $4, release_date = $5,
			language = $6, rating = $7, cast_members = $8, video_links = $9,
			download_links = $10, torrent_links = $11, total_seasons = $12, seasons = $13, genres = $14
		WHERE id = $15
	`

	result, err := tx.ExecContext(ctx, query,
		mediaDB.Type, mediaDB.Title, mediaDB.Description, mediaDB.Thumbnail,
		mediaDB.ReleaseDate, mediaDB.Language, mediaDB.Rating,
		mediaDB.CastMembers, mediaDB.VideoLinks, mediaDB.DownloadLinks, mediaDB.TorrentLinks,
		mediaDB.TotalSeasons, mediaDB.Seasons, mediaDB.Genres,
		mediaDB.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update media: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrMediaNotFound
	}

	return tx.Commit()
}

// MutateSeasons runs a read-modify-write on the seasons column of a TV
// record inside one transaction. No row lock is taken: concurrent
// mutations of the same record are last-writer-wins.
func (r *Repository) MutateSeasons(ctx context.Context, id int64, mutate func(map[string]model.Season) map[string]model.Season) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin tx: %w", err)
	}
	defer tx.Rollback()

	var stored sql.NullString
	err = tx.GetContext(ctx, &stored, `SELECT seasons FROM media WHERE id = $1 AND type = 'tv'`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrMediaNotFound
		}
		return fmt.Errorf("failed to load seasons: %w", err)
	}

	seasons, ok := decodeField[map[string]model.Season](stored)
	if !ok || seasons == nil {
		seasons = map[string]model.Season{}
	}

	updated := encodeField(mutate(seasons))

	if _, err := tx.ExecContext(ctx, `UPDATE media SET seasons = $1 WHERE id = $2`, updated, id); err != nil {
		return fmt.Errorf("failed to update seasons: %w", err)
	}

	return tx.Commit()
}

func (r *Repository) LoadByID(ctx context.Context, id int64) (model.Media, error) {
	query := `SELECT * FROM media WHERE id = $1`

	var mediaDB MediaDB
	err := r.db.GetContext(ctx, &mediaDB, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Media{}, ErrMediaNotFound
		}
		return model.Media{}, fmt.Errorf("failed to load media by id: %w", err)
	}

	return mediaDB.ToDomain(), nil
}

// Load returns the whole catalog, newest first.
func (r *Repository) Load(ctx context.Context) ([]*model.Media, error) {
	query := `SELECT * FROM media ORDER BY id DESC`

	var mediaDB []MediaDB
	err := r.db.SelectContext(ctx, &mediaDB, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query media: %w", err)
	}

	media := make([]*model.Media, len(mediaDB))
	for i, row := range mediaDB {
		domain := row.ToDomain()
		media[i] = &domain
	}

	return media, nil
}

func (r *Repository) DeleteByID(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin tx: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `DELETE FROM media WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete media: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrMediaNotFound
	}

	return tx.Commit()
}
