package http_admin

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	http_common "github.com/venuraw/streambox/internal/delivery/http/common"
	http_auth_middleware "github.com/venuraw/streambox/internal/delivery/http/middleware/auth"
	"github.com/venuraw/streambox/internal/model"
	"github.com/venuraw/streambox/internal/service/normalizer"
	"github.com/venuraw/streambox/internal/service/seasons"
	usecase_media "github.com/venuraw/streambox/internal/usecase/media"
)

type TMDBFetchRequestDTO struct {
	TMDBID    any    `json:"tmdb_id"`
	MediaType string `json:"media_type"`
}

// MediaPreviewDTO is the projector output shown to the admin before a
// record exists; it deliberately has no id and no link categories
// beyond the empty video map.
type MediaPreviewDTO struct {
	Title        string             `json:"title"`
	Description  *string            `json:"description"`
	Thumbnail    *string            `json:"thumbnail"`
	ReleaseDate  *string            `json:"release_date"`
	Language     *string            `json:"language"`
	Rating       *float64           `json:"rating"`
	CastMembers  []model.CastMember `json:"cast_members"`
	TotalSeasons *int               `json:"total_seasons"`
	Genres       []string           `json:"genres"`
	VideoLinks   map[string]string  `json:"video_links"`
}

func ConvertToPreview(m model.Media) MediaPreviewDTO {
	return MediaPreviewDTO{
		Title:        m.Title,
		Description:  m.Description,
		Thumbnail:    m.Thumbnail,
		ReleaseDate:  m.ReleaseDate,
		Language:     m.Language,
		Rating:       m.Rating,
		CastMembers:  m.CastMembers,
		TotalSeasons: m.TotalSeasons,
		Genres:       m.Genres,
		VideoLinks:   m.VideoLinks,
	}
}

// Controller serves the credentialed admin API.
type Controller struct {
	uc   *usecase_media.Usecase
	auth *http_auth_middleware.Middleware

	logger *slog.Logger
}

type ControllerOption func(*Controller)

func WithLogger(logger *slog.Logger) ControllerOption {
	return func(c *Controller) {
		c.logger = logger
	}
}

func New(uc *usecase_media.Usecase,
	auth *http_auth_middleware.Middleware,
	opts ...ControllerOption) *Controller {
	c := &Controller{
		uc:     uc,
		auth:   auth,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	admin := router.Group("/admin", c.auth.RequireAdmin())
	admin.POST("/tmdb_fetch", c.tmdbFetch)
	admin.POST("/media", c.createMedia)
	admin.PUT("/media/:media_id", c.updateMedia)
	admin.POST("/media/:media_id/episode", c.addEpisode)
	admin.DELETE("/media/:media_id", c.deleteMedia)
}

func (c *Controller) tmdbFetch(ctx *gin.Context) {
	var req TMDBFetchRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "Invalid request body",
		})
		return
	}

	tmdbID := formatTMDBID(req.TMDBID)
	if tmdbID == "" || req.MediaType == "" {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "TMDB ID and media type are required",
		})
		return
	}

	media, err := c.uc.PreviewMetadata(ctx.Request.Context(), tmdbID, req.MediaType)
	if err != nil {
		c.logger.Warn("tmdb fetch failed",
			slog.String("tmdb_id", tmdbID),
			slog.String("error", err.Error()),
		)
		ctx.JSON(http.StatusNotFound, http_common.ErrorResponse{
			Message: "Failed to fetch data from TMDB",
		})
		return
	}

	ctx.JSON(http.StatusOK, ConvertToPreview(media))
}

func (c *Controller) createMedia(ctx *gin.Context) {
	var sub normalizer.Submission
	if err := ctx.ShouldBindJSON(&sub); err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "Invalid request body",
		})
		return
	}

	id, err := c.uc.Create(ctx.Request.Context(), sub)
	if err != nil {
		if errors.Is(err, usecase_media.ErrInvalidInput) {
			ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
				Message: "Title is required",
			})
			return
		}

		c.logger.Error("failed to create media", slog.String("error", err.Error()))
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "Error adding media",
			Error:   err.Error(),
		})
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"message": "Media added successfully",
		"id":      id,
	})
}

func (c *Controller) updateMedia(ctx *gin.Context) {
	id, ok := parseMediaID(ctx)
	if !ok {
		return
	}

	var sub normalizer.Submission
	if err := ctx.ShouldBindJSON(&sub); err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "Invalid request body",
		})
		return
	}

	if err := c.uc.Update(ctx.Request.Context(), id, sub); err != nil {
		switch {
		case errors.Is(err, usecase_media.ErrInvalidInput):
			ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
				Message: "Title is required",
			})
		case errors.Is(err, usecase_media.ErrNotFound):
			ctx.JSON(http.StatusNotFound, http_common.ErrorResponse{
				Message: "Media not found",
			})
		default:
			c.logger.Error("failed to update media",
				slog.String("error", err.Error()),
				slog.Int64("media_id", id),
			)
			ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
				Message: "Error updating media",
				Error:   err.Error(),
			})
		}
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Media updated successfully"})
}

func (c *Controller) addEpisode(ctx *gin.Context) {
	id, ok := parseMediaID(ctx)
	if !ok {
		return
	}

	// The body is bound twice: once to reject empty submissions, once
	// into the typed episode shape.
	var raw map[string]any
	if err := ctx.ShouldBindBodyWith(&raw, binding.JSON); err != nil || len(raw) == 0 {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "Episode data is required",
		})
		return
	}

	var sub seasons.EpisodeSubmission
	if err := ctx.ShouldBindBodyWith(&sub, binding.JSON); err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "Invalid request body",
		})
		return
	}

	if err := c.uc.AddEpisode(ctx.Request.Context(), id, sub); err != nil {
		if errors.Is(err, usecase_media.ErrNotFound) {
			ctx.JSON(http.StatusNotFound, http_common.ErrorResponse{
				Message: "TV series not found",
			})
			return
		}

		c.logger.Error("failed to add episode",
			slog.String("error", err.Error()),
			slog.Int64("media_id", id),
		)
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "Error adding episode",
			Error:   err.Error(),
		})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Episode added successfully"})
}

func (c *Controller) deleteMedia(ctx *gin.Context) {
	id, ok := parseMediaID(ctx)
	if !ok {
		return
	}

	if err := c.uc.Delete(ctx.Request.Context(), id); err != nil {
		if errors.Is(err, usecase_media.ErrNotFound) {
			ctx.JSON(http.StatusNotFound, http_common.ErrorResponse{
				Message: "Media not found",
			})
			return
		}

		c.logger.Error("failed to delete media",
			slog.String("error", err.Error()),
			slog.Int64("media_id", id),
		)
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "Error deleting media",
			Error:   err.Error(),
		})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Media deleted successfully"})
}

// formatTMDBID accepts both numeric and string ids from the form.
func formatTMDBID(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		if t == float64(int64(t)) {
			return strconv.FormatInt(int64(t), 10)
		}
		return fmt.Sprint(t)
	default:
		return fmt.Sprint(t)
	}
}

func parseMediaID(ctx *gin.Context) (int64, bool) {
	idParam := ctx.Param("media_id")
	id, err := strconv.ParseInt(idParam, 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "Invalid media ID",
		})
		return 0, false
	}
	return id, true
}
