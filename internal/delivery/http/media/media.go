package http_media

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	http_common "github.com/venuraw/streambox/internal/delivery/http/common"
	usecase_media "github.com/venuraw/streambox/internal/usecase/media"
)

// Controller serves the public, unauthenticated read API.
type Controller struct {
	uc *usecase_media.Usecase

	logger *slog.Logger
}

type ControllerOption func(*Controller)

func WithLogger(logger *slog.Logger) ControllerOption {
	return func(c *Controller) {
		c.logger = logger
	}
}

func New(uc *usecase_media.Usecase, opts ...ControllerOption) *Controller {
	c := &Controller{
		uc:     uc,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/media", c.listMedia)
	router.GET("/media/:media_id", c.getMedia)
	router.GET("/genres", c.listGenres)
}

// listMedia returns the whole catalog, newest first, with every
// JSON-bearing sub-field already decoded to its structured form.
func (c *Controller) listMedia(ctx *gin.Context) {
	media, err := c.uc.List(ctx.Request.Context())
	if err != nil {
		c.logger.Error("failed to list media", slog.String("error", err.Error()))
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
			Message: "Database error",
			Error:   err.Error(),
		})
		return
	}

	ctx.JSON(http.StatusOK, media)
}

func (c *Controller) getMedia(ctx *gin.Context) {
	id, ok := parseMediaID(ctx)
	if !ok {
		return
	}

	media, err := c.uc.GetByID(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, usecase_media.ErrNotFound) {
			ctx.JSON(http.StatusNotFound, http_common.ErrorResponse{
				Message: "Media not found",
			})
			return
		}

		c.logger.Error("failed to get media",
			slog.String("error", err.Error()),
			slog.Int64("media_id", id),
		)
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
			Message: "Database error",
			Error:   err.Error(),
		})
		return
	}

	ctx.JSON(http.StatusOK, media)
}

// listGenres returns the union of the provider's movie and tv genres;
// provider failures degrade to the genres that could be fetched.
func (c *Controller) listGenres(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, c.uc.AllGenres(ctx.Request.Context()))
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
