package app

import (
	"github.com/venuraw/streambox/internal/config"
	http_admin "github.com/venuraw/streambox/internal/delivery/http/admin"
	http_init "github.com/venuraw/streambox/internal/delivery/http/init"
	http_media "github.com/venuraw/streambox/internal/delivery/http/media"
	http_auth_middleware "github.com/venuraw/streambox/internal/delivery/http/middleware/auth"
	http_cors_middleware "github.com/venuraw/streambox/internal/delivery/http/middleware/cors"
	http_reqlog_middleware "github.com/venuraw/streambox/internal/delivery/http/middleware/reqlog"
	infra_pg_init "github.com/venuraw/streambox/internal/infra/postgres/init"
	infra_postgres_media "github.com/venuraw/streambox/internal/infra/postgres/media"
	infra_tmdb "github.com/venuraw/streambox/internal/infra/tmdb"
	usecase_media "github.com/venuraw/streambox/internal/usecase/media"
)

func Go(cfg *config.Config) {
	pgConn := infra_pg_init.MustEstablishConn(cfg.Postgres)

	mediaRepository := infra_postgres_media.New(pgConn)
	tmdbClient := infra_tmdb.New(cfg.TMDB)

	mediaUC := usecase_media.New(mediaRepository, tmdbClient)

	authMiddleware := http_auth_middleware.New(cfg.Admin)

	controllerPool := http_init.NewControllerPool(
		http_cors_middleware.New(),
		http_reqlog_middleware.New(),
	)
	controllerPool.Add(http_media.New(mediaUC))
	controllerPool.Add(http_admin.New(mediaUC, authMiddleware))

	controllerPool.Register()
	controllerPool.RunAll(cfg.HTTP.Port)
}
