package infra_pg_init

import (
	"fmt"
	"log"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/venuraw/streambox/internal/config"
)

const schema = `
CREATE TABLE IF NOT EXISTS media (
	id             SERIAL PRIMARY KEY,
	type           TEXT NOT NULL,
	title          TEXT NOT NULL,
	description    TEXT,
	thumbnail      TEXT,
	release_date   TEXT,
	language       TEXT,
	rating         DOUBLE PRECISION,
	cast_members   TEXT,
	video_links    TEXT,
	download_links TEXT,
	torrent_links  TEXT,
	total_seasons  INTEGER,
	seasons        TEXT,
	genres         TEXT
);
`

func MustEstablishConn(cfg config.Postgres) *sqlx.DB {
	dsn := cfg.URL
	if dsn == "" {
		dsn = fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			cfg.Host,
			cfg.Port,
			cfg.User,
			cfg.Password,
			cfg.DBName,
			cfg.SSLMode,
		)
	}
	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		log.Fatal(err)
	}

	if _, err := db.Exec(schema); err != nil {
		log.Fatalf("failed to apply schema: %v", err)
	}

	return db
}
