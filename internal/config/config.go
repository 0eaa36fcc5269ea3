package config

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

type HTTPServer struct {
	Host string
	Port string
}

type Postgres struct {
	// URL overrides the discrete fields when set.
	URL      string
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type TMDB struct {
	APIKey string
}

type Admin struct {
	Username     string
	PasswordHash []byte
}

type Config struct {
	HTTP     HTTPServer
	Postgres Postgres
	TMDB     TMDB
	Admin    Admin
}

const logtag = "[config]"

func Load() *Config {
	configPath := flag.String("config", "", "path env file")
	flag.Parse()

	if *configPath != "" {
		if err := godotenv.Load(*configPath); err != nil {
			log.Fatalf("%s err loading env from file : %v", logtag, err)
		}
		log.Printf("%s using env from : %s", logtag, *configPath)
	} else {
		log.Printf("%s using env from .env", logtag)
		_ = godotenv.Load()
	}

	cfg := &Config{
		HTTP:     *newHTTP(),
		Postgres: *newPostgres(),
		TMDB:     *newTMDB(),
		Admin:    *newAdmin(),
	}

	log.Printf("%s http %s:%s, postgres %s:%s/%s", logtag,
		cfg.HTTP.Host, cfg.HTTP.Port,
		cfg.Postgres.Host, cfg.Postgres.Port, cfg.Postgres.DBName)
	return cfg
}

func newHTTP() *HTTPServer {
	return &HTTPServer{
		Port: getenv("HTTP_PORT", "8080"),
		Host: getenv("HTTP_HOST", "localhost"),
	}
}

func newPostgres() *Postgres {
	return &Postgres{
		URL:      os.Getenv("DATABASE_URL"),
		Host:     getenv("DB_HOST", "localhost"),
		Port:     getenv("DB_PORT", "5432"),
		User:     getenv("DB_USER", "admin"),
		Password: getenv("DB_PASSWORD", "shared"),
		DBName:   getenv("DB_NAME", "media"),
		SSLMode:  getenv("DB_SSLMODE", "disable"),
	}
}

func newTMDB() *TMDB {
	return &TMDB{
		APIKey: getenv("TMDB_API_KEY", ""),
	}
}

// The admin password is hashed once at startup; only the hash is kept
// in memory afterwards.
func newAdmin() *Admin {
	password := getenvSecret("ADMIN_PASSWORD", "admin")
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("%s err hashing admin password : %v", logtag, err)
	}

	return &Admin{
		Username:     getenv("ADMIN_USERNAME", "admin"),
		PasswordHash: hash,
	}
}

func getenv(key, defaultValue string) string {
	val := os.Getenv(key)
	if val == "" {
		fmt.Printf("%s %s undefined. Using default value %s\n", logtag, key, defaultValue)
		return defaultValue
	}
	fmt.Printf("%s %s = %s\n", logtag, key, val)
	return val
}

func getenvSecret(key, defaultValue string) string {
	val := os.Getenv(key)
	if val == "" {
		fmt.Printf("%s %s undefined. Using default value\n", logtag, key)
		return defaultValue
	}
	return val
}
