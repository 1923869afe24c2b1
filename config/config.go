package config

import (
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Port        string
	LogLevel    string
	CorsOrigins []string
	DB          DBConfig
}

type DBConfig struct {
	// Driver is "mysql" or "sqlite".
	Driver     string
	URL        string
	User       string
	Pass       string
	Host       string
	Port       string
	Name       string
	SQLitePath string
	Seed       bool
}

func envOrDefault(key, def string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	return value
}

func envBool(key string, def bool) bool {
	v, err := strconv.ParseBool(envOrDefault(key, strconv.FormatBool(def)))
	if err != nil {
		return def
	}
	return v
}

func parseCorsOrigins(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return []string{"*"}
	}

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

// Load reads the configuration from the environment. Call godotenv.Load first
// to pick up a .env file.
func Load() Config {
	url := strings.TrimSpace(os.Getenv("MYSQL_URL"))
	if url == "" {
		url = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	}

	return Config{
		Port:        envOrDefault("PORT", "8080"),
		LogLevel:    envOrDefault("LOG_LEVEL", "info"),
		CorsOrigins: parseCorsOrigins(os.Getenv("CORS_ORIGINS")),
		DB: DBConfig{
			Driver:     strings.ToLower(envOrDefault("DB_DRIVER", "mysql")),
			URL:        url,
			User:       envOrDefault("DB_USER", "root"),
			Pass:       os.Getenv("DB_PASS"),
			Host:       envOrDefault("DB_HOST", "127.0.0.1"),
			Port:       envOrDefault("DB_PORT", "3306"),
			Name:       envOrDefault("DB_NAME", "hotel_console"),
			SQLitePath: envOrDefault("SQLITE_PATH", "./hotel_console.db"),
			Seed:       envBool("DB_SEED", false),
		},
	}
}
