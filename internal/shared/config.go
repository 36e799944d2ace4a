package shared

import (
	"os"
	"strconv"
	"time"

	"github.com/spf13/pflag"
)

type Config struct {
	AppEnv        string
	LogLevel      string
	HTTPAddr      string
	MetricsAddr   string
	MySQLDSN      string // empty: no persistence, no like counts
	RedisAddr     string // empty: no cache
	RedisDB       int
	RedisPass     string
	ReviewsDir    string
	HotelsFile    string
	Workers       int
	ExportWorkers int
	CacheTTL      time.Duration
	APIRPS        int
}

func Load() Config {
	return Config{
		AppEnv:        env("APP_ENV", "prod"),
		LogLevel:      env("LOG_LEVEL", "info"),
		HTTPAddr:      env("HTTP_ADDR", ":8080"),
		MetricsAddr:   env("METRICS_ADDR", ":9100"),
		MySQLDSN:      env("MYSQL_DSN", ""),
		RedisAddr:     env("REDIS_ADDR", ""),
		RedisPass:     env("REDIS_PASSWORD", ""),
		RedisDB:       atoi("REDIS_DB", 0),
		ReviewsDir:    env("REVIEWS_DIR", "./data/reviews"),
		HotelsFile:    env("HOTELS_FILE", ""),
		Workers:       atoi("INGEST_WORKERS", 3),
		ExportWorkers: atoi("EXPORT_WORKERS", 4),
		CacheTTL:      time.Duration(atoi("CACHE_TTL_SECONDS", 900)) * time.Second,
		APIRPS:        atoi("API_RPS", 50),
	}
}

// BindFlags registers the command-line overrides. Defaults come from c, so
// call it after Load: flags beat env, env beats built-in defaults.
func BindFlags(fs *pflag.FlagSet, c *Config) {
	fs.StringVarP(&c.ReviewsDir, "reviews", "r", c.ReviewsDir, "directory (or single .json file) of review files")
	fs.StringVar(&c.HotelsFile, "hotels", c.HotelsFile, "hotels catalog file")
	fs.IntVarP(&c.Workers, "threads", "t", c.Workers, "ingestion worker count")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "zerolog level")
}

func atoi(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
