package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/himanishpuri/SyncLyrics/pkg/logger"
	"github.com/himanishpuri/SyncLyrics/pkg/synclyrics"
	"github.com/himanishpuri/SyncLyrics/pkg/utils"
)

var (
	port           int
	dbPath         string
	allowedOrigins string
	rateLimit      float64
	rateBurst      int
	strict         bool
	trustProxy     bool
)

func init() {
	utils.LoadDotEnv()

	flag.IntVar(&port, "port", utils.GetEnvIntOrDefault("SYNCLYRICS_PORT", 8080), "HTTP server port")
	flag.StringVar(&dbPath, "db", utils.GetEnvOrDefault("SYNCLYRICS_DB_PATH", "synclyrics.sqlite3"), "Path to SQLite database")
	flag.StringVar(&allowedOrigins, "origins", utils.GetEnvOrDefault("SYNCLYRICS_ORIGINS", "*"), "Comma-separated list of allowed CORS origins (use * for all)")
	flag.Float64Var(&rateLimit, "rate-limit", envFloat("SYNCLYRICS_RATE_LIMIT", 10), "Requests per second allowed per client (0 disables)")
	flag.IntVar(&rateBurst, "rate-burst", utils.GetEnvIntOrDefault("SYNCLYRICS_RATE_BURST", 20), "Burst size for the per-client rate limit")
	flag.BoolVar(&strict, "strict", false, "Reject a songwriter list not named <songwriters>")
	flag.BoolVar(&trustProxy, "trust-proxy", os.Getenv("SYNCLYRICS_TRUST_PROXY") == "true", "Identify clients by X-Real-IP/X-Forwarded-For (only behind a proxy that sets them)")
}

func envFloat(key string, defaultValue float64) float64 {
	v, err := strconv.ParseFloat(os.Getenv(key), 64)
	if err != nil {
		return defaultValue
	}
	return v
}

func parseOrigins(value string) []string {
	if value == "*" {
		return []string{"*"}
	}
	var origins []string
	for _, o := range strings.Split(value, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

func main() {
	flag.Parse()
	log := logger.GetLogger()

	service, err := synclyrics.NewService(
		synclyrics.WithDBPath(dbPath),
		synclyrics.WithStrictSongwriters(strict),
	)
	if err != nil {
		log.Fatalf("Failed to create service: %v", err)
	}
	defer service.Close()

	config := &ServerConfig{
		Port:           port,
		DBPath:         dbPath,
		AllowedOrigins: parseOrigins(allowedOrigins),
		RateLimit:      rateLimit,
		RateBurst:      rateBurst,

		TrustProxyHeaders: trustProxy,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	server := NewServer(service, config)
	if err := server.Start(ctx); err != nil {
		log.Errorf("Server failed: %v", err)
		service.Close()
		os.Exit(1)
	}
}
