package main

import (
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/phuslu/log"
	"github.com/redis/go-redis/v9"
	_ "modernc.org/sqlite"

	"trip-planner-service/internal/adapters/catalog"
	"trip-planner-service/internal/adapters/repositories"
	"trip-planner-service/internal/adapters/weather"
	"trip-planner-service/internal/api"
	"trip-planner-service/internal/config"
	"trip-planner-service/internal/ports"
	"trip-planner-service/internal/services"
)

// main is the application composition root.
// It wires concrete adapters (SQLite, open-meteo, Redis) behind ports and
// starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Info().Msg("No .env file found (using environment variables)")
	}

	dbPath := config.Get("DB_PATH", "data/app.db")
	seedPath := config.Get("SEED_PATH", "")
	port := config.Get("PORT", "8080")
	redisAddr := config.Get("REDIS_ADDR", "")

	// Default weather coordinates: Hong Kong.
	lat := envFloat("WEATHER_LAT", 22.3193)
	lon := envFloat("WEATHER_LON", 114.1694)

	db, err := openDB(dbPath)
	if err != nil {
		log.Fatal().Err(err).Msg("open database")
	}
	defer db.Close()

	// Initialize schema and seed catalog data on startup for local runs.
	if err := initAndSeed(db, seedPath); err != nil {
		log.Fatal().Err(err).Msg("init database")
	}

	attractions := repositories.NewSqliteAttractionCatalog(db)
	store := repositories.NewSqliteItineraryStore(db)

	var forecasts ports.WeatherProvider = weather.NewOpenMeteoProvider(lat, lon, weather.NewStaticProvider())
	if redisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: redisAddr})
		forecasts = weather.NewCachedProvider(forecasts, client)
		log.Info().Str("addr", redisAddr).Msg("weather cache enabled")
	}

	estimator := services.NewTravelEstimator(nil)
	scheduler := services.NewDayScheduler(estimator, nil, services.DefaultStartHour)
	selector := services.NewAttractionSelector()
	assembler := services.NewItineraryAssembler(attractions, forecasts, selector, scheduler)
	engine := services.NewModificationEngine(scheduler, attractions, forecasts)
	suggester := services.NewSuggestionEngine(forecasts)

	router := api.NewRouter(assembler, engine, suggester, store)

	log.Info().Str("addr", ":"+port).Msg("server listening")
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal().Err(srv.ListenAndServe()).Msg("server stopped")
}

func envFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		log.Warn().Str("key", key).Str("value", v).Msg("ignoring unparsable float env var")
		return fallback
	}
	return f
}

func openDB(dbPath string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("openDB: open sqlite database %q: %w", dbPath, err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("openDB: verify sqlite connection to %q: %w", dbPath, err)
	}

	return db, nil
}

func initAndSeed(db *sql.DB, seedPath string) error {
	if err := repositories.InitSchema(db); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	// A seed file wins over the built-in set; both are idempotent upserts.
	if seedPath != "" {
		if err := repositories.SeedAttractionsFromJSON(db, seedPath); err != nil {
			return fmt.Errorf("init and seed: %w", err)
		}
		return nil
	}

	if err := repositories.SeedAttractions(db, catalog.DefaultCandidates()); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}
	return nil
}
