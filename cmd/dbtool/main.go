package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"poi-map-service/internal/adapters/cache"
	"poi-map-service/internal/adapters/geocode"
	"poi-map-service/internal/adapters/repositories"
	"poi-map-service/internal/config"
	"poi-map-service/internal/platform/db"
	"poi-map-service/internal/ports"
	"poi-map-service/internal/services"
)

var (
	seedPath    string
	concurrency int
)

var rootCmd = &cobra.Command{
	Use:           "dbtool",
	Short:         "Create, seed and geocode the items database",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(conn *sql.DB, d repositories.Dialect) error {
			log.Println("Initializing database schema...")
			if err := repositories.InitSchema(conn, d); err != nil {
				return fmt.Errorf("schema initialization failed: %w", err)
			}
			log.Println("Schema ready.")
			return nil
		})
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create the schema and load items from the seed file",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(conn *sql.DB, d repositories.Dialect) error {
			if err := repositories.InitSchema(conn, d); err != nil {
				return fmt.Errorf("schema initialization failed: %w", err)
			}
			log.Printf("Seeding database path=%s...", seedPath)
			if err := repositories.SeedFromJSON(conn, d, seedPath); err != nil {
				return fmt.Errorf("seeding failed: %w", err)
			}
			log.Println("Seeding complete.")
			return nil
		})
	},
}

var geocodeCmd = &cobra.Command{
	Use:   "geocode",
	Short: "Resolve coordinates for items seeded without them",
	RunE: func(cmd *cobra.Command, args []string) error {
		apiKey := config.Get("ORS_API_KEY", "")
		if apiKey == "" {
			return fmt.Errorf("ORS_API_KEY is required")
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		return withDB(func(conn *sql.DB, d repositories.Dialect) error {
			gc, closeCache, err := geocodeCache(conn, d)
			if err != nil {
				return err
			}
			defer closeCache()

			geocoder, err := geocode.NewORSGeocoder(apiKey, geocode.WithCache(gc))
			if err != nil {
				return err
			}

			repo := repositories.NewItemRepository(conn, d)
			report, err := services.GeocodeMissing(ctx, repo, geocoder, concurrency)
			log.Printf("Geocoding done missing=%d resolved=%d failed=%d", report.Missing, report.Resolved, report.Failed)
			return err
		})
	},
}

func init() {
	// Flag defaults read the environment, so .env must be loaded first.
	config.LoadEnv()

	seedCmd.Flags().StringVar(&seedPath, "seed", config.Get("SEED_PATH", "data/seeds/items.json"), "seed file path")
	geocodeCmd.Flags().IntVar(&concurrency, "concurrency", config.GetInt("GEOCODE_CONCURRENCY", 4), "parallel geocode lookups")
	rootCmd.AddCommand(initCmd, seedCmd, geocodeCmd)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		log.Fatal(err)
	}
}

func withDB(fn func(*sql.DB, repositories.Dialect) error) error {
	var (
		conn *sql.DB
		d    repositories.Dialect
		err  error
	)
	if url := config.Get("DATABASE_URL", ""); url != "" {
		conn, err = db.Open(url)
		d = repositories.Postgres
	} else {
		conn, err = db.OpenSQLite(config.Get("DB_PATH", "data/app.db"))
		d = repositories.SQLite
	}
	if err != nil {
		return err
	}
	defer conn.Close()

	return fn(conn, d)
}

// geocodeCache prefers Redis when REDIS_URL is set and otherwise keeps the
// cache next to the items.
func geocodeCache(conn *sql.DB, d repositories.Dialect) (ports.GeocodeCache, func(), error) {
	if url := config.Get("REDIS_URL", ""); url != "" {
		rc, err := cache.NewRedisGeocodeCache(url, 30*24*time.Hour)
		if err != nil {
			return nil, nil, err
		}
		return rc, func() { rc.Close() }, nil
	}
	if d == repositories.Postgres {
		return cache.NewSQLGeocodeCache(conn), func() {}, nil
	}
	return cache.NewSqliteGeocodeCache(conn), func() {}, nil
}
