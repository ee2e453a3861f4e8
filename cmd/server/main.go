package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"poi-map-service/internal/adapters/repositories"
	"poi-map-service/internal/api"
	"poi-map-service/internal/config"
	"poi-map-service/internal/platform/db"
)

// main is the application composition root.
// It wires the SQL item repository behind its port and serves the items API.
func main() {
	config.LoadEnv()

	port := config.Get("PORT", "8080")
	seedPath := config.Get("SEED_PATH", "data/seeds/items.json")

	conn, dialect, err := openDB()
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	// Initialize schema and seed demo data on startup for local runs.
	if err := initAndSeed(conn, dialect, seedPath); err != nil {
		log.Fatal(err)
	}

	repo := repositories.NewItemRepository(conn, dialect)
	router := api.NewRouter(repo)

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Printf("Server listening addr=:%s db=%s", port, dialect)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		log.Println("Shutting down server...")
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatal(err)
	}
}

// openDB prefers Postgres when DATABASE_URL is set and falls back to a local
// SQLite file.
func openDB() (*sql.DB, repositories.Dialect, error) {
	if url := config.Get("DATABASE_URL", ""); url != "" {
		conn, err := db.Open(url)
		return conn, repositories.Postgres, err
	}

	conn, err := db.OpenSQLite(config.Get("DB_PATH", "data/app.db"))
	return conn, repositories.SQLite, err
}

func initAndSeed(conn *sql.DB, d repositories.Dialect, seedPath string) error {
	if err := repositories.InitSchema(conn, d); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	if _, err := os.Stat(seedPath); errors.Is(err, os.ErrNotExist) {
		log.Printf("No seed file path=%s, skipping seed", seedPath)
		return nil
	}

	if err := repositories.SeedFromJSON(conn, d, seedPath); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	return nil
}
