package api

import (
	"net/http"

	"poi-map-service/internal/api/handlers"
	"poi-map-service/internal/ports"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
func NewRouter(repo ports.ItemRepository) http.Handler {
	mux := http.NewServeMux()

	items := &handlers.ItemHandler{Repo: repo}
	ratings := &handlers.RatingHandler{Repo: repo}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/api/items", items.List)
	mux.HandleFunc("/api/items/random", items.Random)
	mux.HandleFunc("/api/rate", ratings.Rate)

	return requestID(loggingMiddleware(mux))
}
