package handlers

import (
	"errors"
	"log"
	"net/http"

	"poi-map-service/internal/api/dto"
	"poi-map-service/internal/domain"
	"poi-map-service/internal/ports"
	"poi-map-service/internal/services"
)

// ItemHandler exposes read-only item retrieval endpoints.
type ItemHandler struct {
	Repo ports.ItemRepository
}

// List filters by ?category= (substring, "all" or empty for none) and
// ?search= (title or address), ranked by title match.
func (h *ItemHandler) List(w http.ResponseWriter, r *http.Request) {
	if !allowOnly(w, r, http.MethodGet) {
		return
	}

	q := domain.Query{
		Category: r.URL.Query().Get("category"),
		Search:   r.URL.Query().Get("search"),
	}

	items, err := services.ListItems(r.Context(), h.Repo, q)
	if err != nil {
		log.Printf("list items failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListItemsResponse{Items: make([]dto.ItemResponse, 0, len(items))}
	for _, it := range items {
		res.Items = append(res.Items, dto.FromItem(it))
	}

	writeJSON(w, r, http.StatusOK, res)
}

func (h *ItemHandler) Random(w http.ResponseWriter, r *http.Request) {
	if !allowOnly(w, r, http.MethodGet) {
		return
	}

	it, err := h.Repo.RandomItem(r.Context())
	if errors.Is(err, domain.ErrItemNotFound) {
		writeError(w, r, http.StatusNotFound, "no items")
		return
	}
	if err != nil {
		log.Printf("random item failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.FromItem(it))
}
