package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strings"

	"poi-map-service/internal/api/dto"
	"poi-map-service/internal/domain"
	"poi-map-service/internal/ports"
	"poi-map-service/internal/services"
)

type RatingHandler struct {
	Repo ports.ItemRepository
}

// Rate records a 1..5 score from the user named in the X-User-Name header and
// responds with the item's new running average.
func (h *RatingHandler) Rate(w http.ResponseWriter, r *http.Request) {
	if !allowOnly(w, r, http.MethodPost) {
		return
	}

	user := strings.TrimSpace(r.Header.Get(UserHeader))
	if user == "" {
		writeError(w, r, http.StatusUnauthorized, "login required")
		return
	}

	var req dto.RateRequest

	dec := json.NewDecoder(io.LimitReader(r.Body, 1<<20))
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	res, err := services.RateItem(r.Context(), h.Repo, user, domain.ItemID(req.ItemID), req.Score)
	switch {
	case errors.Is(err, domain.ErrInvalidScore):
		writeError(w, r, http.StatusBadRequest, "score must be between 1 and 5")
		return
	case errors.Is(err, domain.ErrItemNotFound):
		writeError(w, r, http.StatusNotFound, "item not found")
		return
	case err != nil:
		log.Printf("rate item failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.RateResponse{
		ItemID:      int64(res.ItemID),
		AvgRating:   res.AvgRating,
		RatingCount: res.RatingCount,
	})
}
