package dto

import "poi-map-service/internal/domain"

type ItemResponse struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Address     string  `json:"address"`
	Category    string  `json:"category"`
	Lon         float64 `json:"lon"`
	Lat         float64 `json:"lat"`
	AvgRating   float64 `json:"avg_rating"`
	RatingCount int     `json:"rating_count"`
	URL         string  `json:"url,omitempty"`
}

type ListItemsResponse struct {
	Items []ItemResponse `json:"items"`
}

func FromItem(it domain.Item) ItemResponse {
	return ItemResponse{
		ID:          int64(it.ID),
		Title:       it.Title,
		Address:     it.Address,
		Category:    it.Category,
		Lon:         it.Coordinates.Lon,
		Lat:         it.Coordinates.Lat,
		AvgRating:   it.AvgRating,
		RatingCount: it.RatingCount,
		URL:         it.URL,
	}
}

func (r ItemResponse) ToItem() domain.Item {
	return domain.Item{
		ID:          domain.ItemID(r.ID),
		Title:       r.Title,
		Address:     r.Address,
		Category:    r.Category,
		Coordinates: domain.Coordinates{Lon: r.Lon, Lat: r.Lat},
		AvgRating:   r.AvgRating,
		RatingCount: r.RatingCount,
		URL:         r.URL,
	}
}
