package dto

type RateRequest struct {
	ItemID int64 `json:"item_id"`
	Score  int   `json:"score"`
}

type RateResponse struct {
	ItemID      int64   `json:"item_id"`
	AvgRating   float64 `json:"avg_rating"`
	RatingCount int     `json:"rating_count"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
