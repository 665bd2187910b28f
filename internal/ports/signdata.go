package ports

import "context"

// SignData is the response contract of the astrology-data fallback API.
type SignData struct {
	CurrentDate   string `json:"current_date"`
	Description   string `json:"description"`
	Compatibility string `json:"compatibility"`
	Mood          string `json:"mood"`
	Color         string `json:"color"`
	LuckyNumber   string `json:"lucky_number"`
	LuckyTime     string `json:"lucky_time"`
}

// SignDataSource fetches pre-written sign data when the generator is
// unavailable. The source is treated as unreliable; adapters retry a bounded
// number of times before giving up.
type SignDataSource interface {
	Fetch(ctx context.Context, sign, day string) (SignData, error)
}
