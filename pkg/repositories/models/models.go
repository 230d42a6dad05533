package models

// Score is the result of one finished session.
type Score struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Points     int    `json:"points"`
	Kills      int    `json:"kills"`
	Wave       int    `json:"wave"`
	DurationMS int64  `json:"durationMs"`
	// CreatedAt is a unix timestamp in milliseconds
	CreatedAt int64 `json:"createdAt"`
}
