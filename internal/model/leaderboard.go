package model

// RankedItem is one leaderboard row: an item and its aggregate count.
type RankedItem struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
}
