package models

// Film is a single rated entry in a user's list. Owner holds the username of
// the user the entry belongs to; IDs are store-assigned in insertion order.
type Film struct {
	ID     int    `json:"id"`
	Title  string `json:"title"`
	Rating int    `json:"rating"` // 1..10
	Owner  string `json:"owner"`
}
