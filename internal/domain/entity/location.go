package entity

import "time"

// Location is a physical stocking place (store, warehouse, shelf section).
type Location struct {
	ID        string
	Name      string
	Type      string
	Address   string
	CreatedAt time.Time
}
