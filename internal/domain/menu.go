package domain

import "time"

// MenuCategory groups menu items ("Soins visage", "Cryolipolyse", ...).
type MenuCategory struct {
	ID   int64
	Name string
	Slug string
}

// MenuItem is a bookable salon service. DurationMinutes drives the slot
// computation; Price is in the salon currency's smallest unit.
type MenuItem struct {
	ID              int64
	CategoryID      int64
	CategoryName    string
	Name            string
	Description     string
	Price           int64
	DurationMinutes int
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
