package models

import "time"

// ListingType enumerates the kinds of accommodation that can be hosted.
type ListingType string

const (
	ListingTypeApartment ListingType = "apartment"
	ListingTypeHouse     ListingType = "house"
)

// BookingsIndex records which days of a listing are reserved. Keys are
// year -> month (0-11) -> day-of-month, all decimal strings so the
// structure round-trips through BSON unchanged. A day is reserved when
// its entry exists and is true.
type BookingsIndex map[string]map[string]map[string]bool

// Listing represents a bookable unit of accommodation.
type Listing struct {
	ID            string        `bson:"id" json:"id"`
	Title         string        `bson:"title" json:"title"`
	Description   string        `bson:"description" json:"description"`
	Image         string        `bson:"image" json:"image"`
	Host          string        `bson:"host" json:"host"` // owning user's ID, immutable after creation
	Type          ListingType   `bson:"type" json:"type"`
	Address       string        `bson:"address" json:"address"`
	Country       string        `bson:"country" json:"country"`
	State         string        `bson:"state" json:"state"`
	City          string        `bson:"city" json:"city"`
	Price         int64         `bson:"price" json:"price"` // nightly rate in minor currency units
	NumOfGuests   int           `bson:"num_of_guests" json:"numOfGuests"`
	Bookings      []string      `bson:"bookings" json:"bookings"` // booking IDs, append-only
	BookingsIndex BookingsIndex `bson:"bookings_index" json:"bookingsIndex"`
	CreatedAt     time.Time     `bson:"created_at" json:"createdAt"`
	UpdatedAt     time.Time     `bson:"updated_at" json:"updatedAt"`
}
