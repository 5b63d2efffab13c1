package models

import "time"

// Booking represents a confirmed reservation of a listing by a tenant
// for an inclusive date range. Bookings are created exactly once and
// never mutated afterwards.
type Booking struct {
	ID        string    `bson:"id" json:"id"`
	Listing   string    `bson:"listing" json:"listing"` // listing ID being reserved
	Tenant    string    `bson:"tenant" json:"tenant"`   // user ID who booked
	CheckIn   string    `bson:"check_in" json:"checkIn"`   // "2006-01-02", UTC day
	CheckOut  string    `bson:"check_out" json:"checkOut"` // "2006-01-02", UTC day, >= CheckIn
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
}
