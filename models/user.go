package models

import "time"

// User represents a platform user. The same record acts as host for the
// listings it owns and as tenant for the bookings it makes.
type User struct {
	ID       string `bson:"id" json:"id"`
	Name     string `bson:"name" json:"name"`
	Avatar   string `bson:"avatar" json:"avatar"`
	Contact  string `bson:"contact" json:"contact"`
	// WalletID is the connected payout account. A user without one
	// cannot receive bookings on their listings.
	WalletID string `bson:"wallet_id,omitempty" json:"walletId,omitempty"`
	// Income is in minor currency units and only ever grows, credited by
	// settled bookings on listings this user hosts.
	Income    int64     `bson:"income" json:"income"`
	Bookings  []string  `bson:"bookings" json:"bookings"` // booking IDs made as tenant
	Listings  []string  `bson:"listings" json:"listings"` // listing IDs owned as host
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// HasWallet reports whether the user can receive payouts.
func (u *User) HasWallet() bool {
	return u != nil && u.WalletID != ""
}
