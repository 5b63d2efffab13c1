package models

// CreateBookingInput is the payload for reserving a listing.
type CreateBookingInput struct {
	ListingID string `json:"listingId" binding:"required"`
	Source    string `json:"source" binding:"required"` // payment source token
	CheckIn   string `json:"checkIn" binding:"required"`
	CheckOut  string `json:"checkOut" binding:"required"`
}

// HostListingInput is the payload for publishing a new listing.
type HostListingInput struct {
	Title       string      `json:"title" binding:"required"`
	Description string      `json:"description" binding:"required"`
	Image       string      `json:"image" binding:"required"` // base64-encoded image data
	Type        ListingType `json:"type" binding:"required"`
	Address     string      `json:"address" binding:"required"`
	Price       int64       `json:"price" binding:"required"` // nightly rate in minor currency units
	NumOfGuests int         `json:"numOfGuests" binding:"required"`
}

// ConnectWalletInput carries the payout-provider OAuth code exchanged
// for a connected account ID.
type ConnectWalletInput struct {
	Code string `json:"code" binding:"required"`
}
