package models

// ListingsPage is one page of listings plus the total match count.
type ListingsPage struct {
	Total  int64     `json:"total"`
	Result []Listing `json:"result"`
}

// BookingsPage is one page of bookings plus the total match count.
type BookingsPage struct {
	Total  int64     `json:"total"`
	Result []Booking `json:"result"`
}
