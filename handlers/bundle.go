package handlers

import "stayhaven/services/auth"

// HandlerBundle collects the handlers and shared collaborators the
// route registry needs.
type HandlerBundle struct {
	Auth     auth.Authorizer
	Bookings *BookingHandler
	Listings *ListingHandler
	Users    *UserHandler
}
