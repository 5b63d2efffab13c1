package repository

import (
	bookingRepo "stayhaven/database/repository/booking"
	listingRepo "stayhaven/database/repository/listing"
	userRepo "stayhaven/database/repository/user"
)

// Re-export the ListingRepository interface and constructor.
type ListingRepository = listingRepo.ListingRepository

var NewMongoListingRepo = listingRepo.NewMongoListingRepo

// Re-export the UserRepository interface and constructor.
type UserRepository = userRepo.UserRepository

var NewMongoUserRepo = userRepo.NewMongoUserRepo

// Re-export the BookingRepository interface and constructor.
type BookingRepository = bookingRepo.BookingRepository

var NewMongoBookingRepo = bookingRepo.NewMongoBookingRepo
