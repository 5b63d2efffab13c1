package listingRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"stayhaven/database"
	"stayhaven/models"
	"stayhaven/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// MongoListingRepo implements ListingRepository using MongoDB.
type MongoListingRepo struct {
	coll *mongo.Collection
}

// NewMongoListingRepo creates a listing repository backed by the
// "listings" collection.
func NewMongoListingRepo() *MongoListingRepo {
	repo := &MongoListingRepo{
		coll: database.Database().Collection("listings"),
	}
	if err := repo.ensureIndexes(); err != nil {
		utils.GetLogger().Warn("failed to ensure listing indexes", zap.Error(err))
	}
	return repo
}

func (r *MongoListingRepo) GetByID(ctx context.Context, id string) (*models.Listing, error) {
	var listing models.Listing
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&listing)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to retrieve listing with id %s: %w", id, err)
	}
	return &listing, nil
}

func (r *MongoListingRepo) Create(ctx context.Context, listing *models.Listing) error {
	now := time.Now()
	listing.CreatedAt = now
	listing.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, listing); err != nil {
		return fmt.Errorf("failed to create listing: %w", err)
	}
	return nil
}

func (r *MongoListingRepo) ApplyReservation(ctx context.Context, id string, index models.BookingsIndex, bookingID string) error {
	update := bson.M{
		"$set":  bson.M{"bookings_index": index, "updated_at": time.Now()},
		"$push": bson.M{"bookings": bookingID},
	}
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to apply reservation to listing %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("listing with id %s not found", id)
	}
	return nil
}

func (r *MongoListingRepo) FindByHost(ctx context.Context, hostID string, page, limit int) ([]models.Listing, int64, error) {
	filter := bson.M{"host": hostID}

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count listings for host %s: %w", hostID, err)
	}

	skip := int64(0)
	if page > 1 {
		skip = int64(page-1) * int64(limit)
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(skip).
		SetLimit(int64(limit))

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query listings for host %s: %w", hostID, err)
	}
	defer cursor.Close(ctx)

	var listings []models.Listing
	if err := cursor.All(ctx, &listings); err != nil {
		return nil, 0, fmt.Errorf("failed to decode listings for host %s: %w", hostID, err)
	}
	return listings, total, nil
}
