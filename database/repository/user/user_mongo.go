package userRepo

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
	"go.uber.org/zap"
)

// MongoUserRepo implements UserRepository using MongoDB.
type MongoUserRepo struct {
	coll *mongo.Collection
}

// NewMongoUserRepo creates a user repository backed by the "users" collection.
func NewMongoUserRepo() *MongoUserRepo {
	repo := &MongoUserRepo{
		coll: database.Database().Collection("users"),
	}
	if err := repo.ensureIndexes(); err != nil {
		utils.GetLogger().Warn("failed to ensure user indexes", zap.Error(err))
	}
	return repo
}

func (r *MongoUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to retrieve user with id %s: %w", id, err)
	}
	return &user, nil
}

func (r *MongoUserRepo) AppendBooking(ctx context.Context, id, bookingID string) error {
	update := bson.M{
		"$push": bson.M{"bookings": bookingID},
		"$set":  bson.M{"updated_at": time.Now()},
	}
	return r.updateOne(ctx, id, update)
}

func (r *MongoUserRepo) AppendListing(ctx context.Context, id, listingID string) error {
	update := bson.M{
		"$push": bson.M{"listings": listingID},
		"$set":  bson.M{"updated_at": time.Now()},
	}
	return r.updateOne(ctx, id, update)
}

func (r *MongoUserRepo) AddIncome(ctx context.Context, id string, amount int64) error {
	update := bson.M{
		"$inc": bson.M{"income": amount},
		"$set": bson.M{"updated_at": time.Now()},
	}
	return r.updateOne(ctx, id, update)
}

func (r *MongoUserRepo) SetWallet(ctx context.Context, id, walletID string) error {
	var update bson.M
	if walletID == "" {
		update = bson.M{
			"$unset": bson.M{"wallet_id": ""},
			"$set":   bson.M{"updated_at": time.Now()},
		}
	} else {
		update = bson.M{
			"$set": bson.M{"wallet_id": walletID, "updated_at": time.Now()},
		}
	}
	return r.updateOne(ctx, id, update)
}

func (r *MongoUserRepo) updateOne(ctx context.Context, id string, update bson.M) error {
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to update user with id %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("user with id %s not found", id)
	}
	return nil
}
