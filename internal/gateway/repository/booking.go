package repository

import (
	"context"
	"fmt"
	"time"

	"rentpilot/pkg/config"
	"rentpilot/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type BookingRepository interface {
	// FetchActive returns non-cancelled bookings of the given properties that
	// touch [from, to). Zero-night bookings starting on from are included.
	FetchActive(ctx context.Context, propertyIDs []string, from, to time.Time) ([]*model.Booking, error)
}

type mongoBookingRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoBookingRepository(cfg *config.Config) BookingRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoBookingRepository{
		cfg:        cfg,
		collection: db.Collection(BookingsCollection),
	}
}

func (r *mongoBookingRepository) FetchActive(ctx context.Context, propertyIDs []string, from, to time.Time) ([]*model.Booking, error) {
	if len(propertyIDs) == 0 {
		return []*model.Booking{}, nil
	}

	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "property_id", Value: 1}, {Key: "start_date", Value: 1}})

	cursor, err := r.collection.Find(ctx, activeBookingsFilter(propertyIDs, from, to), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find bookings: %w", err)
	}
	defer cursor.Close(ctx)

	bookings := make([]*model.Booking, 0)
	if err = cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}

	return bookings, nil
}

func activeBookingsFilter(propertyIDs []string, from, to time.Time) bson.M {
	ids := make([]any, 0, len(propertyIDs)*2)
	for _, id := range propertyIDs {
		if values, err := idValues(id); err == nil {
			ids = append(ids, values...)
		}
	}

	return bson.M{
		"property_id": bson.M{"$in": ids},
		"status":      bson.M{"$ne": model.BookingCancelled},
		"start_date":  bson.M{"$lt": to},
		"end_date":    bson.M{"$gte": from},
	}
}
