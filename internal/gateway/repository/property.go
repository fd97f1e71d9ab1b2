package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	gatewayerrors "rentpilot/internal/gateway/errors"
	"rentpilot/pkg/config"
	"rentpilot/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type PropertyRepository interface {
	FetchActive(ctx context.Context) ([]*model.Property, error)
	FindByID(ctx context.Context, id string) (*model.Property, error)
	UpdatePrice(ctx context.Context, id string, price float64) error
}

type mongoPropertyRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoPropertyRepository(cfg *config.Config) PropertyRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoPropertyRepository{
		cfg:        cfg,
		collection: db.Collection(PropertiesCollection),
	}
}

func (r *mongoPropertyRepository) FetchActive(ctx context.Context) ([]*model.Property, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}, {Key: "_id", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.M{"active": true}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find properties: %w", err)
	}
	defer cursor.Close(ctx)

	properties := make([]*model.Property, 0)
	if err = cursor.All(ctx, &properties); err != nil {
		return nil, fmt.Errorf("failed to decode properties: %w", err)
	}

	return properties, nil
}

func (r *mongoPropertyRepository) FindByID(ctx context.Context, id string) (*model.Property, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	ids, err := idValues(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", err, id)
	}

	var property model.Property
	err = r.collection.FindOne(ctx, bson.M{"_id": bson.M{"$in": ids}}).Decode(&property)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, gatewayerrors.ErrPropertyNotFound
		}
		return nil, fmt.Errorf("failed to find property: %w", err)
	}

	return &property, nil
}

// UpdatePrice is the single write the pricing service performs: it replaces
// the nightly price of one property. It never creates properties.
func (r *mongoPropertyRepository) UpdatePrice(ctx context.Context, id string, price float64) error {
	ctx, cancel := withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	ids, err := idValues(id)
	if err != nil {
		return fmt.Errorf("%w: %q", err, id)
	}

	update := bson.M{"$set": bson.M{
		"price_per_night": price,
		"updated_at":      time.Now().UTC().Truncate(time.Millisecond),
	}}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": bson.M{"$in": ids}}, update)
	if err != nil {
		return fmt.Errorf("failed to update property price: %w", err)
	}
	if result.MatchedCount == 0 {
		return gatewayerrors.ErrPropertyNotFound
	}

	return nil
}
