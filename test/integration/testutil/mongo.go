package testutil

import (
	"context"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	gatewayrepo "rentpilot/internal/gateway/repository"
	seasonrulesrepo "rentpilot/internal/seasonrules/repository"
	"rentpilot/pkg/model"
)

const (
	DefaultMongoURI     = "mongodb://localhost:27017"
	DefaultDatabaseName = "rentpilot"
	ConnectionTimeout   = 10 * time.Second
)

// MongoHelper seeds and cleans the collections the pricing service reads.
type MongoHelper struct {
	Client   *mongo.Client
	Database *mongo.Database
}

func NewMongoHelper(t *testing.T, mongoURI, dbName string) *MongoHelper {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), ConnectionTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		t.Fatalf("failed to connect to MongoDB: %v", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		t.Fatalf("failed to ping MongoDB: %v", err)
	}

	return &MongoHelper{
		Client:   client,
		Database: client.Database(dbName),
	}
}

func (m *MongoHelper) Close(t *testing.T) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := m.Client.Disconnect(ctx); err != nil {
		t.Logf("warning: failed to disconnect from MongoDB: %v", err)
	}
}

// CleanDatabase empties every pricing collection but keeps validators and
// indexes created by the migration job.
func (m *MongoHelper) CleanDatabase(t *testing.T) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	for _, name := range []string{gatewayrepo.PropertiesCollection, gatewayrepo.BookingsCollection, seasonrulesrepo.CollectionName} {
		if _, err := m.Database.Collection(name).DeleteMany(ctx, bson.M{}); err != nil {
			t.Fatalf("failed to clean collection %s: %v", name, err)
		}
	}
}

func (m *MongoHelper) InsertProperties(t *testing.T, properties ...model.Property) {
	t.Helper()
	seed(t, m.Database.Collection(gatewayrepo.PropertiesCollection), properties)
}

func (m *MongoHelper) InsertBookings(t *testing.T, bookings ...model.Booking) {
	t.Helper()
	seed(t, m.Database.Collection(gatewayrepo.BookingsCollection), bookings)
}

// FindPrice returns the stored nightly price of a property.
func (m *MongoHelper) FindPrice(t *testing.T, id string) *float64 {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var p model.Property
	if err := m.Database.Collection(gatewayrepo.PropertiesCollection).FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		t.Fatalf("failed to find property %s: %v", id, err)
	}
	return p.PricePerNight
}

func seed[T any](t *testing.T, coll *mongo.Collection, docs []T) {
	t.Helper()
	if len(docs) == 0 {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	items := make([]any, len(docs))
	for i := range docs {
		items[i] = docs[i]
	}
	if _, err := coll.InsertMany(ctx, items); err != nil {
		t.Fatalf("failed to seed %s: %v", coll.Name(), err)
	}
}
