package testutil

import (
	"context"
	"os"
	"testing"
	"time"

	"rentpilot/pkg/client"
	"rentpilot/pkg/middleware"
)

const (
	DefaultHealthCheckTimeout = 30 * time.Second
	DefaultTenantID           = "integration"
)

type TestEnv struct {
	MongoURI     string
	DatabaseName string
	ServerURL    string
	TenantID     string
}

// NewTestEnv reads the target deployment from the environment. Suites are
// skipped unless TEST_SERVER_URL points at a running pricing service.
func NewTestEnv(t *testing.T) *TestEnv {
	t.Helper()

	serverURL := os.Getenv("TEST_SERVER_URL")
	if serverURL == "" {
		t.Skip("TEST_SERVER_URL not set, skipping integration test")
	}

	return &TestEnv{
		MongoURI:     getEnv("TEST_MONGO_URI", DefaultMongoURI),
		DatabaseName: getEnv("TEST_DB_NAME", DefaultDatabaseName),
		ServerURL:    serverURL,
		TenantID:     getEnv("TEST_TENANT_ID", DefaultTenantID),
	}
}

func (e *TestEnv) Setup(t *testing.T) (*MongoHelper, *client.PricingClient) {
	t.Helper()

	mongo := NewMongoHelper(t, e.MongoURI, e.DatabaseName)
	mongo.CleanDatabase(t)

	health := client.NewHttpClient(e.ServerURL)
	if err := health.WaitForHealthy(context.Background(), DefaultHealthCheckTimeout); err != nil {
		t.Fatalf("pricing service not healthy: %v", err)
	}

	return mongo, client.NewPricingClient(e.ServerURL, middleware.DefaultTenantHeader, e.TenantID)
}

func (e *TestEnv) Cleanup(t *testing.T, mongo *MongoHelper) {
	t.Helper()

	if mongo != nil {
		mongo.CleanDatabase(t)
		mongo.Close(t)
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
