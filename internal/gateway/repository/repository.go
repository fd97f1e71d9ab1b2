// Package repository reads properties and bookings from the shared MongoDB
// store of record and writes accepted nightly prices back to it.
package repository

import (
	"context"
	"strings"
	"time"

	gatewayerrors "rentpilot/internal/gateway/errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	PropertiesCollection = "Properties"
	BookingsCollection   = "Bookings"
)

// withTimeout wraps the context with a timeout if not already in a transaction.
// Inside a transaction the SessionContext is returned unchanged with a no-op
// cancel, since wrapping it would detach the operation from the session.
func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.(mongo.SessionContext); ok {
		return ctx, func() {}
	}

	deadline, hasDeadline := ctx.Deadline()
	if !hasDeadline {
		return context.WithTimeout(ctx, timeout)
	}

	remaining := time.Until(deadline)
	if remaining < timeout {
		return context.WithTimeout(ctx, remaining)
	}

	return context.WithTimeout(ctx, timeout)
}

// idValues returns every stored form an external id may take. Documents
// created by other services use ObjectIDs, imported ones plain strings.
func idValues(id string) ([]any, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, gatewayerrors.ErrInvalidPropertyID
	}
	values := []any{id}
	if oid, err := primitive.ObjectIDFromHex(id); err == nil {
		values = append(values, oid)
	}
	return values, nil
}
