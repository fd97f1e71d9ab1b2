package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	gatewayerrors "rentpilot/internal/gateway/errors"
	"rentpilot/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestIDValues(t *testing.T) {
	hex := primitive.NewObjectID().Hex()

	tests := []struct {
		name    string
		id      string
		want    int
		wantErr error
	}{
		{"plain string", "villa-1", 1, nil},
		{"object id hex", hex, 2, nil},
		{"blank", "  ", 0, gatewayerrors.ErrInvalidPropertyID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := idValues(tt.id)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("idValues(%q) error = %v, want %v", tt.id, err, tt.wantErr)
			}
			if len(got) != tt.want {
				t.Errorf("idValues(%q) returned %d values, want %d", tt.id, len(got), tt.want)
			}
		})
	}
}

func TestActiveBookingsFilter(t *testing.T) {
	from := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 8, 1, 0, 0, 0, 0, time.UTC)

	filter := activeBookingsFilter([]string{"p1", ""}, from, to)

	status, ok := filter["status"].(bson.M)
	if !ok || status["$ne"] != model.BookingCancelled {
		t.Errorf("expected cancelled bookings to be excluded, got %v", filter["status"])
	}

	ids := filter["property_id"].(bson.M)["$in"].([]any)
	if len(ids) != 1 || ids[0] != "p1" {
		t.Errorf("expected blank ids to be skipped, got %v", ids)
	}

	if filter["start_date"].(bson.M)["$lt"] != to {
		t.Errorf("expected start_date < to")
	}
	if filter["end_date"].(bson.M)["$gte"] != from {
		t.Errorf("expected end_date >= from")
	}
}

func TestWithTimeout_RespectsEarlierDeadline(t *testing.T) {
	parent, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	ctx, cancel2 := withTimeout(parent, time.Hour)
	defer cancel2()

	deadline, ok := ctx.Deadline()
	if !ok {
		t.Fatal("expected a deadline")
	}
	if time.Until(deadline) > time.Second {
		t.Errorf("expected parent deadline to win, got %v remaining", time.Until(deadline))
	}
}
