package model

import (
	"rentpilot/pkg/calendar"
	"time"
)

const (
	BookingPending   = "pending"
	BookingConfirmed = "confirmed"
	BookingCompleted = "completed"
	BookingCancelled = "cancelled"
)

// Booking is read-only to the pricing service. EndDate is the checkout day
// and is not an occupied night.
type Booking struct {
	ID         string    `json:"id" bson:"_id,omitempty"`
	PropertyID string    `json:"property_id" bson:"property_id"`
	StartDate  time.Time `json:"start_date" bson:"start_date"`
	EndDate    time.Time `json:"end_date" bson:"end_date"`
	TotalPrice float64   `json:"total_price" bson:"total_price"`
	Status     string    `json:"status" bson:"status"`
}

func (b *Booking) CheckIn() calendar.Date {
	return calendar.FromTime(b.StartDate)
}

func (b *Booking) CheckOut() calendar.Date {
	return calendar.FromTime(b.EndDate)
}

func (b *Booking) Nights() int {
	return max(0, calendar.DaysBetween(b.CheckIn(), b.CheckOut()))
}
