package model

import (
	"rentpilot/pkg/calendar"
	"time"
)

type ReasonCode string

const (
	ReasonBase          ReasonCode = "base"
	ReasonHighSeason    ReasonCode = "highSeason"
	ReasonMidSeason     ReasonCode = "midSeason"
	ReasonLowSeason     ReasonCode = "lowSeason"
	ReasonHighOccupancy ReasonCode = "highOccupancy"
	ReasonLowOccupancy  ReasonCode = "lowOccupancy"
	ReasonWeekend       ReasonCode = "weekend"
)

type PriceSuggestion struct {
	PropertyID     string        `json:"property_id"`
	PropertyName   string        `json:"property_name,omitempty"`
	Date           calendar.Date `json:"date"`
	CurrentPrice   float64       `json:"current_price"`
	SuggestedPrice int64         `json:"suggested_price"`
	OccupancyRate  float64       `json:"occupancy_rate"`
	Reason         ReasonCode    `json:"reason"`
	Delta          float64       `json:"delta"`
}

type DaySuggestion struct {
	Date   calendar.Date `json:"date"`
	Price  int64         `json:"price"`
	Reason ReasonCode    `json:"reason"`
	Booked bool          `json:"booked"`
}

type PropertyCalendar struct {
	PropertyID    string          `json:"property_id"`
	Month         string          `json:"month"`
	BasePrice     float64         `json:"base_price"`
	OccupancyRate float64         `json:"occupancy_rate"`
	BookedNights  int             `json:"booked_nights"`
	Days          []DaySuggestion `json:"days"`
}

type MonthKPISet struct {
	Month            string  `json:"month"`
	RevPAR           float64 `json:"revpar"`
	ADR              float64 `json:"adr"`
	AvgOccupancy     float64 `json:"avg_occupancy"`
	PotentialRevenue float64 `json:"potential_revenue"`
	TotalRevenue     float64 `json:"total_revenue"`
	BookedNights     int     `json:"booked_nights"`
	AvailableNights  int     `json:"available_nights"`
	PropertyCount    int     `json:"property_count"`
}

// ApplyPriceRequest carries the nightly price to write back. Price is a
// pointer so an omitted price is rejected instead of applied as zero.
type ApplyPriceRequest struct {
	Price  *int64     `json:"price" validate:"required,gte=0"`
	Reason ReasonCode `json:"reason,omitempty" validate:"omitempty,oneof=base highSeason midSeason lowSeason highOccupancy lowOccupancy weekend"`
}

func NewApplyPriceRequest(price int64, reason ReasonCode) ApplyPriceRequest {
	return ApplyPriceRequest{Price: &price, Reason: reason}
}

type PriceAppliedEvent struct {
	TenantID      string     `json:"tenant_id"`
	PropertyID    string     `json:"property_id"`
	PreviousPrice *float64   `json:"previous_price,omitempty"`
	NewPrice      int64      `json:"new_price"`
	Reason        ReasonCode `json:"reason,omitempty"`
	AppliedAt     time.Time  `json:"applied_at"`
}
