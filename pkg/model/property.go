package model

import "time"

type Property struct {
	ID            string    `json:"id" bson:"_id,omitempty"`
	Name          string    `json:"name" bson:"name"`
	PricePerNight *float64  `json:"price_per_night,omitempty" bson:"price_per_night,omitempty"`
	Active        bool      `json:"active" bson:"active"`
	UpdatedAt     time.Time `json:"updated_at,omitempty" bson:"updated_at,omitempty"`
}

// BasePrice returns the nightly price, or fallback when none is set or the
// stored value is negative.
func (p *Property) BasePrice(fallback float64) float64 {
	if p.PricePerNight == nil || *p.PricePerNight < 0 {
		return fallback
	}
	return *p.PricePerNight
}
