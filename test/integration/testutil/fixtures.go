package testutil

import (
	"time"

	"rentpilot/pkg/model"
)

func Price(v float64) *float64 {
	return &v
}

func Day(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

type PropertyBuilder struct {
	p model.Property
}

func NewPropertyBuilder(id string) *PropertyBuilder {
	return &PropertyBuilder{
		p: model.Property{
			ID:            id,
			Name:          "Test Property " + id,
			PricePerNight: Price(100),
			Active:        true,
		},
	}
}

func (b *PropertyBuilder) WithPrice(price *float64) *PropertyBuilder {
	b.p.PricePerNight = price
	return b
}

func (b *PropertyBuilder) Inactive() *PropertyBuilder {
	b.p.Active = false
	return b
}

func (b *PropertyBuilder) Build() model.Property {
	return b.p
}

// NightsBooking books nights [checkIn, checkIn+nights) at pricePerNight.
func NightsBooking(id, propertyID string, checkIn time.Time, nights int, pricePerNight float64, status string) model.Booking {
	return model.Booking{
		ID:         id,
		PropertyID: propertyID,
		StartDate:  checkIn,
		EndDate:    checkIn.AddDate(0, 0, nights),
		TotalPrice: pricePerNight * float64(nights),
		Status:     status,
	}
}

type SeasonRuleInput struct {
	Name       string `json:"name"`
	Start      string `json:"start"`
	End        string `json:"end"`
	Multiplier any    `json:"multiplier"`
	Type       string `json:"type"`
}

func SummerHighSeason() SeasonRuleInput {
	return SeasonRuleInput{
		Name:       "Summer",
		Start:      "06-01",
		End:        "08-31",
		Multiplier: 1.2,
		Type:       "high",
	}
}
