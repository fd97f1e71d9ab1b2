// Package engine computes suggested nightly prices and month KPIs from an
// in-memory snapshot of properties, bookings and season rules. Everything
// here is a pure function of its inputs.
package engine

import (
	"rentpilot/pkg/calendar"
	"rentpilot/pkg/model"

	"github.com/shopspring/decimal"
)

const DefaultFallbackBasePrice = 100

// PropertySnapshot pairs a property with its non-cancelled bookings.
type PropertySnapshot struct {
	Property *model.Property
	Bookings []*model.Booking
}

type Engine struct {
	fallbackBasePrice float64
}

func New(fallbackBasePrice float64) *Engine {
	if fallbackBasePrice <= 0 {
		fallbackBasePrice = DefaultFallbackBasePrice
	}
	return &Engine{fallbackBasePrice: fallbackBasePrice}
}

func (e *Engine) BasePrice(p *model.Property) float64 {
	return p.BasePrice(e.fallbackBasePrice)
}

// SuggestForProperty prices the night of d using the occupancy of the
// calendar month that contains d.
func (e *Engine) SuggestForProperty(s PropertySnapshot, d calendar.Date, rules []model.SeasonRule) model.PriceSuggestion {
	base := e.BasePrice(s.Property)
	occ := CalculateOccupancy(d.YearMonth().Period(), s.Bookings)
	price, reason := Suggest(base, d, rules, occ.Rate)

	delta := decimal.NewFromInt(price).Sub(decimal.NewFromFloat(base))
	return model.PriceSuggestion{
		PropertyID:     s.Property.ID,
		PropertyName:   s.Property.Name,
		Date:           d,
		CurrentPrice:   base,
		SuggestedPrice: price,
		OccupancyRate:  roundRate(occ.Rate),
		Reason:         reason,
		Delta:          delta.Round(2).InexactFloat64(),
	}
}

// MonthCalendar prices every night of month for one property. All nights
// share the month's occupancy rate.
func (e *Engine) MonthCalendar(s PropertySnapshot, month calendar.Month, rules []model.SeasonRule) model.PropertyCalendar {
	base := e.BasePrice(s.Property)
	period := month.Period()
	occ := CalculateOccupancy(period, s.Bookings)

	days := make([]model.DaySuggestion, 0, period.Days())
	period.Each(func(d calendar.Date) {
		price, reason := Suggest(base, d, rules, occ.Rate)
		days = append(days, model.DaySuggestion{
			Date:   d,
			Price:  price,
			Reason: reason,
			Booked: IsBookedNight(d, s.Bookings),
		})
	})

	return model.PropertyCalendar{
		PropertyID:    s.Property.ID,
		Month:         month.String(),
		BasePrice:     base,
		OccupancyRate: roundRate(occ.Rate),
		BookedNights:  occ.BookedNights,
		Days:          days,
	}
}

func roundRate(rate float64) float64 {
	return decimal.NewFromFloat(rate).Round(4).InexactFloat64()
}
