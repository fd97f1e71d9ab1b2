package engine

import (
	"math"

	"rentpilot/pkg/calendar"
	"rentpilot/pkg/model"

	"github.com/shopspring/decimal"
)

const (
	HighOccupancyThreshold = 0.8
	LowOccupancyThreshold  = 0.3
)

var (
	highOccupancyFactor = decimal.RequireFromString("1.15")
	lowOccupancyFactor  = decimal.RequireFromString("0.85")
	weekendFactor       = decimal.RequireFromString("1.10")
)

// Suggest prices one night. The steps run in a fixed order: season sets the
// baseline, occupancy overrides the reason, and the weekend premium only
// labels the result when nothing more specific applied.
func Suggest(basePrice float64, d calendar.Date, rules []model.SeasonRule, occupancyRate float64) (int64, model.ReasonCode) {
	multiplier := decimal.NewFromInt(1)
	reason := model.ReasonBase

	if rule, ok := MatchSeason(rules, d); ok {
		if usableMultiplier(rule.Multiplier) {
			multiplier = decimal.NewFromFloat(rule.Multiplier)
		}
		reason = seasonReason(rule.Type)
	}

	if occupancyRate >= HighOccupancyThreshold {
		multiplier = multiplier.Mul(highOccupancyFactor)
		reason = model.ReasonHighOccupancy
	} else if occupancyRate < LowOccupancyThreshold {
		multiplier = multiplier.Mul(lowOccupancyFactor)
		reason = model.ReasonLowOccupancy
	}

	if d.IsWeekendNight() {
		multiplier = multiplier.Mul(weekendFactor)
		if reason == model.ReasonBase {
			reason = model.ReasonWeekend
		}
	}

	price := decimal.NewFromFloat(basePrice).Mul(multiplier).Round(0)
	return price.IntPart(), reason
}

// usableMultiplier rejects stored multipliers the rule store would refuse
// today; such rules keep their reason but leave the price at base.
func usableMultiplier(m float64) bool {
	return !math.IsNaN(m) && !math.IsInf(m, 0) && m > 0 && m <= model.MaxSeasonMultiplier
}
