package engine

import (
	"rentpilot/pkg/calendar"
	"rentpilot/pkg/model"
)

// MatchSeason returns the first rule in list order whose range contains d.
// Narrower rules later in the list never win over an earlier match.
func MatchSeason(rules []model.SeasonRule, d calendar.Date) (model.SeasonRule, bool) {
	md := d.MonthDay()
	for _, rule := range rules {
		if calendar.InRange(rule.Start, rule.End, md) {
			return rule, true
		}
	}
	return model.SeasonRule{}, false
}

func seasonReason(t model.SeasonType) model.ReasonCode {
	switch t {
	case model.SeasonHigh:
		return model.ReasonHighSeason
	case model.SeasonMid:
		return model.ReasonMidSeason
	case model.SeasonLow:
		return model.ReasonLowSeason
	default:
		return model.ReasonBase
	}
}
