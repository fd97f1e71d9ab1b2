package engine

import (
	"rentpilot/pkg/calendar"
	"rentpilot/pkg/model"

	"github.com/shopspring/decimal"
)

// MonthKPIs aggregates RevPAR, ADR, average occupancy and potential revenue
// for month over every snapshot. Potential revenue multiplies the price
// suggested for today by each property's month occupancy.
func (e *Engine) MonthKPIs(month calendar.Month, today calendar.Date, snapshots []PropertySnapshot, rules []model.SeasonRule) model.MonthKPISet {
	kpis := model.MonthKPISet{Month: month.String(), PropertyCount: len(snapshots)}
	if len(snapshots) == 0 {
		return kpis
	}

	period := month.Period()
	daysInMonth := decimal.NewFromInt(int64(month.Days()))
	revenue := decimal.Zero
	potential := decimal.Zero
	occupancySum := decimal.Zero

	for _, s := range snapshots {
		occ := CalculateOccupancy(period, s.Bookings)
		rate := decimal.NewFromFloat(occ.Rate)

		kpis.BookedNights += occ.BookedNights
		kpis.AvailableNights += occ.AvailableNights
		occupancySum = occupancySum.Add(rate)
		revenue = revenue.Add(revenueInPeriod(period, s.Bookings))

		todayPrice, _ := Suggest(e.BasePrice(s.Property), today, rules, occ.Rate)
		potential = potential.Add(decimal.NewFromInt(todayPrice).Mul(daysInMonth).Mul(rate))
	}

	count := decimal.NewFromInt(int64(len(snapshots)))
	kpis.TotalRevenue = revenue.Round(2).InexactFloat64()
	kpis.RevPAR = revenue.Div(count.Mul(daysInMonth)).Round(2).InexactFloat64()
	if kpis.BookedNights > 0 {
		kpis.ADR = revenue.Div(decimal.NewFromInt(int64(kpis.BookedNights))).Round(2).InexactFloat64()
	}
	kpis.AvgOccupancy = occupancySum.Div(count).Round(4).InexactFloat64()
	kpis.PotentialRevenue = potential.Round(2).InexactFloat64()
	return kpis
}

// revenueInPeriod attributes each booking's total to period pro rata by
// nights. A zero-night booking counts wholly toward the period holding its
// check-in day.
func revenueInPeriod(period calendar.Period, bookings []*model.Booking) decimal.Decimal {
	total := decimal.Zero
	for _, b := range bookings {
		price := decimal.NewFromFloat(b.TotalPrice)
		nights := b.Nights()
		if nights == 0 {
			if period.Contains(b.CheckIn()) {
				total = total.Add(price)
			}
			continue
		}
		inPeriod := period.OverlapNights(b.CheckIn(), b.CheckOut())
		if inPeriod == 0 {
			continue
		}
		total = total.Add(price.Mul(decimal.NewFromInt(int64(inPeriod))).Div(decimal.NewFromInt(int64(nights))))
	}
	return total
}
