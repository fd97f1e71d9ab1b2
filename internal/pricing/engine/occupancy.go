package engine

import (
	"rentpilot/pkg/calendar"
	"rentpilot/pkg/model"
)

type Occupancy struct {
	BookedNights    int
	AvailableNights int
	Rate            float64
}

// CalculateOccupancy counts the booked nights of one property inside period.
// The rate is capped at 1 because overlapping bookings are not rejected
// upstream and would otherwise over-count.
func CalculateOccupancy(period calendar.Period, bookings []*model.Booking) Occupancy {
	occ := Occupancy{AvailableNights: period.Days()}
	for _, b := range bookings {
		occ.BookedNights += period.OverlapNights(b.CheckIn(), b.CheckOut())
	}
	if occ.AvailableNights > 0 {
		occ.Rate = min(float64(occ.BookedNights)/float64(occ.AvailableNights), 1)
	}
	return occ
}

// IsBookedNight reports whether any booking occupies the night starting on d.
func IsBookedNight(d calendar.Date, bookings []*model.Booking) bool {
	night := calendar.Period{Start: d, End: d.AddDays(1)}
	for _, b := range bookings {
		if night.OverlapNights(b.CheckIn(), b.CheckOut()) > 0 {
			return true
		}
	}
	return false
}
