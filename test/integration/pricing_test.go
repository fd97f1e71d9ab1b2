package integration

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"rentpilot/pkg/client"
	"rentpilot/pkg/model"
	"rentpilot/test/integration/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// July 2030 starts on a Monday. The 3rd is a Wednesday night.

func TestSuggestionsAndApply(t *testing.T) {
	env := testutil.NewTestEnv(t)
	mongo, api := env.Setup(t)
	defer env.Cleanup(t, mongo)
	ctx := context.Background()

	mongo.InsertProperties(t,
		testutil.NewPropertyBuilder("beach").Build(),
		testutil.NewPropertyBuilder("cabin").WithPrice(nil).Build(),
		testutil.NewPropertyBuilder("closed").Inactive().Build(),
	)
	mongo.InsertBookings(t,
		testutil.NightsBooking("b1", "beach", testutil.Day(2030, time.July, 1), 28, 100, model.BookingConfirmed),
		testutil.NightsBooking("b2", "cabin", testutil.Day(2030, time.July, 1), 28, 100, model.BookingCancelled),
	)

	rule, err := api.AddRule(ctx, testutil.SummerHighSeason())
	require.NoError(t, err)
	defer func() { _ = api.RemoveRule(ctx, rule.ID) }()

	suggestions, err := api.Suggestions(ctx, "2030-07-03")
	require.NoError(t, err)
	require.Len(t, suggestions, 2, "inactive properties are not priced")

	byID := map[string]model.PriceSuggestion{}
	for _, s := range suggestions {
		byID[s.PropertyID] = s
	}
	assert.Equal(t, int64(138), byID["beach"].SuggestedPrice)
	assert.Equal(t, model.ReasonHighOccupancy, byID["beach"].Reason)
	assert.Equal(t, int64(102), byID["cabin"].SuggestedPrice, "cancelled bookings do not count")
	assert.Equal(t, model.ReasonLowOccupancy, byID["cabin"].Reason)

	event, err := api.Apply(ctx, "beach", model.NewApplyPriceRequest(138, model.ReasonHighOccupancy), "apply-beach-1")
	require.NoError(t, err)
	assert.Equal(t, int64(138), event.NewPrice)
	assert.Equal(t, 138.0, *mongo.FindPrice(t, "beach"))

	replayed, err := api.Apply(ctx, "beach", model.NewApplyPriceRequest(138, ""), "apply-beach-1")
	require.NoError(t, err)
	assert.Equal(t, event.AppliedAt, replayed.AppliedAt, "same idempotency key replays the first response")
}

func TestCalendarAndKPIs(t *testing.T) {
	env := testutil.NewTestEnv(t)
	mongo, api := env.Setup(t)
	defer env.Cleanup(t, mongo)
	ctx := context.Background()

	mongo.InsertProperties(t, testutil.NewPropertyBuilder("loft").Build())
	mongo.InsertBookings(t,
		testutil.NightsBooking("b1", "loft", testutil.Day(2030, time.July, 30), 4, 150, model.BookingConfirmed),
	)

	cal, err := api.Calendar(ctx, "loft", "2030-07")
	require.NoError(t, err)
	require.Len(t, cal.Days, 31)
	assert.Equal(t, 2, cal.BookedNights)
	assert.True(t, cal.Days[29].Booked)
	assert.False(t, cal.Days[28].Booked)

	kpis, err := api.KPIs(ctx, "2030-07")
	require.NoError(t, err)
	assert.Equal(t, 1, kpis.PropertyCount)
	assert.Equal(t, 300.0, kpis.TotalRevenue, "half of the booking's nights fall in July")
	assert.Equal(t, 150.0, kpis.ADR)
}

func TestApply_UnknownProperty(t *testing.T) {
	env := testutil.NewTestEnv(t)
	mongo, api := env.Setup(t)
	defer env.Cleanup(t, mongo)

	_, err := api.Apply(context.Background(), "ghost", model.NewApplyPriceRequest(90, ""), "")

	var statusErr *client.StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusNotFound, statusErr.StatusCode)
}

func TestSeasonRules_Lifecycle(t *testing.T) {
	env := testutil.NewTestEnv(t)
	mongo, api := env.Setup(t)
	defer env.Cleanup(t, mongo)
	ctx := context.Background()

	first, err := api.AddRule(ctx, testutil.SummerHighSeason())
	require.NoError(t, err)

	winter := testutil.SeasonRuleInput{Name: "Winter", Start: "12-01", End: "2-28", Multiplier: "0,8", Type: "LOW"}
	second, err := api.AddRule(ctx, winter)
	require.NoError(t, err)
	assert.Equal(t, "02-28", string(second.End))
	assert.Equal(t, 0.8, second.Multiplier)
	assert.Equal(t, model.SeasonLow, second.Type)

	rules, err := api.ListRules(ctx)
	require.NoError(t, err)
	require.Len(t, rules, 2)
	assert.Equal(t, first.ID, rules[0].ID, "rules keep insertion order")

	require.NoError(t, api.RemoveRule(ctx, first.ID))
	require.NoError(t, api.RemoveRule(ctx, first.ID), "removing twice is not an error")

	rules, err = api.ListRules(ctx)
	require.NoError(t, err)
	assert.Len(t, rules, 1)

	_, err = api.AddRule(ctx, testutil.SeasonRuleInput{Name: "Bad", Start: "13-01", End: "12-31", Multiplier: 1, Type: "high"})
	var statusErr *client.StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusUnprocessableEntity, statusErr.StatusCode)
}
