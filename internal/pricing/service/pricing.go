package service

import (
	"context"
	"errors"
	"sync"
	"time"

	gatewayerrors "rentpilot/internal/gateway/errors"
	"rentpilot/internal/gateway/repository"
	"rentpilot/internal/pricing/engine"
	"rentpilot/internal/pricing/events"
	"rentpilot/internal/pricing/validator"
	"rentpilot/pkg/calendar"
	"rentpilot/pkg/config"
	apperrors "rentpilot/pkg/errors"
	"rentpilot/pkg/middleware"
	"rentpilot/pkg/model"
)

type PricingService interface {
	Suggestions(ctx context.Context, tenantID string, date calendar.Date) ([]model.PriceSuggestion, error)
	Calendar(ctx context.Context, tenantID, propertyID string, month calendar.Month) (*model.PropertyCalendar, error)
	KPIs(ctx context.Context, tenantID string, month calendar.Month) (*model.MonthKPISet, error)
	Apply(ctx context.Context, tenantID, propertyID string, req *model.ApplyPriceRequest) (*model.PriceAppliedEvent, error)
	Close()
}

// RuleSource yields the ordered season rules of a tenant.
type RuleSource interface {
	List(ctx context.Context, tenantID string) ([]model.SeasonRule, error)
}

type pricingService struct {
	properties     repository.PropertyRepository
	bookings       repository.BookingRepository
	rules          RuleSource
	publisher      events.PriceEventPublisher
	validator      *validator.ApplyValidator
	engine         *engine.Engine
	cfg            *config.Config
	publishTimeout time.Duration
	now            func() time.Time
	inflight       sync.WaitGroup
}

func NewPricingService(
	properties repository.PropertyRepository,
	bookings repository.BookingRepository,
	rules RuleSource,
	publisher events.PriceEventPublisher,
	validator *validator.ApplyValidator,
	cfg *config.Config,
	publishTimeout time.Duration,
) PricingService {
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	return &pricingService{
		properties:     properties,
		bookings:       bookings,
		rules:          rules,
		publisher:      publisher,
		validator:      validator,
		engine:         engine.New(cfg.FallbackBasePrice),
		cfg:            cfg,
		publishTimeout: publishTimeout,
		now:            time.Now,
	}
}

func (s *pricingService) today() calendar.Date {
	return calendar.FromTime(s.now())
}

func (s *pricingService) Suggestions(ctx context.Context, tenantID string, date calendar.Date) ([]model.PriceSuggestion, error) {
	if date.IsZero() {
		date = s.today()
	}

	snapshots, rules, err := s.activeSnapshot(ctx, tenantID, date.YearMonth())
	if err != nil {
		return nil, err
	}

	suggestions := make([]model.PriceSuggestion, 0, len(snapshots))
	for _, snap := range snapshots {
		suggestions = append(suggestions, s.engine.SuggestForProperty(snap, date, rules))
	}

	s.cfg.Log.Debug("Price suggestions computed",
		"tenant_id", tenantID,
		"date", date,
		"properties", len(snapshots),
		"rules", len(rules),
	)

	return suggestions, nil
}

func (s *pricingService) Calendar(ctx context.Context, tenantID, propertyID string, month calendar.Month) (*model.PropertyCalendar, error) {
	if propertyID == "" {
		return nil, apperrors.InvalidInput("property_id parameter is required")
	}
	if month == (calendar.Month{}) {
		month = s.today().YearMonth()
	}

	period := month.Period()
	var (
		property *model.Property
		bookings []*model.Booking
		rules    []model.SeasonRule
		errProp  error
		errBook  error
		errRules error
	)

	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		var err error
		property, err = s.properties.FindByID(ctx, propertyID)
		if err != nil {
			errProp = s.mapGatewayError(err, propertyID, "Failed to fetch property")
		}
	}()

	go func() {
		defer wg.Done()
		var err error
		bookings, err = s.bookings.FetchActive(ctx, []string{propertyID}, period.Start.Time(), period.End.Time())
		if err != nil {
			s.cfg.Log.Error("Failed to fetch bookings",
				"property_id", propertyID,
				"month", month,
				"error", err,
			)
			errBook = apperrors.Unavailable("booking store", err)
		}
	}()

	go func() {
		defer wg.Done()
		rules, errRules = s.rules.List(ctx, tenantID)
	}()
	wg.Wait()

	if errProp != nil {
		return nil, errProp
	}
	if errBook != nil {
		return nil, errBook
	}
	if errRules != nil {
		return nil, errRules
	}

	cal := s.engine.MonthCalendar(engine.PropertySnapshot{
		Property: property,
		Bookings: forProperty(property, bookings),
	}, month, rules)

	s.cfg.Log.Debug("Pricing calendar computed",
		"tenant_id", tenantID,
		"property_id", propertyID,
		"month", month,
		"booked_nights", cal.BookedNights,
	)

	return &cal, nil
}

func (s *pricingService) KPIs(ctx context.Context, tenantID string, month calendar.Month) (*model.MonthKPISet, error) {
	if month == (calendar.Month{}) {
		month = s.today().YearMonth()
	}

	snapshots, rules, err := s.activeSnapshot(ctx, tenantID, month)
	if err != nil {
		return nil, err
	}

	kpis := s.engine.MonthKPIs(month, s.today(), snapshots, rules)

	s.cfg.Log.Debug("Month KPIs computed",
		"tenant_id", tenantID,
		"month", month,
		"properties", kpis.PropertyCount,
		"revpar", kpis.RevPAR,
	)

	return &kpis, nil
}

// Apply writes price back as the property's nightly price. A failed write
// leaves nothing to roll back; the caller may retry.
func (s *pricingService) Apply(ctx context.Context, tenantID, propertyID string, req *model.ApplyPriceRequest) (*model.PriceAppliedEvent, error) {
	if req == nil {
		return nil, apperrors.InvalidInput("Apply body is required")
	}
	if err := s.validator.Validate(req); err != nil {
		s.cfg.Log.Warn("Apply price validation failed",
			"tenant_id", tenantID,
			"property_id", propertyID,
			"error", err,
		)
		return nil, apperrors.Validation("Apply price validation failed", map[string]any{
			"error": err.Error(),
		})
	}

	price := *req.Price

	property, err := s.properties.FindByID(ctx, propertyID)
	if err != nil {
		return nil, s.mapGatewayError(err, propertyID, "Failed to fetch property")
	}

	if err := s.properties.UpdatePrice(ctx, propertyID, float64(price)); err != nil {
		if errors.Is(err, gatewayerrors.ErrPropertyNotFound) {
			return nil, apperrors.NotFoundWithID("Property", propertyID)
		}
		s.cfg.Log.Error("Failed to apply price",
			"tenant_id", tenantID,
			"property_id", propertyID,
			"price", price,
			"error", err,
		)
		return nil, apperrors.ApplyFailed(propertyID, err)
	}

	event := model.PriceAppliedEvent{
		TenantID:      tenantID,
		PropertyID:    propertyID,
		PreviousPrice: property.PricePerNight,
		NewPrice:      price,
		Reason:        req.Reason,
		AppliedAt:     s.now().UTC(),
	}

	s.cfg.Log.Info("Price applied",
		"tenant_id", tenantID,
		"property_id", propertyID,
		"price", price,
		"reason", req.Reason,
	)

	s.publish(ctx, event)

	return &event, nil
}

// publish sends the event in the background. The request context is detached
// so a finished request does not cancel the send.
func (s *pricingService) publish(ctx context.Context, event model.PriceAppliedEvent) {
	correlationID := middleware.RequestIDFromContext(ctx)
	pubCtx := context.WithoutCancel(ctx)

	s.inflight.Add(1)
	go func() {
		defer s.inflight.Done()
		if s.publishTimeout > 0 {
			var cancel context.CancelFunc
			pubCtx, cancel = context.WithTimeout(pubCtx, s.publishTimeout)
			defer cancel()
		}
		if err := s.publisher.PublishPriceApplied(pubCtx, event, correlationID); err != nil {
			s.cfg.Log.Warn("Failed to publish price applied event",
				"tenant_id", event.TenantID,
				"property_id", event.PropertyID,
				"error", err,
			)
		}
	}()
}

// Close waits for background event publishing to finish.
func (s *pricingService) Close() {
	s.inflight.Wait()
}

// activeSnapshot loads active properties and tenant rules concurrently, then
// the bookings touching month.
func (s *pricingService) activeSnapshot(ctx context.Context, tenantID string, month calendar.Month) ([]engine.PropertySnapshot, []model.SeasonRule, error) {
	var (
		properties []*model.Property
		rules      []model.SeasonRule
		errProps   error
		errRules   error
	)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		var err error
		properties, err = s.properties.FetchActive(ctx)
		if err != nil {
			s.cfg.Log.Error("Failed to fetch properties", "tenant_id", tenantID, "error", err)
			errProps = apperrors.Unavailable("property store", err)
		}
	}()

	go func() {
		defer wg.Done()
		rules, errRules = s.rules.List(ctx, tenantID)
	}()
	wg.Wait()

	if errProps != nil {
		return nil, nil, errProps
	}
	if errRules != nil {
		return nil, nil, errRules
	}

	ids := make([]string, 0, len(properties))
	for _, p := range properties {
		ids = append(ids, p.ID)
	}

	period := month.Period()
	bookings, err := s.bookings.FetchActive(ctx, ids, period.Start.Time(), period.End.Time())
	if err != nil {
		s.cfg.Log.Error("Failed to fetch bookings",
			"tenant_id", tenantID,
			"month", month,
			"properties", len(ids),
			"error", err,
		)
		return nil, nil, apperrors.Unavailable("booking store", err)
	}

	byProperty := make(map[string][]*model.Booking, len(properties))
	for _, b := range bookings {
		byProperty[b.PropertyID] = append(byProperty[b.PropertyID], b)
	}

	snapshots := make([]engine.PropertySnapshot, 0, len(properties))
	for _, p := range properties {
		snapshots = append(snapshots, engine.PropertySnapshot{
			Property: p,
			Bookings: byProperty[p.ID],
		})
	}

	return snapshots, rules, nil
}

// forProperty keeps only the bookings of p.
func forProperty(p *model.Property, bookings []*model.Booking) []*model.Booking {
	filtered := make([]*model.Booking, 0, len(bookings))
	for _, b := range bookings {
		if b.PropertyID == p.ID {
			filtered = append(filtered, b)
		}
	}
	return filtered
}

func (s *pricingService) mapGatewayError(err error, propertyID, message string) error {
	switch {
	case errors.Is(err, gatewayerrors.ErrPropertyNotFound):
		return apperrors.NotFoundWithID("Property", propertyID)
	case errors.Is(err, gatewayerrors.ErrInvalidPropertyID):
		return apperrors.InvalidInput("Invalid property ID")
	}
	s.cfg.Log.Error(message,
		"property_id", propertyID,
		"error", err,
	)
	return apperrors.Unavailable("property store", err)
}
