package service

import (
	"context"
	"errors"
	"fmt"
	"math"

	seasonruleserrors "rentpilot/internal/seasonrules/errors"
	"rentpilot/internal/seasonrules/repository"
	"rentpilot/internal/seasonrules/validator"
	"rentpilot/pkg/calendar"
	"rentpilot/pkg/config"
	apperrors "rentpilot/pkg/errors"
	"rentpilot/pkg/model"
	"rentpilot/pkg/sanitizer"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/mongo"
)

// DefaultMultiplier is used when a submitted multiplier cannot be parsed.
const DefaultMultiplier = 1.0

var maxMultiplier = decimal.NewFromInt(model.MaxSeasonMultiplier)

type SeasonRuleService interface {
	List(ctx context.Context, tenantID string) ([]model.SeasonRule, error)
	Add(ctx context.Context, tenantID string, input *model.SeasonRuleInput) (*model.SeasonRule, error)
	Remove(ctx context.Context, tenantID string, id string) error
}

type seasonRuleService struct {
	repo      repository.SeasonRuleRepository
	validator *validator.SeasonRuleValidator
	cfg       *config.Config
	newID     func() string
}

func NewSeasonRuleService(
	repo repository.SeasonRuleRepository,
	validator *validator.SeasonRuleValidator,
	cfg *config.Config,
) SeasonRuleService {
	return &seasonRuleService{
		repo:      repo,
		validator: validator,
		cfg:       cfg,
		newID:     uuid.NewString,
	}
}

func (s *seasonRuleService) List(ctx context.Context, tenantID string) ([]model.SeasonRule, error) {
	rules, err := s.repo.LoadRules(ctx, tenantID)
	if err != nil {
		return nil, s.mapRepoError(err, tenantID, "Failed to load season rules")
	}
	return rules, nil
}

// Add appends a rule at the lowest priority. Name, start, end and type are
// validated; a multiplier that does not parse falls back to 1 while one that
// parses to zero or less is rejected.
func (s *seasonRuleService) Add(ctx context.Context, tenantID string, input *model.SeasonRuleInput) (*model.SeasonRule, error) {
	if input == nil {
		return nil, apperrors.InvalidInput("Season rule body is required")
	}
	s.sanitize(input)

	if err := s.validator.Validate(input); err != nil {
		s.cfg.Log.Warn("Season rule validation failed",
			"tenant_id", tenantID,
			"name", input.Name,
			"error", err,
		)
		return nil, apperrors.Validation("Season rule validation failed", map[string]any{
			"error": err.Error(),
		})
	}

	multiplier, err := s.parseMultiplier(tenantID, input)
	if err != nil {
		return nil, apperrors.Validation("Season rule validation failed", map[string]any{
			"error": err.Error(),
		})
	}

	rule := model.SeasonRule{
		ID:         s.newID(),
		Name:       input.Name,
		Start:      calendar.MonthDay(input.Start),
		End:        calendar.MonthDay(input.End),
		Multiplier: multiplier,
		Type:       input.Type,
	}

	err = s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		rules, err := s.repo.LoadRules(sessCtx, tenantID)
		if err != nil {
			return err
		}

		for _, existing := range rules {
			if sanitizer.NormalizeNameForComparison(existing.Name) == sanitizer.NormalizeNameForComparison(rule.Name) {
				s.cfg.Log.Warn("Season rule name already used",
					"tenant_id", tenantID,
					"name", rule.Name,
					"existing_id", existing.ID,
				)
				break
			}
		}

		return s.repo.SaveRules(sessCtx, tenantID, append(rules, rule))
	})
	if err != nil {
		return nil, s.mapRepoError(err, tenantID, "Failed to add season rule")
	}

	s.cfg.Log.Info("Season rule added",
		"tenant_id", tenantID,
		"id", rule.ID,
		"name", rule.Name,
		"start", rule.Start,
		"end", rule.End,
		"multiplier", rule.Multiplier,
		"type", rule.Type,
	)

	return &rule, nil
}

// Remove deletes the rule with the given id. Removing an unknown id succeeds
// without writing.
func (s *seasonRuleService) Remove(ctx context.Context, tenantID string, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Season rule ID cannot be empty")
	}

	removed := false
	err := s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		rules, err := s.repo.LoadRules(sessCtx, tenantID)
		if err != nil {
			return err
		}

		kept := make([]model.SeasonRule, 0, len(rules))
		for _, rule := range rules {
			if rule.ID == id {
				removed = true
				continue
			}
			kept = append(kept, rule)
		}

		if !removed {
			return nil
		}
		return s.repo.SaveRules(sessCtx, tenantID, kept)
	})
	if err != nil {
		return s.mapRepoError(err, tenantID, "Failed to remove season rule")
	}

	if removed {
		s.cfg.Log.Info("Season rule removed", "tenant_id", tenantID, "id", id)
	} else {
		s.cfg.Log.Debug("Season rule already absent", "tenant_id", tenantID, "id", id)
	}

	return nil
}

func (s *seasonRuleService) sanitize(input *model.SeasonRuleInput) {
	input.Name = sanitizer.NormalizeName(input.Name)
	input.Start = sanitizer.NormalizeMonthDay(input.Start)
	input.End = sanitizer.NormalizeMonthDay(input.End)
	input.Multiplier = model.MultiplierInput(sanitizer.NormalizeMultiplier(string(input.Multiplier)))
	input.Type = model.SeasonType(sanitizer.NormalizeSeasonType(string(input.Type)))
}

func (s *seasonRuleService) parseMultiplier(tenantID string, input *model.SeasonRuleInput) (float64, error) {
	d, err := decimal.NewFromString(string(input.Multiplier))
	if err != nil {
		s.cfg.Log.Warn("Season rule multiplier not numeric, using default",
			"tenant_id", tenantID,
			"name", input.Name,
			"multiplier", string(input.Multiplier),
			"default", DefaultMultiplier,
		)
		return DefaultMultiplier, nil
	}

	if !d.IsPositive() || d.GreaterThan(maxMultiplier) {
		s.cfg.Log.Warn("Season rule multiplier out of range",
			"tenant_id", tenantID,
			"name", input.Name,
			"multiplier", d.String(),
		)
		return 0, fmt.Errorf("multiplier: %w, got %s", seasonruleserrors.ErrInvalidMultiplier, d.String())
	}

	f, _ := d.Float64()
	if math.IsInf(f, 0) || f <= 0 {
		return 0, fmt.Errorf("multiplier: %w, got %s", seasonruleserrors.ErrInvalidMultiplier, d.String())
	}
	return f, nil
}

func (s *seasonRuleService) mapRepoError(err error, tenantID, message string) error {
	if apperrors.IsAppError(err) {
		return err
	}
	if errors.Is(err, seasonruleserrors.ErrInvalidTenant) {
		return apperrors.InvalidInput("Tenant ID cannot be empty")
	}
	s.cfg.Log.Error(message,
		"tenant_id", tenantID,
		"error", err,
	)
	return apperrors.Internal(message, err)
}
