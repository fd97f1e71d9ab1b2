package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	seasonruleserrors "rentpilot/internal/seasonrules/errors"
	"rentpilot/pkg/config"
	mongotx "rentpilot/pkg/db/mongo"
	"rentpilot/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	CollectionName = "Season_rules"
)

// SeasonRuleRepository persists one ordered rule list per tenant. The list
// is read and written whole, so callers that modify it should do so inside
// ExecuteTransaction.
type SeasonRuleRepository interface {
	LoadRules(ctx context.Context, tenantID string) ([]model.SeasonRule, error)
	SaveRules(ctx context.Context, tenantID string, rules []model.SeasonRule) error
	ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error
}

type mongoSeasonRuleRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
	txManager  mongotx.TransactionManager
}

func NewMongoSeasonRuleRepository(cfg *config.Config) SeasonRuleRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoSeasonRuleRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
		txManager:  mongotx.NewTransactionManager(cfg.Client.Mongo, cfg.Log),
	}
}

// withTimeout wraps the context with a timeout if not already in a transaction.
func (r *mongoSeasonRuleRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.(mongo.SessionContext); ok {
		return ctx, func() {}
	}

	deadline, hasDeadline := ctx.Deadline()
	if !hasDeadline {
		return context.WithTimeout(ctx, timeout)
	}

	remaining := time.Until(deadline)
	if remaining < timeout {
		return context.WithTimeout(ctx, remaining)
	}

	return context.WithTimeout(ctx, timeout)
}

// LoadRules returns the tenant's rules in priority order. A tenant that never
// saved rules has an empty list.
func (r *mongoSeasonRuleRepository) LoadRules(ctx context.Context, tenantID string) ([]model.SeasonRule, error) {
	if strings.TrimSpace(tenantID) == "" {
		return nil, seasonruleserrors.ErrInvalidTenant
	}

	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var set model.SeasonRuleSet
	err := r.collection.FindOne(ctx, bson.M{"_id": tenantID}).Decode(&set)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return []model.SeasonRule{}, nil
		}
		return nil, fmt.Errorf("failed to load season rules: %w", err)
	}

	if set.Rules == nil {
		return []model.SeasonRule{}, nil
	}
	return set.Rules, nil
}

func (r *mongoSeasonRuleRepository) SaveRules(ctx context.Context, tenantID string, rules []model.SeasonRule) error {
	if strings.TrimSpace(tenantID) == "" {
		return seasonruleserrors.ErrInvalidTenant
	}
	if rules == nil {
		rules = []model.SeasonRule{}
	}

	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	set := model.SeasonRuleSet{
		TenantID:  tenantID,
		Rules:     rules,
		UpdatedAt: time.Now().UTC().Truncate(time.Millisecond),
	}

	opts := options.Replace().SetUpsert(true)
	if _, err := r.collection.ReplaceOne(ctx, bson.M{"_id": tenantID}, set, opts); err != nil {
		return fmt.Errorf("failed to save season rules: %w", err)
	}

	return nil
}

func (r *mongoSeasonRuleRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return r.txManager.ExecuteTransaction(ctx, fn)
}
