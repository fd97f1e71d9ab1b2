package main

import (
	"time"

	gatewayrepo "rentpilot/internal/gateway/repository"
	"rentpilot/internal/pricing/events"
	pricinghandler "rentpilot/internal/pricing/handler"
	pricingservice "rentpilot/internal/pricing/service"
	pricingvalidator "rentpilot/internal/pricing/validator"
	seasonrulehandler "rentpilot/internal/seasonrules/handler"
	seasonrulerepo "rentpilot/internal/seasonrules/repository"
	seasonruleservice "rentpilot/internal/seasonrules/service"
	seasonrulevalidator "rentpilot/internal/seasonrules/validator"
	"rentpilot/pkg/app"
	"rentpilot/pkg/config"
	kafka_config "rentpilot/pkg/kafka/config"
	kafka_middleware "rentpilot/pkg/kafka/middleware"
)

const ServiceName = "pricing"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()

	cfg.Log.Info("Starting Pricing service")

	kafkaCfg := kafka_config.Load()
	kafkaCfg.LogConfiguration(cfg.Log)
	metrics := kafka_middleware.NewMetrics()
	publisher, err := events.NewPublisher(kafkaCfg, ServiceName, metrics, cfg.Log)
	if err != nil {
		cfg.Log.Fatal("Failed to create price event publisher", "error", err)
	}

	ruleService := initSeasonRuleService(cfg)
	pricingService := initPricingService(cfg, ruleService, publisher, kafkaCfg.PublishTimeout)

	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(
		pricinghandler.NewHealthHandler(cfg.Client.Mongo, metrics, cfg.Log),
		pricinghandler.NewPricingHandler(pricingService, cfg.Log),
		seasonrulehandler.NewSeasonRuleHandler(ruleService, cfg.Log),
	)
	serverApp.OnShutdown("pricing-service", pricingService.Close)
	serverApp.OnShutdown("price-event-publisher", func() {
		if err := publisher.Close(); err != nil {
			cfg.Log.Error("Failed to close price event publisher", "error", err)
		}
	})
	serverApp.Run()
}

func initSeasonRuleService(cfg *config.Config) seasonruleservice.SeasonRuleService {
	ruleService := seasonruleservice.NewSeasonRuleService(
		seasonrulerepo.NewMongoSeasonRuleRepository(cfg),
		seasonrulevalidator.NewSeasonRuleValidator(),
		cfg,
	)

	cfg.Log.Info("Season rule service initialized", "database", cfg.MongoDatabaseName)
	return ruleService
}

func initPricingService(cfg *config.Config, rules pricingservice.RuleSource, publisher events.PriceEventPublisher, publishTimeout time.Duration) pricingservice.PricingService {
	pricingService := pricingservice.NewPricingService(
		gatewayrepo.NewMongoPropertyRepository(cfg),
		gatewayrepo.NewMongoBookingRepository(cfg),
		rules,
		publisher,
		pricingvalidator.NewApplyValidator(),
		cfg,
		publishTimeout,
	)

	cfg.Log.Info("Pricing service initialized",
		"fallback_base_price", cfg.FallbackBasePrice,
	)
	return pricingService
}
