package main

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"

	"github.com/aiforhelp/carebot/internal/config"
	"github.com/aiforhelp/carebot/internal/providers/health"
	"github.com/aiforhelp/carebot/internal/providers/llm"
	"github.com/aiforhelp/carebot/internal/service/assistant"
	"github.com/aiforhelp/carebot/internal/service/memory"
	"github.com/aiforhelp/carebot/internal/service/pharmacy"
	"github.com/aiforhelp/carebot/internal/storage/sqlite"
	httptransport "github.com/aiforhelp/carebot/internal/transport/http"
	"github.com/aiforhelp/carebot/internal/transport/telegram"
	"github.com/aiforhelp/carebot/pkg/log"
	"github.com/aiforhelp/carebot/pkg/srv"
	"github.com/joho/godotenv"
)

func NewServices(ctx context.Context) []srv.Service {
	logger := log.FromCtx(ctx)
	services := make([]srv.Service, 0)

	// init env
	if err := initEnv(ctx, config.GetRuntimePath()); err != nil {
		logger.Fatal().Err(err).Msg("failed to init env")
	}

	// 1. Configuration
	appCfg := config.NewAppConfig(ctx)
	providerCfg := config.NewProviderConfig(ctx)

	// 2. Storage
	db, err := initStorage(ctx, appCfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize storage")
	}
	services = append(services, srv.NewCleanup(db.Close))

	// 3. Model provider
	model, err := llm.NewProvider(ctx, appCfg.ModelProvider, providerCfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize model provider")
	}

	// 4. Memory engine. The model doubles as the extraction delegate for
	// fragments the rules cannot parse.
	personas := memory.NewPersonaRegistry()
	engine := memory.NewEngine(
		sqlite.NewFacts(db),
		sqlite.NewExchanges(db),
		memory.NewExtractor(memory.NewModelDelegate(model)),
		memory.NewComposer(personas),
	)

	// 5. Assistant
	asst := assistant.New(engine, model, appCfg.ModelProvider)

	// 6. Pharmacy
	pharm := pharmacy.NewService(sqlite.NewReminders(db), sqlite.NewOrders(db))

	// 7. Transports
	if appCfg.IsHTTPSelected() {
		handlers := httptransport.NewHandlers(asst, engine, personas, pharm, health.NewDrugLookup())
		services = append(services, httptransport.NewServer(ctx, config.NewHTTPConfig(ctx), handlers))
	}
	if appCfg.IsTelegramSelected() {
		bot, err := telegram.NewBot(ctx, config.NewTelegramConfig(ctx), asst, appCfg.DefaultPersona)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to initialize telegram bot")
		}
		services = append(services, bot)
	}

	return services
}

func initStorage(ctx context.Context, cfg *config.AppConfig) (*sql.DB, error) {
	if err := os.MkdirAll(cfg.GetRuntimePath(), 0o755); err != nil {
		return nil, err
	}
	return sqlite.NewDB(ctx, cfg.GetDatabasePath())
}

func initEnv(ctx context.Context, runtimePath string) error {
	logger := log.FromCtx(ctx)
	envFile := filepath.Join(runtimePath, ".env")

	if _, err := os.Stat(envFile); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	if err := godotenv.Load(envFile); err != nil {
		logger.Warn().Err(err).Str("path", envFile).Msg("failed to load .env file")
		return err
	}

	logger.Debug().Str("path", envFile).Msg("loaded .env file")
	return nil
}
