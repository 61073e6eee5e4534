package backend

import (
	"context"
	"fmt"

	"agency/internal/amqp"
	"agency/internal/analytics"
	"agency/internal/log"
	"agency/internal/services"
	"agency/internal/sheets"
	gsheet "agency/internal/sheets/google"
	"agency/internal/sheets/memory"
	"agency/internal/storage"
)

type DefaultFactory struct {
	logger *log.Logger
}

func NewFactory(logger *log.Logger) Factory {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	return &DefaultFactory{logger: logger.WithComponent(log.ComponentBackend)}
}

// CreateBackend opens the record store, seeds it if asked, and attaches the
// optional publisher and ledger. Publisher and Sheets failures degrade to
// running without them.
func (f *DefaultFactory) CreateBackend(ctx context.Context, config Config) (*Result, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid backend config: %w", err)
	}

	repo, err := storage.NewSQLiteRepository(config.SQLiteDBPath,
		storage.WithRebuildOnMismatch(config.RebuildOnSchemaMismatch),
		storage.WithLogger(f.logger))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize SQLite repository: %w", err)
	}

	if config.SeedDemoData {
		if err := repo.Seed(ctx); err != nil {
			repo.Close()
			return nil, fmt.Errorf("seed store: %w", err)
		}
	}

	var publisher services.ActivityPublisher
	if config.AMQPURL != "" {
		client, err := amqp.NewClient(config.AMQPURL, config.AMQPExchange, config.AMQPQueue, f.logger)
		if err != nil {
			f.logger.Warn("Failed to initialize AMQP client, continuing without activity events", log.FieldError, err)
		} else {
			publisher = client
			f.logger.Info("Initialized AMQP client",
				"exchange", config.AMQPExchange,
				"queue", config.AMQPQueue)
		}
	}

	ledgerType := config.Ledger
	ledger, err := f.createLedger(ctx, config)
	if err != nil {
		f.logger.Warn("Failed to initialize Google Sheets ledger, keeping sales in memory", log.FieldError, err)
		ledger, ledgerType = memory.New(), MemoryLedger
	}

	svc := services.New(repo, services.Options{
		Publisher: publisher,
		Ledger:    ledger,
		Logger:    f.logger,
	})

	f.logger.Info("Initialized backend",
		"db_path", config.SQLiteDBPath,
		"amqp_enabled", publisher != nil,
		"ledger", ledgerType.String())

	return &Result{
		Services:  svc,
		Analytics: analytics.NewAggregator(repo),
		Ledger:    ledgerType,
		Cleanup:   svc.Close,
	}, nil
}

func (f *DefaultFactory) createLedger(ctx context.Context, config Config) (sheets.SaleLedger, error) {
	if config.Ledger != SheetsLedger {
		return memory.New(), nil
	}
	return gsheet.New(ctx, gsheet.Options{
		SpreadsheetID:   config.GoogleSpreadsheetID,
		SheetName:       config.GoogleSheetName,
		CredentialsJSON: config.GoogleServiceAccountJSON,
		CredentialsFile: config.GoogleServiceAccountFile,
		Logger:          f.logger,
	})
}
