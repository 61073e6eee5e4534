package backend

import (
	"errors"
	"fmt"

	"agency/internal/config"
)

// Config holds what the factory needs to build a backend.
type Config struct {
	SQLiteDBPath            string
	RebuildOnSchemaMismatch bool
	SeedDemoData            bool

	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string

	Ledger                   LedgerType
	GoogleSpreadsheetID      string
	GoogleSheetName          string
	GoogleServiceAccountJSON string
	GoogleServiceAccountFile string
}

// FromAppConfig converts the application config to backend config.
func FromAppConfig(appConfig *config.Config) (Config, error) {
	if appConfig == nil {
		return Config{}, errors.New("app config is nil")
	}

	ledger := MemoryLedger
	if appConfig.SheetsEnabled() {
		ledger = SheetsLedger
	}

	cfg := Config{
		SQLiteDBPath:            appConfig.SQLiteDBPath,
		RebuildOnSchemaMismatch: appConfig.RebuildOnSchemaMismatch,
		SeedDemoData:            appConfig.SeedDemoData,

		AMQPURL:      appConfig.AMQPURL,
		AMQPExchange: appConfig.AMQPExchange,
		AMQPQueue:    appConfig.AMQPQueue,

		Ledger:                   ledger,
		GoogleSpreadsheetID:      appConfig.GoogleSpreadsheetID,
		GoogleSheetName:          appConfig.GoogleSheetName,
		GoogleServiceAccountJSON: appConfig.GoogleServiceAccountJSON,
		GoogleServiceAccountFile: appConfig.GoogleServiceAccountFile,
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	if c.SQLiteDBPath == "" {
		return errors.New("SQLite database path is required")
	}
	if !c.Ledger.IsValid() {
		return fmt.Errorf("invalid ledger type: %q", c.Ledger)
	}

	if c.AMQPURL != "" && (c.AMQPExchange == "" || c.AMQPQueue == "") {
		return errors.New("AMQP exchange and queue are required when AMQP is enabled")
	}

	if c.Ledger == SheetsLedger {
		if c.GoogleSpreadsheetID == "" {
			return errors.New("Google Spreadsheet ID is required for the sheets ledger")
		}
		if c.GoogleServiceAccountJSON == "" && c.GoogleServiceAccountFile == "" {
			return errors.New("either GoogleServiceAccountJSON or GoogleServiceAccountFile must be provided for the sheets ledger")
		}
	}
	return nil
}
