package rollout

import (
	"fmt"
	"net/http"

	"github.com/pupbiru/humanitix-auto-codes/internal/auth"
	"github.com/pupbiru/humanitix-auto-codes/internal/config"
	"github.com/pupbiru/humanitix-auto-codes/internal/humanitix"
	"github.com/pupbiru/humanitix-auto-codes/internal/kafka"
	"github.com/pupbiru/humanitix-auto-codes/internal/ledger"
	ledgerdb "github.com/pupbiru/humanitix-auto-codes/internal/ledger/db"
	"github.com/pupbiru/humanitix-auto-codes/internal/ledger/filestore"
	"github.com/pupbiru/humanitix-auto-codes/internal/ledger/redisstore"
	"github.com/pupbiru/humanitix-auto-codes/internal/logger"
	"github.com/pupbiru/humanitix-auto-codes/internal/qrcodes"
	"github.com/pupbiru/humanitix-auto-codes/internal/selector"
	"github.com/pupbiru/humanitix-auto-codes/internal/settings"
)

// OpenLedger resolves the configured ledger backend.
func OpenLedger(cfg *config.Config, log *logger.Logger) (LedgerStore, error) {
	switch cfg.Ledger.Backend {
	case "sqlite":
		return ledgerdb.Open(cfg.Ledger.DSN)
	case "file":
		return filestore.New(cfg.Ledger.Path), nil
	case "redis":
		return redisstore.New(cfg.Ledger.RedisAddr, log)
	default:
		return nil, fmt.Errorf("unknown ledger backend %q (want sqlite, file or redis)", cfg.Ledger.Backend)
	}
}

// BuildService wires a Service from configuration and the operator settings
// files. Settings errors surface before any network activity.
func BuildService(cfg *config.Config, log *logger.Logger) (*Service, error) {
	userSettings, err := settings.LoadUser(cfg.Settings.UserSettingsPath)
	if err != nil {
		return nil, err
	}
	consoleSettings, err := settings.LoadConsole(cfg.Settings.SettingsPath)
	if err != nil {
		return nil, err
	}

	httpClient := &http.Client{Timeout: cfg.Console.Timeout}
	tokens := auth.NewTokenSource(httpClient, log, cfg.Console.TokenURL, consoleSettings.FirebaseAPIKey, userSettings.RefreshToken)
	console := humanitix.NewClient(httpClient, log, cfg.Console.BaseURL, tokens)

	store, err := OpenLedger(cfg, log)
	if err != nil {
		return nil, err
	}
	policy, err := ledger.PolicyFor(cfg.Ledger.Policy)
	if err != nil {
		return nil, err
	}
	sel, err := selector.New(userSettings.Patterns, log)
	if err != nil {
		return nil, err
	}

	var publisher Publisher
	if cfg.Kafka.Enabled {
		if cfg.Kafka.MockMode {
			publisher = &kafka.MockProducer{Log: log}
		} else {
			publisher = kafka.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic, log)
		}
	}

	var renderer CodeRenderer
	if cfg.QR.OutputDir != "" {
		renderer = qrcodes.NewGenerator(cfg.QR.OutputDir, cfg.QR.Size)
	}

	return &Service{
		Console:    console,
		Ledger:     store,
		Policy:     policy,
		Selector:   sel,
		Publisher:  publisher,
		Renderer:   renderer,
		Codes:      userSettings.Codes,
		UploadKind: cfg.Console.UploadKind,
		Logger:     log,
	}, nil
}
