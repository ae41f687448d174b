package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress             string
	DatabaseURI            string
	PayPayAPIAddress       string
	PayPayAPIKey           string
	PayPayMerchantID       string
	Currency               string
	AuthSecret             string
	AdminCode              string
	GatewayTimeout         time.Duration
	SettlementPollInterval time.Duration
	SettlementGrace        time.Duration
	WorkerPoolSize         int
	MaxSettlementBatch     int
	ShutdownTimeout        time.Duration
}

const (
	defaultRunAddress             = ":8080"
	defaultCurrency               = "JPY"
	defaultAuthSecret             = "change-me-in-production"
	defaultGatewayTimeout         = 8 * time.Second
	defaultSettlementPollInterval = 30 * time.Second
	defaultSettlementGrace        = 10 * time.Minute
	defaultWorkerPoolSize         = 4
	defaultMaxSettlementBatch     = 32
	defaultShutdownTimeout        = 10 * time.Second
)

// Load parses configuration from flags and environment variables.
func Load() (*Config, error) {
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:             getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:            getString(lookup, "DATABASE_URI", ""),
		PayPayAPIAddress:       getString(lookup, "PAYPAY_API_ADDRESS", ""),
		PayPayAPIKey:           getString(lookup, "PAYPAY_API_KEY", ""),
		PayPayMerchantID:       getString(lookup, "PAYPAY_MERCHANT_ID", ""),
		Currency:               getString(lookup, "CURRENCY", defaultCurrency),
		AuthSecret:             getString(lookup, "AUTH_SECRET", defaultAuthSecret),
		AdminCode:              getString(lookup, "ADMIN_CODE", ""),
		GatewayTimeout:         getDuration(lookup, "GATEWAY_TIMEOUT", defaultGatewayTimeout),
		SettlementPollInterval: getDuration(lookup, "SETTLEMENT_POLL_INTERVAL", defaultSettlementPollInterval),
		SettlementGrace:        getDuration(lookup, "SETTLEMENT_GRACE", defaultSettlementGrace),
		WorkerPoolSize:         getInt(lookup, "WORKER_POOL_SIZE", defaultWorkerPoolSize),
		MaxSettlementBatch:     getInt(lookup, "SETTLEMENT_BATCH_SIZE", defaultMaxSettlementBatch),
		ShutdownTimeout:        getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
	}

	fs := flag.NewFlagSet("curiomart", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		gatewayTimeoutStr  = cfg.GatewayTimeout.String()
		pollIntervalStr    = cfg.SettlementPollInterval.String()
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.PayPayAPIAddress, "g", cfg.PayPayAPIAddress, "PayPay API base URL")
	fs.StringVar(&cfg.AuthSecret, "auth-secret", cfg.AuthSecret, "Secret for signing auth tokens")
	fs.StringVar(&cfg.AdminCode, "admin-code", cfg.AdminCode, "Shared code for admin endpoints")
	fs.IntVar(&cfg.WorkerPoolSize, "worker-pool", cfg.WorkerPoolSize, "Number of concurrent settlement workers")
	fs.StringVar(&gatewayTimeoutStr, "gateway-timeout", gatewayTimeoutStr, "Timeout for gateway calls during checkout")
	fs.StringVar(&pollIntervalStr, "poll-interval", pollIntervalStr, "Interval between settlement polls")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")
	fs.IntVar(&cfg.MaxSettlementBatch, "poll-batch", cfg.MaxSettlementBatch, "Maximum payments per polling batch")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.GatewayTimeout, err = time.ParseDuration(gatewayTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid gateway timeout: %w", err)
	}

	if cfg.SettlementPollInterval, err = time.ParseDuration(pollIntervalStr); err != nil {
		return nil, fmt.Errorf("invalid poll interval: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if secretFile, ok := lookup("AUTH_SECRET_FILE"); ok && secretFile != "" {
		content, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("read auth secret file: %w", err)
		}
		cfg.AuthSecret = string(content)
	}

	if cfg.WorkerPoolSize <= 0 {
		cfg.WorkerPoolSize = defaultWorkerPoolSize
	}

	if cfg.MaxSettlementBatch <= 0 {
		cfg.MaxSettlementBatch = defaultMaxSettlementBatch
	}

	if cfg.GatewayTimeout <= 0 {
		cfg.GatewayTimeout = defaultGatewayTimeout
	}

	if cfg.SettlementPollInterval <= 0 {
		cfg.SettlementPollInterval = defaultSettlementPollInterval
	}

	if cfg.SettlementGrace <= 0 {
		cfg.SettlementGrace = defaultSettlementGrace
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	if cfg.PayPayAPIAddress == "" {
		return nil, fmt.Errorf("gateway address must be provided")
	}

	if cfg.AdminCode == "" {
		return nil, fmt.Errorf("admin code must be provided")
	}

	return cfg, nil
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(lookup envLookup, key string, def int) int {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
