package cmd

import (
	"github.com/checkmarble/asset-lists/infra"
	"github.com/checkmarble/asset-lists/utils"
	"github.com/cockroachdb/errors"
)

type CompiledConfig struct {
	Version string
}

type ServerConfig struct {
	jwtSigningKey      string
	loggingFormat      string
	sentryDsn          string
	storeRetryAttempts int
}

func (config ServerConfig) Validate() error {
	if len(config.jwtSigningKey) < 32 {
		return errors.New("AUTHENTICATION_JWT_SIGNING_KEY must be at least 32 characters long")
	}
	if config.storeRetryAttempts < 1 {
		return errors.New("STORE_RETRY_ATTEMPTS must be at least 1")
	}
	return nil
}

type WorkerConfig struct {
	appName             string
	env                 string
	loggingFormat       string
	sentryDsn           string
	maxWorkers          int
	cloudRunProbePort   string
	storeRetryAttempts  int
	fetchPollIntervalMs int
}

func (config WorkerConfig) Validate() error {
	if config.maxWorkers < 1 {
		return errors.New("LIST_CHANGE_MAX_WORKERS must be at least 1")
	}
	if config.fetchPollIntervalMs < 1 {
		return errors.New("FETCH_POLL_INTERVAL_MS must be at least 1")
	}
	return nil
}

func pgConfigFromEnv() infra.PgConfig {
	return infra.PgConfig{
		ConnectionString:   utils.GetEnv("PG_CONNECTION_STRING", ""),
		Database:           utils.GetEnv("PG_DATABASE", "asset_lists"),
		Hostname:           utils.GetEnv("PG_HOSTNAME", ""),
		Password:           utils.GetEnv("PG_PASSWORD", ""),
		Port:               utils.GetEnv("PG_PORT", "5432"),
		User:               utils.GetEnv("PG_USER", ""),
		MaxPoolConnections: utils.GetEnv("PG_MAX_POOL_SIZE", infra.DEFAULT_MAX_CONNECTIONS),
		SslMode:            utils.GetEnv("PG_SSL_MODE", "prefer"),
	}
}
