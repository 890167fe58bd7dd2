package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestServerConfig_Validate(t *testing.T) {
	valid := ServerConfig{
		jwtSigningKey:      "0123456789abcdef0123456789abcdef",
		storeRetryAttempts: 3,
	}
	assert.NoError(t, valid.Validate())

	shortKey := valid
	shortKey.jwtSigningKey = "secret"
	assert.Error(t, shortKey.Validate())

	noRetry := valid
	noRetry.storeRetryAttempts = 0
	assert.Error(t, noRetry.Validate())
}

func TestWorkerConfig_Validate(t *testing.T) {
	valid := WorkerConfig{maxWorkers: 10, fetchPollIntervalMs: 100}
	assert.NoError(t, valid.Validate())

	noWorkers := valid
	noWorkers.maxWorkers = 0
	assert.Error(t, noWorkers.Validate())
}

func TestPgConfigFromEnv(t *testing.T) {
	t.Setenv("PG_HOSTNAME", "db.internal")
	t.Setenv("PG_PORT", "6432")
	t.Setenv("PG_MAX_POOL_SIZE", "12")

	config := pgConfigFromEnv()
	assert.Equal(t, "db.internal", config.Hostname)
	assert.Equal(t, "6432", config.Port)
	assert.Equal(t, 12, config.MaxPoolConnections)
	assert.Equal(t, "asset_lists", config.Database)
}
