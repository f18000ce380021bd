// Package testutil starts backing services for integration tests.
//
// Each helper returns a connection URL. When the matching TEST_* environment
// variable is set, that URL is used and no container is started; otherwise a
// throwaway container is run through testcontainers and terminated on cleanup.
package testutil

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	tcmongo "github.com/testcontainers/testcontainers-go/modules/mongodb"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
	"github.com/testcontainers/testcontainers-go/wait"
)

// Environment overrides for CI setups that provide services themselves.
const (
	MongoURLEnv    = "TEST_MONGODB_URI"
	PostgresURLEnv = "TEST_POSTGRES_URL"
	RedisURLEnv    = "TEST_REDIS_URL"
)

const startupTimeout = 60 * time.Second

// MongoURL returns a reachable MongoDB URI.
func MongoURL(t *testing.T) string {
	t.Helper()
	if url := os.Getenv(MongoURLEnv); url != "" {
		return url
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()
	container, err := tcmongo.Run(ctx, "mongo:7")
	if err != nil {
		t.Fatalf("start mongodb container: %v", err)
	}
	terminateOnCleanup(t, container)

	url, err := container.ConnectionString(ctx)
	if err != nil {
		t.Fatalf("mongodb connection string: %v", err)
	}
	return url
}

// PostgresURL returns a reachable PostgreSQL URL.
func PostgresURL(t *testing.T) string {
	t.Helper()
	if url := os.Getenv(PostgresURLEnv); url != "" {
		return url
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()
	container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("fundbridge"),
		tcpostgres.WithUsername("fundbridge"),
		tcpostgres.WithPassword("fundbridge"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(startupTimeout),
		),
	)
	if err != nil {
		t.Fatalf("start postgres container: %v", err)
	}
	terminateOnCleanup(t, container)

	url, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("postgres connection string: %v", err)
	}
	return url
}

// RedisURL returns a reachable Redis URL.
func RedisURL(t *testing.T) string {
	t.Helper()
	if url := os.Getenv(RedisURLEnv); url != "" {
		return url
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()
	container, err := tcredis.Run(ctx, "redis:7-alpine")
	if err != nil {
		t.Fatalf("start redis container: %v", err)
	}
	terminateOnCleanup(t, container)

	url, err := container.ConnectionString(ctx)
	if err != nil {
		t.Fatalf("redis connection string: %v", err)
	}
	return url
}

func terminateOnCleanup(t *testing.T, container testcontainers.Container) {
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("terminate container: %v", err)
		}
	})
}
