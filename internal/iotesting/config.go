// Package iotesting provides shared test utilities for integration tests.
// This is an internal package for test infrastructure only.
package iotesting

import (
	"context"
	"testing"
	"time"

	"github.com/gnames/gntol/internal/ioconfig"
	"github.com/gnames/gntol/internal/iodb"
	"github.com/gnames/gntol/internal/ioschema"
	"github.com/gnames/gntol/pkg/config"
	"github.com/gnames/gntol/pkg/db"
)

const (
	// TestDatabaseName is the database name used for all integration tests.
	// This ensures tests never accidentally run against production databases.
	TestDatabaseName = "gntol_test"
)

// GetTestConfig returns a configuration suitable for integration tests.
// It uses defaults with GNTOL_* environment overrides and replaces the
// database name with TestDatabaseName.
func GetTestConfig() *config.Config {
	cfg, err := ioconfig.Load("")
	if err != nil {
		cfg = config.New()
	}
	cfg.Update([]config.Option{
		config.OptDatabaseDatabase(TestDatabaseName),
		config.OptDatabaseBatchSize(3),
	})
	return cfg
}

// Connect returns an operator connected to the test database with a
// freshly created schema and closes it when the test ends. The test is
// skipped in short mode or when the database cannot be reached.
//
// Usage in integration tests:
//
//	func TestSomething(t *testing.T) {
//	    op, cfg := iotesting.Connect(t)
//	    // ... use op.Pool() and cfg
//	}
func Connect(t *testing.T) (db.Operator, *config.Config) {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	cfg := GetTestConfig()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	op := iodb.NewPgxOperator()
	if err := op.Connect(ctx, &cfg.Database); err != nil {
		t.Skipf("Skipping integration test, database is unavailable: %v", err)
	}
	t.Cleanup(func() { op.Close() })

	if err := op.DropAllTables(ctx); err != nil {
		t.Fatalf("Failed to drop tables: %v", err)
	}
	if err := ioschema.NewManager(op).Create(ctx); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}
	return op, cfg
}
