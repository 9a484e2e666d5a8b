package lifecycle_test

import (
	"testing"

	"github.com/gnames/gntol/internal/iobuild"
	"github.com/gnames/gntol/internal/iodb"
	"github.com/gnames/gntol/internal/iopopulate"
	"github.com/gnames/gntol/internal/ioschema"
	"github.com/gnames/gntol/pkg/config"
	"github.com/gnames/gntol/pkg/lifecycle"
)

// TestContracts ensures implementations satisfy lifecycle interfaces.
func TestContracts(t *testing.T) {
	cfg := config.New()
	op := iodb.NewPgxOperator()

	var _ lifecycle.SchemaManager = ioschema.NewManager(op)
	var _ lifecycle.Populator = iopopulate.New(cfg, op)

	b := iobuild.New(cfg, op)
	var _ lifecycle.Builder = b
	var _ lifecycle.Linker = b
	var _ lifecycle.Reducer = b
}
