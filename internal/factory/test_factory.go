package factory

import (
	"github.com/mcoot/tournament/internal/storage/memory"
	"github.com/mcoot/tournament/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Memory is the backing store, exposed for direct inspection
	Memory *memory.Storage
}

// NewTestApp creates an App backed by memory storage with a silent logger
func NewTestApp(strictWrites bool) *TestApp {
	store := memory.New()
	app := newWithDependencies(store, testutil.NopLogger(), strictWrites)

	return &TestApp{
		App:    app,
		Memory: store,
	}
}
