package factory

import (
	"time"

	"github.com/shadowhunt/shadowhunt-go/internal/dependencies/mocks"
	"github.com/shadowhunt/shadowhunt-go/internal/services/oracle"
	"github.com/shadowhunt/shadowhunt-go/internal/storage/memory"
	"github.com/shadowhunt/shadowhunt-go/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
}

// NewTestApp creates an App configured for testing with mocked dependencies.
// The oracle client is injectable because tests script its behavior.
func NewTestApp(oracleClient oracle.Client) *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()

	cfg := Config{TokenSecret: "test-secret"}
	app, err := newWithDependencies(store, mockClock, mockRandom, oracleClient, cfg, testutil.NopLogger())
	if err != nil {
		panic(err)
	}

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
	}
}
