package services

import (
	"fmt"
	"testing"

	"github.com/stardevs/community-backend/internal/kvstore"
	"github.com/stardevs/community-backend/internal/models"
	"github.com/stardevs/community-backend/internal/testutil"
	"github.com/stretchr/testify/require"
)

func reportInput(reporter string, n int) CreateReportInput {
	return CreateReportInput{
		ReportedBy:   reporter + "#0001 (STAFF)",
		ReporterName: reporter,
		Victim:       models.Party{UserID: fmt.Sprintf("victim-%d", n)},
		Subject:      models.Party{UserID: fmt.Sprintf("scammer-%d", n), AdditionalInfo: "alt account"},
		Category:     "Fake Nitro",
		Description:  fmt.Sprintf("report number %d", n),
		Evidence:     []string{fmt.Sprintf("https://cdn.example.com/evidence/%d.png", n)},
		DateOccurred: "2024-01-10",
	}
}

type fixture struct {
	store *kvstore.MemoryStore
	keys  kvstore.Keys
	clock *testutil.StubClock
	svc   *ScamLogService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		store: kvstore.NewMemoryStore(),
		keys:  kvstore.NewKeys("test"),
		clock: testutil.FixedClock(),
	}
	svc, err := NewScamLogService(f.store, f.keys, f.clock, nil)
	require.NoError(t, err)
	f.svc = svc
	return f
}
