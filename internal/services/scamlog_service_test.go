package services

import (
	"errors"
	"testing"
	"time"

	"github.com/stardevs/community-backend/internal/kvstore"
	"github.com/stardevs/community-backend/internal/models"
	"github.com/stardevs/community-backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateStampsAndStoresReport(t *testing.T) {
	f := newFixture(t)

	report, err := f.svc.Create(reportInput("sk_milo", 1))
	require.NoError(t, err)

	now := f.clock.Now()
	assert.Equal(t, "SKM001", report.ID)
	assert.Equal(t, models.StatusPending, report.Status)
	assert.Equal(t, "sk_milo#0001 (STAFF)", report.ReportedBy)
	assert.Equal(t, now, report.CreatedAt)
	assert.Equal(t, now, report.UpdatedAt)
	assert.Equal(t, now, report.ReportDate)

	all, err := f.svc.List()
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestCreateFallsBackToReportedByForPrefix(t *testing.T) {
	f := newFixture(t)
	in := reportInput("", 1)
	in.ReportedBy = "zed#4242 (STAFF)"

	report, err := f.svc.Create(in)
	require.NoError(t, err)
	assert.Equal(t, "ZED001", report.ID)
}

func TestCreateAssignsDistinctIDs(t *testing.T) {
	f := newFixture(t)

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		report, err := f.svc.Create(reportInput("milo", i))
		require.NoError(t, err)
		assert.False(t, seen[report.ID], "duplicate id %s", report.ID)
		seen[report.ID] = true
	}
}

func TestCreateRoundTrip(t *testing.T) {
	f := newFixture(t)

	created, err := f.svc.Create(reportInput("milo", 1))
	require.NoError(t, err)

	got, found, err := f.svc.GetByID(created.ID)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, created, got)
}

func TestCreateRequiresEvidence(t *testing.T) {
	for name, evidence := range map[string][]string{
		"nil":   nil,
		"empty": {},
		"blank": {"", "   "},
	} {
		t.Run(name, func(t *testing.T) {
			f := newFixture(t)
			_, err := f.svc.Create(reportInput("milo", 1))
			require.NoError(t, err)

			in := reportInput("milo", 2)
			in.Evidence = evidence
			_, err = f.svc.Create(in)

			assert.ErrorIs(t, err, ErrValidation)
			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, "evidence", verr.Field)

			all, err := f.svc.List()
			require.NoError(t, err)
			assert.Len(t, all, 1, "failed create must not touch the collection")

			counter, err := f.svc.ids.current()
			require.NoError(t, err)
			assert.Equal(t, 1, counter, "failed create must not consume an id")
		})
	}
}

func TestCreateDropsBlankEvidenceEntries(t *testing.T) {
	f := newFixture(t)
	in := reportInput("milo", 1)
	in.Evidence = []string{" ", "https://i.imgur.com/a.png ", ""}

	report, err := f.svc.Create(in)
	require.NoError(t, err)
	assert.Equal(t, []string{"https://i.imgur.com/a.png"}, report.Details.Evidence)
}

func TestGetByIDPrefixMatch(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, kvstore.WriteJSON(f.store, f.keys.Reports, []models.ScamReport{
		{ID: "ABCDEF1234", Status: models.StatusPending},
	}))

	got, found, err := f.svc.GetByID("ABCDEF")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "ABCDEF1234", got.ID)
}

func TestGetByIDPrefersExactMatch(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, kvstore.WriteJSON(f.store, f.keys.Reports, []models.ScamReport{
		{ID: "MIL0011"},
		{ID: "MIL001"},
	}))

	got, found, err := f.svc.GetByID("MIL001")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "MIL001", got.ID)
}

func TestGetByIDMissing(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Create(reportInput("milo", 1))
	require.NoError(t, err)

	for _, id := range []string{"NOPE", ""} {
		_, found, err := f.svc.GetByID(id)
		assert.NoError(t, err)
		assert.False(t, found, "id %q", id)
	}
}

func TestUpdatePreservesUntouchedFields(t *testing.T) {
	f := newFixture(t)
	before, err := f.svc.Create(reportInput("milo", 1))
	require.NoError(t, err)

	f.clock.Advance(90 * time.Minute)
	after, found, err := f.svc.SetStatus(before.ID, models.StatusVerified)
	require.NoError(t, err)
	require.True(t, found)

	expected := before
	expected.Status = models.StatusVerified
	expected.UpdatedAt = f.clock.Now()
	assert.Equal(t, expected, after)

	stored, _, err := f.svc.GetByID(before.ID)
	require.NoError(t, err)
	assert.Equal(t, expected, stored)
}

func TestUpdateMergesPatchFields(t *testing.T) {
	f := newFixture(t)
	created, err := f.svc.Create(reportInput("milo", 1))
	require.NoError(t, err)

	reporter := "moderator#9999 (STAFF)"
	subject := models.Party{UserID: "123456789", AdditionalInfo: "new alt"}
	updated, found, err := f.svc.Update(created.ID[:4], models.ScamReportPatch{
		ReportedBy: &reporter,
		Subject:    &subject,
	})
	require.NoError(t, err)
	require.True(t, found)

	assert.Equal(t, reporter, updated.ReportedBy)
	assert.Equal(t, subject, updated.Subject)
	assert.Equal(t, created.Victim, updated.Victim)
	assert.Equal(t, created.Details, updated.Details)
	assert.Equal(t, created.ID, updated.ID)
}

func TestUpdateMissing(t *testing.T) {
	f := newFixture(t)
	status := models.StatusRejected

	_, found, err := f.svc.Update("NOPE", models.ScamReportPatch{Status: &status})
	assert.NoError(t, err)
	assert.False(t, found)
}

func TestRemoveIsIdempotent(t *testing.T) {
	f := newFixture(t)
	keep, err := f.svc.Create(reportInput("milo", 1))
	require.NoError(t, err)
	drop, err := f.svc.Create(reportInput("milo", 2))
	require.NoError(t, err)

	removed, err := f.svc.Remove(drop.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = f.svc.Remove(drop.ID)
	require.NoError(t, err)
	assert.False(t, removed)

	all, err := f.svc.List()
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, keep.ID, all[0].ID)
}

func TestIDsAreNotReusedAfterRemove(t *testing.T) {
	f := newFixture(t)
	first, err := f.svc.Create(reportInput("milo", 1))
	require.NoError(t, err)
	_, err = f.svc.Remove(first.ID)
	require.NoError(t, err)

	second, err := f.svc.Create(reportInput("milo", 2))
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestListEmptyStore(t *testing.T) {
	f := newFixture(t)
	all, err := f.svc.List()
	require.NoError(t, err)
	assert.NotNil(t, all)
	assert.Empty(t, all)
}

func TestUndecodableCollectionDegradesToEmpty(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.store.Set(f.keys.Reports, []byte("<html>")))

	all, err := f.svc.List()
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestMistypedCollectionDegradesToEmpty(t *testing.T) {
	store := kvstore.NewMemoryStore()
	keys := kvstore.NewKeys("test")
	require.NoError(t, store.Set(keys.Reports, []byte(`[
		{"id":"MIL001","status":5,"details":{"evidence":["x"]}},
		{"id":"ADA002","status":"pending","details":{"evidence":["y"]}}
	]`)))

	svc, err := NewScamLogService(store, keys, testutil.FixedClock(), nil)
	require.NoError(t, err)

	all, err := svc.List()
	require.NoError(t, err)
	assert.Empty(t, all)

	_, found, err := svc.GetByID("MIL001")
	require.NoError(t, err)
	assert.False(t, found)

	created, err := svc.Create(reportInput("milo", 1))
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, created.Status)

	all, err = svc.List()
	require.NoError(t, err)
	assert.Len(t, all, 1, "the unreadable collection is replaced on the next write")
}

func TestNamespacesAreIsolated(t *testing.T) {
	store := kvstore.NewMemoryStore()
	a, err := NewScamLogService(store, kvstore.NewKeys("a"), nil, nil)
	require.NoError(t, err)
	b, err := NewScamLogService(store, kvstore.NewKeys("b"), nil, nil)
	require.NoError(t, err)

	_, err = a.Create(reportInput("milo", 1))
	require.NoError(t, err)

	all, err := b.List()
	require.NoError(t, err)
	assert.Empty(t, all)
}
