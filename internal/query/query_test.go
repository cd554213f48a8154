package query

import (
	"testing"
	"time"

	"github.com/stardevs/community-backend/internal/models"
	"github.com/stretchr/testify/assert"
)

var base = time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)

func report(id string, status models.ReportStatus, hoursLater int) models.ScamReport {
	return models.ScamReport{
		ID:        id,
		Status:    status,
		CreatedAt: base.Add(time.Duration(hoursLater) * time.Hour),
	}
}

func ids(reports []models.ScamReport) []string {
	out := make([]string, len(reports))
	for i, r := range reports {
		out[i] = r.ID
	}
	return out
}

func TestApplyFilterSortPaginate(t *testing.T) {
	reports := []models.ScamReport{
		report("T1", models.StatusPending, 1),
		report("T2", models.StatusVerified, 2),
		report("T3", models.StatusPending, 3),
		report("T4", models.StatusVerified, 4),
	}

	got := Apply(reports, Params{Status: "pending", Limit: 1, Offset: 0})
	assert.Equal(t, []string{"T3"}, ids(got))
}

func TestApply(t *testing.T) {
	reports := []models.ScamReport{
		report("A", models.StatusPending, 1),
		report("B", models.StatusVerified, 5),
		report("C", models.StatusRejected, 3),
		report("D", models.StatusPending, 4),
		report("E", models.StatusPending, 2),
	}

	tests := []struct {
		name   string
		params Params
		want   []string
	}{
		{"no params sorts newest first", Params{}, []string{"B", "D", "C", "E", "A"}},
		{"all keeps every status", Params{Status: StatusAll}, []string{"B", "D", "C", "E", "A"}},
		{"status filter", Params{Status: "pending"}, []string{"D", "E", "A"}},
		{"unknown status matches nothing", Params{Status: "archived"}, []string{}},
		{"offset only", Params{Offset: 3}, []string{"E", "A"}},
		{"limit only", Params{Limit: 2}, []string{"B", "D"}},
		{"offset then limit", Params{Offset: 1, Limit: 2}, []string{"D", "C"}},
		{"offset past end", Params{Offset: 10}, []string{}},
		{"negative values ignored", Params{Offset: -1, Limit: -5}, []string{"B", "D", "C", "E", "A"}},
		{"status then page", Params{Status: "pending", Offset: 1, Limit: 1}, []string{"E"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(Apply(reports, tt.params)))
		})
	}
}

func TestApplySearch(t *testing.T) {
	reports := []models.ScamReport{
		{ID: "A", CreatedAt: base, Subject: models.Party{UserID: "FreeNitro99"}},
		{ID: "B", CreatedAt: base.Add(time.Hour), Details: models.ReportDetails{Category: "Phishing"}},
		{ID: "C", CreatedAt: base.Add(2 * time.Hour), Details: models.ReportDetails{Description: "sent a fake NITRO gift link"}},
		{ID: "D", CreatedAt: base.Add(3 * time.Hour), Subject: models.Party{UserID: "someone", AdditionalInfo: "nitro"}},
	}

	assert.Equal(t, []string{"C", "A"}, ids(Apply(reports, Params{Search: "nitro"})))
	assert.Equal(t, []string{"B"}, ids(Apply(reports, Params{Search: "  PHISH "})))
	assert.Equal(t, []string{"D", "C", "B", "A"}, ids(Apply(reports, Params{Search: "   "})))
}

func TestApplyKeepsStorageOrderForTies(t *testing.T) {
	reports := []models.ScamReport{
		report("first", models.StatusPending, 1),
		report("second", models.StatusPending, 1),
	}
	assert.Equal(t, []string{"first", "second"}, ids(Apply(reports, Params{})))
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	reports := []models.ScamReport{
		report("old", models.StatusPending, 1),
		report("new", models.StatusPending, 2),
	}
	_ = Apply(reports, Params{})
	assert.Equal(t, []string{"old", "new"}, ids(reports))
}

func TestCount(t *testing.T) {
	reports := []models.ScamReport{
		report("A", models.StatusPending, 1),
		report("B", models.StatusVerified, 2),
		report("C", models.StatusPending, 3),
	}
	assert.Equal(t, 2, Count(reports, Params{Status: "pending", Limit: 1}))
	assert.Equal(t, 3, Count(reports, Params{}))
}
