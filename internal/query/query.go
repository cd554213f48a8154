// Package query filters, sorts and pages scam report listings.
package query

import (
	"sort"
	"strings"

	"github.com/stardevs/community-backend/internal/models"
)

// StatusAll disables status filtering.
const StatusAll = "all"

// Params selects a page of reports. Zero values mean "no constraint".
type Params struct {
	Status string `json:"status,omitempty" query:"status"`
	Search string `json:"search,omitempty" query:"search"`
	Offset int    `json:"offset,omitempty" query:"offset"`
	Limit  int    `json:"limit,omitempty" query:"limit"`
}

// Apply filters by status and search text, sorts newest first, then applies
// offset and limit, in that order. The input slice is not modified.
func Apply(reports []models.ScamReport, p Params) []models.ScamReport {
	out := filter(reports, p)

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	if p.Offset > 0 {
		if p.Offset >= len(out) {
			return []models.ScamReport{}
		}
		out = out[p.Offset:]
	}
	if p.Limit > 0 && p.Limit < len(out) {
		out = out[:p.Limit]
	}
	return out
}

// Count returns how many reports pass the filters, ignoring pagination.
func Count(reports []models.ScamReport, p Params) int {
	return len(filter(reports, p))
}

func filter(reports []models.ScamReport, p Params) []models.ScamReport {
	search := strings.ToLower(strings.TrimSpace(p.Search))
	out := make([]models.ScamReport, 0, len(reports))
	for _, r := range reports {
		if p.Status != "" && p.Status != StatusAll && string(r.Status) != p.Status {
			continue
		}
		if search != "" && !matches(r, search) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func matches(r models.ScamReport, needle string) bool {
	for _, field := range []string{r.Subject.UserID, r.Details.Category, r.Details.Description} {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}
