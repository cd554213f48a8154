package services

import (
	"strings"

	"github.com/stardevs/community-backend/internal/models"
)

// Older website builds stored the reported party as "scammerInfo" keyed by
// username and left evidence optional. storedReport decodes either shape.
type storedReport struct {
	models.ScamReport
	ScammerInfo *legacyScammerInfo `json:"scammerInfo,omitempty"`
	ScamDetails *legacyScamDetails `json:"scamDetails,omitempty"`
}

type legacyScammerInfo struct {
	Username       string `json:"username"`
	UserID         string `json:"userId"`
	AdditionalInfo string `json:"additionalInfo"`
}

type legacyScamDetails struct {
	Type         string   `json:"type"`
	Description  string   `json:"description"`
	Evidence     []string `json:"evidence"`
	DateOccurred string   `json:"dateOccurred"`
}

// migrateReport converts a stored record to the current shape and reports
// whether anything had to change.
func migrateReport(s storedReport) (models.ScamReport, bool) {
	r := s.ScamReport
	changed := false

	if li := s.ScammerInfo; li != nil {
		changed = true
		r.Subject.UserID = li.UserID
		if r.Subject.UserID == "" {
			r.Subject.UserID = li.Username
		}
		r.Subject.AdditionalInfo = li.AdditionalInfo
		if li.Username != "" && li.Username != r.Subject.UserID {
			note := "username: " + li.Username
			if r.Subject.AdditionalInfo == "" {
				r.Subject.AdditionalInfo = note
			} else {
				r.Subject.AdditionalInfo = strings.TrimSpace(r.Subject.AdditionalInfo) + "; " + note
			}
		}
	}

	if ld := s.ScamDetails; ld != nil {
		changed = true
		r.Details = models.ReportDetails{
			Category:     ld.Type,
			Description:  ld.Description,
			Evidence:     ld.Evidence,
			DateOccurred: ld.DateOccurred,
		}
	}

	if r.Details.Evidence == nil {
		changed = true
		r.Details.Evidence = []string{}
	}
	if r.ReportDate.IsZero() && !r.CreatedAt.IsZero() {
		changed = true
		r.ReportDate = r.CreatedAt
	}
	if !r.Status.Valid() {
		changed = true
		r.Status = models.StatusPending
	}
	return r, changed
}

// migrateReports applies migrateReport to a whole collection.
func migrateReports(stored []storedReport) ([]models.ScamReport, int) {
	reports := make([]models.ScamReport, 0, len(stored))
	migrated := 0
	for _, s := range stored {
		r, changed := migrateReport(s)
		if changed {
			migrated++
		}
		reports = append(reports, r)
	}
	return reports, migrated
}
