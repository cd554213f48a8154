package services

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/stardevs/community-backend/internal/kvstore"
	"github.com/stardevs/community-backend/internal/logging"
	"github.com/stardevs/community-backend/internal/models"
)

// CreateReportInput is the data needed to file a new report.
type CreateReportInput struct {
	ReportedBy string
	// ReporterName seeds the id prefix. Falls back to ReportedBy when empty.
	ReporterName string
	Victim       models.Party
	Subject      models.Party
	Category     string
	Description  string
	Evidence     []string
	DateOccurred string
}

// ScamLogService is the repository for scam reports. The whole collection is
// one record in the store; every mutation is a read-modify-write of it.
type ScamLogService struct {
	store  kvstore.Store
	key    string
	ids    *IDGenerator
	clock  Clock
	logger *slog.Logger
}

// NewScamLogService returns the repository for the namespace in keys, converting
// any records stored in an older shape first.
func NewScamLogService(store kvstore.Store, keys kvstore.Keys, clock Clock, logger *slog.Logger) (*ScamLogService, error) {
	if clock == nil {
		clock = RealClock{}
	}
	s := &ScamLogService{
		store:  store,
		key:    keys.Reports,
		ids:    NewIDGenerator(store, keys),
		clock:  clock,
		logger: logging.OrDiscard(logger),
	}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("failed to migrate stored scam logs: %w", err)
	}
	return s, nil
}

func (s *ScamLogService) migrate() error {
	var stored []storedReport
	found, err := kvstore.ReadJSON(s.store, s.key, &stored)
	if err != nil || !found {
		return err
	}
	reports, migrated := migrateReports(stored)
	if migrated == 0 {
		return nil
	}
	if err := s.save(reports); err != nil {
		return err
	}
	s.logger.Info("migrated stored scam logs", "migrated", migrated, "total", len(reports))
	return nil
}

func (s *ScamLogService) load() ([]models.ScamReport, error) {
	var reports []models.ScamReport
	found, err := kvstore.ReadJSON(s.store, s.key, &reports)
	if err != nil || !found {
		return nil, err
	}
	return reports, nil
}

func (s *ScamLogService) save(reports []models.ScamReport) error {
	if reports == nil {
		reports = []models.ScamReport{}
	}
	return kvstore.WriteJSON(s.store, s.key, reports)
}

// Create validates the evidence, assigns an id and appends a pending report.
func (s *ScamLogService) Create(in CreateReportInput) (models.ScamReport, error) {
	evidence := make([]string, 0, len(in.Evidence))
	for _, e := range in.Evidence {
		if e = strings.TrimSpace(e); e != "" {
			evidence = append(evidence, e)
		}
	}
	if len(evidence) == 0 {
		return models.ScamReport{}, newValidationError("evidence", "at least one piece of evidence is required")
	}

	reports, err := s.load()
	if err != nil {
		return models.ScamReport{}, err
	}

	name := in.ReporterName
	if strings.TrimSpace(name) == "" {
		name = in.ReportedBy
	}
	id, err := s.ids.Next(name)
	if err != nil {
		return models.ScamReport{}, err
	}

	now := stamp(s.clock)
	report := models.ScamReport{
		ID:         id,
		ReportedBy: in.ReportedBy,
		Victim:     in.Victim,
		Subject:    in.Subject,
		Details: models.ReportDetails{
			Category:     in.Category,
			Description:  in.Description,
			Evidence:     evidence,
			DateOccurred: in.DateOccurred,
		},
		Status:     models.StatusPending,
		CreatedAt:  now,
		UpdatedAt:  now,
		ReportDate: now,
	}

	reports = append(reports, report)
	if err := s.save(reports); err != nil {
		return models.ScamReport{}, err
	}
	s.logger.Info("scam log created", "id", report.ID, "category", report.Details.Category)
	return report, nil
}

// GetByID looks up a report by exact id, then by id prefix.
// A miss is reported through found, not as an error.
func (s *ScamLogService) GetByID(idOrPrefix string) (models.ScamReport, bool, error) {
	reports, err := s.load()
	if err != nil {
		return models.ScamReport{}, false, err
	}
	i := resolve(reports, idOrPrefix)
	if i < 0 {
		return models.ScamReport{}, false, nil
	}
	return reports[i], true, nil
}

// List returns every report in storage order.
func (s *ScamLogService) List() ([]models.ScamReport, error) {
	reports, err := s.load()
	if err != nil {
		return nil, err
	}
	if reports == nil {
		reports = []models.ScamReport{}
	}
	return reports, nil
}

// Update merges the non-nil fields of patch into the matching report.
func (s *ScamLogService) Update(idOrPrefix string, patch models.ScamReportPatch) (models.ScamReport, bool, error) {
	reports, err := s.load()
	if err != nil {
		return models.ScamReport{}, false, err
	}
	i := resolve(reports, idOrPrefix)
	if i < 0 {
		return models.ScamReport{}, false, nil
	}

	r := reports[i]
	if patch.ReportedBy != nil {
		r.ReportedBy = *patch.ReportedBy
	}
	if patch.Victim != nil {
		r.Victim = *patch.Victim
	}
	if patch.Subject != nil {
		r.Subject = *patch.Subject
	}
	if patch.Details != nil {
		r.Details = *patch.Details
	}
	if patch.Status != nil {
		r.Status = *patch.Status
	}
	r.UpdatedAt = stamp(s.clock)
	reports[i] = r

	if err := s.save(reports); err != nil {
		return models.ScamReport{}, false, err
	}
	return r, true, nil
}

// SetStatus is Update with only the status set.
func (s *ScamLogService) SetStatus(idOrPrefix string, status models.ReportStatus) (models.ScamReport, bool, error) {
	return s.Update(idOrPrefix, models.ScamReportPatch{Status: &status})
}

// Remove deletes the first matching report and reports whether one was removed.
func (s *ScamLogService) Remove(idOrPrefix string) (bool, error) {
	reports, err := s.load()
	if err != nil {
		return false, err
	}
	i := resolve(reports, idOrPrefix)
	if i < 0 {
		return false, nil
	}
	removed := reports[i].ID
	reports = append(reports[:i], reports[i+1:]...)
	if err := s.save(reports); err != nil {
		return false, err
	}
	s.logger.Info("scam log removed", "id", removed)
	return true, nil
}

// resolve returns the index of the report with id idOrPrefix, or else of the
// first report whose id starts with it. Truncated ids ("first 8 characters")
// are how the bot refers to reports.
func resolve(reports []models.ScamReport, idOrPrefix string) int {
	if idOrPrefix == "" {
		return -1
	}
	for i, r := range reports {
		if r.ID == idOrPrefix {
			return i
		}
	}
	for i, r := range reports {
		if strings.HasPrefix(r.ID, idOrPrefix) {
			return i
		}
	}
	return -1
}
