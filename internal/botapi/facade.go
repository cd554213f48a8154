// Package botapi translates the Discord bot's command vocabulary into scam log
// operations. Facade.Dispatch is the single error boundary: every outcome,
// including panics, comes back as an Envelope.
package botapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/stardevs/community-backend/internal/activity"
	"github.com/stardevs/community-backend/internal/logging"
	"github.com/stardevs/community-backend/internal/metrics"
	"github.com/stardevs/community-backend/internal/models"
	"github.com/stardevs/community-backend/internal/query"
	"github.com/stardevs/community-backend/internal/services"
	"gorm.io/datatypes"
)

// ErrorKind classifies a failed envelope for transports that need a status code.
type ErrorKind string

const (
	KindValidation       ErrorKind = "validation"
	KindNotFound         ErrorKind = "not_found"
	KindUnknownOperation ErrorKind = "unknown_operation"
	KindInternal         ErrorKind = "internal"
)

// Envelope is the uniform bot API response.
type Envelope struct {
	Success bool      `json:"success"`
	Data    any       `json:"data,omitempty"`
	Error   string    `json:"error,omitempty"`
	Kind    ErrorKind `json:"-"`
}

func succeed(data any) Envelope {
	return Envelope{Success: true, Data: data}
}

func fail(kind ErrorKind, message string) Envelope {
	return Envelope{Success: false, Error: message, Kind: kind}
}

type Facade struct {
	mu       sync.Mutex
	reports  *services.ScamLogService
	stats    *services.StatsService
	recorder activity.Recorder
	metrics  *metrics.Metrics
	clock    services.Clock
	logger   *slog.Logger
}

type OptionFunc func(*Facade)

func WithRecorder(recorder activity.Recorder) OptionFunc {
	return func(f *Facade) {
		f.recorder = recorder
	}
}

func WithMetrics(m *metrics.Metrics) OptionFunc {
	return func(f *Facade) {
		f.metrics = m
	}
}

func WithLogger(logger *slog.Logger) OptionFunc {
	return func(f *Facade) {
		f.logger = logger
	}
}

func WithClock(clock services.Clock) OptionFunc {
	return func(f *Facade) {
		f.clock = clock
	}
}

func New(reports *services.ScamLogService, stats *services.StatsService, opts ...OptionFunc) *Facade {
	f := &Facade{
		reports: reports,
		stats:   stats,
		clock:   services.RealClock{},
	}
	for _, opt := range opts {
		opt(f)
	}
	f.logger = logging.OrDiscard(f.logger)
	if f.recorder == nil {
		f.recorder = activity.LogRecorder{Logger: f.logger}
	}
	return f
}

// DispatchNamed decodes a JSON payload for the named operation and dispatches it.
// Unknown names produce "Endpoint not found: <name>".
func (f *Facade) DispatchNamed(actor, operation string, payload []byte) Envelope {
	req, known := newRequest(operation)
	if !known {
		env := fail(KindUnknownOperation, "Endpoint not found: "+operation)
		f.finish(actor, operation, nil, env, time.Now())
		return env
	}
	if len(payload) > 0 {
		if err := json.Unmarshal(payload, req); err != nil {
			env := fail(KindValidation, "invalid request payload: "+err.Error())
			f.finish(actor, operation, nil, env, time.Now())
			return env
		}
	}
	return f.Dispatch(actor, req)
}

// Dispatch validates and executes req on behalf of actor. It never panics.
func (f *Facade) Dispatch(actor string, req Request) (env Envelope) {
	start := time.Now()
	operation := "unknown"

	defer func() {
		if r := recover(); r != nil {
			f.logger.Error("bot api operation panicked", "operation", operation, "actor", actor, "panic", fmt.Sprint(r))
			env = fail(KindInternal, panicMessage(r))
		}
		f.finish(actor, operation, req, env, start)
	}()

	if req == nil {
		return fail(KindValidation, "request is required")
	}
	operation = req.Operation()
	if _, known := newRequest(operation); !known {
		return fail(KindUnknownOperation, "Endpoint not found: "+operation)
	}
	if err := req.Validate(); err != nil {
		return failFromError(err)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := f.execute(req)
	if err != nil {
		return failFromError(err)
	}
	return succeed(data)
}

func (f *Facade) execute(req Request) (any, error) {
	switch r := req.(type) {
	case *CreateReport:
		return f.createReport(r)

	case *GetReport:
		report, found, err := f.reports.GetByID(strings.TrimSpace(r.ID))
		if err != nil {
			return nil, err
		}
		if !found {
			return nil, services.ErrNotFound
		}
		return report, nil

	case *ListReports:
		all, err := f.reports.List()
		if err != nil {
			return nil, err
		}
		return query.Apply(all, r.Params), nil

	case *SetStatus:
		report, found, err := f.reports.SetStatus(strings.TrimSpace(r.LogID), r.Status)
		if err != nil {
			return nil, err
		}
		if !found {
			return nil, services.ErrNotFound
		}
		f.logger.Info("scam log status changed", "id", report.ID, "status", report.Status)
		return report, nil

	case *RemoveReport:
		removed, err := f.reports.Remove(strings.TrimSpace(r.LogID))
		if err != nil {
			return nil, err
		}
		if !removed {
			return nil, services.ErrNotFound
		}
		return true, nil

	case *SetMemberCount:
		return f.stats.Update(models.StatsPatch{MemberCount: r.MemberCount})

	case *GetMemberCount:
		stats, err := f.stats.Get()
		if err != nil {
			return nil, err
		}
		return MemberCount{MemberCount: stats.MemberCount}, nil

	case *GetStats:
		return f.stats.Get()

	case *UpdateStats:
		return f.stats.Update(r.StatsPatch)
	}
	return nil, fmt.Errorf("unhandled operation %s", req.Operation())
}

func (f *Facade) createReport(r *CreateReport) (models.ScamReport, error) {
	occurred, err := parseDateOccurred(r.DateOccurred)
	if err != nil {
		return models.ScamReport{}, err
	}
	if occurred.IsZero() {
		occurred = f.clock.Now().UTC().Truncate(24 * time.Hour)
	}

	subjectID := strings.TrimSpace(r.ScammerUserID)
	if subjectID == "" {
		subjectID = strings.TrimSpace(r.ScammerUsername)
	}

	return f.reports.Create(services.CreateReportInput{
		ReportedBy:   r.ReportedBy,
		ReporterName: r.ReporterUsername,
		Victim: models.Party{
			UserID:         strings.TrimSpace(r.VictimUserID),
			AdditionalInfo: r.VictimAdditionalInfo,
		},
		Subject: models.Party{
			UserID:         subjectID,
			AdditionalInfo: r.ScammerAdditionalInfo,
		},
		Category:     strings.TrimSpace(r.ScamType),
		Description:  strings.TrimSpace(r.ScamDescription),
		Evidence:     r.Evidence,
		DateOccurred: occurred.Format(time.RFC3339),
	})
}

// finish records metrics and the activity entry. A failure here is logged and
// never changes or escapes the envelope already decided.
func (f *Facade) finish(actor, operation string, req Request, env Envelope, start time.Time) {
	defer func() {
		if r := recover(); r != nil {
			f.logger.Error("bot api activity recording panicked", "operation", operation, "actor", actor, "panic", fmt.Sprint(r))
		}
	}()

	f.metrics.ObserveRequest(operation, env.Success, time.Since(start))

	entry := models.ActivityLog{
		Timestamp: f.clock.Now().UTC(),
		Operation: operation,
		Actor:     actor,
		Success:   env.Success,
		Error:     env.Error,
	}
	if req != nil {
		if params, err := json.Marshal(req); err == nil {
			entry.Parameters = datatypes.JSON(params)
		}
	}
	f.recorder.Record(entry)
}

func failFromError(err error) Envelope {
	switch {
	case errors.Is(err, services.ErrValidation):
		return fail(KindValidation, err.Error())
	case errors.Is(err, services.ErrNotFound):
		return fail(KindNotFound, "Scam log not found")
	default:
		return fail(KindInternal, err.Error())
	}
}

func invalid(message string) error {
	return &services.ValidationError{Message: message}
}

func panicMessage(r any) string {
	if err, ok := r.(error); ok {
		return err.Error()
	}
	return "Internal server error"
}
