package botapi

import (
	"fmt"
	"strings"
	"time"

	"github.com/stardevs/community-backend/internal/models"
	"github.com/stardevs/community-backend/internal/query"
)

// Operation names understood by the façade.
const (
	OpCreateReport   = "create-report"
	OpGetReport      = "get-report"
	OpListReports    = "list-reports"
	OpSetStatus      = "set-status"
	OpRemoveReport   = "remove-report"
	OpSetMemberCount = "set-member-count"
	OpGetMemberCount = "get-member-count"
	OpGetStats       = "get-stats"
	OpUpdateStats    = "update-stats"
)

const dateOnly = "2006-01-02"

// Request is one bot command. Each operation has its own request type.
type Request interface {
	Operation() string
	Validate() error
}

// newRequest returns an empty request for a named operation, ready for decoding.
func newRequest(operation string) (Request, bool) {
	switch operation {
	case OpCreateReport:
		return &CreateReport{}, true
	case OpGetReport:
		return &GetReport{}, true
	case OpListReports:
		return &ListReports{}, true
	case OpSetStatus:
		return &SetStatus{}, true
	case OpRemoveReport:
		return &RemoveReport{}, true
	case OpSetMemberCount:
		return &SetMemberCount{}, true
	case OpGetMemberCount:
		return &GetMemberCount{}, true
	case OpGetStats:
		return &GetStats{}, true
	case OpUpdateStats:
		return &UpdateStats{}, true
	}
	return nil, false
}

// CreateReport files a new scam report. Field names follow the bot's payloads.
type CreateReport struct {
	ReportedBy            string   `json:"reportedBy"`
	ReporterUsername      string   `json:"reporterUsername,omitempty"`
	ScammerUserID         string   `json:"scammerUserId"`
	ScammerUsername       string   `json:"scammerUsername,omitempty"`
	ScammerAdditionalInfo string   `json:"scammerAdditionalInfo,omitempty"`
	VictimUserID          string   `json:"victimUserId,omitempty"`
	VictimAdditionalInfo  string   `json:"victimAdditionalInfo,omitempty"`
	ScamType              string   `json:"scamType"`
	ScamDescription       string   `json:"scamDescription"`
	DateOccurred          string   `json:"dateOccurred,omitempty"`
	Evidence              []string `json:"evidence"`
}

func (*CreateReport) Operation() string { return OpCreateReport }

func (r *CreateReport) Validate() error {
	switch {
	case strings.TrimSpace(r.ReportedBy) == "":
		return invalid("reportedBy is required")
	case strings.TrimSpace(r.ScammerUserID) == "" && strings.TrimSpace(r.ScammerUsername) == "":
		return invalid("scammerUserId is required")
	case strings.TrimSpace(r.ScamType) == "":
		return invalid("scamType is required")
	case strings.TrimSpace(r.ScamDescription) == "":
		return invalid("scamDescription is required")
	}
	if _, err := parseDateOccurred(r.DateOccurred); err != nil {
		return err
	}
	return nil
}

type GetReport struct {
	ID string `json:"id"`
}

func (*GetReport) Operation() string { return OpGetReport }

func (r *GetReport) Validate() error {
	if strings.TrimSpace(r.ID) == "" {
		return invalid("id is required")
	}
	return nil
}

type ListReports struct {
	query.Params
}

func (*ListReports) Operation() string { return OpListReports }

func (r *ListReports) Validate() error {
	if r.Status != "" && r.Status != query.StatusAll && !models.ReportStatus(r.Status).Valid() {
		return invalid("status must be all, pending, verified or rejected")
	}
	if r.Limit < 0 || r.Offset < 0 {
		return invalid("limit and offset cannot be negative")
	}
	return nil
}

type SetStatus struct {
	LogID  string              `json:"logId"`
	Status models.ReportStatus `json:"status"`
}

func (*SetStatus) Operation() string { return OpSetStatus }

func (r *SetStatus) Validate() error {
	if strings.TrimSpace(r.LogID) == "" {
		return invalid("logId is required")
	}
	if !r.Status.Valid() {
		return invalid("status must be pending, verified or rejected")
	}
	return nil
}

type RemoveReport struct {
	LogID string `json:"logId"`
}

func (*RemoveReport) Operation() string { return OpRemoveReport }

func (r *RemoveReport) Validate() error {
	if strings.TrimSpace(r.LogID) == "" {
		return invalid("logId is required")
	}
	return nil
}

type SetMemberCount struct {
	MemberCount *int `json:"memberCount"`
}

func (*SetMemberCount) Operation() string { return OpSetMemberCount }

func (r *SetMemberCount) Validate() error {
	if r.MemberCount == nil {
		return invalid("memberCount is required")
	}
	if *r.MemberCount < 0 {
		return invalid("memberCount cannot be negative")
	}
	return nil
}

type GetMemberCount struct{}

func (*GetMemberCount) Operation() string { return OpGetMemberCount }
func (*GetMemberCount) Validate() error   { return nil }

type GetStats struct{}

func (*GetStats) Operation() string { return OpGetStats }
func (*GetStats) Validate() error   { return nil }

type UpdateStats struct {
	models.StatsPatch
}

func (*UpdateStats) Operation() string { return OpUpdateStats }

func (r *UpdateStats) Validate() error {
	if r.MemberCount != nil && *r.MemberCount < 0 {
		return invalid("memberCount cannot be negative")
	}
	return nil
}

// MemberCount is the get-member-count payload.
type MemberCount struct {
	MemberCount int `json:"memberCount"`
}

// parseDateOccurred accepts a plain date or an RFC 3339 timestamp.
// An empty value is allowed and means "today".
func parseDateOccurred(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(dateOnly, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	return time.Time{}, invalid(fmt.Sprintf("invalid dateOccurred %q: use YYYY-MM-DD", s))
}
