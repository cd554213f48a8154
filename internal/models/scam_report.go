package models

import "time"

// ReportStatus is the review state of a scam report.
type ReportStatus string

const (
	StatusPending  ReportStatus = "pending"
	StatusVerified ReportStatus = "verified"
	StatusRejected ReportStatus = "rejected"
)

// Valid reports whether s is one of the known review states.
func (s ReportStatus) Valid() bool {
	switch s {
	case StatusPending, StatusVerified, StatusRejected:
		return true
	}
	return false
}

// Party identifies a Discord user involved in a report.
type Party struct {
	UserID         string `json:"userId" yaml:"userId"`
	AdditionalInfo string `json:"additionalInfo,omitempty" yaml:"additionalInfo,omitempty"`
}

type ReportDetails struct {
	Category     string   `json:"category" yaml:"category"`
	Description  string   `json:"description" yaml:"description"`
	Evidence     []string `json:"evidence" yaml:"evidence"`
	DateOccurred string   `json:"dateOccurred" yaml:"dateOccurred"`
}

// ScamReport is a single logged scam allegation.
type ScamReport struct {
	ID         string        `json:"id" yaml:"id"`
	ReportedBy string        `json:"reportedBy" yaml:"reportedBy"`
	Victim     Party         `json:"victim" yaml:"victim"`
	Subject    Party         `json:"subject" yaml:"subject"`
	Details    ReportDetails `json:"details" yaml:"details"`
	Status     ReportStatus  `json:"status" yaml:"status"`
	CreatedAt  time.Time     `json:"createdAt" yaml:"createdAt"`
	UpdatedAt  time.Time     `json:"updatedAt" yaml:"updatedAt"`
	ReportDate time.Time     `json:"reportDate" yaml:"reportDate"`
}

// ScamReportPatch carries the fields of a partial update. Nil fields are left untouched.
type ScamReportPatch struct {
	ReportedBy *string        `json:"reportedBy,omitempty"`
	Victim     *Party         `json:"victim,omitempty"`
	Subject    *Party         `json:"subject,omitempty"`
	Details    *ReportDetails `json:"details,omitempty"`
	Status     *ReportStatus  `json:"status,omitempty"`
}
