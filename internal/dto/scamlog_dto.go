package dto

import "github.com/stardevs/community-backend/internal/models"

type ErrorResponse struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Store     string `json:"store"`
	DB        string `json:"db,omitempty"`
}

// ScamLogListResponse is one page of the website's scam log table.
type ScamLogListResponse struct {
	Reports []models.ScamReport `json:"reports"`
	Total   int                 `json:"total"`
	Limit   int                 `json:"limit"`
	Offset  int                 `json:"offset"`
}

// UpdateStatusRequest is the review modal's verdict.
type UpdateStatusRequest struct {
	Status models.ReportStatus `json:"status"`
}
