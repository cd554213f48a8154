package models

import "time"

// StatsRecord holds the community counters shown on the home page.
type StatsRecord struct {
	MemberCount    int       `json:"memberCount" yaml:"memberCount"`
	ActiveProjects int       `json:"activeProjects" yaml:"activeProjects"`
	Contributors   int       `json:"contributors" yaml:"contributors"`
	CodeCommits    string    `json:"codeCommits" yaml:"codeCommits"`
	LastUpdated    time.Time `json:"lastUpdated" yaml:"lastUpdated"`
}

type StatsPatch struct {
	MemberCount    *int    `json:"memberCount,omitempty"`
	ActiveProjects *int    `json:"activeProjects,omitempty"`
	Contributors   *int    `json:"contributors,omitempty"`
	CodeCommits    *string `json:"codeCommits,omitempty"`
}
