package services

import (
	"github.com/stardevs/community-backend/internal/kvstore"
	"github.com/stardevs/community-backend/internal/models"
)

// Figures shown on the home page before the bot ever reports in.
const (
	defaultMemberCount    = 284
	defaultActiveProjects = 23
	defaultContributors   = 127
	defaultCodeCommits    = "1.2k"
)

// StatsService manages the community stats singleton.
type StatsService struct {
	store kvstore.Store
	key   string
	clock Clock
}

func NewStatsService(store kvstore.Store, keys kvstore.Keys, clock Clock) *StatsService {
	if clock == nil {
		clock = RealClock{}
	}
	return &StatsService{store: store, key: keys.Stats, clock: clock}
}

// Get returns the stored stats, creating the default record on first access.
func (s *StatsService) Get() (models.StatsRecord, error) {
	var stats models.StatsRecord
	found, err := kvstore.ReadJSON(s.store, s.key, &stats)
	if err != nil {
		return models.StatsRecord{}, err
	}
	if found {
		return stats, nil
	}

	stats = models.StatsRecord{
		MemberCount:    defaultMemberCount,
		ActiveProjects: defaultActiveProjects,
		Contributors:   defaultContributors,
		CodeCommits:    defaultCodeCommits,
		LastUpdated:    stamp(s.clock),
	}
	if err := kvstore.WriteJSON(s.store, s.key, stats); err != nil {
		return models.StatsRecord{}, err
	}
	return stats, nil
}

// Update merges the non-nil fields of patch and stamps lastUpdated.
func (s *StatsService) Update(patch models.StatsPatch) (models.StatsRecord, error) {
	if patch.MemberCount != nil && *patch.MemberCount < 0 {
		return models.StatsRecord{}, newValidationError("memberCount", "member count cannot be negative")
	}

	stats, err := s.Get()
	if err != nil {
		return models.StatsRecord{}, err
	}
	if patch.MemberCount != nil {
		stats.MemberCount = *patch.MemberCount
	}
	if patch.ActiveProjects != nil {
		stats.ActiveProjects = *patch.ActiveProjects
	}
	if patch.Contributors != nil {
		stats.Contributors = *patch.Contributors
	}
	if patch.CodeCommits != nil {
		stats.CodeCommits = *patch.CodeCommits
	}
	stats.LastUpdated = stamp(s.clock)

	if err := kvstore.WriteJSON(s.store, s.key, stats); err != nil {
		return models.StatsRecord{}, err
	}
	return stats, nil
}
