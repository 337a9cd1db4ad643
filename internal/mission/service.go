package mission

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"
)

type service struct {
	repo    Repository
	granter ExpGranter
	now     func() time.Time
}

// NewService creates a new mission service.
func NewService(repo Repository, granter ExpGranter) Service {
	return &service{repo: repo, granter: granter, now: time.Now}
}

// GetDailyMissions returns every mission with the user's completion state,
// fetching the per-mission completion records concurrently.
func (s *service) GetDailyMissions(ctx context.Context, userID string) ([]Status, error) {
	if userID == "" {
		return nil, ErrMissingUserID
	}

	missions, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	statuses := make([]Status, len(missions))
	g, ctx := errgroup.WithContext(ctx)
	for i, m := range missions {
		g.Go(func() error {
			completedAt, err := s.repo.GetCompletedAt(ctx, userID, m.ID)
			if err != nil {
				return err
			}
			statuses[i] = Status{
				Mission:     m,
				Completed:   completedAt != nil,
				CompletedAt: completedAt,
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return statuses, nil
}

// CompleteMission idempotently records the completion and grants the
// mission's experience reward on the first completion only.
func (s *service) CompleteMission(ctx context.Context, userID, missionID string) (*CompletionResult, error) {
	if userID == "" {
		return nil, ErrMissingUserID
	}
	if missionID == "" {
		return nil, ErrMissingMissionID
	}

	m, err := s.repo.GetByID(ctx, missionID)
	if err != nil {
		return nil, err
	}

	already, err := s.repo.RecordCompletion(ctx, userID, missionID, s.now().UTC())
	if err != nil {
		return nil, err
	}
	if already {
		return &CompletionResult{MissionID: missionID, AlreadyCompleted: true}, nil
	}

	result := &CompletionResult{MissionID: missionID, ExpGained: m.XPReward}
	if m.XPReward > 0 {
		levelResult, err := s.granter.AddExperience(ctx, userID, m.XPReward)
		if err != nil {
			return nil, err
		}
		result.LevelResult = levelResult
	}
	return result, nil
}
