package mission

import (
	"context"
	"time"

	"github.com/codeeasier/learning-service/internal/user"
)

// Requirements describes what a mission asks the user to do.
type Requirements struct {
	Action string `json:"action" firestore:"action"`
	Amount int    `json:"amount" firestore:"amount"`
}

// Mission is a daily mission document from the missions collection.
type Mission struct {
	ID           string       `json:"id" firestore:"-"`
	Title        string       `json:"title" firestore:"title"`
	Description  string       `json:"description" firestore:"description"`
	XPReward     int          `json:"xp_reward" firestore:"xpReward"`
	Requirements Requirements `json:"requirements" firestore:"requirements"`
}

// Status is a mission together with the user's completion state.
type Status struct {
	Mission
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// CompletionResult is returned by CompleteMission.
type CompletionResult struct {
	MissionID        string              `json:"mission_id"`
	AlreadyCompleted bool                `json:"already_completed"`
	ExpGained        int                 `json:"exp_gained,omitempty"`
	LevelResult      *user.LevelUpResult `json:"level_result,omitempty"`
}

// Repository defines the interface for mission data access.
type Repository interface {
	GetAll(ctx context.Context) ([]Mission, error)
	GetByID(ctx context.Context, missionID string) (*Mission, error)
	GetCompletedAt(ctx context.Context, userID, missionID string) (*time.Time, error)
	RecordCompletion(ctx context.Context, userID, missionID string, at time.Time) (alreadyCompleted bool, err error)
}

// ExpGranter awards experience for completed missions.
type ExpGranter interface {
	AddExperience(ctx context.Context, userID string, amount int) (*user.LevelUpResult, error)
}

// Service defines the mission service interface.
type Service interface {
	GetDailyMissions(ctx context.Context, userID string) ([]Status, error)
	CompleteMission(ctx context.Context, userID, missionID string) (*CompletionResult, error)
}
