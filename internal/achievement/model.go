package achievement

import (
	"context"
	"time"

	"github.com/codeeasier/learning-service/internal/user"
)

// Achievement is read-only reference data seeded in the achievements collection.
type Achievement struct {
	ID          string `json:"id" firestore:"-"`
	Title       string `json:"title" firestore:"title"`
	Description string `json:"description" firestore:"description"`
	Category    string `json:"category" firestore:"category"`
}

// Unlocked is one newly unlocked achievement reported by CheckAll.
type Unlocked struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Unlocked    bool   `json:"unlocked"`
}

// Progress is an achievement together with the user's unlock status.
type Progress struct {
	Achievement
	Unlocked   bool       `json:"unlocked"`
	UnlockedAt *time.Time `json:"unlocked_at,omitempty"`
}

// Stats is the profile snapshot the rule table is evaluated against.
type Stats struct {
	LessonCompleted  bool
	CompletedCourses int
	Streak           int
	Level            int
	ProfileComplete  bool
}

// CatalogRepository reads achievement reference data.
type CatalogRepository interface {
	GetAll(ctx context.Context) ([]Achievement, error)
	GetByID(ctx context.Context, achievementID string) (*Achievement, error)
}

// ProfileStore is the slice of the user repository the evaluator needs.
type ProfileStore interface {
	GetProfile(ctx context.Context, userID string) (*user.Profile, error)
	UnlockAchievement(ctx context.Context, userID, achievementID string, at time.Time) (alreadyUnlocked bool, err error)
	SubscribeProfile(ctx context.Context, userID string, fn func(*user.Profile)) (unsubscribe func(), err error)
}

// ProgressStore answers the lesson-completion predicate.
type ProgressStore interface {
	HasCompletedLesson(ctx context.Context, userID string) (bool, error)
}

// Service defines the achievement service interface.
type Service interface {
	GetAll(ctx context.Context) ([]Achievement, error)
	CheckAll(ctx context.Context, userID string) ([]Unlocked, error)
	GetProgress(ctx context.Context, userID string) ([]Progress, error)
	SubscribeToProgress(ctx context.Context, userID string, fn func([]Progress)) (unsubscribe func(), err error)
}
