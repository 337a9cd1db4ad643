package user

import (
	"context"
	"time"
)

// Profile represents the persisted user document stored in Firestore.
// Field names follow the users collection schema shared with the web client.
type Profile struct {
	UserID           string                  `json:"user_id" firestore:"-"`
	FirstName        string                  `json:"first_name" firestore:"firstName"`
	LastName         string                  `json:"last_name" firestore:"lastName"`
	Country          string                  `json:"country" firestore:"country"`
	Institution      string                  `json:"institution" firestore:"institution"`
	Experience       int                     `json:"exp" firestore:"exp"`
	Level            int                     `json:"level" firestore:"level"`
	Streak           int                     `json:"streak" firestore:"streak"`
	LastActiveDate   time.Time               `json:"last_active_date" firestore:"lastActiveDate"`
	CompletedCourses []string                `json:"completed_courses" firestore:"completedCourses"`
	Achievements     map[string]UnlockRecord `json:"achievements" firestore:"achievements"`
	ProfileComplete  bool                    `json:"profile_complete" firestore:"profileComplete"`
}

// UnlockRecord marks a permanently unlocked achievement on the user document.
type UnlockRecord struct {
	UnlockedAt time.Time `json:"unlocked_at" firestore:"unlockedAt"`
}

// HasAchievement reports whether the achievement id is present in the unlock map.
func (p *Profile) HasAchievement(id string) bool {
	_, ok := p.Achievements[id]
	return ok
}

// HasCompletedCourse reports whether the course id is in the completed set.
func (p *Profile) HasCompletedCourse(courseID string) bool {
	for _, id := range p.CompletedCourses {
		if id == courseID {
			return true
		}
	}
	return false
}

// LevelUpResult reports the outcome of an experience grant.
type LevelUpResult struct {
	LeveledUp    bool `json:"leveled_up"`
	OldLevel     int  `json:"old_level,omitempty"`
	NewLevel     int  `json:"new_level,omitempty"`
	CurrentLevel int  `json:"current_level,omitempty"`
}

// StreakResult reports the outcome of a streak update.
type StreakResult struct {
	Streak  int  `json:"streak"`
	Changed bool `json:"streak_changed"`
}

// CourseCompletionResult is returned by CompleteCourse.
type CourseCompletionResult struct {
	AlreadyCompleted bool           `json:"already_completed"`
	ExpGained        int            `json:"exp_gained,omitempty"`
	LevelResult      *LevelUpResult `json:"level_result,omitempty"`
}

// Stats is the aggregated snapshot rendered on the profile page.
type Stats struct {
	Level             int    `json:"level"`
	Experience        int    `json:"exp"`
	ExpToNextLevel    int    `json:"exp_to_next_level"`
	Streak            int    `json:"streak"`
	CompletedCourses  int    `json:"completed_courses"`
	TotalAchievements int    `json:"total_achievements"`
	ProfileComplete   bool   `json:"profile_complete"`
	FirstName         string `json:"first_name"`
	LastName          string `json:"last_name"`
	Country           string `json:"country"`
	Institution       string `json:"institution"`
}

// Repository defines the interface for user profile data access.
type Repository interface {
	GetProfile(ctx context.Context, userID string) (*Profile, error)
	IncrementExperience(ctx context.Context, userID string, amount int) error
	SetLevel(ctx context.Context, userID string, level int) error
	SetStreak(ctx context.Context, userID string, streak int, lastActive time.Time) error
	AppendCompletedCourse(ctx context.Context, userID, courseID string) error
	UnlockAchievement(ctx context.Context, userID, achievementID string, at time.Time) (alreadyUnlocked bool, err error)
	SubscribeProfile(ctx context.Context, userID string, fn func(*Profile)) (unsubscribe func(), err error)
}

// Service defines the user profile service interface.
type Service interface {
	GetProfile(ctx context.Context, userID string) (*Profile, error)
	GetStats(ctx context.Context, userID string) (*Stats, error)
	AddExperience(ctx context.Context, userID string, amount int) (*LevelUpResult, error)
	ExpToNextLevel(ctx context.Context, userID string) (int, error)
	UpdateStreak(ctx context.Context, userID string) (*StreakResult, error)
	CompleteCourse(ctx context.Context, userID, courseID string, expReward int) (*CourseCompletionResult, error)
}
