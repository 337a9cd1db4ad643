package user

import (
	"context"
	"time"

	"github.com/codeeasier/learning-service/internal/platform/events"
)

// DefaultCourseReward is the experience granted for a course completion
// when the caller does not specify a reward.
const DefaultCourseReward = 50

type service struct {
	repo Repository
	sink events.Sink
	now  func() time.Time
}

// NewService creates a new user service.
func NewService(repo Repository, sink events.Sink) Service {
	if sink == nil {
		sink = events.NopSink{}
	}
	return &service{repo: repo, sink: sink, now: time.Now}
}

func (s *service) GetProfile(ctx context.Context, userID string) (*Profile, error) {
	if userID == "" {
		return nil, ErrMissingUserID
	}
	return s.repo.GetProfile(ctx, userID)
}

func (s *service) GetStats(ctx context.Context, userID string) (*Stats, error) {
	profile, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &Stats{
		Level:             LevelFromExperience(profile.Experience),
		Experience:        profile.Experience,
		ExpToNextLevel:    ExpToNextLevel(profile.Experience),
		Streak:            profile.Streak,
		CompletedCourses:  len(profile.CompletedCourses),
		TotalAchievements: len(profile.Achievements),
		ProfileComplete:   profile.ProfileComplete,
		FirstName:         profile.FirstName,
		LastName:          profile.LastName,
		Country:           profile.Country,
		Institution:       profile.Institution,
	}, nil
}

func (s *service) AddExperience(ctx context.Context, userID string, amount int) (*LevelUpResult, error) {
	if userID == "" {
		return nil, ErrMissingUserID
	}

	profile, err := s.repo.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile.Experience+amount < 0 {
		return nil, ErrNegativeExperience
	}

	if err := s.repo.IncrementExperience(ctx, userID, amount); err != nil {
		return nil, err
	}

	oldLevel := profile.Level
	if oldLevel < 1 {
		oldLevel = 1
	}
	newLevel := LevelFromExperience(profile.Experience + amount)
	if newLevel <= oldLevel {
		return &LevelUpResult{LeveledUp: false, CurrentLevel: oldLevel}, nil
	}

	if err := s.repo.SetLevel(ctx, userID, newLevel); err != nil {
		return nil, err
	}

	s.sink.Publish(ctx, events.TopicLevelEvents, events.LevelUp{
		UserID:   userID,
		OldLevel: oldLevel,
		NewLevel: newLevel,
		At:       s.now().UTC(),
	})

	return &LevelUpResult{LeveledUp: true, OldLevel: oldLevel, NewLevel: newLevel}, nil
}

func (s *service) ExpToNextLevel(ctx context.Context, userID string) (int, error) {
	profile, err := s.GetProfile(ctx, userID)
	if err != nil {
		return 0, err
	}
	return ExpToNextLevel(profile.Experience), nil
}

func (s *service) UpdateStreak(ctx context.Context, userID string) (*StreakResult, error) {
	if userID == "" {
		return nil, ErrMissingUserID
	}

	profile, err := s.repo.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	state := StreakState{Streak: profile.Streak, LastActiveDate: profile.LastActiveDate}
	next, changed := RecordActivity(state, s.now())
	if !changed {
		return &StreakResult{Streak: next.Streak, Changed: false}, nil
	}

	if err := s.repo.SetStreak(ctx, userID, next.Streak, next.LastActiveDate); err != nil {
		return nil, err
	}

	s.sink.Publish(ctx, events.TopicStreakEvents, events.StreakChanged{
		UserID: userID,
		Streak: next.Streak,
		At:     s.now().UTC(),
	})

	return &StreakResult{Streak: next.Streak, Changed: true}, nil
}

func (s *service) CompleteCourse(ctx context.Context, userID, courseID string, expReward int) (*CourseCompletionResult, error) {
	if userID == "" {
		return nil, ErrMissingUserID
	}
	if courseID == "" {
		return nil, ErrMissingCourseID
	}
	if expReward <= 0 {
		expReward = DefaultCourseReward
	}

	profile, err := s.repo.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile.HasCompletedCourse(courseID) {
		return &CourseCompletionResult{AlreadyCompleted: true}, nil
	}

	if err := s.repo.AppendCompletedCourse(ctx, userID, courseID); err != nil {
		return nil, err
	}

	levelResult, err := s.AddExperience(ctx, userID, expReward)
	if err != nil {
		return nil, err
	}

	return &CourseCompletionResult{
		AlreadyCompleted: false,
		ExpGained:        expReward,
		LevelResult:      levelResult,
	}, nil
}

func defaultProfile(userID string) *Profile {
	return &Profile{UserID: userID, Level: 1}
}
