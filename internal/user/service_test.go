package user

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/codeeasier/learning-service/internal/platform/events"
)

type fakeRepo struct {
	getProfileFn            func(context.Context, string) (*Profile, error)
	incrementExperienceFn   func(context.Context, string, int) error
	setLevelFn              func(context.Context, string, int) error
	setStreakFn             func(context.Context, string, int, time.Time) error
	appendCompletedCourseFn func(context.Context, string, string) error
	unlockAchievementFn     func(context.Context, string, string, time.Time) (bool, error)
	subscribeProfileFn      func(context.Context, string, func(*Profile)) (func(), error)
}

func (f *fakeRepo) GetProfile(ctx context.Context, userID string) (*Profile, error) {
	if f.getProfileFn != nil {
		return f.getProfileFn(ctx, userID)
	}
	return defaultProfile(userID), nil
}

func (f *fakeRepo) IncrementExperience(ctx context.Context, userID string, amount int) error {
	if f.incrementExperienceFn != nil {
		return f.incrementExperienceFn(ctx, userID, amount)
	}
	return nil
}

func (f *fakeRepo) SetLevel(ctx context.Context, userID string, level int) error {
	if f.setLevelFn != nil {
		return f.setLevelFn(ctx, userID, level)
	}
	return nil
}

func (f *fakeRepo) SetStreak(ctx context.Context, userID string, streak int, lastActive time.Time) error {
	if f.setStreakFn != nil {
		return f.setStreakFn(ctx, userID, streak, lastActive)
	}
	return nil
}

func (f *fakeRepo) AppendCompletedCourse(ctx context.Context, userID, courseID string) error {
	if f.appendCompletedCourseFn != nil {
		return f.appendCompletedCourseFn(ctx, userID, courseID)
	}
	return nil
}

func (f *fakeRepo) UnlockAchievement(ctx context.Context, userID, achievementID string, at time.Time) (bool, error) {
	if f.unlockAchievementFn != nil {
		return f.unlockAchievementFn(ctx, userID, achievementID, at)
	}
	return false, nil
}

func (f *fakeRepo) SubscribeProfile(ctx context.Context, userID string, fn func(*Profile)) (func(), error) {
	if f.subscribeProfileFn != nil {
		return f.subscribeProfileFn(ctx, userID, fn)
	}
	return func() {}, nil
}

func TestAddExperience_ReportsLevelUp(t *testing.T) {
	var setLevel int
	repo := &fakeRepo{
		getProfileFn: func(ctx context.Context, userID string) (*Profile, error) {
			return &Profile{UserID: userID, Experience: 0, Level: 1}, nil
		},
		setLevelFn: func(ctx context.Context, userID string, level int) error {
			setLevel = level
			return nil
		},
	}

	svc := NewService(repo, nil)
	result, err := svc.AddExperience(context.Background(), "user-1", 500)
	if err != nil {
		t.Fatalf("AddExperience returned error: %v", err)
	}

	if !result.LeveledUp || result.OldLevel != 1 || result.NewLevel != 3 {
		t.Fatalf("unexpected level result: %+v", result)
	}
	if setLevel != 3 {
		t.Fatalf("persisted level = %d, want 3", setLevel)
	}
}

func TestAddExperience_NoLevelUpDoesNotPersistLevel(t *testing.T) {
	repo := &fakeRepo{
		getProfileFn: func(ctx context.Context, userID string) (*Profile, error) {
			return &Profile{UserID: userID, Experience: 50, Level: 1}, nil
		},
		setLevelFn: func(ctx context.Context, userID string, level int) error {
			t.Fatalf("SetLevel must not be called without a level-up")
			return nil
		},
	}

	svc := NewService(repo, nil)
	result, err := svc.AddExperience(context.Background(), "user-1", 10)
	if err != nil {
		t.Fatalf("AddExperience returned error: %v", err)
	}
	if result.LeveledUp {
		t.Fatalf("expected no level-up, got %+v", result)
	}
	if result.CurrentLevel != 1 {
		t.Fatalf("current level = %d, want 1", result.CurrentLevel)
	}
}

func TestAddExperience_IncrementsAreAssociative(t *testing.T) {
	exp := 0
	repo := &fakeRepo{
		getProfileFn: func(ctx context.Context, userID string) (*Profile, error) {
			return &Profile{UserID: userID, Experience: exp, Level: LevelFromExperience(exp)}, nil
		},
		incrementExperienceFn: func(ctx context.Context, userID string, amount int) error {
			exp += amount
			return nil
		},
	}

	svc := NewService(repo, nil)
	for _, amount := range []int{120, 80, 300, 400} {
		if _, err := svc.AddExperience(context.Background(), "user-1", amount); err != nil {
			t.Fatalf("AddExperience(%d) returned error: %v", amount, err)
		}
	}

	if exp != 900 {
		t.Fatalf("cumulative exp = %d, want 900", exp)
	}
	if got, want := LevelFromExperience(exp), 4; got != want {
		t.Fatalf("final level = %d, want %d (same as one 900-exp grant)", got, want)
	}
}

func TestAddExperience_RejectsNegativeTotal(t *testing.T) {
	repo := &fakeRepo{
		getProfileFn: func(ctx context.Context, userID string) (*Profile, error) {
			return &Profile{UserID: userID, Experience: 30, Level: 1}, nil
		},
		incrementExperienceFn: func(ctx context.Context, userID string, amount int) error {
			t.Fatalf("increment must not run when the total would go negative")
			return nil
		},
	}

	svc := NewService(repo, nil)
	if _, err := svc.AddExperience(context.Background(), "user-1", -100); !errors.Is(err, ErrNegativeExperience) {
		t.Fatalf("expected ErrNegativeExperience, got %v", err)
	}
}

func TestUpdateStreak_PersistsChange(t *testing.T) {
	yesterday := DayOf(time.Now().UTC().AddDate(0, 0, -1))
	var setStreak int
	repo := &fakeRepo{
		getProfileFn: func(ctx context.Context, userID string) (*Profile, error) {
			return &Profile{UserID: userID, Streak: 2, LastActiveDate: yesterday, Level: 1}, nil
		},
		setStreakFn: func(ctx context.Context, userID string, streak int, lastActive time.Time) error {
			setStreak = streak
			return nil
		},
	}

	svc := NewService(repo, nil)
	result, err := svc.UpdateStreak(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("UpdateStreak returned error: %v", err)
	}
	if !result.Changed || result.Streak != 3 {
		t.Fatalf("unexpected streak result: %+v", result)
	}
	if setStreak != 3 {
		t.Fatalf("persisted streak = %d, want 3", setStreak)
	}
}

func TestUpdateStreak_SameDayIsNoOp(t *testing.T) {
	today := DayOf(time.Now().UTC())
	repo := &fakeRepo{
		getProfileFn: func(ctx context.Context, userID string) (*Profile, error) {
			return &Profile{UserID: userID, Streak: 4, LastActiveDate: today, Level: 1}, nil
		},
		setStreakFn: func(ctx context.Context, userID string, streak int, lastActive time.Time) error {
			t.Fatalf("SetStreak must not be called for same-day activity")
			return nil
		},
	}

	svc := NewService(repo, nil)
	result, err := svc.UpdateStreak(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("UpdateStreak returned error: %v", err)
	}
	if result.Changed || result.Streak != 4 {
		t.Fatalf("unexpected streak result: %+v", result)
	}
}

func TestCompleteCourse_AlreadyCompleted(t *testing.T) {
	repo := &fakeRepo{
		getProfileFn: func(ctx context.Context, userID string) (*Profile, error) {
			return &Profile{UserID: userID, Level: 1, CompletedCourses: []string{"go-basics"}}, nil
		},
		appendCompletedCourseFn: func(ctx context.Context, userID, courseID string) error {
			t.Fatalf("completed course must not be appended twice")
			return nil
		},
	}

	svc := NewService(repo, nil)
	result, err := svc.CompleteCourse(context.Background(), "user-1", "go-basics", 0)
	if err != nil {
		t.Fatalf("CompleteCourse returned error: %v", err)
	}
	if !result.AlreadyCompleted {
		t.Fatalf("expected already-completed result, got %+v", result)
	}
}

func TestCompleteCourse_GrantsDefaultReward(t *testing.T) {
	var appended string
	var granted int
	repo := &fakeRepo{
		getProfileFn: func(ctx context.Context, userID string) (*Profile, error) {
			return &Profile{UserID: userID, Level: 1}, nil
		},
		appendCompletedCourseFn: func(ctx context.Context, userID, courseID string) error {
			appended = courseID
			return nil
		},
		incrementExperienceFn: func(ctx context.Context, userID string, amount int) error {
			granted = amount
			return nil
		},
	}

	svc := NewService(repo, nil)
	result, err := svc.CompleteCourse(context.Background(), "user-1", "go-basics", 0)
	if err != nil {
		t.Fatalf("CompleteCourse returned error: %v", err)
	}
	if result.AlreadyCompleted {
		t.Fatalf("expected first completion, got %+v", result)
	}
	if appended != "go-basics" {
		t.Fatalf("appended course = %q, want go-basics", appended)
	}
	if granted != DefaultCourseReward || result.ExpGained != DefaultCourseReward {
		t.Fatalf("granted exp = %d (result %d), want %d", granted, result.ExpGained, DefaultCourseReward)
	}
}

func TestAddExperience_PublishesLevelUpEvent(t *testing.T) {
	repo := &fakeRepo{
		getProfileFn: func(ctx context.Context, userID string) (*Profile, error) {
			return &Profile{UserID: userID, Experience: 0, Level: 1}, nil
		},
	}

	var published []events.LevelUp
	sink := sinkFunc(func(ctx context.Context, topic string, event any) {
		if topic != events.TopicLevelEvents {
			t.Fatalf("unexpected topic %q", topic)
		}
		published = append(published, event.(events.LevelUp))
	})

	svc := NewService(repo, sink)
	if _, err := svc.AddExperience(context.Background(), "user-1", 500); err != nil {
		t.Fatalf("AddExperience returned error: %v", err)
	}

	if len(published) != 1 || published[0].NewLevel != 3 {
		t.Fatalf("unexpected events: %+v", published)
	}
}

type sinkFunc func(context.Context, string, any)

func (f sinkFunc) Publish(ctx context.Context, topic string, event any) { f(ctx, topic, event) }
