package achievement

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/codeeasier/learning-service/internal/user"
)

type fakeProfileStore struct {
	mu      sync.Mutex
	profile *user.Profile

	getProfileFn func(context.Context, string) (*user.Profile, error)
	unlockFn     func(context.Context, string, string, time.Time) (bool, error)
}

func newFakeProfileStore(profile *user.Profile) *fakeProfileStore {
	if profile.Achievements == nil {
		profile.Achievements = map[string]user.UnlockRecord{}
	}
	return &fakeProfileStore{profile: profile}
}

func (f *fakeProfileStore) GetProfile(ctx context.Context, userID string) (*user.Profile, error) {
	if f.getProfileFn != nil {
		return f.getProfileFn(ctx, userID)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	clone := *f.profile
	clone.Achievements = make(map[string]user.UnlockRecord, len(f.profile.Achievements))
	for id, rec := range f.profile.Achievements {
		clone.Achievements[id] = rec
	}
	return &clone, nil
}

func (f *fakeProfileStore) UnlockAchievement(ctx context.Context, userID, achievementID string, at time.Time) (bool, error) {
	if f.unlockFn != nil {
		return f.unlockFn(ctx, userID, achievementID, at)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.profile.Achievements[achievementID]; ok {
		return true, nil
	}
	f.profile.Achievements[achievementID] = user.UnlockRecord{UnlockedAt: at}
	return false, nil
}

func (f *fakeProfileStore) SubscribeProfile(ctx context.Context, userID string, fn func(*user.Profile)) (func(), error) {
	profile, _ := f.GetProfile(ctx, userID)
	fn(profile)
	return func() {}, nil
}

type fakeProgressStore struct {
	hasCompletedLessonFn func(context.Context, string) (bool, error)
}

func (f *fakeProgressStore) HasCompletedLesson(ctx context.Context, userID string) (bool, error) {
	if f.hasCompletedLessonFn != nil {
		return f.hasCompletedLessonFn(ctx, userID)
	}
	return false, nil
}

type fakeCatalog struct {
	getAllFn func(context.Context) ([]Achievement, error)
}

func (f *fakeCatalog) GetAll(ctx context.Context) ([]Achievement, error) {
	if f.getAllFn != nil {
		return f.getAllFn(ctx)
	}
	return nil, nil
}

func (f *fakeCatalog) GetByID(ctx context.Context, achievementID string) (*Achievement, error) {
	return nil, ErrNotFound
}

func ids(unlocked []Unlocked) []string {
	out := make([]string, 0, len(unlocked))
	for _, u := range unlocked {
		out = append(out, u.ID)
	}
	sort.Strings(out)
	return out
}

func TestCheckAll_FiveCoursesUnlocksBothThresholds(t *testing.T) {
	store := newFakeProfileStore(&user.Profile{
		UserID:           "user-1",
		Level:            1,
		CompletedCourses: []string{"c1", "c2", "c3", "c4", "c5"},
	})

	svc := NewService(&fakeCatalog{}, store, &fakeProgressStore{}, nil, nil)
	unlocked, err := svc.CheckAll(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("CheckAll returned error: %v", err)
	}

	got := ids(unlocked)
	want := []string{"course-master", "first-course"}
	if len(got) != len(want) {
		t.Fatalf("unlocked %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("unlocked %v, want %v", got, want)
		}
	}
}

func TestCheckAll_StreakJumpUnlocksAllMilestones(t *testing.T) {
	store := newFakeProfileStore(&user.Profile{UserID: "user-1", Level: 1, Streak: 30})

	svc := NewService(&fakeCatalog{}, store, &fakeProgressStore{}, nil, nil)
	unlocked, err := svc.CheckAll(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("CheckAll returned error: %v", err)
	}

	got := ids(unlocked)
	want := []string{"streak-3", "streak-30", "streak-7"}
	if len(got) != len(want) {
		t.Fatalf("unlocked %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("unlocked %v, want %v", got, want)
		}
	}
}

func TestCheckAll_SecondCallReturnsNothingNew(t *testing.T) {
	store := newFakeProfileStore(&user.Profile{
		UserID:           "user-1",
		Level:            6,
		Streak:           7,
		CompletedCourses: []string{"c1"},
		ProfileComplete:  true,
	})

	svc := NewService(&fakeCatalog{}, store, &fakeProgressStore{}, nil, nil)

	first, err := svc.CheckAll(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("first CheckAll returned error: %v", err)
	}
	if len(first) == 0 {
		t.Fatalf("expected first pass to unlock achievements")
	}

	second, err := svc.CheckAll(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("second CheckAll returned error: %v", err)
	}
	if len(second) != 0 {
		t.Fatalf("second pass unlocked %v, want none", ids(second))
	}
}

func TestCheckAll_NeverReportsAlreadyUnlocked(t *testing.T) {
	store := newFakeProfileStore(&user.Profile{
		UserID:           "user-1",
		Level:            5,
		CompletedCourses: []string{"c1"},
	})
	store.profile.Achievements["first-course"] = user.UnlockRecord{UnlockedAt: time.Now()}

	svc := NewService(&fakeCatalog{}, store, &fakeProgressStore{}, nil, nil)
	unlocked, err := svc.CheckAll(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("CheckAll returned error: %v", err)
	}

	for _, u := range unlocked {
		if u.ID == "first-course" {
			t.Fatalf("already unlocked achievement re-reported: %v", ids(unlocked))
		}
	}
}

func TestCheckAll_LessonPredicate(t *testing.T) {
	store := newFakeProfileStore(&user.Profile{UserID: "user-1", Level: 1})
	progress := &fakeProgressStore{
		hasCompletedLessonFn: func(ctx context.Context, userID string) (bool, error) {
			return true, nil
		},
	}

	svc := NewService(&fakeCatalog{}, store, progress, nil, nil)
	unlocked, err := svc.CheckAll(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("CheckAll returned error: %v", err)
	}

	got := ids(unlocked)
	if len(got) != 1 || got[0] != "first-lesson" {
		t.Fatalf("unlocked %v, want [first-lesson]", got)
	}
}

func TestCheckAll_ProfileLoadFailureReturnsEmpty(t *testing.T) {
	store := newFakeProfileStore(&user.Profile{UserID: "user-1"})
	store.getProfileFn = func(ctx context.Context, userID string) (*user.Profile, error) {
		return nil, errors.New("storage unavailable")
	}

	svc := NewService(&fakeCatalog{}, store, &fakeProgressStore{}, nil, nil)
	unlocked, err := svc.CheckAll(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("CheckAll must not propagate storage errors, got %v", err)
	}
	if len(unlocked) != 0 {
		t.Fatalf("expected empty result, got %v", ids(unlocked))
	}
}

func TestCheckAll_CategoryFailuresAreIsolated(t *testing.T) {
	store := newFakeProfileStore(&user.Profile{
		UserID:           "user-1",
		Level:            5,
		Streak:           3,
		CompletedCourses: []string{"c1"},
	})
	store.unlockFn = func(ctx context.Context, userID, achievementID string, at time.Time) (bool, error) {
		if achievementID == "streak-3" {
			return false, errors.New("write failed")
		}
		store.mu.Lock()
		defer store.mu.Unlock()
		if _, ok := store.profile.Achievements[achievementID]; ok {
			return true, nil
		}
		store.profile.Achievements[achievementID] = user.UnlockRecord{UnlockedAt: at}
		return false, nil
	}

	svc := NewService(&fakeCatalog{}, store, &fakeProgressStore{}, nil, nil)
	unlocked, err := svc.CheckAll(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("CheckAll returned error: %v", err)
	}

	got := ids(unlocked)
	// The streak category fails, the course and level categories still unlock.
	want := map[string]bool{"first-course": true, "level-5": true}
	if len(got) != 2 || !want[got[0]] || !want[got[1]] {
		t.Fatalf("unlocked %v, want first-course and level-5", got)
	}
}

func TestGetProgress_MergesUnlockState(t *testing.T) {
	unlockedAt := time.Date(2024, time.March, 10, 12, 0, 0, 0, time.UTC)
	store := newFakeProfileStore(&user.Profile{UserID: "user-1", Level: 1})
	store.profile.Achievements["first-lesson"] = user.UnlockRecord{UnlockedAt: unlockedAt}

	catalog := &fakeCatalog{
		getAllFn: func(ctx context.Context) ([]Achievement, error) {
			return []Achievement{
				{ID: "first-lesson", Title: "First Lesson"},
				{ID: "streak-3", Title: "On Fire!"},
			}, nil
		},
	}

	svc := NewService(catalog, store, &fakeProgressStore{}, nil, nil)
	progressList, err := svc.GetProgress(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("GetProgress returned error: %v", err)
	}

	if len(progressList) != 2 {
		t.Fatalf("progress has %d entries, want 2", len(progressList))
	}
	for _, p := range progressList {
		switch p.ID {
		case "first-lesson":
			if !p.Unlocked || p.UnlockedAt == nil || !p.UnlockedAt.Equal(unlockedAt) {
				t.Fatalf("first-lesson progress wrong: %+v", p)
			}
		case "streak-3":
			if p.Unlocked || p.UnlockedAt != nil {
				t.Fatalf("streak-3 must be locked: %+v", p)
			}
		}
	}
}

func TestGetProgress_FallsBackToBuiltInDefinitions(t *testing.T) {
	store := newFakeProfileStore(&user.Profile{UserID: "user-1", Level: 1})
	catalog := &fakeCatalog{
		getAllFn: func(ctx context.Context) ([]Achievement, error) {
			return nil, nil
		},
	}

	svc := NewService(catalog, store, &fakeProgressStore{}, nil, nil)
	progressList, err := svc.GetProgress(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("GetProgress returned error: %v", err)
	}

	if len(progressList) != len(Definitions()) {
		t.Fatalf("progress has %d entries, want %d", len(progressList), len(Definitions()))
	}
}

func TestSubscribeToProgress_PushesSnapshot(t *testing.T) {
	store := newFakeProfileStore(&user.Profile{UserID: "user-1", Level: 1})

	var got []Progress
	svc := NewService(&fakeCatalog{}, store, &fakeProgressStore{}, nil, nil)
	unsubscribe, err := svc.SubscribeToProgress(context.Background(), "user-1", func(list []Progress) {
		got = list
	})
	if err != nil {
		t.Fatalf("SubscribeToProgress returned error: %v", err)
	}
	defer unsubscribe()

	if len(got) != len(Definitions()) {
		t.Fatalf("callback received %d entries, want %d", len(got), len(Definitions()))
	}
}
