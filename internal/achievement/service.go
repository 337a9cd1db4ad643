package achievement

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/codeeasier/learning-service/internal/platform/events"
	"github.com/codeeasier/learning-service/internal/user"
)

type service struct {
	catalog  CatalogRepository
	profiles ProfileStore
	progress ProgressStore
	sink     events.Sink
	logger   *slog.Logger
	now      func() time.Time
}

// NewService creates a new achievement service.
func NewService(catalog CatalogRepository, profiles ProfileStore, progress ProgressStore, sink events.Sink, logger *slog.Logger) Service {
	if sink == nil {
		sink = events.NopSink{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &service{
		catalog:  catalog,
		profiles: profiles,
		progress: progress,
		sink:     sink,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *service) GetAll(ctx context.Context) ([]Achievement, error) {
	return s.catalog.GetAll(ctx)
}

// CheckAll evaluates the full rule table against the user's current stats and
// unlocks every achievement that newly qualifies. Categories are evaluated
// concurrently and failures are isolated per category, so a storage error in
// one category never prevents the others from unlocking. The returned list
// contains only achievements unlocked by this call.
func (s *service) CheckAll(ctx context.Context, userID string) ([]Unlocked, error) {
	if userID == "" {
		return nil, ErrMissingUserID
	}

	profile, err := s.profiles.GetProfile(ctx, userID)
	if err != nil {
		s.logger.Error("achievement check: load profile", "userId", userID, "error", err)
		return []Unlocked{}, nil
	}

	stats := s.statsFor(ctx, userID, profile)

	var (
		mu      sync.Mutex
		results []Unlocked
	)

	g, ctx := errgroup.WithContext(ctx)
	for _, defs := range definitionsByCategory() {
		g.Go(func() error {
			unlocked := s.checkCategory(ctx, userID, profile, stats, defs)
			if len(unlocked) == 0 {
				return nil
			}
			mu.Lock()
			results = append(results, unlocked...)
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	if results == nil {
		results = []Unlocked{}
	}
	return results, nil
}

// checkCategory unlocks every qualifying definition in one category. Errors
// are logged and end the category's pass without affecting the others.
func (s *service) checkCategory(ctx context.Context, userID string, profile *user.Profile, stats Stats, defs []Definition) []Unlocked {
	var unlocked []Unlocked
	for _, def := range defs {
		if !def.Qualifies(stats) {
			continue
		}
		if profile.HasAchievement(def.ID) {
			continue
		}

		already, err := s.profiles.UnlockAchievement(ctx, userID, def.ID, s.now().UTC())
		if err != nil {
			s.logger.Error("achievement check: unlock", "userId", userID, "achievementId", def.ID, "error", err)
			return unlocked
		}
		if already {
			continue
		}

		s.sink.Publish(ctx, events.TopicAchievementEvents, events.AchievementUnlocked{
			UserID:        userID,
			AchievementID: def.ID,
			At:            s.now().UTC(),
		})

		unlocked = append(unlocked, Unlocked{
			ID:          def.ID,
			Title:       def.Title,
			Description: def.Description,
			Unlocked:    true,
		})
	}
	return unlocked
}

func (s *service) statsFor(ctx context.Context, userID string, profile *user.Profile) Stats {
	level := profile.Level
	if level < 1 {
		level = 1
	}

	lessonCompleted, err := s.progress.HasCompletedLesson(ctx, userID)
	if err != nil {
		s.logger.Error("achievement check: lesson lookup", "userId", userID, "error", err)
		lessonCompleted = false
	}

	return Stats{
		LessonCompleted:  lessonCompleted,
		CompletedCourses: len(profile.CompletedCourses),
		Streak:           profile.Streak,
		Level:            level,
		ProfileComplete:  profile.ProfileComplete,
	}
}

// GetProgress returns every achievement with the user's unlock status merged in.
func (s *service) GetProgress(ctx context.Context, userID string) ([]Progress, error) {
	if userID == "" {
		return nil, ErrMissingUserID
	}

	var (
		catalog []Achievement
		profile *user.Profile
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		list, err := s.loadCatalog(gctx)
		if err != nil {
			return err
		}
		catalog = list
		return nil
	})

	g.Go(func() error {
		p, err := s.profiles.GetProfile(gctx, userID)
		if err != nil {
			return err
		}
		profile = p
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return buildProgress(catalog, profile), nil
}

// SubscribeToProgress pushes a recomputed progress list to fn every time the
// user's profile document changes. The returned function cancels the stream.
func (s *service) SubscribeToProgress(ctx context.Context, userID string, fn func([]Progress)) (func(), error) {
	if userID == "" {
		return nil, ErrMissingUserID
	}

	catalog, err := s.loadCatalog(ctx)
	if err != nil {
		return nil, err
	}

	return s.profiles.SubscribeProfile(ctx, userID, func(profile *user.Profile) {
		fn(buildProgress(catalog, profile))
	})
}

// loadCatalog reads the achievements collection, falling back to the static
// rule table when the collection is empty or unreadable.
func (s *service) loadCatalog(ctx context.Context) ([]Achievement, error) {
	catalog, err := s.catalog.GetAll(ctx)
	if err != nil {
		s.logger.Error("achievement catalog read failed, using built-in definitions", "error", err)
	}
	if len(catalog) > 0 {
		return catalog, nil
	}

	defs := Definitions()
	catalog = make([]Achievement, 0, len(defs))
	for _, def := range defs {
		catalog = append(catalog, Achievement{
			ID:          def.ID,
			Title:       def.Title,
			Description: def.Description,
			Category:    string(def.Category),
		})
	}
	return catalog, nil
}

func buildProgress(catalog []Achievement, profile *user.Profile) []Progress {
	out := make([]Progress, 0, len(catalog))
	for _, a := range catalog {
		p := Progress{Achievement: a}
		if record, ok := profile.Achievements[a.ID]; ok {
			p.Unlocked = true
			at := record.UnlockedAt
			p.UnlockedAt = &at
		}
		out = append(out, p)
	}
	return out
}
