package progress

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/codeeasier/learning-service/internal/course"
)

type service struct {
	repo Repository
	now  func() time.Time
}

// NewService creates a new progress service
func NewService(repo Repository) Service {
	return &service{repo: repo, now: time.Now}
}

// MarkModuleCompleted records both lesson and exercise completion for the module.
func (s *service) MarkModuleCompleted(ctx context.Context, userID, courseID, moduleID string) error {
	if userID == "" {
		return ErrMissingUserID
	}
	if courseID == "" || moduleID == "" {
		return ErrMissingModulePath
	}

	return s.repo.UpsertModuleRecord(ctx, userID, courseID, moduleID, ModuleRecord{
		ExerciseCompleted: true,
		LessonCompleted:   true,
		CompletedAt:       s.now().UTC(),
	})
}

func (s *service) IsModuleCompleted(ctx context.Context, userID, courseID, moduleID string) (bool, error) {
	record, err := s.repo.GetModuleRecord(ctx, userID, courseID, moduleID)
	if err != nil {
		return false, err
	}
	return record != nil && record.ExerciseCompleted, nil
}

func (s *service) GetCompletedModules(ctx context.Context, userID, courseID string) (map[string]ModuleRecord, error) {
	if userID == "" {
		return nil, ErrMissingUserID
	}
	return s.repo.GetCourseModules(ctx, userID, courseID)
}

// GetAllUserProgress fetches every course's module records, issuing the
// per-course reads concurrently and joining the results.
func (s *service) GetAllUserProgress(ctx context.Context, userID string) (map[string]map[string]ModuleRecord, error) {
	if userID == "" {
		return nil, ErrMissingUserID
	}

	courseIDs, err := s.repo.ListCourseIDs(ctx, userID)
	if err != nil {
		return nil, err
	}

	var mu sync.Mutex
	result := make(map[string]map[string]ModuleRecord, len(courseIDs))

	g, ctx := errgroup.WithContext(ctx)
	for _, courseID := range courseIDs {
		g.Go(func() error {
			records, err := s.repo.GetCourseModules(ctx, userID, courseID)
			if err != nil {
				return err
			}
			mu.Lock()
			result[courseID] = records
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return result, nil
}

func (s *service) GetDashboard(ctx context.Context, userID string, courses []course.Course) ([]CourseProgress, error) {
	byCourse, err := s.GetAllUserProgress(ctx, userID)
	if err != nil {
		return nil, err
	}
	return Dashboard(courses, byCourse), nil
}
