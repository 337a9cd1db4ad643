package progress

import (
	"context"
	"time"

	"github.com/codeeasier/learning-service/internal/course"
)

// ModuleRecord is a per-module completion record stored at
// userProgress/{userId}/courses/{courseId}/modules/{moduleId}.
// Records are merged on write, never replaced, and never deleted.
type ModuleRecord struct {
	ExerciseCompleted bool      `json:"exercise_completed" firestore:"exerciseCompleted"`
	LessonCompleted   bool      `json:"lesson_completed" firestore:"lessonCompleted"`
	CompletedAt       time.Time `json:"completed_at" firestore:"completedAt"`
}

// CourseProgress is the display-ready progress line for one course.
type CourseProgress struct {
	CourseID string `json:"course_id"`
	Title    string `json:"title"`
	Percent  int    `json:"percent"`
}

// Repository defines the interface for progress data access.
type Repository interface {
	UpsertModuleRecord(ctx context.Context, userID, courseID, moduleID string, record ModuleRecord) error
	GetModuleRecord(ctx context.Context, userID, courseID, moduleID string) (*ModuleRecord, error)
	ListCourseIDs(ctx context.Context, userID string) ([]string, error)
	GetCourseModules(ctx context.Context, userID, courseID string) (map[string]ModuleRecord, error)
	HasCompletedLesson(ctx context.Context, userID string) (bool, error)
}

// Service defines the progress service interface.
type Service interface {
	MarkModuleCompleted(ctx context.Context, userID, courseID, moduleID string) error
	IsModuleCompleted(ctx context.Context, userID, courseID, moduleID string) (bool, error)
	GetCompletedModules(ctx context.Context, userID, courseID string) (map[string]ModuleRecord, error)
	GetAllUserProgress(ctx context.Context, userID string) (map[string]map[string]ModuleRecord, error)
	GetDashboard(ctx context.Context, userID string, courses []course.Course) ([]CourseProgress, error)
}
