package progress

import (
	"math"

	"github.com/codeeasier/learning-service/internal/course"
)

// CoursePercent rolls module completion records up into a 0-100 percentage.
// A module counts as complete when its record has exerciseCompleted set.
// A course with no modules is 0 percent complete.
func CoursePercent(modules []course.Module, records map[string]ModuleRecord) int {
	if len(modules) == 0 {
		return 0
	}

	completed := 0
	for _, m := range modules {
		if rec, ok := records[m.ID]; ok && rec.ExerciseCompleted {
			completed++
		}
	}

	return int(math.Round(float64(completed) / float64(len(modules)) * 100))
}

// Dashboard maps each course to its computed progress percent.
func Dashboard(courses []course.Course, byCourse map[string]map[string]ModuleRecord) []CourseProgress {
	out := make([]CourseProgress, 0, len(courses))
	for _, c := range courses {
		out = append(out, CourseProgress{
			CourseID: c.ID,
			Title:    c.Title,
			Percent:  CoursePercent(c.Modules, byCourse[c.ID]),
		})
	}
	return out
}
