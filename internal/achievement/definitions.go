package achievement

// Category identifies how an achievement's predicate is computed.
type Category string

const (
	CategoryFirstLesson Category = "first_lesson"
	CategoryCourseCount Category = "course_count"
	CategoryStreak      Category = "streak"
	CategoryLevel       Category = "level"
	CategoryProfile     Category = "profile_complete"
)

// Definition is a static rule-table entry. The embedded titles mirror the
// seeded achievements collection so a missing catalog document never blocks
// an unlock.
type Definition struct {
	ID          string
	Title       string
	Description string
	Category    Category
	Threshold   int
}

// Qualifies evaluates the definition's predicate against the stats snapshot.
func (d Definition) Qualifies(stats Stats) bool {
	switch d.Category {
	case CategoryFirstLesson:
		return stats.LessonCompleted
	case CategoryCourseCount:
		return stats.CompletedCourses >= d.Threshold
	case CategoryStreak:
		return stats.Streak >= d.Threshold
	case CategoryLevel:
		return stats.Level >= d.Threshold
	case CategoryProfile:
		return stats.ProfileComplete
	default:
		return false
	}
}

// Definitions returns the full rule table. Every threshold in a category is
// checked on every evaluation, so a streak jumping straight to 30 unlocks
// the 3, 7 and 30 day milestones in a single pass.
func Definitions() []Definition {
	return []Definition{
		{ID: "first-lesson", Title: "First Lesson", Description: "Complete your first lesson!", Category: CategoryFirstLesson},
		{ID: "first-course", Title: "Course Beginner", Description: "Complete your first course!", Category: CategoryCourseCount, Threshold: 1},
		{ID: "course-master", Title: "Course Master", Description: "Complete 5 courses!", Category: CategoryCourseCount, Threshold: 5},
		{ID: "course-legend", Title: "Course Legend", Description: "Complete 10 courses!", Category: CategoryCourseCount, Threshold: 10},
		{ID: "streak-3", Title: "On Fire!", Description: "Maintain a 3-day learning streak!", Category: CategoryStreak, Threshold: 3},
		{ID: "streak-7", Title: "Week Warrior", Description: "Maintain a 7-day learning streak!", Category: CategoryStreak, Threshold: 7},
		{ID: "streak-30", Title: "Dedication Master", Description: "Maintain a 30-day learning streak!", Category: CategoryStreak, Threshold: 30},
		{ID: "level-5", Title: "Rising Star", Description: "Reach level 5!", Category: CategoryLevel, Threshold: 5},
		{ID: "level-10", Title: "Expert Learner", Description: "Reach level 10!", Category: CategoryLevel, Threshold: 10},
		{ID: "profile-complete", Title: "Known Legend", Description: "Complete Profile", Category: CategoryProfile},
	}
}

// definitionsByCategory groups the rule table for per-category evaluation.
func definitionsByCategory() map[Category][]Definition {
	grouped := make(map[Category][]Definition)
	for _, def := range Definitions() {
		grouped[def.Category] = append(grouped[def.Category], def)
	}
	return grouped
}
