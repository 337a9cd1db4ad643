package httpapi

import (
	"log/slog"

	"github.com/go-chi/chi/v5"

	"github.com/codeeasier/learning-service/internal/achievement"
	"github.com/codeeasier/learning-service/internal/course"
	"github.com/codeeasier/learning-service/internal/mission"
	"github.com/codeeasier/learning-service/internal/progress"
	"github.com/codeeasier/learning-service/internal/user"
)

// Services bundles the domain services the HTTP layer exposes.
type Services struct {
	Courses      course.Service
	Progress     progress.Service
	Users        user.Service
	Achievements achievement.Service
	Missions     mission.Service
}

// RegisterRoutes wires all learning-service routes onto the provided router.
func RegisterRoutes(r chi.Router, svcs Services, logger *slog.Logger) {
	registerCourseRoutes(r, svcs, logger)
	registerProgressRoutes(r, svcs, logger)
	registerUserRoutes(r, svcs, logger)
	registerAchievementRoutes(r, svcs, logger)
	registerMissionRoutes(r, svcs, logger)
}
