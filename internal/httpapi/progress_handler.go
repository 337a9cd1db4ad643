package httpapi

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/codeeasier/learning-service/internal/course"
	"github.com/codeeasier/learning-service/internal/progress"
)

func registerProgressRoutes(r chi.Router, svcs Services, logger *slog.Logger) {
	r.Route("/v1/progress", func(r chi.Router) {
		r.Get("/", getAllUserProgress(svcs.Progress, logger))
		r.Get("/dashboard", getDashboard(svcs.Courses, svcs.Progress, logger))
		r.Post("/{courseId}/{moduleId}", markModuleCompleted(svcs.Progress, logger))
	})
}

func getAllUserProgress(svc progress.Service, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := requestUserID(r)
		if userID == "" {
			writeError(w, http.StatusUnauthorized, "missing user ID")
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), serviceTimeout)
		defer cancel()

		result, err := svc.GetAllUserProgress(ctx, userID)
		if err != nil {
			logRequestError(r.Context(), logger, "failed to load user progress", err, userID)
			writeError(w, http.StatusInternalServerError, "failed to load progress")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"progress": result})
	}
}

func getDashboard(courses course.Service, svc progress.Service, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := requestUserID(r)
		if userID == "" {
			writeError(w, http.StatusUnauthorized, "missing user ID")
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), serviceTimeout)
		defer cancel()

		courseList, err := courses.GetCourses(ctx)
		if err != nil {
			logRequestError(r.Context(), logger, "failed to list courses for dashboard", err, userID)
			writeError(w, http.StatusInternalServerError, "failed to load dashboard")
			return
		}

		dashboard, err := svc.GetDashboard(ctx, userID, courseList)
		if err != nil {
			logRequestError(r.Context(), logger, "failed to aggregate dashboard", err, userID)
			writeError(w, http.StatusInternalServerError, "failed to load dashboard")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"courses": dashboard})
	}
}

func markModuleCompleted(svc progress.Service, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := requestUserID(r)
		if userID == "" {
			writeError(w, http.StatusUnauthorized, "missing user ID")
			return
		}
		courseID := chi.URLParam(r, "courseId")
		moduleID := chi.URLParam(r, "moduleId")

		ctx, cancel := context.WithTimeout(r.Context(), serviceTimeout)
		defer cancel()

		if err := svc.MarkModuleCompleted(ctx, userID, courseID, moduleID); err != nil {
			logRequestError(r.Context(), logger, "failed to mark module completed", err, userID)
			writeError(w, http.StatusInternalServerError, "failed to record completion")
			return
		}
		writeJSON(w, http.StatusOK, map[string]bool{"success": true})
	}
}
