package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/codeeasier/learning-service/internal/course"
	"github.com/codeeasier/learning-service/internal/user"
)

func registerCourseRoutes(r chi.Router, svcs Services, logger *slog.Logger) {
	r.Route("/v1/courses", func(r chi.Router) {
		r.Get("/", listCourses(svcs.Courses, logger))
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", getCourseDetail(svcs.Courses, logger))
			r.Post("/comments", addComment(svcs.Courses, logger))
			r.Post("/complete", completeCourse(svcs.Users, logger))
		})
	})
}

func listCourses(svc course.Service, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), serviceTimeout)
		defer cancel()

		courses, err := svc.GetCourses(ctx)
		if err != nil {
			logRequestError(r.Context(), logger, "failed to list courses", err, "")
			writeError(w, http.StatusInternalServerError, "failed to list courses")
			return
		}
		if courses == nil {
			courses = []course.Course{}
		}
		writeJSON(w, http.StatusOK, map[string]any{"courses": courses})
	}
}

func getCourseDetail(svc course.Service, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		courseID := chi.URLParam(r, "id")

		ctx, cancel := context.WithTimeout(r.Context(), serviceTimeout)
		defer cancel()

		detail, err := svc.GetCourseDetail(ctx, courseID)
		if errors.Is(err, course.ErrNotFound) {
			writeError(w, http.StatusNotFound, "course not found")
			return
		}
		if err != nil {
			logRequestError(r.Context(), logger, "failed to load course detail", err, "")
			writeError(w, http.StatusInternalServerError, "failed to load course")
			return
		}
		writeJSON(w, http.StatusOK, detail)
	}
}

func addComment(svc course.Service, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := requestUserID(r)
		if userID == "" {
			writeError(w, http.StatusUnauthorized, "missing user ID")
			return
		}
		courseID := chi.URLParam(r, "id")

		var body struct {
			Body string `json:"body"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if strings.TrimSpace(body.Body) == "" {
			writeError(w, http.StatusBadRequest, "comment body is required")
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), serviceTimeout)
		defer cancel()

		comment, err := svc.AddComment(ctx, courseID, userID, body.Body)
		if err != nil {
			logRequestError(r.Context(), logger, "failed to add comment", err, userID)
			writeError(w, http.StatusInternalServerError, "failed to add comment")
			return
		}
		writeJSON(w, http.StatusCreated, comment)
	}
}

func completeCourse(svc user.Service, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := requestUserID(r)
		if userID == "" {
			writeError(w, http.StatusUnauthorized, "missing user ID")
			return
		}
		courseID := chi.URLParam(r, "id")

		var body struct {
			ExpReward int `json:"exp_reward"`
		}
		if r.Body != nil && r.ContentLength != 0 {
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				writeError(w, http.StatusBadRequest, "invalid request body")
				return
			}
		}

		ctx, cancel := context.WithTimeout(r.Context(), serviceTimeout)
		defer cancel()

		result, err := svc.CompleteCourse(ctx, userID, courseID, body.ExpReward)
		if err != nil {
			logRequestError(r.Context(), logger, "failed to complete course", err, userID)
			writeError(w, http.StatusInternalServerError, "failed to complete course")
			return
		}
		writeJSON(w, http.StatusOK, result)
	}
}
