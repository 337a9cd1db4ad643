package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/codeeasier/learning-service/internal/user"
)

func registerUserRoutes(r chi.Router, svcs Services, logger *slog.Logger) {
	r.Route("/v1/users/me", func(r chi.Router) {
		r.Get("/", getUserProfile(svcs.Users, logger))
		r.Get("/stats", getUserStats(svcs.Users, logger))
		r.Post("/exp", addExperience(svcs.Users, logger))
		r.Post("/streak", updateStreak(svcs.Users, logger))
	})
}

func getUserProfile(svc user.Service, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := requestUserID(r)
		if userID == "" {
			writeError(w, http.StatusUnauthorized, "missing user ID")
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), serviceTimeout)
		defer cancel()

		profile, err := svc.GetProfile(ctx, userID)
		if err != nil {
			logRequestError(r.Context(), logger, "failed to load profile", err, userID)
			writeError(w, http.StatusInternalServerError, "failed to load profile")
			return
		}
		writeJSON(w, http.StatusOK, profile)
	}
}

func getUserStats(svc user.Service, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := requestUserID(r)
		if userID == "" {
			writeError(w, http.StatusUnauthorized, "missing user ID")
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), serviceTimeout)
		defer cancel()

		stats, err := svc.GetStats(ctx, userID)
		if err != nil {
			logRequestError(r.Context(), logger, "failed to load user stats", err, userID)
			writeError(w, http.StatusInternalServerError, "failed to load stats")
			return
		}
		writeJSON(w, http.StatusOK, stats)
	}
}

func addExperience(svc user.Service, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := requestUserID(r)
		if userID == "" {
			writeError(w, http.StatusUnauthorized, "missing user ID")
			return
		}

		var body struct {
			Amount int `json:"amount"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), serviceTimeout)
		defer cancel()

		result, err := svc.AddExperience(ctx, userID, body.Amount)
		if errors.Is(err, user.ErrNegativeExperience) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		if err != nil {
			logRequestError(r.Context(), logger, "failed to add experience", err, userID)
			writeError(w, http.StatusInternalServerError, "failed to add experience")
			return
		}
		writeJSON(w, http.StatusOK, result)
	}
}

func updateStreak(svc user.Service, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := requestUserID(r)
		if userID == "" {
			writeError(w, http.StatusUnauthorized, "missing user ID")
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), serviceTimeout)
		defer cancel()

		result, err := svc.UpdateStreak(ctx, userID)
		if err != nil {
			logRequestError(r.Context(), logger, "failed to update streak", err, userID)
			writeError(w, http.StatusInternalServerError, "failed to update streak")
			return
		}
		writeJSON(w, http.StatusOK, result)
	}
}
