package httpapi

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/codeeasier/learning-service/internal/mission"
)

func registerMissionRoutes(r chi.Router, svcs Services, logger *slog.Logger) {
	r.Route("/v1/missions", func(r chi.Router) {
		r.Get("/", listDailyMissions(svcs.Missions, logger))
		r.Post("/{id}/complete", completeMission(svcs.Missions, logger))
	})
}

func listDailyMissions(svc mission.Service, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := requestUserID(r)
		if userID == "" {
			writeError(w, http.StatusUnauthorized, "missing user ID")
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), serviceTimeout)
		defer cancel()

		missions, err := svc.GetDailyMissions(ctx, userID)
		if err != nil {
			logRequestError(r.Context(), logger, "failed to list missions", err, userID)
			writeError(w, http.StatusInternalServerError, "failed to list missions")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"missions": missions})
	}
}

func completeMission(svc mission.Service, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := requestUserID(r)
		if userID == "" {
			writeError(w, http.StatusUnauthorized, "missing user ID")
			return
		}
		missionID := chi.URLParam(r, "id")

		ctx, cancel := context.WithTimeout(r.Context(), serviceTimeout)
		defer cancel()

		result, err := svc.CompleteMission(ctx, userID, missionID)
		if errors.Is(err, mission.ErrNotFound) {
			writeError(w, http.StatusNotFound, "mission not found")
			return
		}
		if err != nil {
			logRequestError(r.Context(), logger, "failed to complete mission", err, userID)
			writeError(w, http.StatusInternalServerError, "failed to complete mission")
			return
		}
		writeJSON(w, http.StatusOK, result)
	}
}
