package httpapi

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/codeeasier/learning-service/internal/achievement"
)

func registerAchievementRoutes(r chi.Router, svcs Services, logger *slog.Logger) {
	r.Route("/v1/achievements", func(r chi.Router) {
		r.Get("/", listAchievements(svcs.Achievements, logger))
		r.Post("/check", checkAllAchievements(svcs.Achievements, logger))
		r.Get("/progress", getAchievementProgress(svcs.Achievements, logger))
		r.Get("/progress/stream", streamAchievementProgress(svcs.Achievements, logger))
	})
}

func listAchievements(svc achievement.Service, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), serviceTimeout)
		defer cancel()

		achievements, err := svc.GetAll(ctx)
		if err != nil {
			logRequestError(r.Context(), logger, "failed to list achievements", err, "")
			writeError(w, http.StatusInternalServerError, "failed to list achievements")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"achievements": achievements})
	}
}

func checkAllAchievements(svc achievement.Service, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := requestUserID(r)
		if userID == "" {
			writeError(w, http.StatusUnauthorized, "missing user ID")
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), serviceTimeout)
		defer cancel()

		unlocked, err := svc.CheckAll(ctx, userID)
		if err != nil {
			logRequestError(r.Context(), logger, "failed to check achievements", err, userID)
			writeError(w, http.StatusInternalServerError, "failed to check achievements")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"unlocked": unlocked})
	}
}

func getAchievementProgress(svc achievement.Service, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := requestUserID(r)
		if userID == "" {
			writeError(w, http.StatusUnauthorized, "missing user ID")
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), serviceTimeout)
		defer cancel()

		progressList, err := svc.GetProgress(ctx, userID)
		if err != nil {
			logRequestError(r.Context(), logger, "failed to load achievement progress", err, userID)
			writeError(w, http.StatusInternalServerError, "failed to load achievement progress")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"achievements": progressList})
	}
}

// streamAchievementProgress pushes progress snapshots over server-sent events
// whenever the user's profile document changes.
func streamAchievementProgress(svc achievement.Service, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := requestUserID(r)
		if userID == "" {
			writeError(w, http.StatusUnauthorized, "missing user ID")
			return
		}

		flusher, ok := w.(http.Flusher)
		if !ok {
			writeError(w, http.StatusInternalServerError, "streaming unsupported")
			return
		}

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")

		updates := make(chan []achievement.Progress, 1)
		unsubscribe, err := svc.SubscribeToProgress(r.Context(), userID, func(list []achievement.Progress) {
			select {
			case updates <- list:
			default:
			}
		})
		if err != nil {
			logRequestError(r.Context(), logger, "failed to subscribe to achievement progress", err, userID)
			writeError(w, http.StatusInternalServerError, "failed to subscribe")
			return
		}
		defer unsubscribe()

		for {
			select {
			case <-r.Context().Done():
				return
			case list := <-updates:
				payload, err := json.Marshal(map[string]any{"achievements": list})
				if err != nil {
					continue
				}
				if _, err := w.Write(append(append([]byte("data: "), payload...), '\n', '\n')); err != nil {
					return
				}
				flusher.Flush()
			}
		}
	}
}
