package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/go-chi/chi/v5"

	"github.com/codeeasier/learning-service/internal/achievement"
	"github.com/codeeasier/learning-service/internal/config"
	"github.com/codeeasier/learning-service/internal/course"
	"github.com/codeeasier/learning-service/internal/httpapi"
	"github.com/codeeasier/learning-service/internal/mission"
	"github.com/codeeasier/learning-service/internal/platform/auth"
	"github.com/codeeasier/learning-service/internal/platform/events"
	"github.com/codeeasier/learning-service/internal/platform/logging"
	"github.com/codeeasier/learning-service/internal/platform/server"
	"github.com/codeeasier/learning-service/internal/progress"
	"github.com/codeeasier/learning-service/internal/user"
)

func main() {
	ctx := context.Background()
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Errorf("config error: %w", err))
	}

	logger := logging.NewLogger("learning-service")

	client, err := firestore.NewClientWithDatabase(ctx, cfg.GCPProjectID, cfg.Firestore.Database)
	if err != nil {
		panic(fmt.Errorf("firestore client: %w", err))
	}
	defer client.Close()

	sink := events.NewLogSink(logger)

	courseRepo := course.NewFirestoreRepository(client)
	progressRepo := progress.NewFirestoreRepository(client)
	userRepo := user.NewFirestoreRepository(client)
	achievementRepo := achievement.NewFirestoreRepository(client)
	missionRepo := mission.NewFirestoreRepository(client)

	userService := user.NewService(userRepo, sink)
	services := httpapi.Services{
		Courses:      course.NewService(courseRepo),
		Progress:     progress.NewService(progressRepo),
		Users:        userService,
		Achievements: achievement.NewService(achievementRepo, userRepo, progressRepo, sink, logger),
		Missions:     mission.NewService(missionRepo, userService),
	}

	verifier, err := auth.NewVerifier(auth.Config{
		Mode:     auth.Mode(cfg.Auth.Mode),
		JWKSURL:  cfg.Auth.JWKSURL,
		Audience: cfg.Auth.Audience,
		Issuer:   cfg.Auth.Issuer,
	})
	if err != nil {
		panic(fmt.Errorf("auth verifier error: %w", err))
	}

	router := server.NewRouter("learning-service", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware(verifier))

			httpapi.RegisterRoutes(r, services, logger)
		})
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	if err := server.Run(ctx, srv, logger); err != nil && !errors.Is(err, http.ErrServerClosed) {
		panic(err)
	}
}
