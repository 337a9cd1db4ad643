package events

import (
	"context"
	"log/slog"
	"time"
)

// Topic names used for domain events emitted by the learning service.
const (
	TopicLevelEvents       = "level.events"
	TopicStreakEvents      = "streak.events"
	TopicAchievementEvents = "achievement.events"
)

// LevelUp is emitted when a user's level increases after an experience grant.
type LevelUp struct {
	UserID   string    `json:"userId"`
	OldLevel int       `json:"oldLevel"`
	NewLevel int       `json:"newLevel"`
	At       time.Time `json:"at"`
}

// StreakChanged is emitted when a user's consecutive-day streak moves.
type StreakChanged struct {
	UserID string    `json:"userId"`
	Streak int       `json:"streak"`
	At     time.Time `json:"at"`
}

// AchievementUnlocked is emitted once per achievement when it transitions to unlocked.
type AchievementUnlocked struct {
	UserID        string    `json:"userId"`
	AchievementID string    `json:"achievementId"`
	At            time.Time `json:"at"`
}

// Sink receives domain events. External telemetry subscribes by providing an implementation.
type Sink interface {
	Publish(ctx context.Context, topic string, event any)
}

// LogSink publishes events to structured logs.
type LogSink struct {
	logger *slog.Logger
}

// NewLogSink returns a Sink backed by the supplied logger.
func NewLogSink(logger *slog.Logger) *LogSink {
	return &LogSink{logger: logger}
}

func (s *LogSink) Publish(_ context.Context, topic string, event any) {
	if s.logger == nil {
		return
	}
	s.logger.Info("domain event", slog.String("topic", topic), slog.Any("event", event))
}

// NopSink discards all events.
type NopSink struct{}

func (NopSink) Publish(context.Context, string, any) {}
