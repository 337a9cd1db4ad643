package user

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const usersCollection = "users"

type firestoreRepository struct {
	client *firestore.Client
}

// NewFirestoreRepository creates a new Firestore repository
func NewFirestoreRepository(client *firestore.Client) Repository {
	return &firestoreRepository{client: client}
}

func (r *firestoreRepository) userRef(userID string) *firestore.DocumentRef {
	return r.client.Collection(usersCollection).Doc(userID)
}

func (r *firestoreRepository) GetProfile(ctx context.Context, userID string) (*Profile, error) {
	doc, err := r.userRef(userID).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return defaultProfile(userID), nil
	}
	if err != nil {
		return nil, err
	}

	var profile Profile
	if err := doc.DataTo(&profile); err != nil {
		return nil, fmt.Errorf("unmarshal profile: %w", err)
	}
	profile.UserID = userID
	return &profile, nil
}

func (r *firestoreRepository) IncrementExperience(ctx context.Context, userID string, amount int) error {
	_, err := r.userRef(userID).Set(ctx, map[string]any{
		"exp": firestore.Increment(int64(amount)),
	}, firestore.MergeAll)
	return err
}

func (r *firestoreRepository) SetLevel(ctx context.Context, userID string, level int) error {
	_, err := r.userRef(userID).Set(ctx, map[string]any{
		"level": level,
	}, firestore.MergeAll)
	return err
}

func (r *firestoreRepository) SetStreak(ctx context.Context, userID string, streak int, lastActive time.Time) error {
	_, err := r.userRef(userID).Set(ctx, map[string]any{
		"streak":         streak,
		"lastActiveDate": lastActive,
	}, firestore.MergeAll)
	return err
}

func (r *firestoreRepository) AppendCompletedCourse(ctx context.Context, userID, courseID string) error {
	_, err := r.userRef(userID).Set(ctx, map[string]any{
		"completedCourses": firestore.ArrayUnion(courseID),
	}, firestore.MergeAll)
	return err
}

// UnlockAchievement performs a set-if-absent on the achievements map inside a
// transaction so concurrent evaluations never double-unlock.
func (r *firestoreRepository) UnlockAchievement(ctx context.Context, userID, achievementID string, at time.Time) (bool, error) {
	if userID == "" || achievementID == "" {
		return false, fmt.Errorf("missing identifiers")
	}

	ref := r.userRef(userID)
	alreadyUnlocked := false

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, getErr := tx.Get(ref)
		if getErr != nil && status.Code(getErr) != codes.NotFound {
			return getErr
		}

		if getErr == nil {
			if unlocked, ok := doc.Data()["achievements"].(map[string]any); ok {
				if _, present := unlocked[achievementID]; present {
					alreadyUnlocked = true
					return nil
				}
			}
		}

		return tx.Set(ref, map[string]any{
			"achievements": map[string]any{
				achievementID: map[string]any{"unlockedAt": at},
			},
		}, firestore.MergeAll)
	})
	if err != nil {
		return false, err
	}

	return alreadyUnlocked, nil
}

// SubscribeProfile streams profile snapshots to fn until the returned
// unsubscribe function is called or the context is cancelled.
func (r *firestoreRepository) SubscribeProfile(ctx context.Context, userID string, fn func(*Profile)) (func(), error) {
	if userID == "" {
		return nil, ErrMissingUserID
	}

	ctx, cancel := context.WithCancel(ctx)
	snapshots := r.userRef(userID).Snapshots(ctx)

	go func() {
		defer snapshots.Stop()
		for {
			snap, err := snapshots.Next()
			if err == iterator.Done || status.Code(err) == codes.Canceled {
				return
			}
			if err != nil {
				return
			}
			if !snap.Exists() {
				fn(defaultProfile(userID))
				continue
			}

			var profile Profile
			if err := snap.DataTo(&profile); err != nil {
				continue
			}
			profile.UserID = userID
			fn(&profile)
		}
	}()

	return cancel, nil
}
