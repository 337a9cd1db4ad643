package mission

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	missionsCollection      = "missions"
	userProgressCollection  = "userProgress"
	missionClaimsCollection = "missions"
)

type firestoreRepository struct {
	client *firestore.Client
}

// NewFirestoreRepository creates a new Firestore repository
func NewFirestoreRepository(client *firestore.Client) Repository {
	return &firestoreRepository{client: client}
}

func (r *firestoreRepository) completionRef(userID, missionID string) *firestore.DocumentRef {
	return r.client.Collection(userProgressCollection).Doc(userID).
		Collection(missionClaimsCollection).Doc(missionID)
}

func (r *firestoreRepository) GetAll(ctx context.Context) ([]Mission, error) {
	iter := r.client.Collection(missionsCollection).Documents(ctx)
	defer iter.Stop()

	var missions []Mission
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}

		var m Mission
		if err := doc.DataTo(&m); err != nil {
			return nil, fmt.Errorf("unmarshal mission: %w", err)
		}
		m.ID = doc.Ref.ID
		missions = append(missions, m)
	}

	return missions, nil
}

func (r *firestoreRepository) GetByID(ctx context.Context, missionID string) (*Mission, error) {
	doc, err := r.client.Collection(missionsCollection).Doc(missionID).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var m Mission
	if err := doc.DataTo(&m); err != nil {
		return nil, fmt.Errorf("unmarshal mission: %w", err)
	}
	m.ID = doc.Ref.ID
	return &m, nil
}

func (r *firestoreRepository) GetCompletedAt(ctx context.Context, userID, missionID string) (*time.Time, error) {
	doc, err := r.completionRef(userID, missionID).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var record struct {
		CompletedAt time.Time `firestore:"completedAt"`
	}
	if err := doc.DataTo(&record); err != nil {
		return nil, fmt.Errorf("unmarshal mission completion: %w", err)
	}
	return &record.CompletedAt, nil
}

// RecordCompletion creates the completion document; an existing document
// means the mission was already completed and the write is a no-op.
func (r *firestoreRepository) RecordCompletion(ctx context.Context, userID, missionID string, at time.Time) (bool, error) {
	_, err := r.completionRef(userID, missionID).Create(ctx, map[string]any{
		"missionId":   missionID,
		"completedAt": at,
	})
	if status.Code(err) == codes.AlreadyExists {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	return false, nil
}
