package achievement

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const achievementsCollection = "achievements"

type firestoreRepository struct {
	client *firestore.Client
}

// NewFirestoreRepository creates a new Firestore repository
func NewFirestoreRepository(client *firestore.Client) CatalogRepository {
	return &firestoreRepository{client: client}
}

func (r *firestoreRepository) GetAll(ctx context.Context) ([]Achievement, error) {
	iter := r.client.Collection(achievementsCollection).Documents(ctx)
	defer iter.Stop()

	var achievements []Achievement
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}

		var a Achievement
		if err := doc.DataTo(&a); err != nil {
			return nil, fmt.Errorf("unmarshal achievement: %w", err)
		}
		a.ID = doc.Ref.ID
		achievements = append(achievements, a)
	}

	return achievements, nil
}

func (r *firestoreRepository) GetByID(ctx context.Context, achievementID string) (*Achievement, error) {
	doc, err := r.client.Collection(achievementsCollection).Doc(achievementID).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var a Achievement
	if err := doc.DataTo(&a); err != nil {
		return nil, fmt.Errorf("unmarshal achievement: %w", err)
	}
	a.ID = doc.Ref.ID
	return &a, nil
}
