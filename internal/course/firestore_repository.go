package course

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	coursesCollection  = "courses"
	commentsCollection = "comments"
)

type firestoreRepository struct {
	client *firestore.Client
}

// NewFirestoreRepository creates a new Firestore repository
func NewFirestoreRepository(client *firestore.Client) Repository {
	return &firestoreRepository{client: client}
}

func (r *firestoreRepository) GetAll(ctx context.Context) ([]Course, error) {
	iter := r.client.Collection(coursesCollection).Documents(ctx)
	defer iter.Stop()

	var courses []Course
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}

		var c Course
		if err := doc.DataTo(&c); err != nil {
			return nil, fmt.Errorf("unmarshal course: %w", err)
		}
		c.ID = doc.Ref.ID
		courses = append(courses, c)
	}

	return courses, nil
}

func (r *firestoreRepository) GetByID(ctx context.Context, courseID string) (*Course, error) {
	doc, err := r.client.Collection(coursesCollection).Doc(courseID).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var c Course
	if err := doc.DataTo(&c); err != nil {
		return nil, fmt.Errorf("unmarshal course: %w", err)
	}
	c.ID = doc.Ref.ID
	return &c, nil
}

func (r *firestoreRepository) GetComments(ctx context.Context, courseID string) ([]Comment, error) {
	iter := r.client.Collection(coursesCollection).Doc(courseID).
		Collection(commentsCollection).
		OrderBy("createdAt", firestore.Asc).
		Documents(ctx)
	defer iter.Stop()

	var comments []Comment
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}

		var comment Comment
		if err := doc.DataTo(&comment); err != nil {
			continue
		}
		comment.ID = doc.Ref.ID
		comments = append(comments, comment)
	}

	return comments, nil
}

func (r *firestoreRepository) AddComment(ctx context.Context, courseID string, comment Comment) error {
	_, err := r.client.Collection(coursesCollection).Doc(courseID).
		Collection(commentsCollection).Doc(comment.ID).
		Create(ctx, map[string]any{
			"authorId":  comment.AuthorID,
			"body":      comment.Body,
			"createdAt": comment.CreatedAt,
		})
	return err
}
