package progress

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	userProgressCollection = "userProgress"
	coursesCollection      = "courses"
	modulesCollection      = "modules"
)

type firestoreRepository struct {
	client *firestore.Client
}

// NewFirestoreRepository creates a new Firestore repository
func NewFirestoreRepository(client *firestore.Client) Repository {
	return &firestoreRepository{client: client}
}

func (r *firestoreRepository) coursesRef(userID string) *firestore.CollectionRef {
	return r.client.Collection(userProgressCollection).Doc(userID).Collection(coursesCollection)
}

func (r *firestoreRepository) moduleRef(userID, courseID, moduleID string) *firestore.DocumentRef {
	return r.coursesRef(userID).Doc(courseID).Collection(modulesCollection).Doc(moduleID)
}

// UpsertModuleRecord merges the record into the module document so fields
// absent from the update are preserved.
func (r *firestoreRepository) UpsertModuleRecord(ctx context.Context, userID, courseID, moduleID string, record ModuleRecord) error {
	_, err := r.moduleRef(userID, courseID, moduleID).Set(ctx, map[string]any{
		"exerciseCompleted": record.ExerciseCompleted,
		"lessonCompleted":   record.LessonCompleted,
		"completedAt":       record.CompletedAt,
	}, firestore.MergeAll)
	return err
}

func (r *firestoreRepository) GetModuleRecord(ctx context.Context, userID, courseID, moduleID string) (*ModuleRecord, error) {
	doc, err := r.moduleRef(userID, courseID, moduleID).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var record ModuleRecord
	if err := doc.DataTo(&record); err != nil {
		return nil, fmt.Errorf("unmarshal module record: %w", err)
	}
	return &record, nil
}

func (r *firestoreRepository) ListCourseIDs(ctx context.Context, userID string) ([]string, error) {
	iter := r.coursesRef(userID).DocumentRefs(ctx)

	var ids []string
	for {
		ref, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		ids = append(ids, ref.ID)
	}
	return ids, nil
}

func (r *firestoreRepository) GetCourseModules(ctx context.Context, userID, courseID string) (map[string]ModuleRecord, error) {
	iter := r.coursesRef(userID).Doc(courseID).Collection(modulesCollection).Documents(ctx)
	defer iter.Stop()

	records := make(map[string]ModuleRecord)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}

		var record ModuleRecord
		if err := doc.DataTo(&record); err != nil {
			continue
		}
		records[doc.Ref.ID] = record
	}
	return records, nil
}

// HasCompletedLesson reports whether any module record for the user has a
// completed lesson. It stops at the first match.
func (r *firestoreRepository) HasCompletedLesson(ctx context.Context, userID string) (bool, error) {
	courseIDs, err := r.ListCourseIDs(ctx, userID)
	if err != nil {
		return false, err
	}

	for _, courseID := range courseIDs {
		iter := r.coursesRef(userID).Doc(courseID).Collection(modulesCollection).
			Where("lessonCompleted", "==", true).
			Limit(1).
			Documents(ctx)

		_, err := iter.Next()
		iter.Stop()
		if err == iterator.Done {
			continue
		}
		if err != nil {
			return false, err
		}
		return true, nil
	}
	return false, nil
}
