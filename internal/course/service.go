package course

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

type service struct {
	repo Repository
}

// NewService creates a new course service
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) GetCourses(ctx context.Context) ([]Course, error) {
	return s.repo.GetAll(ctx)
}

func (s *service) GetCourseDetail(ctx context.Context, courseID string) (*Detail, error) {
	if courseID == "" {
		return nil, ErrMissingCourseID
	}

	var (
		c        *Course
		comments []Comment
	)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		found, err := s.repo.GetByID(ctx, courseID)
		if err != nil {
			return err
		}
		c = found
		return nil
	})

	g.Go(func() error {
		list, err := s.repo.GetComments(ctx, courseID)
		if err != nil {
			return err
		}
		comments = list
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &Detail{Course: *c, Comments: comments}, nil
}

func (s *service) AddComment(ctx context.Context, courseID, authorID, body string) (*Comment, error) {
	if courseID == "" {
		return nil, ErrMissingCourseID
	}
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, ErrEmptyComment
	}

	comment := Comment{
		ID:        uuid.NewString(),
		AuthorID:  authorID,
		Body:      body,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.AddComment(ctx, courseID, comment); err != nil {
		return nil, err
	}
	return &comment, nil
}
