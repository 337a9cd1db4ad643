package course

import (
	"context"
	"time"
)

// Module is the smallest unit of course content with its own completion record.
type Module struct {
	ID    string `json:"id" firestore:"id"`
	Title string `json:"title" firestore:"title"`
}

// Course represents a course document from the courses collection.
type Course struct {
	ID          string   `json:"id" firestore:"-"`
	Title       string   `json:"title" firestore:"title"`
	Description string   `json:"description" firestore:"description"`
	Language    string   `json:"language" firestore:"language"`
	ExpReward   int      `json:"exp_reward" firestore:"expReward"`
	Modules     []Module `json:"modules" firestore:"modules"`
}

// Comment is a user comment stored in a course's comments subcollection.
type Comment struct {
	ID        string    `json:"id" firestore:"-"`
	AuthorID  string    `json:"author_id" firestore:"authorId"`
	Body      string    `json:"body" firestore:"body"`
	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
}

// Detail is a course together with its comments.
type Detail struct {
	Course
	Comments []Comment `json:"comments"`
}

// Repository defines the interface for course data access.
type Repository interface {
	GetAll(ctx context.Context) ([]Course, error)
	GetByID(ctx context.Context, courseID string) (*Course, error)
	GetComments(ctx context.Context, courseID string) ([]Comment, error)
	AddComment(ctx context.Context, courseID string, comment Comment) error
}

// Service defines the course service interface.
type Service interface {
	GetCourses(ctx context.Context) ([]Course, error)
	GetCourseDetail(ctx context.Context, courseID string) (*Detail, error)
	AddComment(ctx context.Context, courseID, authorID, body string) (*Comment, error)
}
