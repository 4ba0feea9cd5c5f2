package service

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/SonalJain837/amplify-dynamoDB-sub001/internal/domain"
	"github.com/SonalJain837/amplify-dynamoDB-sub001/internal/repo"
)

// CommentService implements business logic for comments on trips.
// A comment left by someone other than the trip owner queues an email to the owner.
type CommentService struct {
	trips    repo.TripRepo
	comments repo.CommentRepo
}

// NewCommentService constructs a CommentService backed by the provided repos.
func NewCommentService(trips repo.TripRepo, comments repo.CommentRepo) *CommentService {
	return &CommentService{trips: trips, comments: comments}
}

// Create validates and stores a comment on tripID.
// Returns domain.ErrNotFound if the trip does not exist and
// domain.ErrValidation if the author or body is invalid.
func (s *CommentService) Create(ctx context.Context, tripID uuid.UUID, c domain.Comment) (domain.Comment, error) {
	trip, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return domain.Comment{}, fmt.Errorf("service.CommentService.Create: %w", err)
	}

	c.TripID = tripID
	c.AuthorEmail = strings.TrimSpace(c.AuthorEmail)
	c.Body = strings.TrimSpace(c.Body)
	if err := validateComment(c); err != nil {
		return domain.Comment{}, err
	}

	var n *domain.Notification
	if !strings.EqualFold(c.AuthorEmail, trip.UserEmail) {
		n = commentNotification(trip, c)
	}

	result, err := s.comments.Create(ctx, c, n)
	if err != nil {
		return domain.Comment{}, fmt.Errorf("service.CommentService.Create: %w", err)
	}
	return result, nil
}

// ListByTripID returns the comments on a trip, oldest first.
// Returns domain.ErrNotFound if the trip does not exist.
func (s *CommentService) ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Comment, error) {
	if _, err := s.trips.GetByID(ctx, tripID); err != nil {
		return nil, fmt.Errorf("service.CommentService.ListByTripID: %w", err)
	}
	comments, err := s.comments.ListByTripID(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.CommentService.ListByTripID: %w", err)
	}
	if comments == nil {
		return []domain.Comment{}, nil
	}
	return comments, nil
}

func validateComment(c domain.Comment) error {
	if c.AuthorEmail == "" {
		return invalid("author_email is required")
	}
	if !validEmail(c.AuthorEmail) {
		return invalid("author_email must be an email address")
	}
	if c.Body == "" {
		return invalid("body is required")
	}
	if utf8.RuneCountInString(c.Body) > domain.MaxCommentLen {
		return invalid(fmt.Sprintf("body must be at most %d characters", domain.MaxCommentLen))
	}
	return nil
}

// commentNotification builds the email telling the trip owner about c.
func commentNotification(trip domain.Trip, c domain.Comment) *domain.Notification {
	route := trip.FromCity + " to " + trip.ToCity
	var body strings.Builder
	fmt.Fprintf(&body, "%s commented on your trip %s on %s:\n\n", c.AuthorEmail, route, trip.DisplayDate())
	fmt.Fprintf(&body, "%s\n", c.Body)
	return &domain.Notification{
		Recipient: trip.UserEmail,
		Subject:   fmt.Sprintf("New comment on your trip %s (%s)", route, trip.DisplayDate()),
		Body:      body.String(),
		Status:    domain.NotificationPending,
	}
}
