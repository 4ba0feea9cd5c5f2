package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/SonalJain837/amplify-dynamoDB-sub001/internal/domain"
)

// CommentRepo defines the persistence operations for Comments.
// Comments are always read through their parent trip.
type CommentRepo interface {
	// Create inserts a comment and, when n is non-nil, queues n in the
	// notification outbox in the same transaction. n.CommentID is filled in.
	Create(ctx context.Context, c domain.Comment, n *domain.Notification) (domain.Comment, error)

	// ListByTripID returns all comments on a trip, oldest first.
	ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Comment, error)
}

// pgCommentRepo is the Postgres implementation of CommentRepo.
type pgCommentRepo struct {
	db db
}

// NewCommentRepo constructs a CommentRepo backed by the provided db connection.
func NewCommentRepo(db db) CommentRepo {
	return &pgCommentRepo{db: db}
}

// Create writes the comment and its outbox row atomically.
// A foreign key violation on trip_id is reported as domain.ErrNotFound.
func (r *pgCommentRepo) Create(ctx context.Context, c domain.Comment, n *domain.Notification) (domain.Comment, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return domain.Comment{}, fmt.Errorf("repo.CommentRepo.Create: begin: %w", err)
	}
	// Rollback after Commit is a no-op.
	defer func() { _ = tx.Rollback(ctx) }()

	const insertComment = `
		INSERT INTO comments (trip_id, author_email, body)
		VALUES (@trip_id, @author_email, @body)
		RETURNING id, trip_id, author_email, body, created_at`

	created, err := scanComment(tx.QueryRow(ctx, insertComment, pgx.NamedArgs{
		"trip_id":      c.TripID,
		"author_email": c.AuthorEmail,
		"body":         c.Body,
	}))
	if err != nil {
		if isForeignKeyViolation(err) {
			err = domain.ErrNotFound
		}
		return domain.Comment{}, fmt.Errorf("repo.CommentRepo.Create: %w", err)
	}

	if n != nil {
		n.CommentID = created.ID
		if err := insertNotification(ctx, tx, n); err != nil {
			return domain.Comment{}, fmt.Errorf("repo.CommentRepo.Create: notification: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return domain.Comment{}, fmt.Errorf("repo.CommentRepo.Create: commit: %w", err)
	}
	return created, nil
}

// ListByTripID returns all comments on a trip ordered by created_at.
func (r *pgCommentRepo) ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Comment, error) {
	const q = `
		SELECT id, trip_id, author_email, body, created_at
		FROM comments
		WHERE trip_id = @trip_id
		ORDER BY created_at, id`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"trip_id": tripID})
	if err != nil {
		return nil, fmt.Errorf("repo.CommentRepo.ListByTripID: %w", err)
	}
	defer rows.Close()

	comments := []domain.Comment{}
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.CommentRepo.ListByTripID: scan: %w", err)
		}
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.CommentRepo.ListByTripID: rows: %w", err)
	}
	return comments, nil
}

// scanComment maps a single database row into a domain.Comment.
func scanComment(s scanner) (domain.Comment, error) {
	var (
		c          domain.Comment
		id, tripID pgtype.UUID
	)
	err := s.Scan(&id, &tripID, &c.AuthorEmail, &c.Body, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Comment{}, domain.ErrNotFound
		}
		return domain.Comment{}, err
	}
	c.ID = uuid.UUID(id.Bytes)
	c.TripID = uuid.UUID(tripID.Bytes)
	return c, nil
}
