package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/SonalJain837/amplify-dynamoDB-sub001/internal/domain"
)

// NotificationRepo is the email outbox. Rows are inserted by CommentRepo.Create
// and drained by the notify dispatcher.
type NotificationRepo interface {
	// ClaimPending reserves up to limit pending notifications for lease and
	// returns them oldest first. Rows claimed by another dispatcher are
	// skipped until their lease lapses.
	ClaimPending(ctx context.Context, limit int, lease time.Duration) ([]domain.Notification, error)

	// MarkSent records a successful delivery.
	// Returns domain.ErrNotFound if no notification with that ID exists.
	MarkSent(ctx context.Context, id uuid.UUID) error

	// RecordFailure increments the attempt counter and stores reason. Once
	// attempts reach maxAttempts the row is marked failed and no longer pending.
	// The resulting status is returned.
	RecordFailure(ctx context.Context, id uuid.UUID, reason string, maxAttempts int) (domain.NotificationStatus, error)

	// ListByComment returns the notifications a comment produced.
	ListByComment(ctx context.Context, commentID uuid.UUID) ([]domain.Notification, error)
}

// pgNotificationRepo is the Postgres implementation of NotificationRepo.
type pgNotificationRepo struct {
	db db
}

// NewNotificationRepo constructs a NotificationRepo backed by the provided db connection.
func NewNotificationRepo(db db) NotificationRepo {
	return &pgNotificationRepo{db: db}
}

const notificationColumns = `id, comment_id, recipient, subject, body, status,
		attempts, last_error, created_at, sent_at`

// ClaimPending stamps claimed_until on the oldest unclaimed pending rows.
// SKIP LOCKED keeps concurrent dispatchers from waiting on, or double
// claiming, the same rows.
func (r *pgNotificationRepo) ClaimPending(ctx context.Context, limit int, lease time.Duration) ([]domain.Notification, error) {
	q := `
		WITH claimed AS (
			UPDATE notifications
			SET claimed_until = now() + @lease_seconds::double precision * interval '1 second'
			WHERE id IN (
				SELECT id
				FROM notifications
				WHERE status = 'pending'
				  AND (claimed_until IS NULL OR claimed_until < now())
				ORDER BY created_at, id
				LIMIT @limit
				FOR UPDATE SKIP LOCKED
			)
			RETURNING ` + notificationColumns + `
		)
		SELECT ` + notificationColumns + `
		FROM claimed
		ORDER BY created_at, id`

	out, err := r.query(ctx, q, pgx.NamedArgs{
		"limit":         limit,
		"lease_seconds": lease.Seconds(),
	})
	if err != nil {
		return nil, fmt.Errorf("repo.NotificationRepo.ClaimPending: %w", err)
	}
	return out, nil
}

// MarkSent sets status to sent and stamps sent_at.
func (r *pgNotificationRepo) MarkSent(ctx context.Context, id uuid.UUID) error {
	const q = `
		UPDATE notifications
		SET status = 'sent', attempts = attempts + 1, last_error = '', sent_at = now(),
		    claimed_until = NULL
		WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.NotificationRepo.MarkSent: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.NotificationRepo.MarkSent: %w", domain.ErrNotFound)
	}
	return nil
}

// RecordFailure bumps attempts and flips the row to failed at the limit.
// The claim is released so a pending row is retried on the next run.
// In the SET clause attempts still refers to the pre-update value.
func (r *pgNotificationRepo) RecordFailure(ctx context.Context, id uuid.UUID, reason string, maxAttempts int) (domain.NotificationStatus, error) {
	const q = `
		UPDATE notifications
		SET attempts      = attempts + 1,
		    last_error    = @reason,
		    claimed_until = NULL,
		    status        = CASE WHEN attempts + 1 >= @max_attempts THEN 'failed' ELSE 'pending' END
		WHERE id = @id
		RETURNING status`

	var status string
	err := r.db.QueryRow(ctx, q, pgx.NamedArgs{
		"id":           id,
		"reason":       reason,
		"max_attempts": maxAttempts,
	}).Scan(&status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = domain.ErrNotFound
		}
		return "", fmt.Errorf("repo.NotificationRepo.RecordFailure: %w", err)
	}
	return domain.NotificationStatus(status), nil
}

// ListByComment returns a comment's notifications ordered by creation.
func (r *pgNotificationRepo) ListByComment(ctx context.Context, commentID uuid.UUID) ([]domain.Notification, error) {
	q := `
		SELECT ` + notificationColumns + `
		FROM notifications
		WHERE comment_id = @comment_id
		ORDER BY created_at, id`

	out, err := r.query(ctx, q, pgx.NamedArgs{"comment_id": commentID})
	if err != nil {
		return nil, fmt.Errorf("repo.NotificationRepo.ListByComment: %w", err)
	}
	return out, nil
}

func (r *pgNotificationRepo) query(ctx context.Context, q string, args pgx.NamedArgs) ([]domain.Notification, error) {
	rows, err := r.db.Query(ctx, q, args)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Notification{}
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		out = append(out, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return out, nil
}

// insertNotification writes n inside an open transaction and fills in the
// DB-generated fields.
func insertNotification(ctx context.Context, tx pgx.Tx, n *domain.Notification) error {
	q := `
		INSERT INTO notifications (comment_id, recipient, subject, body)
		VALUES (@comment_id, @recipient, @subject, @body)
		RETURNING ` + notificationColumns

	created, err := scanNotification(tx.QueryRow(ctx, q, pgx.NamedArgs{
		"comment_id": n.CommentID,
		"recipient":  n.Recipient,
		"subject":    n.Subject,
		"body":       n.Body,
	}))
	if err != nil {
		return err
	}
	*n = created
	return nil
}

// scanNotification maps a single database row into a domain.Notification.
func scanNotification(s scanner) (domain.Notification, error) {
	var (
		n             domain.Notification
		id, commentID pgtype.UUID
		status        string
		sentAt        pgtype.Timestamptz
	)
	err := s.Scan(&id, &commentID, &n.Recipient, &n.Subject, &n.Body, &status,
		&n.Attempts, &n.LastError, &n.CreatedAt, &sentAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Notification{}, domain.ErrNotFound
		}
		return domain.Notification{}, err
	}
	n.ID = uuid.UUID(id.Bytes)
	n.CommentID = uuid.UUID(commentID.Bytes)
	n.Status = domain.NotificationStatus(status)
	if sentAt.Valid {
		t := sentAt.Time
		n.SentAt = &t
	}
	return n, nil
}

// isForeignKeyViolation reports whether err is Postgres error 23503.
func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23503"
}
