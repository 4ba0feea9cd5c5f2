package repo_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SonalJain837/amplify-dynamoDB-sub001/internal/domain"
	"github.com/SonalJain837/amplify-dynamoDB-sub001/internal/repo"
)

// queueNotification creates a comment with one outbox row and returns both repos.
func queueNotification(t *testing.T) (repo.NotificationRepo, domain.Notification) {
	t.Helper()
	comments, notifications, trip := commentRepos(t)

	n := &domain.Notification{Recipient: trip.UserEmail, Subject: "New comment", Body: "hello"}
	_, err := comments.Create(context.Background(), domain.Comment{
		TripID:      trip.ID,
		AuthorEmail: "friend@example.com",
		Body:        "see you there",
	}, n)
	require.NoError(t, err)
	return notifications, *n
}

func containsID(ns []domain.Notification, id uuid.UUID) bool {
	for _, n := range ns {
		if n.ID == id {
			return true
		}
	}
	return false
}

func TestNotificationRepo_ClaimPending(t *testing.T) {
	r, n := queueNotification(t)

	claimed, err := r.ClaimPending(context.Background(), 1000, time.Minute)

	require.NoError(t, err)
	assert.True(t, containsID(claimed, n.ID))
}

func TestNotificationRepo_ClaimPending_SkipsClaimedRows(t *testing.T) {
	r, n := queueNotification(t)
	ctx := context.Background()

	first, err := r.ClaimPending(ctx, 1000, time.Hour)
	require.NoError(t, err)
	require.True(t, containsID(first, n.ID))

	second, err := r.ClaimPending(ctx, 1000, time.Hour)
	require.NoError(t, err)
	assert.False(t, containsID(second, n.ID), "a live claim hides the row from other dispatchers")
}

func TestNotificationRepo_ClaimPending_LapsedLease(t *testing.T) {
	r, n := queueNotification(t)
	ctx := context.Background()

	_, err := r.ClaimPending(ctx, 1000, -time.Hour)
	require.NoError(t, err)

	again, err := r.ClaimPending(ctx, 1000, time.Hour)
	require.NoError(t, err)
	assert.True(t, containsID(again, n.ID))
}

func TestNotificationRepo_RecordFailure_ReleasesClaim(t *testing.T) {
	r, n := queueNotification(t)
	ctx := context.Background()

	_, err := r.ClaimPending(ctx, 1000, time.Hour)
	require.NoError(t, err)
	_, err = r.RecordFailure(ctx, n.ID, "smtp timeout", 5)
	require.NoError(t, err)

	again, err := r.ClaimPending(ctx, 1000, time.Hour)
	require.NoError(t, err)
	assert.True(t, containsID(again, n.ID))
}

func TestNotificationRepo_MarkSent(t *testing.T) {
	r, n := queueNotification(t)
	ctx := context.Background()

	require.NoError(t, r.MarkSent(ctx, n.ID))

	got, err := r.ListByComment(ctx, n.CommentID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, domain.NotificationSent, got[0].Status)
	assert.Equal(t, 1, got[0].Attempts)
	require.NotNil(t, got[0].SentAt)

	claimed, err := r.ClaimPending(ctx, 1000, time.Minute)
	require.NoError(t, err)
	assert.False(t, containsID(claimed, n.ID))
}

func TestNotificationRepo_MarkSent_NotFound(t *testing.T) {
	r, _ := queueNotification(t)

	err := r.MarkSent(context.Background(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestNotificationRepo_RecordFailure_UntilFailed(t *testing.T) {
	r, n := queueNotification(t)
	ctx := context.Background()

	status, err := r.RecordFailure(ctx, n.ID, "smtp timeout", 2)
	require.NoError(t, err)
	assert.Equal(t, domain.NotificationPending, status)

	status, err = r.RecordFailure(ctx, n.ID, "smtp timeout again", 2)
	require.NoError(t, err)
	assert.Equal(t, domain.NotificationFailed, status)

	got, err := r.ListByComment(ctx, n.CommentID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 2, got[0].Attempts)
	assert.Equal(t, "smtp timeout again", got[0].LastError)
	assert.Nil(t, got[0].SentAt)
}

func TestNotificationRepo_RecordFailure_NotFound(t *testing.T) {
	r, _ := queueNotification(t)

	_, err := r.RecordFailure(context.Background(), uuid.New(), "x", 3)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}
