package domain

import (
	"time"

	"github.com/google/uuid"
)

// MaxCommentLen is the maximum length of Comment.Body, in characters.
const MaxCommentLen = 1000

// Comment is a note left on a trip, by its owner or by another user.
type Comment struct {
	ID          uuid.UUID
	TripID      uuid.UUID
	AuthorEmail string
	Body        string
	CreatedAt   time.Time
}
