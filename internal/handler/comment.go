package handler

import (
	"net/http"
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/SonalJain837/amplify-dynamoDB-sub001/internal/domain"
)

// CommentRequest is the body of POST /trips/{id}/comments.
type CommentRequest struct {
	AuthorEmail string `json:"author_email"`
	Body        string `json:"body"`
}

// Comment is the JSON form of a comment.
type Comment struct {
	Id          openapi_types.UUID `json:"id"`
	TripId      openapi_types.UUID `json:"trip_id"`
	AuthorEmail string             `json:"author_email"`
	Body        string             `json:"body"`
	CreatedAt   time.Time          `json:"created_at"`
}

// CommentList is the body of GET /trips/{id}/comments.
type CommentList struct {
	Data []Comment `json:"data"`
}

// CreateComment handles POST /trips/{id}/comments.
// A comment by anyone but the trip owner queues an email to the owner.
func (s *Server) CreateComment(w http.ResponseWriter, r *http.Request) {
	tripID, err := pathID(r)
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	var body CommentRequest
	if err := decodeJSON(r, &body); err != nil {
		decodeFailure(w, err)
		return
	}

	created, err := s.comments.Create(r.Context(), tripID, domain.Comment{
		AuthorEmail: body.AuthorEmail,
		Body:        body.Body,
	})
	if err != nil {
		s.serviceError(w, r, err, "trip")
		return
	}
	writeJSON(w, http.StatusCreated, commentToResponse(created))
}

// ListComments handles GET /trips/{id}/comments.
func (s *Server) ListComments(w http.ResponseWriter, r *http.Request) {
	tripID, err := pathID(r)
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	comments, err := s.comments.ListByTripID(r.Context(), tripID)
	if err != nil {
		s.serviceError(w, r, err, "trip")
		return
	}

	data := make([]Comment, len(comments))
	for i, c := range comments {
		data[i] = commentToResponse(c)
	}
	writeJSON(w, http.StatusOK, CommentList{Data: data})
}

func commentToResponse(c domain.Comment) Comment {
	return Comment{
		Id:          c.ID,
		TripId:      c.TripID,
		AuthorEmail: c.AuthorEmail,
		Body:        c.Body,
		CreatedAt:   c.CreatedAt,
	}
}
