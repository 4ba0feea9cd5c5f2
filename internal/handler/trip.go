package handler

import (
	"net/http"
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/SonalJain837/amplify-dynamoDB-sub001/internal/domain"
)

// TripRequest is the body of POST /trips and PUT /trips/{id}.
// flight_date is in display form (DD-MON-YYYY). user_email is ignored on update.
type TripRequest struct {
	UserEmail  string   `json:"user_email"`
	FromCity   string   `json:"from_city"`
	ToCity     string   `json:"to_city"`
	Layovers   []string `json:"layovers,omitempty"`
	FlightDate string   `json:"flight_date"`
	FlightTime string   `json:"flight_time,omitempty"`
	Confirmed  bool     `json:"confirmed"`
	Details    string   `json:"details,omitempty"`
	Languages  []string `json:"languages,omitempty"`
}

// Trip is the JSON form of a trip. flight_date is in storage form
// (YYYY-MM-DD) and display_date repeats it as DD-MON-YYYY.
type Trip struct {
	Id          openapi_types.UUID `json:"id"`
	UserEmail   string             `json:"user_email"`
	FromCity    string             `json:"from_city"`
	ToCity      string             `json:"to_city"`
	Layovers    []string           `json:"layovers"`
	FlightDate  openapi_types.Date `json:"flight_date"`
	DisplayDate string             `json:"display_date"`
	FlightTime  *string            `json:"flight_time,omitempty"`
	Confirmed   bool               `json:"confirmed"`
	Details     *string            `json:"details,omitempty"`
	Languages   []string           `json:"languages"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

// Pagination describes the page returned by a list endpoint.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

// TripList is the body of GET /trips.
type TripList struct {
	Data       []Trip     `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// CreateTrip handles POST /trips.
func (s *Server) CreateTrip(w http.ResponseWriter, r *http.Request) {
	var body TripRequest
	if err := decodeJSON(r, &body); err != nil {
		decodeFailure(w, err)
		return
	}

	created, err := s.trips.Create(r.Context(), requestToDraft(body))
	if err != nil {
		s.serviceError(w, r, err, "trip")
		return
	}
	writeJSON(w, http.StatusCreated, tripToResponse(created))
}

// ListTrips handles GET /trips.
// Supports ?page= and ?limit= (defaults: page=1, limit=20, max=100) and
// ?user_email= to show one traveller's trips.
func (s *Server) ListTrips(w http.ResponseWriter, r *http.Request) {
	var (
		page, limit *int
		userEmail   string
	)
	params := []struct {
		name string
		dst  any
	}{{"page", &page}, {"limit", &limit}, {"user_email", &userEmail}}
	for _, p := range params {
		if err := queryParam(r, p.name, p.dst); err != nil {
			badRequest(w, err.Error())
			return
		}
	}

	pp := domain.NewPaginationParams(page, limit)
	result, err := s.trips.ListPaged(r.Context(), domain.TripFilter{UserEmail: userEmail}, pp)
	if err != nil {
		s.serviceError(w, r, err, "trip")
		return
	}

	data := make([]Trip, len(result.Items))
	for i, t := range result.Items {
		data[i] = tripToResponse(t)
	}
	writeJSON(w, http.StatusOK, TripList{
		Data: data,
		Pagination: Pagination{
			Page:  pp.Page,
			Limit: pp.Limit,
			Total: int(result.Total),
		},
	})
}

// GetTrip handles GET /trips/{id}.
func (s *Server) GetTrip(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	trip, err := s.trips.GetByID(r.Context(), id)
	if err != nil {
		s.serviceError(w, r, err, "trip")
		return
	}
	writeJSON(w, http.StatusOK, tripToResponse(trip))
}

// UpdateTrip handles PUT /trips/{id}.
func (s *Server) UpdateTrip(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	var body TripRequest
	if err := decodeJSON(r, &body); err != nil {
		decodeFailure(w, err)
		return
	}

	updated, err := s.trips.Update(r.Context(), id, requestToDraft(body))
	if err != nil {
		s.serviceError(w, r, err, "trip")
		return
	}
	writeJSON(w, http.StatusOK, tripToResponse(updated))
}

// DeleteTrip handles DELETE /trips/{id}.
func (s *Server) DeleteTrip(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	if err := s.trips.Delete(r.Context(), id); err != nil {
		s.serviceError(w, r, err, "trip")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- mapping helpers --------------------------------------------------------

func requestToDraft(b TripRequest) domain.TripDraft {
	return domain.TripDraft{
		UserEmail:  b.UserEmail,
		FromCity:   b.FromCity,
		ToCity:     b.ToCity,
		Layovers:   b.Layovers,
		FlightDate: b.FlightDate,
		FlightTime: b.FlightTime,
		Confirmed:  b.Confirmed,
		Details:    b.Details,
		Languages:  b.Languages,
	}
}

// tripToResponse converts a domain.Trip into its JSON form.
// Empty optional strings are omitted and nil lists become [].
func tripToResponse(t domain.Trip) Trip {
	resp := Trip{
		Id:          t.ID,
		UserEmail:   t.UserEmail,
		FromCity:    t.FromCity,
		ToCity:      t.ToCity,
		Layovers:    nonNil(t.Layovers),
		FlightDate:  openapi_types.Date{Time: t.FlightDate},
		DisplayDate: t.DisplayDate(),
		Confirmed:   t.Confirmed,
		Languages:   nonNil(t.Languages),
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
	if t.FlightTime != "" {
		resp.FlightTime = &t.FlightTime
	}
	if t.Details != "" {
		resp.Details = &t.Details
	}
	return resp
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
