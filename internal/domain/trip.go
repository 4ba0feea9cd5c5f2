// Package domain contains the core data types for the trip planner.
// It is imported by every other internal package (repo, service, handler)
// and depends only on the date helpers.
package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/SonalJain837/amplify-dynamoDB-sub001/internal/dateformat"
)

// MaxLayovers is the most connecting cities a single trip may list.
const MaxLayovers = 3

// MaxDetailsLen is the maximum length of Trip.Details, in characters.
const MaxDetailsLen = 250

// Trip is one flight a user has recorded.
// City fields hold airport codes from the city catalog.
type Trip struct {
	ID         uuid.UUID
	UserEmail  string
	FromCity   string
	ToCity     string
	Layovers   []string
	FlightDate time.Time // midnight UTC of the flight day
	FlightTime string    // "HH:mm", empty when unknown
	Confirmed  bool
	Details    string
	Languages  []string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Date returns the flight day as a calendar date.
func (t Trip) Date() dateformat.Date {
	return dateformat.FromTime(t.FlightDate)
}

// DisplayDate returns the flight day as DD-MON-YYYY.
func (t Trip) DisplayDate() string {
	return dateformat.Format(t.Date())
}

// TripDraft is a trip as submitted by a form, before validation.
// FlightDate is still in display form (DD-MON-YYYY).
type TripDraft struct {
	UserEmail  string
	FromCity   string
	ToCity     string
	Layovers   []string
	FlightDate string
	FlightTime string
	Confirmed  bool
	Details    string
	Languages  []string
}

// TripFilter narrows trip listings. Zero values mean "no filter".
type TripFilter struct {
	UserEmail string
}
