// Package service contains the business logic for the trip planner.
// Services validate inputs, enforce business rules, and orchestrate repo calls.
// No SQL lives here; services depend on repo interfaces, not implementations.
package service

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/SonalJain837/amplify-dynamoDB-sub001/internal/dateformat"
	"github.com/SonalJain837/amplify-dynamoDB-sub001/internal/domain"
	"github.com/SonalJain837/amplify-dynamoDB-sub001/internal/repo"
	"github.com/SonalJain837/amplify-dynamoDB-sub001/internal/search"
)

// Lookup resolves an option ID against a fixed list (cities, languages).
// *catalog.Catalog satisfies it.
type Lookup interface {
	Lookup(id string) (search.Option, bool)
}

// TripService implements business logic for Trip operations.
type TripService struct {
	repo      repo.TripRepo
	cities    Lookup
	languages Lookup
	dates     *dateformat.Formatter
}

// NewTripService constructs a TripService. dates supplies "today" for the
// no-past-flights rule on create.
func NewTripService(r repo.TripRepo, cities, languages Lookup, dates *dateformat.Formatter) *TripService {
	return &TripService{repo: r, cities: cities, languages: languages, dates: dates}
}

// Create validates a draft and persists it as a new trip.
// The flight date must be today or later.
// Returns domain.ErrValidation if the draft violates a business rule.
func (s *TripService) Create(ctx context.Context, draft domain.TripDraft) (domain.Trip, error) {
	trip, err := s.build(draft, true)
	if err != nil {
		return domain.Trip{}, err
	}
	result, err := s.repo.Create(ctx, trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}
	return result, nil
}

// GetByID returns a single trip by ID.
func (s *TripService) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	result, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.GetByID: %w", err)
	}
	return result, nil
}

// ListPaged returns one page of trips matching f.
// Items is never nil so callers can safely range over it.
func (s *TripService) ListPaged(ctx context.Context, f domain.TripFilter, p domain.PaginationParams) (domain.Page[domain.Trip], error) {
	f.UserEmail = strings.TrimSpace(f.UserEmail)
	page, err := s.repo.ListPaged(ctx, f, p)
	if err != nil {
		return domain.Page[domain.Trip]{}, fmt.Errorf("service.TripService.ListPaged: %w", err)
	}
	if page.Items == nil {
		page.Items = []domain.Trip{}
	}
	return page, nil
}

// Update validates a draft and overwrites the trip with the given ID.
// Unlike Create, a past flight date is accepted so old trips stay editable;
// it must still be a real date. The owner (UserEmail) never changes.
func (s *TripService) Update(ctx context.Context, id uuid.UUID, draft domain.TripDraft) (domain.Trip, error) {
	trip, err := s.build(draft, false)
	if err != nil {
		return domain.Trip{}, err
	}
	trip.ID = id
	result, err := s.repo.Update(ctx, trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", err)
	}
	return result, nil
}

// Delete removes a trip by ID.
func (s *TripService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.TripService.Delete: %w", err)
	}
	return nil
}

// build turns a draft into a Trip, enforcing every field rule.
// creating switches on the owner email and no-past-date checks.
func (s *TripService) build(d domain.TripDraft, creating bool) (domain.Trip, error) {
	var trip domain.Trip

	if creating {
		email := strings.TrimSpace(d.UserEmail)
		if email == "" {
			return trip, invalid("user_email is required")
		}
		if !validEmail(email) {
			return trip, invalid("user_email must be an email address")
		}
		trip.UserEmail = email
	}

	from, err := s.city("from_city", d.FromCity)
	if err != nil {
		return trip, err
	}
	to, err := s.city("to_city", d.ToCity)
	if err != nil {
		return trip, err
	}
	if from == to {
		return trip, invalid("from_city and to_city must differ")
	}
	trip.FromCity, trip.ToCity = from, to

	if trip.Layovers, err = s.layovers(d.Layovers, from, to); err != nil {
		return trip, err
	}
	if trip.FlightDate, err = s.flightDate(d.FlightDate, creating); err != nil {
		return trip, err
	}

	trip.FlightTime = strings.TrimSpace(d.FlightTime)
	if trip.FlightTime != "" && !validClock(trip.FlightTime) {
		return trip, invalid("flight_time must be HH:mm (24-hour)")
	}

	trip.Details = strings.TrimSpace(d.Details)
	if utf8.RuneCountInString(trip.Details) > domain.MaxDetailsLen {
		return trip, invalid(fmt.Sprintf("details must be at most %d characters", domain.MaxDetailsLen))
	}

	if trip.Languages, err = s.languageList(d.Languages); err != nil {
		return trip, err
	}

	trip.Confirmed = d.Confirmed
	return trip, nil
}

// city resolves a required airport code to its canonical form.
func (s *TripService) city(field, code string) (string, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return "", invalid(field + " is required")
	}
	opt, ok := s.cities.Lookup(code)
	if !ok {
		return "", invalid(fmt.Sprintf("%s: unknown city code %q", field, code))
	}
	return opt.ID, nil
}

func (s *TripService) layovers(codes []string, from, to string) ([]string, error) {
	if len(codes) > domain.MaxLayovers {
		return nil, invalid(fmt.Sprintf("at most %d layovers are allowed", domain.MaxLayovers))
	}
	out := make([]string, 0, len(codes))
	seen := map[string]bool{from: true, to: true}
	for _, c := range codes {
		code, err := s.city("layovers", c)
		if err != nil {
			return nil, err
		}
		if seen[code] {
			return nil, invalid(fmt.Sprintf("layovers: %s is repeated or is the origin/destination", code))
		}
		seen[code] = true
		out = append(out, code)
	}
	return out, nil
}

// flightDate validates a display-form date and returns midnight UTC of that day.
// The user-facing message comes straight from the date formatter.
func (s *TripService) flightDate(raw string, creating bool) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, invalid("flight_date is required")
	}
	d, ok := dateformat.Parse(raw)
	if creating || !ok {
		if msg := s.dates.ValidationError(raw); msg != "" {
			return time.Time{}, invalid("flight_date: " + msg)
		}
	}
	return d.Time(time.UTC), nil
}

// languageList resolves names against the language catalog, dropping blanks
// and case-insensitive duplicates.
func (s *TripService) languageList(names []string) ([]string, error) {
	out := make([]string, 0, len(names))
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		opt, ok := s.languages.Lookup(n)
		if !ok {
			return nil, invalid(fmt.Sprintf("languages: unknown language %q", n))
		}
		if seen[opt.ID] {
			continue
		}
		seen[opt.ID] = true
		out = append(out, opt.ID)
	}
	return out, nil
}

// validClock reports whether s is a 24-hour HH:mm time.
func validClock(s string) bool {
	if len(s) != 5 {
		return false
	}
	_, err := time.Parse("15:04", s)
	return err == nil
}

// invalid wraps msg as a domain.ErrValidation error.
func invalid(msg string) error {
	return fmt.Errorf("%w: %s", domain.ErrValidation, msg)
}

// validEmail reports whether s is exactly one bare address. Display names,
// address lists and embedded line breaks are rejected because the value is
// later used as a mail recipient.
func validEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s
}
