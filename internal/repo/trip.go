// Package repo contains all database access logic for the trip planner.
// Each resource has its own file with an interface and a Postgres implementation.
// No business logic lives here, only SQL and type mapping.
package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/SonalJain837/amplify-dynamoDB-sub001/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test.
// Begin on a pgx.Tx opens a savepoint, so multi-statement writes nest cleanly.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

// TripRepo defines the persistence operations for Trips.
// The service layer depends on this interface, not the Postgres implementation.
type TripRepo interface {
	// Create inserts a new trip and returns the persisted record (with
	// DB-generated id, created_at, and updated_at populated).
	Create(ctx context.Context, trip domain.Trip) (domain.Trip, error)

	// GetByID retrieves a single trip by its UUID primary key.
	// Returns domain.ErrNotFound if no trip with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error)

	// List returns every trip matching f ordered by flight date.
	List(ctx context.Context, f domain.TripFilter) ([]domain.Trip, error)

	// ListPaged returns one page of trips matching f and the total match count.
	ListPaged(ctx context.Context, f domain.TripFilter, p domain.PaginationParams) (domain.Page[domain.Trip], error)

	// Update overwrites the mutable fields of an existing trip and returns the
	// updated record. Returns domain.ErrNotFound if no trip with that ID exists.
	Update(ctx context.Context, trip domain.Trip) (domain.Trip, error)

	// Delete removes a trip and, by cascade, its comments.
	// Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}

// pgTripRepo is the Postgres implementation of TripRepo.
type pgTripRepo struct {
	db db
}

// NewTripRepo constructs a TripRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewTripRepo(db db) TripRepo {
	return &pgTripRepo{db: db}
}

const tripColumns = `id, user_email, from_city, to_city, layovers, flight_date,
		flight_time, confirmed, details, languages, created_at, updated_at`

// Create inserts a new trip row and returns the full persisted record.
func (r *pgTripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	q := `
		INSERT INTO trips (user_email, from_city, to_city, layovers, flight_date,
		                   flight_time, confirmed, details, languages)
		VALUES (@user_email, @from_city, @to_city, @layovers, @flight_date,
		        @flight_time, @confirmed, @details, @languages)
		RETURNING ` + tripColumns

	row := r.db.QueryRow(ctx, q, tripArgs(trip))
	result, err := scanTrip(row)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Create: %w", err)
	}
	return result, nil
}

// GetByID retrieves a trip by primary key.
func (r *pgTripRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	q := `SELECT ` + tripColumns + ` FROM trips WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanTrip(row)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.GetByID: %w", err)
	}
	return result, nil
}

// List returns all trips matching f, soonest flight first.
func (r *pgTripRepo) List(ctx context.Context, f domain.TripFilter) ([]domain.Trip, error) {
	q := `
		SELECT ` + tripColumns + `
		FROM trips
		WHERE (@user_email::text = '' OR user_email = @user_email)
		ORDER BY flight_date, created_at`

	trips, err := r.query(ctx, q, pgx.NamedArgs{"user_email": f.UserEmail})
	if err != nil {
		return nil, fmt.Errorf("repo.TripRepo.List: %w", err)
	}
	return trips, nil
}

// ListPaged returns one page of trips matching f, soonest flight first.
func (r *pgTripRepo) ListPaged(ctx context.Context, f domain.TripFilter, p domain.PaginationParams) (domain.Page[domain.Trip], error) {
	const countQ = `
		SELECT count(*)
		FROM trips
		WHERE (@user_email::text = '' OR user_email = @user_email)`

	var total int64
	if err := r.db.QueryRow(ctx, countQ, pgx.NamedArgs{"user_email": f.UserEmail}).Scan(&total); err != nil {
		return domain.Page[domain.Trip]{}, fmt.Errorf("repo.TripRepo.ListPaged: count: %w", err)
	}

	q := `
		SELECT ` + tripColumns + `
		FROM trips
		WHERE (@user_email::text = '' OR user_email = @user_email)
		ORDER BY flight_date, created_at
		LIMIT @limit OFFSET @offset`

	trips, err := r.query(ctx, q, pgx.NamedArgs{
		"user_email": f.UserEmail,
		"limit":      p.Limit,
		"offset":     p.Offset(),
	})
	if err != nil {
		return domain.Page[domain.Trip]{}, fmt.Errorf("repo.TripRepo.ListPaged: %w", err)
	}
	return domain.Page[domain.Trip]{Items: trips, Total: total}, nil
}

// Update overwrites the mutable fields of a trip and returns the updated record.
// user_email is the owner and never changes.
func (r *pgTripRepo) Update(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	q := `
		UPDATE trips
		SET from_city   = @from_city,
		    to_city     = @to_city,
		    layovers    = @layovers,
		    flight_date = @flight_date,
		    flight_time = @flight_time,
		    confirmed   = @confirmed,
		    details     = @details,
		    languages   = @languages,
		    updated_at  = now()
		WHERE id = @id
		RETURNING ` + tripColumns

	args := tripArgs(trip)
	args["id"] = trip.ID

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanTrip(row)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Update: %w", err)
	}
	return result, nil
}

// Delete removes a trip by primary key.
func (r *pgTripRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM trips WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.TripRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.TripRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *pgTripRepo) query(ctx context.Context, q string, args pgx.NamedArgs) ([]domain.Trip, error) {
	rows, err := r.db.Query(ctx, q, args)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	trips := []domain.Trip{}
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		trips = append(trips, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return trips, nil
}

// tripArgs maps the writable columns. Nil slices are sent as empty arrays
// because the columns are NOT NULL.
func tripArgs(trip domain.Trip) pgx.NamedArgs {
	return pgx.NamedArgs{
		"user_email":  trip.UserEmail,
		"from_city":   trip.FromCity,
		"to_city":     trip.ToCity,
		"layovers":    nonNil(trip.Layovers),
		"flight_date": pgtype.Date{Time: trip.FlightDate, Valid: true},
		"flight_time": trip.FlightTime,
		"confirmed":   trip.Confirmed,
		"details":     trip.Details,
		"languages":   nonNil(trip.Languages),
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// scanner is satisfied by both pgx.Row and pgx.Rows, allowing the scan
// helpers to be reused for both QueryRow and Query calls.
type scanner interface {
	Scan(dest ...any) error
}

// scanTrip maps a single database row into a domain.Trip.
func scanTrip(s scanner) (domain.Trip, error) {
	var (
		t          domain.Trip
		id         pgtype.UUID
		flightDate pgtype.Date
	)

	err := s.Scan(&id, &t.UserEmail, &t.FromCity, &t.ToCity, &t.Layovers, &flightDate,
		&t.FlightTime, &t.Confirmed, &t.Details, &t.Languages, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Trip{}, domain.ErrNotFound
		}
		return domain.Trip{}, err
	}

	t.ID = uuid.UUID(id.Bytes)
	t.FlightDate = flightDate.Time
	return t, nil
}
