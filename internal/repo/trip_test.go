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
	"github.com/SonalJain837/amplify-dynamoDB-sub001/testutil"
)

func newTestRepo(t *testing.T) repo.TripRepo {
	t.Helper()
	return repo.NewTripRepo(testutil.NewTx(t))
}

// tripFixture returns a domain.Trip with sensible defaults for use in tests.
// Callers can override individual fields after calling this function.
func tripFixture() domain.Trip {
	return domain.Trip{
		UserEmail:  "ana@example.com",
		FromCity:   "JFK",
		ToCity:     "CDG",
		Layovers:   []string{"LHR"},
		FlightDate: time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
		FlightTime: "09:45",
		Confirmed:  true,
		Details:    "window seat",
		Languages:  []string{"English", "French"},
	}
}

func TestTripRepo_Create(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	input := tripFixture()
	got, err := r.Create(ctx, input)

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, got.ID, "ID should be DB-generated UUID")
	assert.Equal(t, input.UserEmail, got.UserEmail)
	assert.Equal(t, input.FromCity, got.FromCity)
	assert.Equal(t, input.ToCity, got.ToCity)
	assert.Equal(t, input.Layovers, got.Layovers)
	assert.True(t, got.FlightDate.Equal(input.FlightDate), "FlightDate mismatch")
	assert.Equal(t, "01-JUN-2026", got.DisplayDate())
	assert.Equal(t, input.FlightTime, got.FlightTime)
	assert.True(t, got.Confirmed)
	assert.Equal(t, input.Details, got.Details)
	assert.Equal(t, input.Languages, got.Languages)
	assert.False(t, got.CreatedAt.IsZero(), "CreatedAt should be set by DB")
	assert.False(t, got.UpdatedAt.IsZero(), "UpdatedAt should be set by DB")
}

func TestTripRepo_Create_NilSlices(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	input := tripFixture()
	input.Layovers = nil
	input.Languages = nil

	got, err := r.Create(ctx, input)

	require.NoError(t, err)
	assert.Empty(t, got.Layovers)
	assert.Empty(t, got.Languages)
}

func TestTripRepo_GetByID(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	created, err := r.Create(ctx, tripFixture())
	require.NoError(t, err)

	got, err := r.GetByID(ctx, created.ID)

	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, created.ToCity, got.ToCity)
}

func TestTripRepo_GetByID_NotFound(t *testing.T) {
	r := newTestRepo(t)

	_, err := r.GetByID(context.Background(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTripRepo_ListPaged_FilterAndOrder(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	later := tripFixture()
	later.FlightDate = later.FlightDate.AddDate(0, 1, 0)
	_, err := r.Create(ctx, later)
	require.NoError(t, err)

	sooner := tripFixture()
	_, err = r.Create(ctx, sooner)
	require.NoError(t, err)

	other := tripFixture()
	other.UserEmail = "bo@example.com"
	_, err = r.Create(ctx, other)
	require.NoError(t, err)

	page, err := r.ListPaged(ctx, domain.TripFilter{UserEmail: "ana@example.com"},
		domain.PaginationParams{Page: 1, Limit: 10})

	require.NoError(t, err)
	assert.EqualValues(t, 2, page.Total)
	require.Len(t, page.Items, 2)
	assert.True(t, page.Items[0].FlightDate.Before(page.Items[1].FlightDate), "soonest flight first")

	second, err := r.ListPaged(ctx, domain.TripFilter{UserEmail: "ana@example.com"},
		domain.PaginationParams{Page: 2, Limit: 1})
	require.NoError(t, err)
	assert.EqualValues(t, 2, second.Total)
	require.Len(t, second.Items, 1)
	assert.True(t, second.Items[0].FlightDate.Equal(later.FlightDate))
}

func TestTripRepo_List(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	_, err := r.Create(ctx, tripFixture())
	require.NoError(t, err)

	trips, err := r.List(ctx, domain.TripFilter{})

	require.NoError(t, err)
	assert.NotEmpty(t, trips)
}

func TestTripRepo_Update(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	created, err := r.Create(ctx, tripFixture())
	require.NoError(t, err)

	created.ToCity = "FCO"
	created.Layovers = nil
	created.Confirmed = false
	created.Details = "aisle"

	updated, err := r.Update(ctx, created)

	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "FCO", updated.ToCity)
	assert.Empty(t, updated.Layovers)
	assert.False(t, updated.Confirmed)
	assert.Equal(t, "aisle", updated.Details)
	assert.False(t, updated.UpdatedAt.IsZero())
}

func TestTripRepo_Update_NotFound(t *testing.T) {
	r := newTestRepo(t)

	ghost := tripFixture()
	ghost.ID = uuid.New()

	_, err := r.Update(context.Background(), ghost)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTripRepo_Delete(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	created, err := r.Create(ctx, tripFixture())
	require.NoError(t, err)

	require.NoError(t, r.Delete(ctx, created.ID))

	_, err = r.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound, "trip should be gone after delete")
}

func TestTripRepo_Delete_NotFound(t *testing.T) {
	r := newTestRepo(t)

	err := r.Delete(context.Background(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}
