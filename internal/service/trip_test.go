package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SonalJain837/amplify-dynamoDB-sub001/internal/catalog"
	"github.com/SonalJain837/amplify-dynamoDB-sub001/internal/dateformat"
	"github.com/SonalJain837/amplify-dynamoDB-sub001/internal/domain"
	"github.com/SonalJain837/amplify-dynamoDB-sub001/internal/repo"
	"github.com/SonalJain837/amplify-dynamoDB-sub001/internal/service"
)

// mockTripRepo is a hand-written test double for repo.TripRepo.
// Each method is a function field; set only the ones your test needs.
type mockTripRepo struct {
	create    func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	getByID   func(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	list      func(ctx context.Context, f domain.TripFilter) ([]domain.Trip, error)
	listPaged func(ctx context.Context, f domain.TripFilter, p domain.PaginationParams) (domain.Page[domain.Trip], error)
	update    func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	delete    func(ctx context.Context, id uuid.UUID) error
}

func (m *mockTripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	return m.create(ctx, trip)
}
func (m *mockTripRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	return m.getByID(ctx, id)
}
func (m *mockTripRepo) List(ctx context.Context, f domain.TripFilter) ([]domain.Trip, error) {
	return m.list(ctx, f)
}
func (m *mockTripRepo) ListPaged(ctx context.Context, f domain.TripFilter, p domain.PaginationParams) (domain.Page[domain.Trip], error) {
	return m.listPaged(ctx, f, p)
}
func (m *mockTripRepo) Update(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	return m.update(ctx, trip)
}
func (m *mockTripRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

// compile-time check: mockTripRepo must satisfy repo.TripRepo.
var _ repo.TripRepo = (*mockTripRepo)(nil)

// ---- helpers ---------------------------------------------------------------

// today is the pinned clock for every service test: 10-MAR-2025.
var today = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func newTripService(t *testing.T, r repo.TripRepo) *service.TripService {
	t.Helper()
	cities, err := catalog.Cities()
	require.NoError(t, err)
	languages, err := catalog.Languages()
	require.NoError(t, err)
	dates := dateformat.New(
		dateformat.WithClock(func() time.Time { return today }),
		dateformat.WithLocation(time.UTC),
	)
	return service.NewTripService(r, cities, languages, dates)
}

func validDraft() domain.TripDraft {
	return domain.TripDraft{
		UserEmail:  "ana@example.com",
		FromCity:   "jfk",
		ToCity:     "CDG",
		Layovers:   []string{"LHR"},
		FlightDate: "20-MAR-2025",
		FlightTime: "09:45",
		Confirmed:  true,
		Details:    "window seat",
		Languages:  []string{"english", "French", "ENGLISH", " "},
	}
}

// echoRepo returns whatever it receives, for tests that only care about validation.
func echoRepo() *mockTripRepo {
	return &mockTripRepo{
		create: func(_ context.Context, t domain.Trip) (domain.Trip, error) { return t, nil },
		update: func(_ context.Context, t domain.Trip) (domain.Trip, error) { return t, nil },
	}
}

// ---- Create ----------------------------------------------------------------

func TestTripService_Create_Valid(t *testing.T) {
	svc := newTripService(t, echoRepo())

	got, err := svc.Create(context.Background(), validDraft())

	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", got.UserEmail)
	assert.Equal(t, "JFK", got.FromCity, "codes are canonicalized")
	assert.Equal(t, "CDG", got.ToCity)
	assert.Equal(t, []string{"LHR"}, got.Layovers)
	assert.Equal(t, time.Date(2025, 3, 20, 0, 0, 0, 0, time.UTC), got.FlightDate)
	assert.Equal(t, "20-MAR-2025", got.DisplayDate())
	assert.Equal(t, []string{"English", "French"}, got.Languages, "deduplicated, blanks dropped")
	assert.True(t, got.Confirmed)
}

func TestTripService_Create_TodayAllowed(t *testing.T) {
	svc := newTripService(t, echoRepo())

	d := validDraft()
	d.FlightDate = "10-MAR-2025"

	_, err := svc.Create(context.Background(), d)

	assert.NoError(t, err)
}

func TestTripService_Create_DateMessages(t *testing.T) {
	cases := map[string]string{
		"":            "flight_date is required",
		"09-MAR-2025": dateformat.MsgPastDate,
		"31-FEB-2026": dateformat.MsgInvalidDate,
		"2025-03-20":  dateformat.MsgFormat,
	}
	for in, want := range cases {
		t.Run(in, func(t *testing.T) {
			svc := newTripService(t, echoRepo())
			d := validDraft()
			d.FlightDate = in

			_, err := svc.Create(context.Background(), d)

			require.ErrorIs(t, err, domain.ErrValidation)
			assert.Contains(t, err.Error(), want)
		})
	}
}

func TestTripService_Create_Rejects(t *testing.T) {
	cases := map[string]func(d *domain.TripDraft){
		"missing email":     func(d *domain.TripDraft) { d.UserEmail = "  " },
		"bad email":         func(d *domain.TripDraft) { d.UserEmail = "ana" },
		"email with crlf":   func(d *domain.TripDraft) { d.UserEmail = "ana@example.com\r\nBcc: evil@example.com" },
		"display name":      func(d *domain.TripDraft) { d.UserEmail = "Ana <ana@example.com>" },
		"address list":      func(d *domain.TripDraft) { d.UserEmail = "ana@example.com, bo@example.com" },
		"missing from":      func(d *domain.TripDraft) { d.FromCity = "" },
		"unknown to":        func(d *domain.TripDraft) { d.ToCity = "XXX" },
		"same cities":       func(d *domain.TripDraft) { d.ToCity = "JFK" },
		"too many layovers": func(d *domain.TripDraft) { d.Layovers = []string{"LHR", "FRA", "MUC", "AMS"} },
		"layover repeated":  func(d *domain.TripDraft) { d.Layovers = []string{"LHR", "lhr"} },
		"layover is origin": func(d *domain.TripDraft) { d.Layovers = []string{"JFK"} },
		"unknown layover":   func(d *domain.TripDraft) { d.Layovers = []string{"ZZZ"} },
		"bad time":          func(d *domain.TripDraft) { d.FlightTime = "9:45" },
		"hour out of range": func(d *domain.TripDraft) { d.FlightTime = "25:00" },
		"details too long":  func(d *domain.TripDraft) { d.Details = strings.Repeat("x", 251) },
		"unknown language":  func(d *domain.TripDraft) { d.Languages = []string{"Klingon"} },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			svc := newTripService(t, echoRepo())
			d := validDraft()
			mutate(&d)

			_, err := svc.Create(context.Background(), d)

			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestTripService_Create_DetailsAtLimit(t *testing.T) {
	svc := newTripService(t, echoRepo())

	d := validDraft()
	d.Details = strings.Repeat("é", 250)
	d.Layovers = []string{"LHR", "FRA", "MUC"}
	d.FlightTime = ""

	_, err := svc.Create(context.Background(), d)

	assert.NoError(t, err)
}

func TestTripService_Create_RepoError(t *testing.T) {
	repoErr := errors.New("db exploded")
	r := &mockTripRepo{
		create: func(_ context.Context, _ domain.Trip) (domain.Trip, error) {
			return domain.Trip{}, repoErr
		},
	}
	svc := newTripService(t, r)

	_, err := svc.Create(context.Background(), validDraft())

	assert.ErrorIs(t, err, repoErr)
}

// ---- GetByID / ListPaged ---------------------------------------------------

func TestTripService_GetByID_NotFound(t *testing.T) {
	r := &mockTripRepo{
		getByID: func(_ context.Context, _ uuid.UUID) (domain.Trip, error) {
			return domain.Trip{}, domain.ErrNotFound
		},
	}
	svc := newTripService(t, r)

	_, err := svc.GetByID(context.Background(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTripService_ListPaged_NilItems(t *testing.T) {
	var gotFilter domain.TripFilter
	r := &mockTripRepo{
		listPaged: func(_ context.Context, f domain.TripFilter, _ domain.PaginationParams) (domain.Page[domain.Trip], error) {
			gotFilter = f
			return domain.Page[domain.Trip]{}, nil
		},
	}
	svc := newTripService(t, r)

	page, err := svc.ListPaged(context.Background(), domain.TripFilter{UserEmail: " ana@example.com "},
		domain.NewPaginationParams(nil, nil))

	require.NoError(t, err)
	assert.NotNil(t, page.Items)
	assert.Equal(t, "ana@example.com", gotFilter.UserEmail)
}

// ---- Update ----------------------------------------------------------------

func TestTripService_Update_PastDateAllowed(t *testing.T) {
	svc := newTripService(t, echoRepo())
	id := uuid.New()

	d := validDraft()
	d.FlightDate = "01-JAN-2020"

	got, err := svc.Update(context.Background(), id, d)

	require.NoError(t, err)
	assert.Equal(t, id, got.ID)
	assert.Equal(t, "01-JAN-2020", got.DisplayDate())
	assert.Empty(t, got.UserEmail, "owner is not part of an update")
}

func TestTripService_Update_ImpossibleDate(t *testing.T) {
	svc := newTripService(t, echoRepo())

	d := validDraft()
	d.FlightDate = "30-FEB-2020"

	_, err := svc.Update(context.Background(), uuid.New(), d)

	require.ErrorIs(t, err, domain.ErrValidation)
	assert.Contains(t, err.Error(), dateformat.MsgInvalidDate)
}

func TestTripService_Update_NotFound(t *testing.T) {
	r := &mockTripRepo{
		update: func(_ context.Context, _ domain.Trip) (domain.Trip, error) {
			return domain.Trip{}, domain.ErrNotFound
		},
	}
	svc := newTripService(t, r)

	_, err := svc.Update(context.Background(), uuid.New(), validDraft())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ---- Delete ----------------------------------------------------------------

func TestTripService_Delete_OK(t *testing.T) {
	r := &mockTripRepo{
		delete: func(_ context.Context, _ uuid.UUID) error { return nil },
	}

	err := newTripService(t, r).Delete(context.Background(), uuid.New())

	assert.NoError(t, err)
}

func TestTripService_Delete_NotFound(t *testing.T) {
	r := &mockTripRepo{
		delete: func(_ context.Context, _ uuid.UUID) error { return domain.ErrNotFound },
	}

	err := newTripService(t, r).Delete(context.Background(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}
