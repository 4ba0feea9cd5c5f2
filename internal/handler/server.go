// Package handler implements the HTTP handlers for the trip planner API.
// All handlers are methods on Server; routes are registered by NewRouter.
// Methods are split into resource files (trip.go, catalog.go, dates.go, ...)
// but all share the same Server struct so they can access its dependencies.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/SonalJain837/amplify-dynamoDB-sub001/internal/dateformat"
	"github.com/SonalJain837/amplify-dynamoDB-sub001/internal/domain"
	"github.com/SonalJain837/amplify-dynamoDB-sub001/internal/search"
)

// TripServicer defines the business operations the trip handlers depend on.
// Defining the interface here, in the consumer package, lets handler tests
// inject a mock without touching the database or service layer.
type TripServicer interface {
	Create(ctx context.Context, draft domain.TripDraft) (domain.Trip, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	ListPaged(ctx context.Context, f domain.TripFilter, p domain.PaginationParams) (domain.Page[domain.Trip], error)
	Update(ctx context.Context, id uuid.UUID, draft domain.TripDraft) (domain.Trip, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// CommentServicer defines the comment operations.
type CommentServicer interface {
	Create(ctx context.Context, tripID uuid.UUID, c domain.Comment) (domain.Comment, error)
	ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Comment, error)
}

// ExportServicer produces the flat trip table for GET /export.
type ExportServicer interface {
	Export(ctx context.Context, f domain.TripFilter) ([]domain.ExportRow, error)
}

// Catalog answers type-ahead queries. *catalog.Catalog satisfies it.
type Catalog interface {
	Search(query string, limit int) []search.Match
}

// Recorder counts lookups and date checks. *metrics.Metrics satisfies it.
type Recorder interface {
	CatalogSearch(catalog string, query string, results int)
	DateCheck(outcome string)
}

// Deps carries everything the Server needs. Nil services are allowed in
// tests that never reach them.
type Deps struct {
	Trips     TripServicer
	Comments  CommentServicer
	Export    ExportServicer
	Cities    Catalog
	Languages Catalog
	Dates     *dateformat.Formatter

	// CityBrowseLimit caps catalog results for an empty query and
	// CitySearchLimit for a non-empty one. Zero means 100 and 50.
	CityBrowseLimit int
	CitySearchLimit int

	Metrics        Recorder
	MetricsHandler http.Handler
	Log            *slog.Logger
}

// Server holds the handler dependencies.
type Server struct {
	trips     TripServicer
	comments  CommentServicer
	export    ExportServicer
	cities    Catalog
	languages Catalog
	dates     *dateformat.Formatter

	browseLimit int
	searchLimit int

	metrics        Recorder
	metricsHandler http.Handler
	log            *slog.Logger
}

// NewServer constructs the Server from d, filling in defaults.
func NewServer(d Deps) *Server {
	s := &Server{
		trips:          d.Trips,
		comments:       d.Comments,
		export:         d.Export,
		cities:         d.Cities,
		languages:      d.Languages,
		dates:          d.Dates,
		browseLimit:    d.CityBrowseLimit,
		searchLimit:    d.CitySearchLimit,
		metrics:        d.Metrics,
		metricsHandler: d.MetricsHandler,
		log:            d.Log,
	}
	if s.browseLimit <= 0 {
		s.browseLimit = 100
	}
	if s.searchLimit <= 0 {
		s.searchLimit = 50
	}
	if s.dates == nil {
		s.dates = dateformat.New()
	}
	if s.log == nil {
		s.log = slog.Default()
	}
	return s
}
