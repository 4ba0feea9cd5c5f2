package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/SonalJain837/amplify-dynamoDB-sub001/internal/domain"
	"github.com/SonalJain837/amplify-dynamoDB-sub001/internal/repo"
)

// ExportService flattens trips into rows for download.
type ExportService struct {
	trips repo.TripRepo
}

// NewExportService constructs an ExportService backed by the provided repo.
func NewExportService(trips repo.TripRepo) *ExportService {
	return &ExportService{trips: trips}
}

// Export returns one row per trip matching f, soonest flight first.
// The result is never nil.
func (s *ExportService) Export(ctx context.Context, f domain.TripFilter) ([]domain.ExportRow, error) {
	trips, err := s.trips.List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("service.ExportService.Export: %w", err)
	}
	rows := make([]domain.ExportRow, 0, len(trips))
	for _, t := range trips {
		rows = append(rows, domain.ExportRow{
			TripID:      t.ID.String(),
			UserEmail:   t.UserEmail,
			FromCity:    t.FromCity,
			ToCity:      t.ToCity,
			Layovers:    strings.Join(t.Layovers, "|"),
			FlightDate:  t.Date().Storage(),
			DisplayDate: t.DisplayDate(),
			FlightTime:  t.FlightTime,
			Confirmed:   t.Confirmed,
			Details:     t.Details,
			Languages:   strings.Join(t.Languages, "|"),
		})
	}
	return rows, nil
}
