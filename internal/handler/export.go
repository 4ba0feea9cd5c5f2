package handler

import (
	"bytes"
	"encoding/csv"
	"net/http"
	"strconv"

	"github.com/jszwec/csvutil"

	"github.com/SonalJain837/amplify-dynamoDB-sub001/internal/domain"
)

// ExportRow is the JSON form of one exported trip.
type ExportRow struct {
	TripID      string `json:"trip_id"`
	UserEmail   string `json:"user_email"`
	FromCity    string `json:"from_city"`
	ToCity      string `json:"to_city"`
	Layovers    string `json:"layovers"`
	FlightDate  string `json:"flight_date"`
	DisplayDate string `json:"display_date"`
	FlightTime  string `json:"flight_time"`
	Confirmed   bool   `json:"confirmed"`
	Details     string `json:"details"`
	Languages   string `json:"languages"`
}

// GetExport handles GET /export?format=csv|json&user_email=.
// JSON is the default; CSV is sent as a trips.csv attachment with a header row.
// Lists (layovers, languages) are "|"-joined in both formats.
func (s *Server) GetExport(w http.ResponseWriter, r *http.Request) {
	var format, userEmail string
	if err := queryParam(r, "format", &format); err != nil {
		badRequest(w, err.Error())
		return
	}
	if err := queryParam(r, "user_email", &userEmail); err != nil {
		badRequest(w, err.Error())
		return
	}
	if format != "" && format != "csv" && format != "json" {
		badRequest(w, "format must be csv or json")
		return
	}

	rows, err := s.export.Export(r.Context(), domain.TripFilter{UserEmail: userEmail})
	if err != nil {
		s.serviceError(w, r, err, "trip")
		return
	}

	if format == "csv" {
		s.writeCSV(w, r, rows)
		return
	}

	out := make([]ExportRow, len(rows))
	for i, row := range rows {
		out[i] = ExportRow(row)
	}
	writeJSON(w, http.StatusOK, out)
}

// writeCSV encodes rows with csvutil. The header row is written even when
// there are no rows.
func (s *Server) writeCSV(w http.ResponseWriter, r *http.Request, rows []domain.ExportRow) {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)
	enc := csvutil.NewEncoder(cw)

	var err error
	if len(rows) == 0 {
		err = enc.EncodeHeader(domain.ExportRow{})
	} else {
		err = enc.Encode(rows)
	}
	if err == nil {
		cw.Flush()
		err = cw.Error()
	}
	if err != nil {
		s.serviceError(w, r, err, "trip")
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="trips.csv"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}
