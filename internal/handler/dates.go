package handler

import (
	"net/http"

	"github.com/SonalJain837/amplify-dynamoDB-sub001/internal/dateformat"
)

// DateToday is the body of GET /dates/today.
type DateToday struct {
	Today string `json:"today"`
}

// DateCheck is the body of GET /dates/check. It reports everything a form
// needs while the user types a date: the masked input, both validity flags,
// the single validation message (null when acceptable) and the storage form.
type DateCheck struct {
	Value              string  `json:"value"`
	Masked             string  `json:"masked"`
	ValidFormat        bool    `json:"valid_format"`
	ValidForFutureTrip bool    `json:"valid_for_future_trip"`
	Error              *string `json:"error"`
	StorageForm        string  `json:"storage_form"`
}

// DateDisplay is the body of GET /dates/display.
type DateDisplay struct {
	Storage string `json:"storage"`
	Display string `json:"display"`
}

// GetToday handles GET /dates/today.
func (s *Server) GetToday(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, DateToday{Today: s.dates.Today()})
}

// CheckDate handles GET /dates/check?value=. A missing value is checked as
// the empty string, which is format-valid but not a future trip date.
func (s *Server) CheckDate(w http.ResponseWriter, r *http.Request) {
	var value string
	if err := queryParam(r, "value", &value); err != nil {
		badRequest(w, err.Error())
		return
	}

	resp := DateCheck{
		Value:              value,
		Masked:             dateformat.FormatInputValue(value),
		ValidFormat:        dateformat.ValidateFormat(value),
		ValidForFutureTrip: s.dates.IsValidForFutureTrip(value),
		StorageForm:        dateformat.ToStorage(value),
	}
	msg := s.dates.ValidationError(value)
	if msg != "" {
		resp.Error = &msg
	}
	if s.metrics != nil {
		s.metrics.DateCheck(checkOutcome(value, msg))
	}
	writeJSON(w, http.StatusOK, resp)
}

// GetDisplayDate handles GET /dates/display?storage=. An unreadable storage
// value yields an empty display string, not an error.
func (s *Server) GetDisplayDate(w http.ResponseWriter, r *http.Request) {
	var storage string
	if err := requireQueryParam(r, "storage", &storage); err != nil {
		badRequest(w, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, DateDisplay{Storage: storage, Display: dateformat.FromStorage(storage)})
}

// checkOutcome names the validation result for metrics.
func checkOutcome(value, msg string) string {
	switch {
	case value == "":
		return "empty"
	case msg == "":
		return "ok"
	case msg == dateformat.MsgFormat:
		return "format"
	case msg == dateformat.MsgInvalidDate:
		return "invalid"
	case msg == dateformat.MsgPastDate:
		return "past"
	default:
		return "other"
	}
}
