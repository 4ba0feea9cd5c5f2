package domain

// ExportRow is one trip flattened for CSV download.
// Lists are joined with "|" so each trip stays on one line.
type ExportRow struct {
	TripID      string `csv:"trip_id"`
	UserEmail   string `csv:"user_email"`
	FromCity    string `csv:"from_city"`
	ToCity      string `csv:"to_city"`
	Layovers    string `csv:"layovers"`
	FlightDate  string `csv:"flight_date"`
	DisplayDate string `csv:"display_date"`
	FlightTime  string `csv:"flight_time"`
	Confirmed   bool   `csv:"confirmed"`
	Details     string `csv:"details"`
	Languages   string `csv:"languages"`
}
