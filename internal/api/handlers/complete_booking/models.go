package complete_booking

// CompleteBookingRequest HTTP request model
type CompleteBookingRequest struct {
	StationID int64 `json:"stationId"`
}
