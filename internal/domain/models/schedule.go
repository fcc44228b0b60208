package models

import "time"

// TravelSchedule is a bus trip between two stations with its seat inventory.
// seat_booked + available_seat == total_seat holds after every mutation; the
// counters are written only by the schedule lifecycle and the booking claim.
type TravelSchedule struct {
	ID            int64 `json:"id"`
	SourceID      int64 `json:"-"`
	DestinationID int64 `json:"-"`
	BusID         int64 `json:"busId"`

	SourceCode      string `json:"sourceCode"`
	SourceName      string `json:"sourceName"`
	DestinationCode string `json:"destinationCode"`
	DestinationName string `json:"destinationName"`

	EstimatedDeparture time.Time `json:"estimatedDepartureTime"`
	EstimatedArrival   time.Time `json:"estimatedArrivalTime"`

	TotalSeat     int     `json:"totalSeat"`
	SeatBooked    int     `json:"seatBooked"`
	AvailableSeat int     `json:"availableSeat"`
	SeatCost      float64 `json:"seatCost"`
}
