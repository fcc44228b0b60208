package models

import "time"

// ExtraAddon is a priced extra attached to a booking. Value type, no identity.
type ExtraAddon struct {
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
}

// Booking snapshots the schedule at booking time (route, departure, price) so
// the record stays readable even if the schedule is later deleted. Immutable
// after creation.
type Booking struct {
	ID            int64        `json:"id"`
	Ref           string       `json:"bookingRef"`
	UserID        int64        `json:"userId"`
	ScheduleID    int64        `json:"scheduleId"`
	NumberOfSeats int          `json:"numberOfSeats"`
	SeatCost      float64      `json:"seatCost"`
	TotalAmount   float64      `json:"totalAmount"`
	RouteFrom     string       `json:"routeFrom"`
	RouteTo       string       `json:"routeTo"`
	DepartureTime time.Time    `json:"departureTime"`
	Addons        []ExtraAddon `json:"extraAddons"`
	CreatedAt     time.Time    `json:"createdAt"`
}

// BookingInput carries a booking request into the service layer.
type BookingInput struct {
	UserID        int64
	ScheduleID    int64
	NumberOfSeats int
	Addons        []ExtraAddon
}
