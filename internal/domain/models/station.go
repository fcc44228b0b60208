package models

// Station is a boarding point referenced by schedules. Immutable once created.
type Station struct {
	ID   int64  `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
}

// Bus is a vehicle assignable to schedules.
type Bus struct {
	ID           int64  `json:"id"`
	Code         string `json:"code"`
	OperatorName string `json:"operatorName"`
	SeatCapacity int    `json:"seatCapacity"`
}
