package repositories

import (
	"database/sql"
	"time"

	"busbooking/internal/domain/models"
)

// ScheduleRepository wraps DB access for travel schedules. Seat counters are
// written here and by BookingRepository.Create only.
type ScheduleRepository struct {
	DB *sql.DB
}

const scheduleColumns = `s.id, s.source_id, s.destination_id, s.bus_id,
	src.station_code, src.name, dst.station_code, dst.name,
	s.estimated_departure_time, s.estimated_arrival_time,
	s.total_seat, s.seat_booked, s.available_seat, s.seat_cost`

const scheduleJoins = ` FROM travel_schedules s
	JOIN stations src ON src.id = s.source_id
	JOIN stations dst ON dst.id = s.destination_id`

func scanSchedule(row interface{ Scan(...any) error }) (models.TravelSchedule, error) {
	var s models.TravelSchedule
	err := row.Scan(
		&s.ID, &s.SourceID, &s.DestinationID, &s.BusID,
		&s.SourceCode, &s.SourceName, &s.DestinationCode, &s.DestinationName,
		&s.EstimatedDeparture, &s.EstimatedArrival,
		&s.TotalSeat, &s.SeatBooked, &s.AvailableSeat, &s.SeatCost,
	)
	return s, err
}

func (r ScheduleRepository) GetByID(id int64) (models.TravelSchedule, error) {
	row := r.DB.QueryRow(`SELECT `+scheduleColumns+scheduleJoins+` WHERE s.id=? LIMIT 1`, id)
	return scanSchedule(row)
}

// Exists reports whether an identical schedule is already stored.
func (r ScheduleRepository) Exists(sourceID, destinationID, busID int64, departure, arrival time.Time) (bool, error) {
	var id int64
	err := r.DB.QueryRow(`
		SELECT id FROM travel_schedules
		WHERE source_id=? AND destination_id=? AND bus_id=?
		  AND estimated_departure_time=? AND estimated_arrival_time=?
		LIMIT 1`,
		sourceID, destinationID, busID, departure, arrival,
	).Scan(&id)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// BusReuseExists reports whether the bus has another schedule departing within
// 24 hours after the given arrival time. excludeID skips the schedule being
// updated.
func (r ScheduleRepository) BusReuseExists(busID, excludeID int64, arrival time.Time) (bool, error) {
	var id int64
	err := r.DB.QueryRow(`
		SELECT id FROM travel_schedules
		WHERE bus_id=? AND id<>?
		  AND estimated_departure_time > ? AND estimated_departure_time <= ?
		LIMIT 1`,
		busID, excludeID, arrival, arrival.Add(24*time.Hour),
	).Scan(&id)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Search returns schedules between the pair departing inside
// [windowStart, windowEnd) and arriving after now, soonest first.
func (r ScheduleRepository) Search(sourceID, destinationID int64, windowStart, windowEnd, now time.Time) ([]models.TravelSchedule, error) {
	rows, err := r.DB.Query(`
		SELECT `+scheduleColumns+scheduleJoins+`
		WHERE s.source_id=? AND s.destination_id=?
		  AND s.estimated_departure_time >= ? AND s.estimated_departure_time < ?
		  AND s.estimated_arrival_time > ?
		ORDER BY s.estimated_departure_time ASC`,
		sourceID, destinationID, windowStart, windowEnd, now,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.TravelSchedule{}
	for rows.Next() {
		s, err := scanSchedule(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r ScheduleRepository) Insert(s models.TravelSchedule) (models.TravelSchedule, error) {
	res, err := r.DB.Exec(`
		INSERT INTO travel_schedules
			(source_id, destination_id, bus_id, estimated_departure_time, estimated_arrival_time,
			 total_seat, seat_booked, available_seat, seat_cost)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		s.SourceID, s.DestinationID, s.BusID, s.EstimatedDeparture, s.EstimatedArrival,
		s.TotalSeat, s.SeatBooked, s.AvailableSeat, s.SeatCost,
	)
	if err != nil {
		return s, err
	}
	s.ID, err = res.LastInsertId()
	return s, err
}

// Update persists replacement fields. Existence is checked by the caller;
// MySQL reports zero affected rows for value-identical updates, so that is
// not treated as missing here.
func (r ScheduleRepository) Update(s models.TravelSchedule) error {
	_, err := r.DB.Exec(`
		UPDATE travel_schedules
		SET bus_id=?, estimated_departure_time=?, estimated_arrival_time=?,
		    total_seat=?, seat_booked=?, available_seat=?, seat_cost=?
		WHERE id=?`,
		s.BusID, s.EstimatedDeparture, s.EstimatedArrival,
		s.TotalSeat, s.SeatBooked, s.AvailableSeat, s.SeatCost, s.ID,
	)
	return err
}

func (r ScheduleRepository) Delete(id int64) error {
	res, err := r.DB.Exec(`DELETE FROM travel_schedules WHERE id=?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
