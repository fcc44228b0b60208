package repositories

import (
	"database/sql"

	"busbooking/internal/domain"
	"busbooking/internal/domain/models"
)

// BookingRepository persists bookings. The seat claim and the booking insert
// share one transaction so a failure in either leaves the counters untouched.
type BookingRepository struct {
	DB *sql.DB
}

// Create claims the seats and inserts the booking and its add-on rows
// atomically. The conditional UPDATE serializes concurrent claims on the
// schedule row; it can never drive available_seat below zero.
func (r BookingRepository) Create(b models.Booking) (models.Booking, error) {
	tx, err := r.DB.Begin()
	if err != nil {
		return b, err
	}
	defer tx.Rollback()

	res, err := tx.Exec(`
		UPDATE travel_schedules
		SET seat_booked = seat_booked + ?, available_seat = available_seat - ?
		WHERE id=? AND available_seat >= ?`,
		b.NumberOfSeats, b.NumberOfSeats, b.ScheduleID, b.NumberOfSeats,
	)
	if err != nil {
		return b, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return b, err
	}
	if affected == 0 {
		// Claim failed: either the schedule is gone or seats ran out.
		var available int
		err := tx.QueryRow(`SELECT available_seat FROM travel_schedules WHERE id=? LIMIT 1`, b.ScheduleID).Scan(&available)
		if err == sql.ErrNoRows {
			return b, domain.NotFoundError{Resource: "travel schedule"}
		}
		if err != nil {
			return b, err
		}
		return b, domain.InsufficientSeatsError{
			ScheduleID: b.ScheduleID,
			Requested:  b.NumberOfSeats,
			Available:  available,
		}
	}

	ins, err := tx.Exec(`
		INSERT INTO bookings
			(booking_ref, user_id, schedule_id, number_of_seats, seat_cost, total_amount,
			 route_from, route_to, departure_time)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		b.Ref, b.UserID, b.ScheduleID, b.NumberOfSeats, b.SeatCost, b.TotalAmount,
		b.RouteFrom, b.RouteTo, b.DepartureTime,
	)
	if err != nil {
		return b, err
	}
	b.ID, err = ins.LastInsertId()
	if err != nil {
		return b, err
	}

	for _, a := range b.Addons {
		if _, err := tx.Exec(`
			INSERT INTO booking_addons (booking_id, name, quantity, unit_price)
			VALUES (?, ?, ?, ?)`,
			b.ID, a.Name, a.Quantity, a.UnitPrice,
		); err != nil {
			return b, err
		}
	}

	if err := tx.Commit(); err != nil {
		return b, err
	}
	return b, nil
}

func (r BookingRepository) GetByID(id int64) (models.Booking, error) {
	var b models.Booking
	err := r.DB.QueryRow(`
		SELECT id, booking_ref, user_id, schedule_id, number_of_seats, seat_cost, total_amount,
		       route_from, route_to, departure_time, created_at
		FROM bookings WHERE id=? LIMIT 1`, id,
	).Scan(
		&b.ID, &b.Ref, &b.UserID, &b.ScheduleID, &b.NumberOfSeats, &b.SeatCost, &b.TotalAmount,
		&b.RouteFrom, &b.RouteTo, &b.DepartureTime, &b.CreatedAt,
	)
	if err != nil {
		return b, err
	}

	rows, err := r.DB.Query(`SELECT name, quantity, unit_price FROM booking_addons WHERE booking_id=? ORDER BY id ASC`, id)
	if err != nil {
		return b, err
	}
	defer rows.Close()

	b.Addons = []models.ExtraAddon{}
	for rows.Next() {
		var a models.ExtraAddon
		if err := rows.Scan(&a.Name, &a.Quantity, &a.UnitPrice); err != nil {
			return b, err
		}
		b.Addons = append(b.Addons, a)
	}
	return b, rows.Err()
}

func (r BookingRepository) ListByUser(userID int64) ([]models.Booking, error) {
	rows, err := r.DB.Query(`
		SELECT id, booking_ref, user_id, schedule_id, number_of_seats, seat_cost, total_amount,
		       route_from, route_to, departure_time, created_at
		FROM bookings WHERE user_id=? ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Booking{}
	for rows.Next() {
		var b models.Booking
		if err := rows.Scan(
			&b.ID, &b.Ref, &b.UserID, &b.ScheduleID, &b.NumberOfSeats, &b.SeatCost, &b.TotalAmount,
			&b.RouteFrom, &b.RouteTo, &b.DepartureTime, &b.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}
