package repositories

import (
	"database/sql"
	"strings"

	"busbooking/internal/domain/models"
)

// BusRepository wraps DB access for the bus registry.
type BusRepository struct {
	DB *sql.DB
}

func (r BusRepository) GetByID(id int64) (models.Bus, error) {
	var b models.Bus
	err := r.DB.QueryRow(
		`SELECT id, bus_code, operator_name, seat_capacity FROM buses WHERE id=? LIMIT 1`, id,
	).Scan(&b.ID, &b.Code, &b.OperatorName, &b.SeatCapacity)
	return b, err
}

func (r BusRepository) Exists(id int64) (bool, error) {
	var found int64
	err := r.DB.QueryRow(`SELECT id FROM buses WHERE id=? LIMIT 1`, id).Scan(&found)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r BusRepository) ExistsByCode(code string) (bool, error) {
	var id int64
	err := r.DB.QueryRow(`SELECT id FROM buses WHERE bus_code=? LIMIT 1`, strings.TrimSpace(code)).Scan(&id)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r BusRepository) Create(b models.Bus) (models.Bus, error) {
	res, err := r.DB.Exec(
		`INSERT INTO buses (bus_code, operator_name, seat_capacity) VALUES (?, ?, ?)`,
		strings.TrimSpace(b.Code), strings.TrimSpace(b.OperatorName), b.SeatCapacity,
	)
	if err != nil {
		return b, err
	}
	b.ID, err = res.LastInsertId()
	return b, err
}

func (r BusRepository) List() ([]models.Bus, error) {
	rows, err := r.DB.Query(`SELECT id, bus_code, operator_name, seat_capacity FROM buses ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Bus{}
	for rows.Next() {
		var b models.Bus
		if err := rows.Scan(&b.ID, &b.Code, &b.OperatorName, &b.SeatCapacity); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}
