package repositories

import (
	"database/sql"
	"strings"

	"busbooking/internal/domain/models"
)

// StationRepository wraps DB access for the station directory.
type StationRepository struct {
	DB *sql.DB
}

// GetByCode resolves a station code, case-sensitive, trimmed.
func (r StationRepository) GetByCode(code string) (models.Station, error) {
	var st models.Station
	err := r.DB.QueryRow(
		`SELECT id, station_code, name FROM stations WHERE station_code=? LIMIT 1`,
		strings.TrimSpace(code),
	).Scan(&st.ID, &st.Code, &st.Name)
	return st, err
}

func (r StationRepository) ExistsByCode(code string) (bool, error) {
	var id int64
	err := r.DB.QueryRow(`SELECT id FROM stations WHERE station_code=? LIMIT 1`, strings.TrimSpace(code)).Scan(&id)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r StationRepository) Create(st models.Station) (models.Station, error) {
	res, err := r.DB.Exec(
		`INSERT INTO stations (station_code, name) VALUES (?, ?)`,
		strings.TrimSpace(st.Code), strings.TrimSpace(st.Name),
	)
	if err != nil {
		return st, err
	}
	st.ID, err = res.LastInsertId()
	return st, err
}

func (r StationRepository) List() ([]models.Station, error) {
	rows, err := r.DB.Query(`SELECT id, station_code, name FROM stations ORDER BY station_code ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Station{}
	for rows.Next() {
		var st models.Station
		if err := rows.Scan(&st.ID, &st.Code, &st.Name); err != nil {
			return nil, err
		}
		out = append(out, st)
	}
	return out, rows.Err()
}
