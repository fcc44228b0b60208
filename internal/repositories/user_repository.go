package repositories

import (
	"database/sql"
	"strings"

	"busbooking/internal/domain/models"
)

// UserRepository wraps DB access for the user directory.
type UserRepository struct {
	DB *sql.DB
}

func (r UserRepository) GetByID(id int64) (models.User, error) {
	var u models.User
	err := r.DB.QueryRow(
		`SELECT id, name, email, password_hash FROM users WHERE id=? LIMIT 1`, id,
	).Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash)
	return u, err
}

func (r UserRepository) ExistsByEmail(email string) (bool, error) {
	var id int64
	err := r.DB.QueryRow(`SELECT id FROM users WHERE email=? LIMIT 1`, strings.TrimSpace(email)).Scan(&id)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r UserRepository) Create(u models.User) (models.User, error) {
	res, err := r.DB.Exec(
		`INSERT INTO users (name, email, password_hash) VALUES (?, ?, ?)`,
		strings.TrimSpace(u.Name), strings.TrimSpace(u.Email), u.PasswordHash,
	)
	if err != nil {
		return u, err
	}
	u.ID, err = res.LastInsertId()
	return u, err
}

func (r UserRepository) List() ([]models.User, error) {
	rows, err := r.DB.Query(`SELECT id, name, email FROM users ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.User{}
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}
