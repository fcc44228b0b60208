package config

import "database/sql"

// Schema is owned by this service and applied at startup. Statements are
// idempotent so repeated boots are safe.
var schemaDDL = []string{
	`CREATE TABLE IF NOT EXISTS stations (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		station_code VARCHAR(16) NOT NULL,
		name VARCHAR(255) NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		UNIQUE KEY uniq_station_code (station_code)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`,

	`CREATE TABLE IF NOT EXISTS buses (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		bus_code VARCHAR(32) NOT NULL,
		operator_name VARCHAR(255) NOT NULL DEFAULT '',
		seat_capacity INT NOT NULL DEFAULT 0,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		UNIQUE KEY uniq_bus_code (bus_code)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`,

	`CREATE TABLE IF NOT EXISTS users (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		email VARCHAR(255) NOT NULL,
		password_hash VARCHAR(100) NOT NULL DEFAULT '',
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		UNIQUE KEY uniq_user_email (email)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`,

	`CREATE TABLE IF NOT EXISTS travel_schedules (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		source_id BIGINT NOT NULL,
		destination_id BIGINT NOT NULL,
		bus_id BIGINT NOT NULL,
		estimated_departure_time DATETIME NOT NULL,
		estimated_arrival_time DATETIME NOT NULL,
		total_seat INT NOT NULL,
		seat_booked INT NOT NULL DEFAULT 0,
		available_seat INT NOT NULL DEFAULT 0,
		seat_cost DOUBLE NOT NULL DEFAULT 0,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		KEY idx_route_departure (source_id, destination_id, estimated_departure_time),
		KEY idx_bus_departure (bus_id, estimated_departure_time)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`,

	`CREATE TABLE IF NOT EXISTS bookings (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		booking_ref CHAR(36) NOT NULL,
		user_id BIGINT NOT NULL,
		schedule_id BIGINT NOT NULL,
		number_of_seats INT NOT NULL,
		seat_cost DOUBLE NOT NULL,
		total_amount DOUBLE NOT NULL,
		route_from VARCHAR(255) NOT NULL DEFAULT '',
		route_to VARCHAR(255) NOT NULL DEFAULT '',
		departure_time DATETIME NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		UNIQUE KEY uniq_booking_ref (booking_ref),
		KEY idx_booking_user (user_id),
		KEY idx_booking_schedule (schedule_id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`,

	`CREATE TABLE IF NOT EXISTS booking_addons (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		booking_id BIGINT NOT NULL,
		name VARCHAR(100) NOT NULL,
		quantity INT NOT NULL,
		unit_price DOUBLE NOT NULL DEFAULT 0,
		KEY idx_addon_booking (booking_id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`,
}

func initSchema(db *sql.DB) error {
	for _, ddl := range schemaDDL {
		if _, err := db.Exec(ddl); err != nil {
			return err
		}
	}
	return nil
}
