package database

import (
	"context"
	"database/sql"
)

// Statements holds the DDL for every table, in dependency order.
// The unique keys encode the domain invariants the services rely on:
// visitors.pass_code backs pass-code uniqueness, bookings
// (amenity_id, booking_date, start_time) backstops the booking
// conflict check, poll_votes (poll_id, user_id) backs the one-ballot
// rule, and bills (user_id, period, category) makes the monthly
// generator idempotent.
var Statements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		email VARCHAR(255) NOT NULL UNIQUE,
		password_hash VARCHAR(255) NOT NULL,
		name VARCHAR(255) NOT NULL DEFAULT '',
		flat VARCHAR(32) NULL,
		role VARCHAR(16) NOT NULL DEFAULT 'RESIDENT',
		is_active TINYINT(1) NOT NULL DEFAULT 1,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS refresh_tokens (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		user_id BIGINT UNSIGNED NOT NULL,
		token_hash CHAR(64) NOT NULL,
		expires_at DATETIME NOT NULL,
		revoked_at DATETIME NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		KEY idx_refresh_tokens_hash (token_hash),
		CONSTRAINT fk_refresh_tokens_user FOREIGN KEY (user_id) REFERENCES users(id)
	)`,
	`CREATE TABLE IF NOT EXISTS visitors (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		host_id BIGINT UNSIGNED NOT NULL,
		name VARCHAR(255) NOT NULL,
		phone VARCHAR(32) NULL,
		purpose VARCHAR(255) NULL,
		category VARCHAR(32) NOT NULL,
		status VARCHAR(16) NOT NULL,
		pass_code VARCHAR(16) NOT NULL,
		expected_at DATETIME NOT NULL,
		exit_time DATETIME NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		UNIQUE KEY uq_visitors_pass_code (pass_code),
		KEY idx_visitors_host (host_id),
		CONSTRAINT fk_visitors_host FOREIGN KEY (host_id) REFERENCES users(id)
	)`,
	`CREATE TABLE IF NOT EXISTS amenities (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		category VARCHAR(64) NOT NULL DEFAULT '',
		capacity INT UNSIGNED NOT NULL DEFAULT 0,
		hourly_price_cents INT UNSIGNED NOT NULL DEFAULT 0,
		is_active TINYINT(1) NOT NULL DEFAULT 1,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS bookings (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		user_id BIGINT UNSIGNED NOT NULL,
		amenity_id BIGINT UNSIGNED NOT NULL,
		booking_date CHAR(10) NOT NULL,
		start_time CHAR(5) NOT NULL,
		end_time CHAR(5) NOT NULL,
		status VARCHAR(16) NOT NULL,
		active_start CHAR(5) GENERATED ALWAYS AS
			(CASE WHEN status IN ('PENDING','APPROVED') THEN start_time ELSE NULL END) STORED,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		UNIQUE KEY uq_bookings_slot (amenity_id, booking_date, active_start),
		KEY idx_bookings_user (user_id),
		CONSTRAINT fk_bookings_user FOREIGN KEY (user_id) REFERENCES users(id),
		CONSTRAINT fk_bookings_amenity FOREIGN KEY (amenity_id) REFERENCES amenities(id)
	)`,
	`CREATE TABLE IF NOT EXISTS polls (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		question TEXT NOT NULL,
		created_by BIGINT UNSIGNED NOT NULL,
		deadline DATETIME NOT NULL,
		status VARCHAR(16) NOT NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		CONSTRAINT fk_polls_creator FOREIGN KEY (created_by) REFERENCES users(id)
	)`,
	`CREATE TABLE IF NOT EXISTS poll_options (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		poll_id BIGINT UNSIGNED NOT NULL,
		option_index INT NOT NULL,
		text VARCHAR(512) NOT NULL,
		votes INT NOT NULL DEFAULT 0,
		UNIQUE KEY uq_poll_options_index (poll_id, option_index),
		CONSTRAINT fk_poll_options_poll FOREIGN KEY (poll_id) REFERENCES polls(id)
	)`,
	`CREATE TABLE IF NOT EXISTS poll_votes (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		poll_id BIGINT UNSIGNED NOT NULL,
		user_id BIGINT UNSIGNED NOT NULL,
		option_index INT NOT NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE KEY uq_poll_votes_user (poll_id, user_id),
		CONSTRAINT fk_poll_votes_poll FOREIGN KEY (poll_id) REFERENCES polls(id),
		CONSTRAINT fk_poll_votes_user FOREIGN KEY (user_id) REFERENCES users(id)
	)`,
	`CREATE TABLE IF NOT EXISTS bills (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		user_id BIGINT UNSIGNED NOT NULL,
		title VARCHAR(255) NOT NULL,
		category VARCHAR(32) NOT NULL,
		amount_cents INT UNSIGNED NOT NULL,
		due_date DATETIME NOT NULL,
		status VARCHAR(16) NOT NULL,
		period CHAR(7) NULL,
		paid_at DATETIME NULL,
		payment_method VARCHAR(64) NULL,
		transaction_id VARCHAR(128) NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		UNIQUE KEY uq_bills_period (user_id, period, category),
		CONSTRAINT fk_bills_user FOREIGN KEY (user_id) REFERENCES users(id)
	)`,
	`CREATE TABLE IF NOT EXISTS complaints (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		user_id BIGINT UNSIGNED NOT NULL,
		title VARCHAR(255) NOT NULL,
		description TEXT NOT NULL,
		category VARCHAR(64) NOT NULL DEFAULT '',
		status VARCHAR(16) NOT NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		CONSTRAINT fk_complaints_user FOREIGN KEY (user_id) REFERENCES users(id)
	)`,
	`CREATE TABLE IF NOT EXISTS notices (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		title VARCHAR(255) NOT NULL,
		body TEXT NOT NULL,
		posted_by BIGINT UNSIGNED NOT NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		CONSTRAINT fk_notices_user FOREIGN KEY (posted_by) REFERENCES users(id)
	)`,
}

// EnsureSchema applies the DDL statements in order. Every statement
// is idempotent (CREATE TABLE IF NOT EXISTS), so calling it on an
// existing database is safe.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range Statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
