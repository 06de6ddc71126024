package repository

import (
	"database/sql"
	"log"
	"strings"

	"taskhive/internal/models"
	"taskhive/pkg/crypto"
)

func CreateTableIfNotExists(db *sql.DB) {
	query := `
CREATE TABLE IF NOT EXISTS users (
    id SERIAL PRIMARY KEY,
    name VARCHAR(255) NOT NULL,
    email VARCHAR(255) NOT NULL,
    password VARCHAR(255) NOT NULL,
    role VARCHAR(32) NOT NULL DEFAULT 'user',
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE UNIQUE INDEX IF NOT EXISTS users_email_lower_idx ON users (lower(email));

CREATE TABLE IF NOT EXISTS tasks (
    id SERIAL PRIMARY KEY,
    user_id INT NOT NULL REFERENCES users (id),
    title VARCHAR(255) NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    status VARCHAR(32) NOT NULL DEFAULT 'pending',
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

	if _, err := db.Exec(query); err != nil {
		log.Fatalf("Error creating tables: %v", err)
	}
}

// SeedAdminUser upserts the one admin account from config. Registration
// through the API can never produce an admin, so this is the only path.
func SeedAdminUser(db *sql.DB, email, password string) {
	if email == "" || password == "" {
		return
	}
	email = strings.ToLower(strings.TrimSpace(email))

	hash, err := crypto.HashPassword(password)
	if err != nil {
		log.Fatalf("Error hashing admin password: %v", err)
	}

	_, err = db.Exec(
		`INSERT INTO users (name, email, password, role)
		 VALUES ('Admin', $1, $2, $3)
		 ON CONFLICT (lower(email)) DO UPDATE SET password = EXCLUDED.password, role = $3`,
		email, hash, models.RoleAdmin,
	)
	if err != nil {
		log.Fatalf("Error seeding admin user: %v", err)
	}
}

// DeleteAllTables drops everything; used by the test harness teardown.
func DeleteAllTables(db *sql.DB) {
	query := `
    DROP TABLE IF EXISTS tasks;
    DROP TABLE IF EXISTS users;
    `

	if _, err := db.Exec(query); err != nil {
		log.Fatalf("Error dropping tables: %v", err)
	}
}
