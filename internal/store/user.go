package store

import (
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"taskhive/internal/models"
)

type UserStore struct {
	db *sql.DB
}

func NewUserStore(db *sql.DB) *UserStore {
	return &UserStore{db: db}
}

// Create inserts a new user. The email must already be trimmed and
// lowercased by the caller; the unique index on lower(email) backstops it.
func (s *UserStore) Create(name, email, passwordHash, role string) (models.User, error) {
	var user models.User
	err := s.db.QueryRow(
		`INSERT INTO users (name, email, password, role)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, name, email, role, created_at`,
		name, email, passwordHash, role,
	).Scan(&user.ID, &user.Name, &user.Email, &user.Role, &user.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return models.User{}, ErrEmailTaken
		}
		return models.User{}, err
	}
	return user, nil
}

// FindByEmail fetches a user including the password hash, for login only.
func (s *UserStore) FindByEmail(email string) (models.User, error) {
	var user models.User
	err := s.db.QueryRow(
		`SELECT id, name, email, password, role, created_at
		 FROM users WHERE email = $1`,
		email,
	).Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.Role, &user.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrNotFound
	}
	if err != nil {
		return models.User{}, err
	}
	return user, nil
}

// ListAll returns every user without the password hash, for the admin view.
func (s *UserStore) ListAll() ([]models.User, error) {
	rows, err := s.db.Query(
		`SELECT id, name, email, role, created_at FROM users ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		var user models.User
		if err := rows.Scan(&user.ID, &user.Name, &user.Email, &user.Role, &user.CreatedAt); err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}
