package models

import (
	"time"
)

// Role values stored on a user. Anything registered through the public API
// gets RoleUser; admins only exist via the startup seed.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Task status values.
const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
)

type User struct {
	ID           int       `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

type Task struct {
	ID          int       `json:"id"`
	UserID      int       `json:"user_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

// TaskOwner is the denormalized owner info attached to tasks in the admin
// listing. Never carries the password hash.
type TaskOwner struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// AdminTask is a Task joined with its owner for GET /admin/tasks.
type AdminTask struct {
	Task
	Owner TaskOwner `json:"owner"`
}

func ValidStatus(status string) bool {
	switch status {
	case StatusPending, StatusCompleted:
		return true
	default:
		return false
	}
}
