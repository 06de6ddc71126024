package store

import (
	"database/sql"
	"errors"

	"taskhive/internal/models"
)

type TaskStore struct {
	db *sql.DB
}

func NewTaskStore(db *sql.DB) *TaskStore {
	return &TaskStore{db: db}
}

// Create inserts a task owned by userID with status forced to pending.
func (s *TaskStore) Create(userID int, title, description string) (models.Task, error) {
	var task models.Task
	err := s.db.QueryRow(
		`INSERT INTO tasks (user_id, title, description, status)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, user_id, title, description, status, created_at`,
		userID, title, description, models.StatusPending,
	).Scan(&task.ID, &task.UserID, &task.Title, &task.Description, &task.Status, &task.CreatedAt)
	if err != nil {
		return models.Task{}, err
	}
	return task, nil
}

// ListByOwner returns all tasks owned by userID, newest first.
func (s *TaskStore) ListByOwner(userID int) ([]models.Task, error) {
	rows, err := s.db.Query(
		`SELECT id, user_id, title, description, status, created_at
		 FROM tasks WHERE user_id = $1
		 ORDER BY created_at DESC, id DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanTasks(rows)
}

// FindOwned looks a task up by id AND owner in one predicate, so a missing
// task and another user's task are the same ErrNotFound.
func (s *TaskStore) FindOwned(taskID, userID int) (models.Task, error) {
	var task models.Task
	err := s.db.QueryRow(
		`SELECT id, user_id, title, description, status, created_at
		 FROM tasks WHERE id = $1 AND user_id = $2`,
		taskID, userID,
	).Scan(&task.ID, &task.UserID, &task.Title, &task.Description, &task.Status, &task.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Task{}, ErrNotFound
	}
	if err != nil {
		return models.Task{}, err
	}
	return task, nil
}

// Update writes the mutable fields back. Last write wins; there is no
// version column.
func (s *TaskStore) Update(task models.Task) error {
	_, err := s.db.Exec(
		`UPDATE tasks SET title = $1, description = $2, status = $3 WHERE id = $4`,
		task.Title, task.Description, task.Status, task.ID,
	)
	return err
}

// Delete removes a task by id with no owner filter; the admin gate happens
// in policy before this is reached.
func (s *TaskStore) Delete(taskID int) error {
	res, err := s.db.Exec(`DELETE FROM tasks WHERE id = $1`, taskID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// ListAllWithOwners returns every task joined with its owner's name and
// email for the admin view. The owner's hash is never selected.
func (s *TaskStore) ListAllWithOwners() ([]models.AdminTask, error) {
	rows, err := s.db.Query(
		`SELECT t.id, t.user_id, t.title, t.description, t.status, t.created_at,
		        u.id, u.name, u.email
		 FROM tasks t
		 JOIN users u ON u.id = t.user_id
		 ORDER BY t.created_at DESC, t.id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := []models.AdminTask{}
	for rows.Next() {
		var task models.AdminTask
		err := rows.Scan(
			&task.ID, &task.UserID, &task.Title, &task.Description, &task.Status, &task.CreatedAt,
			&task.Owner.ID, &task.Owner.Name, &task.Owner.Email,
		)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	return tasks, rows.Err()
}

func scanTasks(rows *sql.Rows) ([]models.Task, error) {
	tasks := []models.Task{}
	for rows.Next() {
		var task models.Task
		err := rows.Scan(&task.ID, &task.UserID, &task.Title, &task.Description, &task.Status, &task.CreatedAt)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	return tasks, rows.Err()
}
