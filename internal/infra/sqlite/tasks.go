package sqlite

import (
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/forgeflow/forgeflow/internal/domain"
)

// ─── Task Repository ────────────────────────────────────────────────────────

// InsertTask creates a new task record.
func (d *DB) InsertTask(task domain.TaskRecord) error {
	_, err := d.db.Exec(
		`INSERT INTO tasks (id, title, description, priority, status, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		task.ID, task.Title, task.Description,
		string(task.Priority), string(task.Status), task.CreatedAt.Unix(),
	)
	if err != nil && isUniqueViolation(err) {
		return domain.ErrTaskExists
	}
	return err
}

// GetTask retrieves a task by ID.
func (d *DB) GetTask(id string) (*domain.TaskRecord, error) {
	row := d.db.QueryRow(
		`SELECT id, title, description, priority, status, created_at
		 FROM tasks WHERE id = ?`, id,
	)
	t, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrTaskNotFound
	}
	return t, err
}

// ListTasks returns all tasks ordered by creation time then ID, so a
// scheduling pass always sees the same snapshot order. An empty status
// returns every task.
func (d *DB) ListTasks(status domain.TaskStatus) ([]domain.TaskRecord, error) {
	query := `SELECT id, title, description, priority, status, created_at
		 FROM tasks ORDER BY created_at, id`
	args := []any{}
	if status != "" {
		query = `SELECT id, title, description, priority, status, created_at
		 FROM tasks WHERE status = ? ORDER BY created_at, id`
		args = append(args, string(status))
	}

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []domain.TaskRecord
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *t)
	}
	return tasks, rows.Err()
}

// UpdateTaskStatus updates a task's lifecycle status.
func (d *DB) UpdateTaskStatus(id string, status domain.TaskStatus) error {
	res, err := d.db.Exec(`UPDATE tasks SET status = ? WHERE id = ?`, string(status), id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

// DeleteTask removes a task record.
func (d *DB) DeleteTask(id string) error {
	res, err := d.db.Exec(`DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

// scanner abstracts sql.Row and sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanTask(s scanner) (*domain.TaskRecord, error) {
	var t domain.TaskRecord
	var priority, status string
	var created int64
	if err := s.Scan(&t.ID, &t.Title, &t.Description, &priority, &status, &created); err != nil {
		return nil, err
	}
	t.Priority = domain.TaskPriority(priority)
	t.Status = domain.TaskStatus(status)
	t.CreatedAt = time.Unix(created, 0).UTC()
	return &t, nil
}

func isUniqueViolation(err error) bool {
	// modernc.org/sqlite reports constraint failures in the error text;
	// there is no exported sentinel to compare against.
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
