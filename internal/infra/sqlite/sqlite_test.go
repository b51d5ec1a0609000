package sqlite

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/forgeflow/forgeflow/internal/domain"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	dir := t.TempDir()
	db, err := Open(dir)
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func testTask(id string) domain.TaskRecord {
	return domain.TaskRecord{
		ID:          id,
		Title:       "Set up database schema",
		Description: "initial migration",
		Priority:    domain.PriorityMedium,
		Status:      domain.TaskPending,
		CreatedAt:   time.Unix(1_700_000_000, 0).UTC(),
	}
}

// ─── Database Lifecycle ─────────────────────────────────────────────────────

func TestOpen_CreatesDatabase(t *testing.T) {
	dir := t.TempDir()
	db, err := Open(dir)
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	defer db.Close()

	if _, err := os.Stat(filepath.Join(dir, "tasks.db")); os.IsNotExist(err) {
		t.Error("tasks.db should exist")
	}
}

func TestOpen_Ping(t *testing.T) {
	db := newTestDB(t)
	if err := db.Ping(); err != nil {
		t.Fatalf("Ping() error: %v", err)
	}
}

// ─── Task CRUD ──────────────────────────────────────────────────────────────

func TestInsertTask_Get(t *testing.T) {
	db := newTestDB(t)
	task := testTask("t1")

	if err := db.InsertTask(task); err != nil {
		t.Fatalf("InsertTask() error: %v", err)
	}

	got, err := db.GetTask("t1")
	if err != nil {
		t.Fatalf("GetTask() error: %v", err)
	}
	if *got != task {
		t.Errorf("GetTask() = %+v, want %+v", *got, task)
	}
}

func TestInsertTask_Duplicate(t *testing.T) {
	db := newTestDB(t)
	task := testTask("t1")

	if err := db.InsertTask(task); err != nil {
		t.Fatalf("InsertTask() error: %v", err)
	}
	if err := db.InsertTask(task); !errors.Is(err, domain.ErrTaskExists) {
		t.Errorf("second InsertTask() = %v, want ErrTaskExists", err)
	}
}

func TestGetTask_NotFound(t *testing.T) {
	db := newTestDB(t)
	if _, err := db.GetTask("missing"); !errors.Is(err, domain.ErrTaskNotFound) {
		t.Errorf("GetTask(missing) = %v, want ErrTaskNotFound", err)
	}
}

func TestListTasks_ByStatus(t *testing.T) {
	db := newTestDB(t)

	pending := testTask("t1")
	done := testTask("t2")
	done.Status = domain.TaskCompleted
	for _, task := range []domain.TaskRecord{pending, done} {
		if err := db.InsertTask(task); err != nil {
			t.Fatalf("InsertTask(%s) error: %v", task.ID, err)
		}
	}

	got, err := db.ListTasks(domain.TaskPending)
	if err != nil {
		t.Fatalf("ListTasks() error: %v", err)
	}
	if len(got) != 1 || got[0].ID != "t1" {
		t.Errorf("ListTasks(pending) = %+v, want [t1]", got)
	}

	all, err := db.ListTasks("")
	if err != nil {
		t.Fatalf("ListTasks(all) error: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("ListTasks(all) returned %d tasks, want 2", len(all))
	}
}

func TestListTasks_StableOrder(t *testing.T) {
	db := newTestDB(t)

	// Same created_at: order must fall back to ID.
	for _, id := range []string{"b", "a", "c"} {
		if err := db.InsertTask(testTask(id)); err != nil {
			t.Fatalf("InsertTask(%s) error: %v", id, err)
		}
	}

	got, err := db.ListTasks("")
	if err != nil {
		t.Fatalf("ListTasks() error: %v", err)
	}
	for i, want := range []string{"a", "b", "c"} {
		if got[i].ID != want {
			t.Errorf("ListTasks()[%d].ID = %s, want %s", i, got[i].ID, want)
		}
	}
}

func TestUpdateTaskStatus(t *testing.T) {
	db := newTestDB(t)
	if err := db.InsertTask(testTask("t1")); err != nil {
		t.Fatalf("InsertTask() error: %v", err)
	}

	if err := db.UpdateTaskStatus("t1", domain.TaskCompleted); err != nil {
		t.Fatalf("UpdateTaskStatus() error: %v", err)
	}

	got, err := db.GetTask("t1")
	if err != nil {
		t.Fatalf("GetTask() error: %v", err)
	}
	if got.Status != domain.TaskCompleted {
		t.Errorf("Status = %s, want completed", got.Status)
	}
}

func TestUpdateTaskStatus_NotFound(t *testing.T) {
	db := newTestDB(t)
	if err := db.UpdateTaskStatus("missing", domain.TaskFailed); !errors.Is(err, domain.ErrTaskNotFound) {
		t.Errorf("UpdateTaskStatus(missing) = %v, want ErrTaskNotFound", err)
	}
}

func TestDeleteTask(t *testing.T) {
	db := newTestDB(t)
	if err := db.InsertTask(testTask("t1")); err != nil {
		t.Fatalf("InsertTask() error: %v", err)
	}

	if err := db.DeleteTask("t1"); err != nil {
		t.Fatalf("DeleteTask() error: %v", err)
	}
	if _, err := db.GetTask("t1"); !errors.Is(err, domain.ErrTaskNotFound) {
		t.Errorf("GetTask after delete = %v, want ErrTaskNotFound", err)
	}
	if err := db.DeleteTask("t1"); !errors.Is(err, domain.ErrTaskNotFound) {
		t.Errorf("second DeleteTask = %v, want ErrTaskNotFound", err)
	}
}
