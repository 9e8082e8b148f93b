package store

import (
	"testing"
	"time"

	"github.com/tgienger/crmdash/internal/models"
)

func TestNewTaskStampsIdentity(t *testing.T) {
	now := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)
	task := NewTask(models.Task{Title: "Call Bob"}, now)

	if task.ID == "" {
		t.Fatal("Expected an id")
	}
	if !task.CreatedAt.Equal(now) || !task.UpdatedAt.Equal(now) {
		t.Errorf("Expected both timestamps at %v, got %v / %v", now, task.CreatedAt, task.UpdatedAt)
	}
	if task.Priority != models.PriorityMedium || task.Status != models.StatusPending || task.Type != models.TypeFollowUp {
		t.Errorf("Unexpected defaults %s/%s/%s", task.Priority, task.Status, task.Type)
	}

	other := NewTask(models.Task{Title: "Call Bob"}, now)
	if other.ID == task.ID {
		t.Error("Expected unique ids")
	}
}

func TestReviseKeepsIdentity(t *testing.T) {
	created := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	existing := NewTask(models.Task{Title: "Call Bob"}, created)

	edited := existing
	edited.ID = "tampered"
	edited.Title = "Call Bob again"
	later := created.Add(2 * time.Hour)

	revised := Revise(existing, edited, later)
	if revised.ID != existing.ID {
		t.Errorf("Expected id %s, got %s", existing.ID, revised.ID)
	}
	if !revised.CreatedAt.Equal(created) || !revised.UpdatedAt.Equal(later) {
		t.Errorf("Unexpected timestamps %v / %v", revised.CreatedAt, revised.UpdatedAt)
	}

	// A clock that went backwards never produces UpdatedAt < CreatedAt
	earlier := Revise(existing, edited, created.Add(-time.Hour))
	if earlier.UpdatedAt.Before(earlier.CreatedAt) {
		t.Error("Expected UpdatedAt >= CreatedAt")
	}
}

func TestTaskStoreMutations(t *testing.T) {
	now := time.Now()
	s := NewTaskStore()
	a := NewTask(models.Task{Title: "A"}, now)
	b := NewTask(models.Task{Title: "B"}, now)
	s.Add(a)
	s.Add(b)

	if tasks := s.Tasks(); len(tasks) != 2 || tasks[0].ID != a.ID || tasks[1].ID != b.ID {
		t.Fatalf("Expected [A B] in insertion order, got %+v", tasks)
	}

	a.Title = "A2"
	s.Update(a)
	if got, ok := s.Get(a.ID); !ok || got.Title != "A2" {
		t.Errorf("Expected updated title A2, got %+v", got)
	}

	s.Update(models.Task{ID: "missing", Title: "ghost"})
	s.Delete("missing")
	if n := len(s.Tasks()); n != 2 {
		t.Errorf("Expected unknown ids to be ignored, got %d tasks", n)
	}

	s.Delete(a.ID)
	if _, ok := s.Get(a.ID); ok {
		t.Error("Expected A to be deleted")
	}
	if n := len(s.Tasks()); n != 1 {
		t.Errorf("Expected 1 task, got %d", n)
	}
}

func TestTasksReturnsCopy(t *testing.T) {
	s := NewTaskStore()
	s.Add(NewTask(models.Task{Title: "A"}, time.Now()))

	tasks := s.Tasks()
	tasks[0].Title = "changed"

	if s.Tasks()[0].Title != "A" {
		t.Error("Expected the store to be unaffected by changes to a snapshot")
	}
}
