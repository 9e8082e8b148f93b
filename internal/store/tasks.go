package store

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/tgienger/crmdash/internal/models"
)

// TaskStore holds tasks for the lifetime of the session
type TaskStore struct {
	mu    sync.RWMutex
	tasks []models.Task
}

func NewTaskStore() *TaskStore {
	return &TaskStore{}
}

// NewTask stamps a draft with a fresh id and creation time
func NewTask(draft models.Task, now time.Time) models.Task {
	draft.ID = uuid.NewString()
	draft.CreatedAt = now
	draft.UpdatedAt = now
	if draft.Priority == "" {
		draft.Priority = models.PriorityMedium
	}
	if draft.Status == "" {
		draft.Status = models.StatusPending
	}
	if draft.Type == "" {
		draft.Type = models.TypeFollowUp
	}
	return draft
}

// Revise applies edited fields to existing, keeping its identity
func Revise(existing, edited models.Task, now time.Time) models.Task {
	edited.ID = existing.ID
	edited.CreatedAt = existing.CreatedAt
	edited.UpdatedAt = now
	if edited.UpdatedAt.Before(edited.CreatedAt) {
		edited.UpdatedAt = edited.CreatedAt
	}
	return edited
}

// Add appends a task
func (s *TaskStore) Add(task models.Task) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = append(s.tasks, task)
}

// Update replaces the task with the same id; unknown ids are ignored
func (s *TaskStore) Update(task models.Task) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.tasks {
		if s.tasks[i].ID == task.ID {
			s.tasks[i] = task
			return
		}
	}
}

// Delete removes the task with id; unknown ids are ignored
func (s *TaskStore) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := make([]models.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	s.tasks = kept
}

// Get returns the task with id
func (s *TaskStore) Get(id string) (models.Task, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, t := range s.tasks {
		if t.ID == id {
			return t, true
		}
	}
	return models.Task{}, false
}

// Tasks returns a copy of the collection in insertion order
func (s *TaskStore) Tasks() []models.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Len returns the number of tasks
func (s *TaskStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tasks)
}
