package repositories

import (
	"errors"
	"sync"
	"time"

	"subtitle-translator/internal/domain/entities"

	"github.com/google/uuid"
)

var ErrTaskNotFound = errors.New("task not found")

// InMemoryTaskRepository keeps the authoritative task set for the lifetime of
// the process. Mutations run under the lock, reads hand out deep copies.
type InMemoryTaskRepository struct {
	mu   sync.RWMutex
	data map[string]*entities.Task
}

func NewInMemoryTaskRepository() *InMemoryTaskRepository {
	return &InMemoryTaskRepository{
		data: make(map[string]*entities.Task),
	}
}

func (r *InMemoryTaskRepository) Create(filename, sourcePath string) (entities.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	task := &entities.Task{
		ID:         uuid.New().String(),
		Filename:   filename,
		SourcePath: sourcePath,
		State:      entities.StateUploaded,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	r.data[task.ID] = task
	return task.Clone(), nil
}

func (r *InMemoryTaskRepository) Get(id string) (entities.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	task, exists := r.data[id]
	if !exists {
		return entities.Task{}, ErrTaskNotFound
	}
	return task.Clone(), nil
}

// Update applies mutate atomically. If mutate returns an error the task is
// left untouched and the error is returned as-is.
func (r *InMemoryTaskRepository) Update(id string, mutate func(*entities.Task) error) (entities.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	task, exists := r.data[id]
	if !exists {
		return entities.Task{}, ErrTaskNotFound
	}

	scratch := task.Clone()
	if err := mutate(&scratch); err != nil {
		return entities.Task{}, err
	}
	scratch.ID = task.ID // task identity is immutable
	scratch.UpdatedAt = time.Now()
	r.data[id] = &scratch
	return scratch.Clone(), nil
}

func (r *InMemoryTaskRepository) List() ([]entities.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tasks := make([]entities.Task, 0, len(r.data))
	for _, task := range r.data {
		tasks = append(tasks, task.Clone())
	}
	return tasks, nil
}
