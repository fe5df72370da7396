package repositories

import "subtitle-translator/internal/domain/entities"

// TaskRepository is the authoritative in-memory registry of tasks.
// All reads return snapshots; Update applies its mutation atomically and
// concurrent updates on the same id are serialized.
type TaskRepository interface {
	Create(filename, sourcePath string) (entities.Task, error)
	Get(id string) (entities.Task, error)
	Update(id string, mutate func(*entities.Task) error) (entities.Task, error)
	List() ([]entities.Task, error)
}
