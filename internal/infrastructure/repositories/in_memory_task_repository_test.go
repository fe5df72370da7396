package repositories

import (
	"fmt"
	"sync"
	"testing"

	"subtitle-translator/internal/domain/entities"
)

func TestCreateAssignsUniqueIDs(t *testing.T) {
	repo := NewInMemoryTaskRepository()

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		task, err := repo.Create("a.mkv", "/tmp/a.mkv")
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		if task.State != entities.StateUploaded {
			t.Fatalf("new task state = %s, want uploaded", task.State)
		}
		if seen[task.ID] {
			t.Fatalf("duplicate id %s", task.ID)
		}
		seen[task.ID] = true
	}
}

func TestGetUnknownID(t *testing.T) {
	repo := NewInMemoryTaskRepository()
	if _, err := repo.Get("nope"); err != ErrTaskNotFound {
		t.Fatalf("err = %v, want ErrTaskNotFound", err)
	}
	if _, err := repo.Update("nope", func(*entities.Task) error { return nil }); err != ErrTaskNotFound {
		t.Fatalf("err = %v, want ErrTaskNotFound", err)
	}
}

func TestUpdateAbortsOnMutationError(t *testing.T) {
	repo := NewInMemoryTaskRepository()
	task, _ := repo.Create("a.mkv", "/tmp/a.mkv")

	boom := fmt.Errorf("boom")
	_, err := repo.Update(task.ID, func(t *entities.Task) error {
		t.State = entities.StateCompleted
		return boom
	})
	if err != boom {
		t.Fatalf("err = %v, want the mutation error", err)
	}

	got, _ := repo.Get(task.ID)
	if got.State != entities.StateUploaded {
		t.Fatalf("failed mutation leaked: state = %s", got.State)
	}
}

func TestSnapshotsAreIsolated(t *testing.T) {
	repo := NewInMemoryTaskRepository()
	task, _ := repo.Create("a.mkv", "/tmp/a.mkv")

	updated, err := repo.Update(task.ID, func(t *entities.Task) error {
		t.Streams = []entities.StreamInfo{{Index: 0, CodecType: entities.CodecSubtitle, CodecName: "subrip"}}
		return nil
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	// mutating the returned snapshot must not touch the registry
	updated.Streams[0].CodecName = "mangled"
	updated.State = entities.StateFailed

	got, _ := repo.Get(task.ID)
	if got.Streams[0].CodecName != "subrip" || got.State != entities.StateUploaded {
		t.Fatal("snapshot mutation leaked into registry")
	}
}

func TestIdentityIsImmutable(t *testing.T) {
	repo := NewInMemoryTaskRepository()
	task, _ := repo.Create("a.mkv", "/tmp/a.mkv")

	updated, err := repo.Update(task.ID, func(t *entities.Task) error {
		t.ID = "hijacked"
		return nil
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.ID != task.ID {
		t.Fatalf("id changed to %s", updated.ID)
	}
	if _, err := repo.Get(task.ID); err != nil {
		t.Fatalf("task lost after id mutation attempt: %v", err)
	}
}

func TestConcurrentUpdatesAreSerialized(t *testing.T) {
	repo := NewInMemoryTaskRepository()
	task, _ := repo.Create("a.mkv", "/tmp/a.mkv")

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			repo.Update(task.ID, func(t *entities.Task) error {
				t.Progress++
				return nil
			})
		}()
	}
	wg.Wait()

	got, _ := repo.Get(task.ID)
	if got.Progress != 100 {
		t.Fatalf("progress = %d after 100 serialized increments, want 100", got.Progress)
	}
}
