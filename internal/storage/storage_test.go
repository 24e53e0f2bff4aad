package storage

import (
	"sync"
	"testing"
	"time"

	"github.com/planet-texas-2050/sites-stories/internal/models"
)

func TestGetOrCreate(t *testing.T) {
	store := New()

	if _, exists := store.Get("abc"); exists {
		t.Fatal("session should not exist yet")
	}

	created := store.GetOrCreate("abc")
	if created.ID != "abc" || created.CreatedAt.IsZero() {
		t.Errorf("unexpected session %+v", created)
	}

	again := store.GetOrCreate("abc")
	if !again.CreatedAt.Equal(created.CreatedAt) {
		t.Error("second call should return the existing session")
	}
}

func TestUpdateKeepsIdentity(t *testing.T) {
	store := New()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return base }
	store.GetOrCreate("abc")

	store.now = func() time.Time { return base.Add(time.Minute) }
	got := store.Update("abc", func(s models.Session) models.Session {
		s.ID = "hijacked"
		s.State.Selection.ImageID = "IMG-001"
		return s
	})

	if got.ID != "abc" {
		t.Errorf("ID must not change, got %s", got.ID)
	}
	if !got.CreatedAt.Equal(base) || !got.UpdatedAt.Equal(base.Add(time.Minute)) {
		t.Errorf("unexpected timestamps %+v", got)
	}
	stored, _ := store.Get("abc")
	if stored.State.Selection.ImageID != "IMG-001" {
		t.Errorf("update not stored: %+v", stored)
	}
}

func TestUpdateIsSerialized(t *testing.T) {
	store := New()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			store.Update("abc", func(s models.Session) models.Session {
				s.State.Selection.ImageID += "x"
				return s
			})
		}()
	}
	wg.Wait()

	got, _ := store.Get("abc")
	if len(got.State.Selection.ImageID) != 50 {
		t.Errorf("Expected 50 updates, got %d", len(got.State.Selection.ImageID))
	}
}

func TestExpire(t *testing.T) {
	store := New()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	store.now = func() time.Time { return base }
	store.GetOrCreate("old")
	store.now = func() time.Time { return base.Add(50 * time.Minute) }
	store.GetOrCreate("fresh")

	store.now = func() time.Time { return base.Add(time.Hour) }
	if removed := store.Expire(30 * time.Minute); removed != 1 {
		t.Errorf("Expected 1 session removed, got %d", removed)
	}
	if _, exists := store.Get("old"); exists {
		t.Error("old session should be gone")
	}
	if _, exists := store.Get("fresh"); !exists {
		t.Error("fresh session should remain")
	}
	if len(store.GetAll()) != 1 {
		t.Errorf("Expected 1 session left, got %d", len(store.GetAll()))
	}
}

func TestDelete(t *testing.T) {
	store := New()
	store.GetOrCreate("abc")
	store.Delete("abc")
	if _, exists := store.Get("abc"); exists {
		t.Error("session should be deleted")
	}
}
