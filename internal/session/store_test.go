package session

import "testing"

func TestStoreRoundTrip(t *testing.T) {
	store := NewStore(t.TempDir())

	if got := store.Token(); got != "" {
		t.Fatalf("Expected empty token before save, got %q", got)
	}
	if store.User() != nil {
		t.Fatal("Expected nil user before save")
	}

	user := &User{ID: "u1", Name: "Admin", Email: "admin@example.com", Phone: "0501234567"}
	if err := store.Save("tok-abc", user); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	if got := store.Token(); got != "tok-abc" {
		t.Errorf("Expected token %q, got %q", "tok-abc", got)
	}
	got := store.User()
	if got == nil {
		t.Fatal("Expected user after save")
	}
	if got.Name != user.Name || got.Email != user.Email || got.Phone != user.Phone {
		t.Errorf("Expected user %+v, got %+v", user, got)
	}
}

func TestStoreClear(t *testing.T) {
	store := NewStore(t.TempDir())

	if err := store.Save("tok", &User{Name: "Admin"}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := store.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if got := store.Token(); got != "" {
		t.Errorf("Expected empty token after clear, got %q", got)
	}
	if store.User() != nil {
		t.Error("Expected nil user after clear")
	}

	// Clearing an already-empty store is not an error.
	if err := store.Clear(); err != nil {
		t.Errorf("Second clear failed: %v", err)
	}
}

func TestStoreSaveWithoutUser(t *testing.T) {
	store := NewStore(t.TempDir())
	if err := store.Save("tok", nil); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if got := store.Token(); got != "tok" {
		t.Errorf("Expected token %q, got %q", "tok", got)
	}
	if store.User() != nil {
		t.Error("Expected nil user when none was saved")
	}
}
