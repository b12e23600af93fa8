package device

import (
	"testing"

	"github.com/MiluneSadakaChrispinus/househunter/domain"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStore_RoleRoundTrip(t *testing.T) {
	store := openStore(t)

	role, found, err := store.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if found || role != domain.RoleTenant {
		t.Errorf("fresh store Load() = %q, %v; want tenant default, not found", role, found)
	}

	if err := store.Save(domain.RoleLandlord); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	role, found, err = store.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !found || role != domain.RoleLandlord {
		t.Errorf("Load() after save = %q, %v", role, found)
	}

	if err := store.Clear(); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	_, found, err = store.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if found {
		t.Error("role survived Clear()")
	}
}

func TestStore_LoadNormalizesUnknownRole(t *testing.T) {
	store := openStore(t)

	if err := store.Save(domain.Role("admin")); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	role, _, err := store.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if role != domain.RoleTenant {
		t.Errorf("Load() = %q, want unknown roles normalized to tenant", role)
	}
}

func TestStore_InstallIDStable(t *testing.T) {
	dir := t.TempDir()
	store, err := Open(dir)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	first, err := store.InstallID()
	if err != nil {
		t.Fatalf("InstallID() error = %v", err)
	}
	if first == "" {
		t.Fatal("InstallID() returned empty")
	}
	second, err := store.InstallID()
	if err != nil {
		t.Fatalf("InstallID() error = %v", err)
	}
	if second != first {
		t.Errorf("InstallID() changed within one open: %q vs %q", first, second)
	}
	store.Close()

	// The id survives reopening the database.
	reopened, err := Open(dir)
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	defer reopened.Close()
	third, err := reopened.InstallID()
	if err != nil {
		t.Fatalf("InstallID() error = %v", err)
	}
	if third != first {
		t.Errorf("InstallID() changed across reopen: %q vs %q", first, third)
	}
}
