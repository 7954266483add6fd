package session

import (
	"testing"
	"time"
)

// flakyStore is a tier whose availability can be toggled.
type flakyStore struct {
	*MemoryStore
	name string
	up   bool
}

func (s *flakyStore) Name() string    { return s.name }
func (s *flakyStore) Available() bool { return s.up }

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore()

	rec, err := store.Get("missing")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if rec != nil {
		t.Fatal("Get(missing) should return nil record")
	}

	want := &Record{Token: "tok-1", LoginTime: time.Now()}
	if err := store.Put(want); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	rec, err = store.Get("tok-1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if rec == nil || rec.Token != "tok-1" {
		t.Fatalf("Get() = %+v", rec)
	}

	// The returned record is a copy; mutating it must not leak back.
	rec.LoginTime = rec.LoginTime.Add(time.Hour)
	again, _ := store.Get("tok-1")
	if !again.LoginTime.Equal(want.LoginTime) {
		t.Error("Get() should return a copy of the stored record")
	}

	if err := store.Delete("tok-1"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if rec, _ := store.Get("tok-1"); rec != nil {
		t.Error("record survived Delete()")
	}
}

func TestTieredLookupRestoresHigherTiers(t *testing.T) {
	primary := NewMemoryStore()
	fallback := NewMemoryStore()
	tiered := NewTiered(primary, fallback)

	rec := &Record{Token: "tok-2", LoginTime: time.Now()}
	if err := fallback.Put(rec); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	got, err := tiered.Lookup("tok-2")
	if err != nil {
		t.Fatalf("Lookup() error = %v", err)
	}
	if got == nil || got.Token != "tok-2" {
		t.Fatalf("Lookup() = %+v", got)
	}

	// The hit in the lower tier is replicated into the primary.
	restored, _ := primary.Get("tok-2")
	if restored == nil {
		t.Error("Lookup() did not restore the record to the primary tier")
	}
}

func TestTieredSkipsUnavailableTiers(t *testing.T) {
	down := &flakyStore{MemoryStore: NewMemoryStore(), name: "down", up: false}
	up := NewMemoryStore()
	tiered := NewTiered(down, up)

	rec := &Record{Token: "tok-3", LoginTime: time.Now()}
	if err := tiered.Put(rec); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	// The unavailable tier never saw the write.
	if r, _ := down.MemoryStore.Get("tok-3"); r != nil {
		t.Error("Put() wrote to an unavailable tier")
	}

	got, err := tiered.Lookup("tok-3")
	if err != nil {
		t.Fatalf("Lookup() error = %v", err)
	}
	if got == nil {
		t.Fatal("Lookup() missed the available tier")
	}

	// Once the tier comes back, deletes reach it too.
	down.up = true
	_ = down.Put(rec)
	if err := tiered.Delete("tok-3"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if r, _ := down.MemoryStore.Get("tok-3"); r != nil {
		t.Error("Delete() skipped a tier that became available")
	}
	if r, _ := up.Get("tok-3"); r != nil {
		t.Error("Delete() skipped the primary tier")
	}
}

func TestTieredLookupMiss(t *testing.T) {
	tiered := NewTiered(NewMemoryStore())
	rec, err := tiered.Lookup("never-stored")
	if err != nil {
		t.Fatalf("Lookup() error = %v", err)
	}
	if rec != nil {
		t.Errorf("Lookup() = %+v, want nil", rec)
	}
}
