package storage

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func openSQLite(t *testing.T) KV {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "nested", "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestKVImplementations(t *testing.T) {
	impls := []struct {
		name string
		open func(t *testing.T) KV
	}{
		{"sqlite", openSQLite},
		{"memory", func(*testing.T) KV { return NewMemory() }},
	}

	for _, impl := range impls {
		t.Run(impl.name, func(t *testing.T) {
			kv := impl.open(t)

			if _, err := kv.Get("missing"); !errors.Is(err, ErrNotFound) {
				t.Fatalf("expected ErrNotFound, got %v", err)
			}

			if err := kv.Set("b", "1"); err != nil {
				t.Fatalf("Set() failed: %v", err)
			}
			if err := kv.Set("a", "2"); err != nil {
				t.Fatalf("Set() failed: %v", err)
			}
			if err := kv.Set("b", "3"); err != nil {
				t.Fatalf("Set() upsert failed: %v", err)
			}

			v, err := kv.Get("b")
			if err != nil || v != "3" {
				t.Fatalf("expected upserted value 3, got %q err=%v", v, err)
			}

			keys, err := kv.Keys()
			if err != nil {
				t.Fatalf("Keys() failed: %v", err)
			}
			if len(keys) != 2 || keys[0] != "a" || keys[1] != "b" {
				t.Fatalf("expected [a b], got %v", keys)
			}

			if err := kv.Delete("a"); err != nil {
				t.Fatalf("Delete() failed: %v", err)
			}
			if err := kv.Delete("a"); err != nil {
				t.Fatalf("Delete() of missing key should succeed: %v", err)
			}
			if _, err := kv.Get("a"); !errors.Is(err, ErrNotFound) {
				t.Fatalf("expected ErrNotFound after delete, got %v", err)
			}
		})
	}
}

func TestStoreOpenClose(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if store.Path() != dbPath {
		t.Fatalf("expected path %q, got %q", dbPath, store.Path())
	}
	if err := store.Set("k", "v"); err != nil {
		t.Fatal(err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close() failed: %v", err)
	}

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Fatalf("Database file was not created")
	}

	reopened, err := Open(dbPath)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer reopened.Close()
	if v, err := reopened.Get("k"); err != nil || v != "v" {
		t.Fatalf("value did not persist: %q %v", v, err)
	}
}

func TestOpenInMemoryAndEmpty(t *testing.T) {
	store, err := Open(MemoryPath)
	if err != nil {
		t.Fatalf("Open(:memory:) failed: %v", err)
	}
	defer store.Close()
	if err := store.Set("x", "y"); err != nil {
		t.Fatal(err)
	}
	if v, _ := store.Get("x"); v != "y" {
		t.Fatalf("expected y, got %q", v)
	}

	if _, err := Open(""); err == nil {
		t.Fatalf("expected error for empty path")
	}
}

func TestSetLoggerAppliesCallerLevel(t *testing.T) {
	t.Cleanup(func() { SetLogger(nil) })

	tests := []struct {
		name  string
		level log.Level
		want  bool
	}{
		{"debug", log.DebugLevel, true},
		{"info", log.InfoLevel, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			l := log.New(&buf)
			l.SetLevel(tc.level)
			SetLogger(l)

			store, err := Open(filepath.Join(t.TempDir(), "log.db"))
			if err != nil {
				t.Fatal(err)
			}
			store.Close()

			got := strings.Contains(buf.String(), "opened")
			if got != tc.want {
				t.Fatalf("debug line logged=%v, want %v; output %q", got, tc.want, buf.String())
			}
			if tc.want && !strings.Contains(buf.String(), "storage") {
				t.Fatalf("expected storage prefix in %q", buf.String())
			}
		})
	}
}

func TestConnect(t *testing.T) {
	mem, err := Connect(MemoryPath)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := mem.(*Memory); !ok {
		t.Fatalf("expected *Memory for %s, got %T", MemoryPath, mem)
	}
	if mem.Path() != MemoryPath {
		t.Fatalf("expected path %s, got %s", MemoryPath, mem.Path())
	}
	if err := mem.Set("k", "v"); err != nil {
		t.Fatal(err)
	}
	if err := mem.Close(); err != nil {
		t.Fatal(err)
	}
	if _, err := mem.Get("k"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Close should drop values, got %v", err)
	}

	path := filepath.Join(t.TempDir(), "c.db")
	disk, err := Connect(path)
	if err != nil {
		t.Fatal(err)
	}
	defer disk.Close()
	if _, ok := disk.(*Store); !ok {
		t.Fatalf("expected *Store for %s, got %T", path, disk)
	}
}
