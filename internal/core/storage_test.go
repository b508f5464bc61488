package core

import (
	"path/filepath"
	"testing"
)

func TestOpenBackendDefaultsToFilesystem(t *testing.T) {
	t.Setenv("LIBRARYCORE_STORAGE_DRIVER", "")
	t.Setenv("LIBRARYCORE_DATA_DIR", t.TempDir())
	backend, err := OpenBackend()
	if err != nil {
		t.Fatalf("open backend: %v", err)
	}
	defer func() { _ = backend.Close() }()
	if _, ok, err := backend.Bucket("library_data").Load(); err != nil || ok {
		t.Fatalf("fresh fs bucket: ok=%v err=%v", ok, err)
	}
}

func TestOpenBackendMemory(t *testing.T) {
	t.Setenv("LIBRARYCORE_STORAGE_DRIVER", "memory")
	backend, err := OpenBackend()
	if err != nil {
		t.Fatalf("open backend: %v", err)
	}
	bucket := backend.Bucket("library_data")
	if err := bucket.Save([]byte("[]")); err != nil {
		t.Fatalf("save: %v", err)
	}
	payload, ok, err := bucket.Load()
	if err != nil || !ok || string(payload) != "[]" {
		t.Fatalf("load: payload=%q ok=%v err=%v", payload, ok, err)
	}
}

func TestOpenBackendSQLite(t *testing.T) {
	t.Setenv("LIBRARYCORE_STORAGE_DRIVER", "sqlite")
	t.Setenv("LIBRARYCORE_SQLITE_PATH", filepath.Join(t.TempDir(), "state.db"))
	backend, err := OpenBackend()
	if err != nil {
		t.Fatalf("open backend: %v", err)
	}
	defer func() { _ = backend.Close() }()
	if err := backend.Bucket("staff_data").Save([]byte(`[{"id":1}]`)); err != nil {
		t.Fatalf("save: %v", err)
	}
}

func TestOpenBackendUnknownDriver(t *testing.T) {
	t.Setenv("LIBRARYCORE_STORAGE_DRIVER", "etcd")
	if _, err := OpenBackend(); err == nil {
		t.Fatalf("expected error for unknown driver")
	}
}
