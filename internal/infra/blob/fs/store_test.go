package fs

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"librarycore/internal/blob/core"
)

func newStore(t *testing.T) *Store {
	t.Helper()
	store, err := New(filepath.Join(t.TempDir(), "archive"))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return store
}

func TestPutGetRoundTrip(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	info, err := store.Put(ctx, "exports/abc.json", strings.NewReader(`{"books": []}`), core.PutOptions{
		ContentType: "application/json",
		Metadata:    map[string]string{"export_id": "abc"},
	})
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if info.Key != "exports/abc.json" || info.Size != int64(len(`{"books": []}`)) {
		t.Fatalf("unexpected info: %+v", info)
	}
	if info.ETag == "" {
		t.Fatal("expected a content etag")
	}

	got, rc, err := store.Get(ctx, "exports/abc.json")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	defer rc.Close()
	body, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	if string(body) != `{"books": []}` {
		t.Fatalf("body = %q", body)
	}
	if got.ContentType != "application/json" || got.Metadata["export_id"] != "abc" {
		t.Fatalf("metadata not preserved: %+v", got)
	}
}

func TestPutRefusesOverwrite(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	if _, err := store.Put(ctx, "a.json", strings.NewReader("one"), core.PutOptions{}); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if _, err := store.Put(ctx, "a.json", strings.NewReader("two"), core.PutOptions{}); err == nil {
		t.Fatal("expected error overwriting existing key")
	}
}

func TestKeySanitization(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	for _, key := range []string{"", "  ", "../escape", "/absolute", "a/../../b"} {
		if _, err := store.Put(ctx, key, strings.NewReader("x"), core.PutOptions{}); err == nil {
			t.Errorf("Put(%q) should reject the key", key)
		}
	}
}

func TestHeadAndDelete(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	if _, err := store.Put(ctx, "doc.txt", strings.NewReader("hello"), core.PutOptions{ContentType: "text/plain"}); err != nil {
		t.Fatalf("Put: %v", err)
	}

	info, err := store.Head(ctx, "doc.txt")
	if err != nil {
		t.Fatalf("Head: %v", err)
	}
	if info.Size != 5 || info.ContentType != "text/plain" {
		t.Fatalf("unexpected head info: %+v", info)
	}

	removed, err := store.Delete(ctx, "doc.txt")
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if !removed {
		t.Fatal("expected Delete to report removal")
	}
	if _, err := store.Head(ctx, "doc.txt"); err == nil {
		t.Fatal("expected Head to fail after delete")
	}

	removed, err = store.Delete(ctx, "doc.txt")
	if err != nil {
		t.Fatalf("Delete absent: %v", err)
	}
	if removed {
		t.Fatal("expected Delete of absent key to report false")
	}
}

func TestListFiltersByPrefix(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	for _, key := range []string{"exports/one.json", "exports/two.json", "misc/readme.txt"} {
		if _, err := store.Put(ctx, key, strings.NewReader(key), core.PutOptions{}); err != nil {
			t.Fatalf("Put(%s): %v", key, err)
		}
	}

	infos, err := store.List(ctx, "exports/")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(infos) != 2 {
		t.Fatalf("len(List) = %d, want 2", len(infos))
	}
	if infos[0].Key != "exports/one.json" || infos[1].Key != "exports/two.json" {
		t.Fatalf("unexpected keys: %+v", infos)
	}
}

func TestNewCreatesRoot(t *testing.T) {
	root := filepath.Join(t.TempDir(), "nested", "archive")
	if _, err := New(root); err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := os.Stat(root); err != nil {
		t.Fatalf("root not created: %v", err)
	}
}
