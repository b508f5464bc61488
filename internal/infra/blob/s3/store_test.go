package s3

import (
	"context"
	"io"
	"strings"
	"testing"

	"librarycore/internal/blob/core"
)

func TestMockStoreRoundTrip(t *testing.T) {
	store := NewMockForTests()
	ctx := context.Background()

	if store.Driver() != core.DriverS3 {
		t.Fatalf("Driver = %s, want %s", store.Driver(), core.DriverS3)
	}

	payload := `{"books": [], "readers": []}`
	info, err := store.Put(ctx, "exports/mock.json", strings.NewReader(payload), core.PutOptions{ContentType: "application/json"})
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if info.Key != "exports/mock.json" {
		t.Fatalf("info.Key = %q", info.Key)
	}

	got, rc, err := store.Get(ctx, "exports/mock.json")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	defer rc.Close()
	body, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	if string(body) != payload {
		t.Fatalf("body = %q, want %q", body, payload)
	}
	if got.ContentType != "application/json" {
		t.Fatalf("ContentType = %q", got.ContentType)
	}
}

func TestMockStorePutRefusesOverwrite(t *testing.T) {
	store := NewMockForTests()
	ctx := context.Background()

	if _, err := store.Put(ctx, "k", strings.NewReader("one"), core.PutOptions{}); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if _, err := store.Put(ctx, "k", strings.NewReader("two"), core.PutOptions{}); err == nil {
		t.Fatal("expected error on duplicate key")
	}
}

func TestMockStoreHeadAndDelete(t *testing.T) {
	store := NewMockForTests()
	ctx := context.Background()

	if _, err := store.Head(ctx, "absent"); err == nil {
		t.Fatal("expected Head of absent key to fail")
	}

	if _, err := store.Put(ctx, "doc", strings.NewReader("hello"), core.PutOptions{ContentType: "text/plain"}); err != nil {
		t.Fatalf("Put: %v", err)
	}
	info, err := store.Head(ctx, "doc")
	if err != nil {
		t.Fatalf("Head: %v", err)
	}
	if info.Size != 5 {
		t.Fatalf("Size = %d, want 5", info.Size)
	}

	removed, err := store.Delete(ctx, "doc")
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if !removed {
		t.Fatal("expected Delete to report removal")
	}
	if _, err := store.Head(ctx, "doc"); err == nil {
		t.Fatal("expected Head to fail after delete")
	}
}

func TestMockStoreListByPrefix(t *testing.T) {
	store := NewMockForTests()
	ctx := context.Background()

	for _, key := range []string{"exports/a.json", "exports/b.json", "other/c.json"} {
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
	if infos[0].Key != "exports/a.json" || infos[1].Key != "exports/b.json" {
		t.Fatalf("unexpected keys: %+v", infos)
	}
}
