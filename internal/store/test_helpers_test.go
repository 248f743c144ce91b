package store

import (
	"context"
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "history.db")
	db, err := OpenDB(dbPath)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})
	return NewStore(db)
}

func mustSaveClip(t *testing.T, store *Store, in SaveClipInput) Clip {
	t.Helper()
	clip, err := store.SaveClip(context.Background(), in)
	if err != nil {
		t.Fatalf("save clip: %v", err)
	}
	return clip
}
