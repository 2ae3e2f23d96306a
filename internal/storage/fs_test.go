package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func testFS(t *testing.T) *FS {
	t.Helper()
	fs, err := NewFS(t.TempDir())
	if err != nil {
		t.Fatalf("NewFS: %v", err)
	}
	return fs
}

func TestReadMissingCollection(t *testing.T) {
	fs := testFS(t)
	_, err := fs.Read(KeyEvents)
	if !os.IsNotExist(err) {
		t.Fatalf("err = %v, want os.ErrNotExist", err)
	}
	if fs.Exists(KeyEvents) {
		t.Error("Exists = true for missing collection")
	}
}

func TestWriteRead(t *testing.T) {
	fs := testFS(t)
	want := []byte(`[{"id":"event-1"}]`)
	if err := fs.Write(KeyEvents, want); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, err := fs.Read(KeyEvents)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if string(got) != string(want) {
		t.Errorf("Read = %s, want %s", got, want)
	}
	if !fs.Exists(KeyEvents) {
		t.Error("Exists = false after write")
	}
}

func TestWriteLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	fs, err := NewFS(dir)
	if err != nil {
		t.Fatalf("NewFS: %v", err)
	}
	if err := fs.Write(KeyProfile, []byte(`{}`)); err != nil {
		t.Fatalf("Write: %v", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != "profile.json" {
		t.Errorf("dir entries = %v, want just profile.json", entries)
	}
}

func TestInvalidKeys(t *testing.T) {
	fs := testFS(t)
	for _, key := range []string{"", "..", "a/b", `a\b`, "../escape"} {
		if err := fs.Write(key, []byte("{}")); err == nil {
			t.Errorf("Write(%q) accepted an invalid key", key)
		}
		if _, err := fs.Read(key); err == nil {
			t.Errorf("Read(%q) accepted an invalid key", key)
		}
	}
}

func TestNewFSRejectsFiles(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "plain")
	if err := os.WriteFile(file, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewFS(file); err == nil {
		t.Error("NewFS accepted a plain file as root")
	}
}
