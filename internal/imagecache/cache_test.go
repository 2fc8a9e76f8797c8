package imagecache

import (
	"bytes"
	"path/filepath"
	"testing"
)

func TestPutAndGet(t *testing.T) {
	cache := New(filepath.Join(t.TempDir(), "images"), nil)
	payload := []byte{0xFF, 0xD8, 0xFF, 0xE0}

	if _, ok := cache.Get("/abc123.jpg"); ok {
		t.Error("Get should miss before Put")
	}
	if cache.Has("/abc123.jpg") {
		t.Error("Has should be false before Put")
	}

	if err := cache.Put("/abc123.jpg", payload); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, ok := cache.Get("/abc123.jpg")
	if !ok {
		t.Fatal("Get missed after Put")
	}
	if !bytes.Equal(got, payload) {
		t.Errorf("Get = %v, want %v", got, payload)
	}
	if !cache.Has("/abc123.jpg") {
		t.Error("Has should be true after Put")
	}
}

func TestPutIsWriteOnce(t *testing.T) {
	cache := New(filepath.Join(t.TempDir(), "images"), nil)

	if err := cache.Put("/poster.jpg", []byte("original")); err != nil {
		t.Fatal(err)
	}
	if err := cache.Put("/poster.jpg", []byte("replacement")); err != nil {
		t.Fatal(err)
	}

	got, ok := cache.Get("/poster.jpg")
	if !ok || string(got) != "original" {
		t.Errorf("Get = %q ok=%v, want original content kept", got, ok)
	}
}

func TestKeyIsDeterministic(t *testing.T) {
	if Key("/abc123.jpg") != Key("/abc123.jpg") {
		t.Error("identical paths must share a key")
	}
	if Key("/abc123.jpg") == Key("/def456.jpg") {
		t.Error("distinct paths should not collide")
	}
	if Key(" /abc123.jpg ") != Key("/abc123.jpg") {
		t.Error("surrounding whitespace should not change the key")
	}
}

func TestEmptyPath(t *testing.T) {
	cache := New(filepath.Join(t.TempDir(), "images"), nil)
	if err := cache.Put("", []byte("x")); err == nil {
		t.Error("Put with empty path should fail")
	}
	if _, ok := cache.Get(""); ok {
		t.Error("Get with empty path should miss")
	}
}
