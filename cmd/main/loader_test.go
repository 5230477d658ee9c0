package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/seliware/mocksite/pkg/render"
)

func TestFileLoader(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "page.html"), []byte("<p>hi</p>"), 0644); err != nil {
		t.Fatalf("failed to write template: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "..", "outside.html"), []byte("secret"), 0644); err != nil {
		t.Fatalf("failed to write outside file: %v", err)
	}
	loader := NewFileLoader(dir)

	t.Run("Load", func(t *testing.T) {
		doc, err := loader.Load("page.html")
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if doc != "<p>hi</p>" {
			t.Errorf("unexpected document %q", doc)
		}
	})

	t.Run("NotFound", func(t *testing.T) {
		_, err := loader.Load("absent.html")
		if !errors.Is(err, render.ErrTemplateNotFound) {
			t.Errorf("expected ErrTemplateNotFound, got %v", err)
		}
	})

	t.Run("TraversalStripped", func(t *testing.T) {
		// Path components are stripped, so this resolves inside the
		// template dir and reports not-found instead of leaking the file.
		_, err := loader.Load("../outside.html")
		if !errors.Is(err, render.ErrTemplateNotFound) {
			t.Errorf("expected ErrTemplateNotFound, got %v", err)
		}
	})
}
