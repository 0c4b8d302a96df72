package service

import (
	"path/filepath"
	"platodropbox/internal/core/domain/models"
	"testing"

	"github.com/spf13/afero"
)

func TestShouldFetch(t *testing.T) {
	fs := afero.NewMemMapFs()
	save := "/books"
	if err := afero.WriteFile(fs, filepath.Join(save, "have.epub"), nil, 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		entry   models.RemoteEntry
		verdict Verdict
		path    string
	}{
		{"new epub", models.RemoteEntry{Name: "new.epub"}, Fetch, filepath.Join(save, "new.epub")},
		{"uppercase extension", models.RemoteEntry{Name: "NEW.EpUb"}, Fetch, filepath.Join(save, "NEW.EpUb")},
		{"existing empty file", models.RemoteEntry{Name: "have.epub"}, SkipExisting, filepath.Join(save, "have.epub")},
		{"pdf", models.RemoteEntry{Name: "doc.pdf"}, SkipUnsupported, ""},
		{"extension only in middle", models.RemoteEntry{Name: "a.epub.zip"}, SkipUnsupported, ""},
		// Folders and names that would leave the save directory are ignored silently
		// like any other unsupported entry.
		{"folder", models.RemoteEntry{Name: "shelf.epub", Tag: "folder"}, SkipUnsupported, ""},
		{"escaping name", models.RemoteEntry{Name: "../evil.epub"}, SkipUnsupported, ""},
		{"nested name", models.RemoteEntry{Name: "sub/book.epub"}, SkipUnsupported, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verdict, path := ShouldFetch(fs, tt.entry, save)
			if verdict != tt.verdict {
				t.Errorf("expected verdict %v, got %v", tt.verdict, verdict)
			}
			if path != tt.path {
				t.Errorf("expected path %q, got %q", tt.path, path)
			}
		})
	}
}
