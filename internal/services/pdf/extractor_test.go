// extractor_test.go — Unit tests for PDF validation and library listing.
package pdf

import (
	"os"
	"path/filepath"
	"testing"
)

func TestValidatePDF(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want bool
	}{
		{"valid header", []byte("%PDF-1.7\n..."), true},
		{"text file", []byte("hello world"), false},
		{"empty", nil, false},
		{"truncated header", []byte("%PD"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidatePDF(tt.data); got != tt.want {
				t.Errorf("ValidatePDF = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestListPDFs(t *testing.T) {
	dir := t.TempDir()

	t.Run("empty directory", func(t *testing.T) {
		names, err := ListPDFs(dir)
		if err != nil {
			t.Fatalf("ListPDFs: %v", err)
		}
		if names == nil || len(names) != 0 {
			t.Errorf("names = %v, want empty slice", names)
		}
	})

	t.Run("filters and sorts", func(t *testing.T) {
		for _, name := range []string{"b.pdf", "a.PDF", "notes.txt", "c.pdf"} {
			if err := os.WriteFile(filepath.Join(dir, name), []byte("%PDF-"), 0o644); err != nil {
				t.Fatalf("WriteFile: %v", err)
			}
		}

		names, err := ListPDFs(dir)
		if err != nil {
			t.Fatalf("ListPDFs: %v", err)
		}
		if len(names) != 3 {
			t.Fatalf("got %d names, want 3: %v", len(names), names)
		}
		for i := 1; i < len(names); i++ {
			if names[i-1] > names[i] {
				t.Errorf("names not sorted: %v", names)
			}
		}
	})

	t.Run("missing directory is created", func(t *testing.T) {
		missing := filepath.Join(dir, "sub")
		names, err := ListPDFs(missing)
		if err != nil {
			t.Fatalf("ListPDFs: %v", err)
		}
		if len(names) != 0 {
			t.Errorf("names = %v", names)
		}
		if _, err := os.Stat(missing); err != nil {
			t.Errorf("directory not created: %v", err)
		}
	})
}

func TestExtractRejectsGarbage(t *testing.T) {
	if _, err := Extract([]byte("not a pdf at all")); err == nil {
		t.Error("expected error for non-PDF bytes")
	}
}
