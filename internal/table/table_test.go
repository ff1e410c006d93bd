package table

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTemp(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	return path
}

func TestReadFileUTF8(t *testing.T) {
	path := writeTemp(t, "in.csv", []byte("Name,City\nCafe Azzure,Bengaluru\n"))

	tab, err := ReadFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tab.Headers) != 2 || tab.Headers[0] != "Name" {
		t.Fatalf("headers = %v", tab.Headers)
	}
	if tab.Len() != 1 {
		t.Fatalf("expected 1 row, got %d", tab.Len())
	}
	if got := tab.Cell(0, 1); got != "Bengaluru" {
		t.Errorf("Cell(0,1) = %q", got)
	}
}

func TestReadFileISO8859Fallback(t *testing.T) {
	// "Café" with a Latin-1 e-acute byte, which is invalid UTF-8.
	raw := []byte("Name\nCaf\xe9\n")
	path := writeTemp(t, "latin1.csv", raw)

	tab, err := ReadFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := tab.Cell(0, 0); got != "Café" {
		t.Errorf("Cell(0,0) = %q, want Café", got)
	}
}

func TestReadFileBOM(t *testing.T) {
	raw := append([]byte{0xEF, 0xBB, 0xBF}, []byte("Name\nShop\n")...)
	path := writeTemp(t, "bom.csv", raw)

	tab, err := ReadFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tab.Headers[0] != "Name" {
		t.Errorf("BOM not stripped from header: %q", tab.Headers[0])
	}
}

func TestReadFileRaggedRows(t *testing.T) {
	path := writeTemp(t, "ragged.csv", []byte("A,B,C\n1,2\n1,2,3,4\n"))

	tab, err := ReadFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tab.Len() != 2 {
		t.Fatalf("expected 2 rows, got %d", tab.Len())
	}
	if got := tab.Cell(0, 2); got != "" {
		t.Errorf("short row Cell(0,2) = %q, want empty", got)
	}
	if got := tab.Cell(1, 2); got != "3" {
		t.Errorf("Cell(1,2) = %q", got)
	}
}

func TestReadFileMissing(t *testing.T) {
	if _, err := ReadFile(filepath.Join(t.TempDir(), "nope.csv")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestReadFileEmpty(t *testing.T) {
	path := writeTemp(t, "empty.csv", nil)
	if _, err := ReadFile(path); err == nil {
		t.Fatal("expected error for file without header row")
	}
}

func TestColumnCaseInsensitive(t *testing.T) {
	tab := &Table{Headers: []string{"NAME", " City ", "lat"}}

	if i, ok := tab.Column("name"); !ok || i != 0 {
		t.Errorf("Column(name) = %d, %v", i, ok)
	}
	if i, ok := tab.Column("city"); !ok || i != 1 {
		t.Errorf("Column(city) = %d, %v (headers should be trimmed)", i, ok)
	}
	if _, ok := tab.Column("cit"); ok {
		t.Error("substring must not match")
	}
}

func TestWriteFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "cleaned.csv")
	headers := []string{"a", "b"}
	rows := [][]string{{"1", "x,y"}, {"2", ""}}

	if err := WriteFile(path, headers, rows); err != nil {
		t.Fatalf("writing: %v", err)
	}

	tab, err := ReadFile(path)
	if err != nil {
		t.Fatalf("reading back: %v", err)
	}
	if tab.Len() != 2 {
		t.Fatalf("expected 2 rows, got %d", tab.Len())
	}
	if got := tab.Cell(0, 1); got != "x,y" {
		t.Errorf("quoted value mangled: %q", got)
	}
}
