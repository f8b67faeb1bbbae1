package content

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dshills/flickpad/internal/input/nav"
)

func TestDefaultIsValid(t *testing.T) {
	tables := Default()
	if err := Validate(tables); err != nil {
		t.Fatalf("Validate(Default()) = %v", err)
	}

	if got := tables.Categories.Cell(6); got != FreeInputLabel {
		t.Errorf("category cell 6 = %q, want %q", got, FreeInputLabel)
	}
	for _, i := range []int{0, 8} {
		if !tables.Categories.Blank(i) {
			t.Errorf("category cell %d = %q, want blank", i, tables.Categories[i])
		}
	}
}

func TestDefaultRowsAvoidOverlayCells(t *testing.T) {
	for key, row := range Default().Rows {
		for _, i := range []int{0, 2, 6} {
			if !row.Blank(i) {
				t.Errorf("row %s cell %d = %q, want blank", key, i, row[i])
			}
		}
		if row.Cell(4) != key {
			t.Errorf("row %s center = %q, want %q", key, row.Cell(4), key)
		}
	}
}

func TestDefaultDetailsAvoidOverlayCells(t *testing.T) {
	tables := Default()
	for i, category := range tables.Categories {
		if tables.Categories.Blank(i) || category == FreeInputLabel {
			continue
		}
		detail, ok := tables.Detail(category)
		if !ok {
			t.Errorf("category %q has no details", category)
			continue
		}
		phrases := 0
		for j := range detail {
			if j == 0 || j == 2 {
				if !detail.Blank(j) {
					t.Errorf("%s cell %d = %q, want blank", category, j, detail[j])
				}
				continue
			}
			if !detail.Blank(j) {
				phrases++
			}
		}
		if phrases != 7 {
			t.Errorf("%s has %d phrases, want 7", category, phrases)
		}
	}
}

func TestDefaultReturnsCopies(t *testing.T) {
	a := Default()
	a.Rows["あ"] = nav.GridContent{}
	if Default().Rows["あ"].Cell(4) != "あ" {
		t.Error("mutating Default() result leaked into later calls")
	}
}

func TestParseMergesOverDefaults(t *testing.T) {
	data := []byte(`
rows:
  か: ["", "く", "", "き", "か", "け", "", "こ", "が"]
details:
  返事: ["", "うん", "", "ううん", "", "", "", "", ""]
`)
	tables, err := Parse("test.yaml", data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if got := tables.Rows["か"].Cell(8); got != "が" {
		t.Errorf("か row cell 8 = %q, want が", got)
	}
	if got := tables.Rows["さ"]; got != Default().Rows["さ"] {
		t.Errorf("さ row changed: %v", got)
	}
	if got := tables.Details["返事"].Cell(1); got != "うん" {
		t.Errorf("返事 cell 1 = %q, want うん", got)
	}
	if tables.Base != Default().Base {
		t.Errorf("base changed: %v", tables.Base)
	}
}

func TestParseNormalizes(t *testing.T) {
	const decomposed = "\u304b\u3099" // か + combining voiced mark
	const composed = "\u304c"
	data := []byte("base: [\"" + decomposed + "\", \"\", \"\", \"\", \"\", \"\", \"\", \"\", \"\"]\n" +
		"rows:\n  \"" + decomposed + "\": [\"\", \"\", \"\", \"\", \"" + decomposed + "\", \"\", \"\", \"\", \"\"]\n")

	tables, err := Parse("nfc.yaml", data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got := tables.Base.Cell(0); got != composed {
		t.Errorf("base cell 0 = %q, want composed form", got)
	}
	if _, ok := tables.Row(composed); !ok {
		t.Error("row key was not normalized")
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		data  string
		table string
	}{
		{
			name:  "short base",
			data:  `base: ["あ", "か"]`,
			table: "base",
		},
		{
			name:  "long row",
			data:  `rows: {あ: ["", "", "", "", "", "", "", "", "", ""]}`,
			table: "rows",
		},
		{
			name:  "base without row",
			data:  `base: ["ぱ", "", "", "", "", "", "", "", ""]`,
			table: "base",
		},
		{
			name:  "free input label missing",
			data:  `categories: ["", "あいさつ", "", "", "", "", "", "", ""]`,
			table: "categories",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse("bad.yaml", []byte(tt.data))
			if !errors.Is(err, ErrInvalidContent) {
				t.Fatalf("Parse error = %v, want ErrInvalidContent", err)
			}
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("error %T is not a ValidationError", err)
			}
			if verr.Table != tt.table {
				t.Errorf("Table = %q, want %q", verr.Table, tt.table)
			}
		})
	}
}

func TestParseSyntaxError(t *testing.T) {
	_, err := Parse("broken.yaml", []byte("base: [\"あ\""))
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("error = %v, want ParseError", err)
	}
	if perr.Path != "broken.yaml" {
		t.Errorf("Path = %q", perr.Path)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Load error = %v, want not exist", err)
	}
}

func TestValidationErrorMessage(t *testing.T) {
	err := &ValidationError{Table: "rows", Key: "か", Reason: "bad"}
	if !strings.Contains(err.Error(), "rows[か]") {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestWatcherReloads(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "content.yaml")
	if err := os.WriteFile(path, []byte("freeInputLabel: 自由入力\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	got := make(chan nav.Tables, 4)
	w, err := NewWatcher(path, func(tables nav.Tables, err error) {
		if err != nil {
			return
		}
		select {
		case got <- tables:
		default:
		}
	}, WithDebounce(20*time.Millisecond))
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer w.Close()

	data := `details: {返事: ["", "うん", "", "", "", "", "", "", ""]}`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	// A reload may observe the truncated file first.
	deadline := time.After(2 * time.Second)
	for {
		select {
		case tables := <-got:
			if tables.Details["返事"].Cell(1) == "うん" {
				return
			}
		case <-deadline:
			t.Fatal("no reload after write")
		}
	}
}

func TestWatcherCloseIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "content.yaml")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	w, err := NewWatcher(path, func(nav.Tables, error) {})
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
}
