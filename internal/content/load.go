package content

import (
	"fmt"
	"os"
	"sort"

	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"

	"github.com/dshills/flickpad/internal/input/nav"
)

// File is the on-disk layout of a content file. Every grid is a list of
// exactly nine entries in row-major order; "" marks an inactive cell.
// Omitted sections keep their built-in values and row/category maps are
// merged key by key.
type File struct {
	Base           []string            `yaml:"base"`
	Rows           map[string][]string `yaml:"rows"`
	Categories     []string            `yaml:"categories"`
	Details        map[string][]string `yaml:"details"`
	FreeInputLabel string              `yaml:"freeInputLabel"`
}

// Load reads a content file and merges it over the built-in tables.
func Load(path string) (nav.Tables, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nav.Tables{}, err
	}
	return Parse(path, data)
}

// Parse decodes YAML content. name is used in error messages.
func Parse(name string, data []byte) (nav.Tables, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nav.Tables{}, &ParseError{Path: name, Err: err}
	}

	tables, err := f.Merge(Default())
	if err != nil {
		return nav.Tables{}, fmt.Errorf("%s: %w", name, err)
	}
	if err := Validate(tables); err != nil {
		return nav.Tables{}, fmt.Errorf("%s: %w", name, err)
	}
	return tables, nil
}

// Merge applies f over base. Entries are NFC-normalized so a kana typed
// with a combining voiced mark compares equal to its composed form.
func (f *File) Merge(base nav.Tables) (nav.Tables, error) {
	out := nav.Tables{
		Base:           base.Base,
		Rows:           copyGrids(base.Rows),
		Categories:     base.Categories,
		Details:        copyGrids(base.Details),
		FreeInputLabel: base.FreeInputLabel,
	}

	if f.Base != nil {
		g, err := toGrid("base", "", f.Base)
		if err != nil {
			return nav.Tables{}, err
		}
		out.Base = g
	}
	for key, cells := range f.Rows {
		g, err := toGrid("rows", key, cells)
		if err != nil {
			return nav.Tables{}, err
		}
		out.Rows[norm.NFC.String(key)] = g
	}
	if f.Categories != nil {
		g, err := toGrid("categories", "", f.Categories)
		if err != nil {
			return nav.Tables{}, err
		}
		out.Categories = g
	}
	for key, cells := range f.Details {
		g, err := toGrid("details", key, cells)
		if err != nil {
			return nav.Tables{}, err
		}
		out.Details[norm.NFC.String(key)] = g
	}
	if f.FreeInputLabel != "" {
		out.FreeInputLabel = norm.NFC.String(f.FreeInputLabel)
	}
	return out, nil
}

func toGrid(table, key string, cells []string) (nav.GridContent, error) {
	var g nav.GridContent
	if len(cells) != nav.CellCount {
		return g, &ValidationError{
			Table:  table,
			Key:    key,
			Reason: fmt.Sprintf("want %d cells, got %d", nav.CellCount, len(cells)),
		}
	}
	for i, c := range cells {
		g[i] = norm.NFC.String(c)
	}
	return g, nil
}

// Validate checks the cross references between tables: every non-blank
// base entry must name a row and the free-input label must appear among
// the categories.
func Validate(t nav.Tables) error {
	for i := range t.Base {
		if t.Base.Blank(i) {
			continue
		}
		if _, ok := t.Row(t.Base[i]); !ok {
			return &ValidationError{
				Table:  "base",
				Key:    t.Base[i],
				Reason: fmt.Sprintf("cell %d has no row", i),
			}
		}
	}

	if t.FreeInputLabel == "" {
		return &ValidationError{Table: "categories", Reason: "free input label is empty"}
	}
	if t.Categories.Index(t.FreeInputLabel) < 0 {
		return &ValidationError{
			Table:  "categories",
			Key:    t.FreeInputLabel,
			Reason: "free input label missing",
		}
	}
	return nil
}

// Summary describes tables for logging.
func Summary(t nav.Tables) string {
	rows := make([]string, 0, len(t.Rows))
	for k := range t.Rows {
		rows = append(rows, k)
	}
	sort.Strings(rows)
	return fmt.Sprintf("%d rows %v, %d categories", len(t.Rows), rows, len(t.Details))
}
