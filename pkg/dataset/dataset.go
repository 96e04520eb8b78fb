// Package dataset reads and writes poem datasets as CSV.
//
// Two layouts are accepted:
//
//   - pre-vectorized: columns "title" and "vector_14d", the latter holding a
//     bracketed float list like "[0.1, 0.2, ...]";
//   - raw: columns "Title", "Poem", "Poet" and "Genre", which are encoded
//     through pkg/feature on load.
//
// Malformed rows are skipped, never fatal: batch rendering depends on
// partial success.
package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/SW-Perse/artkathon/pkg/feature"
)

// Item is one dataset row ready for rendering.
type Item struct {
	Index  int
	Title  string
	Poet   string
	Genre  string
	Vector []float64
}

// Result is the outcome of a load: the usable items plus how many rows were
// skipped as malformed.
type Result struct {
	Items   []Item
	Skipped int
}

// Load reads a poem dataset from a CSV file, picking the layout from the
// header row.
func Load(path string) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // ragged rows are handled per-row

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}
	if len(records) < 1 {
		return nil, fmt.Errorf("dataset %s is empty", path)
	}

	header := records[0]
	cols := map[string]int{}
	for i, name := range header {
		cols[strings.TrimSpace(name)] = i
	}

	if _, ok := cols["vector_14d"]; ok {
		return loadVectorized(records[1:], cols), nil
	}
	if hasAll(cols, "Title", "Poem", "Poet", "Genre") {
		return loadRaw(records[1:], cols), nil
	}
	return nil, fmt.Errorf(`dataset %s: need either a "vector_14d" column or "Title", "Poem", "Poet" and "Genre"`, path)
}

func hasAll(cols map[string]int, names ...string) bool {
	for _, n := range names {
		if _, ok := cols[n]; !ok {
			return false
		}
	}
	return true
}

func loadVectorized(rows [][]string, cols map[string]int) *Result {
	res := &Result{}
	titleCol, hasTitle := cols["title"]
	vecCol := cols["vector_14d"]

	for i, row := range rows {
		if vecCol >= len(row) {
			res.Skipped++
			continue
		}
		vec, err := ParseVector(row[vecCol])
		if err != nil {
			res.Skipped++
			continue
		}
		title := fmt.Sprintf("Poem_%d", i)
		if hasTitle && titleCol < len(row) && strings.TrimSpace(row[titleCol]) != "" {
			title = row[titleCol]
		}
		res.Items = append(res.Items, Item{Index: i, Title: title, Vector: vec})
	}
	return res
}

func loadRaw(rows [][]string, cols map[string]int) *Result {
	res := &Result{}
	for i, row := range rows {
		get := func(name string) (string, bool) {
			c := cols[name]
			if c >= len(row) {
				return "", false
			}
			return row[c], true
		}
		title, ok1 := get("Title")
		text, ok2 := get("Poem")
		poet, ok3 := get("Poet")
		genre, ok4 := get("Genre")
		if !ok1 || !ok2 || !ok3 || !ok4 || strings.TrimSpace(text) == "" {
			res.Skipped++
			continue
		}
		vec := feature.Vector(feature.Poem{Title: title, Text: text, Poet: poet, Genre: genre})
		res.Items = append(res.Items, Item{Index: i, Title: title, Poet: poet, Genre: genre, Vector: vec})
	}
	return res
}

// ParseVector parses a bracketed float list like "[0.1, 0.2]" into a
// feature vector. The dimension must match feature.Dim.
func ParseVector(s string) ([]float64, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "[")
	s = strings.TrimSuffix(s, "]")
	parts := strings.Split(s, ",")
	if len(parts) != feature.Dim {
		return nil, fmt.Errorf("vector has %d dimensions, want %d", len(parts), feature.Dim)
	}
	vec := make([]float64, feature.Dim)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("vector component %d: %w", i, err)
		}
		vec[i] = v
	}
	return vec, nil
}

// FormatVector renders a feature vector in the bracketed list form ParseVector
// reads back.
func FormatVector(vec []float64) string {
	parts := make([]string, len(vec))
	for i, v := range vec {
		parts[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// SaveVectors writes items as a pre-vectorized CSV with "title" and
// "vector_14d" columns.
func SaveVectors(path string, items []Item) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"title", "vector_14d"}); err != nil {
		return err
	}
	for _, item := range items {
		if err := w.Write([]string{item.Title, FormatVector(item.Vector)}); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
