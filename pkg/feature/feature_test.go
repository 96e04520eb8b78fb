package feature

import (
	"math"
	"testing"
)

func TestSyllables(t *testing.T) {
	tests := []struct {
		word string
		want int
	}{
		{"hello", 2},
		{"sky", 1},
		{"rhythm", 1},
		{"beautiful", 3},
		{"bcd", 1},
		{"", 0},
		{"...", 0},
		{"queue", 1},
	}
	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			if got := Syllables(tt.word); got != tt.want {
				t.Errorf("Syllables(%q) = %d, want %d", tt.word, got, tt.want)
			}
		})
	}
}

func TestGenreID(t *testing.T) {
	tests := []struct {
		genre string
		want  float64
	}{
		{"fear", 0.1},
		{"anger", 0.25},
		{"sadness", 0.35},
		{"love", 0.45},
		{"joy", 0.55},
		{"surprise", 0.65},
		{"LOVE", 0.45},
		{"melancholy", 0.75},
		{"", 0.75},
	}
	for _, tt := range tests {
		t.Run(tt.genre, func(t *testing.T) {
			if got := GenreID(tt.genre); got != tt.want {
				t.Errorf("GenreID(%q) = %v, want %v", tt.genre, got, tt.want)
			}
		})
	}
}

func TestVectorKnownPoem(t *testing.T) {
	p := Poem{
		Title: "still night",
		Text:  "the sun\nthe sun",
		Poet:  "basho",
		Genre: "joy",
	}
	v := Vector(p)
	if len(v) != Dim {
		t.Fatalf("len(v) = %d, want %d", len(v), Dim)
	}

	want := []float64{
		0.2,       // 2 title words / 10
		1,         // both unique
		0.1,       // 2 verses / 20
		0.2,       // 2 words per verse / 10
		0,         // no variability
		0.5,       // endings {un, un}: 1 unique of 2
		1,         // "un" dominates completely
		0.5,       // bigrams {th, th}: 1 repeated of 2
		0.5,       // vowels e,u split evenly
		1.0 / 3.0, // entropy of a fair 2-way split is 1 bit
		2,         // raw words per verse
		0.2,       // 1 poet word / 5
		1,         // all 5 letters of "basho" unique
		0.55,      // joy
	}
	for i := range want {
		if math.Abs(v[i]-want[i]) > 1e-6 {
			t.Errorf("v[%d] = %v, want %v", i, v[i], want[i])
		}
	}
}

func TestVectorEmptyPoem(t *testing.T) {
	v := Vector(Poem{})
	if len(v) != Dim {
		t.Fatalf("len(v) = %d, want %d", len(v), Dim)
	}
	for i, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			t.Errorf("v[%d] = %v on empty poem", i, x)
		}
	}
	if v[13] != 0.75 {
		t.Errorf("v[13] = %v, want neutral 0.75", v[13])
	}
}

func TestSplitVersesFallbacks(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
	}{
		{"newlines", "a b\nc d\ne f", 3},
		{"multi-space", "a b    c d     e f", 3},
		{"punctuation", "first verse. second verse; third verse", 3},
		{"single run", "just one verse", 1},
		{"empty", "", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := splitVerses(tt.text); len(got) != tt.want {
				t.Errorf("splitVerses(%q) = %d verses %v, want %d", tt.text, len(got), got, tt.want)
			}
		})
	}
}

func TestVectorDeterministic(t *testing.T) {
	p := Poem{Title: "Ode", Text: "roses are red\nviolets are blue", Poet: "Anon", Genre: "love"}
	a := Vector(p)
	b := Vector(p)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("v[%d] differs between runs: %v vs %v", i, a[i], b[i])
		}
	}
}
