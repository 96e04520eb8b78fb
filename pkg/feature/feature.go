// Package feature converts poem text into the 14-dimensional numeric vector
// the parameter mapper consumes.
//
// Every dimension is a cheap lexical statistic - no language model, just
// counting. The layout is fixed and shared with pkg/params:
//
//	v[0]  title length / 10
//	v[1]  title lexical diversity
//	v[2]  verse count / 20
//	v[3]  average words per verse / 10
//	v[4]  words-per-verse standard deviation / 5
//	v[5]  rhyme diversity (unique verse endings / endings)
//	v[6]  dominant rhyme frequency
//	v[7]  alliteration score (repeated consonant bigrams / bigrams)
//	v[8]  dominant vowel frequency
//	v[9]  vowel entropy / 3
//	v[10] raw average words per verse
//	v[11] poet name length / 5
//	v[12] poet name letter diversity
//	v[13] genre id (selects the color palette)
package feature

import (
	"math"
	"regexp"
	"strings"
)

// Dim is the length of every feature vector.
const Dim = 14

// Poem is one dataset item before encoding.
type Poem struct {
	Title string
	Text  string
	Poet  string
	Genre string
}

const (
	vowels     = "aeiouy"
	consonants = "bcdfghjklmnpqrstvwxz"
)

var (
	nonAlpha    = regexp.MustCompile(`[^a-z]`)
	multiSpace  = regexp.MustCompile(`   +`)
	strongPunct = regexp.MustCompile(`[.;]\s+`)
)

// Vector encodes a poem into its 14-dimensional feature vector.
func Vector(p Poem) []float64 {
	titleWords := strings.Fields(strings.ToLower(p.Title))
	poemWords := strings.Fields(depunct(strings.ToLower(p.Text)))
	poetWords := strings.Fields(strings.ToLower(p.Poet))

	v := make([]float64, 0, Dim)

	// Title: length and lexical diversity.
	v = append(v,
		float64(len(titleWords))/10,
		float64(uniqueCount(titleWords))/math.Max(float64(len(titleWords)), 1),
	)

	verses := splitVerses(p.Text)
	verseCount := len(verses)

	var avgWords, stdWords float64
	if verseCount > 0 {
		counts := make([]float64, verseCount)
		for i, verse := range verses {
			counts[i] = float64(len(strings.Fields(verse)))
			avgWords += counts[i]
		}
		avgWords /= float64(verseCount)
		if verseCount > 1 {
			var variance float64
			for _, c := range counts {
				variance += (c - avgWords) * (c - avgWords)
			}
			stdWords = math.Sqrt(variance / float64(verseCount))
		}
	}

	rhymeDiversity, dominantRhyme := rhymeStats(verses)
	alliteration := alliterationScore(poemWords)
	dominantVowel, vowelEntropy := vowelStats(verses)

	v = append(v,
		float64(verseCount)/20,
		avgWords/10,
		stdWords/5,
		rhymeDiversity,
		dominantRhyme,
		alliteration,
		dominantVowel,
		vowelEntropy/3,
		avgWords, // raw rhythm, not normalized
	)

	// Poet: name length and letter diversity.
	joined := strings.Join(poetWords, "")
	letterDiversity := float64(uniqueRunes(joined)) / math.Max(float64(len(joined)), 1)
	v = append(v,
		float64(len(poetWords))/5,
		letterDiversity,
	)

	v = append(v, GenreID(p.Genre))
	return v
}

// GenreID maps an emotional genre label to the numeric id carried in v[13].
// Each id sits at the center of the threshold band the parameter mapper uses
// to pick a colormap; unknown genres land in the neutral band.
func GenreID(genre string) float64 {
	switch strings.ToLower(genre) {
	case "fear":
		return 0.1
	case "anger":
		return 0.25
	case "sadness":
		return 0.35
	case "love":
		return 0.45
	case "joy":
		return 0.55
	case "surprise":
		return 0.65
	default:
		return 0.75
	}
}

// Syllables approximates the syllable count of a word by counting vowel
// groups. Every word counts as at least one syllable.
func Syllables(word string) int {
	word = nonAlpha.ReplaceAllString(strings.ToLower(word), "")
	if word == "" {
		return 0
	}
	count := 0
	prevVowel := false
	for _, r := range word {
		isVowel := strings.ContainsRune(vowels, r)
		if isVowel && !prevVowel {
			count++
		}
		prevVowel = isVowel
	}
	if count < 1 {
		count = 1
	}
	return count
}

// splitVerses breaks poem text into verses. Newlines are the primary
// separator; texts without them fall back to runs of three or more spaces,
// then to strong punctuation followed by whitespace.
func splitVerses(text string) []string {
	verses := nonEmpty(strings.Split(text, "\n"))
	if len(verses) <= 1 {
		verses = nonEmpty(multiSpace.Split(text, -1))
	}
	if len(verses) <= 1 {
		verses = nonEmpty(strongPunct.Split(text, -1))
	}
	return verses
}

// rhymeStats derives rhyme diversity and the dominant rhyme frequency from
// the last two letters of each verse's final word.
func rhymeStats(verses []string) (diversity, dominant float64) {
	var endings []string
	for _, verse := range verses {
		words := strings.Fields(verse)
		if len(words) == 0 {
			continue
		}
		last := nonAlpha.ReplaceAllString(strings.ToLower(words[len(words)-1]), "")
		if len(last) >= 2 {
			endings = append(endings, last[len(last)-2:])
		}
	}

	counts := map[string]int{}
	maxCount := 0
	for _, e := range endings {
		counts[e]++
		if counts[e] > maxCount {
			maxCount = counts[e]
		}
	}
	diversity = float64(len(counts)) / math.Max(float64(len(endings)), 1)
	if len(endings) > 0 {
		dominant = float64(maxCount) / float64(len(endings))
	}
	return diversity, dominant
}

// alliterationScore counts consonant bigrams inside words that start with a
// consonant; the score is the share of bigrams that repeat.
func alliterationScore(words []string) float64 {
	counts := map[string]int{}
	total := 0
	for _, w := range words {
		clean := nonAlpha.ReplaceAllString(strings.ToLower(w), "")
		if len(clean) < 2 || !strings.ContainsRune(consonants, rune(clean[0])) {
			continue
		}
		for i := 0; i+1 < len(clean); i++ {
			if strings.ContainsRune(consonants, rune(clean[i])) &&
				strings.ContainsRune(consonants, rune(clean[i+1])) {
				counts[clean[i:i+2]]++
				total++
			}
		}
	}
	if total == 0 {
		return 0
	}
	repeated := 0
	for _, c := range counts {
		if c > 1 {
			repeated++
		}
	}
	return float64(repeated) / float64(total)
}

// vowelStats returns the dominant vowel's share of all vowels and the
// Shannon entropy (base 2) of the vowel distribution across the verses.
func vowelStats(verses []string) (dominant, entropy float64) {
	counts := map[rune]int{}
	total := 0
	for _, verse := range verses {
		clean := nonAlpha.ReplaceAllString(strings.ToLower(verse), "")
		for _, r := range clean {
			if strings.ContainsRune(vowels, r) {
				counts[r]++
				total++
			}
		}
	}
	if total == 0 {
		return 0, 0
	}
	maxCount := 0
	for _, c := range counts {
		if c > maxCount {
			maxCount = c
		}
		p := float64(c) / float64(total)
		entropy += -p * math.Log2(p+1e-10)
	}
	return float64(maxCount) / float64(total), entropy
}

func depunct(s string) string {
	return strings.NewReplacer(",", " ", ".", " ").Replace(s)
}

func nonEmpty(parts []string) []string {
	out := parts[:0:0]
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func uniqueCount(words []string) int {
	set := map[string]struct{}{}
	for _, w := range words {
		set[w] = struct{}{}
	}
	return len(set)
}

func uniqueRunes(s string) int {
	set := map[rune]struct{}{}
	for _, r := range s {
		set[r] = struct{}{}
	}
	return len(set)
}
