package palette

import "sort"

// Emotion labels used by the schemes. EmotionDefault covers anything
// unclassified.
const (
	EmotionFear     = "fear"
	EmotionAnger    = "anger"
	EmotionSadness  = "sadness"
	EmotionLove     = "love"
	EmotionJoy      = "joy"
	EmotionSurprise = "surprise"
	EmotionDefault  = "default"
)

// DefaultScheme is used when no scheme (or an unknown one) is requested.
const DefaultScheme = "expressive"

// Emotions lists the labels in display order.
var Emotions = []string{
	EmotionFear,
	EmotionAnger,
	EmotionSadness,
	EmotionLove,
	EmotionJoy,
	EmotionSurprise,
	EmotionDefault,
}

// Sample names a colormap and the sub-range of it to draw colors from.
type Sample struct {
	Map string
	Lo  float64
	Hi  float64
}

// Scheme fixes the palette behavior of a render: which colormap each emotion
// maps to, which spatial axis picks a stroke's base color, and how far a
// single stroke sweeps through the ramp.
type Scheme struct {
	Name         string
	Description  string
	Axis         string
	WithinStroke float64

	emotions map[string]Sample
}

// ForEmotion returns the colormap sample for an emotion, falling back to the
// scheme's default mapping for unknown labels.
func (s Scheme) ForEmotion(emotion string) Sample {
	if sm, ok := s.emotions[emotion]; ok {
		return sm
	}
	return s.emotions[EmotionDefault]
}

var schemes = map[string]Scheme{
	"very_smooth": {
		Name:         "very_smooth",
		Description:  "Smooth gradients with subtle within-stroke color transitions",
		Axis:         "x",
		WithinStroke: 0.2,
		emotions: map[string]Sample{
			EmotionFear:     {Map: "bone", Lo: 0.2, Hi: 0.9},
			EmotionAnger:    {Map: "hot", Lo: 0.1, Hi: 0.95},
			EmotionSadness:  {Map: "PuBu", Lo: 0.4, Hi: 0.95},
			EmotionLove:     {Map: "RdPu", Lo: 0.2, Hi: 0.9},
			EmotionJoy:      {Map: "rainbow", Lo: 0, Hi: 1},
			EmotionSurprise: {Map: "cividis", Lo: 0.1, Hi: 0.9},
			EmotionDefault:  {Map: "grey", Lo: 0.2, Hi: 0.9},
		},
	},
	"expressive": {
		Name:         "expressive",
		Description:  "Bold color shifts with vertical gradients and per-stroke variation",
		Axis:         "y",
		WithinStroke: 0.5,
		emotions: map[string]Sample{
			EmotionFear:     {Map: "bone", Lo: 0, Hi: 1},
			EmotionAnger:    {Map: "hot", Lo: 0, Hi: 1},
			EmotionSadness:  {Map: "PuBu", Lo: 0.2, Hi: 1},
			EmotionLove:     {Map: "RdPu", Lo: 0, Hi: 1},
			EmotionJoy:      {Map: "rainbow", Lo: 0, Hi: 1},
			EmotionSurprise: {Map: "cividis", Lo: 0, Hi: 1},
			EmotionDefault:  {Map: "grey", Lo: 0, Hi: 1},
		},
	},
	"wild": {
		Name:         "wild",
		Description:  "Flow-driven color chaos with rainbow strokes following field direction",
		Axis:         "field",
		WithinStroke: 0.7,
		emotions: map[string]Sample{
			EmotionFear:     {Map: "bone", Lo: 0, Hi: 1},
			EmotionAnger:    {Map: "hot", Lo: 0, Hi: 1},
			EmotionSadness:  {Map: "PuBu", Lo: 0, Hi: 1},
			EmotionLove:     {Map: "RdPu", Lo: 0, Hi: 1},
			EmotionJoy:      {Map: "rainbow", Lo: 0, Hi: 1},
			EmotionSurprise: {Map: "cividis", Lo: 0, Hi: 1},
			EmotionDefault:  {Map: "grey", Lo: 0, Hi: 1},
		},
	},
}

// Lookup returns the named scheme, falling back to the default scheme for
// unknown names.
func Lookup(name string) Scheme {
	if s, ok := schemes[name]; ok {
		return s
	}
	return schemes[DefaultScheme]
}

// Known reports whether name is a defined scheme.
func Known(name string) bool {
	_, ok := schemes[name]
	return ok
}

// Names returns the scheme names, sorted.
func Names() []string {
	names := make([]string, 0, len(schemes))
	for n := range schemes {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
