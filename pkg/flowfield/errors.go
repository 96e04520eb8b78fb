package flowfield

import "fmt"

// ConfigError reports a configuration field that makes the render impossible.
// It carries the offending field and value so batch orchestrators can log and
// skip the item.
type ConfigError struct {
	Field  string
	Value  any
	Reason string
}

// Error returns a message naming the field, its value, and why it is invalid.
func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid config: %s=%v (%s)", e.Field, e.Value, e.Reason)
}

// BoundsError reports a margin that consumes half or more of the smaller
// canvas dimension, leaving no drawable area.
type BoundsError struct {
	Margin float64
	Width  int
	Height int
}

// Error returns a message describing the degenerate bounds.
func (e *BoundsError) Error() string {
	return fmt.Sprintf("margin %.1f leaves no drawable area on %dx%d canvas",
		e.Margin, e.Width, e.Height)
}

// ColorLookupError reports a color LUT that cannot produce any color.
type ColorLookupError struct {
	Length int
}

// Error returns a message describing the unusable LUT.
func (e *ColorLookupError) Error() string {
	return fmt.Sprintf("color LUT has %d entries, need at least 1", e.Length)
}
