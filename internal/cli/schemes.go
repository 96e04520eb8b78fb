package cli

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/SW-Perse/artkathon/pkg/flowfield"
	"github.com/SW-Perse/artkathon/pkg/palette"
)

// newSchemesCmd creates the schemes command, which lists the color schemes
// and shows each emotion's palette sample.
func newSchemesCmd() *cobra.Command {
	var detailed bool

	cmd := &cobra.Command{
		Use:   "schemes",
		Short: "List color schemes and their emotion palettes",
		RunE: func(cmd *cobra.Command, args []string) error {
			printSchemeTable()
			if detailed {
				for _, name := range palette.Names() {
					printNewline()
					printSchemeDetail(palette.Lookup(name))
				}
			} else {
				printNewline()
				printNextStep("Show emotion palettes", "artkathon schemes --detailed")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&detailed, "detailed", false, "show per-emotion palette swatches")
	return cmd
}

// printSchemeTable lists the schemes and their knobs.
func printSchemeTable() {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(StyleDim).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return StyleTitle.Padding(0, 1)
			}
			return StyleValue.Padding(0, 1)
		}).
		Headers("SCHEME", "AXIS", "BLEND", "DESCRIPTION")

	for _, name := range palette.Names() {
		s := palette.Lookup(name)
		t.Row(s.Name, s.Axis, strconv.FormatFloat(s.WithinStroke, 'g', -1, 64), s.Description)
	}
	fmt.Println(t)
}

// printSchemeDetail shows the emotion-to-colormap mapping with swatches.
func printSchemeDetail(s palette.Scheme) {
	fmt.Println(StyleTitle.Render(s.Name))
	for _, emotion := range palette.Emotions {
		sample := s.ForEmotion(emotion)
		cmap, ok := palette.ByName(sample.Map)
		if !ok {
			continue
		}
		swatch := hexes(cmap.LUT(sample.Lo, sample.Hi, palette.DisplaySize))
		fmt.Printf("  %s %s  %s\n",
			StyleDim.Render(fmt.Sprintf("%-9s", emotion)),
			renderSwatch(swatch),
			StyleDim.Render(sample.Map))
	}
}

// hexes converts palette colors to hex strings for terminal swatches.
func hexes(colors []flowfield.RGB) []string {
	out := make([]string, len(colors))
	for i, c := range colors {
		out[i] = fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
	}
	return out
}
