package render

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// lightThreshold is the CIE L* value above which dark text reads better
// than white text.
const lightThreshold = 0.6

// Swatch is the background and foreground pair of one track.
type Swatch struct {
	Background string
	Foreground string
}

// Palette returns n perceptually ordered swatches blended in HCL space from
// start to end. A single track gets the start color.
func Palette(n int, start, end string) ([]Swatch, error) {
	if n <= 0 {
		return nil, nil
	}
	from, err := colorful.Hex(start)
	if err != nil {
		return nil, fmt.Errorf("palette start %q: %w", start, err)
	}
	to, err := colorful.Hex(end)
	if err != nil {
		return nil, fmt.Errorf("palette end %q: %w", end, err)
	}

	swatches := make([]Swatch, n)
	for i := range swatches {
		c := from
		if n > 1 {
			c = from.BlendHcl(to, float64(i)/float64(n-1)).Clamped()
		}
		swatches[i] = Swatch{Background: c.Hex(), Foreground: foreground(c)}
	}
	return swatches, nil
}

func foreground(c colorful.Color) string {
	l, _, _ := c.Lab()
	if l > lightThreshold {
		return "#1a1a1a"
	}
	return "#ffffff"
}
