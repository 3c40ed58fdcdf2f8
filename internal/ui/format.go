package ui

import (
	"fmt"
	"image"
	"math"
	"strconv"
	"strings"

	"meteorfall/internal/core"
)

func buildTitle(sim core.Sim) string {
	if sim == nil || sim.Name() == "" {
		return "Controls"
	}
	name := strings.ReplaceAll(sim.Name(), "-", " ")
	return fmt.Sprintf("%s%s Controls", strings.ToUpper(name[:1]), name[1:])
}

// formatValue prints logarithmic controls in scientific notation.
func formatValue(ctrl core.ParameterControl, value float64) string {
	if ctrl.Logarithmic || math.Abs(value) >= 1e6 {
		return strconv.FormatFloat(value, 'e', 2, 64)
	}
	step := ctrl.Step
	if step <= 0 {
		step = 0.05
	}
	precision := 0
	switch {
	case step < 0.01:
		precision = 3
	case step < 0.1:
		precision = 2
	case step < 1:
		precision = 1
	}
	return strconv.FormatFloat(value, 'f', precision, 64)
}

func wrap(s string, width int) []string {
	if width <= 0 {
		return []string{s}
	}
	var lines []string
	var cur strings.Builder
	for _, word := range strings.Fields(s) {
		if cur.Len() > 0 && cur.Len()+1+len(word) > width {
			lines = append(lines, cur.String())
			cur.Reset()
		}
		if cur.Len() > 0 {
			cur.WriteByte(' ')
		}
		cur.WriteString(word)
	}
	if cur.Len() > 0 {
		lines = append(lines, cur.String())
	}
	return lines
}

func pointInRect(x, y int, rect image.Rectangle) bool {
	return x >= rect.Min.X && x < rect.Max.X && y >= rect.Min.Y && y < rect.Max.Y
}
