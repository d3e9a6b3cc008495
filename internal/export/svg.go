package export

import (
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/motionlab/internal/analysis"
	"github.com/san-kum/motionlab/internal/viz"
)

const (
	svgBackground = "#0a0a0a"
	svgForeground = "#00ff88"
)

// braille dot bits, indexed [row][col] within one 2x4 cell
var dotBits = [4][2]rune{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

func svgOpen(sb *strings.Builder, width, height float64) {
	fmt.Fprintf(sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, svgBackground)
}

// CanvasToSVG renders every lit Braille dot of canvas as a circle. scale is the
// size in pixels of one dot cell.
func CanvasToSVG(canvas *viz.Canvas, scale float64) string {
	if canvas == nil || scale <= 0 {
		return ""
	}

	var sb strings.Builder
	svgOpen(&sb, float64(canvas.Width)*scale*2, float64(canvas.Height)*scale*4)
	fmt.Fprintf(&sb, "<g fill=\"%s\">\n", svgForeground)

	r := scale * 0.4
	for row, line := range canvas.Grid {
		for col, cell := range line {
			bits := cell - 0x2800
			if bits <= 0 {
				continue
			}
			for dy := range dotBits {
				for dx, bit := range dotBits[dy] {
					if bits&bit == 0 {
						continue
					}
					cx := (float64(col*2+dx) + 0.5) * scale
					cy := (float64(row*4+dy) + 0.5) * scale
					fmt.Fprintf(&sb, "<circle cx=\"%.1f\" cy=\"%.1f\" r=\"%.1f\"/>\n", cx, cy, r)
				}
			}
		}
	}

	sb.WriteString("</g>\n</svg>\n")
	return sb.String()
}

// PointsToSVG draws points as one polyline scaled to fill width x height with a
// 10% margin.
func PointsToSVG(points []analysis.Point, width, height int, stroke string) string {
	if len(points) < 2 || width <= 0 || height <= 0 {
		return ""
	}

	minX, maxX := points[0].X, points[0].X
	minY, maxY := points[0].Y, points[0].Y
	for _, p := range points {
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}
	spanX := padSpan(&minX, maxX)
	spanY := padSpan(&minY, maxY)

	var sb strings.Builder
	svgOpen(&sb, float64(width), float64(height))
	fmt.Fprintf(&sb, `<path fill="none" stroke="%s" stroke-width="1.5" d="`, stroke)
	for i, p := range points {
		x := (p.X - minX) / spanX * float64(width)
		y := float64(height) - (p.Y-minY)/spanY*float64(height)
		if i == 0 {
			fmt.Fprintf(&sb, "M%.1f,%.1f", x, y)
		} else {
			fmt.Fprintf(&sb, " L%.1f,%.1f", x, y)
		}
	}
	sb.WriteString("\"/>\n</svg>\n")
	return sb.String()
}

// padSpan widens [*lo, hi] by 10% each side and returns the new span.
func padSpan(lo *float64, hi float64) float64 {
	span := hi - *lo
	if span == 0 {
		span = 1
	}
	*lo -= span * 0.1
	return span * 1.2
}
