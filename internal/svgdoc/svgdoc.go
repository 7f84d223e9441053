// Package svgdoc builds SVG 1.1 documents from fitted paths, following
// the z-order rules for fills (smallest area first) and strokes (always
// after fills).
package svgdoc

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lindqvist/vectorize/internal/polypath"
)

// Document accumulates shapes to be serialized as one SVG document.
type Document struct {
	Width, Height int
	Precision     int
	MetaComment   string

	fills     []polypath.Path
	strokes   []polypath.Path
	dots      []dotShape
	metaLabel string
	gradients []linearGradient
	radials   []radialGradient
}

type dotShape struct {
	cx, cy, r float64
	fill      string
}

// linearGradient is a two-stop <linearGradient> definition in userSpaceOnUse
// coordinates (the document's own pixel space, since its viewBox always
// starts at 0,0 with no transform), used by the superpixel backend's
// gradient-fill path.
type linearGradient struct {
	id             string
	x1, y1, x2, y2 float64
	colorA, colorB string
}

// radialGradient is a two-stop <radialGradient> definition, used when a
// region rejects the linear-gradient fit (spec'd as the fill-selection
// fallback before giving up and keeping a flat color).
type radialGradient struct {
	id             string
	cx, cy, r      float64
	colorA, colorB string
}

// New creates an empty document sized to the source image, with
// precision decimal places for coordinates (the spec default is 2).
func New(width, height, precision int) *Document {
	if precision < 0 {
		precision = 2
	}
	return &Document{Width: width, Height: height, Precision: precision}
}

// AddFill queues a filled path. Fills are emitted in ascending area order
// (smallest first) so larger fills that overlap paint over smaller ones.
func (d *Document) AddFill(p polypath.Path) {
	d.fills = append(d.fills, p)
}

// AddStroke queues a stroked path; strokes are always emitted after all
// fills, in the order added.
func (d *Document) AddStroke(p polypath.Path) {
	d.strokes = append(d.strokes, p)
}

// AddDot queues a filled circle, used by the dots backend. Dots are
// independent non-overlapping shapes, so ordering among them is
// visual-only and insertion order is preserved.
func (d *Document) AddDot(cx, cy, r float64, fill string) {
	d.dots = append(d.dots, dotShape{cx: cx, cy: cy, r: r, fill: fill})
}

// AddGradientFill registers a two-stop linear gradient running from
// (x1,y1) colorA to (x2,y2) colorB, then queues p filled with a reference
// to that gradient. Used by the superpixel backend when a region's
// internal color variation is better approximated by a gradient than a
// flat fill.
func (d *Document) AddGradientFill(p polypath.Path, x1, y1, x2, y2 float64, colorA, colorB string) {
	id := fmt.Sprintf("grad%d", len(d.gradients))
	d.gradients = append(d.gradients, linearGradient{id: id, x1: x1, y1: y1, x2: x2, y2: y2, colorA: colorA, colorB: colorB})
	p.Style.FillColor = fmt.Sprintf("url(#%s)", id)
	d.fills = append(d.fills, p)
}

// AddRadialGradientFill registers a two-stop radial gradient centered at
// (cx,cy) with radius r, colorA at the center and colorB at the edge,
// then queues p filled with a reference to it. Used by the superpixel
// backend as the fallback fill when a region accepts neither a flat
// color nor a linear gradient.
func (d *Document) AddRadialGradientFill(p polypath.Path, cx, cy, r float64, colorA, colorB string) {
	id := fmt.Sprintf("rgrad%d", len(d.radials))
	d.radials = append(d.radials, radialGradient{id: id, cx: cx, cy: cy, r: r, colorA: colorA, colorB: colorB})
	p.Style.FillColor = fmt.Sprintf("url(#%s)", id)
	d.fills = append(d.fills, p)
}

// Render serializes the accumulated shapes into an SVG 1.1 document.
func (d *Document) Render() string {
	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`,
		d.Width, d.Height, d.Width, d.Height)
	b.WriteByte('\n')

	if d.MetaComment != "" {
		fmt.Fprintf(&b, "<!-- %s -->\n", escapeComment(d.MetaComment))
	}

	writeDefs(&b, d.gradients, d.radials)

	fills := append([]polypath.Path(nil), d.fills...)
	sort.SliceStable(fills, func(i, j int) bool {
		return areaOf(fills[i]) < areaOf(fills[j])
	})
	for _, p := range fills {
		writePath(&b, p, d.Precision)
	}

	for _, p := range d.strokes {
		writePath(&b, p, d.Precision)
	}

	for _, dot := range d.dots {
		fmt.Fprintf(&b, `<circle cx="%s" cy="%s" r="%s" fill="%s"/>`+"\n",
			formatCoord(dot.cx, d.Precision), formatCoord(dot.cy, d.Precision),
			formatCoord(dot.r, d.Precision), dot.fill)
	}

	writeMetaLabel(&b, d)

	b.WriteString("</svg>\n")
	return b.String()
}

// writeDefs emits a <defs> block holding every registered gradient
// (linear, then radial), each a two-stop userSpaceOnUse definition. A
// no-op when both lists are empty, so plain flat-fill documents never
// gain an empty <defs>.
func writeDefs(b *strings.Builder, gradients []linearGradient, radials []radialGradient) {
	if len(gradients) == 0 && len(radials) == 0 {
		return
	}
	b.WriteString("<defs>\n")
	for _, g := range gradients {
		fmt.Fprintf(b, `<linearGradient id="%s" gradientUnits="userSpaceOnUse" x1="%s" y1="%s" x2="%s" y2="%s">`+"\n",
			g.id, formatCoord(g.x1, 2), formatCoord(g.y1, 2), formatCoord(g.x2, 2), formatCoord(g.y2, 2))
		fmt.Fprintf(b, `<stop offset="0%%" stop-color="%s"/>`+"\n", g.colorA)
		fmt.Fprintf(b, `<stop offset="100%%" stop-color="%s"/>`+"\n", g.colorB)
		b.WriteString("</linearGradient>\n")
	}
	for _, g := range radials {
		fmt.Fprintf(b, `<radialGradient id="%s" gradientUnits="userSpaceOnUse" cx="%s" cy="%s" r="%s">`+"\n",
			g.id, formatCoord(g.cx, 2), formatCoord(g.cy, 2), formatCoord(g.r, 2))
		fmt.Fprintf(b, `<stop offset="0%%" stop-color="%s"/>`+"\n", g.colorA)
		fmt.Fprintf(b, `<stop offset="100%%" stop-color="%s"/>`+"\n", g.colorB)
		b.WriteString("</radialGradient>\n")
	}
	b.WriteString("</defs>\n")
}

func areaOf(p polypath.Path) float64 {
	box := p.BBox()
	return box.Width() * box.Height()
}

func writePath(b *strings.Builder, p polypath.Path, precision int) {
	d := pathData(p, precision)
	if d == "" {
		return
	}
	b.WriteString(`<path d="`)
	b.WriteString(d)
	b.WriteString(`"`)
	writeStyleAttrs(b, p.Style)
	b.WriteString("/>\n")
}

func pathData(p polypath.Path, precision int) string {
	var b strings.Builder
	for _, seg := range p.Segments {
		switch seg.Kind {
		case polypath.MoveTo:
			fmt.Fprintf(&b, "M %s %s ", formatCoord(seg.To.X, precision), formatCoord(seg.To.Y, precision))
		case polypath.LineTo:
			fmt.Fprintf(&b, "L %s %s ", formatCoord(seg.To.X, precision), formatCoord(seg.To.Y, precision))
		case polypath.CubicBezierTo:
			fmt.Fprintf(&b, "C %s %s %s %s %s %s ",
				formatCoord(seg.C1.X, precision), formatCoord(seg.C1.Y, precision),
				formatCoord(seg.C2.X, precision), formatCoord(seg.C2.Y, precision),
				formatCoord(seg.To.X, precision), formatCoord(seg.To.Y, precision))
		}
	}
	return strings.TrimSpace(b.String())
}

func writeStyleAttrs(b *strings.Builder, s polypath.Style) {
	fill := s.FillColor
	if fill == "" {
		fill = "none"
	}
	fmt.Fprintf(b, ` fill="%s"`, fill)
	if s.FillRule != "" && s.FillRule != "nonzero" {
		fmt.Fprintf(b, ` fill-rule="%s"`, s.FillRule)
	}
	if s.StrokeColor != "" {
		fmt.Fprintf(b, ` stroke="%s" stroke-width="%s"`, s.StrokeColor, formatCoord(s.StrokeWidth, 3))
		if s.Cap != "" {
			fmt.Fprintf(b, ` stroke-linecap="%s"`, s.Cap)
		}
		if s.Join != "" {
			fmt.Fprintf(b, ` stroke-linejoin="%s"`, s.Join)
		}
	}
	if s.Opacity > 0 && s.Opacity < 1 {
		fmt.Fprintf(b, ` opacity="%s"`, formatCoord(s.Opacity, 3))
	}
}

func formatCoord(v float64, precision int) string {
	s := fmt.Sprintf("%.*f", precision, v)
	if !strings.Contains(s, ".") {
		return s
	}
	s = strings.TrimRight(s, "0")
	return strings.TrimRight(s, ".")
}

func escapeComment(s string) string {
	return strings.ReplaceAll(s, "--", "—")
}
