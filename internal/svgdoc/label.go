package svgdoc

import (
	"fmt"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// labelFace is the metrics source for sizing the optional metadata label.
// The teacher measures and draws text the same way (pkg/stdimg/annotate.go,
// font.Drawer + basicfont.Face7x13) when no TTF is supplied; this package
// only needs the measurement half, not the drawing half, since the label
// is emitted as SVG markup rather than rasterized.
var labelFace = basicfont.Face7x13

// measureTextWidth returns the advance width of s in labelFace pixels,
// via font.MeasureString, the same measurement call the teacher's
// Annotate uses before positioning drawn text.
func measureTextWidth(s string) int {
	return font.MeasureString(labelFace, s).Round()
}

// truncateToWidth shortens s with a trailing ellipsis until its measured
// width fits within maxPx, so a metadata label never overflows a narrow
// image.
func truncateToWidth(s string, maxPx int) string {
	if measureTextWidth(s) <= maxPx {
		return s
	}
	const ellipsis = "…"
	for len(s) > 0 {
		s = s[:len(s)-1]
		if measureTextWidth(s+ellipsis) <= maxPx {
			return s + ellipsis
		}
	}
	return ""
}

// AddMetaLabel queues a small monospace text label in the bottom-left
// corner of the document, truncated to fit the image width. Intended for
// a one-line config-hash/version stamp when metadata is requested; unlike
// MetaComment (an invisible XML comment), this is visible markup.
func (d *Document) AddMetaLabel(text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	const marginPx = 8
	d.metaLabel = truncateToWidth(text, d.Width-2*marginPx)
}

// escapeText escapes the characters that would otherwise be interpreted
// as markup inside SVG text content.
func escapeText(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	return r.Replace(s)
}

func writeMetaLabel(b *strings.Builder, d *Document) {
	if d.metaLabel == "" {
		return
	}
	y := d.Height - 6
	if y < 10 {
		y = 10
	}
	fmt.Fprintf(b, `<text x="6" y="%d" font-family="monospace" font-size="11" fill="#888888" fill-opacity="0.6">%s</text>`+"\n",
		y, escapeText(d.metaLabel))
}
