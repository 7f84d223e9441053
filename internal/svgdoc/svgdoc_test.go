package svgdoc

import (
	"strings"
	"testing"

	"github.com/lindqvist/vectorize/internal/geom"
	"github.com/lindqvist/vectorize/internal/polypath"
)

func square(x0, y0, size float64, style polypath.Style) polypath.Path {
	p := polypath.Polyline{Points: []geom.Point{
		{X: x0, Y: y0}, {X: x0 + size, Y: y0}, {X: x0 + size, Y: y0 + size}, {X: x0, Y: y0 + size},
	}, Closed: true}
	return polypath.FromPolyline(p, style)
}

func TestRenderIncludesSVGEnvelope(t *testing.T) {
	doc := New(100, 200, 2)
	out := doc.Render()
	if !strings.Contains(out, `width="100"`) || !strings.Contains(out, `height="200"`) {
		t.Fatalf("expected document dimensions in output: %s", out)
	}
	if !strings.Contains(out, `viewBox="0 0 100 200"`) {
		t.Fatalf("expected viewBox: %s", out)
	}
	if !strings.HasSuffix(strings.TrimSpace(out), "</svg>") {
		t.Fatalf("expected document to close with </svg>")
	}
}

func TestFillsOrderedSmallestFirst(t *testing.T) {
	doc := New(100, 100, 2)
	big := square(0, 0, 50, polypath.Style{FillColor: "#ff0000"})
	small := square(60, 60, 5, polypath.Style{FillColor: "#0000ff"})
	doc.AddFill(big)
	doc.AddFill(small)

	out := doc.Render()
	smallIdx := strings.Index(out, "#0000ff")
	bigIdx := strings.Index(out, "#ff0000")
	if smallIdx < 0 || bigIdx < 0 || smallIdx > bigIdx {
		t.Fatalf("expected smaller fill emitted before larger fill, got: %s", out)
	}
}

func TestStrokesEmittedAfterFills(t *testing.T) {
	doc := New(100, 100, 2)
	doc.AddStroke(square(0, 0, 10, polypath.Style{StrokeColor: "#000000", StrokeWidth: 1}))
	doc.AddFill(square(20, 20, 10, polypath.Style{FillColor: "#00ff00"}))

	out := doc.Render()
	strokeIdx := strings.Index(out, "#000000")
	fillIdx := strings.Index(out, "#00ff00")
	if strokeIdx < fillIdx {
		t.Fatalf("expected stroke to come after fill in document order")
	}
}

func TestMetaCommentIncludedWhenSet(t *testing.T) {
	doc := New(10, 10, 2)
	doc.MetaComment = "config-hash:abc123"
	out := doc.Render()
	if !strings.Contains(out, "config-hash:abc123") {
		t.Fatalf("expected metadata comment present, got: %s", out)
	}
}

func TestFormatCoordTrimsTrailingZeros(t *testing.T) {
	if got := formatCoord(3.0, 2); got != "3" {
		t.Fatalf("expected '3', got %q", got)
	}
	if got := formatCoord(3.5, 2); got != "3.5" {
		t.Fatalf("expected '3.5', got %q", got)
	}
	if got := formatCoord(100, 0); got != "100" {
		t.Fatalf("expected '100' unchanged with zero precision, got %q", got)
	}
}

func TestAddDotEmitsCircle(t *testing.T) {
	doc := New(50, 50, 2)
	doc.AddDot(10, 20, 3, "#123456")
	out := doc.Render()
	if !strings.Contains(out, `<circle`) || !strings.Contains(out, `fill="#123456"`) {
		t.Fatalf("expected a circle element, got: %s", out)
	}
}

func TestAddMetaLabelEmitsText(t *testing.T) {
	doc := New(200, 100, 2)
	doc.AddMetaLabel("vectorize backend=edge hash=deadbeef")
	out := doc.Render()
	if !strings.Contains(out, "<text") {
		t.Fatalf("expected a text element, got: %s", out)
	}
	if !strings.Contains(out, "vectorize backend=edge") {
		t.Fatalf("expected label text present, got: %s", out)
	}
}

func TestAddMetaLabelTruncatesToFitNarrowImage(t *testing.T) {
	doc := New(20, 20, 2)
	doc.AddMetaLabel("vectorize backend=edge hash=deadbeefdeadbeef")
	if measureTextWidth(doc.metaLabel) > 20-16 {
		t.Fatalf("expected label truncated to fit width, got %q", doc.metaLabel)
	}
	if !strings.HasSuffix(doc.metaLabel, "…") && doc.metaLabel != "" {
		t.Fatalf("expected truncated label to end in ellipsis or be empty, got %q", doc.metaLabel)
	}
}

func TestAddGradientFillEmitsDefsAndReference(t *testing.T) {
	doc := New(100, 100, 2)
	doc.AddGradientFill(square(0, 0, 20, polypath.Style{}), 0, 0, 20, 20, "#ff0000", "#0000ff")
	out := doc.Render()
	if !strings.Contains(out, "<defs>") || !strings.Contains(out, "</defs>") {
		t.Fatalf("expected a defs block, got: %s", out)
	}
	if !strings.Contains(out, `<linearGradient id="grad0"`) {
		t.Fatalf("expected a linearGradient definition, got: %s", out)
	}
	if !strings.Contains(out, `stop-color="#ff0000"`) || !strings.Contains(out, `stop-color="#0000ff"`) {
		t.Fatalf("expected both gradient stops, got: %s", out)
	}
	if !strings.Contains(out, `fill="url(#grad0)"`) {
		t.Fatalf("expected the path to reference the gradient, got: %s", out)
	}
}

func TestAddRadialGradientFillEmitsDefsAndReference(t *testing.T) {
	doc := New(100, 100, 2)
	doc.AddRadialGradientFill(square(0, 0, 20, polypath.Style{}), 10, 10, 15, "#ffffff", "#000000")
	out := doc.Render()
	if !strings.Contains(out, `<radialGradient id="rgrad0"`) {
		t.Fatalf("expected a radialGradient definition, got: %s", out)
	}
	if !strings.Contains(out, `fill="url(#rgrad0)"`) {
		t.Fatalf("expected the path to reference the radial gradient, got: %s", out)
	}
}

func TestRenderOmitsDefsWhenNoGradients(t *testing.T) {
	doc := New(50, 50, 2)
	doc.AddFill(square(0, 0, 10, polypath.Style{FillColor: "#ffffff"}))
	out := doc.Render()
	if strings.Contains(out, "<defs>") {
		t.Fatalf("expected no defs block without gradients, got: %s", out)
	}
}

func TestAddMetaLabelEmptyTextIsNoop(t *testing.T) {
	doc := New(50, 50, 2)
	doc.AddMetaLabel("   ")
	out := doc.Render()
	if strings.Contains(out, "<text") {
		t.Fatalf("expected no text element for blank label, got: %s", out)
	}
}
