package ui

import (
	"image/color"
	"log"
	"strings"
	"sync"

	"github.com/go-fonts/latin-modern/lmroman10regular"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
)

// pixelsPerUnit is the texture resolution of UI planes: how many texture
// pixels back one world unit of widget surface.
const pixelsPerUnit = 256

const defaultFontPx = 26

var (
	fontOnce   sync.Once
	parsedFont *opentype.Font
	faceMu     sync.Mutex
	faces      = map[int]font.Face{}
)

// face returns a shared font face at the given pixel size. Faces are
// cached; they are never disposed since only a handful of sizes exist.
func face(px int) font.Face {
	if px <= 0 {
		px = defaultFontPx
	}
	fontOnce.Do(func() {
		f, err := opentype.Parse(lmroman10regular.TTF)
		if err != nil {
			log.Fatalf("ui: parsing builtin font: %v", err)
		}
		parsedFont = f
	})

	faceMu.Lock()
	defer faceMu.Unlock()
	if f, ok := faces[px]; ok {
		return f
	}
	f, err := opentype.NewFace(parsedFont, &opentype.FaceOptions{
		Size:    float64(px),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		log.Fatalf("ui: creating %dpx font face: %v", px, err)
	}
	faces[px] = f
	return f
}

func (c RGBA) toNRGBA() color.NRGBA {
	return color.NRGBA{
		R: uint8(c.R * 255),
		G: uint8(c.G * 255),
		B: uint8(c.B * 255),
		A: uint8(c.A * 255),
	}
}

// drawCircleButton paints a filled circle with a single centered glyph
// into dst, which is reused between the base and hover states.
func drawCircleButton(dst *ebiten.Image, label string, fill RGBA) {
	dst.Clear()
	w, h := dst.Bounds().Dx(), dst.Bounds().Dy()
	cx, cy := float32(w)/2, float32(h)/2
	r := cx
	if cy < r {
		r = cy
	}
	vector.DrawFilledCircle(dst, cx, cy, r, fill.toNRGBA(), true)

	f := face(h / 2)
	bounds := text.BoundString(f, label)
	x := (w - bounds.Dx()) / 2
	y := (h-bounds.Dy())/2 - bounds.Min.Y
	text.Draw(dst, label, f, x-bounds.Min.X, y, color.White)
}

// wrapText greedily word-wraps s to fit maxWidth pixels at the given
// face. Explicit newlines are honored.
func wrapText(f font.Face, s string, maxWidth int) []string {
	var lines []string
	for _, paragraph := range strings.Split(s, "\n") {
		words := strings.Fields(paragraph)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		line := words[0]
		for _, word := range words[1:] {
			candidate := line + " " + word
			if font.MeasureString(f, candidate).Ceil() > maxWidth {
				lines = append(lines, line)
				line = word
				continue
			}
			line = candidate
		}
		lines = append(lines, line)
	}
	return lines
}

// renderParagraph draws s word-wrapped into a new image that is exactly
// as tall as the wrapped text needs, at the given width.
func renderParagraph(s string, widthPx, fontPx int) *ebiten.Image {
	f := face(fontPx)
	const pad = 12
	lines := wrapText(f, s, widthPx-2*pad)
	metrics := f.Metrics()
	lineHeight := metrics.Height.Ceil()
	heightPx := lineHeight*len(lines) + 2*pad
	img := ebiten.NewImage(widthPx, heightPx)
	y := pad + metrics.Ascent.Ceil()
	for _, line := range lines {
		text.Draw(img, line, f, pad, y, color.White)
		y += lineHeight
	}
	return img
}
