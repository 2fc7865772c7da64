// Package panel synthesizes the overlay's status bitmap from the
// current round context.
package panel

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/TommyZ-7/ton-vr-overlay/internal/protocol"
)

// RoundContext is the unit the renderer consumes: the round label plus
// the wholesale-replaced terror batch.
type RoundContext struct {
	RoundType string
	Terrors   []protocol.Terror
}

// Layout constants, all in pixels. Panel height is a pure function of
// the context so repeated renders of the same batch are identical.
const (
	panelWidth    = 420
	panelPad      = 14
	roundLineH    = 24
	headerLineH   = 26
	abilityLineH  = 19
	entitySpacing = 10
	colorBarW     = 4
	maxAbilities  = 4
)

var (
	colorBackground = color.NRGBA{13, 13, 18, 240}
	colorAccent     = color.NRGBA{99, 142, 255, 255} // default when a terror has no color
	colorText       = color.NRGBA{235, 235, 240, 255}
	colorDimText    = blend(colorText, colorBackground, 0.40)
)

// Renderer draws round contexts with embedded Go fonts. Faces are not
// safe for concurrent use; the foreground loop is the only caller.
type Renderer struct {
	nameFace font.Face
	bodyFace font.Face
}

// NewRenderer parses the embedded fonts. Failure means the platform
// cannot raster text at all; the caller logs it and skips rendering
// instead of exiting.
func NewRenderer() (*Renderer, error) {
	bold, err := opentype.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("panel: parse bold font: %w", err)
	}
	regular, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("panel: parse regular font: %w", err)
	}
	nameFace, err := opentype.NewFace(bold, &opentype.FaceOptions{Size: 16, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		return nil, fmt.Errorf("panel: name face: %w", err)
	}
	bodyFace, err := opentype.NewFace(regular, &opentype.FaceOptions{Size: 13, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		return nil, fmt.Errorf("panel: body face: %w", err)
	}
	return &Renderer{nameFace: nameFace, bodyFace: bodyFace}, nil
}

// Height returns the panel height for a context: padding, an optional
// round label line, and per terror a header line plus up to four
// ability lines. Abilities past the fourth never add height.
func Height(ctx RoundContext) int {
	if len(ctx.Terrors) == 0 {
		return 2*panelPad + headerLineH
	}
	h := 2 * panelPad
	if ctx.RoundType != "" {
		h += roundLineH
	}
	for i, t := range ctx.Terrors {
		if i > 0 {
			h += entitySpacing
		}
		n := len(t.Abilities)
		if n > maxAbilities {
			n = maxAbilities
		}
		h += headerLineH + n*abilityLineH
	}
	return h
}

// Render synthesizes the panel bitmap for a context. The output is
// opaque dark fill with a thin accent border; content volume drives the
// height, never the width.
func (r *Renderer) Render(ctx RoundContext) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, panelWidth, Height(ctx)))
	draw.Draw(img, img.Bounds(), image.NewUniform(colorBackground), image.Point{}, draw.Src)
	drawBorder(img, colorAccent)

	if len(ctx.Terrors) == 0 {
		r.drawText(img, r.bodyFace, colorDimText, panelPad, panelPad+17, "Waiting for round...")
		return img
	}

	y := panelPad
	if ctx.RoundType != "" {
		w := font.MeasureString(r.nameFace, ctx.RoundType).Ceil()
		r.drawText(img, r.nameFace, colorAccent, (panelWidth-w)/2, y+17, ctx.RoundType)
		y += roundLineH
	}

	for i, t := range ctx.Terrors {
		if i > 0 {
			y += entitySpacing
		}
		y = r.drawTerror(img, t, y)
	}
	return img
}

func (r *Renderer) drawTerror(img *image.NRGBA, t protocol.Terror, y int) int {
	accent := ParseColor(t.Color)

	// Header: leading color bar + name in the terror's color.
	fillRect(img, panelPad, y+4, colorBarW, headerLineH-8, accent)
	r.drawText(img, r.nameFace, accent, panelPad+colorBarW+8, y+18, t.Name)
	y += headerLineH

	abilities := t.Abilities
	if len(abilities) > maxAbilities {
		abilities = abilities[:maxAbilities]
	}
	for _, a := range abilities {
		d := &font.Drawer{
			Dst:  img,
			Src:  image.NewUniform(colorDimText),
			Face: r.bodyFace,
			Dot:  fixed.P(panelPad+colorBarW+8, y+14),
		}
		d.DrawString(a.Label + ": ")
		d.Src = image.NewUniform(colorText)
		d.DrawString(a.Value)
		y += abilityLineH
	}
	return y
}

func (r *Renderer) drawText(img *image.NRGBA, face font.Face, c color.NRGBA, x, baseline int, s string) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(x, baseline),
	}
	d.DrawString(s)
}

// ParseColor parses a "r,g,b" triple of 0–255 integers. Anything
// malformed or partial falls back to the default accent so a bad color
// can never fail a render.
func ParseColor(s string) color.NRGBA {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return colorAccent
	}
	var rgb [3]uint8
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || v < 0 || v > 255 {
			return colorAccent
		}
		rgb[i] = uint8(v)
	}
	return color.NRGBA{rgb[0], rgb[1], rgb[2], 255}
}

func fillRect(img *image.NRGBA, x, y, w, h int, c color.NRGBA) {
	draw.Draw(img, image.Rect(x, y, x+w, y+h), image.NewUniform(c), image.Point{}, draw.Src)
}

func drawBorder(img *image.NRGBA, c color.NRGBA) {
	b := img.Bounds()
	fillRect(img, 0, 0, b.Dx(), 1, c)
	fillRect(img, 0, b.Dy()-1, b.Dx(), 1, c)
	fillRect(img, 0, 0, 1, b.Dy(), c)
	fillRect(img, b.Dx()-1, 0, 1, b.Dy(), c)
}

// blend mixes two colors in RGB space, t of the way from a to b.
func blend(a, b color.NRGBA, t float64) color.NRGBA {
	ca := colorful.Color{R: float64(a.R) / 255, G: float64(a.G) / 255, B: float64(a.B) / 255}
	cb := colorful.Color{R: float64(b.R) / 255, G: float64(b.G) / 255, B: float64(b.B) / 255}
	m := ca.BlendRgb(cb, t).Clamped()
	return color.NRGBA{uint8(m.R*255 + 0.5), uint8(m.G*255 + 0.5), uint8(m.B*255 + 0.5), 255}
}
