// Package render lays weather out on the frame: text lines below a moving
// vertical cursor, separators and icon rows.
package render

import (
	"fmt"
	"image"
	"log/slog"

	"github.com/i474232898/eink-weather/internal/common"
	"github.com/i474232898/eink-weather/internal/icons"
)

// Stride selects how far the cursor moves before each line is drawn.
type Stride int

const (
	StrideDefault Stride = iota
	StrideThin
	StrideNone
)

// Pixels returns the line advance in pixels.
func (s Stride) Pixels() int {
	switch s {
	case StrideThin:
		return 8
	case StrideNone:
		return 0
	default:
		return 10
	}
}

// Options controls a single draw call. The zero value appends below the cursor.
type Options struct {
	// Clear blanks the physical panel before drawing.
	Clear bool
	// Blank fills the frame with paper and moves the cursor back to the top.
	Blank bool
	// Flush pushes the frame to the panel once every line is drawn.
	Flush bool
	Stride Stride
	// RightAlign pads each line so it ends at the text column limit. It implies StrideNone.
	RightAlign bool
}

// Cursor is the y position of the last line drawn. Each render pass owns one.
type Cursor struct {
	y int
}

func (c *Cursor) Y() int {
	return c.y
}

func (c *Cursor) advance(px int) {
	c.y += px
}

func (c *Cursor) reset() {
	c.y = 0
}

// Canvas is the frame being drawn on.
type Canvas interface {
	Bounds() image.Rectangle
	Image() image.Image
	Blank()
	Text(x, y int, s string)
	HLine(x0, x1, y int)
	Blit(x, y int, img image.Image)
	CharWidth() int
}

// Panel is the physical display the frame is pushed to.
type Panel interface {
	Init() error
	Clear() error
	Flush(frame image.Image) error
	Sleep() error
}

const (
	// iconOffset drops icons below the cursor so they line up with the first text line.
	iconOffset = 7
	iconGap    = 4
	// separatorPad is the space left on either side of a separator.
	separatorPad = 2
)

// Engine draws onto a Canvas and flushes it to a Panel.
type Engine struct {
	canvas Canvas
	panel  Panel
	icon   func(name string) (image.Image, bool)
}

func NewEngine(canvas Canvas, panel Panel) *Engine {
	return &Engine{
		canvas: canvas,
		panel:  panel,
		icon:   icons.Get,
	}
}

// Wake brings the panel out of sleep.
func (e *Engine) Wake() error {
	return e.panel.Init()
}

// Text draws lines at the left edge.
func (e *Engine) Text(cur *Cursor, opts Options, lines ...string) error {
	return e.TextAt(cur, opts, 0, lines...)
}

// TextAt draws each line at column x, advancing the cursor by the stride before each one.
func (e *Engine) TextAt(cur *Cursor, opts Options, x int, lines ...string) error {
	if opts.Clear {
		if err := e.panel.Clear(); err != nil {
			return err
		}
	}
	if opts.Blank {
		e.canvas.Blank()
		cur.reset()
	}

	stride := opts.Stride
	if opts.RightAlign {
		stride = StrideNone
	}

	for _, line := range lines {
		cur.advance(stride.Pixels())
		lx := x
		if opts.RightAlign {
			lx = x + e.rightPad(line)
		}
		e.canvas.Text(lx, cur.Y(), line)
	}

	if opts.Flush {
		return e.Flush()
	}
	return nil
}

// TextRight draws text so it ends at the text column limit, on the current line.
func (e *Engine) TextRight(cur *Cursor, opts Options, text string) error {
	opts.RightAlign = true
	return e.TextAt(cur, opts, 0, text)
}

func (e *Engine) rightPad(text string) int {
	pad := (common.MaxTextWidth - len([]rune(text))) * e.canvas.CharWidth()
	if pad < 0 {
		return 0
	}
	return pad
}

// AddVerticalSpace moves the cursor down px pixels without drawing.
func (e *Engine) AddVerticalSpace(cur *Cursor, px int) {
	cur.advance(px)
}

// HorizontalSeparator draws a full-width rule below the cursor.
func (e *Engine) HorizontalSeparator(cur *Cursor) {
	cur.advance(separatorPad)
	b := e.canvas.Bounds()
	e.canvas.HLine(b.Min.X, b.Max.X-1, cur.Y()+e.canvas.CharWidth())
	cur.advance(separatorPad)
}

// Icons draws the named icons left to right just below the cursor and
// returns the column where text beside them should start. Unknown names are skipped.
func (e *Engine) Icons(cur *Cursor, names []string) int {
	x := 0
	y := cur.Y() + iconOffset
	for _, name := range names {
		img, ok := e.icon(name)
		if !ok {
			slog.Warn("no bitmap for icon", "icon", name)
			continue
		}
		e.canvas.Blit(x, y, img)
		x += img.Bounds().Dx() + iconGap
	}
	return x
}

// Flush pushes the frame to the panel.
func (e *Engine) Flush() error {
	if err := e.panel.Flush(e.canvas.Image()); err != nil {
		return fmt.Errorf("flush: %w", err)
	}
	return nil
}

// Sleep puts the panel into its low-power state.
func (e *Engine) Sleep() error {
	return e.panel.Sleep()
}
