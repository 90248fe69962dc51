package display

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"log/slog"

	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/devices/v3/ssd1306/image1bit"
	"periph.io/x/devices/v3/waveshare2in13v4"
	"periph.io/x/host/v3"
)

// Waveshare drives the 2.13" v4 e-paper HAT over SPI.
type Waveshare struct {
	port spi.PortCloser
	dev  *waveshare2in13v4.Dev
}

// OpenWaveshare initialises the host drivers and opens the default SPI port.
func OpenWaveshare() (*Waveshare, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("init host: %w", err)
	}

	port, err := spireg.Open("")
	if err != nil {
		return nil, fmt.Errorf("open spi: %w", err)
	}

	opts := waveshare2in13v4.EPD2in13v4
	dev, err := waveshare2in13v4.NewHat(port, &opts)
	if err != nil {
		port.Close()
		return nil, fmt.Errorf("open panel: %w", err)
	}

	slog.Info("display opened", "bounds", dev.Bounds())
	return &Waveshare{port: port, dev: dev}, nil
}

// Init wakes the panel. It must be called again after Sleep.
func (w *Waveshare) Init() error {
	if err := w.dev.Init(); err != nil {
		return fmt.Errorf("init panel: %w", err)
	}
	return nil
}

// Clear blanks the physical panel.
func (w *Waveshare) Clear() error {
	if err := w.dev.Clear(color.White); err != nil {
		return fmt.Errorf("clear panel: %w", err)
	}
	return nil
}

// Flush pushes a landscape frame to the portrait-mounted panel.
func (w *Waveshare) Flush(frame image.Image) error {
	bounds := w.dev.Bounds()
	portrait := landscapeToPortrait(frame, bounds)
	if err := w.dev.Draw(bounds, portrait, image.Point{}); err != nil {
		return fmt.Errorf("draw panel: %w", err)
	}
	return nil
}

func (w *Waveshare) Sleep() error {
	if err := w.dev.Sleep(); err != nil {
		return fmt.Errorf("sleep panel: %w", err)
	}
	return nil
}

func (w *Waveshare) Close() error {
	if err := w.dev.Halt(); err != nil {
		slog.Warn("halting panel", "error", err)
	}
	return w.port.Close()
}

// landscapeToPortrait rotates src a quarter turn so a Width x Height frame
// fills a Height x Width panel.
func landscapeToPortrait(src image.Image, dst image.Rectangle) *image1bit.VerticalLSB {
	sb := src.Bounds()
	out := image1bit.NewVerticalLSB(dst)
	draw.Draw(out, dst, &image.Uniform{C: image1bit.On}, image.Point{}, draw.Src)

	for y := dst.Min.Y; y < dst.Max.Y; y++ {
		for x := dst.Min.X; x < dst.Max.X; x++ {
			sx := sb.Min.X + (y - dst.Min.Y)
			sy := sb.Max.Y - 1 - (x - dst.Min.X)
			if !image.Pt(sx, sy).In(sb) {
				continue
			}
			out.Set(x, y, src.At(sx, sy))
		}
	}
	return out
}
