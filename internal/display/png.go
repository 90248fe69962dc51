package display

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
)

// PNGFile is a development panel that writes every flushed frame to a PNG file.
type PNGFile struct {
	path    string
	flushes int
}

func NewPNGFile(path string) *PNGFile {
	return &PNGFile{path: path}
}

func (p *PNGFile) Init() error {
	return os.MkdirAll(filepath.Dir(p.path), 0o755)
}

// Clear writes an empty frame.
func (p *PNGFile) Clear() error {
	return p.write(NewFramebuffer().Image())
}

func (p *PNGFile) Flush(frame image.Image) error {
	p.flushes++
	return p.write(frame)
}

func (p *PNGFile) Sleep() error {
	slog.Debug("png panel idle", "path", p.path, "flushes", p.flushes)
	return nil
}

func (p *PNGFile) Close() error {
	return nil
}

// write replaces the file in one rename so viewers never see a partial image.
func (p *PNGFile) write(frame image.Image) error {
	var buf bytes.Buffer
	if err := png.Encode(&buf, frame); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}

	tmp := p.path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write png: %w", err)
	}
	if err := os.Rename(tmp, p.path); err != nil {
		return fmt.Errorf("write png: %w", err)
	}
	return nil
}
