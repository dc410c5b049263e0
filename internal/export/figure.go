// Package export writes finished figures to disk as PNG or SVG.
package export

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
	"gonum.org/v1/plot/vg/vgsvg"
)

// DPI fixes the pixel size of raster figures.
const DPI = 96

var ErrUnsupportedFormat = errors.New("export: unsupported figure format")

// Pixels converts a length in pixels at DPI into a vg length.
func Pixels(n float64) vg.Length { return vg.Length(n) * vg.Inch / DPI }

// NewCanvas returns a width×height pixel canvas for the format named by the
// file extension ext.
func NewCanvas(ext string, width, height int) (vg.CanvasWriterTo, error) {
	w, h := Pixels(float64(width)), Pixels(float64(height))
	switch strings.ToLower(ext) {
	case ".png":
		return vgimg.PngCanvas{Canvas: vgimg.NewWith(vgimg.UseWH(w, h), vgimg.UseDPI(DPI))}, nil
	case ".svg":
		return vgsvg.New(w, h), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
}

// WriteFigure draws p and writes it to path, creating parent directories.
func WriteFigure(path string, width, height int, p *plot.Plot) error {
	c, err := NewCanvas(filepath.Ext(path), width, height)
	if err != nil {
		return err
	}
	p.Draw(draw.New(c))

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create figure dir: %w", err)
		}
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create figure: %w", err)
	}
	if err := write(file, c); err != nil {
		file.Close()
		return fmt.Errorf("write figure: %w", err)
	}
	return file.Close()
}

func write(w io.Writer, c io.WriterTo) error {
	_, err := c.WriteTo(w)
	return err
}
