// Package screenshot writes captured frames to disk.
package screenshot

import (
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/image/bmp"
)

// Capture saves frames as PNG or BMP files named <prefix>_<timestamp>.<format>.
type Capture struct {
	outputDir string
	prefix    string
	format    string
	now       func() time.Time
}

// New creates a capture handler. An unknown format falls back to png.
func New(outputDir, prefix, format string) *Capture {
	format = strings.ToLower(format)
	if format != "bmp" {
		format = "png"
	}
	return &Capture{
		outputDir: outputDir,
		prefix:    prefix,
		format:    format,
		now:       time.Now,
	}
}

// Filename returns the path the next capture would be written to.
func (c *Capture) Filename() string {
	name := c.prefix + "_" + c.now().Format("2006-01-02_15-04-05.000") + "." + c.format
	if c.outputDir != "" {
		name = filepath.Join(c.outputDir, name)
	}
	return name
}

// FromPixels saves tightly packed RGBA pixels read back from OpenGL. Rows are
// flipped since GL's origin is bottom-left.
func (c *Capture) FromPixels(pixels []byte, width, height int) (string, error) {
	if len(pixels) != width*height*4 {
		return "", errors.Errorf("pixel data size mismatch: expected %d, got %d", width*height*4, len(pixels))
	}
	return c.FromImage(flip(pixels, width, height))
}

// FromImage saves img.
func (c *Capture) FromImage(img image.Image) (string, error) {
	if c.outputDir != "" {
		if err := os.MkdirAll(c.outputDir, 0755); err != nil {
			return "", errors.Wrap(err, "creating output dir")
		}
	}

	filename := c.Filename()
	file, err := os.Create(filename)
	if err != nil {
		return "", errors.Wrap(err, "creating file")
	}
	defer file.Close()

	if err := c.encode(file, img); err != nil {
		return "", errors.Wrapf(err, "encoding %s", c.format)
	}
	return filename, nil
}

func (c *Capture) encode(w io.Writer, img image.Image) error {
	if c.format == "bmp" {
		return bmp.Encode(w, img)
	}
	return png.Encode(w, img)
}

func flip(pixels []byte, width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	rowSize := width * 4
	for y := 0; y < height; y++ {
		src := (height - 1 - y) * rowSize
		dst := y * img.Stride
		copy(img.Pix[dst:dst+rowSize], pixels[src:src+rowSize])
	}
	return img
}
