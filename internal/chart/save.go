package chart

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// FormatFromPath derives the image format from a file extension, defaulting
// to png.
func FormatFromPath(path string) string {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if ext == "" {
		return "png"
	}
	return ext
}

// WriteTo renders the figure in the given format. Raster formats use the
// figure's DPI.
func WriteTo(fig *Figure, w io.Writer, format string) (int64, error) {
	p, err := fig.Plot()
	if err != nil {
		return 0, err
	}

	switch format {
	case "png", "jpg", "jpeg", "tif", "tiff":
		c := vgimg.NewWith(
			vgimg.UseWH(fig.Width, fig.Height),
			vgimg.UseDPI(fig.DPI),
		)
		p.Draw(draw.New(c))

		var wt io.WriterTo
		switch format {
		case "png":
			wt = vgimg.PngCanvas{Canvas: c}
		case "jpg", "jpeg":
			wt = vgimg.JpegCanvas{Canvas: c}
		default:
			wt = vgimg.TiffCanvas{Canvas: c}
		}
		return wt.WriteTo(w)
	}

	wt, err := p.WriterTo(fig.Width, fig.Height, format)
	if err != nil {
		return 0, fmt.Errorf("chart: %w", err)
	}
	return wt.WriteTo(w)
}

// Save renders the figure to path. The image is written to a temporary file
// next to path and renamed over it, so a failed write never replaces an
// existing image.
func Save(fig *Figure, path string) error {
	dir, base := filepath.Split(path)
	if dir == "" {
		dir = "."
	}

	tmp, err := os.CreateTemp(dir, "."+base+".tmp-*")
	if err != nil {
		return fmt.Errorf("chart: save %s: %w", path, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	bw := bufio.NewWriter(tmp)
	if _, err := WriteTo(fig, bw, FormatFromPath(path)); err != nil {
		tmp.Close()
		return fmt.Errorf("chart: save %s: %w", path, err)
	}
	if err := bw.Flush(); err != nil {
		tmp.Close()
		return fmt.Errorf("chart: save %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("chart: save %s: %w", path, err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		return fmt.Errorf("chart: save %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("chart: save %s: %w", path, err)
	}
	return nil
}
