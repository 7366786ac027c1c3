package media

import (
	"fmt"

	"github.com/davidbyttow/govips/v2/vips"
)

// vipsResizer implements Resizer on libvips.
type vipsResizer struct{}

// InitVips initializes the vips library. Call once at application startup.
func InitVips() {
	vips.Startup(nil)
}

// ShutdownVips shuts down the vips library. Call at application shutdown.
func ShutdownVips() {
	vips.Shutdown()
}

func (vipsResizer) Dimensions(data []byte) (int, int, error) {
	image, err := vips.NewImageFromBuffer(data)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to load image: %w", err)
	}
	defer image.Close()
	return image.Width(), image.Height(), nil
}

func (vipsResizer) ResizeContain(data []byte, mime string, width, height, quality int) ([]byte, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid target box %dx%d", width, height)
	}

	image, err := vips.NewImageFromBuffer(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load image: %w", err)
	}
	defer image.Close()

	origWidth := image.Width()
	origHeight := image.Height()
	if origWidth <= 0 || origHeight <= 0 {
		return nil, fmt.Errorf("invalid source dimensions %dx%d", origWidth, origHeight)
	}

	// Uniform scale so the image fits inside the box, then letterbox the
	// rounding remainder with a centered embed. Never crops.
	hScale := float64(width) / float64(origWidth)
	vScale := float64(height) / float64(origHeight)
	scale := min(hScale, vScale)
	if err := image.Resize(scale, vips.KernelLanczos3); err != nil {
		return nil, fmt.Errorf("resize failed: %w", err)
	}

	if image.Width() != width || image.Height() != height {
		left := (width - image.Width()) / 2
		top := (height - image.Height()) / 2
		if left < 0 {
			left = 0
		}
		if top < 0 {
			top = 0
		}
		if err := image.Embed(left, top, width, height, vips.ExtendBlack); err != nil {
			return nil, fmt.Errorf("embed failed: %w", err)
		}
	}

	switch mime {
	case "image/jpeg":
		out, _, err := image.ExportJpeg(&vips.JpegExportParams{
			Quality:        quality,
			OptimizeCoding: true,
		})
		if err != nil {
			return nil, fmt.Errorf("jpeg export failed: %w", err)
		}
		return out, nil
	case "image/png":
		out, _, err := image.ExportPng(&vips.PngExportParams{
			Compression: 6,
		})
		if err != nil {
			return nil, fmt.Errorf("png export failed: %w", err)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unsupported mime for resize: %s", mime)
	}
}
