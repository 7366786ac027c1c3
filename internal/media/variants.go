package media

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/menuforge/menuforge/internal/project"
)

var (
	ErrDecodeFailed = errors.New("image decode failed")
	ErrResizeFailed = errors.New("image resize failed")
)

// DefaultVariantQuality is the encode quality for lossy formats (0.86 on the
// unit scale). PNG stays lossless.
const DefaultVariantQuality = 86

// Max target edge per size bucket, applied to the longest image edge.
const (
	EdgeSmall  = 480
	EdgeMedium = 960
	EdgeLarge  = 1440
)

// variantBuckets is the generation order: largest first so smaller buckets
// can reuse an already-produced edge.
var variantBuckets = []struct {
	Bucket  string
	MaxEdge int
	Suffix  string
}{
	{project.BucketLarge, EdgeLarge, "-lg"},
	{project.BucketMedium, EdgeMedium, "-md"},
	{project.BucketSmall, EdgeSmall, "-sm"},
}

// Resizer is the narrow capability the generator needs from an image
// library. The production implementation is vips; tests inject fakes.
type Resizer interface {
	// Dimensions decodes enough of the image to report its pixel size.
	Dimensions(data []byte) (width, height int, err error)
	// ResizeContain scales the image into a width×height box with centered
	// contain placement (letterbox, never crop) and re-encodes it to the
	// same mime. Quality applies to lossy formats only.
	ResizeContain(data []byte, mime string, width, height, quality int) ([]byte, error)
}

// VariantEntry is one physical output file produced by variant generation.
// Bucket is the size bucket that first produced the bytes; collapsed buckets
// share the entry.
type VariantEntry struct {
	Bucket string
	Path   string
	Data   []byte
}

// VariantSet is the full result of resizing one source: the small/medium/
// large path triad (sharing allowed) plus the distinct output files.
type VariantSet struct {
	Paths   project.ResponsivePaths
	Entries []VariantEntry
}

// Generator derives responsive byte variants of hero images.
type Generator struct {
	resizer Resizer
	quality int
}

// NewGenerator creates a generator backed by the vips resizer.
func NewGenerator() *Generator {
	return NewGeneratorWithResizer(vipsResizer{})
}

// NewGeneratorWithResizer creates a generator with an injected resizer.
func NewGeneratorWithResizer(r Resizer) *Generator {
	return &Generator{resizer: r, quality: DefaultVariantQuality}
}

// Generate produces the small/medium/large variants for one source image.
// Identical target pixel edges never produce two distinct output files: the
// first bucket to hit an edge owns the bytes, later buckets share its path.
// When the target edge equals the source's longest edge the original bytes
// are reused unchanged (no upscaling, no re-encode).
//
// Any decode or encode failure returns a nil set and the error; partial
// variant sets are never returned. The caller falls back to the unresized
// original.
func (g *Generator) Generate(ctx context.Context, basePath string, data []byte, mime string) (*VariantSet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	width, height, err := g.resizer.Dimensions(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecodeFailed, err)
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: bad dimensions %dx%d", ErrDecodeFailed, width, height)
	}
	longestEdge := max(width, height)

	set := &VariantSet{}
	producedByEdge := make(map[int]string) // target edge -> output path

	for _, bucket := range variantBuckets {
		targetEdge := min(longestEdge, bucket.MaxEdge)

		if path, ok := producedByEdge[targetEdge]; ok {
			setBucketPath(&set.Paths, bucket.Bucket, path)
			continue
		}

		outputPath := VariantPath(basePath, bucket.Suffix)
		var variantData []byte
		if targetEdge == longestEdge {
			variantData = data
		} else {
			scale := float64(targetEdge) / float64(longestEdge)
			targetW := scaledDimension(width, scale)
			targetH := scaledDimension(height, scale)
			variantData, err = g.resizer.ResizeContain(data, mime, targetW, targetH, g.quality)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrResizeFailed, err)
			}
		}

		producedByEdge[targetEdge] = outputPath
		setBucketPath(&set.Paths, bucket.Bucket, outputPath)
		set.Entries = append(set.Entries, VariantEntry{
			Bucket: bucket.Bucket,
			Path:   outputPath,
			Data:   variantData,
		})
	}

	return set, nil
}

func scaledDimension(dim int, scale float64) int {
	scaled := int(math.Round(float64(dim) * scale))
	if scaled < 1 {
		return 1
	}
	return scaled
}

func setBucketPath(paths *project.ResponsivePaths, bucket, path string) {
	switch bucket {
	case project.BucketSmall:
		paths.Small = path
	case project.BucketMedium:
		paths.Medium = path
	case project.BucketLarge:
		paths.Large = path
	}
}

// VariantPath inserts a size suffix before the file extension, or appends it
// when the path has none.
func VariantPath(basePath, suffix string) string {
	dot := strings.LastIndex(basePath, ".")
	slash := strings.LastIndex(basePath, "/")
	if dot <= slash {
		return basePath + suffix
	}
	return basePath[:dot] + suffix + basePath[dot:]
}
