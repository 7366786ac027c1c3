// Package media decides which image source represents an item in a given
// presentation context and produces responsive size variants of hero images.
package media

import (
	"fmt"
	"strings"

	"github.com/menuforge/menuforge/internal/assets"
	"github.com/menuforge/menuforge/internal/project"
)

// Context names a presentation surface with its own source priority.
type Context string

const (
	// ContextCarousel is the category strip thumbnail surface.
	ContextCarousel Context = "carousel"
	// ContextDetail is the full-size item detail surface.
	ContextDetail Context = "detail"
)

// SrcSetWidths are the fixed widths announced in a srcset descriptor, one
// per size bucket.
var SrcSetWidths = map[string]int{
	project.BucketSmall:  480,
	project.BucketMedium: 960,
	project.BucketLarge:  1440,
}

// srcSetBucketOrder is ascending width order for descriptor assembly.
var srcSetBucketOrder = []string{project.BucketSmall, project.BucketMedium, project.BucketLarge}

// DefaultFormatPreference prefers webp over gif when a derived bucket offers
// both. Formats outside the list lose to listed ones; among themselves the
// first declared entry wins.
var DefaultFormatPreference = []string{"webp", "gif"}

// Resolver picks a single best source for an item and context.
type Resolver struct {
	formatPreference []string
}

// NewResolver creates a resolver with the default format preference.
func NewResolver() *Resolver {
	return &Resolver{formatPreference: DefaultFormatPreference}
}

// NewResolverWithPreference creates a resolver with a custom format order.
func NewResolverWithPreference(formats []string) *Resolver {
	if len(formats) == 0 {
		formats = DefaultFormatPreference
	}
	return &Resolver{formatPreference: formats}
}

// bucketOrder returns the size-bucket priority for a context. Detail wants
// the sharpest image; the carousel prefers medium to save bandwidth on
// thumbnails.
func bucketOrder(ctx Context) []string {
	if ctx == ContextCarousel {
		return []string{project.BucketMedium, project.BucketLarge, project.BucketSmall}
	}
	return []string{project.BucketLarge, project.BucketMedium, project.BucketSmall}
}

// ResolveItemImage returns the single best source string for an item in the
// given context, or "" when the item has no usable source.
func (r *Resolver) ResolveItemImage(item *project.MenuItem, ctx Context) string {
	if item == nil {
		return ""
	}
	media := &item.Media

	// Alternate scroll mode replaces the whole carousel chain.
	if ctx == ContextCarousel && media.ScrollAnimationMode == project.ScrollAnimationAlternate {
		if src := strings.TrimSpace(media.ScrollAnimationSrc); src != "" {
			return src
		}
	}

	order := bucketOrder(ctx)

	for _, bucket := range order {
		if variant, ok := media.Derived[bucket]; ok {
			if src := r.resolveVariant(variant); src != "" {
				return src
			}
		}
	}

	for _, bucket := range order {
		if src := strings.TrimSpace(media.Responsive.ForBucket(bucket)); src != "" {
			return src
		}
	}

	return strings.TrimSpace(media.Hero360)
}

// ResolveVariantPath picks a path from a variant: a bare string is used
// directly; a format map yields the first preferred format present, else the
// first declared entry.
func (r *Resolver) ResolveVariantPath(v project.Variant) string {
	return r.resolveVariant(v)
}

func (r *Resolver) resolveVariant(v project.Variant) string {
	if v.IsSingle() {
		return strings.TrimSpace(v.Single())
	}
	for _, format := range r.formatPreference {
		if path, ok := v.Lookup(format); ok {
			if trimmed := strings.TrimSpace(path); trimmed != "" {
				return trimmed
			}
		}
	}
	for _, entry := range v.Formats() {
		if trimmed := strings.TrimSpace(entry.Path); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

// resolveBucket finds the source for one size bucket: derived first, then
// the legacy responsive triad.
func (r *Resolver) resolveBucket(media *project.ItemMedia, bucket string) string {
	if variant, ok := media.Derived[bucket]; ok {
		if src := r.resolveVariant(variant); src != "" {
			return src
		}
	}
	return strings.TrimSpace(media.Responsive.ForBucket(bucket))
}

// BuildResponsiveSrcSet assembles a deduplicated "<src> <width>w" descriptor
// across the fixed bucket widths. ok is false when zero sources resolve;
// callers must treat that as "no srcset", which is distinct from an empty
// string. Alternate-scroll-mode items never get a srcset.
func (r *Resolver) BuildResponsiveSrcSet(item *project.MenuItem) (string, bool) {
	if item == nil {
		return "", false
	}
	media := &item.Media
	if media.ScrollAnimationMode == project.ScrollAnimationAlternate &&
		strings.TrimSpace(media.ScrollAnimationSrc) != "" {
		return "", false
	}

	var parts []string
	seen := make(map[string]bool)
	for _, bucket := range srcSetBucketOrder {
		src := r.resolveBucket(media, bucket)
		if src == "" {
			continue
		}
		key := assets.NormalizePath(assets.StripQueryAndHash(src))
		if seen[key] {
			continue
		}
		seen[key] = true
		parts = append(parts, fmt.Sprintf("%s %dw", src, SrcSetWidths[bucket]))
	}

	if len(parts) == 0 {
		return "", false
	}
	return strings.Join(parts, ", "), true
}

// CarouselImageSource is the convenience entry point the runtime shell and
// editor share for thumbnail sources.
func (r *Resolver) CarouselImageSource(item *project.MenuItem) string {
	return r.ResolveItemImage(item, ContextCarousel)
}
