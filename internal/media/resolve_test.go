package media

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/menuforge/menuforge/internal/project"
)

func itemWithMedia(m project.ItemMedia) *project.MenuItem {
	return &project.MenuItem{Name: "dish", Media: m}
}

// =============================================================================
// ResolveItemImage Tests
// =============================================================================

func TestResolveItemImage_DetailPrefersLargestDerived(t *testing.T) {
	item := itemWithMedia(project.ItemMedia{
		Hero360: "hero.png",
		Derived: project.DerivedMedia{
			project.BucketSmall:  project.SingleVariant("s.webp"),
			project.BucketMedium: project.SingleVariant("m.webp"),
			project.BucketLarge:  project.SingleVariant("l.webp"),
		},
	})
	assert.Equal(t, "l.webp", NewResolver().ResolveItemImage(item, ContextDetail))
}

func TestResolveItemImage_CarouselPrefersMedium(t *testing.T) {
	item := itemWithMedia(project.ItemMedia{
		Hero360: "hero.png",
		Derived: project.DerivedMedia{
			project.BucketSmall:  project.SingleVariant("s.webp"),
			project.BucketMedium: project.SingleVariant("m.webp"),
			project.BucketLarge:  project.SingleVariant("l.webp"),
		},
	})
	assert.Equal(t, "m.webp", NewResolver().ResolveItemImage(item, ContextCarousel))
}

func TestResolveItemImage_FallbackChain(t *testing.T) {
	tests := []struct {
		name     string
		media    project.ItemMedia
		context  Context
		expected string
	}{
		{
			"derived before responsive",
			project.ItemMedia{
				Derived:    project.DerivedMedia{project.BucketSmall: project.SingleVariant("d-s.webp")},
				Responsive: &project.ResponsivePaths{Small: "r-s.webp", Medium: "r-m.webp", Large: "r-l.webp"},
				Hero360:    "hero.png",
			},
			ContextDetail,
			"d-s.webp",
		},
		{
			"responsive before hero",
			project.ItemMedia{
				Responsive: &project.ResponsivePaths{Small: "r-s.webp", Medium: "r-m.webp", Large: "r-l.webp"},
				Hero360:    "hero.png",
			},
			ContextCarousel,
			"r-m.webp",
		},
		{
			"hero as last resort",
			project.ItemMedia{Hero360: "  hero.png  "},
			ContextDetail,
			"hero.png",
		},
		{
			"nothing resolves",
			project.ItemMedia{Hero360: "   "},
			ContextDetail,
			"",
		},
		{
			"blank derived entries are absent",
			project.ItemMedia{
				Derived: project.DerivedMedia{project.BucketLarge: project.SingleVariant("   ")},
				Hero360: "hero.png",
			},
			ContextDetail,
			"hero.png",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := itemWithMedia(tt.media)
			assert.Equal(t, tt.expected, NewResolver().ResolveItemImage(item, tt.context))
		})
	}
}

func TestResolveItemImage_FormatPreference(t *testing.T) {
	item := itemWithMedia(project.ItemMedia{
		Derived: project.DerivedMedia{
			project.BucketLarge: project.FormatVariant(
				project.FormatEntry{Format: "gif", Path: "l.gif"},
				project.FormatEntry{Format: "webp", Path: "l.webp"},
			),
		},
	})

	// webp preferred by default even when declared second
	assert.Equal(t, "l.webp", NewResolver().ResolveItemImage(item, ContextDetail))

	// custom preference flips it
	gifFirst := NewResolverWithPreference([]string{"gif", "webp"})
	assert.Equal(t, "l.gif", gifFirst.ResolveItemImage(item, ContextDetail))
}

func TestResolveItemImage_FirstDeclaredWinsWithoutPreferredFormats(t *testing.T) {
	item := itemWithMedia(project.ItemMedia{
		Derived: project.DerivedMedia{
			project.BucketLarge: project.FormatVariant(
				project.FormatEntry{Format: "avif", Path: "l.avif"},
				project.FormatEntry{Format: "jxl", Path: "l.jxl"},
			),
		},
	})
	assert.Equal(t, "l.avif", NewResolver().ResolveItemImage(item, ContextDetail))
}

func TestResolveItemImage_AlternateScrollMode(t *testing.T) {
	item := itemWithMedia(project.ItemMedia{
		Hero360:             "hero.png",
		ScrollAnimationMode: project.ScrollAnimationAlternate,
		ScrollAnimationSrc:  "anim.gif",
		Derived: project.DerivedMedia{
			project.BucketMedium: project.SingleVariant("m.webp"),
		},
	})

	r := NewResolver()
	assert.Equal(t, "anim.gif", r.ResolveItemImage(item, ContextCarousel))
	// detail ignores the alternate source
	assert.Equal(t, "m.webp", r.ResolveItemImage(item, ContextDetail))

	// blank alternate source falls back to the normal chain
	item.Media.ScrollAnimationSrc = "   "
	assert.Equal(t, "m.webp", r.ResolveItemImage(item, ContextCarousel))
}

// =============================================================================
// BuildResponsiveSrcSet Tests
// =============================================================================

func TestBuildResponsiveSrcSet_Determinism(t *testing.T) {
	item := itemWithMedia(project.ItemMedia{
		Derived: project.DerivedMedia{
			project.BucketMedium: project.FormatVariant(
				project.FormatEntry{Format: "gif", Path: "m.gif"},
				project.FormatEntry{Format: "webp", Path: "m.webp"},
			),
			project.BucketLarge: project.SingleVariant("x.webp"),
		},
		Responsive: &project.ResponsivePaths{Small: "s.webp"},
	})

	r := NewResolver()
	for i := 0; i < 10; i++ {
		srcset, ok := r.BuildResponsiveSrcSet(item)
		assert.True(t, ok)
		assert.Equal(t, "s.webp 480w, m.webp 960w, x.webp 1440w", srcset)
	}
}

func TestBuildResponsiveSrcSet_DedupSharedSources(t *testing.T) {
	item := itemWithMedia(project.ItemMedia{
		Responsive: &project.ResponsivePaths{Small: "same.webp", Medium: "same.webp", Large: "big.webp"},
	})
	srcset, ok := NewResolver().BuildResponsiveSrcSet(item)
	assert.True(t, ok)
	assert.Equal(t, "same.webp 480w, big.webp 1440w", srcset)
}

func TestBuildResponsiveSrcSet_NoSources(t *testing.T) {
	srcset, ok := NewResolver().BuildResponsiveSrcSet(itemWithMedia(project.ItemMedia{Hero360: "hero.png"}))
	assert.False(t, ok, "no srcset is distinct from empty srcset")
	assert.Equal(t, "", srcset)
}

func TestBuildResponsiveSrcSet_AlternateModeExempt(t *testing.T) {
	item := itemWithMedia(project.ItemMedia{
		ScrollAnimationMode: project.ScrollAnimationAlternate,
		ScrollAnimationSrc:  "anim.gif",
		Responsive:          &project.ResponsivePaths{Small: "s.webp", Medium: "m.webp", Large: "l.webp"},
	})
	_, ok := NewResolver().BuildResponsiveSrcSet(item)
	assert.False(t, ok)
}
