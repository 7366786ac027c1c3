package export

import (
	"strings"

	"github.com/menuforge/menuforge/internal/assets"
	"github.com/menuforge/menuforge/internal/media"
	"github.com/menuforge/menuforge/internal/project"
)

// RewriteMaps carries the source→destination knowledge produced by the
// orchestrator's asset pass. Keys are normalized source paths.
type RewriteMaps struct {
	// ExportPath maps a source to its bundle entry path ("assets/...").
	ExportPath map[string]string
	// Responsive maps a hero source to its generated variant triad.
	Responsive map[string]*project.ResponsivePaths
}

func (m RewriteMaps) lookup(value string) (string, bool) {
	key := assets.NormalizePath(assets.StripQueryAndHash(strings.TrimSpace(value)))
	if key == "" {
		return "", false
	}
	mapped, ok := m.ExportPath[key]
	return mapped, ok
}

func (m RewriteMaps) responsiveFor(value string) *project.ResponsivePaths {
	key := assets.NormalizePath(assets.StripQueryAndHash(strings.TrimSpace(value)))
	if key == "" {
		return nil
	}
	return m.Responsive[key]
}

// RewriteProject returns a deep copy of the project with every path-bearing
// field pointed at its final export-relative path. Fields without a mapping
// are left unchanged; the input project is never mutated.
func RewriteProject(p *project.MenuProject, maps RewriteMaps) *project.MenuProject {
	out := p.Clone()

	out.Meta.FontSource = rewriteValue(out.Meta.FontSource, maps)
	for i := range out.Meta.FontRoles {
		out.Meta.FontRoles[i].Source = rewriteValue(out.Meta.FontRoles[i].Source, maps)
	}
	out.Meta.LogoSrc = rewriteValue(out.Meta.LogoSrc, maps)

	for i := range out.Backgrounds {
		bg := &out.Backgrounds[i]
		bg.Src = rewriteValue(bg.Src, maps)
		bg.OriginalSrc = rewriteValue(bg.OriginalSrc, maps)
		bg.Derived = rewriteDerived(bg.Derived, maps)
	}

	for _, item := range out.Items() {
		rewriteItemMedia(item, maps)
		if item.Typography != nil && item.Typography.Item != nil {
			item.Typography.Item.Source = rewriteValue(item.Typography.Item.Source, maps)
		}
	}

	if out.Sound != nil {
		out.Sound.Src = rewriteValue(out.Sound.Src, maps)
	}

	return out
}

func rewriteValue(value string, maps RewriteMaps) string {
	if mapped, ok := maps.lookup(value); ok {
		return mapped
	}
	return value
}

// rewriteDerived rewrites a derived map per format. A bucket that maps to
// zero successfully-rewritten entries is dropped entirely: its files are not
// in the bundle, and an empty bucket must never survive.
func rewriteDerived(derived project.DerivedMedia, maps RewriteMaps) project.DerivedMedia {
	if len(derived) == 0 {
		return nil
	}
	out := make(project.DerivedMedia)
	for bucket, variant := range derived {
		if variant.IsSingle() {
			if mapped, ok := maps.lookup(variant.Single()); ok {
				out[bucket] = project.SingleVariant(mapped)
			}
			continue
		}
		var kept []project.FormatEntry
		for _, entry := range variant.Formats() {
			if mapped, ok := maps.lookup(entry.Path); ok {
				kept = append(kept, project.FormatEntry{Format: entry.Format, Path: mapped})
			}
		}
		if len(kept) > 0 {
			out[bucket] = project.FormatVariant(kept...)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func rewriteItemMedia(item *project.MenuItem, maps RewriteMaps) {
	m := &item.Media
	originalHero := m.Hero360

	m.Derived = rewriteDerived(m.Derived, maps)

	if generated := maps.responsiveFor(originalHero); generated != nil {
		triad := *generated
		m.Responsive = &triad
	} else if m.Responsive != nil {
		m.Responsive.Small = rewriteValue(m.Responsive.Small, maps)
		m.Responsive.Medium = rewriteValue(m.Responsive.Medium, maps)
		m.Responsive.Large = rewriteValue(m.Responsive.Large, maps)
	}

	for i := range m.Gallery {
		m.Gallery[i] = rewriteValue(m.Gallery[i], maps)
	}

	m.Hero360 = canonicalHero(m, originalHero, maps)
	m.OriginalHero360 = rewriteValue(m.OriginalHero360, maps)
	m.ScrollAnimationSrc = rewriteValue(m.ScrollAnimationSrc, maps)
}

// canonicalHero picks the new hero360 value: rewritten derived, then the
// rewritten responsive triad, then the directly mapped hero, then the mapped
// original hero, then the untouched original string. A visible value is
// never lost, even when resizing failed.
func canonicalHero(m *project.ItemMedia, originalHero string, maps RewriteMaps) string {
	resolver := media.NewResolver()

	for _, bucket := range []string{project.BucketLarge, project.BucketMedium, project.BucketSmall} {
		if variant, ok := m.Derived[bucket]; ok {
			if src := resolver.ResolveVariantPath(variant); src != "" {
				return src
			}
		}
	}

	if m.Responsive != nil {
		for _, src := range []string{m.Responsive.Large, m.Responsive.Medium, m.Responsive.Small} {
			if trimmed := strings.TrimSpace(src); trimmed != "" {
				return trimmed
			}
		}
	}

	if mapped, ok := maps.lookup(originalHero); ok {
		return mapped
	}
	if mapped, ok := maps.lookup(m.OriginalHero360); ok {
		return mapped
	}
	return originalHero
}
