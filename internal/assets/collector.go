package assets

import (
	"strings"

	"github.com/menuforge/menuforge/internal/project"
)

// Role classifies what an asset reference is for. Shell is reserved for
// generated files that have no source at all.
type Role string

const (
	RoleBackground Role = "background"
	RoleHero       Role = "hero"
	RoleFont       Role = "font"
	RoleShell      Role = "shell"
	RoleOther      Role = "other"
)

// Reference is one collected (role, path) pair with its derived export
// destination. ZipPath is the final bundle entry name.
type Reference struct {
	SourcePath   string
	RelativePath string
	ZipPath      string
	Role         Role
}

// collector accumulates references, deduplicating by normalized source path.
// First-seen order is preserved; the manifest builder re-sorts for
// determinism at output time.
type collector struct {
	slug string
	seen map[string]bool
	refs []Reference
}

// Collect walks the project graph and extracts every path-like media
// reference exactly once. Remote URLs are skipped: they stay untouched in
// the rewritten project and are never bundled.
func Collect(p *project.MenuProject) []Reference {
	c := &collector{
		slug: p.Slug,
		seen: make(map[string]bool),
	}

	c.add(p.Meta.FontSource, RoleFont)
	for _, role := range p.Meta.FontRoles {
		c.add(role.Source, RoleFont)
	}
	c.add(p.Meta.LogoSrc, RoleOther)

	for _, bg := range p.Backgrounds {
		c.add(bg.Src, RoleBackground)
	}

	for _, item := range p.Items() {
		c.add(item.Media.Hero360, RoleHero)
		// Alternate-mode carousel animations are rendered by the exported
		// runtime, so they must ship with the bundle.
		c.add(item.Media.ScrollAnimationSrc, RoleOther)
	}

	if p.Sound != nil {
		c.add(p.Sound.Src, RoleOther)
	}

	return c.refs
}

func (c *collector) add(sourcePath string, role Role) {
	trimmed := strings.TrimSpace(sourcePath)
	if trimmed == "" || IsRemoteURL(trimmed) {
		return
	}
	key := NormalizePath(StripQueryAndHash(trimmed))
	if key == "" || c.seen[key] {
		return
	}
	c.seen[key] = true

	relative := ExportRelativePath(trimmed, c.slug)
	c.refs = append(c.refs, Reference{
		SourcePath:   trimmed,
		RelativePath: relative,
		ZipPath:      "assets/" + relative,
		Role:         role,
	})
}
