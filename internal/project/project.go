// Package project defines the menu project model: the root aggregate a menu
// author edits and the export pipeline consumes. The model mirrors the
// menu.json save-archive schema.
package project

// Size buckets used by derived media and the responsive triad.
const (
	BucketSmall  = "small"
	BucketMedium = "medium"
	BucketLarge  = "large"
)

// ScrollAnimationAlternate marks items whose carousel presentation swaps in a
// dedicated animation source instead of the normal hero chain.
const ScrollAnimationAlternate = "alternate"

// MenuProject is the root aggregate. The export pipeline never mutates a
// project it is handed; the rewriter always works on a Clone.
type MenuProject struct {
	Slug        string       `json:"slug"`
	Meta        Meta         `json:"meta"`
	Backgrounds []Background `json:"backgrounds,omitempty"`
	Categories  []Category   `json:"categories,omitempty"`
	Sound       *SoundConfig `json:"sound,omitempty"`
}

// Meta holds locale/template/typography/currency configuration plus the
// role-based font configs.
type Meta struct {
	Title      string     `json:"title,omitempty"`
	Locale     string     `json:"locale,omitempty"`
	Template   string     `json:"template,omitempty"`
	Currency   string     `json:"currency,omitempty"`
	LogoSrc    string     `json:"logoSrc,omitempty"`
	FontSource string     `json:"fontSource,omitempty"`
	FontRoles  []FontRole `json:"fontRoles,omitempty"`
}

// FontRole binds a typographic role (heading, body, price, ...) to a font
// source file. Declared order is preserved; the collector visits roles in
// this order.
type FontRole struct {
	Role   string `json:"role"`
	Family string `json:"family,omitempty"`
	Weight int    `json:"weight,omitempty"`
	Source string `json:"source,omitempty"`
}

// Background is a full-bleed backdrop asset. Declared order is the
// presentation order.
type Background struct {
	ID          string       `json:"id,omitempty"`
	Src         string       `json:"src,omitempty"`
	OriginalSrc string       `json:"originalSrc,omitempty"`
	Derived     DerivedMedia `json:"derived,omitempty"`
}

// Category groups menu items. Items keep their declared order.
type Category struct {
	ID    string     `json:"id,omitempty"`
	Name  string     `json:"name,omitempty"`
	Items []MenuItem `json:"items,omitempty"`
}

// MenuItem is a single dish with its media block and optional per-item
// typography override.
type MenuItem struct {
	ID          string          `json:"id,omitempty"`
	Name        string          `json:"name,omitempty"`
	Description string          `json:"description,omitempty"`
	Price       string          `json:"price,omitempty"`
	Media       ItemMedia       `json:"media"`
	Typography  *ItemTypography `json:"typography,omitempty"`
}

// ItemMedia is the polymorphic media block of an item. Hero360 is the
// canonical hero reference; Responsive and Derived are machine-produced
// alternates keyed by size bucket.
type ItemMedia struct {
	Hero360             string           `json:"hero360,omitempty"`
	OriginalHero360     string           `json:"originalHero360,omitempty"`
	Gallery             []string         `json:"gallery,omitempty"`
	Responsive          *ResponsivePaths `json:"responsive,omitempty"`
	Derived             DerivedMedia     `json:"derived,omitempty"`
	ScrollAnimationMode string           `json:"scrollAnimationMode,omitempty"`
	ScrollAnimationSrc  string           `json:"scrollAnimationSrc,omitempty"`
}

// ResponsivePaths is the fixed small/medium/large triad. Either the whole
// structure is present with all three keys (sharing allowed) or it is absent.
type ResponsivePaths struct {
	Small  string `json:"small"`
	Medium string `json:"medium"`
	Large  string `json:"large"`
}

// ForBucket returns the path for a size bucket, empty when unknown.
func (r *ResponsivePaths) ForBucket(bucket string) string {
	if r == nil {
		return ""
	}
	switch bucket {
	case BucketSmall:
		return r.Small
	case BucketMedium:
		return r.Medium
	case BucketLarge:
		return r.Large
	}
	return ""
}

// DerivedMedia maps a size bucket to either a single path or a format→path
// map. Empty buckets are omitted, never present-but-empty.
type DerivedMedia map[string]Variant

// ItemTypography carries a per-item font override.
type ItemTypography struct {
	Item *FontRole `json:"item,omitempty"`
}

// SoundConfig is the ambient sound setting of a menu.
type SoundConfig struct {
	Src     string  `json:"src,omitempty"`
	Volume  float64 `json:"volume,omitempty"`
	Enabled bool    `json:"enabled,omitempty"`
}

// Items returns every item of every category in declared order.
func (p *MenuProject) Items() []*MenuItem {
	var items []*MenuItem
	for ci := range p.Categories {
		for ii := range p.Categories[ci].Items {
			items = append(items, &p.Categories[ci].Items[ii])
		}
	}
	return items
}
