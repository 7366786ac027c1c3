package project

// Clone returns a deep copy of the project. The export rewriter only ever
// touches a clone, so the caller's instance survives an export untouched.
func (p *MenuProject) Clone() *MenuProject {
	if p == nil {
		return nil
	}
	out := &MenuProject{
		Slug: p.Slug,
		Meta: p.Meta.clone(),
	}
	if p.Backgrounds != nil {
		out.Backgrounds = make([]Background, len(p.Backgrounds))
		for i, bg := range p.Backgrounds {
			out.Backgrounds[i] = bg.clone()
		}
	}
	if p.Categories != nil {
		out.Categories = make([]Category, len(p.Categories))
		for i, cat := range p.Categories {
			out.Categories[i] = cat.clone()
		}
	}
	if p.Sound != nil {
		sound := *p.Sound
		out.Sound = &sound
	}
	return out
}

func (m Meta) clone() Meta {
	out := m
	if m.FontRoles != nil {
		out.FontRoles = make([]FontRole, len(m.FontRoles))
		copy(out.FontRoles, m.FontRoles)
	}
	return out
}

func (b Background) clone() Background {
	out := b
	out.Derived = b.Derived.clone()
	return out
}

func (c Category) clone() Category {
	out := c
	if c.Items != nil {
		out.Items = make([]MenuItem, len(c.Items))
		for i, item := range c.Items {
			out.Items[i] = item.clone()
		}
	}
	return out
}

func (i MenuItem) clone() MenuItem {
	out := i
	out.Media = i.Media.clone()
	if i.Typography != nil {
		typ := ItemTypography{}
		if i.Typography.Item != nil {
			role := *i.Typography.Item
			typ.Item = &role
		}
		out.Typography = &typ
	}
	return out
}

func (m ItemMedia) clone() ItemMedia {
	out := m
	if m.Gallery != nil {
		out.Gallery = make([]string, len(m.Gallery))
		copy(out.Gallery, m.Gallery)
	}
	if m.Responsive != nil {
		resp := *m.Responsive
		out.Responsive = &resp
	}
	out.Derived = m.Derived.clone()
	return out
}

func (d DerivedMedia) clone() DerivedMedia {
	if d == nil {
		return nil
	}
	out := make(DerivedMedia, len(d))
	for bucket, variant := range d {
		out[bucket] = variant.clone()
	}
	return out
}

func (v Variant) clone() Variant {
	out := Variant{single: v.single}
	if v.formats != nil {
		out.formats = make([]FormatEntry, len(v.formats))
		copy(out.formats, v.formats)
	}
	return out
}
