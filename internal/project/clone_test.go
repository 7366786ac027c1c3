package project

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleProject() *MenuProject {
	return &MenuProject{
		Slug: "bistro",
		Meta: Meta{
			Title:      "Le Bistro",
			FontSource: "assets/fonts/base.woff2",
			FontRoles:  []FontRole{{Role: "heading", Source: "assets/fonts/display.woff2"}},
		},
		Backgrounds: []Background{
			{Src: "assets/bg.webp", Derived: DerivedMedia{
				BucketLarge: SingleVariant("assets/bg-lg.webp"),
			}},
		},
		Categories: []Category{
			{Name: "Mains", Items: []MenuItem{
				{
					Name: "Steak",
					Media: ItemMedia{
						Hero360:    "assets/steak.png",
						Gallery:    []string{"assets/g1.png", "assets/g2.png"},
						Responsive: &ResponsivePaths{Small: "s", Medium: "m", Large: "l"},
						Derived: DerivedMedia{
							BucketMedium: FormatVariant(FormatEntry{Format: "webp", Path: "m.webp"}),
						},
					},
					Typography: &ItemTypography{Item: &FontRole{Role: "item", Source: "assets/f.woff2"}},
				},
			}},
		},
		Sound: &SoundConfig{Src: "assets/sound.mp3", Volume: 0.4, Enabled: true},
	}
}

func TestClone_DeepIndependence(t *testing.T) {
	original := sampleProject()
	clone := original.Clone()

	clone.Meta.FontRoles[0].Source = "changed"
	clone.Backgrounds[0].Src = "changed"
	clone.Backgrounds[0].Derived[BucketLarge] = SingleVariant("changed")
	clone.Categories[0].Items[0].Media.Gallery[0] = "changed"
	clone.Categories[0].Items[0].Media.Responsive.Small = "changed"
	clone.Categories[0].Items[0].Typography.Item.Source = "changed"
	clone.Sound.Src = "changed"

	assert.Equal(t, "assets/fonts/display.woff2", original.Meta.FontRoles[0].Source)
	assert.Equal(t, "assets/bg.webp", original.Backgrounds[0].Src)
	assert.Equal(t, "assets/bg-lg.webp", original.Backgrounds[0].Derived[BucketLarge].Single())
	assert.Equal(t, "assets/g1.png", original.Categories[0].Items[0].Media.Gallery[0])
	assert.Equal(t, "s", original.Categories[0].Items[0].Media.Responsive.Small)
	assert.Equal(t, "assets/f.woff2", original.Categories[0].Items[0].Typography.Item.Source)
	assert.Equal(t, "assets/sound.mp3", original.Sound.Src)
}

func TestClone_Nil(t *testing.T) {
	var p *MenuProject
	assert.Nil(t, p.Clone())
}

func TestItems_DeclaredOrder(t *testing.T) {
	p := &MenuProject{
		Categories: []Category{
			{Items: []MenuItem{{Name: "a1"}, {Name: "a2"}}},
			{Items: []MenuItem{{Name: "b1"}}},
		},
	}
	items := p.Items()
	require.Len(t, items, 3)
	assert.Equal(t, "a1", items[0].Name)
	assert.Equal(t, "a2", items[1].Name)
	assert.Equal(t, "b1", items[2].Name)
}

func TestMarshal_RoundTrip(t *testing.T) {
	original := sampleProject()

	data, err := Marshal(original)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "\n\n")

	back, err := Unmarshal(data)
	require.NoError(t, err)
	assert.Equal(t, original, back)
}
