package export

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/menuforge/menuforge/internal/assets"
)

// =============================================================================
// PlanStartupAssets Tests
// =============================================================================

func TestPlanStartupAssets_Partition(t *testing.T) {
	plan := PlanStartupAssets(PlanInput{
		BackgroundSources:       []string{"b1", "b2"},
		ItemSources:             [][]string{{"a1", "a2", "a3"}},
		BlockingBackgroundLimit: 1,
		BlockingItemLimit:       2,
	})

	assert.Equal(t, []string{"b1", "a1", "a2"}, plan.Blocking)
	assert.Equal(t, []string{"b2", "a3"}, plan.Deferred)
	assert.Equal(t, []string{"b1", "b2", "a1", "a2", "a3"}, plan.All)
}

func TestPlanStartupAssets_BreadthFirstInterleave(t *testing.T) {
	plan := PlanStartupAssets(PlanInput{
		ItemSources: [][]string{
			{"mains1", "mains2", "mains3"},
			{"drinks1", "drinks2"},
			{"desserts1"},
		},
		BlockingItemLimit: 4,
	})

	// first item of every category, then the second of every category, ...
	assert.Equal(t, []string{"mains1", "drinks1", "desserts1", "mains2"}, plan.Blocking)
	assert.Equal(t, []string{
		"mains1", "drinks1", "desserts1",
		"mains2", "drinks2",
		"mains3",
	}, plan.All)
}

func TestPlanStartupAssets_DedupAcrossWholePlan(t *testing.T) {
	plan := PlanStartupAssets(PlanInput{
		BackgroundSources:       []string{"shared.webp", "/shared.webp"},
		ItemSources:             [][]string{{"shared.webp", "item.png"}},
		BlockingBackgroundLimit: 2,
		BlockingItemLimit:       2,
	})

	assert.Equal(t, []string{"shared.webp", "item.png"}, plan.All)
	assert.Equal(t, []string{"shared.webp", "item.png"}, plan.Blocking)
	assert.Empty(t, plan.Deferred)
}

func TestPlanStartupAssets_BlockingBound(t *testing.T) {
	plan := PlanStartupAssets(PlanInput{
		BackgroundSources:       []string{"b1", "b2", "b3"},
		ItemSources:             [][]string{{"a1", "a2", "a3", "a4"}},
		BlockingBackgroundLimit: 2,
		BlockingItemLimit:       1,
	})
	assert.LessOrEqual(t, len(plan.Blocking), 3)
	assert.Equal(t, []string{"b1", "b2", "a1"}, plan.Blocking)
}

func TestPlanStartupAssets_SmallerFirstWeights(t *testing.T) {
	plan := PlanStartupAssets(PlanInput{
		ItemSources:       [][]string{{"big.png", "small.png", "mid.png"}},
		BlockingItemLimit: 2,
		SourceWeights: map[string]int64{
			"big.png":   900_000,
			"small.png": 40_000,
			"mid.png":   200_000,
		},
		PrioritizeSmallerFirst: true,
	})

	assert.Equal(t, []string{"small.png", "mid.png"}, plan.Blocking)
	assert.Equal(t, []string{"big.png"}, plan.Deferred)
}

func TestPlanStartupAssets_NoWeightsKeepsPriorityOrder(t *testing.T) {
	plan := PlanStartupAssets(PlanInput{
		ItemSources:       [][]string{{"big.gif", "small.webp"}},
		BlockingItemLimit: 1,
	})
	// no weights: strict priority order even though big.gif estimates larger
	assert.Equal(t, []string{"big.gif"}, plan.Blocking)
}

func TestPlanStartupAssets_Empty(t *testing.T) {
	plan := PlanStartupAssets(PlanInput{BlockingBackgroundLimit: 1, BlockingItemLimit: 4})
	assert.Empty(t, plan.Blocking)
	assert.Empty(t, plan.Deferred)
	assert.Empty(t, plan.All)
}

// =============================================================================
// EstimateSourceBytes Tests
// =============================================================================

func TestEstimateSourceBytes(t *testing.T) {
	tests := []struct {
		name     string
		role     assets.Role
		path     string
		expected int64
	}{
		{"background gif", assets.RoleBackground, "bg/loop.gif", 2_600_000},
		{"background webp", assets.RoleBackground, "bg/still.webp", 900_000},
		{"item webp", assets.RoleHero, "item.webp", 420_000},
		{"item jpeg", assets.RoleHero, "item.JPG", 380_000},
		{"item unknown ext", assets.RoleHero, "item.xyz", 500_000},
		{"background unknown ext", assets.RoleBackground, "bg.xyz", 1_000_000},
		{"unknown role uses item table", assets.RoleOther, "x.webp", 420_000},
		{"query ignored", assets.RoleHero, "item.png?v=2", 700_000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, EstimateSourceBytes(tt.role, tt.path))
		})
	}
}
