// Package export implements the static export pipeline: it walks a menu
// project, resolves media to bytes, derives responsive variants, rewrites
// references for the flat bundle layout, plans first-paint assets, measures
// performance budgets and emits a deterministic manifest.
package export

import (
	"path"
	"sort"
	"strings"

	"github.com/menuforge/menuforge/internal/assets"
)

// StartupPlan partitions every referenced source into a blocking set that
// must load before first paint and a deferred remainder. Blocking keeps
// priority order, never alphabetical.
type StartupPlan struct {
	Blocking []string `json:"blocking"`
	Deferred []string `json:"deferred"`
	All      []string `json:"all"`
}

// PlanInput configures startup asset planning. ItemSources holds one slice
// per category in declared order; the planner interleaves them breadth-first
// (first item of every category, then second of every category, ...) so the
// blocking set front-loads variety over completeness.
type PlanInput struct {
	BackgroundSources       []string
	ItemSources             [][]string
	BlockingBackgroundLimit int
	BlockingItemLimit       int

	// SourceWeights biases ordering toward smaller files first when
	// PrioritizeSmallerFirst is set. Without weights, strict priority order
	// is preserved.
	SourceWeights          map[string]int64
	PrioritizeSmallerFirst bool
}

// PlanStartupAssets computes the blocking/deferred partition. Both lists are
// deduplicated by normalized path and unique across the whole plan;
// len(Blocking) never exceeds BlockingBackgroundLimit+BlockingItemLimit.
func PlanStartupAssets(in PlanInput) StartupPlan {
	seen := make(map[string]bool)

	backgrounds := dedupInto(seen, in.BackgroundSources)
	items := dedupInto(seen, interleaveByDepth(in.ItemSources))

	if in.PrioritizeSmallerFirst && len(in.SourceWeights) > 0 {
		sortByWeight(backgrounds, in.SourceWeights, assets.RoleBackground)
		sortByWeight(items, in.SourceWeights, assets.RoleHero)
	}

	blocking := make([]string, 0, in.BlockingBackgroundLimit+in.BlockingItemLimit)
	blocking = append(blocking, head(backgrounds, in.BlockingBackgroundLimit)...)
	blocking = append(blocking, head(items, in.BlockingItemLimit)...)

	all := make([]string, 0, len(backgrounds)+len(items))
	all = append(all, backgrounds...)
	all = append(all, items...)

	inBlocking := make(map[string]bool, len(blocking))
	for _, src := range blocking {
		inBlocking[assets.NormalizePath(src)] = true
	}
	var deferred []string
	for _, src := range all {
		if !inBlocking[assets.NormalizePath(src)] {
			deferred = append(deferred, src)
		}
	}

	return StartupPlan{Blocking: blocking, Deferred: deferred, All: all}
}

// interleaveByDepth flattens per-category item sources breadth-first.
func interleaveByDepth(perCategory [][]string) []string {
	var out []string
	for depth := 0; ; depth++ {
		found := false
		for _, items := range perCategory {
			if depth < len(items) {
				out = append(out, items[depth])
				found = true
			}
		}
		if !found {
			return out
		}
	}
}

func dedupInto(seen map[string]bool, sources []string) []string {
	var out []string
	for _, src := range sources {
		trimmed := strings.TrimSpace(src)
		if trimmed == "" {
			continue
		}
		key := assets.NormalizePath(assets.StripQueryAndHash(trimmed))
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, trimmed)
	}
	return out
}

func sortByWeight(sources []string, weights map[string]int64, role assets.Role) {
	sort.SliceStable(sources, func(i, j int) bool {
		return sourceWeight(sources[i], weights, role) < sourceWeight(sources[j], weights, role)
	})
}

func sourceWeight(src string, weights map[string]int64, role assets.Role) int64 {
	if w, ok := weights[src]; ok {
		return w
	}
	if w, ok := weights[assets.NormalizePath(src)]; ok {
		return w
	}
	return EstimateSourceBytes(role, src)
}

func head(list []string, limit int) []string {
	if limit < 0 {
		limit = 0
	}
	if limit > len(list) {
		limit = len(list)
	}
	return list[:limit]
}

// Heuristic byte sizes per role and extension, calibrated from typical
// exports. Used only when real output bytes are unknown (preview time); a
// measured size always supersedes the estimate.
var estimatedBytesByRole = map[assets.Role]map[string]int64{
	assets.RoleBackground: {
		".gif":  2_600_000,
		".webp": 900_000,
		".avif": 650_000,
		".png":  1_400_000,
		".jpg":  700_000,
		".jpeg": 700_000,
	},
	assets.RoleHero: {
		".gif":  1_500_000,
		".webp": 420_000,
		".avif": 320_000,
		".png":  700_000,
		".jpg":  380_000,
		".jpeg": 380_000,
	},
}

var defaultEstimatedBytes = map[assets.Role]int64{
	assets.RoleBackground: 1_000_000,
	assets.RoleHero:       500_000,
}

// EstimateSourceBytes guesses the byte size of a source from its role and
// extension. A heuristic, not a measurement.
func EstimateSourceBytes(role assets.Role, sourcePath string) int64 {
	table, ok := estimatedBytesByRole[role]
	if !ok {
		table = estimatedBytesByRole[assets.RoleHero]
	}
	ext := strings.ToLower(path.Ext(assets.StripQueryAndHash(sourcePath)))
	if size, ok := table[ext]; ok {
		return size
	}
	if size, ok := defaultEstimatedBytes[role]; ok {
		return size
	}
	return defaultEstimatedBytes[assets.RoleHero]
}
