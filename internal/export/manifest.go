package export

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/menuforge/menuforge/internal/assets"
)

// SchemaVersion of the asset manifest and export report documents.
const SchemaVersion = 1

// ManifestEntry describes one physical file of the export bundle.
// SourcePath is nil only for shell-generated files. FirstView is back-filled
// once the startup planner has run.
type ManifestEntry struct {
	OutputPath        string      `json:"outputPath"`
	SourcePath        *string     `json:"sourcePath"`
	Role              assets.Role `json:"role"`
	Mime              string      `json:"mime"`
	Bytes             int64       `json:"bytes"`
	ResponsiveVariant *string     `json:"responsiveVariant"`
	FirstView         bool        `json:"firstView"`
}

// Manifest is the deterministic asset inventory of a bundle.
type Manifest struct {
	SchemaVersion int             `json:"schemaVersion"`
	Slug          string          `json:"slug"`
	GeneratedAt   string          `json:"generatedAt"`
	Entries       []ManifestEntry `json:"entries"`
}

// ReportTotals splits bundle bytes strictly by role: shell vs everything
// else.
type ReportTotals struct {
	ShellBytes int64 `json:"shellBytes"`
	AssetBytes int64 `json:"assetBytes"`
	TotalBytes int64 `json:"totalBytes"`
	FileCount  int   `json:"fileCount"`
}

// ResponsiveCoverage reports how many hero sources got responsive variants.
// Ratio is exactly 1 when there are no hero sources at all.
type ResponsiveCoverage struct {
	HeroSources           int     `json:"heroSources"`
	ResponsiveHeroSources int     `json:"responsiveHeroSources"`
	Ratio                 float64 `json:"ratio"`
}

// Report is the export diagnostics document.
type Report struct {
	SchemaVersion      int                `json:"schemaVersion"`
	Slug               string             `json:"slug"`
	GeneratedAt        string             `json:"generatedAt"`
	Totals             ReportTotals       `json:"totals"`
	ResponsiveCoverage ResponsiveCoverage `json:"responsiveCoverage"`
	ReferencedSources  int                `json:"referencedSources"`
	MissingAssets      []string           `json:"missingAssets"`
	Budgets            BudgetEvaluation   `json:"budgets"`
	StartupPlan        StartupPlan        `json:"startupPlan"`
}

// Diagnostics bundles the two output documents.
type Diagnostics struct {
	Manifest Manifest `json:"manifest"`
	Report   Report   `json:"report"`
}

// DiagnosticsInput feeds BuildDiagnostics.
type DiagnosticsInput struct {
	Slug                      string
	GeneratedAt               time.Time
	ManifestEntries           []ManifestEntry
	ReferencedSourcePaths     []string
	MissingSourcePaths        []string
	HeroSourceCount           int
	ResponsiveHeroSourceCount int
	Budgets                   BudgetEvaluation
	StartupPlan               StartupPlan
}

// BuildDiagnostics assembles the manifest and report. Pure and
// deterministic: entries are sorted by (outputPath, sourcePath, role)
// regardless of insertion order, the missing list is deduplicated and
// sorted, and byte-identical inputs yield byte-identical documents.
func BuildDiagnostics(in DiagnosticsInput) (Manifest, Report) {
	generatedAt := in.GeneratedAt
	if generatedAt.IsZero() {
		generatedAt = time.Now()
	}
	timestamp := generatedAt.UTC().Format(time.RFC3339)

	entries := make([]ManifestEntry, len(in.ManifestEntries))
	copy(entries, in.ManifestEntries)
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.OutputPath != b.OutputPath {
			return a.OutputPath < b.OutputPath
		}
		as, bs := derefOrEmpty(a.SourcePath), derefOrEmpty(b.SourcePath)
		if as != bs {
			return as < bs
		}
		return a.Role < b.Role
	})

	manifest := Manifest{
		SchemaVersion: SchemaVersion,
		Slug:          in.Slug,
		GeneratedAt:   timestamp,
		Entries:       entries,
	}

	totals := ReportTotals{FileCount: len(entries)}
	for _, e := range entries {
		totals.TotalBytes += e.Bytes
		if e.Role == assets.RoleShell {
			totals.ShellBytes += e.Bytes
		} else {
			totals.AssetBytes += e.Bytes
		}
	}

	ratio := 1.0
	if in.HeroSourceCount > 0 {
		ratio = float64(in.ResponsiveHeroSourceCount) / float64(in.HeroSourceCount)
	}

	report := Report{
		SchemaVersion: SchemaVersion,
		Slug:          in.Slug,
		GeneratedAt:   timestamp,
		Totals:        totals,
		ResponsiveCoverage: ResponsiveCoverage{
			HeroSources:           in.HeroSourceCount,
			ResponsiveHeroSources: in.ResponsiveHeroSourceCount,
			Ratio:                 ratio,
		},
		ReferencedSources: len(in.ReferencedSourcePaths),
		MissingAssets:     sortedUnique(in.MissingSourcePaths),
		Budgets:           in.Budgets,
		StartupPlan:       in.StartupPlan,
	}

	return manifest, report
}

func derefOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func sortedUnique(values []string) []string {
	seen := make(map[string]bool, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// EncodeJSON renders a diagnostics document: UTF-8, 2-space indent, no
// trailing newline.
func EncodeJSON(v any) ([]byte, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", err)
	}
	return data, nil
}
