package export

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/menuforge/menuforge/internal/assets"
)

func strPtr(s string) *string { return &s }

func diagnosticsInput() DiagnosticsInput {
	return DiagnosticsInput{
		Slug:        "bistro",
		GeneratedAt: time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC),
		ManifestEntries: []ManifestEntry{
			{OutputPath: "assets/z.png", SourcePath: strPtr("assets/z.png"), Role: assets.RoleHero, Mime: "image/png", Bytes: 300},
			{OutputPath: "index.html", Role: assets.RoleShell, Mime: "text/html", Bytes: 100},
			{OutputPath: "assets/a.png", SourcePath: strPtr("assets/a.png"), Role: assets.RoleHero, Mime: "image/png", Bytes: 200},
		},
		ReferencedSourcePaths:     []string{"assets/z.png", "assets/a.png", "assets/gone.png"},
		MissingSourcePaths:        []string{"assets/gone.png", "assets/gone.png", "assets/also-gone.png"},
		HeroSourceCount:           2,
		ResponsiveHeroSourceCount: 1,
		Budgets:                   EvaluateBudgets(Metrics{}, nil),
	}
}

// =============================================================================
// BuildDiagnostics Tests
// =============================================================================

func TestBuildDiagnostics_SortsEntries(t *testing.T) {
	manifest, _ := BuildDiagnostics(diagnosticsInput())

	var order []string
	for _, e := range manifest.Entries {
		order = append(order, e.OutputPath)
	}
	assert.Equal(t, []string{"assets/a.png", "assets/z.png", "index.html"}, order)
}

func TestBuildDiagnostics_Determinism(t *testing.T) {
	in := diagnosticsInput()
	manifestA, reportA := BuildDiagnostics(in)

	// shuffle insertion order
	in.ManifestEntries = []ManifestEntry{in.ManifestEntries[2], in.ManifestEntries[0], in.ManifestEntries[1]}
	manifestB, reportB := BuildDiagnostics(in)

	jsonA, err := EncodeJSON(manifestA)
	require.NoError(t, err)
	jsonB, err := EncodeJSON(manifestB)
	require.NoError(t, err)
	assert.Equal(t, jsonA, jsonB, "byte-identical manifests for byte-identical inputs")

	reportJSONA, err := EncodeJSON(reportA)
	require.NoError(t, err)
	reportJSONB, err := EncodeJSON(reportB)
	require.NoError(t, err)
	assert.Equal(t, reportJSONA, reportJSONB)
}

func TestBuildDiagnostics_MissingAssetsDedupedSorted(t *testing.T) {
	_, report := BuildDiagnostics(diagnosticsInput())
	assert.Equal(t, []string{"assets/also-gone.png", "assets/gone.png"}, report.MissingAssets)
}

func TestBuildDiagnostics_TotalsSplitByRole(t *testing.T) {
	_, report := BuildDiagnostics(diagnosticsInput())
	assert.Equal(t, int64(100), report.Totals.ShellBytes)
	assert.Equal(t, int64(500), report.Totals.AssetBytes)
	assert.Equal(t, int64(600), report.Totals.TotalBytes)
	assert.Equal(t, 3, report.Totals.FileCount)
}

func TestBuildDiagnostics_ResponsiveCoverage(t *testing.T) {
	_, report := BuildDiagnostics(diagnosticsInput())
	assert.InDelta(t, 0.5, report.ResponsiveCoverage.Ratio, 1e-9)

	// vacuous full coverage, not division by zero
	in := diagnosticsInput()
	in.HeroSourceCount = 0
	in.ResponsiveHeroSourceCount = 0
	_, report = BuildDiagnostics(in)
	assert.Equal(t, 1.0, report.ResponsiveCoverage.Ratio)
}

func TestBuildDiagnostics_SchemaVersionAndTimestamp(t *testing.T) {
	manifest, report := BuildDiagnostics(diagnosticsInput())
	assert.Equal(t, 1, manifest.SchemaVersion)
	assert.Equal(t, 1, report.SchemaVersion)
	assert.Equal(t, "2026-03-14T09:00:00Z", manifest.GeneratedAt)
	assert.Equal(t, manifest.GeneratedAt, report.GeneratedAt)
}

// =============================================================================
// EncodeJSON Tests
// =============================================================================

func TestEncodeJSON_Format(t *testing.T) {
	data, err := EncodeJSON(map[string]int{"a": 1})
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"a\": 1\n}", string(data))
	assert.False(t, strings.HasSuffix(string(data), "\n"), "no trailing newline")
}
