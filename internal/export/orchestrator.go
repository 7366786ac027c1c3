package export

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/menuforge/menuforge/internal/assets"
	"github.com/menuforge/menuforge/internal/media"
	"github.com/menuforge/menuforge/internal/project"
)

// Default blocking limits for the startup planner: the first backdrop plus
// the first row of items the rendered UI reveals.
const (
	DefaultBlockingBackgroundLimit = 1
	DefaultBlockingItemLimit       = 4
)

// Bundle entry names that are fixed by the output layout.
const (
	EntryMenuJSON      = "menu.json"
	EntryStyles        = "styles.css"
	EntryRuntime       = "app.js"
	EntryIndexHTML     = "index.html"
	EntryFavicon       = "favicon.ico"
	EntryServeCommand  = "serve.command"
	EntryServeBat      = "serve.bat"
	EntryReadme        = "README.txt"
	EntryAssetManifest = "asset-manifest.json"
	EntryExportReport  = "export-report.json"
)

// Entry is one named byte buffer of the export bundle. The caller zips the
// list; the core never touches disk or network.
type Entry struct {
	Name string
	Data []byte
}

// ProgressHooks are optional fire-and-forget notifications for UI
// consumption. Nil hooks are skipped; the core never waits on them.
type ProgressHooks struct {
	OnCollectStart   func(totalAssets int)
	OnAsset          func(sourcePath string, index, total int)
	OnBundleProgress func(percent int)
	OnReportProgress func(percent int)
	OnMissingAsset   func(sourcePath string)
}

func (h ProgressHooks) collectStart(total int) {
	if h.OnCollectStart != nil {
		h.OnCollectStart(total)
	}
}

func (h ProgressHooks) asset(sourcePath string, index, total int) {
	if h.OnAsset != nil {
		h.OnAsset(sourcePath, index, total)
	}
}

func (h ProgressHooks) bundle(percent int) {
	if h.OnBundleProgress != nil {
		h.OnBundleProgress(percent)
	}
}

func (h ProgressHooks) report(percent int) {
	if h.OnReportProgress != nil {
		h.OnReportProgress(percent)
	}
}

func (h ProgressHooks) missing(sourcePath string) {
	if h.OnMissingAsset != nil {
		h.OnMissingAsset(sourcePath)
	}
}

// BuildSiteParams configures one export pass.
type BuildSiteParams struct {
	Project *project.MenuProject
	Source  assets.Source

	// Generator derives responsive hero variants. Nil disables resizing;
	// originals are bundled as-is.
	Generator *media.Generator

	// Thresholds override the default performance budgets.
	Thresholds *Thresholds

	BlockingBackgroundLimit int
	BlockingItemLimit       int

	// GeneratedAt stamps the diagnostics; zero means now. Version is the
	// cache-busting token for shell references; empty derives it from
	// GeneratedAt.
	GeneratedAt time.Time
	Version     string

	Hooks ProgressHooks
}

// BuildSiteResult is everything one export pass produces.
type BuildSiteResult struct {
	Entries            []Entry
	Project            *project.MenuProject
	Diagnostics        Diagnostics
	ManifestEntries    []ManifestEntry
	MissingSourcePaths []string
}

// BuildSite runs the full export pipeline: collect references, read and
// dedup assets, derive responsive variants, rewrite the project, plan
// first-paint assets, evaluate budgets and emit diagnostics.
//
// Asset-level problems never abort the pass: an unreadable source lands in
// MissingSourcePaths, an unresizable image falls back to its original bytes.
// The returned error is reserved for truly exceptional conditions (nil
// inputs, context cancellation, shell templating failure).
func BuildSite(ctx context.Context, params BuildSiteParams) (*BuildSiteResult, error) {
	if params.Project == nil {
		return nil, errors.New("export: project is required")
	}
	if params.Source == nil {
		return nil, errors.New("export: asset source is required")
	}

	bgLimit := params.BlockingBackgroundLimit
	if bgLimit <= 0 {
		bgLimit = DefaultBlockingBackgroundLimit
	}
	itemLimit := params.BlockingItemLimit
	if itemLimit <= 0 {
		itemLimit = DefaultBlockingItemLimit
	}
	generatedAt := params.GeneratedAt
	if generatedAt.IsZero() {
		generatedAt = time.Now()
	}
	version := params.Version
	if version == "" {
		version = strconv.FormatInt(generatedAt.Unix(), 10)
	}

	sessionID := uuid.NewString()
	logger := log.With().Str("export_session", sessionID).Str("slug", params.Project.Slug).Logger()

	refs := assets.Collect(params.Project)
	params.Hooks.collectStart(len(refs))
	logger.Info().Int("assets", len(refs)).Msg("Export started")

	var (
		entries         []Entry
		manifestEntries []ManifestEntry
		missingSet      = make(map[string]bool)
		exportPath      = make(map[string]string)
		responsivePaths = make(map[string]*project.ResponsivePaths)
		heroSources     int
		responsiveHeros int
	)

	for i, ref := range refs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		params.Hooks.asset(ref.SourcePath, i+1, len(refs))

		if ref.Role == assets.RoleHero {
			heroSources++
		}

		data, err := params.Source.Read(ctx, params.Project.Slug, ref.SourcePath)
		if err != nil || data == nil {
			missingSet[ref.SourcePath] = true
			params.Hooks.missing(ref.SourcePath)
			logger.Warn().Str("source", ref.SourcePath).Err(err).Msg("Asset unavailable, continuing")
			continue
		}

		mime := assets.MimeType(ref.RelativePath)
		key := assets.NormalizePath(assets.StripQueryAndHash(ref.SourcePath))
		exportPath[key] = ref.ZipPath

		entries = append(entries, Entry{Name: ref.ZipPath, Data: data})
		sourcePath := ref.SourcePath
		manifestEntries = append(manifestEntries, ManifestEntry{
			OutputPath: ref.ZipPath,
			SourcePath: &sourcePath,
			Role:       ref.Role,
			Mime:       mime,
			Bytes:      int64(len(data)),
		})

		if ref.Role != assets.RoleHero || params.Generator == nil || !assets.IsResponsiveImageMime(mime) {
			continue
		}

		set, err := params.Generator.Generate(ctx, ref.ZipPath, data, mime)
		if err != nil {
			// Fall back to the unresized original already emitted above.
			logger.Warn().Str("source", ref.SourcePath).Err(err).Msg("Variant generation failed, serving original")
			continue
		}
		for _, variant := range set.Entries {
			entries = append(entries, Entry{Name: variant.Path, Data: variant.Data})
			bucket := variant.Bucket
			variantSource := ref.SourcePath
			manifestEntries = append(manifestEntries, ManifestEntry{
				OutputPath:        variant.Path,
				SourcePath:        &variantSource,
				Role:              ref.Role,
				Mime:              mime,
				Bytes:             int64(len(variant.Data)),
				ResponsiveVariant: &bucket,
			})
		}
		triad := set.Paths
		responsivePaths[key] = &triad
		responsiveHeros++
	}
	params.Hooks.bundle(60)

	rewritten := RewriteProject(params.Project, RewriteMaps{
		ExportPath: exportPath,
		Responsive: responsivePaths,
	})
	params.Hooks.bundle(70)

	menuJSON, err := project.Marshal(rewritten)
	if err != nil {
		return nil, err
	}
	runtime, err := buildRuntimeScript(rewritten)
	if err != nil {
		return nil, err
	}
	index, err := buildIndexHTML(rewritten, version)
	if err != nil {
		return nil, err
	}

	shellEntries := []Entry{
		{Name: EntryMenuJSON, Data: menuJSON},
		{Name: EntryStyles, Data: buildExportStyles()},
		{Name: EntryRuntime, Data: runtime},
		{Name: EntryIndexHTML, Data: index},
		{Name: EntryFavicon, Data: buildFavicon()},
		{Name: EntryServeCommand, Data: buildServeCommand()},
		{Name: EntryServeBat, Data: buildServeBat()},
		{Name: EntryReadme, Data: buildReadme()},
	}
	for _, e := range shellEntries {
		entries = append(entries, e)
		manifestEntries = append(manifestEntries, ManifestEntry{
			OutputPath: e.Name,
			Role:       assets.RoleShell,
			Mime:       assets.MimeType(e.Name),
			Bytes:      int64(len(e.Data)),
		})
	}
	params.Hooks.bundle(90)

	plan := planFromRewritten(rewritten, bgLimit, itemLimit)
	backfillFirstView(manifestEntries, plan)
	params.Hooks.report(25)

	metrics := Metrics{
		JSGzipBytes:         gzipSizeOrNil(runtime),
		CSSGzipBytes:        gzipSizeOrNil(buildExportStyles()),
		FirstViewImageBytes: firstViewImageBytes(manifestEntries),
	}
	budgets := EvaluateBudgets(metrics, params.Thresholds)
	params.Hooks.report(50)

	referenced := make([]string, 0, len(refs))
	missing := make([]string, 0, len(missingSet))
	for _, ref := range refs {
		referenced = append(referenced, ref.SourcePath)
		if missingSet[ref.SourcePath] {
			missing = append(missing, ref.SourcePath)
		}
	}

	manifest, report := BuildDiagnostics(DiagnosticsInput{
		Slug:                      params.Project.Slug,
		GeneratedAt:               generatedAt,
		ManifestEntries:           manifestEntries,
		ReferencedSourcePaths:     referenced,
		MissingSourcePaths:        missing,
		HeroSourceCount:           heroSources,
		ResponsiveHeroSourceCount: responsiveHeros,
		Budgets:                   budgets,
		StartupPlan:               plan,
	})

	manifestJSON, err := EncodeJSON(manifest)
	if err != nil {
		return nil, err
	}
	reportJSON, err := EncodeJSON(report)
	if err != nil {
		return nil, err
	}
	entries = append(entries,
		Entry{Name: EntryAssetManifest, Data: manifestJSON},
		Entry{Name: EntryExportReport, Data: reportJSON},
	)
	params.Hooks.bundle(100)
	params.Hooks.report(100)

	if !budgets.Passed {
		logger.Warn().Msg("Performance budgets exceeded; bundle produced anyway")
	}
	logger.Info().
		Int("entries", len(entries)).
		Int("missing", len(missing)).
		Msg("Export finished")

	return &BuildSiteResult{
		Entries:            entries,
		Project:            rewritten,
		Diagnostics:        Diagnostics{Manifest: manifest, Report: report},
		ManifestEntries:    manifest.Entries,
		MissingSourcePaths: report.MissingAssets,
	}, nil
}

// planFromRewritten feeds the startup planner final output paths for both
// backgrounds and items, so first-view back-fill matches manifest entries
// exactly.
func planFromRewritten(rewritten *project.MenuProject, bgLimit, itemLimit int) StartupPlan {
	resolver := media.NewResolver()

	var backgroundSources []string
	for _, bg := range rewritten.Backgrounds {
		if bg.Src != "" && !assets.IsRemoteURL(bg.Src) {
			backgroundSources = append(backgroundSources, bg.Src)
		}
	}

	itemSources := make([][]string, 0, len(rewritten.Categories))
	for ci := range rewritten.Categories {
		var perCategory []string
		for ii := range rewritten.Categories[ci].Items {
			item := &rewritten.Categories[ci].Items[ii]
			if src := resolver.CarouselImageSource(item); src != "" && !assets.IsRemoteURL(src) {
				perCategory = append(perCategory, src)
			}
		}
		itemSources = append(itemSources, perCategory)
	}

	return PlanStartupAssets(PlanInput{
		BackgroundSources:       backgroundSources,
		ItemSources:             itemSources,
		BlockingBackgroundLimit: bgLimit,
		BlockingItemLimit:       itemLimit,
	})
}

// backfillFirstView flips the FirstView flag on entries whose output path is
// in the blocking set. Two-pass on purpose: entries exist before first-view
// facts are known.
func backfillFirstView(entries []ManifestEntry, plan StartupPlan) {
	blocking := make(map[string]bool, len(plan.Blocking))
	for _, p := range plan.Blocking {
		blocking[assets.NormalizePath(p)] = true
	}
	for i := range entries {
		if blocking[assets.NormalizePath(entries[i].OutputPath)] {
			entries[i].FirstView = true
		}
	}
}

func firstViewImageBytes(entries []ManifestEntry) *int64 {
	var total int64
	for _, e := range entries {
		if e.FirstView && strings.HasPrefix(e.Mime, "image/") {
			total += e.Bytes
		}
	}
	return &total
}
