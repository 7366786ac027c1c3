package cli

import (
	"archive/zip"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/menuforge/menuforge/internal/assets"
	"github.com/menuforge/menuforge/internal/export"
	"github.com/menuforge/menuforge/internal/media"
	"github.com/menuforge/menuforge/internal/project"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export <project-file>",
	Short: "Export a menu project to a static site bundle",
	Long: `Export reads a menu project file, resolves and resizes its media,
and writes a self-contained static website zip next to it (or at --out).

Budget failures are warnings: a working bundle is always produced.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := project.LoadFile(args[0])
		if err != nil {
			return err
		}

		source, err := buildSource()
		if err != nil {
			return err
		}

		params := export.BuildSiteParams{
			Project:                 p,
			Source:                  source,
			Thresholds:              thresholdsFromConfig(),
			BlockingBackgroundLimit: cfg.Planner.BlockingBackgroundLimit,
			BlockingItemLimit:       cfg.Planner.BlockingItemLimit,
			Hooks: export.ProgressHooks{
				OnAsset: func(sourcePath string, index, total int) {
					log.Debug().Str("asset", sourcePath).Int("index", index).Int("total", total).Msg("Bundling asset")
				},
				OnMissingAsset: func(sourcePath string) {
					fmt.Fprintf(os.Stderr, "warning: missing asset %s\n", sourcePath)
				},
			},
		}
		if !cfg.Export.DisableResize {
			params.Generator = media.NewGenerator()
		}

		result, err := export.BuildSite(cmd.Context(), params)
		if err != nil {
			return err
		}

		outPath := exportOut
		if outPath == "" {
			slug := p.Slug
			if slug == "" {
				slug = "menu"
			}
			outPath = filepath.Join(cfg.Export.OutDir, slug+"-site.zip")
		}
		if err := writeBundle(outPath, result.Entries); err != nil {
			return err
		}

		printBudgets(result.Diagnostics.Report)
		if len(result.MissingSourcePaths) > 0 {
			fmt.Printf("Missing assets (%d):\n", len(result.MissingSourcePaths))
			for _, p := range result.MissingSourcePaths {
				fmt.Printf("  - %s\n", p)
			}
		}
		fmt.Printf("Exported %d files to %s\n", len(result.Entries), outPath)
		return nil
	},
}

func buildSource() (assets.Source, error) {
	switch cfg.Storage.Provider {
	case "s3":
		return assets.NewS3Source(
			cfg.Storage.S3Endpoint,
			cfg.Storage.S3AccessKey,
			cfg.Storage.S3SecretKey,
			cfg.Storage.S3Region,
			cfg.Storage.S3Bucket,
			cfg.Storage.S3UseSSL,
		)
	case "local", "":
		return assets.NewLocalSource(cfg.Storage.LocalPath)
	default:
		return nil, fmt.Errorf("unknown storage provider: %s", cfg.Storage.Provider)
	}
}

func thresholdsFromConfig() *export.Thresholds {
	t := export.DefaultThresholds()
	if cfg.Budget.JSGzipBytes > 0 {
		t.JSGzipBytes = cfg.Budget.JSGzipBytes
	}
	if cfg.Budget.CSSGzipBytes > 0 {
		t.CSSGzipBytes = cfg.Budget.CSSGzipBytes
	}
	if cfg.Budget.FirstViewImageBytes > 0 {
		t.FirstViewImageBytes = cfg.Budget.FirstViewImageBytes
	}
	return &t
}

// writeBundle zips the export entries in order.
func writeBundle(path string, entries []export.Entry) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create bundle: %w", err)
	}
	defer file.Close()

	zw := zip.NewWriter(file)
	for _, entry := range entries {
		w, err := zw.Create(entry.Name)
		if err != nil {
			return fmt.Errorf("failed to add %s to bundle: %w", entry.Name, err)
		}
		if _, err := w.Write(entry.Data); err != nil {
			return fmt.Errorf("failed to write %s: %w", entry.Name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("failed to finalize bundle: %w", err)
	}
	return nil
}

func printBudgets(report export.Report) {
	status := "PASSED"
	if !report.Budgets.Passed {
		status = "EXCEEDED"
	}
	fmt.Printf("Performance budgets: %s\n", status)
	for _, check := range report.Budgets.Checks {
		actual := "n/a"
		if check.Actual != nil {
			actual = fmt.Sprintf("%d", *check.Actual)
		}
		fmt.Printf("  %-18s %-12s %s / %d bytes\n", check.Name, check.Status, actual, check.Threshold)
	}
}

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output zip path (default <slug>-site.zip)")
	rootCmd.AddCommand(exportCmd)
}
