package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/menuforge/menuforge/internal/assets"
	"github.com/menuforge/menuforge/internal/export"
	"github.com/menuforge/menuforge/internal/media"
	"github.com/menuforge/menuforge/internal/project"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <project-file>",
	Short: "Preview the startup asset plan without exporting",
	Long: `Inspect shows which assets would block first paint and estimates
their weight from typical file sizes. Estimates, not measurements: run an
export for real numbers.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := project.LoadFile(args[0])
		if err != nil {
			return err
		}

		resolver := media.NewResolver()
		var backgroundSources []string
		for _, bg := range p.Backgrounds {
			if bg.Src != "" && !assets.IsRemoteURL(bg.Src) {
				backgroundSources = append(backgroundSources, bg.Src)
			}
		}
		itemSources := make([][]string, 0, len(p.Categories))
		for ci := range p.Categories {
			var perCategory []string
			for ii := range p.Categories[ci].Items {
				item := &p.Categories[ci].Items[ii]
				if src := resolver.CarouselImageSource(item); src != "" && !assets.IsRemoteURL(src) {
					perCategory = append(perCategory, src)
				}
			}
			itemSources = append(itemSources, perCategory)
		}

		plan := export.PlanStartupAssets(export.PlanInput{
			BackgroundSources:       backgroundSources,
			ItemSources:             itemSources,
			BlockingBackgroundLimit: cfg.Planner.BlockingBackgroundLimit,
			BlockingItemLimit:       cfg.Planner.BlockingItemLimit,
		})

		backgroundSet := make(map[string]bool, len(backgroundSources))
		for _, src := range backgroundSources {
			backgroundSet[src] = true
		}
		roleFor := func(src string) assets.Role {
			if backgroundSet[src] {
				return assets.RoleBackground
			}
			return assets.RoleHero
		}

		var blockingEstimate int64
		fmt.Printf("Blocking (first paint), %d assets:\n", len(plan.Blocking))
		for _, src := range plan.Blocking {
			estimate := export.EstimateSourceBytes(roleFor(src), src)
			blockingEstimate += estimate
			fmt.Printf("  %-60s ~%d bytes\n", src, estimate)
		}
		fmt.Printf("Estimated first-view weight: ~%d bytes\n\n", blockingEstimate)

		fmt.Printf("Deferred, %d assets:\n", len(plan.Deferred))
		for _, src := range plan.Deferred {
			fmt.Printf("  %s\n", src)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}
