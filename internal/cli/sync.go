package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sakiengine/saki/internal/core/pipeline"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Mirror a project into the engine and regenerate pubspec.yaml",
	Long: `Replace Engine/assets/Assets and Engine/assets/GameScript with copies of the
project's trees, copy the active marker and launcher icon, then rewrite the
assets and fonts sections of pubspec.yaml. Running it twice changes nothing.`,
	Args: cobra.NoArgs,
	RunE: runSync,
}

func init() {
	rootCmd.AddCommand(syncCmd)

	syncCmd.Flags().String("project", "", "Content project to sync (default: menu or active project)")
}

func runSync(cmd *cobra.Command, _ []string) error {
	d, err := loadDependencies(cmd)
	if err != nil {
		return err
	}
	resolver, err := d.Resolver()
	if err != nil {
		return err
	}
	cp, err := resolver.Resolve(cmd.Context(), getStringFlag(cmd, "project"))
	if err != nil {
		return fmt.Errorf("resolve project: %w", err)
	}

	reporter := d.Reporter(false)
	defer reporter.Close()

	if _, err := d.Pipeline(pipeline.WithReporter(reporter)).Prepare(cmd.Context(), cp); err != nil {
		return err
	}
	if n := reporter.Warnings(); n > 0 {
		printMuted(d.out, d.Theme, "%s synced with %d warning(s).", cp.Name, n)
	}
	return nil
}
