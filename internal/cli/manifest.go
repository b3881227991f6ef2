package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sakiengine/saki/internal/core/manifest"
	"github.com/sakiengine/saki/internal/core/pipeline"
)

var manifestCmd = &cobra.Command{
	Use:   "manifest",
	Short: "Regenerate the assets and fonts sections of pubspec.yaml",
	Long: `Rebuild the assets section from the current engine asset root and the fonts
section from the project's Assets/fonts directory, without copying content.

With --diff the change is printed as a unified diff and nothing is written.`,
	Args: cobra.NoArgs,
	RunE: runManifest,
}

func init() {
	rootCmd.AddCommand(manifestCmd)

	manifestCmd.Flags().Bool("diff", false, "Print the change as a unified diff without writing")
	manifestCmd.Flags().String("project", "", "Content project whose fonts are listed (default: menu or active project)")
}

func runManifest(cmd *cobra.Command, _ []string) error {
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

	dryRun := getBoolFlag(cmd, "diff")
	reporter := d.Reporter(false)
	defer reporter.Close()

	p := d.Pipeline(
		pipeline.WithReporter(reporter),
		pipeline.WithEditorOptions(manifest.WithDryRun(dryRun)),
	)
	change, err := p.Regenerate(cp)
	if err != nil {
		return err
	}
	if dryRun {
		return change.WriteDiff(cmd.Context(), d.out, !d.Theme.NoColor)
	}
	if change.BackupPath != "" {
		printMuted(d.out, d.Theme, "Backup written to %s", change.BackupPath)
	}
	return nil
}
