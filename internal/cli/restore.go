package cli

import (
	"github.com/spf13/cobra"
)

var restoreCmd = &cobra.Command{
	Use:   "restore",
	Short: "Restore pubspec.yaml from its backup",
	Long: `Copy pubspec.yaml.backup, written before the last manifest rewrite, back
over pubspec.yaml.`,
	Args: cobra.NoArgs,
	RunE: runRestore,
}

func init() {
	rootCmd.AddCommand(restoreCmd)
}

func runRestore(cmd *cobra.Command, _ []string) error {
	d, err := loadDependencies(cmd)
	if err != nil {
		return err
	}
	if err := d.Pipeline().Restore(); err != nil {
		return err
	}
	printSuccess(d.out, d.Theme, "Restored %s", d.Layout.ManifestPath())
	return nil
}
