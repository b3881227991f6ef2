package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sakiengine/saki/internal/config"
	"github.com/sakiengine/saki/internal/ui"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage saki.yaml",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write saki.yaml with the default settings",
	Args:  cobra.NoArgs,
	RunE:  runConfigInit,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd, configShowCmd)

	configInitCmd.Flags().Bool("force", false, "Overwrite an existing saki.yaml")
}

func runConfigInit(cmd *cobra.Command, _ []string) error {
	root, err := workspaceRoot(cmd, true)
	if err != nil {
		return err
	}
	path, err := config.WriteDefaults(root, getBoolFlag(cmd, "force"))
	if err != nil {
		return err
	}
	theme := ui.NewTheme(getBoolFlag(cmd, "no-color"))
	printSuccess(cmd.OutOrStdout(), theme, "Wrote %s", path)
	return nil
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	d, err := loadDependencies(cmd)
	if err != nil {
		return err
	}
	data, err := config.Marshal(d.Config)
	if err != nil {
		return err
	}
	source := "defaults"
	if d.Manager.FromFile() {
		source = d.Manager.Path()
	}
	printMuted(d.out, d.Theme, "# source: %s", source)
	_, _ = fmt.Fprint(d.out, string(data))
	return nil
}
