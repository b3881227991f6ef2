package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sakiengine/saki/internal/core/project"
)

var newCmd = &cobra.Command{
	Use:   "new",
	Short: "Create a new content project",
	Long: `Scaffold Game/<name>/ with the standard Assets and GameScript directories,
a game_config.txt identity descriptor, starter scripts, and an engine module
under Engine/lib/<name>/.

With --name and --bundle-id the project is created without prompting.
Otherwise the questions are asked interactively.

Examples:
  saki new
  saki new --name Demo --bundle-id com.studio.demo --color 137B8B --activate`,
	Args: cobra.NoArgs,
	RunE: runNew,
}

func init() {
	rootCmd.AddCommand(newCmd)

	newCmd.Flags().String("name", "", "Project name (letters, digits, _ and -)")
	newCmd.Flags().String("bundle-id", "", "Bundle id, e.g. com.company.app")
	newCmd.Flags().String("color", "", "Primary colour as six hex digits (default: "+project.DefaultColor+")")
	newCmd.Flags().Bool("activate", false, "Make the new project active")
}

func runNew(cmd *cobra.Command, _ []string) error {
	d, err := loadDependencies(cmd)
	if err != nil {
		return err
	}

	name := getStringFlag(cmd, "name")
	bundleID := getStringFlag(cmd, "bundle-id")

	if name == "" && bundleID == "" {
		if d.Asker == nil {
			return errors.New("new: pass --name and --bundle-id or run interactively")
		}
		resolver, err := d.Resolver()
		if err != nil {
			return err
		}
		cp, err := resolver.Create(cmd.Context())
		if err != nil {
			return err
		}
		printMuted(d.out, d.Theme, "Project files are in %s", cp.Root)
		return nil
	}
	if name == "" || bundleID == "" {
		return errors.New("new: --name and --bundle-id must be given together")
	}

	scaffold, err := d.Scaffolder()
	if err != nil {
		return err
	}
	res, err := scaffold.Create(cmd.Context(), project.ScaffoldOptions{
		Name:     name,
		BundleID: bundleID,
		Color:    getStringFlag(cmd, "color"),
	})
	if err != nil {
		return fmt.Errorf("create project: %w", err)
	}
	printSuccess(d.out, d.Theme, "Created %s (%d files, module %s)", name, len(res.CreatedFiles), res.ModulePath)

	if getBoolFlag(cmd, "activate") {
		if err := d.Store.SetActive(name); err != nil {
			return err
		}
		printSuccess(d.out, d.Theme, "Active project: %s", name)
	}
	return nil
}
