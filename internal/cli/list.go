package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sakiengine/saki/internal/core/project"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List content projects",
	Long:  "List the projects under Game/ in name order. The active project is marked with *.",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, _ []string) error {
	d, err := loadDependencies(cmd)
	if err != nil {
		return err
	}
	names, err := d.Store.List()
	if err != nil {
		return err
	}
	if len(names) == 0 {
		printMuted(d.out, d.Theme, "No projects under %s/. Create one with saki new.", d.Layout.GameDir)
		return nil
	}

	active, err := d.Store.Active()
	if err != nil && !errors.Is(err, project.ErrNoActiveProject) {
		return err
	}
	for _, name := range names {
		if name == active {
			_, _ = fmt.Fprintf(d.out, "* %s\n", d.Theme.Primary.Render(name))
			continue
		}
		_, _ = fmt.Fprintf(d.out, "  %s\n", name)
	}
	return nil
}
