package cli

import (
	"errors"

	"github.com/spf13/cobra"
)

var selectCmd = &cobra.Command{
	Use:   "select [name]",
	Short: "Set the active content project",
	Long: `Record a content project in default_game.txt so later commands use it by
default. Without a name the available projects are listed for selection.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSelect,
}

func init() {
	rootCmd.AddCommand(selectCmd)
}

func runSelect(cmd *cobra.Command, args []string) error {
	d, err := loadDependencies(cmd)
	if err != nil {
		return err
	}

	if len(args) == 1 {
		if err := d.Store.SetActive(args[0]); err != nil {
			return err
		}
		printSuccess(d.out, d.Theme, "Active project: %s", args[0])
		return nil
	}

	if d.Asker == nil {
		return errors.New("select: pass a project name or run interactively")
	}
	resolver, err := d.Resolver()
	if err != nil {
		return err
	}
	cp, err := resolver.Select()
	if err != nil {
		return err
	}
	printSuccess(d.out, d.Theme, "Active project: %s", cp.Name)
	return nil
}
