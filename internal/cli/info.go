package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/go-git/go-billy/v5/util"
	"github.com/spf13/cobra"

	"github.com/sakiengine/saki/internal/core/project"
	"github.com/sakiengine/saki/internal/core/pubspec"
	"github.com/sakiengine/saki/internal/fsutil"
	"github.com/sakiengine/saki/internal/ui"
)

// readmeWidth is the wrap width for rendered project readmes.
const readmeWidth = 80

var infoCmd = &cobra.Command{
	Use:   "info [name]",
	Short: "Show a content project's identity, fonts and readme",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	d, err := loadDependencies(cmd)
	if err != nil {
		return err
	}

	var cp project.ContentProject
	if name := projectName(cmd, args); name != "" {
		cp, err = d.Store.Get(name)
	} else {
		cp, err = d.Store.ActiveProject()
	}
	if err != nil {
		return err
	}

	var rows []string
	rows = append(rows, d.Theme.Title.Render(cp.Name), "")
	rows = append(rows, field(d.Theme, "Path", cp.Root))
	if id, err := d.Store.ReadIdentity(cp); err != nil {
		rows = append(rows, field(d.Theme, "Identity", d.Theme.Error.Render(err.Error())))
	} else {
		rows = append(rows, field(d.Theme, "App name", id.AppName))
		rows = append(rows, field(d.Theme, "Bundle id", id.BundleID))
	}

	gen := pubspec.NewGenerator(d.FS, pubspec.WithFontExtensions(d.Config.Fonts.Extensions...))
	var families []string
	for _, f := range gen.ProjectFonts(cp.Root) {
		families = append(families, f.Family)
	}
	if len(families) == 0 {
		families = []string{d.Theme.Muted.Render("none")}
	}
	rows = append(rows, field(d.Theme, "Fonts", strings.Join(families, ", ")))

	icon := "workspace default"
	if fsutil.IsFile(d.FS, cp.IconPath()) {
		icon = cp.IconPath()
	}
	rows = append(rows, field(d.Theme, "Icon", icon))

	_, _ = fmt.Fprintln(d.out, d.Theme.Card.Render(lipgloss.JoinVertical(lipgloss.Left, rows...)))

	readme, err := util.ReadFile(d.FS, cp.ReadmePath())
	if err != nil {
		return nil
	}
	rendered, err := ui.RenderMarkdown(string(readme), readmeWidth, d.Theme.NoColor)
	if err != nil {
		d.Logger.Warn("readme not rendered", "path", cp.ReadmePath(), "error", err)
		_, _ = fmt.Fprintln(d.out, string(readme))
		return nil
	}
	_, _ = fmt.Fprint(d.out, rendered)
	return nil
}

func field(theme *ui.Theme, label, value string) string {
	return theme.Muted.Render(fmt.Sprintf("%-10s", label)) + " " + value
}
