package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sakiengine/saki/internal/core/pipeline"
	"github.com/sakiengine/saki/internal/toolchain"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Prepare the engine for a project and launch it",
	Long: `Resolve a content project, apply its name and bundle id to the engine,
mirror its content, regenerate pubspec.yaml and start it with flutter run.

Without --project an interactive menu offers to continue with the active
project, select another one, or create a new one.

Examples:
  saki run                   Choose from the menu and run on this desktop
  saki run --project Demo    Run Demo without prompting
  saki run --web             Run in Chrome
  saki run --skip-build      Sync and regenerate only`,
	Args: cobra.NoArgs,
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().Bool("web", false, "Run in Chrome instead of the desktop")
	runCmd.Flags().String("project", "", "Content project to run (default: menu or active project)")
	runCmd.Flags().Bool("skip-build", false, "Stop after the manifest is regenerated; skips identity and build")
}

func runRun(cmd *cobra.Command, _ []string) error {
	d, err := loadDependencies(cmd)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	skipBuild := getBoolFlag(cmd, "skip-build")
	web := getBoolFlag(cmd, "web")

	platform := toolchain.Current()
	if !skipBuild {
		if _, err := platform.Device(web); err != nil {
			return err
		}
	}

	resolver, err := d.Resolver()
	if err != nil {
		return err
	}
	cp, err := resolver.Resolve(ctx, getStringFlag(cmd, "project"))
	if err != nil {
		return fmt.Errorf("resolve project: %w", err)
	}
	d.Logger.Info("running project", "name", cp.Name, "platform", platform.ID, "web", web)

	reporter := d.Reporter(false)
	defer reporter.Close()

	opts := []pipeline.Option{pipeline.WithReporter(reporter)}
	if !skipBuild {
		opts = append(opts, pipeline.WithIdentitySetter(d.IdentitySetter()))
	}
	if _, err := d.Pipeline(opts...).Prepare(ctx, cp); err != nil {
		return err
	}

	if skipBuild {
		printMuted(d.out, d.Theme, "Build skipped.")
		return nil
	}

	flutterVersion, err := d.Checker().Check(ctx)
	if err != nil {
		return err
	}
	d.Logger.Debug("flutter found", "version", flutterVersion)

	result, err := d.Builder(d.Reporter(true)).Build(ctx, toolchain.BuildOptions{
		Platform: platform,
		Web:      web,
		GamePath: d.abs(cp.Root),
	})
	if err != nil {
		return err
	}
	printSuccess(d.out, d.Theme, "%s finished on %s", cp.Name, result.Device)
	return nil
}
