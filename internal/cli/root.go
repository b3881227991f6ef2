package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/sakiengine/saki/pkg/version"
)

var rootCmd = &cobra.Command{
	Use:   "saki",
	Short: "Saki engine content tooling",
	Long: `saki prepares the Saki visual novel engine for a content project.

It mirrors Game/<name>/Assets and GameScript into the engine asset root,
regenerates the assets and fonts sections of Engine/pubspec.yaml, applies
the project's application name and bundle id, and runs the Flutter build.`,
	Version:       version.Get().Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command. Interrupts cancel the command context.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintln(rootCmd.ErrOrStderr(), errorLine(err))
	}
	return err
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf("saki %s\n", version.Get()))

	pf := rootCmd.PersistentFlags()
	pf.String("root", "", "Workspace root (default: search upward from the current directory)")
	pf.BoolP("verbose", "v", false, "Enable debug logging")
	pf.Bool("no-color", false, "Disable coloured output")
	pf.Bool("non-interactive", false, "Never prompt; use flags and the active project")
}

// getStringFlag retrieves a string flag value from the command.
func getStringFlag(cmd *cobra.Command, name string) string {
	val, err := cmd.Flags().GetString(name)
	if err != nil {
		return ""
	}
	return val
}

// getBoolFlag retrieves a bool flag value from the command.
func getBoolFlag(cmd *cobra.Command, name string) bool {
	val, err := cmd.Flags().GetBool(name)
	if err != nil {
		return false
	}
	return val
}
