package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"grove-cli/internal/config"
	"grove-cli/internal/format"
	"grove-cli/internal/store"
	"grove-cli/internal/tui"
)

type App struct {
	Dir        string
	PrettyJSON bool
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "grove",
		Short:        "Memory Grove (local-first) CLI + TUI",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive TUI
  grove

  # Ask the ghost from a script
  grove ask "What was lost?"

  # Ask, classify, and plant in one step
  grove ask "What was lost?" --class yellow --note "half remembered"

  # Inspect planted seeds
  grove seeds list --class green
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runTUI(app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		dir, err := resolveDir(app)
		if err != nil {
			return err
		}
		app.Dir = dir
		config.Init(dir)
		return nil
	}

	cmd.PersistentFlags().StringVar(&app.Dir, "dir", envOr("GROVE_DIR", ""), "Path to store dir (default: ~/.grove)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")

	cmd.AddCommand(newAskCmd(app))
	cmd.AddCommand(newSeedsCmd(app))
	cmd.AddCommand(newExportCmd(app))
	cmd.AddCommand(newImportCmd(app))
	cmd.AddCommand(newDemoCmd(app))

	return cmd
}

func runTUI(app *App) error {
	return tui.Run(app.Dir)
}

func resolveDir(app *App) (string, error) {
	if strings.TrimSpace(app.Dir) != "" {
		return app.Dir, nil
	}
	return store.DefaultDir()
}

func openStore(app *App) store.Store {
	return store.Store{Dir: app.Dir}
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.WriteJSON(cmd.OutOrStdout(), v, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
