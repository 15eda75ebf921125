package cli

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"grove-cli/internal/grove"
	"grove-cli/internal/store"
)

func newSeedsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seeds",
		Short: "Inspect and manage planted seeds",
	}
	cmd.AddCommand(newSeedsListCmd(app))
	cmd.AddCommand(newSeedsShowCmd(app))
	cmd.AddCommand(newSeedsDeleteCmd(app))
	cmd.AddCommand(newSeedsCountCmd(app))
	return cmd
}

func newSeedsListCmd(app *App) *cobra.Command {
	var classFlag string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List seeds, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			seeds := openStore(app).LoadAll()
			tag := strings.TrimSpace(classFlag)
			if tag == "" {
				tag = grove.FilterAll
			}
			return writeOut(cmd, app, grove.Filter(seeds, tag))
		},
	}
	cmd.Flags().StringVar(&classFlag, "class", grove.FilterAll, "Filter by class (green|yellow|red|all)")
	return cmd
}

func newSeedsShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <seed-id>",
		Short: "Show one seed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			seeds := openStore(app).LoadAll()
			seed, ok := store.FindByID(seeds, args[0])
			if !ok {
				return writeErr(cmd, errors.New("seed not found: "+args[0]))
			}
			return writeOut(cmd, app, seed)
		},
	}
}

func newSeedsDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <seed-id>",
		Short: "Delete one seed (no-op if the id is unknown)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := openStore(app)
			if err := s.DeleteByID(args[0]); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"deleted": args[0], "count": s.Count()})
		},
	}
}

func newSeedsCountCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "count",
		Short: "Number of planted seeds",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeOut(cmd, app, map[string]int{"count": openStore(app).Count()})
		},
	}
}
