package cli

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"grove-cli/internal/config"
	"grove-cli/internal/ghost"
	"grove-cli/internal/model"
	"grove-cli/internal/store"
)

func newAskCmd(app *App) *cobra.Command {
	var classFlag string
	var noteFlag string

	cmd := &cobra.Command{
		Use:   "ask <question>",
		Short: "Ask the ghost a question (optionally classify and plant the reply)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			question := ghost.TruncateQuestion(strings.TrimSpace(args[0]))
			if len(question) < 3 {
				return writeErr(cmd, errors.New("type a longer question (min 3 chars)"))
			}

			var cls model.Class
			if classFlag != "" {
				c, ok := model.ParseClass(classFlag)
				if !ok {
					return writeErr(cmd, errors.New("invalid --class (expected green|yellow|red)"))
				}
				cls = c
			}

			url := config.APIURL()
			if !ghost.IsAvailable(url) {
				return writeErr(cmd, errors.New("the ghost is unreachable at "+url))
			}

			client := ghost.NewClient(url)
			text, err := client.Ask(cmd.Context(), question)
			if err != nil {
				return writeErr(cmd, errors.New(ghost.Friendly(err)))
			}

			out := map[string]any{
				"question": question,
				"ghost":    text,
			}

			if cls != "" {
				seed := store.Normalize(model.Seed{
					ID:    store.NewSeedID(),
					Ghost: text,
					Note:  strings.TrimSpace(noteFlag),
					Class: cls,
				})
				// The thread for the chosen class always exists, even without a
				// note, so the branch shows up in history.
				t := seed.Thread(cls, true)
				if seed.Note != "" {
					t.Append(config.AuthorLabel(), seed.Note)
				}
				if err := openStore(app).UpsertNewest(seed); err != nil {
					return writeErr(cmd, err)
				}
				out["planted"] = seed
			}

			return writeOut(cmd, app, out)
		},
	}

	cmd.Flags().StringVar(&classFlag, "class", "", "Plant the reply with this class (green|yellow|red)")
	cmd.Flags().StringVar(&noteFlag, "note", "", "Optional note stored with the planted seed")
	return cmd
}
