package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/seleny/arcana/internal/config"
	"github.com/seleny/arcana/internal/db"
	"github.com/seleny/arcana/internal/errors"
	"github.com/seleny/arcana/internal/notify"
	"github.com/seleny/arcana/internal/ops"
	"github.com/seleny/arcana/internal/storage"
	"github.com/seleny/arcana/internal/tarot"
	"github.com/seleny/arcana/internal/web"
)

// appEnv bundles the process-wide dependencies shared by every command.
type appEnv struct {
	store   *db.Store
	cfg     *config.Config
	catalog *tarot.Catalog
	monitor storage.Monitor
	broker  *notify.Broker
}

// newCLIApp creates the CLI application with all commands. env may be nil
// for help/version invocations that never touch the store.
func newCLIApp(env *appEnv) *cli.App {
	app := &cli.App{
		Name:    "arcana",
		Usage:   "Tarot draws and pull history",
		Version: Version,
		Commands: []*cli.Command{
			drawCmd(env),
			historyCmd(env),
			pullCmd(env),
			noteCmd(env),
			deleteCmd(env),
			clearCmd(env),
			pruneCmd(env),
			cardsCmd(env),
			cardCmd(env),
			storageCmd(env),
			webCmd(env),
		},
	}
	// Disable default exit error handler to allow proper error return in tests
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

// drawCmd creates the draw command.
func drawCmd(env *appEnv) *cli.Command {
	return &cli.Command{
		Name:  "draw",
		Usage: "Draw a card and record it in history",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "count", Aliases: []string{"c"}, Value: 1, Usage: "Number of cards to draw"},
		},
		Action: func(c *cli.Context) error {
			count := c.Int("count")
			if count < 1 {
				return outputError(errors.NewInvalidRequest("count must be at least 1"))
			}

			drawer := ops.NewDrawer(env.store.DB, env.catalog, env.monitor, env.broker)

			if count == 1 {
				output, err := drawer.Draw()
				if err != nil {
					return outputError(err)
				}
				return outputJSON(output)
			}

			outputs := make([]*ops.DrawOutput, 0, count)
			for i := 0; i < count; i++ {
				output, err := drawer.Draw()
				if err != nil {
					return outputError(err)
				}
				outputs = append(outputs, output)
			}
			return outputJSON(outputs)
		},
	}
}

// historyCmd creates the history command.
func historyCmd(env *appEnv) *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "List recorded pulls, newest first",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "limit", Aliases: []string{"l"}, Usage: "Maximum items to return"},
		},
		Action: func(c *cli.Context) error {
			input := ops.ListHistoryInput{
				Limit: c.Int("limit"),
			}

			output, err := ops.ListHistory(env.store.DB, env.cfg, input)
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// pullCmd creates the pull command.
func pullCmd(env *appEnv) *cli.Command {
	return &cli.Command{
		Name:      "pull",
		Usage:     "Fetch a single pull by ID",
		ArgsUsage: "<id>",
		Action: func(c *cli.Context) error {
			if c.NArg() < 1 {
				return outputError(errors.NewInvalidRequest("pull id is required"))
			}

			output, err := ops.GetPull(env.store.DB, c.Args().First())
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// noteCmd creates the note command.
func noteCmd(env *appEnv) *cli.Command {
	return &cli.Command{
		Name:      "note",
		Usage:     "Set or clear the note on a pull (text from args or stdin)",
		ArgsUsage: "<id> [text]",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "clear", Usage: "Remove the note from the pull"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() < 1 {
				return outputError(errors.NewInvalidRequest("pull id is required"))
			}
			id := c.Args().First()

			if c.Bool("clear") {
				output, err := ops.ClearNote(env.store.DB, env.broker, id)
				if err != nil {
					return outputError(err)
				}
				return outputJSON(output)
			}

			text := strings.Join(c.Args().Tail(), " ")
			if text == "" && stdinHasData() {
				stdinText, err := readStdin()
				if err != nil {
					return outputError(errors.NewInternal(err))
				}
				text = stdinText
			}

			output, err := ops.SetNote(env.store.DB, env.broker, ops.SetNoteInput{
				ID:   id,
				Text: text,
			})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// deleteCmd creates the delete command.
func deleteCmd(env *appEnv) *cli.Command {
	return &cli.Command{
		Name:      "delete",
		Usage:     "Delete one or more pulls by ID",
		ArgsUsage: "<id> [id...]",
		Action: func(c *cli.Context) error {
			if c.NArg() < 1 {
				return outputError(errors.NewInvalidRequest("at least one pull id is required"))
			}

			var output *ops.DeleteOutput
			var err error
			if c.NArg() == 1 {
				output, err = ops.Delete(env.store.DB, env.broker, ops.DeleteInput{ID: c.Args().First()})
			} else {
				output, err = ops.DeleteMany(env.store.DB, env.broker, ops.DeleteManyInput{IDs: c.Args().Slice()})
			}
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// clearCmd creates the clear command.
func clearCmd(env *appEnv) *cli.Command {
	return &cli.Command{
		Name:  "clear",
		Usage: "Delete every pull in history",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "force", Aliases: []string{"f"}, Usage: "Confirm deletion of all history"},
		},
		Action: func(c *cli.Context) error {
			if !c.Bool("force") {
				return outputError(errors.NewInvalidRequest("pass --force to delete all history"))
			}

			output, err := ops.DeleteAll(env.store.DB, env.broker)
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// pruneCmd creates the prune command.
func pruneCmd(env *appEnv) *cli.Command {
	return &cli.Command{
		Name:  "prune",
		Usage: "Delete the oldest pulls to free space",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "count", Aliases: []string{"c"}, Usage: "Number of oldest pulls to delete"},
		},
		Action: func(c *cli.Context) error {
			output, err := ops.Prune(env.store.DB, env.broker, env.cfg, ops.PruneInput{
				Count: c.Int("count"),
			})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// cardsCmd creates the cards command.
func cardsCmd(env *appEnv) *cli.Command {
	return &cli.Command{
		Name:  "cards",
		Usage: "List the cards in the current deck",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "suit", Aliases: []string{"s"}, Usage: "Filter by suit: major|swords|wands|pentacles|cups"},
		},
		Action: func(c *cli.Context) error {
			var cards []tarot.Card
			if suitName := c.String("suit"); suitName != "" {
				suit, ok := tarot.ParseSuit(suitName)
				if !ok {
					return outputError(errors.NewInvalidRequest(fmt.Sprintf("unknown suit %q", suitName)))
				}
				cards = env.catalog.CardsOfSuit(suit)
			} else {
				cards = env.catalog.AllCards()
			}

			return outputJSON(map[string]any{
				"deck":  env.catalog.CurrentDeck().Name,
				"cards": cards,
				"total": len(cards),
			})
		},
	}
}

// cardCmd creates the card command.
func cardCmd(env *appEnv) *cli.Command {
	return &cli.Command{
		Name:      "card",
		Usage:     "Show a single card by ID",
		ArgsUsage: "<id>",
		Action: func(c *cli.Context) error {
			if c.NArg() < 1 {
				return outputError(errors.NewInvalidRequest("card id is required"))
			}

			card, ok := env.catalog.CardByID(c.Args().First())
			if !ok {
				return outputError(errors.NewNotFound(c.Args().First()))
			}

			return outputJSON(card)
		},
	}
}

// storageCmd creates the storage command.
func storageCmd(env *appEnv) *cli.Command {
	return &cli.Command{
		Name:  "storage",
		Usage: "Report store capacity and pruning advice",
		Action: func(c *cli.Context) error {
			output, err := ops.Status(env.store.DB, env.cfg, env.monitor)
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// webCmd creates the web command.
func webCmd(env *appEnv) *cli.Command {
	return &cli.Command{
		Name:  "web",
		Usage: "Serve the history browser over HTTP",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "bind", Value: "127.0.0.1", Usage: "Address to bind"},
			&cli.IntFlag{Name: "port", Aliases: []string{"p"}, Value: 7378, Usage: "Port to listen on"},
		},
		Action: func(c *cli.Context) error {
			srv := web.NewServer(env.store.DB, env.cfg, env.catalog, env.monitor, env.broker, Version, c.String("bind"), c.Int("port"))
			fmt.Fprintf(os.Stderr, "arcana web listening on http://%s\n", srv.Addr)
			if err := srv.ListenAndServe(); err != nil {
				return outputError(errors.NewInternal(err))
			}
			return nil
		},
	}
}

// Helper functions

// outputJSON marshals result to stdout as JSON.
func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputError formats error for CLI.
func outputError(err error) error {
	if arcErr, ok := err.(*errors.ArcanaError); ok {
		return cli.Exit(fmt.Sprintf("[%s] %s", arcErr.Code, arcErr.Message), 1)
	}
	return cli.Exit(err.Error(), 1)
}

// stdinHasData returns true if stdin has piped data (not a terminal).
func stdinHasData() bool {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) == 0
}

// readStdin reads all content from stdin.
func readStdin() (string, error) {
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}
