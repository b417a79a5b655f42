package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"github.com/flowdeck/flowdeck/internal/analyze"
	"github.com/flowdeck/flowdeck/internal/config"
	"github.com/flowdeck/flowdeck/internal/errors"
	"github.com/flowdeck/flowdeck/internal/ops"
	"github.com/flowdeck/flowdeck/internal/store"
	"github.com/flowdeck/flowdeck/internal/web"
)

// appDeps bundles the wired session for CLI actions.
type appDeps struct {
	st       *store.Store
	analyzer *analyze.Analyzer
	cfg      *config.Config
	log      zerolog.Logger
}

// newCLIApp creates the CLI application with all commands.
func newCLIApp(deps *appDeps) *cli.App {
	app := &cli.App{
		Name:    "flowdeck",
		Usage:   "Brain dumps in, kanban out",
		Version: Version,
		Commands: []*cli.Command{
			captureCmd(deps),
			boardCmd(deps),
			inboxCmd(deps),
			listCmd(deps),
			moveCmd(deps),
			doneCmd(deps),
			deleteCmd(deps),
			questCmd(deps),
			badgesCmd(deps),
			minutesCmd(deps),
			webCmd(deps),
		},
	}
	// Disable default exit error handler to allow proper error return in tests
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

// captureCmd creates the capture command.
func captureCmd(deps *appDeps) *cli.Command {
	return &cli.Command{
		Name:      "capture",
		Usage:     "Analyze a brain dump into items (positional text, or piped via stdin)",
		ArgsUsage: "[text]",
		Action: func(c *cli.Context) error {
			text := strings.Join(c.Args().Slice(), " ")
			if text == "" && stdinHasData() {
				var err error
				text, err = readStdin()
				if err != nil {
					return outputError(errors.NewInternal(err))
				}
			}
			if text == "" {
				return outputError(errors.NewInvalidRequest("text is required (pass as argument or pipe via stdin)"))
			}

			output, err := ops.Capture(c.Context, deps.analyzer, deps.st, ops.CaptureInput{Text: text})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// boardCmd creates the board command.
func boardCmd(deps *appDeps) *cli.Command {
	return &cli.Command{
		Name:  "board",
		Usage: "Show the planning columns with per-column planned minutes",
		Action: func(c *cli.Context) error {
			return outputJSON(ops.Board(deps.st))
		},
	}
}

// inboxCmd creates the inbox command.
func inboxCmd(deps *appDeps) *cli.Command {
	return &cli.Command{
		Name:  "inbox",
		Usage: "List items waiting for triage",
		Action: func(c *cli.Context) error {
			return outputJSON(ops.Inbox(deps.st))
		},
	}
}

// listCmd creates the list command.
func listCmd(deps *appDeps) *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List all items, newest first",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "status", Aliases: []string{"s"}, Usage: "Filter by status: inbox|today|this_week|soon|someday|done"},
		},
		Action: func(c *cli.Context) error {
			output, err := ops.List(deps.st, ops.ListInput{Status: c.String("status")})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// moveCmd creates the move command.
func moveCmd(deps *appDeps) *cli.Command {
	return &cli.Command{
		Name:      "move",
		Usage:     "Move an item to a new status",
		ArgsUsage: "<id> <status>",
		Action: func(c *cli.Context) error {
			if c.NArg() != 2 {
				return outputError(errors.NewInvalidRequest("usage: flowdeck move <id> <status>"))
			}

			output, err := ops.Move(deps.st, ops.MoveInput{
				ID:     c.Args().Get(0),
				Status: c.Args().Get(1),
			})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// doneCmd creates the done command.
func doneCmd(deps *appDeps) *cli.Command {
	return &cli.Command{
		Name:      "done",
		Usage:     "Mark an item finished",
		ArgsUsage: "<id>",
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return outputError(errors.NewInvalidRequest("usage: flowdeck done <id>"))
			}

			output, err := ops.Done(deps.st, c.Args().First())
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// deleteCmd creates the delete command.
func deleteCmd(deps *appDeps) *cli.Command {
	return &cli.Command{
		Name:      "delete",
		Usage:     "Delete an item permanently",
		ArgsUsage: "<id>",
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return outputError(errors.NewInvalidRequest("usage: flowdeck delete <id>"))
			}

			output, err := ops.Delete(deps.st, ops.DeleteInput{ID: c.Args().First()})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// questCmd creates the quest command.
func questCmd(deps *appDeps) *cli.Command {
	return &cli.Command{
		Name:  "quest",
		Usage: "Promote a random someday item to today",
		Action: func(c *cli.Context) error {
			output, err := ops.Quest(deps.st, nil)
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// badgesCmd creates the badges command.
func badgesCmd(deps *appDeps) *cli.Command {
	return &cli.Command{
		Name:  "badges",
		Usage: "Show achievements and their unlock state",
		Action: func(c *cli.Context) error {
			return outputJSON(ops.Badges(deps.st))
		},
	}
}

// minutesCmd creates the minutes command.
func minutesCmd(deps *appDeps) *cli.Command {
	return &cli.Command{
		Name:  "minutes",
		Usage: "Sum the planned minutes for a status column",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "status", Aliases: []string{"s"}, Value: "today", Usage: "Status column to sum"},
		},
		Action: func(c *cli.Context) error {
			output, err := ops.Minutes(deps.st, ops.MinutesInput{Status: c.String("status")})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// webCmd creates the web command.
func webCmd(deps *appDeps) *cli.Command {
	return &cli.Command{
		Name:  "web",
		Usage: "Start the web UI",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "bind", Usage: "Bind address (default from config)"},
			&cli.IntFlag{Name: "port", Aliases: []string{"p"}, Usage: "Port (default from config)"},
		},
		Action: func(c *cli.Context) error {
			bind := deps.cfg.WebBind
			if v := c.String("bind"); v != "" {
				bind = v
			}
			port := deps.cfg.WebPort
			if v := c.Int("port"); v != 0 {
				port = v
			}

			srv := web.NewServer(deps.st, deps.analyzer, deps.log, Version, bind, port)
			return web.Run(srv, deps.log)
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
	if flowErr, ok := err.(*errors.FlowError); ok {
		return cli.Exit(fmt.Sprintf("[%s] %s", flowErr.Code, flowErr.Message), 1)
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
