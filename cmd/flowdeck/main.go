package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/flowdeck/flowdeck/internal/analyze"
	"github.com/flowdeck/flowdeck/internal/config"
	"github.com/flowdeck/flowdeck/internal/db"
	"github.com/flowdeck/flowdeck/internal/mcp"
	"github.com/flowdeck/flowdeck/internal/store"
)

// Version is set via -ldflags at build time.
var Version = "dev"

// cliCommands contains known CLI subcommands.
var cliCommands = map[string]bool{
	"capture": true, "board": true, "inbox": true, "list": true,
	"move": true, "done": true, "delete": true,
	"quest": true, "badges": true, "minutes": true,
	"web": true, "help": true,
}

// isCLIMode determines if we should run CLI vs MCP server.
func isCLIMode() bool {
	if len(os.Args) < 2 {
		return false // No args → MCP server
	}
	arg := os.Args[1]
	// Known subcommand → CLI
	if cliCommands[arg] {
		return true
	}
	// --help or --version → CLI
	if arg == "--help" || arg == "-h" || arg == "--version" || arg == "-v" {
		return true
	}
	return false // Default → MCP server
}

// isHelpOrVersion returns true if the user is requesting help or version info.
func isHelpOrVersion() bool {
	if len(os.Args) < 2 {
		return false
	}
	arg := os.Args[1]
	return arg == "--help" || arg == "-h" || arg == "--version" || arg == "-v" || arg == "help"
}

// isTerminal returns true if stdin is a terminal (not piped).
func isTerminal() bool {
	stat, _ := os.Stdin.Stat()
	return (stat.Mode() & os.ModeCharDevice) != 0
}

// printBanner displays a friendly banner when run interactively without args.
func printBanner() {
	fmt.Println(`
   __ _                  _           _
  / _| | _____      ____| | ___  ___| | __
 | |_| |/ _ \ \ /\ / / _` + "`" + ` |/ _ \/ __| |/ /
 |  _| | (_) \ V  V / (_| |  __/ (__|   <
 |_| |_|\___/ \_/\_/ \__,_|\___|\___|_|\_\

  Brain dumps in, kanban out

  Usage: flowdeck <command> [options]
         flowdeck --help

  MCP server mode requires piped input.`)
}

// newLogger builds the process logger. MCP mode must keep stdout clean for
// the protocol, so everything goes to stderr.
func newLogger() zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
}

func main() {
	// No args + interactive terminal → show banner and exit
	if len(os.Args) < 2 && isTerminal() {
		printBanner()
		return
	}

	// Handle --help/--version before DB init (no DB needed)
	if isHelpOrVersion() {
		app := newCLIApp(nil)
		if err := app.Run(os.Args); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	log := newLogger()

	homeDir, err := os.UserHomeDir()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: could not determine home directory: %v\n", err)
		os.Exit(1)
	}

	baseDir := filepath.Join(homeDir, ".flowdeck")

	database, err := db.Init(baseDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to initialize database: %v\n", err)
		os.Exit(1)
	}
	defer database.Close()

	cfg, err := config.Load(baseDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to load config: %v\n", err)
		os.Exit(1)
	}
	db.ConfigurePool(database, cfg)

	env, err := config.LoadEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to read environment: %v\n", err)
		os.Exit(1)
	}

	st, err := store.Open(db.NewBoardAdapter(database, log), cfg.Principal)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to open board: %v\n", err)
		os.Exit(1)
	}
	defer st.Close()

	classifier := analyze.NewGeminiClassifier(env.GeminiAPIKey, cfg.GeminiModel, cfg.GeminiBaseURL)
	analyzer := analyze.New(classifier, cfg.DumpMaxChars)

	deps := &appDeps{
		st:       st,
		analyzer: analyzer,
		cfg:      cfg,
		log:      log,
	}

	// CLI mode: known subcommand
	if isCLIMode() {
		app := newCLIApp(deps)
		if err := app.Run(os.Args); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	// Unknown argument + terminal → show error (don't start MCP server)
	if len(os.Args) >= 2 && isTerminal() {
		fmt.Fprintf(os.Stderr, "error: unknown command %q\n", os.Args[1])
		fmt.Fprintf(os.Stderr, "Run 'flowdeck --help' for usage.\n")
		os.Exit(1)
	}

	// MCP server mode (default)
	if err := mcp.Run(st, analyzer, cfg, Version); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
