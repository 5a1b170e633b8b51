package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/seleny/arcana/internal/config"
	"github.com/seleny/arcana/internal/db"
	"github.com/seleny/arcana/internal/mcp"
	"github.com/seleny/arcana/internal/notify"
	"github.com/seleny/arcana/internal/storage"
	"github.com/seleny/arcana/internal/tarot"
)

// Version is set via -ldflags at build time.
var Version = "dev"

// cliCommands contains known CLI subcommands.
var cliCommands = map[string]bool{
	"draw": true, "history": true, "pull": true, "note": true,
	"delete": true, "clear": true, "prune": true,
	"cards": true, "card": true, "storage": true, "web": true,
	"help": true,
}

// isCLIMode determines if we should run CLI vs MCP server.
func isCLIMode() bool {
	if len(os.Args) < 2 {
		return false // No args → MCP server
	}
	arg := os.Args[1]
	if cliCommands[arg] {
		return true
	}
	if arg == "--help" || arg == "-h" || arg == "--version" || arg == "-v" {
		return true
	}
	return false
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
    _
   /_\  _ _ __ __ _ _ _  __ _
  / _ \| '_/ _/ _' | ' \/ _' |
 /_/ \_\_| \__\__,_|_||_\__,_|

  Tarot draws and pull history

  Usage: arcana <command> [options]
         arcana --help

  MCP server mode requires piped input.`)
}

func main() {
	// No args + interactive terminal → show banner and exit
	if len(os.Args) < 2 && isTerminal() {
		printBanner()
		return
	}

	// Handle --help/--version before store init (no store needed)
	if isHelpOrVersion() {
		app := newCLIApp(nil)
		if err := app.Run(os.Args); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: could not determine home directory: %v\n", err)
		os.Exit(1)
	}

	baseDir := filepath.Join(homeDir, ".arcana")

	// The one live store handle for the whole process. Open never fails
	// short of the in-memory tier itself failing.
	store, err := db.Open(baseDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to open history store: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	cfg, err := config.Load(baseDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to load config: %v\n", err)
		os.Exit(1)
	}
	db.ConfigurePool(store.DB, cfg)

	env := &appEnv{
		store:   store,
		cfg:     cfg,
		catalog: tarot.NewCatalog(),
		monitor: storage.NewDiskMonitor(baseDir),
		broker:  notify.NewBroker(),
	}
	defer env.broker.Close()

	// CLI mode: known subcommand
	if isCLIMode() {
		app := newCLIApp(env)
		if err := app.Run(os.Args); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	// Unknown argument + terminal → show error (don't start MCP server)
	if len(os.Args) >= 2 && isTerminal() {
		fmt.Fprintf(os.Stderr, "error: unknown command %q\n", os.Args[1])
		fmt.Fprintf(os.Stderr, "Run 'arcana --help' for usage.\n")
		os.Exit(1)
	}

	// MCP server mode (default)
	if err := mcp.Run(store.DB, cfg, env.catalog, env.monitor, env.broker, Version); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
