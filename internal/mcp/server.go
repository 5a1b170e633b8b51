// Package mcp exposes the draw and history operations as MCP tools over
// stdio, the assistant-facing entry point that mirrors the original app's
// voice-shortcut intents.
package mcp

import (
	"database/sql"
	"log"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/seleny/arcana/internal/config"
	"github.com/seleny/arcana/internal/notify"
	"github.com/seleny/arcana/internal/storage"
	"github.com/seleny/arcana/internal/tarot"
)

// toolEntry pairs a tool definition with a handler factory.
type toolEntry struct {
	def     mcp.Tool
	handler func(*Handlers) server.ToolHandlerFunc
}

// toolRegistry maps tool names to their definitions and handler factories.
var toolRegistry = map[string]toolEntry{
	"tarot_draw": {
		def:     drawToolDef(),
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleDraw },
	},
	"tarot_history": {
		def:     historyToolDef(),
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleHistory },
	},
	"tarot_pull": {
		def:     pullToolDef(),
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandlePull },
	},
	"tarot_set_note": {
		def:     setNoteToolDef(),
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleSetNote },
	},
	"tarot_clear_note": {
		def:     clearNoteToolDef(),
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleClearNote },
	},
	"tarot_delete": {
		def:     deleteToolDef(),
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleDelete },
	},
	"tarot_clear_history": {
		def:     clearHistoryToolDef(),
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleClearHistory },
	},
	"tarot_prune": {
		def:     pruneToolDef(),
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandlePrune },
	},
	"tarot_card": {
		def:     cardToolDef(),
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleCard },
	},
	"tarot_cards": {
		def:     cardsToolDef(),
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleCards },
	},
	"tarot_storage": {
		def:     storageToolDef(),
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleStorage },
	},
}

// AllToolNames returns a list of all valid tool names.
func AllToolNames() []string {
	names := make([]string, 0, len(toolRegistry))
	for name := range toolRegistry {
		names = append(names, name)
	}
	return names
}

// ValidateDisabledTools returns a list of unknown tool names from the given
// list.
func ValidateDisabledTools(names []string) []string {
	unknown := make([]string, 0)
	for _, name := range names {
		if _, ok := toolRegistry[name]; !ok {
			unknown = append(unknown, name)
		}
	}
	return unknown
}

// NewServer creates a new MCP server with Arcana tools registered.
// Tools listed in cfg.DisabledTools are excluded from registration.
func NewServer(h *Handlers, cfg *config.Config, version string) *server.MCPServer {
	s := server.NewMCPServer(
		"arcana",
		version,
		server.WithToolCapabilities(true),
	)

	for _, name := range ValidateDisabledTools(cfg.DisabledTools) {
		log.Printf("unknown tool in disabled_tools: %q", name)
	}

	disabled := make(map[string]bool)
	for _, name := range cfg.DisabledTools {
		disabled[name] = true
	}

	for name, entry := range toolRegistry {
		if disabled[name] {
			continue
		}
		s.AddTool(entry.def, entry.handler(h))
	}

	return s
}

// Run starts the MCP server using stdio transport.
func Run(database *sql.DB, cfg *config.Config, catalog *tarot.Catalog, monitor storage.Monitor, broker *notify.Broker, version string) error {
	h := NewHandlers(database, cfg, catalog, monitor, broker)
	s := NewServer(h, cfg, version)
	return server.ServeStdio(s)
}

func drawToolDef() mcp.Tool {
	return mcp.NewTool("tarot_draw",
		mcp.WithDescription("Draw one tarot card at random. Cards do not repeat until the whole deck has been seen this session. The draw is saved to history."),
	)
}

func historyToolDef() mcp.Tool {
	return mcp.NewTool("tarot_history",
		mcp.WithDescription("List past card pulls, newest first."),
		mcp.WithNumber("limit", mcp.Description("Maximum pulls to return (default 100)")),
	)
}

func pullToolDef() mcp.Tool {
	return mcp.NewTool("tarot_pull",
		mcp.WithDescription("Fetch one pull from history by ID."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Pull ID")),
	)
}

func setNoteToolDef() mcp.Tool {
	return mcp.NewTool("tarot_set_note",
		mcp.WithDescription("Attach a note to a pull. Text is sanitized and capped at 500 characters; blank text clears the note."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Pull ID")),
		mcp.WithString("text", mcp.Required(), mcp.Description("Note text")),
	)
}

func clearNoteToolDef() mcp.Tool {
	return mcp.NewTool("tarot_clear_note",
		mcp.WithDescription("Remove the note from a pull."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Pull ID")),
	)
}

func deleteToolDef() mcp.Tool {
	return mcp.NewTool("tarot_delete",
		mcp.WithDescription("Delete one pull from history."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Pull ID")),
	)
}

func clearHistoryToolDef() mcp.Tool {
	return mcp.NewTool("tarot_clear_history",
		mcp.WithDescription("Delete the entire pull history."),
		mcp.WithBoolean("confirm", mcp.Required(), mcp.Description("Must be true to delete everything")),
	)
}

func pruneToolDef() mcp.Tool {
	return mcp.NewTool("tarot_prune",
		mcp.WithDescription("Delete the oldest pulls to free space."),
		mcp.WithNumber("count", mcp.Description("How many of the oldest pulls to remove (default 50)")),
	)
}

func cardToolDef() mcp.Tool {
	return mcp.NewTool("tarot_card",
		mcp.WithDescription("Look up one card in the deck by ID, with meanings and keywords."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Card ID, e.g. major-00 or cups-03")),
	)
}

func cardsToolDef() mcp.Tool {
	return mcp.NewTool("tarot_cards",
		mcp.WithDescription("List the cards in the deck, optionally filtered by suit."),
		mcp.WithString("suit", mcp.Description("One of: major, swords, wands, pentacles, cups")),
	)
}

func storageToolDef() mcp.Tool {
	return mcp.NewTool("tarot_storage",
		mcp.WithDescription("Report storage capacity and whether pruning history is suggested."),
	)
}
