package mcp

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/seleny/arcana/internal/config"
	"github.com/seleny/arcana/internal/errors"
	"github.com/seleny/arcana/internal/notify"
	"github.com/seleny/arcana/internal/ops"
	"github.com/seleny/arcana/internal/storage"
	"github.com/seleny/arcana/internal/tarot"
)

// Handlers holds dependencies for MCP tool handlers. The drawer, and with it
// the session exclusion set, lives as long as the server process.
type Handlers struct {
	db      *sql.DB
	cfg     *config.Config
	catalog *tarot.Catalog
	monitor storage.Monitor
	broker  *notify.Broker
	drawer  *ops.Drawer
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(database *sql.DB, cfg *config.Config, catalog *tarot.Catalog, monitor storage.Monitor, broker *notify.Broker) *Handlers {
	return &Handlers{
		db:      database,
		cfg:     cfg,
		catalog: catalog,
		monitor: monitor,
		broker:  broker,
		drawer:  ops.NewDrawer(database, catalog, monitor, broker),
	}
}

// Request types for each tool

// HistoryRequest represents the arguments for tarot_history.
type HistoryRequest struct {
	Limit int `json:"limit,omitempty"`
}

// PullRequest represents the arguments for tarot_pull and tarot_delete.
type PullRequest struct {
	ID string `json:"id"`
}

// SetNoteRequest represents the arguments for tarot_set_note.
type SetNoteRequest struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// ClearHistoryRequest represents the arguments for tarot_clear_history.
type ClearHistoryRequest struct {
	Confirm bool `json:"confirm"`
}

// PruneRequest represents the arguments for tarot_prune.
type PruneRequest struct {
	Count int `json:"count,omitempty"`
}

// CardRequest represents the arguments for tarot_card.
type CardRequest struct {
	ID string `json:"id"`
}

// CardsRequest represents the arguments for tarot_cards.
type CardsRequest struct {
	Suit string `json:"suit,omitempty"`
}

// Handler implementations

// HandleDraw handles the tarot_draw tool call.
func (h *Handlers) HandleDraw(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := h.drawer.Draw()
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleHistory handles the tarot_history tool call.
func (h *Handlers) HandleHistory(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[HistoryRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.ListHistory(h.db, h.cfg, ops.ListHistoryInput{Limit: input.Limit})
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandlePull handles the tarot_pull tool call.
func (h *Handlers) HandlePull(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[PullRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.GetPull(h.db, input.ID)
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleSetNote handles the tarot_set_note tool call.
func (h *Handlers) HandleSetNote(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[SetNoteRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.SetNote(h.db, h.broker, ops.SetNoteInput{ID: input.ID, Text: input.Text})
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleClearNote handles the tarot_clear_note tool call.
func (h *Handlers) HandleClearNote(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[PullRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.ClearNote(h.db, h.broker, input.ID)
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleDelete handles the tarot_delete tool call.
func (h *Handlers) HandleDelete(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[PullRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Delete(h.db, h.broker, ops.DeleteInput{ID: input.ID})
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleClearHistory handles the tarot_clear_history tool call.
func (h *Handlers) HandleClearHistory(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ClearHistoryRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}
	if !input.Confirm {
		return errorResult(errors.NewInvalidRequest("confirm must be true to delete all history")), nil
	}

	result, err := ops.DeleteAll(h.db, h.broker)
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandlePrune handles the tarot_prune tool call.
func (h *Handlers) HandlePrune(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[PruneRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Prune(h.db, h.broker, h.cfg, ops.PruneInput{Count: input.Count})
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleCard handles the tarot_card tool call.
func (h *Handlers) HandleCard(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[CardRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	card, ok := h.catalog.CardByID(input.ID)
	if !ok {
		return errorResult(errors.NewNotFound(input.ID)), nil
	}
	return successResult(card)
}

// HandleCards handles the tarot_cards tool call.
func (h *Handlers) HandleCards(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[CardsRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	var cards []tarot.Card
	if input.Suit != "" {
		suit, ok := tarot.ParseSuit(input.Suit)
		if !ok {
			return errorResult(errors.NewInvalidRequest("suit must be one of: major, swords, wands, pentacles, cups")), nil
		}
		cards = h.catalog.CardsOfSuit(suit)
	} else {
		cards = h.catalog.AllCards()
	}

	return successResult(map[string]any{
		"deck":  h.catalog.CurrentDeck().Name,
		"count": len(cards),
		"cards": cards,
	})
}

// HandleStorage handles the tarot_storage tool call.
func (h *Handlers) HandleStorage(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := ops.Status(h.db, h.cfg, h.monitor)
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// errorResult converts an error into a structured MCP error payload.
func errorResult(err error) *mcp.CallToolResult {
	var payload map[string]any

	if aErr, ok := err.(*errors.ArcanaError); ok {
		errorObj := map[string]any{
			"code":    aErr.Code,
			"message": aErr.Message,
			"status":  aErr.Status,
		}
		// Only include details for non-internal errors to avoid leaking
		// file paths or SQL errors
		if aErr.Code != errors.ErrInternal && aErr.Details != nil {
			errorObj["details"] = aErr.Details
		}
		payload = map[string]any{"error": errorObj}
	} else {
		payload = map[string]any{
			"error": map[string]any{
				"code":    "INTERNAL",
				"message": "an internal error occurred",
				"status":  500,
			},
		}
	}

	content, _ := json.Marshal(payload)
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.TextContent{Type: "text", Text: string(content)}},
		IsError: true,
	}
}

// successResult wraps data as a JSON tool result.
func successResult(data any) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultJSON(data)
}
