// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes Raido journey-composing tools for LLM integration via
// stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/starford/raido/internal/composer"
	"github.com/starford/raido/internal/draft"
	"github.com/starford/raido/internal/journeydb"
	"github.com/starford/raido/internal/models"
	"github.com/starford/raido/internal/preview"
)

// Server wraps the MCP server with Raido tools.
type Server struct {
	mcp      *server.MCPServer
	registry *composer.Registry
	store    journeydb.Store
}

// New creates a new MCP server with all Raido tools registered.
func New(registry *composer.Registry, store journeydb.Store) *Server {
	s := &Server{registry: registry, store: store}

	s.mcp = server.NewMCPServer(
		"Raido",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("create_draft",
		mcp.WithDescription("Open a new journey authoring session. The draft starts with "+
			"one 'Awareness' stage containing an 'Initial Contact' touchpoint. "+
			"Read the journey format first via the get_journey_contract tool or the "+
			"raido://journey-format resource."),
	), s.createDraft)

	s.mcp.AddTool(mcp.NewTool("set_journey_details",
		mcp.WithDescription("Set scalar fields of a draft journey. Omitted fields are left unchanged."),
		mcp.WithString("draft_id", mcp.Required(), mcp.Description("Draft session identifier")),
		mcp.WithString("name", mcp.Description("Journey name (required before saving)")),
		mcp.WithString("description", mcp.Description("Free-text description")),
		mcp.WithString("state", mcp.Description("Journey state: draft, current, or future")),
		mcp.WithString("cover_image", mcp.Description("Cover image URL (from the covers upload endpoint)")),
		mcp.WithString("persona_ids", mcp.Description("Comma-separated persona identifiers")),
	), s.setJourneyDetails)

	s.mcp.AddTool(mcp.NewTool("add_stage",
		mcp.WithDescription("Append a new empty stage to the draft, named 'Stage N'."),
		mcp.WithString("draft_id", mcp.Required(), mcp.Description("Draft session identifier")),
	), s.addStage)

	s.mcp.AddTool(mcp.NewTool("rename_stage",
		mcp.WithDescription("Rename a stage in the draft. Unknown stage ids are ignored."),
		mcp.WithString("draft_id", mcp.Required(), mcp.Description("Draft session identifier")),
		mcp.WithString("stage_id", mcp.Required(), mcp.Description("Stage identifier")),
		mcp.WithString("name", mcp.Required(), mcp.Description("New stage name")),
	), s.renameStage)

	s.mcp.AddTool(mcp.NewTool("save_touchpoint",
		mcp.WithDescription("Create or edit a touchpoint in a stage. Pass touchpoint_id to edit "+
			"an existing touchpoint in place; omit it to append a new one."),
		mcp.WithString("draft_id", mcp.Required(), mcp.Description("Draft session identifier")),
		mcp.WithString("stage_id", mcp.Required(), mcp.Description("Target stage identifier")),
		mcp.WithString("name", mcp.Required(), mcp.Description("Touchpoint name")),
		mcp.WithString("description", mcp.Description("Touchpoint description")),
		mcp.WithString("emotion", mcp.Description("Emotional valence: positive, neutral, or negative")),
		mcp.WithString("touchpoint_id", mcp.Description("Existing touchpoint id (edit mode)")),
	), s.saveTouchpoint)

	s.mcp.AddTool(mcp.NewTool("preview_journey",
		mcp.WithDescription("Render a read-only Markdown preview of the current draft."),
		mcp.WithString("draft_id", mcp.Required(), mcp.Description("Draft session identifier")),
	), s.previewJourney)

	s.mcp.AddTool(mcp.NewTool("save_journey",
		mcp.WithDescription("Finalize the draft and persist it as a journey. Fails if the "+
			"journey name is empty; the draft stays editable and the save can be retried."),
		mcp.WithString("draft_id", mcp.Required(), mcp.Description("Draft session identifier")),
	), s.saveJourney)

	s.mcp.AddTool(mcp.NewTool("list_journeys",
		mcp.WithDescription("List persisted journeys, newest first."),
	), s.listJourneys)

	s.mcp.AddTool(mcp.NewTool("get_journey_contract",
		mcp.WithDescription("Returns the journey document format contract. "+
			"Call this before composing journeys to understand the structure."),
	), s.getJourneyContract)

	// Resource: journey format contract.
	s.mcp.AddResource(
		mcp.NewResource("raido://journey-format", "Journey Format Contract",
			mcp.WithResourceDescription("Structure and rules of the journey document model."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readJourneyFormatResource,
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func (s *Server) session(req mcp.CallToolRequest) (*composer.Composer, *mcp.CallToolResult) {
	id, err := req.RequireString("draft_id")
	if err != nil {
		return nil, mcp.NewToolResultError(err.Error())
	}
	c, err := s.registry.Get(id)
	if err != nil {
		return nil, mcp.NewToolResultError(fmt.Sprintf("draft not found: %s", id))
	}
	return c, nil
}

func (s *Server) createDraft(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	c := s.registry.Create()
	out, _ := json.MarshalIndent(map[string]any{
		"draftId": c.ID(),
		"draft":   c.Draft(),
	}, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) setJourneyDetails(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	c, errRes := s.session(req)
	if errRes != nil {
		return errRes, nil
	}

	var details composer.Details
	if v, err := req.RequireString("name"); err == nil {
		details.Name = &v
	}
	if v, err := req.RequireString("description"); err == nil {
		details.Description = &v
	}
	if v, err := req.RequireString("state"); err == nil {
		switch v {
		case models.StateDraft, models.StateCurrent, models.StateFuture:
			details.State = &v
		default:
			return mcp.NewToolResultError(fmt.Sprintf("invalid state: %s", v)), nil
		}
	}
	if v, err := req.RequireString("cover_image"); err == nil {
		details.CoverImage = &v
	}
	if v, err := req.RequireString("persona_ids"); err == nil {
		ids := []string{}
		for _, p := range strings.Split(v, ",") {
			if p = strings.TrimSpace(p); p != "" {
				ids = append(ids, p)
			}
		}
		details.PersonaIDs = &ids
	}

	c.SetDetails(details)
	out, _ := json.MarshalIndent(c.Draft(), "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) addStage(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	c, errRes := s.session(req)
	if errRes != nil {
		return errRes, nil
	}
	stage := c.AddStage()
	out, _ := json.MarshalIndent(stage, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) renameStage(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	c, errRes := s.session(req)
	if errRes != nil {
		return errRes, nil
	}
	stageID, err := req.RequireString("stage_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	name, err := req.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	c.RenameStage(stageID, name)
	return mcp.NewToolResultText(fmt.Sprintf("renamed stage %s", stageID)), nil
}

func (s *Server) saveTouchpoint(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	c, errRes := s.session(req)
	if errRes != nil {
		return errRes, nil
	}
	stageID, err := req.RequireString("stage_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	name, err := req.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	fields := draft.Fields{Name: name}
	if v, err := req.RequireString("description"); err == nil {
		fields.Description = v
	}
	if v, err := req.RequireString("emotion"); err == nil {
		fields.Emotion = v
	}
	touchpointID := ""
	if v, err := req.RequireString("touchpoint_id"); err == nil {
		touchpointID = v
	}

	if err := c.OpenEditor(stageID, touchpointID); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	tp, err := c.ConfirmEditor(fields)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(tp, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) previewJourney(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	c, errRes := s.session(req)
	if errRes != nil {
		return errRes, nil
	}
	d := c.Draft()
	return mcp.NewToolResultText(preview.Render(d.Stages, d.PersonaIDs, d.State, d.CoverImage)), nil
}

func (s *Server) saveJourney(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	c, errRes := s.session(req)
	if errRes != nil {
		return errRes, nil
	}
	j, err := c.Save(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(j, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) listJourneys(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	items, total, err := s.store.ListJourneys(ctx, 50, 0)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(map[string]any{
		"journeys": items,
		"total":    total,
	}, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) getJourneyContract(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(JourneyFormatContract), nil
}

func (s *Server) readJourneyFormatResource(_ context.Context, _ mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      "raido://journey-format",
			MIMEType: "text/markdown",
			Text:     JourneyFormatContract,
		},
	}, nil
}
