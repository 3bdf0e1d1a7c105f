package mcpserver

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/starford/raido/internal/composer"
	"github.com/starford/raido/internal/testutil"
)

func testServer(t *testing.T) *Server {
	t.Helper()

	db := testutil.TestDB(t)
	clock := testutil.FixedClock{T: time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)}
	registry := composer.NewRegistry(&testutil.SeqGen{}, clock, db)
	return New(registry, db)
}

func callTool(t *testing.T, srv *Server, name string, args map[string]interface{}) *mcp.CallToolResult {
	t.Helper()
	ctx := context.Background()
	req := mcp.CallToolRequest{}
	req.Method = "tools/call"
	req.Params.Name = name
	req.Params.Arguments = args

	// mcp-go doesn't expose a direct "call tool" test helper, so we
	// call the handler functions directly.
	var result *mcp.CallToolResult
	var err error

	switch name {
	case "create_draft":
		result, err = srv.createDraft(ctx, req)
	case "set_journey_details":
		result, err = srv.setJourneyDetails(ctx, req)
	case "add_stage":
		result, err = srv.addStage(ctx, req)
	case "rename_stage":
		result, err = srv.renameStage(ctx, req)
	case "save_touchpoint":
		result, err = srv.saveTouchpoint(ctx, req)
	case "preview_journey":
		result, err = srv.previewJourney(ctx, req)
	case "save_journey":
		result, err = srv.saveJourney(ctx, req)
	case "list_journeys":
		result, err = srv.listJourneys(ctx, req)
	case "get_journey_contract":
		result, err = srv.getJourneyContract(ctx, req)
	default:
		t.Fatalf("unknown tool: %s", name)
	}

	if err != nil {
		t.Fatalf("tool %s error: %v", name, err)
	}
	return result
}

func resultText(r *mcp.CallToolResult) string {
	if len(r.Content) > 0 {
		if tc, ok := r.Content[0].(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

func createTestDraft(t *testing.T, srv *Server) string {
	t.Helper()
	r := callTool(t, srv, "create_draft", map[string]interface{}{})
	var out struct {
		DraftID string `json:"draftId"`
	}
	if err := json.Unmarshal([]byte(resultText(r)), &out); err != nil {
		t.Fatalf("create_draft output: %v", err)
	}
	return out.DraftID
}

func TestCreateDraftTool(t *testing.T) {
	srv := testServer(t)
	r := callTool(t, srv, "create_draft", map[string]interface{}{})
	text := resultText(r)
	if !strings.Contains(text, "Awareness") {
		t.Errorf("seeded draft missing Awareness stage: %s", text)
	}
}

func TestComposeAndSaveViaTools(t *testing.T) {
	srv := testServer(t)
	id := createTestDraft(t, srv)

	callTool(t, srv, "set_journey_details", map[string]interface{}{
		"draft_id":    id,
		"name":        "Onboarding Flow",
		"state":       "current",
		"persona_ids": "p1, p2",
	})

	r := callTool(t, srv, "add_stage", map[string]interface{}{"draft_id": id})
	var stage struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	_ = json.Unmarshal([]byte(resultText(r)), &stage)
	if stage.Name != "Stage 2" {
		t.Errorf("stage name = %q", stage.Name)
	}

	r = callTool(t, srv, "save_touchpoint", map[string]interface{}{
		"draft_id": id,
		"stage_id": stage.ID,
		"name":     "Demo call",
		"emotion":  "positive",
	})
	if r.IsError {
		t.Fatalf("save_touchpoint failed: %s", resultText(r))
	}

	r = callTool(t, srv, "preview_journey", map[string]interface{}{"draft_id": id})
	if !strings.Contains(resultText(r), "(+) Demo call") {
		t.Errorf("preview missing touchpoint:\n%s", resultText(r))
	}

	r = callTool(t, srv, "save_journey", map[string]interface{}{"draft_id": id})
	if r.IsError {
		t.Fatalf("save_journey failed: %s", resultText(r))
	}
	if !strings.Contains(resultText(r), `"status": "draft"`) {
		t.Errorf("saved journey missing draft status: %s", resultText(r))
	}

	r = callTool(t, srv, "list_journeys", map[string]interface{}{})
	if !strings.Contains(resultText(r), "Onboarding Flow") {
		t.Errorf("list missing saved journey: %s", resultText(r))
	}
}

func TestSaveJourneyEmptyName(t *testing.T) {
	srv := testServer(t)
	id := createTestDraft(t, srv)

	r := callTool(t, srv, "save_journey", map[string]interface{}{"draft_id": id})
	if !r.IsError {
		t.Error("expected error for empty journey name")
	}
}

func TestSetDetailsInvalidState(t *testing.T) {
	srv := testServer(t)
	id := createTestDraft(t, srv)

	r := callTool(t, srv, "set_journey_details", map[string]interface{}{
		"draft_id": id,
		"state":    "imaginary",
	})
	if !r.IsError {
		t.Error("expected error for invalid state")
	}
}

func TestUnknownDraftID(t *testing.T) {
	srv := testServer(t)
	r := callTool(t, srv, "add_stage", map[string]interface{}{"draft_id": "nope"})
	if !r.IsError {
		t.Error("expected error for unknown draft")
	}
}

func TestGetJourneyContract(t *testing.T) {
	srv := testServer(t)
	r := callTool(t, srv, "get_journey_contract", map[string]interface{}{})
	text := resultText(r)
	if !strings.Contains(text, "Journey Format Contract") {
		t.Errorf("contract missing header: %s", text[:80])
	}
}
