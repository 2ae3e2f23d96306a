package mcpserver

import (
	"context"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/rollnconnect/rollconnect/internal/testutil"
)

func testServer(t *testing.T) *Server {
	t.Helper()
	return New(testutil.TestService(t))
}

func callTool(t *testing.T, srv *Server, name string, args map[string]interface{}) *mcp.CallToolResult {
	t.Helper()
	ctx := context.Background()
	req := mcp.CallToolRequest{}
	req.Method = "tools/call"
	req.Params.Name = name
	req.Params.Arguments = args

	// mcp-go doesn't expose a direct "call tool" test helper, so we
	// invoke the handler functions directly.
	var result *mcp.CallToolResult
	var err error

	switch name {
	case "list_events":
		result, err = srv.listEvents(ctx, req)
	case "create_event":
		result, err = srv.createEvent(ctx, req)
	case "join_event":
		result, err = srv.joinEvent(ctx, req)
	case "list_spots":
		result, err = srv.listSpots(ctx, req)
	case "save_spot":
		result, err = srv.saveSpot(ctx, req)
	case "log_session":
		result, err = srv.logSession(ctx, req)
	case "get_calendar_day":
		result, err = srv.getCalendarDay(ctx, req)
	case "get_profile":
		result, err = srv.getProfile(ctx, req)
	case "get_category_legend":
		result, err = srv.getCategoryLegend(ctx, req)
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

func TestListEventsTool(t *testing.T) {
	srv := testServer(t)
	r := callTool(t, srv, "list_events", map[string]interface{}{})
	if !strings.Contains(resultText(r), "Night Skate at City Rink") {
		t.Errorf("seed event missing from listing: %q", resultText(r))
	}
}

func TestCreateAndJoinEventTools(t *testing.T) {
	srv := testServer(t)

	r := callTool(t, srv, "create_event", map[string]interface{}{
		"title": "Marathon Prep",
		"date":  "2026-04-01",
		"time":  "09:00",
	})
	text := resultText(r)
	if !strings.HasPrefix(text, "created: event-") {
		t.Fatalf("create result = %q", text)
	}
	id := strings.TrimPrefix(text, "created: ")

	r = callTool(t, srv, "join_event", map[string]interface{}{"id": id})
	if r.IsError {
		t.Errorf("join failed: %q", resultText(r))
	}

	r = callTool(t, srv, "join_event", map[string]interface{}{"id": "event-nope"})
	if !r.IsError {
		t.Error("expected error for unknown event")
	}
}

func TestCreateEventToolRejectsInvalid(t *testing.T) {
	srv := testServer(t)
	r := callTool(t, srv, "create_event", map[string]interface{}{
		"title": "Bad Date",
		"date":  "tomorrow",
	})
	if !r.IsError {
		t.Error("expected error for malformed date")
	}
}

func TestListSpotsToolFilter(t *testing.T) {
	srv := testServer(t)

	r := callTool(t, srv, "list_spots", map[string]interface{}{"category": "skating_rink"})
	text := resultText(r)
	if !strings.Contains(text, "City Rink") || strings.Contains(text, "Canal Trail") {
		t.Errorf("filter not applied: %q", text)
	}
}

func TestSaveSpotAndLogSessionTools(t *testing.T) {
	srv := testServer(t)

	r := callTool(t, srv, "save_spot", map[string]interface{}{"id": "spot-2"})
	if resultText(r) != "saved: spot-2" {
		t.Errorf("save result = %q", resultText(r))
	}

	r = callTool(t, srv, "log_session", map[string]interface{}{
		"id":   "spot-1",
		"date": "2026-03-01",
		"time": "18:00",
	})
	if resultText(r) != "logged: spot-1-2026-03-01-18:00" {
		t.Errorf("session result = %q", resultText(r))
	}

	r = callTool(t, srv, "get_calendar_day", map[string]interface{}{"date": "2026-03-01"})
	if !strings.Contains(resultText(r), "spot-1-2026-03-01-18:00") {
		t.Errorf("session missing from calendar day: %q", resultText(r))
	}
}

func TestGetProfileTool(t *testing.T) {
	srv := testServer(t)
	r := callTool(t, srv, "get_profile", map[string]interface{}{})
	if !strings.Contains(resultText(r), "@username") {
		t.Errorf("profile missing: %q", resultText(r))
	}
}

func TestCategoryLegendTool(t *testing.T) {
	srv := testServer(t)
	r := callTool(t, srv, "get_category_legend", map[string]interface{}{})
	if !strings.Contains(resultText(r), "skating_rink") {
		t.Errorf("legend missing categories: %q", resultText(r))
	}
}
