// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes the Roll'n'Connect registries as tools for LLM
// integration via stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/rollnconnect/rollconnect/internal/community"
	"github.com/rollnconnect/rollconnect/internal/models"
)

// Server wraps the MCP server with Roll'n'Connect tools.
type Server struct {
	mcp *server.MCPServer
	svc *community.Service
}

// New creates a new MCP server with all tools registered.
func New(svc *community.Service) *Server {
	s := &Server{svc: svc}

	s.mcp = server.NewMCPServer(
		"RollnConnect",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("list_events",
		mcp.WithDescription("List all community skate events."),
	), s.listEvents)

	s.mcp.AddTool(mcp.NewTool("create_event",
		mcp.WithDescription("Create a new community event. Title and date (YYYY-MM-DD) are required; "+
			"time is HH:MM when given. The event lands on the shared calendar and the creator joins it."),
		mcp.WithString("title", mcp.Required(), mcp.Description("Event title")),
		mcp.WithString("date", mcp.Required(), mcp.Description("Event date, YYYY-MM-DD")),
		mcp.WithString("time", mcp.Description("Start time, HH:MM")),
		mcp.WithString("location", mcp.Description("Where the event happens")),
		mcp.WithString("description", mcp.Description("Free-text description")),
	), s.createEvent)

	s.mcp.AddTool(mcp.NewTool("join_event",
		mcp.WithDescription("Join an event by id. Joining again is harmless but adds another calendar entry."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Event id, e.g. event-1")),
	), s.joinEvent)

	s.mcp.AddTool(mcp.NewTool("list_spots",
		mcp.WithDescription("List skate spots, optionally filtered by a comma-separated category list. "+
			"See the rollconnect://categories resource or the get_category_legend tool for valid categories."),
		mcp.WithString("category", mcp.Description("Comma-separated category filter (empty for all)")),
	), s.listSpots)

	s.mcp.AddTool(mcp.NewTool("save_spot",
		mcp.WithDescription("Add a spot id to the saved-spots set. Saving twice is a no-op."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Spot id, e.g. spot-1")),
	), s.saveSpot)

	s.mcp.AddTool(mcp.NewTool("log_session",
		mcp.WithDescription("Log a skate session at a spot; it shows up on the calendar under the given date."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Spot id")),
		mcp.WithString("date", mcp.Required(), mcp.Description("Session date, YYYY-MM-DD")),
		mcp.WithString("time", mcp.Required(), mcp.Description("Session time, HH:MM")),
		mcp.WithString("note", mcp.Description("Optional note")),
	), s.logSession)

	s.mcp.AddTool(mcp.NewTool("search",
		mcp.WithDescription("Full-text search across spots and events."),
		mcp.WithString("query", mcp.Required(), mcp.Description("Search query string")),
	), s.search)

	s.mcp.AddTool(mcp.NewTool("get_calendar_day",
		mcp.WithDescription("List the calendar items filed under one date."),
		mcp.WithString("date", mcp.Required(), mcp.Description("Date, YYYY-MM-DD")),
	), s.getCalendarDay)

	s.mcp.AddTool(mcp.NewTool("get_profile",
		mcp.WithDescription("Get the profile with its post/joined/saved counters."),
	), s.getProfile)

	s.mcp.AddTool(mcp.NewTool("get_category_legend",
		mcp.WithDescription("Returns the spot category legend: machine names and display labels."),
	), s.getCategoryLegend)

	// Resource: spot category legend.
	s.mcp.AddResource(
		mcp.NewResource("rollconnect://categories", "Spot Category Legend",
			mcp.WithResourceDescription("Valid spot categories and their display labels."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readCategoryResource,
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

func (s *Server) listEvents(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	out, _ := json.MarshalIndent(s.svc.ListEvents(), "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) createEvent(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	title, err := req.RequireString("title")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	date, err := req.RequireString("date")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	in := community.CreateEventInput{Title: title, Date: date}
	if v, err := req.RequireString("time"); err == nil {
		in.Time = v
	}
	if v, err := req.RequireString("location"); err == nil {
		in.Location = v
	}
	if v, err := req.RequireString("description"); err == nil {
		in.Description = v
	}
	event, err := s.svc.CreateEvent(in)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("created: %s", event.ID)), nil
}

func (s *Server) joinEvent(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	event, err := s.svc.JoinEvent(id)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("not found: %s", id)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("joined: %s (%s on %s)", event.ID, event.Title, event.Date)), nil
}

func (s *Server) listSpots(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	category := ""
	if v, err := req.RequireString("category"); err == nil {
		category = v
	}
	out, _ := json.MarshalIndent(s.svc.ListSpots(models.ParseCategorySet(category)), "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) saveSpot(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := s.svc.SaveSpot(id); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("saved: %s", id)), nil
}

func (s *Server) logSession(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	date, err := req.RequireString("date")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	at, err := req.RequireString("time")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	in := community.LogSessionInput{SpotID: id, Date: date, Time: at}
	if v, err := req.RequireString("note"); err == nil {
		in.Note = v
	}
	item, err := s.svc.LogSession(in)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("logged: %s", item.RefID)), nil
}

func (s *Server) search(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	results, err := s.svc.Search(query, 20)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(results, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) getCalendarDay(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	date, err := req.RequireString("date")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(s.svc.CalendarDay(date), "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) getProfile(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	out, _ := json.MarshalIndent(map[string]any{
		"profile": s.svc.Profile(),
		"counts":  s.svc.Counts(),
	}, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) getCategoryLegend(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(CategoryLegend), nil
}

func (s *Server) readCategoryResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      "rollconnect://categories",
			MIMEType: "text/markdown",
			Text:     CategoryLegend,
		},
	}, nil
}
