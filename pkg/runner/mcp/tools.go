package mcp

import (
	"context"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"tableflip.dev/timebox/pkg/timeutil"
)

func registerTools(srv *server.MCPServer, svc *Service) {
	registerAddNoteTool(srv, svc)
	registerIDTool(srv, "delete_note", "Delete an unscheduled note.", svc.DeleteNote)
	registerScheduleTool(srv, svc)
	registerMoveTool(srv, svc)
	registerIDTool(srv, "unschedule", "Return a scheduled task to the notes list.", svc.Unschedule)
	registerIDTool(srv, "complete", "Mark a task as completed.", svc.Complete)
	registerToggleTagTool(srv, svc)
	registerSetPriorityTool(srv, svc)
	registerShowDayTool(srv, svc)
	registerStatsTool(srv, svc)
	registerOpenDateTool(srv, svc)
	registerSaveTool(srv, svc)
	registerReportTool(srv, svc)
	registerCarryoverTool(srv, svc)
}

func registerAddNoteTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"add_note",
		mcp.WithDescription("Add an unscheduled task to the open day."),
		mcp.WithString("content",
			mcp.Required(),
			mcp.Description("Text of the task."),
		),
		mcp.WithArray("tags",
			mcp.Description("Tag ids or names to apply, see the timebox://tags resource."),
			mcp.Items(map[string]any{"type": "string"}),
		),
		mcp.WithString("duration",
			mcp.Description("Optional estimate such as 45, 30m or 1h30m."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			Content  string   `json:"content"`
			Tags     []string `json:"tags"`
			Duration string   `json:"duration"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		minutes := 0
		if args.Duration != "" {
			m, err := timeutil.ParseMinutes(args.Duration)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			minutes = m
		}
		dto, err := svc.AddNote(ctx, args.Content, args.Tags, minutes)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

// registerIDTool registers a tool that takes a single task id.
func registerIDTool(srv *server.MCPServer, name, description string, fn func(context.Context, string) (*TaskDTO, error)) {
	tool := mcp.NewTool(
		name,
		mcp.WithDescription(description),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Task identifier."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		dto, err := fn(ctx, id)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerScheduleTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"schedule",
		mcp.WithDescription("Place a task into a half-hour slot. A scheduled task moves to the new slot."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Task identifier."),
		),
		mcp.WithString("time",
			mcp.Required(),
			mcp.Description("Slot start between 00:00 and 23:30, on the hour or half hour."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		at, err := request.RequireString("time")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		dto, err := svc.Schedule(ctx, id, at)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerMoveTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"move",
		mcp.WithDescription("Move a scheduled task from one slot to another."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Task identifier.")),
		mcp.WithString("from", mcp.Required(), mcp.Description("Slot the task is in now.")),
		mcp.WithString("to", mcp.Required(), mcp.Description("Destination slot.")),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		from, err := request.RequireString("from")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		to, err := request.RequireString("to")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		dto, err := svc.Move(ctx, id, from, to)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerToggleTagTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"toggle_tag",
		mcp.WithDescription("Add a tag to a task, or remove it when already present."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Task identifier.")),
		mcp.WithString("tag", mcp.Required(), mcp.Description("Tag id or name.")),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		ref, err := request.RequireString("tag")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		dto, err := svc.ToggleTag(ctx, id, ref)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerSetPriorityTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"set_priority",
		mcp.WithDescription("Set one of the day's three priorities. Empty text clears it."),
		mcp.WithNumber("n",
			mcp.Required(),
			mcp.Description("Priority number, 1 to 3."),
		),
		mcp.WithString("text",
			mcp.Description("Priority text."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		n, err := request.RequireInt("n")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		priorities, err := svc.SetPriority(ctx, n, request.GetString("text", ""))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{"priorities": priorities})
	})
}

func registerShowDayTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"show_day",
		mcp.WithDescription("Show the open day: priorities, notes and occupied slots."),
		mcp.WithArray("tags",
			mcp.Description("Only show tasks carrying any of these tags."),
			mcp.Items(map[string]any{"type": "string"}),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			Tags []string `json:"tags"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		day, err := svc.Day(args.Tags...)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(day)
	})
}

func registerStatsTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"stats",
		mcp.WithDescription("Task counts and minutes per tag for the open day."),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return toJSONResult(svc.Stats())
	})
}

func registerOpenDateTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"open_date",
		mcp.WithDescription("Switch to another day."),
		mcp.WithString("date",
			mcp.Required(),
			mcp.Description("Day to open as YYYY-MM-DD."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		date, err := request.RequireString("date")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		day, err := svc.OpenDate(ctx, date)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(day)
	})
}

func registerSaveTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"save",
		mcp.WithDescription("Write the open day to storage."),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		day, err := svc.Save(ctx)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(day)
	})
}

func registerReportTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"report",
		mcp.WithDescription("Completed tasks and per-tag totals over a recent window."),
		mcp.WithString("last",
			mcp.Description("Window such as 3d or 1w2d. Defaults to one week."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		window, _, err := timeutil.ParseWindow(request.GetString("last", timeutil.DefaultWindow))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		until := time.Now()
		result, err := svc.Report(ctx, until.Add(-window), until)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(result)
	})
}

func registerCarryoverTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"carryover",
		mcp.WithDescription("Copy unfinished tasks from an earlier day into the open day's notes."),
		mcp.WithString("from",
			mcp.Required(),
			mcp.Description("Source day as YYYY-MM-DD."),
		),
		mcp.WithArray("ids",
			mcp.Description("Only these task ids. All unfinished tasks when empty."),
			mcp.Items(map[string]any{"type": "string"}),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			From string   `json:"from"`
			IDs  []string `json:"ids"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		copied, err := svc.Carryover(ctx, args.From, args.IDs...)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"from":   args.From,
			"copied": copied,
			"count":  len(copied),
		})
	})
}

func toJSONResult(data any) (*mcp.CallToolResult, error) {
	result, err := mcp.NewToolResultJSON(data)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshal error: %v", err)), nil
	}
	return result, nil
}
