package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"tableflip.dev/gantt/pkg/chart"
)

func registerTools(srv *server.MCPServer, svc *Service) {
	registerListTasksTool(srv, svc)
	registerAddTaskTool(srv, svc)
	registerUpdateTaskTool(srv, svc)
	registerDeleteTaskTool(srv, svc)
	registerGetLayoutTool(srv, svc)
}

func projectParam() mcp.ToolOption {
	return mcp.WithString("project",
		mcp.Required(),
		mcp.Description("Name of the stored project."),
	)
}

func registerListTasksTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"list_tasks",
		mcp.WithDescription("List the tasks of a project ordered by start date."),
		projectParam(),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		name, err := request.RequireString("project")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		tasks, err := svc.ListTasks(ctx, name)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"project": name,
			"tasks":   tasks,
			"count":   len(tasks),
		})
	})
}

func registerAddTaskTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"add_task",
		mcp.WithDescription("Add a task to a project. The end date is inclusive."),
		projectParam(),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Task name."),
		),
		mcp.WithString("start",
			mcp.Required(),
			mcp.Description("Start date as YYYY-MM-DD."),
		),
		mcp.WithString("end",
			mcp.Required(),
			mcp.Description("End date as YYYY-MM-DD."),
		),
		mcp.WithNumber("progress",
			mcp.Description("Completion percentage (0-100)."),
			mcp.Min(0),
			mcp.Max(100),
		),
		mcp.WithString("category",
			mcp.Description("Category id; defaults to the project's first category."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			Project  string `json:"project"`
			Name     string `json:"name"`
			Start    string `json:"start"`
			End      string `json:"end"`
			Progress int    `json:"progress"`
			Category string `json:"category"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}

		dto, err := svc.AddTask(ctx, AddTaskOptions{
			Project:  args.Project,
			Name:     args.Name,
			Start:    args.Start,
			End:      args.End,
			Progress: args.Progress,
			Category: args.Category,
		})
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerUpdateTaskTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"update_task",
		mcp.WithDescription("Change fields of an existing task. Omitted fields are kept."),
		projectParam(),
		mcp.WithNumber("id",
			mcp.Required(),
			mcp.Description("Task identifier."),
		),
		mcp.WithString("name", mcp.Description("New task name.")),
		mcp.WithString("start", mcp.Description("New start date as YYYY-MM-DD.")),
		mcp.WithString("end", mcp.Description("New end date as YYYY-MM-DD.")),
		mcp.WithNumber("progress",
			mcp.Description("New completion percentage (0-100)."),
			mcp.Min(0),
			mcp.Max(100),
		),
		mcp.WithString("category", mcp.Description("New category id.")),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			Project  string  `json:"project"`
			ID       int     `json:"id"`
			Name     *string `json:"name"`
			Start    *string `json:"start"`
			End      *string `json:"end"`
			Progress *int    `json:"progress"`
			Category *string `json:"category"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}

		dto, err := svc.UpdateTask(ctx, UpdateTaskOptions{
			Project:  args.Project,
			ID:       args.ID,
			Name:     args.Name,
			Start:    args.Start,
			End:      args.End,
			Progress: args.Progress,
			Category: args.Category,
		})
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerDeleteTaskTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"delete_task",
		mcp.WithDescription("Remove a task from a project."),
		projectParam(),
		mcp.WithNumber("id",
			mcp.Required(),
			mcp.Description("Task identifier to delete."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			Project string `json:"project"`
			ID      int    `json:"id"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		if err := svc.DeleteTask(ctx, args.Project, args.ID); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"project": args.Project,
			"deleted": args.ID,
		})
	})
}

func registerGetLayoutTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"get_layout",
		mcp.WithDescription("Compute the chart layout (visible range, columns, bar geometry) of a project."),
		projectParam(),
		mcp.WithString("view",
			mcp.Description("Time granularity of the chart."),
			mcp.Enum("day", "week", "month", "year"),
		),
		mcp.WithNumber("viewport",
			mcp.Description("Viewport width in pixels (default 1200)."),
			mcp.Min(1),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		name, err := request.RequireString("project")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		view := request.GetString("view", "day")
		viewport := request.GetFloat("viewport", chart.DefaultViewport)

		c, err := svc.Layout(ctx, name, view, viewport)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(c)
	})
}

func toJSONResult(data any) (*mcp.CallToolResult, error) {
	result, err := mcp.NewToolResultJSON(data)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshal error: %v", err)), nil
	}
	return result, nil
}
