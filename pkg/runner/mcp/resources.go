package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"tableflip.dev/gantt/pkg/chart"
)

func registerResources(srv *server.MCPServer, svc *Service) {
	registerProjectsResource(srv, svc)
	registerProjectTemplate(srv, svc)
	registerLayoutTemplate(srv, svc)
}

func registerProjectsResource(srv *server.MCPServer, svc *Service) {
	resource := mcp.NewResource(
		"gantt://projects",
		"Projects",
		mcp.WithResourceDescription("All stored Gantt projects with task counts and date bounds."),
		mcp.WithMIMEType("application/json"),
	)

	srv.AddResource(resource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		summaries, err := svc.ListProjects(ctx)
		if err != nil {
			return nil, err
		}

		payload := map[string]any{
			"projects": summaries,
			"count":    len(summaries),
		}
		return encodeResourceJSON(request.Params.URI, payload)
	})
}

func registerProjectTemplate(srv *server.MCPServer, svc *Service) {
	template := mcp.NewResourceTemplate(
		"gantt://projects/{name}",
		"Project",
		mcp.WithTemplateDescription("Tasks, categories, titles and watermark of a project."),
		mcp.WithTemplateMIMEType("application/json"),
	)

	srv.AddResourceTemplate(template, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		name := argument(request, "name")
		if name == "" {
			return nil, fmt.Errorf("project name is required")
		}

		dto, err := svc.Project(ctx, name)
		if err != nil {
			return nil, err
		}
		return encodeResourceJSON(request.Params.URI, map[string]any{"project": dto})
	})
}

func registerLayoutTemplate(srv *server.MCPServer, svc *Service) {
	template := mcp.NewResourceTemplate(
		"gantt://projects/{name}/layout/{view}",
		"Project Layout",
		mcp.WithTemplateDescription("Chart layout of a project for a day, week, month or year view."),
		mcp.WithTemplateMIMEType("application/json"),
	)

	srv.AddResourceTemplate(template, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		name := argument(request, "name")
		if name == "" {
			return nil, fmt.Errorf("project name is required")
		}
		view := argument(request, "view")

		c, err := svc.Layout(ctx, name, view, chart.DefaultViewport)
		if err != nil {
			return nil, err
		}
		return encodeResourceJSON(request.Params.URI, c)
	})
}

// argument reads a URI template variable. Variables may arrive as a string
// or as a single-element list depending on the template matcher.
func argument(request mcp.ReadResourceRequest, key string) string {
	switch v := request.Params.Arguments[key].(type) {
	case string:
		return v
	case []string:
		if len(v) > 0 {
			return v[0]
		}
	}
	return ""
}

func encodeResourceJSON(uri string, payload any) ([]mcp.ResourceContents, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
