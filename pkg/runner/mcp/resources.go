package mcp

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func registerResources(srv *server.MCPServer, svc *Service) {
	registerDayResource(srv, svc)
	registerDayTemplate(srv, svc)
	registerTagsResource(srv, svc)
}

const dayURIPrefix = "timebox://day/"

func registerDayResource(srv *server.MCPServer, svc *Service) {
	resource := mcp.NewResource(
		"timebox://day",
		"Open Day",
		mcp.WithResourceDescription("Priorities, notes and scheduled slots of the open day."),
		mcp.WithMIMEType("application/json"),
	)

	srv.AddResource(resource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		day, err := svc.Day()
		if err != nil {
			return nil, err
		}
		return encodeResourceJSON(request.Params.URI, day)
	})
}

func registerDayTemplate(srv *server.MCPServer, svc *Service) {
	template := mcp.NewResourceTemplate(
		dayURIPrefix+"{date}",
		"Day by date",
		mcp.WithTemplateDescription("The stored session of any day, YYYY-MM-DD. Reading does not change the open day."),
		mcp.WithTemplateMIMEType("application/json"),
	)

	srv.AddResourceTemplate(template, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		date := strings.TrimPrefix(request.Params.URI, dayURIPrefix)
		day, err := svc.Peek(ctx, date)
		if err != nil {
			return nil, err
		}
		return encodeResourceJSON(request.Params.URI, day)
	})
}

func registerTagsResource(srv *server.MCPServer, svc *Service) {
	resource := mcp.NewResource(
		"timebox://tags",
		"Tags",
		mcp.WithResourceDescription("The tag catalog with ids, names and colors."),
		mcp.WithMIMEType("application/json"),
	)

	srv.AddResource(resource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		tags := svc.Tags()
		payload := map[string]any{
			"tags":  tags,
			"count": len(tags),
		}
		return encodeResourceJSON(request.Params.URI, payload)
	})
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
