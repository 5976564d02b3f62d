package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/aki/davbridge/internal/core/logger"
	"github.com/aki/davbridge/internal/listing"
	"github.com/aki/davbridge/internal/webdav"
)

// ListToolName is the tool that lists a directory on the origin
const ListToolName = "webdav_list"

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool(ListToolName,
		mcp.WithDescription("List files in a directory of the WebDAV origin. "+
			"Each entry carries its name, size, last modified date and the bridge download link."),
		mcp.WithString("path",
			mcp.Description("Directory relative to the configured list path (optional, e.g. 'docs/2024')"),
		),
	), s.handleList)
}

func (s *Server) handleList(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	dir := ""
	if raw, ok := args["path"]; ok && raw != nil {
		str, ok := raw.(string)
		if !ok {
			return nil, InvalidParameterError("path", "string")
		}
		dir = str
	}

	escapedPath, err := s.resolvePath(dir)
	if err != nil {
		return nil, err
	}

	page, err := s.listPage(ctx, escapedPath)
	if err != nil {
		return nil, err
	}

	result, err := json.MarshalIndent(page, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal listing: %w", err)
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{
				Type: "text",
				Text: string(result),
			},
		},
	}, nil
}

// resolvePath joins dir onto the configured list path and escapes the result.
// Directory paths keep a trailing slash.
func (s *Server) resolvePath(dir string) (string, error) {
	dir = strings.Trim(dir, "/")
	for _, segment := range strings.Split(dir, "/") {
		if segment == ".." {
			return "", InvalidParameterError("path", "a directory below the list path")
		}
	}

	base, err := url.PathUnescape(s.listPath)
	if err != nil {
		base = s.listPath
	}

	joined := path.Join("/", base, dir)
	if joined != "/" {
		joined += "/"
	}
	return (&url.URL{Path: joined}).EscapedPath(), nil
}

func (s *Server) listPage(ctx context.Context, escapedPath string) (listing.Page, error) {
	ctx = logger.WithContext(ctx, s.log.With("tool", ListToolName, "path", escapedPath))

	entries, err := s.origin.List(ctx, escapedPath)
	if err != nil {
		if status, ok := webdav.StatusCode(err); ok {
			return listing.Page{}, ListingFailedError(escapedPath, status)
		}
		return listing.Page{}, fmt.Errorf("failed to list %s: %w", escapedPath, err)
	}

	return listing.NewPage(escapedPath, entries, s.origin.RelativePath), nil
}
