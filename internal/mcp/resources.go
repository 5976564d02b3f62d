package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// ListingResourceURI is the resource holding the configured directory listing
const ListingResourceURI = "webdav://listing"

func (s *Server) registerResources() {
	listingResource := mcp.NewResource(
		ListingResourceURI,
		"WebDAV Listing",
		mcp.WithResourceDescription("Files in the configured directory of the WebDAV origin"),
		mcp.WithMIMEType("application/json"),
	)
	s.mcpServer.AddResource(listingResource, s.handleListingResource)
}

func (s *Server) handleListingResource(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	escapedPath, err := s.resolvePath("")
	if err != nil {
		return nil, err
	}

	page, err := s.listPage(ctx, escapedPath)
	if err != nil {
		return nil, err
	}

	jsonData, err := json.MarshalIndent(page, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal listing: %w", err)
	}

	return []mcp.ResourceContents{
		&mcp.TextResourceContents{
			URI:      request.Params.URI,
			MIMEType: "application/json",
			Text:     string(jsonData),
		},
	}, nil
}
