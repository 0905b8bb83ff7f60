package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/chatdigest/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for chatdigest resources.
	uriScheme = "chatdigest://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "groups",
		Name:        "groups",
		Description: "Published chat groups",
		MIMEType:    "application/json",
	}, s.handleGroupsResource)

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "topics",
		Name:        "topics",
		Description: "Tracked topic definitions",
		MIMEType:    "application/json",
	}, s.handleCatalogResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "groups/{groupId}/summary",
		Name:        "group-summary",
		Description: "Markdown summary of a chat group",
		MIMEType:    "text/markdown",
	}, s.handleSummaryResource)
}

func (s *Server) handleGroupsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	groups, err := s.ports.Groups.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing groups: %w", err)
	}

	type groupInfo struct {
		ID         string `json:"id"`
		Name       string `json:"name"`
		HasSummary bool   `json:"hasSummary"`
		URI        string `json:"uri,omitempty"`
	}

	infos := make([]groupInfo, len(groups))
	for i := range groups {
		infos[i] = groupInfo{
			ID:         groups[i].ID,
			Name:       groups[i].Name,
			HasSummary: groups[i].HasSummary,
		}
		if groups[i].HasSummary {
			infos[i].URI = summaryURI(groups[i].ID)
		}
	}
	return jsonResource(req.Params.URI, infos)
}

func (s *Server) handleCatalogResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	return jsonResource(req.Params.URI, s.ports.Topics.Catalog())
}

func (s *Server) handleSummaryResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	groupID := extractGroupID(req.Params.URI)
	if groupID == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	detail, err := s.ports.Groups.Get(ctx, groupID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	if err != nil {
		return nil, fmt.Errorf("getting summary: %w", err)
	}
	if !detail.Group.HasSummary {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "text/markdown",
			Text:     detail.Summary,
		}},
	}, nil
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling %s: %w", uri, err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

func summaryURI(groupID string) string {
	return uriScheme + "groups/" + groupID + "/summary"
}

// extractGroupID extracts the group ID from a URI like chatdigest://groups/{groupId}/summary.
func extractGroupID(uri string) string {
	const prefix = uriScheme + "groups/"
	const suffix = "/summary"

	if !strings.HasPrefix(uri, prefix) || !strings.HasSuffix(uri, suffix) {
		return ""
	}
	id := strings.TrimSuffix(strings.TrimPrefix(uri, prefix), suffix)
	if strings.Contains(id, "/") {
		return ""
	}
	return id
}
