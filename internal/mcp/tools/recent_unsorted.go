package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/roivaz/raindrop-mcp/internal/raindrop"
)

type RecentUnsortedHandler struct {
	Service SearchService
}

var recentUnsortedSchema = argSchema{
	{name: "limit", kind: argNumber},
	{name: "page", kind: argNumber},
}

// Returns bookmarks from the unsorted collection, newest first. Pagination
// is offset-based (page plus limit), matching the upstream API.
func (h *RecentUnsortedHandler) ToolAdapter(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	if err := recentUnsortedSchema.validate(args); err != nil {
		return toolError(err), nil
	}

	limit := 0
	if raw, ok := intArg(args, "limit"); ok {
		if raw < 1 || raw > 50 {
			return toolError(raindrop.Errorf(raindrop.KindInvalidArguments, "limit must be between 1 and 50")), nil
		}
		limit = int(raw)
	}
	page := 0
	if raw, ok := intArg(args, "page"); ok {
		if raw < 0 {
			return toolError(raindrop.Errorf(raindrop.KindInvalidArguments, "page must not be negative")), nil
		}
		page = int(raw)
	}

	res, err := h.Service.RecentUnsorted(ctx, limit, page)
	if err != nil {
		return toolError(err), nil
	}
	return mcp.NewToolResultText(string(mustMarshal(toSearchResults(res)))), nil
}
