package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/roivaz/raindrop-mcp/internal/raindrop"
)

// SearchService is the slice of the gateway the search tools need.
type SearchService interface {
	SearchBookmarks(ctx context.Context, filter raindrop.Filter) (raindrop.SearchResult, error)
	RecentUnsorted(ctx context.Context, limit, page int) (raindrop.SearchResult, error)
}

type SearchBookmarksHandler struct {
	Service SearchService
}

var searchBookmarksSchema = argSchema{
	{name: "term", kind: argString},
	{name: "collection_id", kind: argNumber},
	{name: "tags", kind: argStringList},
	{name: "sort", kind: argString},
	{name: "order", kind: argString},
	{name: "page", kind: argNumber},
	{name: "per_page", kind: argNumber},
}

var validSearchSorts = map[string]bool{
	"score":      true,
	"created":    true,
	"lastUpdate": true,
	"title":      true,
	"domain":     true,
}

var validOrders = map[string]bool{"asc": true, "desc": true}

func (h *SearchBookmarksHandler) ToolAdapter(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	if err := searchBookmarksSchema.validate(args); err != nil {
		return toolError(err), nil
	}

	filter := raindrop.Filter{}
	filter.Term, _ = stringArg(args, "term")
	if id, ok := intArg(args, "collection_id"); ok {
		filter.Collection = id
	}
	filter.Tags, _ = stringListArg(args, "tags")
	if sort, ok := stringArg(args, "sort"); ok {
		if !validSearchSorts[sort] {
			return toolError(raindrop.Errorf(raindrop.KindInvalidArguments, "sort must be one of score, created, lastUpdate, title, domain")), nil
		}
		filter.Sort = sort
	}
	if order, ok := stringArg(args, "order"); ok {
		if !validOrders[order] {
			return toolError(raindrop.Errorf(raindrop.KindInvalidArguments, "order must be asc or desc")), nil
		}
		filter.Order = order
	}
	if page, ok := intArg(args, "page"); ok {
		if page < 0 {
			return toolError(raindrop.Errorf(raindrop.KindInvalidArguments, "page must not be negative")), nil
		}
		filter.Page = int(page)
	}
	if perPage, ok := intArg(args, "per_page"); ok {
		if perPage < 1 || perPage > 50 {
			return toolError(raindrop.Errorf(raindrop.KindInvalidArguments, "per_page must be between 1 and 50")), nil
		}
		filter.PerPage = int(perPage)
	}

	res, err := h.Service.SearchBookmarks(ctx, filter)
	if err != nil {
		return toolError(err), nil
	}
	return mcp.NewToolResultText(string(mustMarshal(toSearchResults(res)))), nil
}
