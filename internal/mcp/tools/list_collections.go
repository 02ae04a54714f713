package tools

import (
	"context"
	"sort"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/roivaz/raindrop-mcp/internal/mcp/tools/types"
	"github.com/roivaz/raindrop-mcp/internal/raindrop"
)

type CollectionLister interface {
	ListCollections(ctx context.Context) ([]raindrop.Collection, error)
}

type ListCollectionsHandler struct {
	Service CollectionLister
}

var listCollectionsSchema = argSchema{
	{name: "sort", kind: argString},
	{name: "order", kind: argString},
}

var validCollectionSorts = map[string]bool{
	"title":      true,
	"count":      true,
	"created":    true,
	"lastUpdate": true,
}

func (h *ListCollectionsHandler) ToolAdapter(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	if err := listCollectionsSchema.validate(args); err != nil {
		return toolError(err), nil
	}

	sortField := "title"
	if v, ok := stringArg(args, "sort"); ok {
		if !validCollectionSorts[v] {
			return toolError(raindrop.Errorf(raindrop.KindInvalidArguments, "sort must be one of title, count, created, lastUpdate")), nil
		}
		sortField = v
	}
	order := "asc"
	if v, ok := stringArg(args, "order"); ok {
		if !validOrders[v] {
			return toolError(raindrop.Errorf(raindrop.KindInvalidArguments, "order must be asc or desc")), nil
		}
		order = v
	}

	collections, err := h.Service.ListCollections(ctx)
	if err != nil {
		return toolError(err), nil
	}

	results := make([]types.CollectionResult, 0, len(collections))
	for _, c := range collections {
		results = append(results, toCollectionResult(c))
	}
	sortCollections(results, sortField, order == "desc")

	payload := types.CollectionList{Collections: results, Count: len(results)}
	return mcp.NewToolResultText(string(mustMarshal(payload))), nil
}

// The upstream has no sort parameter on collection listing, so ordering is
// applied here after the merge of root and child collections.
func sortCollections(items []types.CollectionResult, field string, desc bool) {
	less := func(i, j int) bool {
		switch field {
		case "count":
			return items[i].Count < items[j].Count
		case "created":
			return items[i].Created < items[j].Created
		case "lastUpdate":
			return items[i].LastUpdate < items[j].LastUpdate
		default:
			return strings.ToLower(items[i].Title) < strings.ToLower(items[j].Title)
		}
	}
	if desc {
		sort.SliceStable(items, func(i, j int) bool { return less(j, i) })
		return
	}
	sort.SliceStable(items, less)
}
