package tools

import (
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/roivaz/raindrop-mcp/internal/mcp/tools/types"
	"github.com/roivaz/raindrop-mcp/internal/raindrop"
)

// toolError renders an adapter error as a structured MCP error result. The
// message always leads with the error kind so callers can tell classes of
// failure apart.
func toolError(err error) *mcp.CallToolResult {
	return mcp.NewToolResultError(err.Error())
}

func stringArg(args map[string]any, name string) (string, bool) {
	v, ok := args[name].(string)
	return v, ok
}

// optionalString returns a pointer when the argument is present, nil when
// absent, so update handlers can tell "replace the field" from "leave it".
func optionalString(args map[string]any, name string) *string {
	if v, ok := args[name].(string); ok {
		return &v
	}
	return nil
}

func intArg(args map[string]any, name string) (int64, bool) {
	switch v := args[name].(type) {
	case float64:
		return int64(v), true
	case int:
		return int64(v), true
	case int64:
		return v, true
	}
	return 0, false
}

func boolArg(args map[string]any, name string) (bool, bool) {
	v, ok := args[name].(bool)
	return v, ok
}

func stringListArg(args map[string]any, name string) ([]string, bool) {
	switch list := args[name].(type) {
	case []string:
		return list, true
	case []any:
		out := make([]string, 0, len(list))
		for _, item := range list {
			s, ok := item.(string)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	}
	return nil, false
}

func mustMarshal(v interface{}) []byte {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return b
}

func toBookmarkResult(b raindrop.Bookmark) types.BookmarkResult {
	return types.BookmarkResult{
		ID:           b.ID,
		Title:        b.Title,
		URL:          b.URL,
		Excerpt:      b.Excerpt,
		Note:         b.Note,
		Tags:         b.Tags,
		Created:      b.Created,
		LastUpdate:   b.LastUpdate,
		Domain:       b.Domain,
		CollectionID: b.CollectionID,
	}
}

func toSearchResults(res raindrop.SearchResult) types.SearchResults {
	items := make([]types.BookmarkResult, 0, len(res.Items))
	for _, b := range res.Items {
		items = append(items, toBookmarkResult(b))
	}
	return types.SearchResults{
		Items: items,
		Pagination: types.Pagination{
			Count:   res.Count,
			Total:   res.Total,
			Page:    res.Page,
			PerPage: res.PerPage,
			HasMore: res.HasMore,
		},
	}
}

func toCollectionResult(c raindrop.Collection) types.CollectionResult {
	return types.CollectionResult{
		ID:          c.ID,
		Title:       c.Title,
		Description: c.Description,
		Public:      c.Public,
		Count:       c.Count,
		ParentID:    c.ParentID,
		Created:     c.Created,
		LastUpdate:  c.LastUpdate,
	}
}
