package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/roivaz/raindrop-mcp/internal/raindrop"
)

type BookmarkUpdater interface {
	UpdateBookmark(ctx context.Context, id int64, in raindrop.UpdateBookmarkInput) (raindrop.Bookmark, error)
}

type UpdateBookmarkHandler struct {
	Service BookmarkUpdater
}

var updateBookmarkSchema = argSchema{
	{name: "bookmark_id", kind: argNumber, required: true},
	{name: "title", kind: argString},
	{name: "excerpt", kind: argString},
	{name: "note", kind: argString},
	{name: "tags", kind: argStringList},
	{name: "collection_id", kind: argNumber},
}

// Supplied fields fully replace their previous value; tags in particular are
// a full replacement, not a merge. Omitted fields stay untouched. An update
// with no fields at all reads back the current bookmark without writing.
func (h *UpdateBookmarkHandler) ToolAdapter(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	if err := updateBookmarkSchema.validate(args); err != nil {
		return toolError(err), nil
	}
	id, _ := intArg(args, "bookmark_id")

	in := raindrop.UpdateBookmarkInput{
		Title:   optionalString(args, "title"),
		Excerpt: optionalString(args, "excerpt"),
		Note:    optionalString(args, "note"),
	}
	if tags, ok := stringListArg(args, "tags"); ok {
		in.Tags = &tags
	}
	if cid, ok := intArg(args, "collection_id"); ok {
		in.CollectionID = &cid
	}

	bookmark, err := h.Service.UpdateBookmark(ctx, id, in)
	if err != nil {
		return toolError(err), nil
	}
	return mcp.NewToolResultText(string(mustMarshal(toBookmarkResult(bookmark)))), nil
}
