package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/roivaz/raindrop-mcp/internal/raindrop"
)

type BookmarkGetter interface {
	GetBookmark(ctx context.Context, id int64) (raindrop.Bookmark, error)
}

type GetBookmarkHandler struct {
	Service BookmarkGetter
}

var getBookmarkSchema = argSchema{
	{name: "bookmark_id", kind: argNumber, required: true},
}

func (h *GetBookmarkHandler) ToolAdapter(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	if err := getBookmarkSchema.validate(args); err != nil {
		return toolError(err), nil
	}
	id, _ := intArg(args, "bookmark_id")

	bookmark, err := h.Service.GetBookmark(ctx, id)
	if err != nil {
		return toolError(err), nil
	}
	return mcp.NewToolResultText(string(mustMarshal(toBookmarkResult(bookmark)))), nil
}
