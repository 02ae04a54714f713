package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/roivaz/raindrop-mcp/internal/mcp/tools/types"
)

type BookmarkDeleter interface {
	DeleteBookmark(ctx context.Context, id int64) error
}

type DeleteBookmarkHandler struct {
	Service BookmarkDeleter
}

var deleteBookmarkSchema = argSchema{
	{name: "bookmark_id", kind: argNumber, required: true},
}

func (h *DeleteBookmarkHandler) ToolAdapter(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	if err := deleteBookmarkSchema.validate(args); err != nil {
		return toolError(err), nil
	}
	id, _ := intArg(args, "bookmark_id")

	if err := h.Service.DeleteBookmark(ctx, id); err != nil {
		return toolError(err), nil
	}
	ack := types.DeleteAck{BookmarkID: id, Deleted: true}
	return mcp.NewToolResultText(string(mustMarshal(ack))), nil
}
