package tools

import (
	"context"
	"net/url"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/roivaz/raindrop-mcp/internal/raindrop"
)

type BookmarkCreator interface {
	CreateBookmark(ctx context.Context, in raindrop.CreateBookmarkInput) (raindrop.Bookmark, error)
}

type CreateBookmarkHandler struct {
	Service BookmarkCreator
}

var createBookmarkSchema = argSchema{
	{name: "url", kind: argString, required: true},
	{name: "title", kind: argString},
	{name: "excerpt", kind: argString},
	{name: "note", kind: argString},
	{name: "tags", kind: argStringList},
	{name: "collection_id", kind: argNumber},
}

func (h *CreateBookmarkHandler) ToolAdapter(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	if err := createBookmarkSchema.validate(args); err != nil {
		return toolError(err), nil
	}

	rawURL, _ := stringArg(args, "url")
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return toolError(raindrop.Errorf(raindrop.KindInvalidArguments, "url %q is not a valid absolute URL", rawURL)), nil
	}

	in := raindrop.CreateBookmarkInput{URL: rawURL}
	in.Title, _ = stringArg(args, "title")
	in.Excerpt, _ = stringArg(args, "excerpt")
	in.Note, _ = stringArg(args, "note")
	in.Tags, _ = stringListArg(args, "tags")
	if id, ok := intArg(args, "collection_id"); ok {
		in.CollectionID = id
	}

	bookmark, err := h.Service.CreateBookmark(ctx, in)
	if err != nil {
		return toolError(err), nil
	}
	return mcp.NewToolResultText(string(mustMarshal(toBookmarkResult(bookmark)))), nil
}
