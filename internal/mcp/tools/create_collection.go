package tools

import (
	"context"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/roivaz/raindrop-mcp/internal/raindrop"
)

type CollectionCreator interface {
	CreateCollection(ctx context.Context, in raindrop.CreateCollectionInput) (raindrop.Collection, error)
}

type CreateCollectionHandler struct {
	Service CollectionCreator
}

var createCollectionSchema = argSchema{
	{name: "title", kind: argString, required: true},
	{name: "description", kind: argString},
	{name: "public", kind: argBool},
	{name: "parent_id", kind: argNumber},
}

func (h *CreateCollectionHandler) ToolAdapter(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	if err := createCollectionSchema.validate(args); err != nil {
		return toolError(err), nil
	}

	title, _ := stringArg(args, "title")
	if strings.TrimSpace(title) == "" {
		return toolError(raindrop.Errorf(raindrop.KindInvalidArguments, "title must not be empty")), nil
	}

	in := raindrop.CreateCollectionInput{Title: title}
	in.Description, _ = stringArg(args, "description")
	in.Public, _ = boolArg(args, "public")
	if pid, ok := intArg(args, "parent_id"); ok {
		in.ParentID = &pid
	}

	collection, err := h.Service.CreateCollection(ctx, in)
	if err != nil {
		return toolError(err), nil
	}
	return mcp.NewToolResultText(string(mustMarshal(toCollectionResult(collection)))), nil
}
