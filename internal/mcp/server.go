package mcp

import (
	"context"
	"net/http"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/roivaz/raindrop-mcp/internal/mcp/tools"
)

// Gateway is the full upstream surface the tool handlers dispatch into.
// *raindrop.Client satisfies it; tests substitute fakes.
type Gateway interface {
	tools.SearchService
	tools.BookmarkCreator
	tools.BookmarkGetter
	tools.BookmarkUpdater
	tools.BookmarkDeleter
	tools.CollectionLister
	tools.CollectionCreator
}

type Server struct {
	MCP      *server.MCPServer
	HTTP     *server.StreamableHTTPServer
	Handler  http.Handler
	Registry *tools.Registry
}

func New(cfg Config) *Server {
	mcpServer := server.NewMCPServer(
		"raindrop-mcp-server",
		"1.0.0",
		server.WithToolCapabilities(true),
	)

	registry := tools.NewRegistry()
	registry.Register("search_bookmarks", &tools.SearchBookmarksHandler{Service: cfg.Gateway})
	registry.Register("create_bookmark", &tools.CreateBookmarkHandler{Service: cfg.Gateway})
	registry.Register("get_bookmark", &tools.GetBookmarkHandler{Service: cfg.Gateway})
	registry.Register("update_bookmark", &tools.UpdateBookmarkHandler{Service: cfg.Gateway})
	registry.Register("delete_bookmark", &tools.DeleteBookmarkHandler{Service: cfg.Gateway})
	registry.Register("get_recent_unsorted", &tools.RecentUnsortedHandler{Service: cfg.Gateway})
	registry.Register("list_collections", &tools.ListCollectionsHandler{Service: cfg.Gateway})
	registry.Register("create_collection", &tools.CreateCollectionHandler{Service: cfg.Gateway})

	toolDefinitions := map[string]mcp.Tool{
		"search_bookmarks": mcp.NewTool("search_bookmarks",
			mcp.WithDescription("Search bookmarks by free text, collection, and tags. Returns a paginated list of bookmarks."),
			mcp.WithString("term",
				mcp.Description("Free-text search query"),
			),
			mcp.WithNumber("collection_id",
				mcp.Description("Restrict the search to one collection (-1 for unsorted, 0 for all)"),
			),
			mcp.WithArray("tags",
				mcp.Description("Only return bookmarks carrying all of these tags"),
				mcp.Items(map[string]any{"type": "string"}),
			),
			mcp.WithString("sort",
				mcp.Description("Sort field (default: created)"),
				mcp.Enum("score", "created", "lastUpdate", "title", "domain"),
			),
			mcp.WithString("order",
				mcp.Description("Sort order (default: desc)"),
				mcp.Enum("asc", "desc"),
			),
			mcp.WithNumber("page",
				mcp.Description("Zero-based page number"),
			),
			mcp.WithNumber("per_page",
				mcp.Description("Items per page, 1-50 (default: 50)"),
			),
		),
		"create_bookmark": mcp.NewTool("create_bookmark",
			mcp.WithDescription("Save a new bookmark. Only the URL is required; Raindrop derives title and excerpt when omitted."),
			mcp.WithString("url",
				mcp.Required(),
				mcp.Description("Absolute URL to bookmark"),
			),
			mcp.WithString("title",
				mcp.Description("Bookmark title"),
			),
			mcp.WithString("excerpt",
				mcp.Description("Short excerpt or summary"),
			),
			mcp.WithString("note",
				mcp.Description("Personal note attached to the bookmark"),
			),
			mcp.WithArray("tags",
				mcp.Description("Tags to attach"),
				mcp.Items(map[string]any{"type": "string"}),
			),
			mcp.WithNumber("collection_id",
				mcp.Description("Collection to file the bookmark into (defaults to unsorted)"),
			),
		),
		"get_bookmark": mcp.NewTool("get_bookmark",
			mcp.WithDescription("Fetch a single bookmark by its id."),
			mcp.WithNumber("bookmark_id",
				mcp.Required(),
				mcp.Description("Bookmark id"),
			),
		),
		"update_bookmark": mcp.NewTool("update_bookmark",
			mcp.WithDescription("Update fields of an existing bookmark. Supplied fields fully replace the previous value; omitted fields are left untouched."),
			mcp.WithNumber("bookmark_id",
				mcp.Required(),
				mcp.Description("Bookmark id"),
			),
			mcp.WithString("title",
				mcp.Description("New title"),
			),
			mcp.WithString("excerpt",
				mcp.Description("New excerpt"),
			),
			mcp.WithString("note",
				mcp.Description("New note"),
			),
			mcp.WithArray("tags",
				mcp.Description("Replacement tag set (full replace, not a merge)"),
				mcp.Items(map[string]any{"type": "string"}),
			),
			mcp.WithNumber("collection_id",
				mcp.Description("Move the bookmark to this collection"),
			),
		),
		"delete_bookmark": mcp.NewTool("delete_bookmark",
			mcp.WithDescription("Delete a bookmark by its id."),
			mcp.WithNumber("bookmark_id",
				mcp.Required(),
				mcp.Description("Bookmark id"),
			),
		),
		"get_recent_unsorted": mcp.NewTool("get_recent_unsorted",
			mcp.WithDescription("List the most recent bookmarks from the unsorted collection, newest first."),
			mcp.WithNumber("limit",
				mcp.Description("Maximum bookmarks to return, 1-50 (default: 50)"),
			),
			mcp.WithNumber("page",
				mcp.Description("Zero-based page number"),
			),
		),
		"list_collections": mcp.NewTool("list_collections",
			mcp.WithDescription("List all collections, root and nested."),
			mcp.WithString("sort",
				mcp.Description("Sort field (default: title)"),
				mcp.Enum("title", "count", "created", "lastUpdate"),
			),
			mcp.WithString("order",
				mcp.Description("Sort order (default: asc)"),
				mcp.Enum("asc", "desc"),
			),
		),
		"create_collection": mcp.NewTool("create_collection",
			mcp.WithDescription("Create a new collection, optionally nested under a parent collection."),
			mcp.WithString("title",
				mcp.Required(),
				mcp.Description("Collection title (must not be empty)"),
			),
			mcp.WithString("description",
				mcp.Description("Collection description"),
			),
			mcp.WithBoolean("public",
				mcp.Description("Make the collection publicly visible (default: false)"),
			),
			mcp.WithNumber("parent_id",
				mcp.Description("Parent collection id for nesting"),
			),
		),
	}

	for _, name := range registry.Names() {
		tool := toolDefinitions[name]
		mcpServer.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return registry.Dispatch(ctx, req.Params.Name, req)
		})
	}

	httpServer := server.NewStreamableHTTPServer(mcpServer, cfg.Options...)

	return &Server{
		MCP:      mcpServer,
		HTTP:     httpServer,
		Handler:  httpServer,
		Registry: registry,
	}
}
