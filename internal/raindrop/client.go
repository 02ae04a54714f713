package raindrop

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/tidwall/gjson"
	"golang.org/x/oauth2"

	"github.com/roivaz/raindrop-mcp/internal/logging"
)

const (
	// DefaultBaseURL is the public Raindrop.io REST endpoint.
	DefaultBaseURL = "https://api.raindrop.io/rest/v1"

	// DefaultTimeout bounds every outbound request.
	DefaultTimeout = 30 * time.Second

	// DefaultRateInterval is the minimum spacing between outbound requests.
	DefaultRateInterval = 1200 * time.Millisecond

	defaultPerPage = 50
	maxPerPage     = 50
)

// Config carries the client's startup configuration. Token is required;
// everything else has a default. A negative RateInterval disables pacing;
// zero means the default spacing.
type Config struct {
	Token        string
	BaseURL      string
	Timeout      time.Duration
	RateInterval time.Duration
	Logger       logging.Logger
}

// Client is the upstream gateway: it translates one validated operation into
// one authenticated HTTP request/response cycle against Raindrop.io and
// normalizes the result. It holds no cache and no cross-call state beyond
// the pacer's last-request marker.
type Client struct {
	base  string
	http  *http.Client
	pacer *Pacer
	log   logging.Logger
}

// NewClient builds a gateway from cfg. The bearer token is injected by an
// oauth2 static token source so it lives in the transport, not in request
// construction, and it is never logged.
func NewClient(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.Token) == "" {
		return nil, NewError(KindUnauthorized, "raindrop api token is required")
	}
	base := strings.TrimRight(cfg.BaseURL, "/")
	if base == "" {
		base = DefaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	interval := cfg.RateInterval
	if interval == 0 {
		interval = DefaultRateInterval
	}
	if interval < 0 {
		interval = 0
	}

	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: strings.TrimSpace(cfg.Token)})
	hc := oauth2.NewClient(context.Background(), ts)
	hc.Timeout = timeout

	return &Client{
		base:  base,
		http:  hc,
		pacer: NewPacer(interval),
		log:   cfg.Logger.WithName("raindrop"),
	}, nil
}

// SearchBookmarks runs a filtered, paginated bookmark search.
func (c *Client) SearchBookmarks(ctx context.Context, filter Filter) (SearchResult, error) {
	page := filter.Page
	if page < 0 {
		page = 0
	}
	perPage := filter.PerPage
	if perPage <= 0 {
		perPage = defaultPerPage
	}
	if perPage > maxPerPage {
		perPage = maxPerPage
	}

	query := url.Values{}
	if term := strings.TrimSpace(filter.Term); term != "" {
		query.Set("search", term)
	}
	if tags := SanitizeTags(filter.Tags); len(tags) > 0 {
		query.Set("tags", strings.Join(tags, ","))
	}
	query.Set("sort", sortParam(filter.Sort, filter.Order))
	query.Set("page", strconv.Itoa(page))
	query.Set("perpage", strconv.Itoa(perPage))

	path := fmt.Sprintf("/raindrops/%d", filter.Collection)

	var env bookmarkListEnvelope
	if err := c.do(ctx, http.MethodGet, path, query, nil, &env); err != nil {
		return SearchResult{}, err
	}

	items := make([]Bookmark, 0, len(env.Items))
	for _, w := range env.Items {
		items = append(items, w.toBookmark())
	}
	return SearchResult{
		Items:   items,
		Count:   len(items),
		Total:   env.Total,
		Page:    page,
		PerPage: perPage,
		HasMore: (page+1)*perPage < env.Total,
	}, nil
}

// GetBookmark fetches a single bookmark by id.
func (c *Client) GetBookmark(ctx context.Context, id int64) (Bookmark, error) {
	var env bookmarkEnvelope
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/raindrop/%d", id), nil, nil, &env); err != nil {
		return Bookmark{}, err
	}
	return env.Item.toBookmark(), nil
}

// CreateBookmark saves a new bookmark and returns it with its
// upstream-assigned id.
func (c *Client) CreateBookmark(ctx context.Context, in CreateBookmarkInput) (Bookmark, error) {
	var env bookmarkEnvelope
	if err := c.do(ctx, http.MethodPost, "/raindrop", nil, in.wireBody(), &env); err != nil {
		return Bookmark{}, err
	}
	return env.Item.toBookmark(), nil
}

// UpdateBookmark replaces the supplied fields of an existing bookmark.
// An update carrying no fields is a no-op: the current bookmark is read
// back and no write is issued.
func (c *Client) UpdateBookmark(ctx context.Context, id int64, in UpdateBookmarkInput) (Bookmark, error) {
	if in.Empty() {
		return c.GetBookmark(ctx, id)
	}
	var env bookmarkEnvelope
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/raindrop/%d", id), nil, in.wireBody(), &env); err != nil {
		return Bookmark{}, err
	}
	return env.Item.toBookmark(), nil
}

// DeleteBookmark removes a bookmark.
func (c *Client) DeleteBookmark(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/raindrop/%d", id), nil, nil, nil)
}

// RecentUnsorted returns the newest bookmarks from the unsorted collection.
func (c *Client) RecentUnsorted(ctx context.Context, limit, page int) (SearchResult, error) {
	return c.SearchBookmarks(ctx, Filter{
		Collection: UnsortedCollection,
		Sort:       "created",
		Order:      "desc",
		Page:       page,
		PerPage:    limit,
	})
}

// ListCollections returns root and child collections merged into one list.
// An empty account yields an empty list, not an error. A failure fetching
// children is tolerated with a warning since root collections already
// answered.
func (c *Client) ListCollections(ctx context.Context) ([]Collection, error) {
	var root collectionListEnvelope
	if err := c.do(ctx, http.MethodGet, "/collections", nil, nil, &root); err != nil {
		return nil, err
	}

	collections := make([]Collection, 0, len(root.Items))
	for _, w := range root.Items {
		collections = append(collections, w.toCollection())
	}

	var children collectionListEnvelope
	if err := c.do(ctx, http.MethodGet, "/collections/childrens", nil, nil, &children); err != nil {
		c.log.Info("fetching child collections failed", "error", err.Error())
		return collections, nil
	}
	for _, w := range children.Items {
		collections = append(collections, w.toCollection())
	}
	return collections, nil
}

// CreateCollection creates a named collection, optionally nested under a
// parent.
func (c *Client) CreateCollection(ctx context.Context, in CreateCollectionInput) (Collection, error) {
	var env collectionEnvelope
	if err := c.do(ctx, http.MethodPost, "/collection", nil, in.wireBody(), &env); err != nil {
		return Collection{}, err
	}
	return env.Item.toCollection(), nil
}

// do issues one paced, authenticated request. GET requests get a single
// retry when the failure happened before any HTTP response arrived; writes
// are never retried so a lost response cannot duplicate a side effect.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any, out any) error {
	attempts := 1
	if method == http.MethodGet {
		attempts = 2
	}

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		if err := c.pacer.Wait(ctx); err != nil {
			return err
		}
		err := c.roundTrip(ctx, method, path, query, body, out)
		if err == nil {
			return nil
		}
		lastErr = err
		if !IsKind(err, KindTransient) && !IsKind(err, KindGatewayTimeout) {
			return err
		}
		if attempt+1 < attempts {
			c.log.Info("retrying read after transport failure", "method", method, "path", path)
		}
	}
	return lastErr
}

func (c *Client) roundTrip(ctx context.Context, method, path string, query url.Values, body any, out any) error {
	target := c.base + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return wrapError(KindInvalidArguments, "encode request body", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return wrapError(KindInvalidArguments, "build request", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return c.transportError(ctx, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return wrapError(KindTransient, "read response body", err)
	}
	c.log.Debug("upstream call", "method", method, "path", path, "status", resp.StatusCode, "duration", time.Since(start).String())

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return statusError(resp.StatusCode, data)
	}
	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return wrapError(KindUpstream, "decode upstream response", err)
		}
	}
	return nil
}

// transportError classifies a failure that produced no HTTP response.
func (c *Client) transportError(ctx context.Context, err error) error {
	if errors.Is(err, context.Canceled) || ctx.Err() == context.Canceled {
		return wrapError(KindCanceled, "request canceled; upstream outcome indeterminate", err)
	}
	var ue *url.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &ue) && ue.Timeout()) {
		return wrapError(KindGatewayTimeout, "upstream request timed out", err)
	}
	return wrapError(KindTransient, "request failed before a response was received", err)
}

// statusError maps a non-2xx upstream response. The body's error message is
// pulled out with gjson since Raindrop spells it either "errorMessage" or
// "error" depending on the endpoint.
func statusError(status int, body []byte) error {
	msg := gjson.GetBytes(body, "errorMessage").String()
	if msg == "" {
		msg = gjson.GetBytes(body, "error").String()
	}
	if msg == "" {
		msg = http.StatusText(status)
	}
	return &Error{Kind: kindForStatus(status), Status: status, Message: msg}
}

// sortParam encodes sort field and order the way the upstream expects,
// e.g. "-created" for newest first.
func sortParam(field, order string) string {
	if field == "" {
		field = "created"
	}
	if order == "" {
		order = "desc"
	}
	if order == "desc" {
		return "-" + field
	}
	return field
}
