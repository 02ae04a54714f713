package raindrop

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-logr/zapr"
	"go.uber.org/zap"

	"github.com/roivaz/raindrop-mcp/internal/logging"
)

const testToken = "test-token"

func quietLogger() logging.Logger {
	return logging.New(zapr.NewLogger(zap.NewNop()))
}

func newTestClient(t *testing.T, baseURL string, timeout time.Duration) *Client {
	t.Helper()
	c, err := NewClient(Config{
		Token:        testToken,
		BaseURL:      baseURL,
		Timeout:      timeout,
		RateInterval: -1, // no pacing in tests
		Logger:       quietLogger(),
	})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return c
}

// stubUpstream is an in-memory Raindrop.io lookalike serving the endpoints
// the gateway talks to.
type stubUpstream struct {
	t *testing.T

	mu        sync.Mutex
	bookmarks map[int64]map[string]any
	order     []int64
	nextID    int64
	roots     []map[string]any
	children  []map[string]any
	requests  []string
	lastQuery url.Values
}

func newStubUpstream(t *testing.T) *stubUpstream {
	return &stubUpstream{t: t, bookmarks: map[int64]map[string]any{}, nextID: 100}
}

func (s *stubUpstream) record(r *http.Request) {
	s.requests = append(s.requests, r.Method+" "+r.URL.Path)
	if auth := r.Header.Get("Authorization"); auth != "Bearer "+testToken {
		s.t.Errorf("unexpected authorization header %q", auth)
	}
}

func (s *stubUpstream) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record(r)

	path := r.URL.Path
	switch {
	case r.Method == http.MethodPost && path == "/raindrop":
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		s.nextID++
		item := map[string]any{
			"_id":        s.nextID,
			"link":       body["link"],
			"title":      body["title"],
			"note":       body["note"],
			"excerpt":    body["excerpt"],
			"tags":       body["tags"],
			"collection": map[string]any{"$id": float64(-1)},
		}
		if ref, ok := body["collection"].(map[string]any); ok {
			item["collection"] = ref
		}
		s.bookmarks[s.nextID] = item
		s.order = append(s.order, s.nextID)
		writeJSON(w, 200, map[string]any{"result": true, "item": item})

	case strings.HasPrefix(path, "/raindrop/"):
		id, _ := strconv.ParseInt(strings.TrimPrefix(path, "/raindrop/"), 10, 64)
		item, ok := s.bookmarks[id]
		if !ok {
			writeJSON(w, 404, map[string]any{"result": false, "errorMessage": "not found"})
			return
		}
		switch r.Method {
		case http.MethodGet:
			writeJSON(w, 200, map[string]any{"result": true, "item": item})
		case http.MethodPut:
			var body map[string]any
			_ = json.NewDecoder(r.Body).Decode(&body)
			for k, v := range body {
				item[k] = v
			}
			writeJSON(w, 200, map[string]any{"result": true, "item": item})
		case http.MethodDelete:
			delete(s.bookmarks, id)
			writeJSON(w, 200, map[string]any{"result": true})
		}

	case strings.HasPrefix(path, "/raindrops/"):
		s.lastQuery = r.URL.Query()
		cid, _ := strconv.ParseInt(strings.TrimPrefix(path, "/raindrops/"), 10, 64)
		items := []map[string]any{}
		// Newest first, matching sort=-created.
		for i := len(s.order) - 1; i >= 0; i-- {
			item, ok := s.bookmarks[s.order[i]]
			if !ok {
				continue
			}
			ref := item["collection"].(map[string]any)
			itemCID := int64(ref["$id"].(float64))
			if cid == 0 || itemCID == cid {
				items = append(items, item)
			}
		}
		writeJSON(w, 200, map[string]any{"result": true, "items": items, "count": len(items), "total": len(items)})

	case path == "/collections":
		writeJSON(w, 200, map[string]any{"result": true, "items": s.roots})

	case path == "/collections/childrens":
		writeJSON(w, 200, map[string]any{"result": true, "items": s.children})

	case r.Method == http.MethodPost && path == "/collection":
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		s.nextID++
		item := map[string]any{"_id": s.nextID, "title": body["title"]}
		if parent, ok := body["parent"]; ok {
			item["parent"] = parent
		}
		writeJSON(w, 200, map[string]any{"result": true, "item": item})

	default:
		writeJSON(w, 404, map[string]any{"result": false, "errorMessage": "no such endpoint"})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *stubUpstream) query() url.Values {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastQuery
}

func (s *stubUpstream) requestLog() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.requests))
	copy(out, s.requests)
	return out
}

func TestNewClientRequiresToken(t *testing.T) {
	_, err := NewClient(Config{Logger: quietLogger()})
	if err == nil {
		t.Fatalf("expected error for missing token")
	}
	if !IsKind(err, KindUnauthorized) {
		t.Fatalf("expected unauthorized kind, got %v", err)
	}
}

func TestCreateThenGetRoundtrip(t *testing.T) {
	stub := newStubUpstream(t)
	ts := httptest.NewServer(stub)
	defer ts.Close()
	c := newTestClient(t, ts.URL, time.Second)
	ctx := context.Background()

	created, err := c.CreateBookmark(ctx, CreateBookmarkInput{URL: "https://example.com"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == 0 {
		t.Fatalf("expected upstream-assigned id")
	}
	if created.CollectionID != UnsortedCollection {
		t.Fatalf("expected unsorted collection, got %d", created.CollectionID)
	}

	got, err := c.GetBookmark(ctx, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.URL != "https://example.com" {
		t.Fatalf("url mismatch: %q", got.URL)
	}
}

func TestUpdateReplacesTags(t *testing.T) {
	stub := newStubUpstream(t)
	ts := httptest.NewServer(stub)
	defer ts.Close()
	c := newTestClient(t, ts.URL, time.Second)
	ctx := context.Background()

	created, err := c.CreateBookmark(ctx, CreateBookmarkInput{URL: "https://example.com", Tags: []string{"old", "stale"}})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	tags := []string{"a", "b"}
	if _, err := c.UpdateBookmark(ctx, created.ID, UpdateBookmarkInput{Tags: &tags}); err != nil {
		t.Fatalf("update: %v", err)
	}

	got, err := c.GetBookmark(ctx, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got.Tags) != 2 || got.Tags[0] != "a" || got.Tags[1] != "b" {
		t.Fatalf("expected full tag replacement, got %v", got.Tags)
	}
}

func TestEmptyUpdateIsReadOnly(t *testing.T) {
	stub := newStubUpstream(t)
	ts := httptest.NewServer(stub)
	defer ts.Close()
	c := newTestClient(t, ts.URL, time.Second)
	ctx := context.Background()

	created, err := c.CreateBookmark(ctx, CreateBookmarkInput{URL: "https://example.com", Title: "title"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := c.UpdateBookmark(ctx, created.ID, UpdateBookmarkInput{})
	if err != nil {
		t.Fatalf("empty update: %v", err)
	}
	if got.Title != "title" {
		t.Fatalf("expected current bookmark back, got %+v", got)
	}
	for _, line := range stub.requestLog() {
		if strings.HasPrefix(line, "PUT ") {
			t.Fatalf("empty update must not write upstream: %v", stub.requestLog())
		}
	}
}

func TestDeleteThenGetNotFound(t *testing.T) {
	stub := newStubUpstream(t)
	ts := httptest.NewServer(stub)
	defer ts.Close()
	c := newTestClient(t, ts.URL, time.Second)
	ctx := context.Background()

	created, err := c.CreateBookmark(ctx, CreateBookmarkInput{URL: "https://example.com"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := c.DeleteBookmark(ctx, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	_, err = c.GetBookmark(ctx, created.ID)
	if !IsKind(err, KindNotFound) {
		t.Fatalf("expected not_found after delete, got %v", err)
	}
}

func TestSearchEncodesFilter(t *testing.T) {
	stub := newStubUpstream(t)
	ts := httptest.NewServer(stub)
	defer ts.Close()
	c := newTestClient(t, ts.URL, time.Second)

	_, err := c.SearchBookmarks(context.Background(), Filter{
		Term:       "golang",
		Collection: 42,
		Tags:       []string{"Go", "web"},
		Page:       2,
		PerPage:    10,
	})
	if err != nil {
		t.Fatalf("search: %v", err)
	}

	q := stub.query()
	if q.Get("search") != "golang" {
		t.Fatalf("search param: %q", q.Get("search"))
	}
	if q.Get("tags") != "go,web" {
		t.Fatalf("tags param: %q", q.Get("tags"))
	}
	if q.Get("sort") != "-created" {
		t.Fatalf("sort param: %q", q.Get("sort"))
	}
	if q.Get("page") != "2" || q.Get("perpage") != "10" {
		t.Fatalf("pagination params: page=%q perpage=%q", q.Get("page"), q.Get("perpage"))
	}
	if got := stub.requestLog()[0]; got != "GET /raindrops/42" {
		t.Fatalf("unexpected request path: %q", got)
	}
}

func TestRecentUnsortedQueriesUnsortedNewestFirst(t *testing.T) {
	stub := newStubUpstream(t)
	ts := httptest.NewServer(stub)
	defer ts.Close()
	c := newTestClient(t, ts.URL, time.Second)
	ctx := context.Background()

	first, _ := c.CreateBookmark(ctx, CreateBookmarkInput{URL: "https://a.example.com"})
	second, _ := c.CreateBookmark(ctx, CreateBookmarkInput{URL: "https://b.example.com"})

	res, err := c.RecentUnsorted(ctx, 10, 0)
	if err != nil {
		t.Fatalf("recent unsorted: %v", err)
	}
	if len(res.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(res.Items))
	}
	if res.Items[0].ID != second.ID || res.Items[1].ID != first.ID {
		t.Fatalf("expected newest first, got %d then %d", res.Items[0].ID, res.Items[1].ID)
	}
}

func TestListCollectionsEmptyIsNotAnError(t *testing.T) {
	stub := newStubUpstream(t)
	ts := httptest.NewServer(stub)
	defer ts.Close()
	c := newTestClient(t, ts.URL, time.Second)

	collections, err := c.ListCollections(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if collections == nil || len(collections) != 0 {
		t.Fatalf("expected empty list, got %v", collections)
	}
}

func TestListCollectionsMergesChildren(t *testing.T) {
	stub := newStubUpstream(t)
	stub.roots = []map[string]any{{"_id": 1, "title": "root"}}
	stub.children = []map[string]any{{"_id": 2, "title": "child", "parent": map[string]any{"$id": 1}}}
	ts := httptest.NewServer(stub)
	defer ts.Close()
	c := newTestClient(t, ts.URL, time.Second)

	collections, err := c.ListCollections(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(collections) != 2 {
		t.Fatalf("expected 2 collections, got %d", len(collections))
	}
	if collections[1].ParentID == nil || *collections[1].ParentID != 1 {
		t.Fatalf("expected child parent id 1, got %v", collections[1].ParentID)
	}
}

func TestStatusMappingIsDeterministic(t *testing.T) {
	cases := []struct {
		status int
		kind   Kind
	}{
		{400, KindUpstream},
		{401, KindUnauthorized},
		{403, KindUpstream},
		{404, KindNotFound},
		{429, KindRateLimited},
		{500, KindUpstream},
		{503, KindUpstream},
	}
	for _, tc := range cases {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, tc.status, map[string]any{"result": false, "errorMessage": "boom"})
		}))
		c := newTestClient(t, ts.URL, time.Second)

		// Same status must map identically on every trial.
		for trial := 0; trial < 2; trial++ {
			_, err := c.GetBookmark(context.Background(), 1)
			if err == nil {
				t.Fatalf("status %d: expected error", tc.status)
			}
			if !IsKind(err, tc.kind) {
				t.Fatalf("status %d trial %d: expected %s, got %v", tc.status, trial, tc.kind, err)
			}
			var ae *Error
			if !errors.As(err, &ae) {
				t.Fatalf("status %d: expected *Error, got %T", tc.status, err)
			}
			if ae.Status != tc.status {
				t.Fatalf("status %d: error should carry raw status, got %d", tc.status, ae.Status)
			}
			if ae.Message != "boom" {
				t.Fatalf("status %d: expected upstream message, got %q", tc.status, ae.Message)
			}
		}
		ts.Close()
	}
}

func TestTimeoutYieldsGatewayTimeout(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
	}))
	defer ts.Close()
	c := newTestClient(t, ts.URL, 30*time.Millisecond)

	_, err := c.GetBookmark(context.Background(), 1)
	if !IsKind(err, KindGatewayTimeout) {
		t.Fatalf("expected gateway_timeout, got %v", err)
	}
	if IsKind(err, KindUpstream) {
		t.Fatalf("timeout must not classify as upstream_error")
	}
}

func TestReadRetriedOnceOnTransportFailure(t *testing.T) {
	var mu sync.Mutex
	attempts := 0
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		attempts++
		first := attempts == 1
		mu.Unlock()
		if first {
			panic(http.ErrAbortHandler)
		}
		writeJSON(w, 200, map[string]any{"result": true, "item": map[string]any{"_id": 7, "link": "https://example.com"}})
	}))
	defer ts.Close()
	c := newTestClient(t, ts.URL, time.Second)

	got, err := c.GetBookmark(context.Background(), 7)
	if err != nil {
		t.Fatalf("expected retry to succeed, got %v", err)
	}
	if got.ID != 7 {
		t.Fatalf("unexpected bookmark %+v", got)
	}
	mu.Lock()
	defer mu.Unlock()
	if attempts != 2 {
		t.Fatalf("expected 2 attempts, got %d", attempts)
	}
}

func TestWriteNeverRetried(t *testing.T) {
	var mu sync.Mutex
	attempts := 0
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		attempts++
		mu.Unlock()
		panic(http.ErrAbortHandler)
	}))
	defer ts.Close()
	c := newTestClient(t, ts.URL, time.Second)

	_, err := c.CreateBookmark(context.Background(), CreateBookmarkInput{URL: "https://example.com"})
	if !IsKind(err, KindTransient) {
		t.Fatalf("expected transient_network, got %v", err)
	}
	mu.Lock()
	defer mu.Unlock()
	if attempts != 1 {
		t.Fatalf("write retried: %d attempts", attempts)
	}
}

func TestCanceledCallIsNotRetried(t *testing.T) {
	var mu sync.Mutex
	attempts := 0
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		attempts++
		mu.Unlock()
		time.Sleep(300 * time.Millisecond)
	}))
	defer ts.Close()
	c := newTestClient(t, ts.URL, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	_, err := c.GetBookmark(ctx, 1)
	if !IsKind(err, KindCanceled) {
		t.Fatalf("expected canceled, got %v", err)
	}
	mu.Lock()
	defer mu.Unlock()
	if attempts != 1 {
		t.Fatalf("canceled read retried: %d attempts", attempts)
	}
}

func TestClientPacesConsecutiveCalls(t *testing.T) {
	stub := newStubUpstream(t)
	ts := httptest.NewServer(stub)
	defer ts.Close()

	const interval = 25 * time.Millisecond
	c, err := NewClient(Config{
		Token:        testToken,
		BaseURL:      ts.URL,
		Timeout:      time.Second,
		RateInterval: interval,
		Logger:       quietLogger(),
	})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	start := time.Now()
	for i := 0; i < 3; i++ {
		if _, err := c.GetBookmark(context.Background(), 1); !IsKind(err, KindNotFound) {
			t.Fatalf("call %d: %v", i, err)
		}
	}
	if elapsed := time.Since(start); elapsed < 2*interval {
		t.Fatalf("3 calls finished in %s, want at least %s", elapsed, 2*interval)
	}
}
