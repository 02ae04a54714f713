package raindrop

import "strings"

// UnsortedCollection is the distinguished collection holding bookmarks not
// yet filed anywhere else.
const UnsortedCollection int64 = -1

// Bookmark is the adapter-side view of a saved link. Timestamps are
// upstream-assigned ISO-8601 strings and are read-only here.
type Bookmark struct {
	ID           int64
	URL          string
	Title        string
	Excerpt      string
	Note         string
	Tags         []string
	CollectionID int64
	Domain       string
	Created      string
	LastUpdate   string
}

// Collection is a named grouping of bookmarks. ParentID is nil for root
// collections; nesting depth is the upstream's concern.
type Collection struct {
	ID          int64
	Title       string
	Description string
	Public      bool
	Count       int
	ParentID    *int64
	Created     string
	LastUpdate  string
}

// Filter is the ephemeral query object for bookmark searches. Zero values
// mean "not filtered". Collection 0 searches across all collections.
type Filter struct {
	Term       string
	Collection int64
	Tags       []string
	Sort       string
	Order      string
	Page       int
	PerPage    int
}

// SearchResult carries one page of bookmarks plus pagination metadata.
type SearchResult struct {
	Items   []Bookmark
	Count   int
	Total   int
	Page    int
	PerPage int
	HasMore bool
}

// CreateBookmarkInput holds the mutable fields accepted on create. URL is
// the only required field; the upstream derives title and excerpt when they
// are omitted.
type CreateBookmarkInput struct {
	URL          string
	Title        string
	Excerpt      string
	Note         string
	Tags         []string
	CollectionID int64
}

// UpdateBookmarkInput holds the fields of an update. A nil pointer leaves
// the field untouched upstream; a supplied field fully replaces the previous
// value (tags included).
type UpdateBookmarkInput struct {
	Title        *string
	Excerpt      *string
	Note         *string
	Tags         *[]string
	CollectionID *int64
}

// Empty reports whether the update carries no fields at all.
func (in UpdateBookmarkInput) Empty() bool {
	return in.Title == nil && in.Excerpt == nil && in.Note == nil &&
		in.Tags == nil && in.CollectionID == nil
}

// CreateCollectionInput holds the fields accepted when creating a collection.
type CreateCollectionInput struct {
	Title       string
	Description string
	Public      bool
	ParentID    *int64
}

// Upstream wire shapes. Raindrop identifies entities with "_id" and wraps
// references as {"$id": n}.

type wireRef struct {
	ID int64 `json:"$id"`
}

type wireBookmark struct {
	ID         int64    `json:"_id"`
	Link       string   `json:"link"`
	Title      string   `json:"title"`
	Excerpt    string   `json:"excerpt"`
	Note       string   `json:"note"`
	Tags       []string `json:"tags"`
	Domain     string   `json:"domain"`
	Created    string   `json:"created"`
	LastUpdate string   `json:"lastUpdate"`
	Collection wireRef  `json:"collection"`
}

type wireCollection struct {
	ID          int64    `json:"_id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Public      bool     `json:"public"`
	Count       int      `json:"count"`
	Parent      *wireRef `json:"parent,omitempty"`
	Created     string   `json:"created"`
	LastUpdate  string   `json:"lastUpdate"`
}

type bookmarkEnvelope struct {
	Result bool         `json:"result"`
	Item   wireBookmark `json:"item"`
}

type bookmarkListEnvelope struct {
	Result bool           `json:"result"`
	Items  []wireBookmark `json:"items"`
	Count  int            `json:"count"`
	Total  int            `json:"total"`
}

type collectionEnvelope struct {
	Result bool           `json:"result"`
	Item   wireCollection `json:"item"`
}

type collectionListEnvelope struct {
	Result bool             `json:"result"`
	Items  []wireCollection `json:"items"`
}

func (w wireBookmark) toBookmark() Bookmark {
	tags := w.Tags
	if tags == nil {
		tags = []string{}
	}
	return Bookmark{
		ID:           w.ID,
		URL:          w.Link,
		Title:        w.Title,
		Excerpt:      w.Excerpt,
		Note:         w.Note,
		Tags:         tags,
		CollectionID: w.Collection.ID,
		Domain:       w.Domain,
		Created:      w.Created,
		LastUpdate:   w.LastUpdate,
	}
}

func (w wireCollection) toCollection() Collection {
	var parent *int64
	if w.Parent != nil {
		id := w.Parent.ID
		parent = &id
	}
	return Collection{
		ID:          w.ID,
		Title:       w.Title,
		Description: w.Description,
		Public:      w.Public,
		Count:       w.Count,
		ParentID:    parent,
		Created:     w.Created,
		LastUpdate:  w.LastUpdate,
	}
}

func (in CreateBookmarkInput) wireBody() map[string]any {
	body := map[string]any{"link": in.URL}
	if in.Title != "" {
		body["title"] = truncate(in.Title, maxTitleLen)
	}
	if in.Excerpt != "" {
		body["excerpt"] = truncate(in.Excerpt, maxExcerptLen)
	}
	if in.Note != "" {
		body["note"] = truncate(in.Note, maxNoteLen)
	}
	if tags := SanitizeTags(in.Tags); len(tags) > 0 {
		body["tags"] = tags
	}
	// The unsorted collection is the upstream default when no reference is
	// sent, so only a non-zero id is encoded.
	if in.CollectionID != 0 {
		body["collection"] = wireRef{ID: in.CollectionID}
	}
	return body
}

func (in UpdateBookmarkInput) wireBody() map[string]any {
	body := map[string]any{}
	if in.Title != nil {
		body["title"] = truncate(*in.Title, maxTitleLen)
	}
	if in.Excerpt != nil {
		body["excerpt"] = truncate(*in.Excerpt, maxExcerptLen)
	}
	if in.Note != nil {
		body["note"] = truncate(*in.Note, maxNoteLen)
	}
	if in.Tags != nil {
		body["tags"] = SanitizeTags(*in.Tags)
	}
	if in.CollectionID != nil {
		body["collection"] = wireRef{ID: *in.CollectionID}
	}
	return body
}

func (in CreateCollectionInput) wireBody() map[string]any {
	body := map[string]any{"title": truncate(strings.TrimSpace(in.Title), maxCollectionTitleLen)}
	if in.Description != "" {
		body["description"] = truncate(in.Description, maxDescriptionLen)
	}
	if in.Public {
		body["public"] = true
	}
	if in.ParentID != nil {
		body["parent"] = wireRef{ID: *in.ParentID}
	}
	return body
}
