package types

type BookmarkResult struct {
	ID           int64    `json:"id"`
	Title        string   `json:"title"`
	URL          string   `json:"url"`
	Excerpt      string   `json:"excerpt,omitempty"`
	Note         string   `json:"note,omitempty"`
	Tags         []string `json:"tags"`
	Created      string   `json:"created,omitempty"`
	LastUpdate   string   `json:"last_update,omitempty"`
	Domain       string   `json:"domain,omitempty"`
	CollectionID int64    `json:"collection_id"`
}

type Pagination struct {
	Count   int  `json:"count"`
	Total   int  `json:"total"`
	Page    int  `json:"page"`
	PerPage int  `json:"per_page"`
	HasMore bool `json:"has_more"`
}

type SearchResults struct {
	Items      []BookmarkResult `json:"items"`
	Pagination Pagination       `json:"pagination"`
}

type DeleteAck struct {
	BookmarkID int64 `json:"bookmark_id"`
	Deleted    bool  `json:"deleted"`
}
