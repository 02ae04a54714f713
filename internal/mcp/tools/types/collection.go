package types

type CollectionResult struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Public      bool   `json:"public"`
	Count       int    `json:"count"`
	ParentID    *int64 `json:"parent_id,omitempty"`
	Created     string `json:"created,omitempty"`
	LastUpdate  string `json:"last_update,omitempty"`
}

type CollectionList struct {
	Collections []CollectionResult `json:"collections"`
	Count       int                `json:"count"`
}
