package domain

// Collection is the externally visible shape of a collection: the workspace
// itself plus its owned folders, requests, and base environment.
type Collection struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	Folders     []Folder     `json:"folders"`
	Requests    []Request    `json:"requests"`
	Environment *Environment `json:"environment,omitempty"`
	Created     int64        `json:"created"`
	Modified    int64        `json:"modified"`
}

// Folder is a named grouping node nested under a collection or under
// another folder of the same collection.
type Folder struct {
	ID           string  `json:"id"`
	CollectionID string  `json:"collectionId"`
	ParentID     string  `json:"parentId,omitempty"` // empty = direct child of the collection
	Name         string  `json:"name"`
	Description  string  `json:"description,omitempty"`
	SortKey      float64 `json:"sortKey"`
	Created      int64   `json:"created"`
	Modified     int64   `json:"modified"`
}

// FolderInput holds the fields for creating a folder.
type FolderInput struct {
	Name        string
	Description string
	ParentID    string // empty or the collection id = direct child of the collection
}

// FolderUpdate holds partial-update fields for a folder. A nil pointer
// leaves the field unchanged; a pointer to the empty string clears
// Description or moves the folder back to the collection root for ParentID.
type FolderUpdate struct {
	Name        *string
	Description *string
	ParentID    *string
}
