package domain

// Header is a single request header.
type Header struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// RequestSettings holds protocol and security options for a request.
type RequestSettings struct {
	FollowRedirects bool `json:"followRedirects"`
	VerifyTLS       bool `json:"verifyTls"`
}

// Request is a single HTTP call definition.
type Request struct {
	ID                 string          `json:"id"`
	CollectionID       string          `json:"collectionId"`
	FolderID           string          `json:"folderId,omitempty"` // empty = direct child of the collection
	Name               string          `json:"name"`
	Description        string          `json:"description,omitempty"`
	Method             string          `json:"method"`
	URL                string          `json:"url"`
	Headers            []Header        `json:"headers"`
	Body               string          `json:"body,omitempty"`
	PreRequestScript   string          `json:"preRequestScript,omitempty"`
	PostResponseScript string          `json:"postResponseScript,omitempty"`
	Settings           RequestSettings `json:"settings"`
	SortKey            float64         `json:"sortKey"`
	Created            int64           `json:"created"`
	Modified           int64           `json:"modified"`
}

// RequestInput holds the fields for creating a request. Empty script
// fields are stored as absent, not as empty strings.
type RequestInput struct {
	Name               string
	Description        string
	Method             string
	URL                string
	Headers            []Header
	Body               string
	FolderID           string // empty or the collection id = direct child of the collection
	PreRequestScript   string
	PostResponseScript string
	Settings           *RequestSettings
}

// RequestUpdate holds partial-update fields for a request. Every field is
// independently optional: a nil pointer leaves the field unchanged. A
// pointer to the empty string clears Description-like fields; for the
// script fields clearing removes the stored property rather than keeping
// an empty string. A nil Headers slice leaves headers unchanged; a non-nil
// empty slice replaces them with none.
type RequestUpdate struct {
	Name               *string
	Description        *string
	Method             *string
	URL                *string
	Headers            []Header // nil = unchanged, non-nil (even empty) replaces
	Body               *string
	FolderID           *string
	PreRequestScript   *string
	PostResponseScript *string
	Settings           *RequestSettings
}
