package storage

// Kind discriminates record types within a data file. Records of an
// unrelated kind sharing a file are skipped on load rather than treated
// as corruption.
type Kind string

const (
	KindWorkspace   Kind = "workspace"
	KindFolder      Kind = "request_group"
	KindRequest     Kind = "request"
	KindEnvironment Kind = "environment"
	KindProject     Kind = "project"
)

// ScopeCollection marks workspaces that are true collections; workspaces
// with any other scope are ignored by the collection operations.
const ScopeCollection = "collection"

// BaseEnvironmentName is the name given to every auto-created environment.
const BaseEnvironmentName = "Base Environment"

// DefaultProjectID owns new collections when no override is configured
// and the projects file is empty or absent.
const DefaultProjectID = "proj_default"

type workspaceRecord struct {
	ID          string `json:"id"`
	Kind        Kind   `json:"kind"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Scope       string `json:"scope"`
	ProjectID   string `json:"projectId"`
	Created     int64  `json:"created"`
	Modified    int64  `json:"modified"`
}

func (workspaceRecord) recordKind() Kind { return KindWorkspace }

type folderRecord struct {
	ID          string  `json:"id"`
	Kind        Kind    `json:"kind"`
	ParentID    string  `json:"parentId"` // folder id or owning workspace id
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	SortKey     float64 `json:"sortKey"`
	Created     int64   `json:"created"`
	Modified    int64   `json:"modified"`
}

func (folderRecord) recordKind() Kind { return KindFolder }

type headerRecord struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type requestRecord struct {
	ID          string         `json:"id"`
	Kind        Kind           `json:"kind"`
	ParentID    string         `json:"parentId"` // folder id or owning workspace id
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Method      string         `json:"method"`
	URL         string         `json:"url"`
	Headers     []headerRecord `json:"headers,omitempty"`
	Body        string         `json:"body,omitempty"`

	// Script fields are stored as absent, never as empty strings.
	PreRequestScript   string `json:"preRequestScript,omitempty"`
	PostResponseScript string `json:"postResponseScript,omitempty"`

	// nil means "use the default" (true); the converter fills defaults in.
	FollowRedirects *bool `json:"followRedirects,omitempty"`
	VerifyTLS       *bool `json:"verifyTls,omitempty"`

	SortKey  float64 `json:"sortKey"`
	Created  int64   `json:"created"`
	Modified int64   `json:"modified"`
}

func (requestRecord) recordKind() Kind { return KindRequest }

type environmentRecord struct {
	ID       string            `json:"id"`
	Kind     Kind              `json:"kind"`
	ParentID string            `json:"parentId"` // owning workspace id
	Name     string            `json:"name"`
	Data     map[string]string `json:"data"`
	Created  int64             `json:"created"`
	Modified int64             `json:"modified"`
}

func (environmentRecord) recordKind() Kind { return KindEnvironment }

type projectRecord struct {
	ID   string `json:"id"`
	Kind Kind   `json:"kind"`
	Name string `json:"name"`
}

func (projectRecord) recordKind() Kind { return KindProject }
