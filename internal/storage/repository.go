package storage

import "github.com/shhac/satchel/internal/domain"

// Store defines the operation surface exposed upward to a protocol
// front-end: one function per operation, taking plain structured input
// and returning the assembled external shape or a typed error.
type Store interface {
	// Collection operations
	ListCollections() ([]domain.Collection, error)
	GetCollection(id string) (*domain.Collection, error)
	CreateCollection(name, description string) (*domain.Collection, error)

	// Folder operations
	CreateFolder(collectionID string, in domain.FolderInput) (*domain.Folder, error)
	GetFolder(collectionID, folderID string) (*domain.Folder, error)
	UpdateFolder(collectionID, folderID string, up domain.FolderUpdate) (*domain.Folder, error)
	DeleteFolder(collectionID, folderID string) error

	// Request operations
	CreateRequest(collectionID string, in domain.RequestInput) (*domain.Request, error)
	GetRequest(collectionID, requestID string) (*domain.Request, error)
	UpdateRequest(collectionID, requestID string, up domain.RequestUpdate) (*domain.Request, error)
	DeleteRequest(collectionID, requestID string) error

	// Environment operations
	GetEnvironment(collectionID string) (*domain.Environment, error)
	SetVariable(collectionID, key, value string) (*domain.Environment, error)
	GetVariable(collectionID, key string) (string, bool, error)

	// Maintenance
	EnsureBaseEnvironments() (int, error)
	Fingerprint() (string, error)
}
