package storage

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/shhac/satchel/internal/domain"
	apperrors "github.com/shhac/satchel/internal/errors"
)

// FileStore implements Store over four flat NDJSON files acting as one
// logical database. Every operation is a full-file read, an in-memory
// transform, and a whole-file rewrite; there is no cache, no lock, and
// no versioning. The store assumes a single authoritative writer process;
// a concurrent writer's rewrite silently wins. That limitation is
// accepted, not worked around.
type FileStore struct {
	dir       string
	projectID string // optional override for the owning project of new collections
	logger    *slog.Logger
}

var _ Store = (*FileStore)(nil)

// NewFileStore creates a file-backed store rooted at dir. projectID, when
// non-empty, overrides the owning project assigned to new collections.
func NewFileStore(dir, projectID string, logger *slog.Logger) *FileStore {
	return &FileStore{
		dir:       dir,
		projectID: projectID,
		logger:    logger,
	}
}

// File loading and saving

func (s *FileStore) loadWorkspaces() ([]workspaceRecord, error) {
	return readRecords[workspaceRecord](filepath.Join(s.dir, workspacesFile))
}

func (s *FileStore) saveWorkspaces(recs []workspaceRecord) error {
	return writeRecords(filepath.Join(s.dir, workspacesFile), recs)
}

func (s *FileStore) loadFolders() ([]folderRecord, error) {
	return readRecords[folderRecord](filepath.Join(s.dir, foldersFile))
}

func (s *FileStore) saveFolders(recs []folderRecord) error {
	return writeRecords(filepath.Join(s.dir, foldersFile), recs)
}

func (s *FileStore) loadRequests() ([]requestRecord, error) {
	return readRecords[requestRecord](filepath.Join(s.dir, requestsFile))
}

func (s *FileStore) saveRequests(recs []requestRecord) error {
	return writeRecords(filepath.Join(s.dir, requestsFile), recs)
}

func (s *FileStore) loadEnvironments() ([]environmentRecord, error) {
	return readRecords[environmentRecord](filepath.Join(s.dir, environmentsFile))
}

func (s *FileStore) saveEnvironments(recs []environmentRecord) error {
	return writeRecords(filepath.Join(s.dir, environmentsFile), recs)
}

func (s *FileStore) loadProjects() ([]projectRecord, error) {
	return readRecords[projectRecord](filepath.Join(s.dir, projectsFile))
}

// Collection operations

// ListCollections assembles every collection-scoped workspace in on-disk
// order. Missing base environments are created as part of the listing;
// all such creations are persisted in a single environments-file rewrite.
func (s *FileStore) ListCollections() ([]domain.Collection, error) {
	workspaces, err := s.loadWorkspaces()
	if err != nil {
		return nil, err
	}
	folders, err := s.loadFolders()
	if err != nil {
		return nil, err
	}
	requests, err := s.loadRequests()
	if err != nil {
		return nil, err
	}
	environments, err := s.loadEnvironments()
	if err != nil {
		return nil, err
	}

	tree := newFolderTree(folders)

	environments, created := ensureEnvironmentRecords(workspaces, environments)
	if created > 0 {
		if err := s.saveEnvironments(environments); err != nil {
			return nil, err
		}
		s.logger.Debug("created missing base environments", slog.Int("count", created))
	}

	collections := []domain.Collection{}
	for _, ws := range workspaces {
		if ws.Scope != ScopeCollection {
			continue
		}
		collections = append(collections, assembleCollection(ws, folders, requests, environments, tree))
	}

	s.logger.Debug("listed collections", slog.Int("count", len(collections)))
	return collections, nil
}

// GetCollection assembles a single collection. Absence is reported as
// (nil, nil), not as an error.
func (s *FileStore) GetCollection(id string) (*domain.Collection, error) {
	workspaces, err := s.loadWorkspaces()
	if err != nil {
		return nil, err
	}

	idx := findWorkspace(workspaces, id)
	if idx < 0 {
		return nil, nil
	}
	ws := workspaces[idx]

	folders, err := s.loadFolders()
	if err != nil {
		return nil, err
	}
	requests, err := s.loadRequests()
	if err != nil {
		return nil, err
	}
	environments, err := s.loadEnvironments()
	if err != nil {
		return nil, err
	}

	environments, created := ensureEnvironmentRecords([]workspaceRecord{ws}, environments)
	if created > 0 {
		if err := s.saveEnvironments(environments); err != nil {
			return nil, err
		}
	}

	tree := newFolderTree(folders)
	collection := assembleCollection(ws, folders, requests, environments, tree)
	return &collection, nil
}

// CreateCollection writes a new collection-scoped workspace and its paired
// empty base environment. The owning project is the configured override,
// else the first record of the projects file, else a fixed default.
func (s *FileStore) CreateCollection(name, description string) (*domain.Collection, error) {
	if strings.TrimSpace(name) == "" {
		return nil, apperrors.ValidationError{Field: "name", Message: "name must not be empty"}
	}

	projectID, err := s.resolveProjectID()
	if err != nil {
		return nil, err
	}

	workspaces, err := s.loadWorkspaces()
	if err != nil {
		return nil, err
	}
	environments, err := s.loadEnvironments()
	if err != nil {
		return nil, err
	}

	now := nowMillis()
	ws := workspaceRecord{
		ID:          newID(prefixWorkspace),
		Kind:        KindWorkspace,
		Name:        name,
		Description: description,
		Scope:       ScopeCollection,
		ProjectID:   projectID,
		Created:     now,
		Modified:    now,
	}
	env := newEnvironmentRecord(ws.ID, now)

	workspaces = append(workspaces, ws)
	environments = append(environments, env)

	if err := s.saveWorkspaces(workspaces); err != nil {
		return nil, err
	}
	if err := s.saveEnvironments(environments); err != nil {
		return nil, err
	}

	s.logger.Debug("created collection",
		slog.String("id", ws.ID),
		slog.String("name", name),
		slog.String("project", projectID))

	external := toEnvironment(env)
	collection := toCollection(ws, nil, nil, &external)
	return &collection, nil
}

// resolveProjectID picks the owning project for a new collection.
func (s *FileStore) resolveProjectID() (string, error) {
	if s.projectID != "" {
		return s.projectID, nil
	}
	projects, err := s.loadProjects()
	if err != nil {
		return "", err
	}
	if len(projects) > 0 {
		return projects[0].ID, nil
	}
	return DefaultProjectID, nil
}

// Folder operations

// CreateFolder adds a folder under the collection or under an existing
// folder of the same collection.
func (s *FileStore) CreateFolder(collectionID string, in domain.FolderInput) (*domain.Folder, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, apperrors.ValidationError{Field: "name", Message: "name must not be empty"}
	}

	workspaces, err := s.loadWorkspaces()
	if err != nil {
		return nil, err
	}
	wsIdx := findWorkspace(workspaces, collectionID)
	if wsIdx < 0 {
		return nil, fmt.Errorf("%s: %w", collectionID, apperrors.ErrCollectionNotFound)
	}

	folders, err := s.loadFolders()
	if err != nil {
		return nil, err
	}
	tree := newFolderTree(folders)

	parentID, err := tree.resolveParent(collectionID, in.ParentID)
	if err != nil {
		return nil, err
	}

	now := nowMillis()
	rec := folderRecord{
		ID:          newID(prefixFolder),
		Kind:        KindFolder,
		ParentID:    parentID,
		Name:        in.Name,
		Description: in.Description,
		SortKey:     sortKeyFor(now),
		Created:     now,
		Modified:    now,
	}
	folders = append(folders, rec)

	if err := s.saveFolders(folders); err != nil {
		return nil, err
	}
	if err := s.touchWorkspace(workspaces, wsIdx); err != nil {
		return nil, err
	}

	s.logger.Debug("created folder",
		slog.String("id", rec.ID),
		slog.String("collection", collectionID),
		slog.String("parent", parentID))

	folder := toFolder(rec, collectionID)
	return &folder, nil
}

// GetFolder returns a folder after checking it belongs to the collection.
func (s *FileStore) GetFolder(collectionID, folderID string) (*domain.Folder, error) {
	workspaces, err := s.loadWorkspaces()
	if err != nil {
		return nil, err
	}
	if findWorkspace(workspaces, collectionID) < 0 {
		return nil, fmt.Errorf("%s: %w", collectionID, apperrors.ErrCollectionNotFound)
	}

	folders, err := s.loadFolders()
	if err != nil {
		return nil, err
	}
	tree := newFolderTree(folders)

	rec, ok := tree.folder(folderID)
	if !ok || !tree.belongsTo(folderID, collectionID) {
		return nil, fmt.Errorf("%s: %w", folderID, apperrors.ErrFolderNotFound)
	}

	folder := toFolder(rec, collectionID)
	return &folder, nil
}

// UpdateFolder applies a partial update. A reparent runs the cycle guard
// before anything is persisted, and the sort key is recomputed so the
// most recently touched folder sorts first.
func (s *FileStore) UpdateFolder(collectionID, folderID string, up domain.FolderUpdate) (*domain.Folder, error) {
	if up.Name != nil && strings.TrimSpace(*up.Name) == "" {
		return nil, apperrors.ValidationError{Field: "name", Message: "name must not be empty"}
	}

	workspaces, err := s.loadWorkspaces()
	if err != nil {
		return nil, err
	}
	wsIdx := findWorkspace(workspaces, collectionID)
	if wsIdx < 0 {
		return nil, fmt.Errorf("%s: %w", collectionID, apperrors.ErrCollectionNotFound)
	}

	folders, err := s.loadFolders()
	if err != nil {
		return nil, err
	}
	tree := newFolderTree(folders)

	idx := -1
	for i, f := range folders {
		if f.ID == folderID {
			idx = i
			break
		}
	}
	if idx < 0 || !tree.belongsTo(folderID, collectionID) {
		return nil, fmt.Errorf("%s: %w", folderID, apperrors.ErrFolderNotFound)
	}

	rec := folders[idx]
	if up.Name != nil {
		rec.Name = *up.Name
	}
	if up.Description != nil {
		rec.Description = *up.Description
	}
	if up.ParentID != nil {
		parentID, err := tree.resolveParent(collectionID, *up.ParentID)
		if err != nil {
			return nil, err
		}
		if parentID != collectionID {
			if err := tree.ensureNoCycle(folderID, parentID); err != nil {
				return nil, err
			}
		}
		rec.ParentID = parentID
	}

	rec.Modified = nowMillis()
	rec.SortKey = sortKeyFor(rec.Modified)
	folders[idx] = rec

	if err := s.saveFolders(folders); err != nil {
		return nil, err
	}
	if err := s.touchWorkspace(workspaces, wsIdx); err != nil {
		return nil, err
	}

	s.logger.Debug("updated folder",
		slog.String("id", folderID),
		slog.String("collection", collectionID))

	folder := toFolder(rec, collectionID)
	return &folder, nil
}

// DeleteFolder removes the folder and, transitively, every folder and
// request parented under it. The folders file is rewritten first, then
// the requests file; there is no cross-file transaction, so a failure
// between the two writes leaves requests orphaned under a deleted folder
// id. That inconsistency window is a documented property of the flat-file
// layout, not silently patched over.
func (s *FileStore) DeleteFolder(collectionID, folderID string) error {
	workspaces, err := s.loadWorkspaces()
	if err != nil {
		return err
	}
	wsIdx := findWorkspace(workspaces, collectionID)
	if wsIdx < 0 {
		return fmt.Errorf("%s: %w", collectionID, apperrors.ErrCollectionNotFound)
	}

	folders, err := s.loadFolders()
	if err != nil {
		return err
	}
	tree := newFolderTree(folders)

	if !tree.belongsTo(folderID, collectionID) {
		return fmt.Errorf("%s: %w", folderID, apperrors.ErrFolderNotFound)
	}

	doomed := tree.descendantIDs(folderID)

	kept := folders[:0]
	for _, f := range folders {
		if !doomed[f.ID] {
			kept = append(kept, f)
		}
	}

	requests, err := s.loadRequests()
	if err != nil {
		return err
	}
	keptRequests := requests[:0]
	removedRequests := 0
	for _, r := range requests {
		if doomed[r.ParentID] {
			removedRequests++
			continue
		}
		keptRequests = append(keptRequests, r)
	}

	if err := s.saveFolders(kept); err != nil {
		return err
	}
	if err := s.saveRequests(keptRequests); err != nil {
		return err
	}
	if err := s.touchWorkspace(workspaces, wsIdx); err != nil {
		return err
	}

	s.logger.Debug("deleted folder subtree",
		slog.String("id", folderID),
		slog.String("collection", collectionID),
		slog.Int("folders", len(doomed)),
		slog.Int("requests", removedRequests))

	return nil
}

// Request operations

// CreateRequest adds a request under the collection or under one of its
// folders. The method is normalized to upper case and empty script fields
// are stored as absent.
func (s *FileStore) CreateRequest(collectionID string, in domain.RequestInput) (*domain.Request, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, apperrors.ValidationError{Field: "name", Message: "name must not be empty"}
	}

	workspaces, err := s.loadWorkspaces()
	if err != nil {
		return nil, err
	}
	wsIdx := findWorkspace(workspaces, collectionID)
	if wsIdx < 0 {
		return nil, fmt.Errorf("%s: %w", collectionID, apperrors.ErrCollectionNotFound)
	}

	folders, err := s.loadFolders()
	if err != nil {
		return nil, err
	}
	tree := newFolderTree(folders)

	parentID, err := tree.resolveParent(collectionID, in.FolderID)
	if err != nil {
		return nil, err
	}

	method := strings.ToUpper(strings.TrimSpace(in.Method))
	if method == "" {
		method = "GET"
	}

	headers := make([]headerRecord, 0, len(in.Headers))
	for _, h := range in.Headers {
		headers = append(headers, headerRecord{Name: h.Name, Value: h.Value})
	}

	now := nowMillis()
	rec := requestRecord{
		ID:                 newID(prefixRequest),
		Kind:               KindRequest,
		ParentID:           parentID,
		Name:               in.Name,
		Description:        in.Description,
		Method:             method,
		URL:                in.URL,
		Headers:            headers,
		Body:               in.Body,
		PreRequestScript:   in.PreRequestScript,
		PostResponseScript: in.PostResponseScript,
		SortKey:            sortKeyFor(now),
		Created:            now,
		Modified:           now,
	}
	if in.Settings != nil {
		rec.FollowRedirects = boolPtr(in.Settings.FollowRedirects)
		rec.VerifyTLS = boolPtr(in.Settings.VerifyTLS)
	}

	requests, err := s.loadRequests()
	if err != nil {
		return nil, err
	}
	requests = append(requests, rec)

	if err := s.saveRequests(requests); err != nil {
		return nil, err
	}
	if err := s.touchWorkspace(workspaces, wsIdx); err != nil {
		return nil, err
	}

	s.logger.Debug("created request",
		slog.String("id", rec.ID),
		slog.String("collection", collectionID),
		slog.String("method", method))

	request := toRequest(rec, collectionID)
	return &request, nil
}

// GetRequest returns a request after checking it belongs to the collection.
func (s *FileStore) GetRequest(collectionID, requestID string) (*domain.Request, error) {
	workspaces, err := s.loadWorkspaces()
	if err != nil {
		return nil, err
	}
	if findWorkspace(workspaces, collectionID) < 0 {
		return nil, fmt.Errorf("%s: %w", collectionID, apperrors.ErrCollectionNotFound)
	}

	requests, err := s.loadRequests()
	if err != nil {
		return nil, err
	}
	folders, err := s.loadFolders()
	if err != nil {
		return nil, err
	}
	tree := newFolderTree(folders)

	for _, r := range requests {
		if r.ID == requestID && tree.requestBelongsTo(r.ParentID, collectionID) {
			request := toRequest(r, collectionID)
			return &request, nil
		}
	}
	return nil, fmt.Errorf("%s: %w", requestID, apperrors.ErrRequestNotFound)
}

// UpdateRequest applies a partial update: nil pointers leave fields
// unchanged, a pointer to the empty string clears the script fields
// entirely, and a folder reassignment re-resolves the parent through the
// same workspace-owned resolution folders use.
func (s *FileStore) UpdateRequest(collectionID, requestID string, up domain.RequestUpdate) (*domain.Request, error) {
	if up.Name != nil && strings.TrimSpace(*up.Name) == "" {
		return nil, apperrors.ValidationError{Field: "name", Message: "name must not be empty"}
	}

	workspaces, err := s.loadWorkspaces()
	if err != nil {
		return nil, err
	}
	wsIdx := findWorkspace(workspaces, collectionID)
	if wsIdx < 0 {
		return nil, fmt.Errorf("%s: %w", collectionID, apperrors.ErrCollectionNotFound)
	}

	folders, err := s.loadFolders()
	if err != nil {
		return nil, err
	}
	tree := newFolderTree(folders)

	requests, err := s.loadRequests()
	if err != nil {
		return nil, err
	}

	idx := -1
	for i, r := range requests {
		if r.ID == requestID && tree.requestBelongsTo(r.ParentID, collectionID) {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, fmt.Errorf("%s: %w", requestID, apperrors.ErrRequestNotFound)
	}

	rec := requests[idx]
	if up.Name != nil {
		rec.Name = *up.Name
	}
	if up.Description != nil {
		rec.Description = *up.Description
	}
	if up.Method != nil {
		rec.Method = strings.ToUpper(strings.TrimSpace(*up.Method))
	}
	if up.URL != nil {
		rec.URL = *up.URL
	}
	if up.Headers != nil {
		headers := make([]headerRecord, 0, len(up.Headers))
		for _, h := range up.Headers {
			headers = append(headers, headerRecord{Name: h.Name, Value: h.Value})
		}
		rec.Headers = headers
	}
	if up.Body != nil {
		rec.Body = *up.Body
	}
	if up.PreRequestScript != nil {
		rec.PreRequestScript = *up.PreRequestScript
	}
	if up.PostResponseScript != nil {
		rec.PostResponseScript = *up.PostResponseScript
	}
	if up.Settings != nil {
		rec.FollowRedirects = boolPtr(up.Settings.FollowRedirects)
		rec.VerifyTLS = boolPtr(up.Settings.VerifyTLS)
	}
	if up.FolderID != nil {
		parentID, err := tree.resolveParent(collectionID, *up.FolderID)
		if err != nil {
			return nil, err
		}
		rec.ParentID = parentID
	}

	rec.Modified = nowMillis()
	rec.SortKey = sortKeyFor(rec.Modified)
	requests[idx] = rec

	if err := s.saveRequests(requests); err != nil {
		return nil, err
	}
	if err := s.touchWorkspace(workspaces, wsIdx); err != nil {
		return nil, err
	}

	s.logger.Debug("updated request",
		slog.String("id", requestID),
		slog.String("collection", collectionID))

	request := toRequest(rec, collectionID)
	return &request, nil
}

// DeleteRequest removes a request after checking it belongs to the collection.
func (s *FileStore) DeleteRequest(collectionID, requestID string) error {
	workspaces, err := s.loadWorkspaces()
	if err != nil {
		return err
	}
	wsIdx := findWorkspace(workspaces, collectionID)
	if wsIdx < 0 {
		return fmt.Errorf("%s: %w", collectionID, apperrors.ErrCollectionNotFound)
	}

	folders, err := s.loadFolders()
	if err != nil {
		return err
	}
	tree := newFolderTree(folders)

	requests, err := s.loadRequests()
	if err != nil {
		return err
	}

	idx := -1
	for i, r := range requests {
		if r.ID == requestID && tree.requestBelongsTo(r.ParentID, collectionID) {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("%s: %w", requestID, apperrors.ErrRequestNotFound)
	}

	requests = append(requests[:idx], requests[idx+1:]...)

	if err := s.saveRequests(requests); err != nil {
		return err
	}
	if err := s.touchWorkspace(workspaces, wsIdx); err != nil {
		return err
	}

	s.logger.Debug("deleted request",
		slog.String("id", requestID),
		slog.String("collection", collectionID))

	return nil
}

// Environment operations

// GetEnvironment returns the collection's single environment, creating it
// if absent.
func (s *FileStore) GetEnvironment(collectionID string) (*domain.Environment, error) {
	workspaces, err := s.loadWorkspaces()
	if err != nil {
		return nil, err
	}
	wsIdx := findWorkspace(workspaces, collectionID)
	if wsIdx < 0 {
		return nil, fmt.Errorf("%s: %w", collectionID, apperrors.ErrCollectionNotFound)
	}

	rec, _, err := s.environmentFor(collectionID)
	if err != nil {
		return nil, err
	}

	env := toEnvironment(rec)
	return &env, nil
}

// SetVariable creates or overwrites one variable in the collection's
// environment, bumping both the environment and the workspace.
func (s *FileStore) SetVariable(collectionID, key, value string) (*domain.Environment, error) {
	if key == "" {
		return nil, apperrors.ValidationError{Field: "key", Message: "key must not be empty"}
	}

	workspaces, err := s.loadWorkspaces()
	if err != nil {
		return nil, err
	}
	wsIdx := findWorkspace(workspaces, collectionID)
	if wsIdx < 0 {
		return nil, fmt.Errorf("%s: %w", collectionID, apperrors.ErrCollectionNotFound)
	}

	environments, err := s.loadEnvironments()
	if err != nil {
		return nil, err
	}

	idx := -1
	for i, e := range environments {
		if e.ParentID == collectionID {
			idx = i
			break
		}
	}
	if idx < 0 {
		environments = append(environments, newEnvironmentRecord(collectionID, nowMillis()))
		idx = len(environments) - 1
	}

	rec := environments[idx]
	if rec.Data == nil {
		rec.Data = map[string]string{}
	}
	rec.Data[key] = value
	rec.Modified = nowMillis()
	environments[idx] = rec

	if err := s.saveEnvironments(environments); err != nil {
		return nil, err
	}
	if err := s.touchWorkspace(workspaces, wsIdx); err != nil {
		return nil, err
	}

	s.logger.Debug("set environment variable",
		slog.String("collection", collectionID),
		slog.String("key", key))

	env := toEnvironment(rec)
	return &env, nil
}

// GetVariable returns the variable's value and whether it exists. A
// missing key in an existing environment is not an error.
func (s *FileStore) GetVariable(collectionID, key string) (string, bool, error) {
	env, err := s.GetEnvironment(collectionID)
	if err != nil {
		return "", false, err
	}
	value, ok := env.Data[key]
	return value, ok, nil
}

// environmentFor loads the environment owned by the workspace, creating
// and persisting one if absent.
func (s *FileStore) environmentFor(collectionID string) (environmentRecord, bool, error) {
	environments, err := s.loadEnvironments()
	if err != nil {
		return environmentRecord{}, false, err
	}

	for _, e := range environments {
		if e.ParentID == collectionID {
			return e, false, nil
		}
	}

	rec := newEnvironmentRecord(collectionID, nowMillis())
	environments = append(environments, rec)
	if err := s.saveEnvironments(environments); err != nil {
		return environmentRecord{}, false, err
	}

	s.logger.Debug("created base environment",
		slog.String("collection", collectionID),
		slog.String("id", rec.ID))

	return rec, true, nil
}

// Bootstrap and maintenance

// EnsureBaseEnvironments creates a base environment for every
// collection-scoped workspace that lacks one. All creations are batched
// into a single environments-file rewrite; when nothing is missing,
// nothing is written. Returns the number of environments created.
func (s *FileStore) EnsureBaseEnvironments() (int, error) {
	workspaces, err := s.loadWorkspaces()
	if err != nil {
		return 0, err
	}
	environments, err := s.loadEnvironments()
	if err != nil {
		return 0, err
	}

	environments, created := ensureEnvironmentRecords(workspaces, environments)
	if created == 0 {
		return 0, nil
	}

	if err := s.saveEnvironments(environments); err != nil {
		return 0, err
	}

	s.logger.Info("bootstrap created base environments", slog.Int("count", created))
	return created, nil
}

// Fingerprint returns a SHA-256 hash over the deterministic JSON
// serialization of the assembled collection listing. Callers can compare
// fingerprints to decide whether their view of the store is stale.
func (s *FileStore) Fingerprint() (string, error) {
	collections, err := s.ListCollections()
	if err != nil {
		return "", err
	}

	data, err := json.Marshal(collections)
	if err != nil {
		return "", fmt.Errorf("marshal collections: %w", err)
	}

	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

// Helpers

// findWorkspace returns the index of the collection-scoped workspace with
// the given id, or -1.
func findWorkspace(workspaces []workspaceRecord, id string) int {
	for i, ws := range workspaces {
		if ws.ID == id && ws.Scope == ScopeCollection {
			return i
		}
	}
	return -1
}

// touchWorkspace bumps the workspace's modified stamp and rewrites the
// workspaces file. Called after any mutation of an entity the workspace
// owns.
func (s *FileStore) touchWorkspace(workspaces []workspaceRecord, idx int) error {
	workspaces[idx].Modified = nowMillis()
	return s.saveWorkspaces(workspaces)
}

// ensureEnvironmentRecords appends a base environment for every
// collection-scoped workspace lacking one. Returns the (possibly grown)
// environment set and the number created; the caller decides whether to
// persist.
func ensureEnvironmentRecords(workspaces []workspaceRecord, environments []environmentRecord) ([]environmentRecord, int) {
	owned := make(map[string]bool, len(environments))
	for _, e := range environments {
		owned[e.ParentID] = true
	}

	created := 0
	for _, ws := range workspaces {
		if ws.Scope != ScopeCollection || owned[ws.ID] {
			continue
		}
		environments = append(environments, newEnvironmentRecord(ws.ID, nowMillis()))
		owned[ws.ID] = true
		created++
	}
	return environments, created
}

func newEnvironmentRecord(workspaceID string, now int64) environmentRecord {
	return environmentRecord{
		ID:       newID(prefixEnvironment),
		Kind:     KindEnvironment,
		ParentID: workspaceID,
		Name:     BaseEnvironmentName,
		Data:     map[string]string{},
		Created:  now,
		Modified: now,
	}
}

// assembleCollection computes the workspace's owned folder and request
// subsets and converts everything to the external shape.
func assembleCollection(ws workspaceRecord, folders []folderRecord, requests []requestRecord, environments []environmentRecord, tree *folderTree) domain.Collection {
	var ownedFolders []domain.Folder
	for _, f := range folders {
		if tree.belongsTo(f.ID, ws.ID) {
			ownedFolders = append(ownedFolders, toFolder(f, ws.ID))
		}
	}

	var ownedRequests []domain.Request
	for _, r := range requests {
		if tree.requestBelongsTo(r.ParentID, ws.ID) {
			ownedRequests = append(ownedRequests, toRequest(r, ws.ID))
		}
	}

	var env *domain.Environment
	for _, e := range environments {
		if e.ParentID == ws.ID {
			external := toEnvironment(e)
			env = &external
			break
		}
	}

	return toCollection(ws, ownedFolders, ownedRequests, env)
}

func boolPtr(v bool) *bool {
	return &v
}
