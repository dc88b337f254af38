package storage

import (
	"fmt"

	apperrors "github.com/shhac/satchel/internal/errors"
)

// folderTree answers ancestry and membership questions over an in-memory
// snapshot of folder records. It is pure: no I/O, no mutation of the
// snapshot. Every walk carries a visited set so a malformed cycle already
// on disk terminates the walk instead of looping.
type folderTree struct {
	byID     map[string]folderRecord
	children map[string][]string
}

func newFolderTree(folders []folderRecord) *folderTree {
	t := &folderTree{
		byID:     make(map[string]folderRecord, len(folders)),
		children: make(map[string][]string),
	}
	for _, f := range folders {
		t.byID[f.ID] = f
		t.children[f.ParentID] = append(t.children[f.ParentID], f.ID)
	}
	return t
}

// folder returns the folder record by id.
func (t *folderTree) folder(id string) (folderRecord, bool) {
	f, ok := t.byID[id]
	return f, ok
}

// belongsTo reports whether the folder's parent chain terminates at the
// given workspace. A missing folder, a dead-end parent, or a revisited
// node all count as not belonging.
func (t *folderTree) belongsTo(folderID, workspaceID string) bool {
	visited := make(map[string]bool)
	cur := folderID
	for {
		if visited[cur] {
			return false
		}
		visited[cur] = true

		f, ok := t.byID[cur]
		if !ok {
			return false
		}
		if f.ParentID == workspaceID {
			return true
		}
		cur = f.ParentID
	}
}

// requestBelongsTo reports whether a request with the given parent pointer
// belongs to the workspace: either the parent is the workspace itself or a
// folder that belongs to it.
func (t *folderTree) requestBelongsTo(parentID, workspaceID string) bool {
	if parentID == workspaceID {
		return true
	}
	return t.belongsTo(parentID, workspaceID)
}

// resolveParent normalizes a requested parent id. Empty or equal to the
// workspace id means "direct child of the workspace"; anything else must
// name an existing folder already belonging to the workspace.
func (t *folderTree) resolveParent(workspaceID, requestedParentID string) (string, error) {
	if requestedParentID == "" || requestedParentID == workspaceID {
		return workspaceID, nil
	}
	if !t.belongsTo(requestedParentID, workspaceID) {
		return "", fmt.Errorf("parent %s: %w", requestedParentID, apperrors.ErrFolderNotFound)
	}
	return requestedParentID, nil
}

// ensureNoCycle walks upward from the proposed parent and fails if the
// folder itself is encountered. It must run before any reparent is
// persisted.
func (t *folderTree) ensureNoCycle(folderID, proposedParentID string) error {
	visited := make(map[string]bool)
	cur := proposedParentID
	for {
		if cur == folderID {
			return apperrors.CycleError{FolderID: folderID, ParentID: proposedParentID}
		}
		if visited[cur] {
			return nil
		}
		visited[cur] = true

		f, ok := t.byID[cur]
		if !ok {
			return nil
		}
		cur = f.ParentID
	}
}

// descendantIDs returns the folder itself plus every folder transitively
// parented under it. The result scopes cascading deletes.
func (t *folderTree) descendantIDs(folderID string) map[string]bool {
	out := make(map[string]bool)
	stack := []string{folderID}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if out[id] {
			continue
		}
		out[id] = true
		stack = append(stack, t.children[id]...)
	}
	return out
}
