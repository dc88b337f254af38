package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shhac/satchel/internal/domain"
	apperrors "github.com/shhac/satchel/internal/errors"
	"github.com/shhac/satchel/internal/logging"
)

func newTestStore(t *testing.T) (*FileStore, string) {
	t.Helper()
	dir := t.TempDir()
	return NewFileStore(dir, "", logging.NewNopLogger()), dir
}

func strPtr(s string) *string {
	return &s
}

func TestCreateCollection(t *testing.T) {
	store, _ := newTestStore(t)

	c, err := store.CreateCollection("API", "my api tests")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(c.ID, "wrk_"), "collection id %q should carry the wrk_ prefix", c.ID)
	assert.Equal(t, "API", c.Name)
	assert.Equal(t, "my api tests", c.Description)
	assert.Empty(t, c.Folders)
	assert.Empty(t, c.Requests)
	require.NotNil(t, c.Environment, "a new collection gets a paired base environment")
	assert.True(t, strings.HasPrefix(c.Environment.ID, "env_"))
	assert.Equal(t, c.ID, c.Environment.CollectionID)
	assert.Empty(t, c.Environment.Data)
	assert.NotZero(t, c.Created)
	assert.Equal(t, c.Created, c.Modified)
}

func TestCreateCollection_EmptyName(t *testing.T) {
	store, _ := newTestStore(t)

	_, err := store.CreateCollection("  ", "")
	var validationErr apperrors.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "name", validationErr.Field)
}

func TestCreateCollection_ProjectResolution(t *testing.T) {
	t.Run("override wins", func(t *testing.T) {
		dir := t.TempDir()
		store := NewFileStore(dir, "proj_override", logging.NewNopLogger())

		_, err := store.CreateCollection("API", "")
		require.NoError(t, err)

		workspaces, err := store.loadWorkspaces()
		require.NoError(t, err)
		require.Len(t, workspaces, 1)
		assert.Equal(t, "proj_override", workspaces[0].ProjectID)
	})

	t.Run("first project record", func(t *testing.T) {
		store, dir := newTestStore(t)
		projects := `{"id":"proj_aaa","kind":"project","name":"Team A"}` + "\n" +
			`{"id":"proj_bbb","kind":"project","name":"Team B"}` + "\n"
		require.NoError(t, os.WriteFile(filepath.Join(dir, projectsFile), []byte(projects), 0644))

		_, err := store.CreateCollection("API", "")
		require.NoError(t, err)

		workspaces, err := store.loadWorkspaces()
		require.NoError(t, err)
		assert.Equal(t, "proj_aaa", workspaces[0].ProjectID)
	})

	t.Run("fixed default", func(t *testing.T) {
		store, _ := newTestStore(t)

		_, err := store.CreateCollection("API", "")
		require.NoError(t, err)

		workspaces, err := store.loadWorkspaces()
		require.NoError(t, err)
		assert.Equal(t, DefaultProjectID, workspaces[0].ProjectID)
	})
}

func TestGetCollection_AbsenceIsNotAnError(t *testing.T) {
	store, _ := newTestStore(t)

	c, err := store.GetCollection("wrk_missing")
	require.NoError(t, err)
	assert.Nil(t, c)
}

func TestGetCollection_IgnoresNonCollectionScopes(t *testing.T) {
	store, dir := newTestStore(t)

	line := `{"id":"wrk_design","kind":"workspace","name":"Design Doc","scope":"design","projectId":"proj_default","created":1,"modified":1}` + "\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, workspacesFile), []byte(line), 0644))

	c, err := store.GetCollection("wrk_design")
	require.NoError(t, err)
	assert.Nil(t, c, "non-collection workspace scopes are invisible")

	collections, err := store.ListCollections()
	require.NoError(t, err)
	assert.Empty(t, collections)
}

func TestListCollections_OnDiskOrder(t *testing.T) {
	store, _ := newTestStore(t)

	first, err := store.CreateCollection("First", "")
	require.NoError(t, err)
	second, err := store.CreateCollection("Second", "")
	require.NoError(t, err)

	collections, err := store.ListCollections()
	require.NoError(t, err)
	require.Len(t, collections, 2)
	assert.Equal(t, first.ID, collections[0].ID)
	assert.Equal(t, second.ID, collections[1].ID)
}

func TestEnsureBaseEnvironments_Idempotent(t *testing.T) {
	store, dir := newTestStore(t)

	_, err := store.CreateCollection("One", "")
	require.NoError(t, err)
	_, err = store.CreateCollection("Two", "")
	require.NoError(t, err)

	// Drop the paired environments to simulate a store bootstrapped
	// before environments existed.
	require.NoError(t, os.Remove(filepath.Join(dir, environmentsFile)))

	created, err := store.EnsureBaseEnvironments()
	require.NoError(t, err)
	assert.Equal(t, 2, created)

	environments, err := store.loadEnvironments()
	require.NoError(t, err)
	assert.Len(t, environments, 2)

	// Second run finds nothing missing and writes nothing.
	info, err := os.Stat(filepath.Join(dir, environmentsFile))
	require.NoError(t, err)

	created, err = store.EnsureBaseEnvironments()
	require.NoError(t, err)
	assert.Zero(t, created)

	after, err := os.Stat(filepath.Join(dir, environmentsFile))
	require.NoError(t, err)
	assert.Equal(t, info.ModTime(), after.ModTime(), "idempotent run must not rewrite the file")
}

func TestListCollections_LazyEnvironmentCreationIsBatched(t *testing.T) {
	store, dir := newTestStore(t)

	_, err := store.CreateCollection("One", "")
	require.NoError(t, err)
	_, err = store.CreateCollection("Two", "")
	require.NoError(t, err)
	require.NoError(t, os.Remove(filepath.Join(dir, environmentsFile)))

	collections, err := store.ListCollections()
	require.NoError(t, err)
	require.Len(t, collections, 2)
	for _, c := range collections {
		require.NotNil(t, c.Environment, "listing lazily creates missing environments")
	}

	data, err := os.ReadFile(filepath.Join(dir, environmentsFile))
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(string(data), "\n"), "both creations land in one rewrite")
}

func TestEndToEndCollectionAssembly(t *testing.T) {
	store, _ := newTestStore(t)

	c, err := store.CreateCollection("API", "")
	require.NoError(t, err)

	auth, err := store.CreateFolder(c.ID, domain.FolderInput{Name: "Auth"})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(auth.ID, "fld_"))
	assert.Empty(t, auth.ParentID, "folder created without a parent is a direct child of the collection")

	login, err := store.CreateRequest(c.ID, domain.RequestInput{
		Name:     "Login",
		Method:   "post",
		URL:      "https://x/login",
		FolderID: auth.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, "POST", login.Method, "method is normalized to upper case")

	got, err := store.GetCollection(c.ID)
	require.NoError(t, err)
	require.NotNil(t, got)

	require.Len(t, got.Folders, 1)
	assert.Equal(t, "Auth", got.Folders[0].Name)

	require.Len(t, got.Requests, 1)
	assert.Equal(t, "Login", got.Requests[0].Name)
	assert.Equal(t, "POST", got.Requests[0].Method)
	assert.Equal(t, "https://x/login", got.Requests[0].URL)
	assert.Equal(t, auth.ID, got.Requests[0].FolderID, "request is nested under Auth")

	require.NotNil(t, got.Environment)
	assert.Equal(t, BaseEnvironmentName, got.Environment.Name)
	assert.Empty(t, got.Environment.Data)
}

func TestEnvironmentVariables(t *testing.T) {
	store, _ := newTestStore(t)

	c, err := store.CreateCollection("API", "")
	require.NoError(t, err)

	_, err = store.SetVariable(c.ID, "token", "abc")
	require.NoError(t, err)

	env, err := store.GetEnvironment(c.ID)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"token": "abc"}, env.Data)

	value, ok, err := store.GetVariable(c.ID, "token")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "abc", value)

	// A missing key is absence, not an error.
	value, ok, err = store.GetVariable(c.ID, "missing")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, value)

	// Existing keys are overwritten.
	_, err = store.SetVariable(c.ID, "token", "xyz")
	require.NoError(t, err)
	value, ok, err = store.GetVariable(c.ID, "token")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "xyz", value)
}

func TestSetVariable_BumpsEnvironmentAndWorkspace(t *testing.T) {
	store, _ := newTestStore(t)

	c, err := store.CreateCollection("API", "")
	require.NoError(t, err)

	time.Sleep(2 * time.Millisecond)

	env, err := store.SetVariable(c.ID, "token", "abc")
	require.NoError(t, err)
	assert.Greater(t, env.Modified, env.Created)

	got, err := store.GetCollection(c.ID)
	require.NoError(t, err)
	assert.Greater(t, got.Modified, got.Created, "workspace modified stamp follows owned mutations")
}

func TestFolderCycleRejected(t *testing.T) {
	store, _ := newTestStore(t)

	c, err := store.CreateCollection("API", "")
	require.NoError(t, err)

	a, err := store.CreateFolder(c.ID, domain.FolderInput{Name: "A"})
	require.NoError(t, err)
	b, err := store.CreateFolder(c.ID, domain.FolderInput{Name: "B", ParentID: a.ID})
	require.NoError(t, err)
	cc, err := store.CreateFolder(c.ID, domain.FolderInput{Name: "C", ParentID: b.ID})
	require.NoError(t, err)

	_, err = store.UpdateFolder(c.ID, a.ID, domain.FolderUpdate{ParentID: strPtr(cc.ID)})
	var cycleErr apperrors.CycleError
	require.ErrorAs(t, err, &cycleErr)

	// All three parent pointers are untouched.
	gotA, err := store.GetFolder(c.ID, a.ID)
	require.NoError(t, err)
	assert.Empty(t, gotA.ParentID)

	gotB, err := store.GetFolder(c.ID, b.ID)
	require.NoError(t, err)
	assert.Equal(t, a.ID, gotB.ParentID)

	gotC, err := store.GetFolder(c.ID, cc.ID)
	require.NoError(t, err)
	assert.Equal(t, b.ID, gotC.ParentID)
}

func TestUpdateFolder(t *testing.T) {
	store, _ := newTestStore(t)

	c, err := store.CreateCollection("API", "")
	require.NoError(t, err)

	a, err := store.CreateFolder(c.ID, domain.FolderInput{Name: "A", Description: "first"})
	require.NoError(t, err)
	b, err := store.CreateFolder(c.ID, domain.FolderInput{Name: "B", ParentID: a.ID})
	require.NoError(t, err)

	time.Sleep(2 * time.Millisecond)

	// Rename only: parent and description stay put.
	got, err := store.UpdateFolder(c.ID, b.ID, domain.FolderUpdate{Name: strPtr("B2")})
	require.NoError(t, err)
	assert.Equal(t, "B2", got.Name)
	assert.Equal(t, a.ID, got.ParentID)
	assert.Greater(t, got.Modified, got.Created)
	assert.Equal(t, sortKeyFor(got.Modified), got.SortKey, "sort key follows the modified stamp")

	// Move back to the collection root.
	got, err = store.UpdateFolder(c.ID, b.ID, domain.FolderUpdate{ParentID: strPtr("")})
	require.NoError(t, err)
	assert.Empty(t, got.ParentID)

	// Reparent under a missing folder fails.
	_, err = store.UpdateFolder(c.ID, b.ID, domain.FolderUpdate{ParentID: strPtr("fld_missing")})
	assert.ErrorIs(t, err, apperrors.ErrFolderNotFound)
}

func TestDeleteFolder_Cascade(t *testing.T) {
	store, _ := newTestStore(t)

	c, err := store.CreateCollection("API", "")
	require.NoError(t, err)

	a, err := store.CreateFolder(c.ID, domain.FolderInput{Name: "A"})
	require.NoError(t, err)
	b, err := store.CreateFolder(c.ID, domain.FolderInput{Name: "B", ParentID: a.ID})
	require.NoError(t, err)
	cc, err := store.CreateFolder(c.ID, domain.FolderInput{Name: "C", ParentID: b.ID})
	require.NoError(t, err)
	d, err := store.CreateFolder(c.ID, domain.FolderInput{Name: "D"})
	require.NoError(t, err)

	x, err := store.CreateRequest(c.ID, domain.RequestInput{Name: "X", URL: "https://x", FolderID: b.ID})
	require.NoError(t, err)
	y, err := store.CreateRequest(c.ID, domain.RequestInput{Name: "Y", URL: "https://y", FolderID: a.ID})
	require.NoError(t, err)
	z, err := store.CreateRequest(c.ID, domain.RequestInput{Name: "Z", URL: "https://z"})
	require.NoError(t, err)

	require.NoError(t, store.DeleteFolder(c.ID, a.ID))

	// {A, B, C, X, Y} are gone.
	for _, folderID := range []string{a.ID, b.ID, cc.ID} {
		_, err := store.GetFolder(c.ID, folderID)
		assert.ErrorIs(t, err, apperrors.ErrFolderNotFound, "folder %s should be deleted", folderID)
	}
	for _, requestID := range []string{x.ID, y.ID} {
		_, err := store.GetRequest(c.ID, requestID)
		assert.ErrorIs(t, err, apperrors.ErrRequestNotFound, "request %s should be deleted", requestID)
	}

	// Sibling folder D and root-level request Z survive untouched.
	gotD, err := store.GetFolder(c.ID, d.ID)
	require.NoError(t, err)
	assert.Equal(t, "D", gotD.Name)

	gotZ, err := store.GetRequest(c.ID, z.ID)
	require.NoError(t, err)
	assert.Equal(t, "Z", gotZ.Name)
}

func TestCreateRequest_ScriptNormalization(t *testing.T) {
	store, dir := newTestStore(t)

	c, err := store.CreateCollection("API", "")
	require.NoError(t, err)

	_, err = store.CreateRequest(c.ID, domain.RequestInput{
		Name: "Plain",
		URL:  "https://x",
	})
	require.NoError(t, err)

	// Empty script fields are absent on disk, not empty strings.
	data, err := os.ReadFile(filepath.Join(dir, requestsFile))
	require.NoError(t, err)
	assert.NotContains(t, string(data), "preRequestScript")
	assert.NotContains(t, string(data), "postResponseScript")
}

func TestCreateRequest_Defaults(t *testing.T) {
	store, _ := newTestStore(t)

	c, err := store.CreateCollection("API", "")
	require.NoError(t, err)

	r, err := store.CreateRequest(c.ID, domain.RequestInput{Name: "Plain", URL: "https://x"})
	require.NoError(t, err)
	assert.Equal(t, "GET", r.Method, "missing method defaults to GET")
	assert.True(t, r.Settings.FollowRedirects)
	assert.True(t, r.Settings.VerifyTLS)
	assert.NotNil(t, r.Headers)
	assert.Empty(t, r.Headers)
}

func TestUpdateRequest_PartialSemantics(t *testing.T) {
	store, dir := newTestStore(t)

	c, err := store.CreateCollection("API", "")
	require.NoError(t, err)

	folder, err := store.CreateFolder(c.ID, domain.FolderInput{Name: "Auth"})
	require.NoError(t, err)

	r, err := store.CreateRequest(c.ID, domain.RequestInput{
		Name:             "Login",
		Description:      "signs the user in",
		Method:           "post",
		URL:              "https://x/login",
		Headers:          []domain.Header{{Name: "Content-Type", Value: "application/json"}},
		Body:             `{"user":"u"}`,
		FolderID:         folder.ID,
		PreRequestScript: "console.log('before')",
	})
	require.NoError(t, err)

	// Updating only the name leaves everything else unchanged.
	got, err := store.UpdateRequest(c.ID, r.ID, domain.RequestUpdate{Name: strPtr("Login v2")})
	require.NoError(t, err)
	assert.Equal(t, "Login v2", got.Name)
	assert.Equal(t, "POST", got.Method)
	assert.Equal(t, "https://x/login", got.URL)
	assert.Equal(t, r.Headers, got.Headers)
	assert.Equal(t, r.Body, got.Body)
	assert.Equal(t, folder.ID, got.FolderID)
	assert.Equal(t, r.Description, got.Description)
	assert.Equal(t, r.PreRequestScript, got.PreRequestScript)

	// Clearing the description empties it.
	got, err = store.UpdateRequest(c.ID, r.ID, domain.RequestUpdate{Description: strPtr("")})
	require.NoError(t, err)
	assert.Empty(t, got.Description)

	// Clearing a script removes the stored property entirely.
	got, err = store.UpdateRequest(c.ID, r.ID, domain.RequestUpdate{PreRequestScript: strPtr("")})
	require.NoError(t, err)
	assert.Empty(t, got.PreRequestScript)

	data, err := os.ReadFile(filepath.Join(dir, requestsFile))
	require.NoError(t, err)
	assert.NotContains(t, string(data), "preRequestScript")

	// Moving the request to the collection root re-resolves the parent.
	got, err = store.UpdateRequest(c.ID, r.ID, domain.RequestUpdate{FolderID: strPtr("")})
	require.NoError(t, err)
	assert.Empty(t, got.FolderID)

	// Moving it onto a nonexistent folder fails.
	_, err = store.UpdateRequest(c.ID, r.ID, domain.RequestUpdate{FolderID: strPtr("fld_missing")})
	assert.ErrorIs(t, err, apperrors.ErrFolderNotFound)
}

func TestDeleteRequest(t *testing.T) {
	store, _ := newTestStore(t)

	c, err := store.CreateCollection("API", "")
	require.NoError(t, err)

	r, err := store.CreateRequest(c.ID, domain.RequestInput{Name: "R", URL: "https://x"})
	require.NoError(t, err)

	require.NoError(t, store.DeleteRequest(c.ID, r.ID))

	_, err = store.GetRequest(c.ID, r.ID)
	assert.ErrorIs(t, err, apperrors.ErrRequestNotFound)

	err = store.DeleteRequest(c.ID, r.ID)
	assert.ErrorIs(t, err, apperrors.ErrRequestNotFound)
}

func TestMembershipIsolation(t *testing.T) {
	store, _ := newTestStore(t)

	c1, err := store.CreateCollection("W1", "")
	require.NoError(t, err)
	c2, err := store.CreateCollection("W2", "")
	require.NoError(t, err)

	foreignFolder, err := store.CreateFolder(c2.ID, domain.FolderInput{Name: "Theirs"})
	require.NoError(t, err)
	foreignRequest, err := store.CreateRequest(c2.ID, domain.RequestInput{Name: "Secret", URL: "https://x"})
	require.NoError(t, err)

	// Guessing ids across collections never works.
	_, err = store.GetFolder(c1.ID, foreignFolder.ID)
	assert.ErrorIs(t, err, apperrors.ErrFolderNotFound)

	_, err = store.UpdateFolder(c1.ID, foreignFolder.ID, domain.FolderUpdate{Name: strPtr("Mine")})
	assert.ErrorIs(t, err, apperrors.ErrFolderNotFound)

	err = store.DeleteFolder(c1.ID, foreignFolder.ID)
	assert.ErrorIs(t, err, apperrors.ErrFolderNotFound)

	_, err = store.GetRequest(c1.ID, foreignRequest.ID)
	assert.ErrorIs(t, err, apperrors.ErrRequestNotFound)

	_, err = store.UpdateRequest(c1.ID, foreignRequest.ID, domain.RequestUpdate{Name: strPtr("Mine")})
	assert.ErrorIs(t, err, apperrors.ErrRequestNotFound)

	err = store.DeleteRequest(c1.ID, foreignRequest.ID)
	assert.ErrorIs(t, err, apperrors.ErrRequestNotFound)

	// Creating under a foreign parent is equally rejected.
	_, err = store.CreateRequest(c1.ID, domain.RequestInput{Name: "Sneaky", URL: "https://x", FolderID: foreignFolder.ID})
	assert.ErrorIs(t, err, apperrors.ErrFolderNotFound)

	// The foreign entities never leak into the other collection's view.
	view, err := store.GetCollection(c1.ID)
	require.NoError(t, err)
	assert.Empty(t, view.Folders)
	assert.Empty(t, view.Requests)
}

func TestOperationsAgainstMissingCollection(t *testing.T) {
	store, _ := newTestStore(t)

	_, err := store.CreateFolder("wrk_missing", domain.FolderInput{Name: "A"})
	assert.ErrorIs(t, err, apperrors.ErrCollectionNotFound)

	_, err = store.CreateRequest("wrk_missing", domain.RequestInput{Name: "R", URL: "https://x"})
	assert.ErrorIs(t, err, apperrors.ErrCollectionNotFound)

	_, err = store.GetEnvironment("wrk_missing")
	assert.ErrorIs(t, err, apperrors.ErrCollectionNotFound)

	_, err = store.SetVariable("wrk_missing", "k", "v")
	assert.ErrorIs(t, err, apperrors.ErrCollectionNotFound)
}

func TestFingerprint(t *testing.T) {
	store, _ := newTestStore(t)

	c, err := store.CreateCollection("API", "")
	require.NoError(t, err)

	first, err := store.Fingerprint()
	require.NoError(t, err)
	second, err := store.Fingerprint()
	require.NoError(t, err)
	assert.Equal(t, first, second, "fingerprint is deterministic over an unchanged store")

	time.Sleep(2 * time.Millisecond)
	_, err = store.SetVariable(c.ID, "token", "abc")
	require.NoError(t, err)

	third, err := store.Fingerprint()
	require.NoError(t, err)
	assert.NotEqual(t, first, third, "fingerprint changes after a mutation")
}

func TestCorruptFileSurfacesError(t *testing.T) {
	store, dir := newTestStore(t)

	_, err := store.CreateCollection("API", "")
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, foldersFile), []byte("{broken\n"), 0644))

	_, err = store.ListCollections()
	var corrupt *apperrors.CorruptStoreError
	require.ErrorAs(t, err, &corrupt)
}
