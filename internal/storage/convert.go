package storage

import "github.com/shhac/satchel/internal/domain"

// Converters map raw on-disk records to the externally visible shapes:
// defaults are filled in, optional fields normalized, and the owning
// collection id relocated out of the parent pointer.

func toFolder(rec folderRecord, collectionID string) domain.Folder {
	parentID := rec.ParentID
	if parentID == collectionID {
		parentID = ""
	}
	return domain.Folder{
		ID:           rec.ID,
		CollectionID: collectionID,
		ParentID:     parentID,
		Name:         rec.Name,
		Description:  rec.Description,
		SortKey:      rec.SortKey,
		Created:      rec.Created,
		Modified:     rec.Modified,
	}
}

func toRequest(rec requestRecord, collectionID string) domain.Request {
	folderID := rec.ParentID
	if folderID == collectionID {
		folderID = ""
	}

	headers := make([]domain.Header, 0, len(rec.Headers))
	for _, h := range rec.Headers {
		headers = append(headers, domain.Header{Name: h.Name, Value: h.Value})
	}

	return domain.Request{
		ID:                 rec.ID,
		CollectionID:       collectionID,
		FolderID:           folderID,
		Name:               rec.Name,
		Description:        rec.Description,
		Method:             rec.Method,
		URL:                rec.URL,
		Headers:            headers,
		Body:               rec.Body,
		PreRequestScript:   rec.PreRequestScript,
		PostResponseScript: rec.PostResponseScript,
		Settings: domain.RequestSettings{
			FollowRedirects: boolOrDefault(rec.FollowRedirects, true),
			VerifyTLS:       boolOrDefault(rec.VerifyTLS, true),
		},
		SortKey:  rec.SortKey,
		Created:  rec.Created,
		Modified: rec.Modified,
	}
}

func toEnvironment(rec environmentRecord) domain.Environment {
	data := rec.Data
	if data == nil {
		data = map[string]string{}
	}
	return domain.Environment{
		ID:           rec.ID,
		CollectionID: rec.ParentID,
		Name:         rec.Name,
		Data:         data,
		Created:      rec.Created,
		Modified:     rec.Modified,
	}
}

func toCollection(ws workspaceRecord, folders []domain.Folder, requests []domain.Request, env *domain.Environment) domain.Collection {
	if folders == nil {
		folders = []domain.Folder{}
	}
	if requests == nil {
		requests = []domain.Request{}
	}
	return domain.Collection{
		ID:          ws.ID,
		Name:        ws.Name,
		Description: ws.Description,
		Folders:     folders,
		Requests:    requests,
		Environment: env,
		Created:     ws.Created,
		Modified:    ws.Modified,
	}
}

func boolOrDefault(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}
