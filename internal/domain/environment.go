package domain

// Environment is the key/value variable map scoped to one collection.
// Every collection owns exactly one.
type Environment struct {
	ID           string            `json:"id"`
	CollectionID string            `json:"collectionId"`
	Name         string            `json:"name"`
	Data         map[string]string `json:"data"`
	Created      int64             `json:"created"`
	Modified     int64             `json:"modified"`
}
