package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	apperrors "github.com/shhac/satchel/internal/errors"
)

const (
	filePermission = 0644
	dirPermission  = 0755
)

// record is implemented by every on-disk record type.
type record interface {
	recordKind() Kind
}

// readRecords loads every record of T's kind from an NDJSON file,
// preserving on-disk order. Duplicated ids are not deduplicated here. A
// missing file yields an empty list, not an error; any non-empty line
// that fails to parse is fatal. Lines carrying a different kind are
// skipped, so unrelated record types can share a file without corruption.
func readRecords[T record](path string) ([]T, error) {
	var zero T
	want := zero.recordKind()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, &apperrors.FileSystemError{Op: "read", Path: path, Err: err}
	}

	var out []T
	for i, line := range bytes.Split(data, []byte{'\n'}) {
		if len(bytes.TrimSpace(line)) == 0 {
			continue
		}

		var probe struct {
			Kind Kind `json:"kind"`
		}
		if err := json.Unmarshal(line, &probe); err != nil {
			return nil, &apperrors.CorruptStoreError{Path: path, Line: i + 1, Err: err}
		}
		if probe.Kind != want {
			continue
		}

		var rec T
		if err := json.Unmarshal(line, &rec); err != nil {
			return nil, &apperrors.CorruptStoreError{Path: path, Line: i + 1, Err: err}
		}
		out = append(out, rec)
	}

	return out, nil
}

// writeRecords atomically replaces the file's full contents with one JSON
// object per line. Zero records produce an empty file with no trailing
// newline.
func writeRecords[T record](path string, recs []T) error {
	var buf bytes.Buffer
	for _, rec := range recs {
		line, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("marshal record: %w", err)
		}
		buf.Write(line)
		buf.WriteByte('\n')
	}

	if err := os.MkdirAll(filepath.Dir(path), dirPermission); err != nil {
		return &apperrors.FileSystemError{Op: "mkdir", Path: filepath.Dir(path), Err: err}
	}
	if err := atomicWriteFile(path, buf.Bytes(), filePermission); err != nil {
		return &apperrors.FileSystemError{Op: "write", Path: path, Err: err}
	}
	return nil
}

// atomicWriteFile writes data to a file atomically by writing to a temp file
// in the same directory, syncing, then renaming over the target path.
func atomicWriteFile(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	f, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := f.Name()

	// Clean up temp file on any failure
	success := false
	defer func() {
		if !success {
			os.Remove(tmpPath)
		}
	}()

	if _, err := f.Write(data); err != nil {
		f.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, perm); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}

	success = true
	return nil
}
