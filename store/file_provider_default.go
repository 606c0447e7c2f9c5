package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// TempFilePrefix marks files being written. They never hold a complete
// record and are not valid record ids.
const TempFilePrefix = ".tmp-"

// OSFileProvider implements FileProvider on the local filesystem.
type OSFileProvider struct{}

func (fp *OSFileProvider) CreateDirectory(path string) error {
	return os.MkdirAll(path, 0o755)
}

func (fp *OSFileProvider) ReadFile(path string, fileName string) ([]byte, error) {
	return os.ReadFile(filepath.Join(path, fileName))
}

// WriteFile writes data to a temp file in path and renames it over
// fileName, so readers see either the old or the new content, never a mix.
func (fp *OSFileProvider) WriteFile(path string, fileName string, data []byte) error {
	tmp, err := os.CreateTemp(path, TempFilePrefix+"*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		return errors.Join(err, tmp.Close(), os.Remove(tmpName))
	}
	if err := tmp.Chmod(0o644); err != nil {
		return errors.Join(err, tmp.Close(), os.Remove(tmpName))
	}
	if err := tmp.Close(); err != nil {
		return errors.Join(err, os.Remove(tmpName))
	}
	if err := os.Rename(tmpName, filepath.Join(path, fileName)); err != nil {
		return errors.Join(err, os.Remove(tmpName))
	}
	return nil
}

func (fp *OSFileProvider) DeleteFile(path string, fileName string) error {
	return os.Remove(filepath.Join(path, fileName))
}

// ReadDirectory lists path, leaving out in-progress temp files.
func (fp *OSFileProvider) ReadDirectory(path string) ([]fs.DirEntry, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}
	kept := entries[:0]
	for _, e := range entries {
		if !strings.HasPrefix(e.Name(), TempFilePrefix) {
			kept = append(kept, e)
		}
	}
	return kept, nil
}
