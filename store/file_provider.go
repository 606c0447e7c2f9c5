package store

import "io/fs"

// FileProvider abstracts the directory and file primitives the store needs.
// Missing files must be reported with errors satisfying
// errors.Is(err, fs.ErrNotExist).
type FileProvider interface {
	CreateDirectory(path string) error
	ReadFile(path string, fileName string) ([]byte, error)
	WriteFile(path string, fileName string, data []byte) error
	DeleteFile(path string, fileName string) error
	ReadDirectory(path string) ([]fs.DirEntry, error)
}
