package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

type LocalStorage struct {
	BasePath string
}

func NewLocalStorage(basePath string) *LocalStorage {
	return &LocalStorage{BasePath: basePath}
}

func (l *LocalStorage) Save(key string, r io.Reader) (string, error) {
	fullPath := filepath.Join(l.BasePath, filepath.Base(key))

	if err := os.MkdirAll(filepath.Dir(fullPath), os.ModePerm); err != nil {
		return "", fmt.Errorf("could not create directory: %w", err)
	}

	outFile, err := os.Create(fullPath)
	if err != nil {
		return "", fmt.Errorf("could not create file: %w", err)
	}
	defer outFile.Close()

	if _, err := io.Copy(outFile, r); err != nil {
		return "", fmt.Errorf("could not write file: %w", err)
	}

	return fullPath, nil
}

func (l *LocalStorage) Open(key string) (io.ReadCloser, error) {
	return os.Open(filepath.Join(l.BasePath, filepath.Base(key)))
}

func (l *LocalStorage) Delete(key string) error {
	return os.Remove(filepath.Join(l.BasePath, filepath.Base(key)))
}
