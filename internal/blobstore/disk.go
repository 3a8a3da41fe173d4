package blobstore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DiskStore keeps attachment bytes in a local directory, one file per
// locator.
type DiskStore struct {
	dir string
}

// NewDiskStore creates the upload directory if needed and returns a store
// rooted there.
func NewDiskStore(dir string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &DiskStore{dir: dir}, nil
}

// Put writes the bytes under a fresh locator.
func (s *DiskStore) Put(ctx context.Context, fileName string, data []byte) (string, error) {
	locator := newLocator(fileName)
	if err := os.WriteFile(filepath.Join(s.dir, locator), data, 0o644); err != nil {
		return "", fmt.Errorf("write blob: %w", err)
	}
	return locator, nil
}

// Get reads the bytes for a locator. Locators are single path elements;
// anything else is rejected.
func (s *DiskStore) Get(ctx context.Context, locator string) ([]byte, error) {
	if locator == "" || strings.ContainsAny(locator, `/\`) || strings.Contains(locator, "..") {
		return nil, errors.New("invalid blob locator")
	}
	data, err := os.ReadFile(filepath.Join(s.dir, locator))
	if err != nil {
		return nil, fmt.Errorf("read blob: %w", err)
	}
	return data, nil
}
