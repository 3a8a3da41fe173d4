// Package blobstore stores attachment bytes outside the database. The chat
// core only ever sees the opaque locator returned by Put.
package blobstore

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Store is the byte store behind chat attachments.
type Store interface {
	Put(ctx context.Context, fileName string, data []byte) (locator string, err error)
	Get(ctx context.Context, locator string) ([]byte, error)
}

// newLocator derives an opaque, collision-free locator that keeps the
// original file extension for content-type sniffing on download.
func newLocator(fileName string) string {
	ext := strings.ToLower(filepath.Ext(fileName))
	return uuid.New().String() + ext
}
