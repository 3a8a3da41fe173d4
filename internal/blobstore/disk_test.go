package blobstore

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiskStoreRoundTrip(t *testing.T) {
	store, err := NewDiskStore(t.TempDir())
	require.NoError(t, err)

	locator, err := store.Put(context.Background(), "scan.PDF", []byte("hello"))
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(locator, ".pdf"), "locator keeps a lowercased extension: %s", locator)

	data, err := store.Get(context.Background(), locator)
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), data)
}

func TestDiskStoreUniqueLocators(t *testing.T) {
	store, err := NewDiskStore(t.TempDir())
	require.NoError(t, err)

	first, err := store.Put(context.Background(), "report.pdf", []byte("one"))
	require.NoError(t, err)
	second, err := store.Put(context.Background(), "report.pdf", []byte("two"))
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestDiskStoreRejectsBadLocators(t *testing.T) {
	store, err := NewDiskStore(t.TempDir())
	require.NoError(t, err)

	for _, locator := range []string{"", "../etc/passwd", "a/b", `a\b`, "..", "foo..bar"} {
		_, err := store.Get(context.Background(), locator)
		assert.Error(t, err, "locator %q must be rejected", locator)
	}
}

func TestDiskStoreMissingBlob(t *testing.T) {
	store, err := NewDiskStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Get(context.Background(), "does-not-exist.pdf")
	assert.Error(t, err)
}
