package store

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ehealth-portal-server/internal/chat"
)

func TestMarkRead(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewNotificationStore(db)

	mock.ExpectExec(regexp.QuoteMeta(
		"UPDATE notifications SET status = ? WHERE id = ?")).
		WithArgs("read", uint(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, s.MarkRead(context.Background(), 7))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkReadUnknownID(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewNotificationStore(db)

	mock.ExpectExec(regexp.QuoteMeta(
		"UPDATE notifications SET status = ? WHERE id = ?")).
		WithArgs("read", uint(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := s.MarkRead(context.Background(), 99)
	assert.ErrorIs(t, err, chat.ErrNotFound)
}

func TestMarkReadByRequestSingleStatement(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewNotificationStore(db)

	// One conditional UPDATE covers the whole set; there is no per-row loop
	// that could be interrupted halfway.
	mock.ExpectExec(regexp.QuoteMeta(
		"UPDATE notifications SET status = ? WHERE request_id = ? AND recipient_email = ? AND status = ?")).
		WithArgs("read", int64(1001), "doc@example.com", "unread").
		WillReturnResult(sqlmock.NewResult(0, 3))

	flipped, err := s.MarkReadByRequest(context.Background(), 1001, "doc@example.com")
	require.NoError(t, err)
	assert.Equal(t, int64(3), flipped)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkReadByRequestRepeatIsNoop(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewNotificationStore(db)

	mock.ExpectExec(regexp.QuoteMeta(
		"UPDATE notifications SET status = ? WHERE request_id = ? AND recipient_email = ? AND status = ?")).
		WithArgs("read", int64(1001), "doc@example.com", "unread").
		WillReturnResult(sqlmock.NewResult(0, 0))

	flipped, err := s.MarkReadByRequest(context.Background(), 1001, "doc@example.com")
	require.NoError(t, err)
	assert.Equal(t, int64(0), flipped)
}
