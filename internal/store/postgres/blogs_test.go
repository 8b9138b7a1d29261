package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veloria/catalog-api/internal/domain"
)

const testBlogID = "64f1a2b3c4d5e6f708192a3b"

func newBlogMock(t *testing.T) (pgxmock.PgxPoolIface, *BlogStore) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock, NewBlogStore(mock)
}

func TestBlogCreateAssignsID(t *testing.T) {
	mock, store := newBlogMock(t)

	mock.ExpectExec(`INSERT INTO blog_posts`).
		WithArgs(pgxmock.AnyArg(), "Launch notes", "We shipped.", "sam").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	b := &domain.BlogPost{Title: "Launch notes", Content: "We shipped.", Author: "sam"}
	require.NoError(t, store.Create(context.Background(), b))
	assert.True(t, domain.ValidID(b.ID))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBlogFindByID(t *testing.T) {
	mock, store := newBlogMock(t)

	rows := pgxmock.NewRows([]string{"id", "title", "content", "author", "created_at", "updated_at"}).
		AddRow(testBlogID, "Launch notes", "We shipped.", "sam", time.Now(), time.Now())
	mock.ExpectQuery(`SELECT id, title, content,.+FROM blog_posts WHERE id`).
		WithArgs(testBlogID).
		WillReturnRows(rows)

	b, err := store.FindByID(context.Background(), testBlogID)
	require.NoError(t, err)
	assert.Equal(t, "Launch notes", b.Title)
}

func TestBlogFindByIDNotFound(t *testing.T) {
	mock, store := newBlogMock(t)

	mock.ExpectQuery(`SELECT id, title, content,.+FROM blog_posts WHERE id`).
		WithArgs(testBlogID).
		WillReturnError(pgx.ErrNoRows)

	_, err := store.FindByID(context.Background(), testBlogID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestBlogUpdateNotFound(t *testing.T) {
	mock, store := newBlogMock(t)

	mock.ExpectExec(`UPDATE blog_posts`).
		WithArgs(testBlogID, "t", "c", "").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	b := &domain.BlogPost{ID: testBlogID, Title: "t", Content: "c"}
	assert.ErrorIs(t, store.Update(context.Background(), b), domain.ErrNotFound)
}

func TestBlogDelete(t *testing.T) {
	mock, store := newBlogMock(t)

	mock.ExpectExec(`DELETE FROM blog_posts`).
		WithArgs(testBlogID).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	require.NoError(t, store.Delete(context.Background(), testBlogID))
}
