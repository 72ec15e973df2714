package mysql

import (
	"context"
	"testing"

	mysqldriver "github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sqlmock "gopkg.in/DATA-DOG/go-sqlmock.v1"

	"github.com/quillhaven/quillhaven/domain"
)

func TestFollowExists(t *testing.T) {
	gdb, mock := setupMockDB(t)
	repo := NewFollowRepository(gdb)

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `follow` WHERE follower_id = \\? AND followed_id = \\?").
		WithArgs(int64(1), int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(1)))

	exists, err := repo.Exists(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestFollowAdd(t *testing.T) {
	gdb, mock := setupMockDB(t)
	repo := NewFollowRepository(gdb)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `follow`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	err := repo.Add(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFollowAddDuplicateEdge(t *testing.T) {
	gdb, mock := setupMockDB(t)
	repo := NewFollowRepository(gdb)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `follow`").
		WillReturnError(&mysqldriver.MySQLError{Number: 1062, Message: "Duplicate entry"})
	mock.ExpectRollback()

	err := repo.Add(context.Background(), 1, 2)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestFollowRemoveMissingEdge(t *testing.T) {
	gdb, mock := setupMockDB(t)
	repo := NewFollowRepository(gdb)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM `follow`").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := repo.Remove(context.Background(), 1, 2)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestFollowersOf(t *testing.T) {
	gdb, mock := setupMockDB(t)
	repo := NewFollowRepository(gdb)

	mock.ExpectQuery("SELECT `follower_id` FROM `follow` WHERE followed_id = \\?").
		WithArgs(int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"follower_id"}).AddRow(int64(1)).AddRow(int64(3)))

	ids, err := repo.FollowersOf(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 3}, ids)
}
