package redis

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quillhaven/quillhaven/domain"
)

func TestGetArticleCacheMiss(t *testing.T) {
	client, mock := redismock.NewClientMock()
	cache := NewArticleCache(client)

	mock.ExpectGet("article:7").RedisNil()

	_, err := cache.GetArticle(context.Background(), 7)
	assert.ErrorIs(t, err, domain.ErrCacheMiss)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSetAndGetArticle(t *testing.T) {
	client, mock := redismock.NewClientMock()
	cache := NewArticleCache(client)
	ctx := context.Background()

	ar := domain.Article{ID: 7, Title: "hello", Content: "world"}
	data, err := json.Marshal(&ar)
	require.NoError(t, err)

	mock.ExpectSet("article:7", data, 10*time.Minute).SetVal("OK")
	require.NoError(t, cache.SetArticle(ctx, &ar, 10*time.Minute))

	mock.ExpectGet("article:7").SetVal(string(data))
	got, err := cache.GetArticle(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, ar.Title, got.Title)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetHomeCacheMiss(t *testing.T) {
	client, mock := redismock.NewClientMock()
	cache := NewArticleCache(client)

	mock.ExpectGet(KeyHome).RedisNil()

	_, err := cache.GetHome(context.Background())
	assert.ErrorIs(t, err, domain.ErrCacheMiss)
}

func TestIncrViews(t *testing.T) {
	client, mock := redismock.NewClientMock()
	cache := NewArticleCache(client)

	mock.ExpectHIncrBy(KeyViewsBuffer, "7", 1).SetVal(3)

	n, err := cache.IncrViews(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFetchAndResetViews(t *testing.T) {
	client, mock := redismock.NewClientMock()
	cache := NewArticleCache(client)

	mock.ExpectRename(KeyViewsBuffer, KeyViewsProcessing).SetVal("OK")
	mock.ExpectHGetAll(KeyViewsProcessing).SetVal(map[string]string{
		"7": "3",
		"9": "1",
	})
	mock.ExpectDel(KeyViewsProcessing).SetVal(1)

	views, err := cache.FetchAndResetViews(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[int64]int64{7: 3, 9: 1}, views)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFetchAndResetViewsEmptyBuffer(t *testing.T) {
	client, mock := redismock.NewClientMock()
	cache := NewArticleCache(client)

	// Rename fails with redis.Nil when the buffer key does not exist
	mock.ExpectRename(KeyViewsBuffer, KeyViewsProcessing).RedisNil()

	views, err := cache.FetchAndResetViews(context.Background())
	require.NoError(t, err)
	assert.Empty(t, views)
}
