package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/quillhaven/quillhaven/domain"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const (
	KeyArticles        = "article:%d"
	KeyHome            = "article:home"
	KeyViewsBuffer     = "article:views:buffer"
	KeyViewsProcessing = "article:views:processing"
)

type articleCache struct {
	client *redis.Client
}

var _ domain.ArticleCache = (*articleCache)(nil)

func NewArticleCache(client *redis.Client) *articleCache {
	return &articleCache{
		client,
	}
}

func (c *articleCache) GetArticle(ctx context.Context, id int64) (res domain.Article, err error) {
	key := fmt.Sprintf(KeyArticles, id)
	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.Article{}, domain.ErrCacheMiss
	} else if err != nil {
		return domain.Article{}, err
	}
	if err = json.Unmarshal(data, &res); err != nil {
		return domain.Article{}, err
	}
	return
}

func (c *articleCache) SetArticle(ctx context.Context, ar *domain.Article, ttl time.Duration) (err error) {
	key := fmt.Sprintf(KeyArticles, ar.ID)
	data, err := json.Marshal(ar)
	if err != nil {
		return
	}
	err = c.client.Set(ctx, key, data, ttl).Err()
	return
}

func (c *articleCache) BatchSetArticle(ctx context.Context, ars []domain.Article, ttl time.Duration) error {
	if len(ars) == 0 {
		return nil
	}

	pipe := c.client.Pipeline()
	for i := range ars {
		data, err := json.Marshal(ars[i])
		if err != nil {
			logrus.Warnf("failed to marshal article for cache, ID: %d, err: %v", ars[i].ID, err)
			continue
		}
		pipe.Set(ctx, fmt.Sprintf(KeyArticles, ars[i].ID), data, ttl)
	}
	_, err := pipe.Exec(ctx)
	return err
}

func (c *articleCache) GetHome(ctx context.Context) ([]domain.Article, error) {
	data, err := c.client.Get(ctx, KeyHome).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrCacheMiss
	} else if err != nil {
		return nil, err
	}

	var res []domain.Article
	if err = json.Unmarshal(data, &res); err != nil {
		return nil, err
	}
	return res, nil
}

func (c *articleCache) SetHome(ctx context.Context, ars []domain.Article, ttl time.Duration) error {
	data, err := json.Marshal(ars)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, KeyHome, data, ttl).Err()
}

func (c *articleCache) IncrViews(ctx context.Context, id int64) (int64, error) {
	return c.client.HIncrBy(ctx, KeyViewsBuffer, strconv.FormatInt(id, 10), 1).Result()
}

// FetchAndResetViews 原子地取走累计的浏览量增量
func (c *articleCache) FetchAndResetViews(ctx context.Context) (map[int64]int64, error) {
	result := make(map[int64]int64)
	err := c.client.Rename(ctx, KeyViewsBuffer, KeyViewsProcessing).Err()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return result, nil
		}
		return result, err
	}

	data, err := c.client.HGetAll(ctx, KeyViewsProcessing).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return result, nil
		}
		return result, err
	}

	for idStr, viewsStr := range data {
		id, _ := strconv.ParseInt(idStr, 10, 64)
		views, _ := strconv.ParseInt(viewsStr, 10, 64)
		result[id] = views
	}

	c.client.Del(ctx, KeyViewsProcessing)

	return result, nil
}

func (c *articleCache) DeleteArticle(ctx context.Context, id int64) error {
	pipe := c.client.Pipeline()
	pipe.Del(ctx, fmt.Sprintf(KeyArticles, id))
	pipe.HDel(ctx, KeyViewsBuffer, strconv.FormatInt(id, 10))
	_, err := pipe.Exec(ctx)
	return err
}
