package repository

import (
	"context"
	"strconv"
	"time"

	"github.com/quillhaven/quillhaven/domain"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

const (
	homeCacheTTL    = 30 * time.Second
	articleCacheTTL = 10 * time.Minute
)

// articleRepository 协调层，协调缓存和数据库
type articleRepository struct {
	db           domain.ArticleRepository
	cache        domain.ArticleCache
	userRepo     domain.UserRepository
	rebuildGroup singleflight.Group
}

var _ domain.ArticleRepository = (*articleRepository)(nil)

// NewArticleRepository 创建协调层repository
func NewArticleRepository(db domain.ArticleRepository, cache domain.ArticleCache, userRepo domain.UserRepository) *articleRepository {
	return &articleRepository{
		db:       db,
		cache:    cache,
		userRepo: userRepo,
	}
}

// Fetch 获取文章列表，首页走缓存
func (r *articleRepository) Fetch(ctx context.Context, cursor string, num int64) ([]domain.Article, error) {
	if cursor == "" {
		articles, err := r.cache.GetHome(ctx)
		if err == nil {
			return articles, nil
		}
		if err != domain.ErrCacheMiss {
			logrus.Warnf("home cache get error: %v", err)
		}
	}

	articles, err := r.db.Fetch(ctx, cursor, num)
	if err != nil {
		return nil, err
	}

	articles, err = r.fillUserDetails(ctx, articles)
	if err != nil {
		return nil, err
	}

	// 如果是首页，异步更新缓存
	if cursor == "" {
		go func(data []domain.Article) {
			if err := r.cache.SetHome(context.Background(), data, homeCacheTTL); err != nil {
				logrus.Warnf("failed to set home cache: %v", err)
			}
		}(articles)
	}

	return articles, nil
}

// GetByID 根据ID获取文章，singleflight 避免缓存击穿
func (r *articleRepository) GetByID(ctx context.Context, id int64) (domain.Article, error) {
	article, err := r.cache.GetArticle(ctx, id)
	if err == nil {
		return article, nil
	}
	if err != domain.ErrCacheMiss {
		logrus.Warnf("article cache get error: %v", err)
	}

	key := "article:" + strconv.FormatInt(id, 10)
	result, err, _ := r.rebuildGroup.Do(key, func() (interface{}, error) {
		art, err := r.db.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}

		user, err := r.userRepo.GetByID(ctx, art.User.ID)
		if err != nil {
			return nil, err
		}
		art.User = user

		if err := r.cache.SetArticle(context.Background(), &art, articleCacheTTL); err != nil {
			logrus.Warnf("failed to set article cache: %v", err)
		}

		return art, nil
	})
	if err != nil {
		return domain.Article{}, err
	}

	return result.(domain.Article), nil
}

// GetByIDs 批量获取文章
func (r *articleRepository) GetByIDs(ctx context.Context, ids []int64) ([]domain.Article, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	articles, err := r.db.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	articles, err = r.fillUserDetails(ctx, articles)
	if err != nil {
		return nil, err
	}

	go func(arts []domain.Article) {
		if err := r.cache.BatchSetArticle(context.Background(), arts, articleCacheTTL); err != nil {
			logrus.Warnf("failed to batch set article cache: %v", err)
		}
	}(articles)

	return articles, nil
}

// GetByTitle 标题查询不常用，不走缓存
func (r *articleRepository) GetByTitle(ctx context.Context, title string) (domain.Article, error) {
	article, err := r.db.GetByTitle(ctx, title)
	if err != nil {
		return domain.Article{}, err
	}

	user, err := r.userRepo.GetByID(ctx, article.User.ID)
	if err != nil {
		return domain.Article{}, err
	}
	article.User = user

	return article, nil
}

func (r *articleRepository) Store(ctx context.Context, a *domain.Article) error {
	return r.db.Store(ctx, a)
}

func (r *articleRepository) Update(ctx context.Context, ar *domain.Article) error {
	err := r.db.Update(ctx, ar)
	if err != nil {
		return err
	}

	// 异步删除缓存
	go func(id int64) {
		_ = r.cache.DeleteArticle(context.Background(), id)
	}(ar.ID)

	return nil
}

func (r *articleRepository) Delete(ctx context.Context, id int64) error {
	err := r.db.Delete(ctx, id)
	if err != nil {
		return err
	}

	go func(id int64) {
		_ = r.cache.DeleteArticle(context.Background(), id)
	}(id)

	return nil
}

func (r *articleRepository) AddViews(ctx context.Context, id int64, deltaViews int64) error {
	return r.db.AddViews(ctx, id, deltaViews)
}

func (r *articleRepository) FetchArticlesByLikes(ctx context.Context, limit int64) ([]domain.Article, error) {
	articles, err := r.db.FetchArticlesByLikes(ctx, limit)
	if err != nil {
		return nil, err
	}
	return r.fillUserDetails(ctx, articles)
}

func (r *articleRepository) FetchIDs(ctx context.Context, cursor, limit int64) ([]int64, error) {
	return r.db.FetchIDs(ctx, cursor, limit)
}

// fillUserDetails 批量填充用户详细信息
func (r *articleRepository) fillUserDetails(ctx context.Context, articles []domain.Article) ([]domain.Article, error) {
	if len(articles) == 0 {
		return articles, nil
	}

	// 收集所有不重复的UserID
	userIDs := make([]int64, 0, len(articles))
	existMap := make(map[int64]bool)
	for _, item := range articles {
		if !existMap[item.User.ID] {
			userIDs = append(userIDs, item.User.ID)
			existMap[item.User.ID] = true
		}
	}

	users, err := r.userRepo.GetByIDs(ctx, userIDs)
	if err != nil {
		return nil, err
	}

	userMap := make(map[int64]domain.User)
	for _, u := range users {
		userMap[u.ID] = u
	}

	for i := range articles {
		if u, ok := userMap[articles[i].User.ID]; ok {
			articles[i].User = u
		}
	}

	return articles, nil
}
