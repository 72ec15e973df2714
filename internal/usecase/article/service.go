package article

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/quillhaven/quillhaven/domain"
	"github.com/quillhaven/quillhaven/internal/repository"
)

const bloomInitPageSize = 1000

type Service struct {
	articleRepo domain.ArticleRepository
	tagRepo     domain.TagRepository
	prefRepo    domain.PreferenceRepository
	cache       domain.ArticleCache
	bloomRepo   domain.BloomRepository
}

var _ domain.ArticleUsecase = (*Service)(nil)

// NewService will create a new article service object
func NewService(a domain.ArticleRepository, t domain.TagRepository, p domain.PreferenceRepository, c domain.ArticleCache, b domain.BloomRepository) *Service {
	return &Service{
		articleRepo: a,
		tagRepo:     t,
		prefRepo:    p,
		cache:       c,
		bloomRepo:   b,
	}
}

func (a *Service) Fetch(ctx context.Context, cursor string, num int64) ([]domain.Article, string, error) {
	res, err := a.articleRepo.Fetch(ctx, cursor, num)
	if err != nil {
		return nil, "", err
	}
	if len(res) == 0 {
		return []domain.Article{}, "", nil
	}

	if err := a.fillTags(ctx, res); err != nil {
		logrus.Warnf("failed to fill tags: %v", err)
	}

	return res, repository.EncodeCursor(res[len(res)-1].CreatedAt), nil
}

// GetByID loads the article and fans in its reaction counts, then buffers a
// view increment in the cache for the sync worker to flush.
func (a *Service) GetByID(ctx context.Context, id int64) (domain.Article, error) {
	res, err := a.articleRepo.GetByID(ctx, id)
	if err != nil {
		return domain.Article{}, err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		likes, err := a.prefRepo.Count(gctx, domain.SubjectArticle, id, domain.Like)
		if err == nil {
			res.Likes = likes
		}
		return err
	})
	g.Go(func() error {
		dislikes, err := a.prefRepo.Count(gctx, domain.SubjectArticle, id, domain.Dislike)
		if err == nil {
			res.Dislikes = dislikes
		}
		return err
	})
	g.Go(func() error {
		tags, err := a.tagRepo.TagsOfArticles(gctx, []int64{id})
		if err == nil {
			res.Tags = tags[id]
		}
		return err
	})
	if err := g.Wait(); err != nil {
		return domain.Article{}, err
	}

	deltaViews, err := a.cache.IncrViews(ctx, id)
	if err != nil {
		logrus.Errorf("failed to IncrViews in cache: %v", err)
		return res, nil
	}
	res.Views += deltaViews

	return res, nil
}

func (a *Service) Store(ctx context.Context, m *domain.Article, tagNames []string) error {
	existed, err := a.articleRepo.GetByTitle(ctx, m.Title) // ignore lookup error
	if err == nil && existed.ID != 0 {
		return domain.ErrConflict
	}

	if err := a.articleRepo.Store(ctx, m); err != nil {
		return err
	}

	if err := a.bindTags(ctx, m, tagNames); err != nil {
		logrus.Errorf("failed to bind tags to article %d: %v", m.ID, err)
	}

	if err := a.bloomRepo.Add(ctx, m.ID); err != nil {
		logrus.Errorf("failed to add article %d to bloom filter: %v", m.ID, err)
	}

	return nil
}

func (a *Service) Update(ctx context.Context, ar *domain.Article, tagNames []string) error {
	existed, err := a.articleRepo.GetByID(ctx, ar.ID)
	if err != nil {
		return err
	}
	if existed.User.ID != ar.User.ID {
		return domain.ErrForbidden
	}

	ar.UpdatedAt = time.Now()
	if err := a.articleRepo.Update(ctx, ar); err != nil {
		return err
	}

	if tagNames != nil {
		if err := a.bindTags(ctx, ar, tagNames); err != nil {
			logrus.Errorf("failed to rebind tags of article %d: %v", ar.ID, err)
		}
	}
	return nil
}

func (a *Service) Delete(ctx context.Context, id int64, userID int64) error {
	existed, err := a.articleRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existed.User.ID != userID {
		return domain.ErrForbidden
	}

	return a.articleRepo.Delete(ctx, id)
}

func (a *Service) FetchRank(ctx context.Context, limit int64) ([]domain.Article, error) {
	return a.articleRepo.FetchArticlesByLikes(ctx, limit)
}

func (a *Service) FetchTags(ctx context.Context) ([]domain.Tag, error) {
	return a.tagRepo.FetchAll(ctx)
}

// InitBloomFilter pages over every article ID and seeds the filter.
func (a *Service) InitBloomFilter(ctx context.Context) error {
	var cursor int64
	for {
		ids, err := a.articleRepo.FetchIDs(ctx, cursor, bloomInitPageSize)
		if err != nil {
			return err
		}
		if len(ids) == 0 {
			return nil
		}
		if err := a.bloomRepo.BulkAdd(ctx, ids); err != nil {
			return err
		}
		cursor = ids[len(ids)-1]
	}
}

func (a *Service) bindTags(ctx context.Context, ar *domain.Article, tagNames []string) error {
	tags, err := a.tagRepo.EnsureTags(ctx, tagNames)
	if err != nil {
		return err
	}
	if err := a.tagRepo.ReplaceArticleTags(ctx, ar.ID, tags); err != nil {
		return err
	}
	ar.Tags = tags
	return nil
}

func (a *Service) fillTags(ctx context.Context, articles []domain.Article) error {
	ids := make([]int64, len(articles))
	for i := range articles {
		ids[i] = articles[i].ID
	}

	tagMap, err := a.tagRepo.TagsOfArticles(ctx, ids)
	if err != nil {
		return err
	}
	for i := range articles {
		articles[i].Tags = tagMap[articles[i].ID]
	}
	return nil
}
