package workers

import (
	"context"
	"errors"
	"time"

	"github.com/quillhaven/quillhaven/domain"
	"github.com/sirupsen/logrus"
)

const defaultSyncInterval = 30 * time.Second

type syncViewsWorker struct {
	articleRepo domain.ArticleRepository
	cache       domain.ArticleCache
	interval    time.Duration
}

var _ domain.SyncViewsWorker = (*syncViewsWorker)(nil)

func NewSyncViewsWorker(articleRepo domain.ArticleRepository, cache domain.ArticleCache) *syncViewsWorker {
	return &syncViewsWorker{
		articleRepo: articleRepo,
		cache:       cache,
		interval:    defaultSyncInterval,
	}
}

func (s *syncViewsWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.flush(ctx)
		case <-ctx.Done():
			logrus.Info("shutting down SyncViewsWorker, flushing remaining views...")
			s.flush(context.Background())
			return
		}
	}
}

func (s *syncViewsWorker) flush(ctx context.Context) {
	views, err := s.cache.FetchAndResetViews(ctx)
	if err != nil {
		logrus.Errorf("failed to fetch buffered views: %v", err)
		return
	}

	for id, delta := range views {
		if delta == 0 {
			continue
		}
		if err := s.articleRepo.AddViews(ctx, id, delta); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				// article deleted while its views were buffered
				continue
			}
			logrus.Errorf("failed to apply %d views to article %d: %v", delta, id, err)
		}
	}
}
