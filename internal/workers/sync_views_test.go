package workers

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/quillhaven/quillhaven/domain"
)

type stubArticleRepo struct {
	domain.ArticleRepository

	mu      sync.Mutex
	applied map[int64]int64
	errByID map[int64]error
}

func (s *stubArticleRepo) AddViews(ctx context.Context, id int64, deltaViews int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err, ok := s.errByID[id]; ok {
		return err
	}
	if s.applied == nil {
		s.applied = make(map[int64]int64)
	}
	s.applied[id] += deltaViews
	return nil
}

type stubCache struct {
	domain.ArticleCache

	mu     sync.Mutex
	buffer map[int64]int64
}

func (s *stubCache) FetchAndResetViews(ctx context.Context) (map[int64]int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	drained := s.buffer
	s.buffer = map[int64]int64{}
	if drained == nil {
		drained = map[int64]int64{}
	}
	return drained, nil
}

func TestFlushAppliesBufferedViews(t *testing.T) {
	repo := &stubArticleRepo{}
	cache := &stubCache{buffer: map[int64]int64{7: 3, 9: 1, 11: 0}}

	w := NewSyncViewsWorker(repo, cache)
	w.flush(context.Background())

	assert.Equal(t, map[int64]int64{7: 3, 9: 1}, repo.applied)
}

func TestFlushSkipsDeletedArticles(t *testing.T) {
	repo := &stubArticleRepo{errByID: map[int64]error{9: domain.ErrNotFound}}
	cache := &stubCache{buffer: map[int64]int64{7: 3, 9: 1}}

	w := NewSyncViewsWorker(repo, cache)
	w.flush(context.Background())

	assert.Equal(t, map[int64]int64{7: 3}, repo.applied)
}

func TestStartFlushesOnShutdown(t *testing.T) {
	repo := &stubArticleRepo{}
	cache := &stubCache{buffer: map[int64]int64{7: 2}}

	w := NewSyncViewsWorker(repo, cache)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		w.Start(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop after context cancellation")
	}

	assert.Equal(t, map[int64]int64{7: 2}, repo.applied)
}
