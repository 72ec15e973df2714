package domain

import "context"

// SyncViewsWorker periodically drains the buffered view counters from the
// cache into the row store. Reactions do not go through a worker: they are
// transactional in the preference store.
type SyncViewsWorker interface {
	Start(ctx context.Context)
}
