package domain

import (
	"context"
	"time"
)

// Article is representing the Article data struct
type Article struct {
	ID        int64     // Unique identifier for the article
	Title     string    // Article title
	Content   string    // Article body content
	User      User      // Author information
	Tags      []Tag     // Attached tags
	UpdatedAt time.Time // Last update timestamp
	CreatedAt time.Time // Creation timestamp
	Views     int64     // Number of views
	Likes     int64     // Number of likes
	Dislikes  int64     // Number of dislikes
}

// Tag is a label attached to articles. Tag names are unique; a tag is
// created the first time an article uses it.
type Tag struct {
	ID   int64
	Name string
}

// ArticleRepository defines the contract for article data persistence
type ArticleRepository interface {
	// Fetch retrieves a paginated list of articles.
	// cursor: for pagination, pass the cursor from the previous page or an
	// empty string for the first page.
	// num: number of articles to fetch per page.
	Fetch(ctx context.Context, cursor string, num int64) (res []Article, err error)

	// GetByID retrieves a single article by its ID.
	// Returns ErrNotFound if the article doesn't exist.
	GetByID(ctx context.Context, id int64) (Article, error)

	// GetByIDs retrieves articles by given IDs.
	GetByIDs(ctx context.Context, ids []int64) ([]Article, error)

	// GetByTitle retrieves an article by its title.
	GetByTitle(ctx context.Context, title string) (Article, error)

	// AddViews increments the view count of an article.
	AddViews(ctx context.Context, id int64, deltaViews int64) error

	// Update modifies an existing article.
	// Returns ErrNotFound if the article doesn't exist.
	Update(ctx context.Context, ar *Article) error

	// Store creates a new article in the repository.
	Store(ctx context.Context, a *Article) error

	// Delete removes an article by its ID.
	// Returns ErrNotFound if not exists
	Delete(ctx context.Context, id int64) error

	// FetchArticlesByLikes lists articles ordered by like count.
	FetchArticlesByLikes(ctx context.Context, limit int64) ([]Article, error)

	// FetchIDs pages over all article IDs, used to prime the bloom filter.
	FetchIDs(ctx context.Context, cursor, limit int64) ([]int64, error)
}

// TagRepository defines the contract for tag persistence.
type TagRepository interface {
	// EnsureTags resolves tag names to tags, creating missing ones.
	EnsureTags(ctx context.Context, names []string) ([]Tag, error)

	// ReplaceArticleTags rebinds an article to the given tags.
	ReplaceArticleTags(ctx context.Context, articleID int64, tags []Tag) error

	// TagsOfArticles returns the tags of each given article.
	TagsOfArticles(ctx context.Context, articleIDs []int64) (map[int64][]Tag, error)

	// FetchAll lists every known tag.
	FetchAll(ctx context.Context) ([]Tag, error)
}

type ArticleCache interface {
	// Article related
	GetHome(context.Context) ([]Article, error)
	SetHome(ctx context.Context, ars []Article, ttl time.Duration) error
	GetArticle(ctx context.Context, id int64) (res Article, err error)
	SetArticle(ctx context.Context, ar *Article, ttl time.Duration) (err error)
	BatchSetArticle(ctx context.Context, ars []Article, ttl time.Duration) error

	// DeleteArticle deletes the article and its view counter in cache
	DeleteArticle(ctx context.Context, id int64) (err error)

	// Views related
	IncrViews(ctx context.Context, id int64) (views int64, err error)
	FetchAndResetViews(ctx context.Context) (map[int64]int64, error)
}

type ArticleUsecase interface {
	Fetch(ctx context.Context, cursor string, num int64) ([]Article, string, error)
	GetByID(ctx context.Context, id int64) (Article, error)
	Store(ctx context.Context, ar *Article, tagNames []string) error
	Update(ctx context.Context, ar *Article, tagNames []string) error
	Delete(ctx context.Context, id int64, userID int64) error
	FetchRank(ctx context.Context, limit int64) ([]Article, error)
	FetchTags(ctx context.Context) ([]Tag, error)
	InitBloomFilter(ctx context.Context) error
}
