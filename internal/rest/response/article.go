package response

import (
	"github.com/quillhaven/quillhaven/domain"
)

type Article struct {
	ID        int64    `json:"id"`
	Title     string   `json:"title"`
	Content   string   `json:"content"`
	UserName  string   `json:"user_name"`
	Tags      []string `json:"tags"`
	UpdatedAt string   `json:"updated_at"`
	CreatedAt string   `json:"created_at"`
	Views     int64    `json:"views"`
	Likes     int64    `json:"likes"`
	Dislikes  int64    `json:"dislikes"`
}

// NewArticleFromDomain: Domain -> Response
func NewArticleFromDomain(a *domain.Article) Article {
	tags := make([]string, len(a.Tags))
	for i := range a.Tags {
		tags[i] = a.Tags[i].Name
	}
	return Article{
		ID:        a.ID,
		Title:     a.Title,
		Content:   a.Content,
		UserName:  a.User.Name,
		Tags:      tags,
		UpdatedAt: a.UpdatedAt.Format(DateTimeFormat),
		CreatedAt: a.CreatedAt.Format(DateTimeFormat),
		Views:     a.Views,
		Likes:     a.Likes,
		Dislikes:  a.Dislikes,
	}
}
