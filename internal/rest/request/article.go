package request

import "github.com/quillhaven/quillhaven/domain"

type Article struct {
	ID      int64    `json:"id"`
	Title   string   `json:"title" binding:"required,max=255"`
	Content string   `json:"content" binding:"required"`
	Tags    []string `json:"tags" binding:"max=10,dive,min=1,max=120,tagname"`
}

// ToDomain: Request -> Domain
func (r *Article) ToDomain() domain.Article {
	return domain.Article{
		ID:      r.ID,
		Title:   r.Title,
		Content: r.Content,
	}
}
