package model

import (
	"time"

	"github.com/quillhaven/quillhaven/domain"
)

type Favorite struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	ArticleID int64     `gorm:"column:article_id;not null;uniqueIndex:uniq_favorite_article_user"`
	UserID    int64     `gorm:"column:user_id;not null;uniqueIndex:uniq_favorite_article_user;index"`
	CreatedAt time.Time `gorm:"type:datetime"`
}

func (Favorite) TableName() string {
	return "favorite"
}

func (m *Favorite) ToDomain() domain.Favorite {
	return domain.Favorite{
		ID:        m.ID,
		ArticleID: m.ArticleID,
		UserID:    m.UserID,
		CreatedAt: m.CreatedAt,
	}
}

func NewFavoriteFromDomain(f *domain.Favorite) *Favorite {
	return &Favorite{
		ID:        f.ID,
		ArticleID: f.ArticleID,
		UserID:    f.UserID,
		CreatedAt: f.CreatedAt,
	}
}
