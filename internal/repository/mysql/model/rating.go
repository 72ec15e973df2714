package model

import (
	"time"

	"github.com/quillhaven/quillhaven/domain"
)

type Rating struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	ArticleID int64     `gorm:"column:article_id;not null;uniqueIndex:uniq_rating_article_user"`
	UserID    int64     `gorm:"column:user_id;not null;uniqueIndex:uniq_rating_article_user"`
	Score     float64   `gorm:"not null"`
	CreatedAt time.Time `gorm:"type:datetime"`
	UpdatedAt time.Time `gorm:"type:datetime"`
}

func (Rating) TableName() string {
	return "rating"
}

func (m *Rating) ToDomain() domain.Rating {
	return domain.Rating{
		ID:        m.ID,
		ArticleID: m.ArticleID,
		UserID:    m.UserID,
		Score:     m.Score,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func NewRatingFromDomain(r *domain.Rating) *Rating {
	return &Rating{
		ID:        r.ID,
		ArticleID: r.ArticleID,
		UserID:    r.UserID,
		Score:     r.Score,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}
