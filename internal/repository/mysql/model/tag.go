package model

import "github.com/quillhaven/quillhaven/domain"

type Tag struct {
	ID   int64  `gorm:"primaryKey;autoIncrement"`
	Name string `gorm:"type:varchar(120);not null;uniqueIndex:uniq_tag_name"`
}

func (Tag) TableName() string {
	return "tag"
}

func (m *Tag) ToDomain() domain.Tag {
	return domain.Tag{ID: m.ID, Name: m.Name}
}

// ArticleTag binds one tag to one article.
type ArticleTag struct {
	ArticleID int64 `gorm:"column:article_id;not null;uniqueIndex:uniq_article_tag;index"`
	TagID     int64 `gorm:"column:tag_id;not null;uniqueIndex:uniq_article_tag"`
}

func (ArticleTag) TableName() string {
	return "article_tag"
}
