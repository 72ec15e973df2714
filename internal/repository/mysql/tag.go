package mysql

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/quillhaven/quillhaven/domain"
	"github.com/quillhaven/quillhaven/internal/repository/mysql/model"
)

type tagRepository struct {
	DB *gorm.DB
}

var _ domain.TagRepository = (*tagRepository)(nil)

func NewTagRepository(db *gorm.DB) *tagRepository {
	return &tagRepository{DB: db}
}

// EnsureTags 名字不存在则创建，最后按名字查出全部
func (t *tagRepository) EnsureTags(ctx context.Context, names []string) ([]domain.Tag, error) {
	if len(names) == 0 {
		return nil, nil
	}

	rows := make([]model.Tag, len(names))
	for i, name := range names {
		rows[i] = model.Tag{Name: name}
	}
	err := t.DB.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&rows).
		Error
	if err != nil {
		return nil, err
	}

	var all []model.Tag
	err = t.DB.WithContext(ctx).
		Where("name IN ?", names).
		Find(&all).Error
	if err != nil {
		return nil, err
	}

	res := make([]domain.Tag, len(all))
	for i := range all {
		res[i] = all[i].ToDomain()
	}
	return res, nil
}

func (t *tagRepository) ReplaceArticleTags(ctx context.Context, articleID int64, tags []domain.Tag) error {
	return t.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("article_id = ?", articleID).Delete(&model.ArticleTag{}).Error; err != nil {
			return err
		}
		if len(tags) == 0 {
			return nil
		}
		binds := make([]model.ArticleTag, len(tags))
		for i, tag := range tags {
			binds[i] = model.ArticleTag{ArticleID: articleID, TagID: tag.ID}
		}
		return tx.Create(&binds).Error
	})
}

func (t *tagRepository) TagsOfArticles(ctx context.Context, articleIDs []int64) (map[int64][]domain.Tag, error) {
	if len(articleIDs) == 0 {
		return map[int64][]domain.Tag{}, nil
	}

	type tagged struct {
		model.Tag
		ArticleID int64
	}

	var rows []tagged
	err := t.DB.WithContext(ctx).
		Model(&model.Tag{}).
		Select("tag.*, article_tag.article_id AS article_id").
		Joins("JOIN article_tag ON article_tag.tag_id = tag.id").
		Where("article_tag.article_id IN ?", articleIDs).
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}

	res := make(map[int64][]domain.Tag, len(articleIDs))
	for i := range rows {
		res[rows[i].ArticleID] = append(res[rows[i].ArticleID], rows[i].Tag.ToDomain())
	}
	return res, nil
}

func (t *tagRepository) FetchAll(ctx context.Context) ([]domain.Tag, error) {
	var rows []model.Tag
	err := t.DB.WithContext(ctx).Order("name").Find(&rows).Error
	if err != nil {
		return nil, err
	}
	res := make([]domain.Tag, len(rows))
	for i := range rows {
		res[i] = rows[i].ToDomain()
	}
	return res, nil
}
